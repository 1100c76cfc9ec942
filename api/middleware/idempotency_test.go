package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func countingHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*calls++
		w.WriteHeader(http.StatusCreated)
	})
}

func TestIdempotency_FirstRequestPasses(t *testing.T) {
	client, _ := setupTestRedis(t)

	var calls int
	h := Idempotency(client, time.Hour)(countingHandler(&calls))

	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.Header.Set("Idempotency-Key", "abc-123")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, calls)
}

func TestIdempotency_RepeatedKeyConflicts(t *testing.T) {
	client, _ := setupTestRedis(t)

	var calls int
	h := Idempotency(client, time.Hour)(countingHandler(&calls))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.Header.Set("Idempotency-Key", "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if i == 0 {
			require.Equal(t, http.StatusCreated, rec.Code)
		} else {
			assert.Equal(t, http.StatusConflict, rec.Code)
			assert.Equal(t, "true", rec.Header().Get("X-Idempotency-Hit"))
		}
	}

	assert.Equal(t, 1, calls)
}

func TestIdempotency_MissingKeyPassesThrough(t *testing.T) {
	client, _ := setupTestRedis(t)

	var calls int
	h := Idempotency(client, time.Hour)(countingHandler(&calls))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	assert.Equal(t, 2, calls)
}

func TestIdempotency_GetNotGuarded(t *testing.T) {
	client, _ := setupTestRedis(t)

	var calls int
	h := Idempotency(client, time.Hour)(countingHandler(&calls))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/orders/1", nil)
		req.Header.Set("Idempotency-Key", "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
	}

	assert.Equal(t, 2, calls)
}

func TestIdempotency_RedisDownDegradesToPassThrough(t *testing.T) {
	client, mr := setupTestRedis(t)
	mr.Close()

	var calls int
	h := Idempotency(client, time.Hour)(countingHandler(&calls))

	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.Header.Set("Idempotency-Key", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, calls)
}
