package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Idempotency guards state-changing requests that carry an
// Idempotency-Key header. A repeated key gets 409 instead of creating a
// second booking; a missing key passes through untouched. Redis being
// down degrades to pass-through, the booking core's own guard still
// prevents double-booking.
func Idempotency(redisClient *redis.Client, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("Idempotency-Key")
			if key == "" || redisClient == nil {
				next.ServeHTTP(w, r)
				return
			}

			idemKey := fmt.Sprintf("idempotency:%s", key)
			ctx := r.Context()

			_, err := redisClient.Get(ctx, idemKey).Result()
			if err == nil {
				w.Header().Set("X-Idempotency-Hit", "true")
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(`{"error": "request already processed"}`))
				return
			}
			if !errors.Is(err, redis.Nil) {
				next.ServeHTTP(w, r)
				return
			}

			// Short TTL on the in-progress marker so a crash cannot
			// lock the key forever.
			acquired, err := redisClient.SetNX(ctx, idemKey, "PROCESSING", 10*time.Second).Result()
			if err != nil || !acquired {
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(`{"error": "concurrent request"}`))
				return
			}

			next.ServeHTTP(w, r)

			redisClient.Set(ctx, idemKey, "COMPLETED", ttl)
		})
	}
}
