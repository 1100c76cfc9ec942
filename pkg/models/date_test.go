package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlapsSymmetry(t *testing.T) {
	ranges := [][2]Date{
		{NewDate(2024, time.June, 10), NewDate(2024, time.June, 12)},
		{NewDate(2024, time.June, 12), NewDate(2024, time.June, 15)},
		{NewDate(2024, time.June, 1), NewDate(2024, time.June, 30)},
		{NewDate(2024, time.July, 1), NewDate(2024, time.July, 1)},
	}

	for _, a := range ranges {
		for _, b := range ranges {
			assert.Equal(t,
				Overlaps(a[0], a[1], b[0], b[1]),
				Overlaps(b[0], b[1], a[0], a[1]),
				"overlap must be symmetric for %v vs %v", a, b,
			)
		}
	}
}

func TestOverlapsInclusiveBoundary(t *testing.T) {
	// Returning on the day another reservation starts is a conflict.
	assert.True(t, Overlaps(
		NewDate(2024, time.June, 10), NewDate(2024, time.June, 12),
		NewDate(2024, time.June, 12), NewDate(2024, time.June, 15),
	))
}

func TestOverlapsDisjoint(t *testing.T) {
	assert.False(t, Overlaps(
		NewDate(2024, time.July, 1), NewDate(2024, time.July, 5),
		NewDate(2024, time.July, 6), NewDate(2024, time.July, 10),
	))
}

func TestOverlapsContained(t *testing.T) {
	assert.True(t, Overlaps(
		NewDate(2024, time.June, 10), NewDate(2024, time.June, 15),
		NewDate(2024, time.June, 12), NewDate(2024, time.June, 13),
	))
}

func TestRentalDaysInclusive(t *testing.T) {
	pickup := NewDate(2024, time.June, 10)
	ret := NewDate(2024, time.June, 12)
	assert.Equal(t, 3, RentalDays(pickup, ret))

	sameDay := NewDate(2024, time.June, 10)
	assert.Equal(t, 1, RentalDays(sameDay, sameDay))
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.June, 10)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-10"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, d.Equal(back))
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := ParseDate("10/06/2024")
	assert.Error(t, err)
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	instant := time.Date(2024, time.June, 10, 23, 59, 0, 0, time.FixedZone("X", 3*3600))
	assert.Equal(t, "2024-06-10", DateOf(instant).String())
}
