package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderPending, OrderConfirmed, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderCompleted, false},
		{OrderConfirmed, OrderCompleted, true},
		{OrderConfirmed, OrderCancelled, false},
		{OrderCancelled, OrderConfirmed, false},
		{OrderCompleted, OrderPending, false},
		// idempotent re-application
		{OrderConfirmed, OrderConfirmed, true},
		{OrderCancelled, OrderCancelled, true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusBlocks(t *testing.T) {
	assert.True(t, OrderPending.Blocks())
	assert.True(t, OrderConfirmed.Blocks())
	assert.True(t, OrderCompleted.Blocks())
	assert.False(t, OrderCancelled.Blocks())
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.False(t, OrderPending.IsTerminal())
	assert.False(t, OrderConfirmed.IsTerminal())
	assert.True(t, OrderCancelled.IsTerminal())
	assert.True(t, OrderCompleted.IsTerminal())
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderPending.Valid())
	assert.False(t, OrderStatus("shipped").Valid())
}
