package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCancelled OrderStatus = "cancelled"
	OrderCompleted OrderStatus = "completed"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderCompleted},
}

// CanTransitionTo reports whether the lifecycle allows moving from s to
// target. Re-applying the current status is allowed so that owner
// actions stay idempotent.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s == target {
		return true
	}
	for _, next := range orderTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderCancelled || s == OrderCompleted
}

// Blocks reports whether an order in this status counts against the
// car's availability. Pending holds block; only cancellation frees the
// dates again.
func (s OrderStatus) Blocks() bool {
	return s != OrderCancelled
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderCancelled, OrderCompleted:
		return true
	}
	return false
}

type Order struct {
	ID          uuid.UUID   `json:"id"`
	CarID       uuid.UUID   `json:"car_id"`
	UserID      uuid.UUID   `json:"user_id"`
	PickupDate  Date        `json:"pickup_date"`
	ReturnDate  Date        `json:"return_date"`
	TotalDays   int         `json:"total_days"`
	TotalAmount float64     `json:"total_amount"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// OwnerStats summarizes an owner's booking activity across their cars.
type OwnerStats struct {
	TotalOrders     int     `json:"total_orders"`
	PendingOrders   int     `json:"pending_orders"`
	ConfirmedOrders int     `json:"confirmed_orders"`
	CancelledOrders int     `json:"cancelled_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
}
