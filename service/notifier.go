package service

import (
	"context"

	"driveshare/pkg/models"
)

// Notifier pushes booking events to the people involved. Implementations
// must not block order processing on delivery failures.
type Notifier interface {
	OrderCreated(ctx context.Context, order *models.Order, car *models.Car, owner *models.User)
	OrderStatusChanged(ctx context.Context, order *models.Order, car *models.Car, renter *models.User)
}

type noopNotifier struct{}

func (noopNotifier) OrderCreated(context.Context, *models.Order, *models.Car, *models.User) {}
func (noopNotifier) OrderStatusChanged(context.Context, *models.Order, *models.Car, *models.User) {
}

// NopNotifier is used when no notification channel is configured.
func NopNotifier() Notifier { return noopNotifier{} }
