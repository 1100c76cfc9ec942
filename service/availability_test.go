package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/service"
)

func seedOrder(stg *mockStorage, carID uuid.UUID, status models.OrderStatus, pickup, ret models.Date) {
	o := &models.Order{
		ID:         uuid.New(),
		CarID:      carID,
		UserID:     uuid.New(),
		PickupDate: pickup,
		ReturnDate: ret,
		Status:     status,
		CreatedAt:  time.Now(),
	}
	stg.orders.byID[o.ID] = o
}

func TestIsAvailable_NoOrders(t *testing.T) {
	stg := newMockStorage()
	svc := service.NewAvailabilityService(stg, logger.New("driveshare-test", "error"))

	available, err := svc.IsAvailable(context.Background(), uuid.New(),
		models.NewDate(2024, time.June, 10), models.NewDate(2024, time.June, 12))
	require.NoError(t, err)
	assert.True(t, available)
}

func TestIsAvailable_BoundaryDayBlocks(t *testing.T) {
	stg := newMockStorage()
	carID := uuid.New()
	seedOrder(stg, carID, models.OrderConfirmed,
		models.NewDate(2024, time.June, 12), models.NewDate(2024, time.June, 15))

	svc := service.NewAvailabilityService(stg, logger.New("driveshare-test", "error"))

	available, err := svc.IsAvailable(context.Background(), carID,
		models.NewDate(2024, time.June, 10), models.NewDate(2024, time.June, 12))
	require.NoError(t, err)
	assert.False(t, available)
}

func TestIsAvailable_PendingHoldBlocks(t *testing.T) {
	stg := newMockStorage()
	carID := uuid.New()
	seedOrder(stg, carID, models.OrderPending,
		models.NewDate(2024, time.June, 10), models.NewDate(2024, time.June, 15))

	svc := service.NewAvailabilityService(stg, logger.New("driveshare-test", "error"))

	available, err := svc.IsAvailable(context.Background(), carID,
		models.NewDate(2024, time.June, 14), models.NewDate(2024, time.June, 20))
	require.NoError(t, err)
	assert.False(t, available)
}

func TestIsAvailable_CancelledDoesNotBlock(t *testing.T) {
	stg := newMockStorage()
	carID := uuid.New()
	seedOrder(stg, carID, models.OrderCancelled,
		models.NewDate(2024, time.June, 10), models.NewDate(2024, time.June, 15))

	svc := service.NewAvailabilityService(stg, logger.New("driveshare-test", "error"))

	available, err := svc.IsAvailable(context.Background(), carID,
		models.NewDate(2024, time.June, 12), models.NewDate(2024, time.June, 13))
	require.NoError(t, err)
	assert.True(t, available)
}

func TestIsAvailable_OtherCarIgnored(t *testing.T) {
	stg := newMockStorage()
	carID := uuid.New()
	seedOrder(stg, uuid.New(), models.OrderConfirmed,
		models.NewDate(2024, time.June, 10), models.NewDate(2024, time.June, 15))

	svc := service.NewAvailabilityService(stg, logger.New("driveshare-test", "error"))

	available, err := svc.IsAvailable(context.Background(), carID,
		models.NewDate(2024, time.June, 12), models.NewDate(2024, time.June, 13))
	require.NoError(t, err)
	assert.True(t, available)
}

func TestIsAvailable_StorageErrorFailsLoudly(t *testing.T) {
	stg := newMockStorage()
	infraErr := errors.New("pool exhausted")
	stg.orders.err = infraErr

	svc := service.NewAvailabilityService(stg, logger.New("driveshare-test", "error"))

	available, err := svc.IsAvailable(context.Background(), uuid.New(),
		models.NewDate(2024, time.June, 10), models.NewDate(2024, time.June, 12))
	assert.ErrorIs(t, err, infraErr)
	assert.False(t, available)
}
