package service

import (
	"context"

	"github.com/google/uuid"

	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/storage"
)

// AvailabilityService decides whether a car is free for a requested
// date range. It is a read-only check: the guarded insert in the order
// store is what ultimately enforces the no-double-booking invariant.
type AvailabilityService interface {
	IsAvailable(ctx context.Context, carID uuid.UUID, pickup, ret models.Date) (bool, error)
}

type availabilityService struct {
	stg storage.IOrderStorage
	log logger.ILogger
}

func NewAvailabilityService(stg storage.IStorage, log logger.ILogger) AvailabilityService {
	return &availabilityService{
		stg: stg.Order(),
		log: log,
	}
}

// IsAvailable fetches the car's blocking orders and tests each against
// [pickup, ret]. Callers must validate pickup <= ret beforehand; car
// existence is also the caller's responsibility. A storage failure
// propagates as an error, never as "available".
func (s *availabilityService) IsAvailable(ctx context.Context, carID uuid.UUID, pickup, ret models.Date) (bool, error) {
	existing, err := s.stg.GetBlocking(ctx, carID, pickup, ret)
	if err != nil {
		s.log.Error("availability check failed", logger.Stringer("car_id", carID), logger.Error(err))
		return false, err
	}

	for _, order := range existing {
		if !order.Status.Blocks() {
			continue
		}
		if models.Overlaps(pickup, ret, order.PickupDate, order.ReturnDate) {
			return false, nil
		}
	}
	return true, nil
}
