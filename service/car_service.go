package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/storage"
)

type CarService interface {
	Create(ctx context.Context, car *models.Car) (*models.Car, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Car, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Car, error)
	GetListed(ctx context.Context) ([]*models.Car, error)
	SetListed(ctx context.Context, id uuid.UUID, listed bool, actorID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
}

type carService struct {
	cars  storage.ICarStorage
	users storage.IUserStorage
	log   logger.ILogger
}

func NewCarService(stg storage.IStorage, log logger.ILogger) CarService {
	return &carService{
		cars:  stg.Car(),
		users: stg.User(),
		log:   log,
	}
}

func (s *carService) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	if car.OwnerID == uuid.Nil {
		return nil, fmt.Errorf("%w: owner_id is required", ErrValidation)
	}
	if car.Brand == "" || car.Model == "" {
		return nil, fmt.Errorf("%w: brand and model are required", ErrValidation)
	}
	if car.DailyRate <= 0 {
		return nil, fmt.Errorf("%w: daily_rate must be positive", ErrValidation)
	}

	owner, err := s.users.GetByID(ctx, car.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("owner lookup: %w", err)
	}
	// Listing a first car promotes a renter to owner.
	if owner.Role != models.RoleOwner {
		if err := s.users.UpdateRole(ctx, owner.ID, models.RoleOwner); err != nil {
			return nil, err
		}
	}

	car.ID = uuid.New()
	car.IsListed = true

	return s.cars.Create(ctx, car)
}

func (s *carService) GetByID(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	return s.cars.GetByID(ctx, id)
}

func (s *carService) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Car, error) {
	return s.cars.GetByOwner(ctx, ownerID)
}

func (s *carService) GetListed(ctx context.Context) ([]*models.Car, error) {
	return s.cars.GetListed(ctx)
}

func (s *carService) SetListed(ctx context.Context, id uuid.UUID, listed bool, actorID uuid.UUID) error {
	if err := s.authorizeOwner(ctx, id, actorID); err != nil {
		return err
	}
	return s.cars.SetListed(ctx, id, listed)
}

func (s *carService) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	if err := s.authorizeOwner(ctx, id, actorID); err != nil {
		return err
	}
	return s.cars.Delete(ctx, id)
}

func (s *carService) authorizeOwner(ctx context.Context, carID, actorID uuid.UUID) error {
	car, err := s.cars.GetByID(ctx, carID)
	if err != nil {
		return err
	}
	if car.OwnerID != actorID {
		return ErrForbidden
	}
	return nil
}
