package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/storage"
)

type ReviewService interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	GetByCar(ctx context.Context, carID uuid.UUID) ([]*models.Review, error)
	Delete(ctx context.Context, id, actorID uuid.UUID) error
}

type reviewService struct {
	reviews storage.IReviewStorage
	cars    storage.ICarStorage
	log     logger.ILogger
}

func NewReviewService(stg storage.IStorage, log logger.ILogger) ReviewService {
	return &reviewService{
		reviews: stg.Review(),
		cars:    stg.Car(),
		log:     log,
	}
}

func (s *reviewService) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if _, err := s.cars.GetByID(ctx, review.CarID); err != nil {
		return nil, fmt.Errorf("car lookup: %w", err)
	}

	review.ID = uuid.New()
	return s.reviews.Create(ctx, review)
}

func (s *reviewService) GetByCar(ctx context.Context, carID uuid.UUID) ([]*models.Review, error) {
	return s.reviews.GetByCar(ctx, carID)
}

func (s *reviewService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	return s.reviews.Delete(ctx, id, actorID)
}
