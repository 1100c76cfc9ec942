package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/storage"
)

type FavoriteService interface {
	Toggle(ctx context.Context, userID, carID uuid.UUID) (bool, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*models.Car, error)
}

type favoriteService struct {
	favorites storage.IFavoriteStorage
	cars      storage.ICarStorage
	log       logger.ILogger
}

func NewFavoriteService(stg storage.IStorage, log logger.ILogger) FavoriteService {
	return &favoriteService{
		favorites: stg.Favorite(),
		cars:      stg.Car(),
		log:       log,
	}
}

func (s *favoriteService) Toggle(ctx context.Context, userID, carID uuid.UUID) (bool, error) {
	if _, err := s.cars.GetByID(ctx, carID); err != nil {
		return false, fmt.Errorf("car lookup: %w", err)
	}
	return s.favorites.Toggle(ctx, userID, carID)
}

func (s *favoriteService) GetByUser(ctx context.Context, userID uuid.UUID) ([]*models.Car, error) {
	return s.favorites.GetByUser(ctx, userID)
}
