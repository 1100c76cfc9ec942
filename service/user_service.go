package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/storage"
)

type UserService interface {
	Register(ctx context.Context, name, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetRole(ctx context.Context, id uuid.UUID, role string) error
	LinkTelegram(ctx context.Context, id uuid.UUID, chatID int64) error
}

type userService struct {
	stg storage.IUserStorage
	log logger.ILogger
}

func NewUserService(stg storage.IStorage, log logger.ILogger) UserService {
	return &userService{
		stg: stg.User(),
		log: log,
	}
}

func (s *userService) Register(ctx context.Context, name, email string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}

	user := &models.User{
		ID:    uuid.New(),
		Name:  name,
		Email: email,
		Role:  models.RoleRenter,
	}
	return s.stg.Create(ctx, user)
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.stg.GetByID(ctx, id)
}

func (s *userService) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	if role != models.RoleRenter && role != models.RoleOwner {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	return s.stg.UpdateRole(ctx, id, role)
}

func (s *userService) LinkTelegram(ctx context.Context, id uuid.UUID, chatID int64) error {
	return s.stg.LinkTelegram(ctx, id, chatID)
}
