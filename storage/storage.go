package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"driveshare/pkg/models"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrCarUnavailable is returned by the guarded insert when a blocking
	// order already covers part of the requested date range.
	ErrCarUnavailable = errors.New("car is not available for the requested dates")

	// ErrStatusConflict is returned when a conditional status update loses
	// to a concurrent transition.
	ErrStatusConflict = errors.New("order status changed concurrently")
)

type IStorage interface {
	User() IUserStorage
	Car() ICarStorage
	Order() IOrderStorage
	Review() IReviewStorage
	Favorite() IFavoriteStorage
	Close()
	GetPool() *pgxpool.Pool
}

type IUserStorage interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	LinkTelegram(ctx context.Context, id uuid.UUID, chatID int64) error
}

type ICarStorage interface {
	Create(ctx context.Context, car *models.Car) (*models.Car, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Car, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Car, error)
	GetListed(ctx context.Context) ([]*models.Car, error)
	SetListed(ctx context.Context, id uuid.UUID, listed bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type IOrderStorage interface {
	// Create inserts the order after re-verifying, inside the same
	// transaction, that no blocking order overlaps the requested range.
	// Returns ErrCarUnavailable when the re-check finds a conflict.
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// GetBlocking returns the car's orders whose status still counts
	// against availability and whose range overlaps [pickup, ret].
	GetBlocking(ctx context.Context, carID uuid.UUID, pickup, ret models.Date) ([]*models.Order, error)
	GetUserOrders(ctx context.Context, userID uuid.UUID) ([]*models.Order, error)
	GetOwnerOrders(ctx context.Context, ownerID uuid.UUID) ([]*models.Order, error)
	// UpdateStatus is a compare-and-set on the status column. Returns
	// ErrNotFound if the order does not exist and ErrStatusConflict if
	// its status is no longer `from`.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) (*models.Order, error)
	GetExpiredPending(ctx context.Context, olderThan time.Time) ([]*models.Order, error)
	GetOwnerStats(ctx context.Context, ownerID uuid.UUID) (*models.OwnerStats, error)
}

type IReviewStorage interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	GetByCar(ctx context.Context, carID uuid.UUID) ([]*models.Review, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type IFavoriteStorage interface {
	// Toggle adds the favorite if absent and removes it if present,
	// returning true when the car is a favorite afterwards.
	Toggle(ctx context.Context, userID, carID uuid.UUID) (bool, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*models.Car, error)
}
