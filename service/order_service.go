package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/storage"
)

var (
	ordersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "driveshare_orders_created_total",
		Help: "The total number of booking orders created",
	})
	ordersRejectedUnavailable = promauto.NewCounter(prometheus.CounterOpts{
		Name: "driveshare_orders_rejected_unavailable_total",
		Help: "The total number of bookings refused because the dates were taken",
	})
	orderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "driveshare_order_status_transitions_total",
		Help: "The total number of order status transitions, by target status",
	}, []string{"status"})
)

type CreateOrderRequest struct {
	CarID      uuid.UUID   `json:"car_id"`
	UserID     uuid.UUID   `json:"user_id"`
	PickupDate models.Date `json:"pickup_date"`
	ReturnDate models.Date `json:"return_date"`

	// TotalDays and TotalAmount are optional client echoes of the price
	// quote. When set, they must match the server-side computation.
	TotalDays   int     `json:"total_days,omitempty"`
	TotalAmount float64 `json:"total_amount,omitempty"`
}

type OrderService interface {
	Create(ctx context.Context, req CreateOrderRequest) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus models.OrderStatus, actorID uuid.UUID) (*models.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetUserOrders(ctx context.Context, userID uuid.UUID) ([]*models.Order, error)
	GetOwnerOrders(ctx context.Context, ownerID uuid.UUID) ([]*models.Order, error)
	GetOwnerStats(ctx context.Context, ownerID uuid.UUID) (*models.OwnerStats, error)
	RunPendingExpiry(ctx context.Context, ttl time.Duration)
}

type orderService struct {
	orders       storage.IOrderStorage
	cars         storage.ICarStorage
	users        storage.IUserStorage
	availability AvailabilityService
	notifier     Notifier
	log          logger.ILogger
}

func NewOrderService(stg storage.IStorage, availability AvailabilityService, notifier Notifier, log logger.ILogger) OrderService {
	return &orderService{
		orders:       stg.Order(),
		cars:         stg.Car(),
		users:        stg.User(),
		availability: availability,
		notifier:     notifier,
		log:          log,
	}
}

// Create books a car for the requested date range. The pre-flight
// availability check gives a friendly rejection; the order store's
// guarded insert decides for real, so two racing requests cannot both
// commit overlapping holds.
func (s *orderService) Create(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	_, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("renter lookup: %w", err)
	}

	car, err := s.cars.GetByID(ctx, req.CarID)
	if err != nil {
		return nil, fmt.Errorf("car lookup: %w", err)
	}
	if !car.IsListed {
		return nil, storage.ErrCarUnavailable
	}

	// Rate snapshot: the amount is fixed at creation and never
	// recomputed, even if the owner later changes the daily rate.
	totalDays := models.RentalDays(req.PickupDate, req.ReturnDate)
	totalAmount := float64(totalDays) * car.DailyRate

	if req.TotalDays != 0 && req.TotalDays != totalDays {
		return nil, fmt.Errorf("%w: total_days %d does not match rental of %d days", ErrValidation, req.TotalDays, totalDays)
	}
	if req.TotalAmount != 0 && math.Abs(req.TotalAmount-totalAmount) > 1e-9 {
		return nil, fmt.Errorf("%w: total_amount %.2f does not match quote %.2f", ErrValidation, req.TotalAmount, totalAmount)
	}

	available, err := s.availability.IsAvailable(ctx, req.CarID, req.PickupDate, req.ReturnDate)
	if err != nil {
		return nil, err
	}
	if !available {
		ordersRejectedUnavailable.Inc()
		return nil, storage.ErrCarUnavailable
	}

	order := &models.Order{
		ID:          uuid.New(),
		CarID:       req.CarID,
		UserID:      req.UserID,
		PickupDate:  req.PickupDate,
		ReturnDate:  req.ReturnDate,
		TotalDays:   totalDays,
		TotalAmount: totalAmount,
		Status:      models.OrderPending,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		if errors.Is(err, storage.ErrCarUnavailable) {
			ordersRejectedUnavailable.Inc()
		}
		return nil, err
	}

	ordersCreated.Inc()
	s.log.Info("order created",
		logger.Stringer("order_id", created.ID),
		logger.Stringer("car_id", created.CarID),
		logger.String("pickup", created.PickupDate.String()),
		logger.String("return", created.ReturnDate.String()),
		logger.Float64("amount", created.TotalAmount),
	)

	if owner, err := s.users.GetByID(ctx, car.OwnerID); err == nil {
		s.notifier.OrderCreated(ctx, created, car, owner)
	}

	return created, nil
}

func validateCreate(req CreateOrderRequest) error {
	if req.CarID == uuid.Nil {
		return fmt.Errorf("%w: car_id is required", ErrValidation)
	}
	if req.UserID == uuid.Nil {
		return fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if req.PickupDate.IsZero() || req.ReturnDate.IsZero() {
		return fmt.Errorf("%w: pickup_date and return_date are required", ErrValidation)
	}
	if req.PickupDate.After(req.ReturnDate) {
		return fmt.Errorf("%w: return_date must not be before pickup_date", ErrValidation)
	}
	if req.TotalDays < 0 {
		return fmt.Errorf("%w: total_days must be positive", ErrValidation)
	}
	if req.TotalAmount < 0 {
		return fmt.Errorf("%w: total_amount must not be negative", ErrValidation)
	}
	return nil
}

// UpdateStatus moves an order through its lifecycle. Only the owner of
// the referenced car may act, and only lifecycle-legal transitions are
// persisted. Re-applying the current status succeeds without a write.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus models.OrderStatus, actorID uuid.UUID) (*models.Order, error) {
	switch newStatus {
	case models.OrderConfirmed, models.OrderCancelled, models.OrderCompleted:
	default:
		return nil, fmt.Errorf("%w: %q is not a valid target status", ErrValidation, newStatus)
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	car, err := s.cars.GetByID(ctx, order.CarID)
	if err != nil {
		return nil, fmt.Errorf("car lookup: %w", err)
	}
	if car.OwnerID != actorID {
		return nil, ErrForbidden
	}

	if order.Status == newStatus {
		return order, nil
	}
	if !order.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, newStatus)
	}

	updated, err := s.orders.UpdateStatus(ctx, orderID, order.Status, newStatus)
	if err != nil {
		return nil, err
	}

	orderTransitions.WithLabelValues(string(newStatus)).Inc()
	s.log.Info("order status updated",
		logger.Stringer("order_id", orderID),
		logger.String("from", string(order.Status)),
		logger.String("to", string(newStatus)),
	)

	if renter, err := s.users.GetByID(ctx, updated.UserID); err == nil {
		s.notifier.OrderStatusChanged(ctx, updated, car, renter)
	}

	return updated, nil
}

func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *orderService) GetUserOrders(ctx context.Context, userID uuid.UUID) ([]*models.Order, error) {
	return s.orders.GetUserOrders(ctx, userID)
}

func (s *orderService) GetOwnerOrders(ctx context.Context, ownerID uuid.UUID) ([]*models.Order, error) {
	return s.orders.GetOwnerOrders(ctx, ownerID)
}

func (s *orderService) GetOwnerStats(ctx context.Context, ownerID uuid.UUID) (*models.OwnerStats, error) {
	return s.orders.GetOwnerStats(ctx, ownerID)
}

// RunPendingExpiry cancels pending holds older than ttl so that an
// unresponsive owner does not block a car's calendar forever. A ttl of
// zero disables expiry and preserves holds indefinitely.
func (s *orderService) RunPendingExpiry(ctx context.Context, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	s.log.Info("pending-hold expiry worker started", logger.String("ttl", ttl.String()))

	for {
		select {
		case <-ctx.Done():
			s.log.Info("pending-hold expiry worker stopped")
			return
		case <-ticker.C:
			s.expirePending(ctx, ttl)
		}
	}
}

func (s *orderService) expirePending(ctx context.Context, ttl time.Duration) {
	expired, err := s.orders.GetExpiredPending(ctx, time.Now().Add(-ttl))
	if err != nil {
		s.log.Error("failed to fetch expired pending orders", logger.Error(err))
		return
	}

	for _, order := range expired {
		if _, err := s.orders.UpdateStatus(ctx, order.ID, models.OrderPending, models.OrderCancelled); err != nil {
			s.log.Error("failed to expire pending order", logger.Stringer("order_id", order.ID), logger.Error(err))
			continue
		}
		orderTransitions.WithLabelValues(string(models.OrderCancelled)).Inc()
		s.log.Info("pending order expired", logger.Stringer("order_id", order.ID))
	}
}
