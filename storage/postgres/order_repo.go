package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/storage"
)

type orderRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewOrderRepo(db *pgxpool.Pool, log logger.ILogger) storage.IOrderStorage {
	return &orderRepo{db: db, log: log}
}

const orderColumns = `id, car_id, user_id, pickup_date, return_date, total_days, total_amount, status, created_at, updated_at`

// Overlap predicate: closed intervals, cancelled orders never block.
const blockingOverlap = `car_id = $1 AND status <> 'cancelled' AND pickup_date <= $3 AND return_date >= $2`

func (r *orderRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("failed to begin order transaction", logger.Error(err))
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Serialize check-and-insert per car. The pre-flight availability
	// check is advisory only; this lock plus the re-check below is what
	// actually keeps two overlapping orders from both committing.
	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`,
		order.CarID,
	); err != nil {
		r.log.Error("failed to take car booking lock", logger.Error(err))
		return nil, err
	}

	var blocked bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE `+blockingOverlap+`)`,
		order.CarID, order.PickupDate, order.ReturnDate,
	).Scan(&blocked)
	if err != nil {
		r.log.Error("failed to re-check availability", logger.Error(err))
		return nil, err
	}
	if blocked {
		return nil, storage.ErrCarUnavailable
	}

	query := `
		INSERT INTO orders (id, car_id, user_id, pickup_date, return_date, total_days, total_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err = tx.QueryRow(ctx, query,
		order.ID,
		order.CarID,
		order.UserID,
		order.PickupDate,
		order.ReturnDate,
		order.TotalDays,
		order.TotalAmount,
		order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		r.log.Error("failed to insert order", logger.Error(err))
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("failed to commit order", logger.Error(err))
		return nil, err
	}

	return order, nil
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.CarID,
		&order.UserID,
		&order.PickupDate,
		&order.ReturnDate,
		&order.TotalDays,
		&order.TotalAmount,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.log.Error("failed to get order by id", logger.Stringer("id", id), logger.Error(err))
		return nil, err
	}

	return &order, nil
}

func (r *orderRepo) GetBlocking(ctx context.Context, carID uuid.UUID, pickup, ret models.Date) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ` + blockingOverlap + `
		ORDER BY pickup_date
	`
	return r.scanOrders(ctx, query, carID, pickup, ret)
}

func (r *orderRepo) GetUserOrders(ctx context.Context, userID uuid.UUID) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.scanOrders(ctx, query, userID)
}

func (r *orderRepo) GetOwnerOrders(ctx context.Context, ownerID uuid.UUID) ([]*models.Order, error) {
	query := `
		SELECT o.id, o.car_id, o.user_id, o.pickup_date, o.return_date, o.total_days, o.total_amount, o.status, o.created_at, o.updated_at
		FROM orders o
		JOIN cars c ON o.car_id = c.id
		WHERE c.owner_id = $1
		ORDER BY o.created_at DESC
	`
	return r.scanOrders(ctx, query, ownerID)
}

func (r *orderRepo) scanOrders(ctx context.Context, query string, args ...interface{}) ([]*models.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to query orders", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		var o models.Order
		err := rows.Scan(
			&o.ID, &o.CarID, &o.UserID, &o.PickupDate, &o.ReturnDate,
			&o.TotalDays, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) (*models.Order, error) {
	query := `
		UPDATE orders
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
	`
	res, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.Error("failed to update order status", logger.Stringer("id", id), logger.Error(err))
		return nil, err
	}

	if res.RowsAffected() == 0 {
		// Distinguish a missing order from one whose status moved
		// under us.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, storage.ErrStatusConflict
	}

	return r.GetByID(ctx, id)
}

func (r *orderRepo) GetExpiredPending(ctx context.Context, olderThan time.Time) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE status = 'pending' AND created_at < $1
		ORDER BY created_at
		LIMIT 100
	`
	return r.scanOrders(ctx, query, olderThan)
}

func (r *orderRepo) GetOwnerStats(ctx context.Context, ownerID uuid.UUID) (*models.OwnerStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE o.status = 'pending'),
		       COUNT(*) FILTER (WHERE o.status = 'confirmed'),
		       COUNT(*) FILTER (WHERE o.status = 'cancelled'),
		       COALESCE(SUM(o.total_amount) FILTER (WHERE o.status IN ('confirmed', 'completed')), 0)
		FROM orders o
		JOIN cars c ON o.car_id = c.id
		WHERE c.owner_id = $1
	`

	var stats models.OwnerStats
	err := r.db.QueryRow(ctx, query, ownerID).Scan(
		&stats.TotalOrders,
		&stats.PendingOrders,
		&stats.ConfirmedOrders,
		&stats.CancelledOrders,
		&stats.TotalRevenue,
	)
	if err != nil {
		r.log.Error("failed to get owner stats", logger.Stringer("owner_id", ownerID), logger.Error(err))
		return nil, err
	}

	return &stats, nil
}
