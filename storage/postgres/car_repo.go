package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/storage"
)

type carRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewCarRepo(db *pgxpool.Pool, log logger.ILogger) storage.ICarStorage {
	return &carRepo{db: db, log: log}
}

const carColumns = `id, owner_id, brand, model, year, category, seats, fuel_type, transmission, daily_rate, location, description, is_listed, created_at, updated_at`

func (r *carRepo) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	query := `
		INSERT INTO cars (id, owner_id, brand, model, year, category, seats, fuel_type, transmission, daily_rate, location, description, is_listed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		car.ID,
		car.OwnerID,
		car.Brand,
		car.Model,
		car.Year,
		car.Category,
		car.Seats,
		car.FuelType,
		car.Transmission,
		car.DailyRate,
		car.Location,
		car.Description,
		car.IsListed,
	).Scan(&car.CreatedAt, &car.UpdatedAt)
	if err != nil {
		r.log.Error("failed to create car", logger.Error(err))
		return nil, err
	}

	return car, nil
}

func (r *carRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	var car models.Car
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&car.ID,
		&car.OwnerID,
		&car.Brand,
		&car.Model,
		&car.Year,
		&car.Category,
		&car.Seats,
		&car.FuelType,
		&car.Transmission,
		&car.DailyRate,
		&car.Location,
		&car.Description,
		&car.IsListed,
		&car.CreatedAt,
		&car.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.log.Error("failed to get car by id", logger.Stringer("id", id), logger.Error(err))
		return nil, err
	}

	return &car, nil
}

func (r *carRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE owner_id = $1 ORDER BY created_at DESC`
	return r.scanCars(ctx, query, ownerID)
}

func (r *carRepo) GetListed(ctx context.Context) ([]*models.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE is_listed = true ORDER BY created_at DESC`
	return r.scanCars(ctx, query)
}

func (r *carRepo) scanCars(ctx context.Context, query string, args ...interface{}) ([]*models.Car, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to query cars", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var cars []*models.Car
	for rows.Next() {
		var c models.Car
		err := rows.Scan(
			&c.ID, &c.OwnerID, &c.Brand, &c.Model, &c.Year, &c.Category, &c.Seats,
			&c.FuelType, &c.Transmission, &c.DailyRate, &c.Location, &c.Description,
			&c.IsListed, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		cars = append(cars, &c)
	}
	return cars, rows.Err()
}

func (r *carRepo) SetListed(ctx context.Context, id uuid.UUID, listed bool) error {
	res, err := r.db.Exec(ctx, `UPDATE cars SET is_listed = $2, updated_at = now() WHERE id = $1`, id, listed)
	if err != nil {
		r.log.Error("failed to update car listing", logger.Stringer("id", id), logger.Error(err))
		return err
	}
	if res.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *carRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		r.log.Error("failed to delete car", logger.Stringer("id", id), logger.Error(err))
		return err
	}
	if res.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
