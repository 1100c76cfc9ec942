package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/storage"
)

type favoriteRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewFavoriteRepo(db *pgxpool.Pool, log logger.ILogger) storage.IFavoriteStorage {
	return &favoriteRepo{db: db, log: log}
}

func (r *favoriteRepo) Toggle(ctx context.Context, userID, carID uuid.UUID) (bool, error) {
	res, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND car_id = $2`, userID, carID)
	if err != nil {
		r.log.Error("failed to toggle favorite", logger.Error(err))
		return false, err
	}
	if res.RowsAffected() > 0 {
		return false, nil
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO favorites (user_id, car_id) VALUES ($1, $2) ON CONFLICT (user_id, car_id) DO NOTHING`,
		userID, carID,
	)
	if err != nil {
		r.log.Error("failed to add favorite", logger.Error(err))
		return false, err
	}
	return true, nil
}

func (r *favoriteRepo) GetByUser(ctx context.Context, userID uuid.UUID) ([]*models.Car, error) {
	query := `
		SELECT c.id, c.owner_id, c.brand, c.model, c.year, c.category, c.seats, c.fuel_type, c.transmission, c.daily_rate, c.location, c.description, c.is_listed, c.created_at, c.updated_at
		FROM favorites f
		JOIN cars c ON f.car_id = c.id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to query favorites", logger.Error(err))
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
