package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/storage"
)

type reviewRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewReviewRepo(db *pgxpool.Pool, log logger.ILogger) storage.IReviewStorage {
	return &reviewRepo{db: db, log: log}
}

func (r *reviewRepo) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	query := `
		INSERT INTO reviews (id, car_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		review.ID,
		review.CarID,
		review.UserID,
		review.Rating,
		review.Comment,
	).Scan(&review.CreatedAt)
	if err != nil {
		r.log.Error("failed to create review", logger.Error(err))
		return nil, err
	}

	return review, nil
}

func (r *reviewRepo) GetByCar(ctx context.Context, carID uuid.UUID) ([]*models.Review, error) {
	query := `
		SELECT id, car_id, user_id, rating, comment, created_at
		FROM reviews
		WHERE car_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, carID)
	if err != nil {
		r.log.Error("failed to query reviews", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.CarID, &rev.UserID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, &rev)
	}
	return reviews, rows.Err()
}

func (r *reviewRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.log.Error("failed to delete review", logger.Stringer("id", id), logger.Error(err))
		return err
	}
	if res.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
