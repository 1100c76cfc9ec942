package models

import (
	"time"

	"github.com/google/uuid"
)

type Favorite struct {
	UserID    uuid.UUID `json:"user_id"`
	CarID     uuid.UUID `json:"car_id"`
	CreatedAt time.Time `json:"created_at"`
}
