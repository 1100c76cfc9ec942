package models

import (
	"time"

	"github.com/google/uuid"
)

type Car struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	Category     string    `json:"category"`
	Seats        int       `json:"seats"`
	FuelType     string    `json:"fuel_type"`
	Transmission string    `json:"transmission"`
	DailyRate    float64   `json:"daily_rate"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	IsListed     bool      `json:"is_listed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
