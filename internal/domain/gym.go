package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Gym is a training facility surfaced alongside partner search.
type Gym struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	ZipCode      *string   `json:"zip_code,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Website      *string   `json:"website,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Disciplines  *string   `json:"disciplines,omitempty"` // JSON array string
	Amenities    *string   `json:"amenities,omitempty"`   // JSON array string
	Rating       float64   `json:"rating"`
	TotalRatings int       `json:"total_ratings"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateGymParams struct {
	Name        string
	Address     string
	City        string
	State       string
	ZipCode     *string
	Latitude    *float64
	Longitude   *float64
	Phone       *string
	Website     *string
	Description *string
	Disciplines *string
	Amenities   *string
}

type GymRepository interface {
	CreateGym(ctx context.Context, params CreateGymParams) (*Gym, error)
	// ListGyms returns all gyms, best rated first.
	ListGyms(ctx context.Context) ([]*Gym, error)
	// ListGymsNear returns gyms within radiusMiles of the point, best rated
	// first. Gyms without coordinates never match.
	ListGymsNear(ctx context.Context, latitude, longitude, radiusMiles float64) ([]*Gym, error)
}
