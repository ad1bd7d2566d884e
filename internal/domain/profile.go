package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Discipline string

const (
	DisciplineBoxing   Discipline = "boxing"
	DisciplineMMA      Discipline = "mma"
	DisciplineMuayThai Discipline = "muay-thai"
	DisciplineBJJ      Discipline = "bjj"
)

func (d Discipline) Valid() bool {
	switch d {
	case DisciplineBoxing, DisciplineMMA, DisciplineMuayThai, DisciplineBJJ:
		return true
	}
	return false
}

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
	ExperienceProfessional ExperienceLevel = "professional"
)

func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced, ExperienceProfessional:
		return true
	}
	return false
}

// FighterProfile holds the sparring attributes a user exposes to partner
// search. Each user owns at most one profile (unique user_id).
type FighterProfile struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	Discipline      Discipline      `json:"discipline"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	WeightClass     *string         `json:"weight_class,omitempty"`
	Weight          *int            `json:"weight,omitempty"` // lbs
	Location        string          `json:"location"`
	Latitude        *float64        `json:"latitude,omitempty"`
	Longitude       *float64        `json:"longitude,omitempty"`
	Bio             *string         `json:"bio,omitempty"`
	Availability    *string         `json:"availability,omitempty"`
	IsActive        bool            `json:"is_active"`
	Verified        bool            `json:"verified"`
	Rating          float64         `json:"rating"`
	TotalRatings    int             `json:"total_ratings"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// HasCoordinates reports whether the profile carries a usable position.
// Profiles without one are skipped by geo-filtered searches.
func (p *FighterProfile) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// ProfileResult is the profile+owner composite partner search returns.
type ProfileResult struct {
	FighterProfile
	User *UserResponse `json:"user"`
}

// UpsertProfileParams is the validated input for creating or replacing a
// user's profile.
type UpsertProfileParams struct {
	UserID          uuid.UUID
	Discipline      Discipline
	ExperienceLevel ExperienceLevel
	WeightClass     *string
	Weight          *int
	Location        string
	Latitude        *float64
	Longitude       *float64
	Bio             *string
	Availability    *string
	IsActive        bool
}

// GeoFilter bounds a search to a radius around a point.
type GeoFilter struct {
	Latitude    float64
	Longitude   float64
	RadiusMiles float64
}

// SearchFilters narrows partner search. Zero-valued fields are ignored; all
// present fields combine with AND.
type SearchFilters struct {
	Discipline      Discipline
	ExperienceLevel ExperienceLevel
	Location        string
	Geo             *GeoFilter
	Limit           int
	Offset          int
}

type ProfileRepository interface {
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*FighterProfile, error)
	UpsertProfile(ctx context.Context, params UpsertProfileParams) (*FighterProfile, error)
	// ListActiveProfiles returns active profiles joined with their owners,
	// narrowed by the attribute filters only (geo is applied by the caller),
	// in insertion order.
	ListActiveProfiles(ctx context.Context, filters SearchFilters) ([]*ProfileResult, error)
	// AddProfileRating folds score into the running average in a single
	// atomic update and increments total_ratings.
	AddProfileRating(ctx context.Context, userID uuid.UUID, score int) (*FighterProfile, error)
}
