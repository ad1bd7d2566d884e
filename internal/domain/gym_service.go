package domain

import (
	"context"
	"fmt"
	"strings"
)

type GymService struct {
	repo GymRepository
}

func NewGymService(repo GymRepository) *GymService {
	return &GymService{
		repo: repo,
	}
}

func (s *GymService) ListGyms(ctx context.Context) ([]*Gym, error) {
	return s.repo.ListGyms(ctx)
}

// GymsNear lists gyms within radiusMiles of the point. A zero radius falls
// back to the default search radius, matching partner search.
func (s *GymService) GymsNear(ctx context.Context, latitude, longitude, radiusMiles float64) ([]*Gym, error) {
	if !ValidCoordinates(latitude, longitude) {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrInvalidFilter)
	}
	if radiusMiles == 0 {
		radiusMiles = DefaultSearchRadiusMiles
	}
	if radiusMiles < 0 {
		return nil, fmt.Errorf("%w: radius must not be negative", ErrInvalidFilter)
	}
	return s.repo.ListGymsNear(ctx, latitude, longitude, radiusMiles)
}

func (s *GymService) CreateGym(ctx context.Context, params CreateGymParams) (*Gym, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Address = strings.TrimSpace(params.Address)
	params.City = strings.TrimSpace(params.City)
	params.State = strings.TrimSpace(params.State)
	if params.Name == "" || params.Address == "" || params.City == "" || params.State == "" {
		return nil, fmt.Errorf("%w: name, address, city and state are required", ErrValidation)
	}
	if (params.Latitude == nil) != (params.Longitude == nil) {
		return nil, fmt.Errorf("%w: latitude and longitude must be set together", ErrValidation)
	}
	if params.Latitude != nil && !ValidCoordinates(*params.Latitude, *params.Longitude) {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrValidation)
	}
	return s.repo.CreateGym(ctx, params)
}
