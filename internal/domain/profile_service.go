package domain

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

type ProfileService struct {
	profiles ProfileRepository
}

func NewProfileService(profiles ProfileRepository) *ProfileService {
	return &ProfileService{
		profiles: profiles,
	}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*FighterProfile, error) {
	return s.profiles.GetProfileByUserID(ctx, userID)
}

// UpsertProfile creates or replaces the caller's profile. The operation is
// idempotent per user.
func (s *ProfileService) UpsertProfile(ctx context.Context, params UpsertProfileParams) (*FighterProfile, error) {
	if !params.Discipline.Valid() {
		return nil, fmt.Errorf("%w: unknown discipline %q", ErrValidation, params.Discipline)
	}
	if !params.ExperienceLevel.Valid() {
		return nil, fmt.Errorf("%w: unknown experience level %q", ErrValidation, params.ExperienceLevel)
	}
	params.Location = strings.TrimSpace(params.Location)
	if params.Location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	}
	if (params.Latitude == nil) != (params.Longitude == nil) {
		return nil, fmt.Errorf("%w: latitude and longitude must be set together", ErrValidation)
	}
	if params.Latitude != nil && !ValidCoordinates(*params.Latitude, *params.Longitude) {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrValidation)
	}
	if params.Weight != nil && *params.Weight <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive", ErrValidation)
	}
	return s.profiles.UpsertProfile(ctx, params)
}

// AddRating folds a 1-5 score into a profile's running average. Rating stays
// within [0, 5] and total_ratings only grows.
func (s *ProfileService) AddRating(ctx context.Context, userID uuid.UUID, score int) (*FighterProfile, error) {
	if score < 1 || score > 5 {
		return nil, fmt.Errorf("%w: rating score must be between 1 and 5", ErrValidation)
	}
	return s.profiles.AddProfileRating(ctx, userID, score)
}

// SearchPartners runs the partner search: attribute filters in storage, geo
// filter here, then rating-descending order. Ties keep the repository's
// insertion order.
func (s *ProfileService) SearchPartners(ctx context.Context, filters SearchFilters) ([]*ProfileResult, error) {
	if err := validateFilters(&filters); err != nil {
		return nil, err
	}

	results, err := s.profiles.ListActiveProfiles(ctx, filters)
	if err != nil {
		return nil, err
	}

	if filters.Geo != nil {
		g := filters.Geo
		kept := results[:0]
		for _, r := range results {
			if !r.HasCoordinates() {
				continue
			}
			if WithinRadius(g.Latitude, g.Longitude, *r.Latitude, *r.Longitude, g.RadiusMiles) {
				kept = append(kept, r)
			}
		}
		results = kept
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rating > results[j].Rating
	})

	if filters.Offset > 0 {
		if filters.Offset >= len(results) {
			return []*ProfileResult{}, nil
		}
		results = results[filters.Offset:]
	}
	if filters.Limit > 0 && filters.Limit < len(results) {
		results = results[:filters.Limit]
	}

	return results, nil
}

func validateFilters(filters *SearchFilters) error {
	if filters.Discipline != "" && !filters.Discipline.Valid() {
		return fmt.Errorf("%w: unknown discipline %q", ErrInvalidFilter, filters.Discipline)
	}
	if filters.ExperienceLevel != "" && !filters.ExperienceLevel.Valid() {
		return fmt.Errorf("%w: unknown experience level %q", ErrInvalidFilter, filters.ExperienceLevel)
	}
	filters.Location = strings.TrimSpace(filters.Location)
	if filters.Limit < 0 || filters.Offset < 0 {
		return fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidFilter)
	}
	if filters.Geo != nil {
		g := filters.Geo
		if !ValidCoordinates(g.Latitude, g.Longitude) {
			return fmt.Errorf("%w: coordinates out of range", ErrInvalidFilter)
		}
		if g.RadiusMiles == 0 {
			g.RadiusMiles = DefaultSearchRadiusMiles
		}
		if g.RadiusMiles < 0 {
			return fmt.Errorf("%w: radius must not be negative", ErrInvalidFilter)
		}
	}
	return nil
}
