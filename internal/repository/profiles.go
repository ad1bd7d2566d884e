package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/waryix/FightFind/internal/domain"
)

const profileColumns = `id, user_id, discipline, experience_level, weight_class, weight, location,
	latitude, longitude, bio, availability, is_active, verified, rating, total_ratings,
	created_at, updated_at`

// GetProfileByUserID retrieves a user's fighter profile
func (r *PostgresRepository) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*domain.FighterProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM fighter_profiles WHERE user_id = $1`
	row := r.db.QueryRow(ctx, query, userID)
	return scanProfile(row)
}

// UpsertProfile creates or replaces a user's fighter profile
func (r *PostgresRepository) UpsertProfile(ctx context.Context, params domain.UpsertProfileParams) (*domain.FighterProfile, error) {
	query := `
		INSERT INTO fighter_profiles
			(user_id, discipline, experience_level, weight_class, weight, location,
			 latitude, longitude, bio, availability, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			discipline = EXCLUDED.discipline,
			experience_level = EXCLUDED.experience_level,
			weight_class = EXCLUDED.weight_class,
			weight = EXCLUDED.weight,
			location = EXCLUDED.location,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			bio = EXCLUDED.bio,
			availability = EXCLUDED.availability,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
		RETURNING ` + profileColumns

	row := r.db.QueryRow(ctx, query,
		params.UserID,
		params.Discipline,
		params.ExperienceLevel,
		params.WeightClass,
		params.Weight,
		params.Location,
		params.Latitude,
		params.Longitude,
		params.Bio,
		params.Availability,
		params.IsActive,
	)
	return scanProfile(row)
}

// ListActiveProfiles returns active profiles joined with their owners,
// narrowed by the attribute filters. Geo filtering happens in the service.
// Rows come back in insertion order so the service's rating sort keeps
// stable ties.
func (r *PostgresRepository) ListActiveProfiles(ctx context.Context, filters domain.SearchFilters) ([]*domain.ProfileResult, error) {
	query := `
		SELECT p.id, p.user_id, p.discipline, p.experience_level, p.weight_class, p.weight,
			p.location, p.latitude, p.longitude, p.bio, p.availability, p.is_active,
			p.verified, p.rating, p.total_ratings, p.created_at, p.updated_at,
			u.id, u.email, u.first_name, u.last_name, u.profile_image_url, u.created_at, u.updated_at
		FROM fighter_profiles p
		INNER JOIN users u ON u.id = p.user_id
		WHERE p.is_active = TRUE
	`
	args := []interface{}{}

	if filters.Discipline != "" {
		args = append(args, filters.Discipline)
		query += ` AND p.discipline = $` + strconv.Itoa(len(args))
	}
	if filters.ExperienceLevel != "" {
		args = append(args, filters.ExperienceLevel)
		query += ` AND p.experience_level = $` + strconv.Itoa(len(args))
	}
	if filters.Location != "" {
		args = append(args, "%"+filters.Location+"%")
		query += ` AND p.location ILIKE $` + strconv.Itoa(len(args))
	}

	query += ` ORDER BY p.created_at ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*domain.ProfileResult
	for rows.Next() {
		var res domain.ProfileResult
		var owner domain.User
		err := rows.Scan(
			&res.ID,
			&res.UserID,
			&res.Discipline,
			&res.ExperienceLevel,
			&res.WeightClass,
			&res.Weight,
			&res.Location,
			&res.Latitude,
			&res.Longitude,
			&res.Bio,
			&res.Availability,
			&res.IsActive,
			&res.Verified,
			&res.Rating,
			&res.TotalRatings,
			&res.CreatedAt,
			&res.UpdatedAt,
			&owner.ID,
			&owner.Email,
			&owner.FirstName,
			&owner.LastName,
			&owner.ProfileImageURL,
			&owner.CreatedAt,
			&owner.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		res.User = owner.ToResponse()
		results = append(results, &res)
	}
	return results, rows.Err()
}

// AddProfileRating folds a score into the running average in one atomic
// update. LEAST keeps the stored value inside the 0-5 bound even if the
// column already carries a drifted value.
func (r *PostgresRepository) AddProfileRating(ctx context.Context, userID uuid.UUID, score int) (*domain.FighterProfile, error) {
	query := `
		UPDATE fighter_profiles
		SET rating = LEAST(5.00, ROUND((rating * total_ratings + $2) / (total_ratings + 1), 2)),
			total_ratings = total_ratings + 1,
			updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + profileColumns

	row := r.db.QueryRow(ctx, query, userID, score)
	return scanProfile(row)
}

func scanProfile(row pgx.Row) (*domain.FighterProfile, error) {
	var p domain.FighterProfile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Discipline,
		&p.ExperienceLevel,
		&p.WeightClass,
		&p.Weight,
		&p.Location,
		&p.Latitude,
		&p.Longitude,
		&p.Bio,
		&p.Availability,
		&p.IsActive,
		&p.Verified,
		&p.Rating,
		&p.TotalRatings,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}
