package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/waryix/FightFind/internal/domain"
)

const gymColumns = `id, name, address, city, state, zip_code, latitude, longitude, phone,
	website, description, disciplines, amenities, rating, total_ratings, verified,
	created_at, updated_at`

// CreateGym inserts a gym listing
func (r *PostgresRepository) CreateGym(ctx context.Context, params domain.CreateGymParams) (*domain.Gym, error) {
	query := `
		INSERT INTO gyms
			(name, address, city, state, zip_code, latitude, longitude, phone,
			 website, description, disciplines, amenities)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + gymColumns

	row := r.db.QueryRow(ctx, query,
		params.Name,
		params.Address,
		params.City,
		params.State,
		params.ZipCode,
		params.Latitude,
		params.Longitude,
		params.Phone,
		params.Website,
		params.Description,
		params.Disciplines,
		params.Amenities,
	)
	return scanGym(row)
}

// ListGyms returns all gyms, best rated first
func (r *PostgresRepository) ListGyms(ctx context.Context) ([]*domain.Gym, error) {
	query := `SELECT ` + gymColumns + ` FROM gyms ORDER BY rating DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectGyms(rows)
}

// ListGymsNear returns gyms inside the planar-approximated radius, best
// rated first. The formula mirrors domain.DistanceMiles; gyms without
// coordinates never match.
func (r *PostgresRepository) ListGymsNear(ctx context.Context, latitude, longitude, radiusMiles float64) ([]*domain.Gym, error) {
	query := `
		SELECT ` + gymColumns + `
		FROM gyms
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
			AND SQRT(
				POW(69.1 * (latitude - $1), 2) +
				POW(69.1 * ($2 - longitude) * COS(latitude / 57.3), 2)
			) <= $3
		ORDER BY rating DESC
	`
	rows, err := r.db.Query(ctx, query, latitude, longitude, radiusMiles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectGyms(rows)
}

func collectGyms(rows pgx.Rows) ([]*domain.Gym, error) {
	var gyms []*domain.Gym
	for rows.Next() {
		var g domain.Gym
		err := rows.Scan(
			&g.ID,
			&g.Name,
			&g.Address,
			&g.City,
			&g.State,
			&g.ZipCode,
			&g.Latitude,
			&g.Longitude,
			&g.Phone,
			&g.Website,
			&g.Description,
			&g.Disciplines,
			&g.Amenities,
			&g.Rating,
			&g.TotalRatings,
			&g.Verified,
			&g.CreatedAt,
			&g.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		gyms = append(gyms, &g)
	}
	return gyms, rows.Err()
}

func scanGym(row pgx.Row) (*domain.Gym, error) {
	var g domain.Gym
	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.Address,
		&g.City,
		&g.State,
		&g.ZipCode,
		&g.Latitude,
		&g.Longitude,
		&g.Phone,
		&g.Website,
		&g.Description,
		&g.Disciplines,
		&g.Amenities,
		&g.Rating,
		&g.TotalRatings,
		&g.Verified,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGymNotFound
		}
		return nil, err
	}
	return &g, nil
}
