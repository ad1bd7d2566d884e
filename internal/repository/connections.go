package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/waryix/FightFind/internal/domain"
)

const connectionColumns = `id, requester_id, receiver_id, status, message, created_at, updated_at`

// CreateConnection inserts a new pending connection request
func (r *PostgresRepository) CreateConnection(ctx context.Context, requesterID, receiverID uuid.UUID, message *string) (*domain.Connection, error) {
	query := `
		INSERT INTO connections (requester_id, receiver_id, status, message)
		VALUES ($1, $2, 'pending', $3)
		RETURNING ` + connectionColumns

	row := r.db.QueryRow(ctx, query, requesterID, receiverID, message)
	return scanConnection(row)
}

// GetConnectionByID retrieves a connection by ID
func (r *PostgresRepository) GetConnectionByID(ctx context.Context, connectionID uuid.UUID) (*domain.Connection, error) {
	query := `SELECT ` + connectionColumns + ` FROM connections WHERE id = $1`
	row := r.db.QueryRow(ctx, query, connectionID)
	return scanConnection(row)
}

// GetLiveConnectionBetween finds a pending or accepted connection between
// the unordered pair, in either direction
func (r *PostgresRepository) GetLiveConnectionBetween(ctx context.Context, userA, userB uuid.UUID) (*domain.Connection, error) {
	query := `
		SELECT ` + connectionColumns + `
		FROM connections
		WHERE ((requester_id = $1 AND receiver_id = $2) OR (requester_id = $2 AND receiver_id = $1))
			AND status IN ('pending', 'accepted')
		LIMIT 1
	`
	row := r.db.QueryRow(ctx, query, userA, userB)
	return scanConnection(row)
}

// ListConnectionsByUser returns every connection the user is a party to,
// with requester and receiver resolved through two independent joins.
func (r *PostgresRepository) ListConnectionsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ConnectionWithUsers, error) {
	query := `
		SELECT c.id, c.requester_id, c.receiver_id, c.status, c.message, c.created_at, c.updated_at,
			req.id, req.email, req.first_name, req.last_name, req.profile_image_url, req.created_at, req.updated_at,
			rcv.id, rcv.email, rcv.first_name, rcv.last_name, rcv.profile_image_url, rcv.created_at, rcv.updated_at
		FROM connections c
		INNER JOIN users req ON req.id = c.requester_id
		INNER JOIN users rcv ON rcv.id = c.receiver_id
		WHERE c.requester_id = $1 OR c.receiver_id = $1
		ORDER BY c.updated_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*domain.ConnectionWithUsers
	for rows.Next() {
		var res domain.ConnectionWithUsers
		var requester, receiver domain.User
		err := rows.Scan(
			&res.ID,
			&res.RequesterID,
			&res.ReceiverID,
			&res.Status,
			&res.Message,
			&res.CreatedAt,
			&res.UpdatedAt,
			&requester.ID,
			&requester.Email,
			&requester.FirstName,
			&requester.LastName,
			&requester.ProfileImageURL,
			&requester.CreatedAt,
			&requester.UpdatedAt,
			&receiver.ID,
			&receiver.Email,
			&receiver.FirstName,
			&receiver.LastName,
			&receiver.ProfileImageURL,
			&receiver.CreatedAt,
			&receiver.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		res.Requester = &requester
		res.Receiver = &receiver
		results = append(results, &res)
	}
	return results, rows.Err()
}

// UpdateConnectionStatus moves a connection to a new status and refreshes
// updated_at. The update is conditional on the expected current status, so
// a concurrent transition makes it match zero rows instead of clobbering.
func (r *PostgresRepository) UpdateConnectionStatus(ctx context.Context, connectionID uuid.UUID, from, to domain.ConnectionStatus) (*domain.Connection, error) {
	query := `
		UPDATE connections SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + connectionColumns

	row := r.db.QueryRow(ctx, query, connectionID, from, to)
	return scanConnection(row)
}

func scanConnection(row pgx.Row) (*domain.Connection, error) {
	var conn domain.Connection
	err := row.Scan(
		&conn.ID,
		&conn.RequesterID,
		&conn.ReceiverID,
		&conn.Status,
		&conn.Message,
		&conn.CreatedAt,
		&conn.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConnectionNotFound
		}
		return nil, err
	}
	return &conn, nil
}
