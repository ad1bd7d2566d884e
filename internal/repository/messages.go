package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/waryix/FightFind/internal/domain"
)

// CreateMessage inserts a message on a connection
func (r *PostgresRepository) CreateMessage(ctx context.Context, connectionID, senderID uuid.UUID, content string) (*domain.Message, error) {
	query := `
		INSERT INTO messages (connection_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, connection_id, sender_id, content, read_at, created_at
	`
	row := r.db.QueryRow(ctx, query, connectionID, senderID, content)

	var msg domain.Message
	err := row.Scan(
		&msg.ID,
		&msg.ConnectionID,
		&msg.SenderID,
		&msg.Content,
		&msg.ReadAt,
		&msg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConnectionNotFound
		}
		return nil, err
	}
	return &msg, nil
}

// ListMessagesByConnection returns a connection's messages oldest first,
// each joined with its sender
func (r *PostgresRepository) ListMessagesByConnection(ctx context.Context, connectionID uuid.UUID) ([]*domain.Message, error) {
	query := `
		SELECT m.id, m.connection_id, m.sender_id, m.content, m.read_at, m.created_at,
			u.id, u.email, u.first_name, u.last_name, u.profile_image_url, u.created_at, u.updated_at
		FROM messages m
		INNER JOIN users u ON u.id = m.sender_id
		WHERE m.connection_id = $1
		ORDER BY m.created_at ASC
	`
	rows, err := r.db.Query(ctx, query, connectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		var msg domain.Message
		var sender domain.User
		err := rows.Scan(
			&msg.ID,
			&msg.ConnectionID,
			&msg.SenderID,
			&msg.Content,
			&msg.ReadAt,
			&msg.CreatedAt,
			&sender.ID,
			&sender.Email,
			&sender.FirstName,
			&sender.LastName,
			&sender.ProfileImageURL,
			&sender.CreatedAt,
			&sender.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		msg.Sender = sender.ToResponse()
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}

// MarkMessagesRead stamps read_at on the reader's unread incoming messages
func (r *PostgresRepository) MarkMessagesRead(ctx context.Context, connectionID, readerID uuid.UUID) (int, error) {
	query := `
		UPDATE messages SET read_at = NOW()
		WHERE connection_id = $1 AND sender_id <> $2 AND read_at IS NULL
	`
	tag, err := r.db.Exec(ctx, query, connectionID, readerID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
