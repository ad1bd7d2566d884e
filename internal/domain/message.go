package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Message belongs to exactly one connection. Messages are immutable once
// written; only read_at changes afterwards.
type Message struct {
	ID           uuid.UUID  `json:"id"`
	ConnectionID uuid.UUID  `json:"connection_id"`
	SenderID     uuid.UUID  `json:"sender_id"`
	Content      string     `json:"content"`
	ReadAt       *time.Time `json:"read_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`

	// Sender identity, populated on reads.
	Sender *UserResponse `json:"sender,omitempty"`
}

type MessageRepository interface {
	CreateMessage(ctx context.Context, connectionID, senderID uuid.UUID, content string) (*Message, error)
	// ListMessagesByConnection returns the connection's messages oldest
	// first, each joined with its sender.
	ListMessagesByConnection(ctx context.Context, connectionID uuid.UUID) ([]*Message, error)
	// MarkMessagesRead stamps read_at on the reader's unread incoming
	// messages and returns how many rows changed.
	MarkMessagesRead(ctx context.Context, connectionID, readerID uuid.UUID) (int, error)
}
