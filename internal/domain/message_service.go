package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type MessageService struct {
	messages    MessageRepository
	connections ConnectionRepository
}

func NewMessageService(messages MessageRepository, connections ConnectionRepository) *MessageService {
	return &MessageService{
		messages:    messages,
		connections: connections,
	}
}

// SendMessage writes a message on an accepted connection. The connection is
// the gate: no message moves on a pending, declined or blocked connection,
// and only the two parties may write.
func (s *MessageService) SendMessage(ctx context.Context, connectionID, senderID uuid.UUID, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	conn, err := s.connections.GetConnectionByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}

	if !conn.IsParty(senderID) {
		return nil, ErrNotParticipant
	}
	if conn.Status != ConnectionStatusAccepted {
		return nil, fmt.Errorf("%w: status is %s", ErrNotAccepted, conn.Status)
	}

	return s.messages.CreateMessage(ctx, connectionID, senderID, content)
}

// ListMessages returns the conversation oldest first, sender attached to
// each message. Only a party to the connection may read it.
func (s *MessageService) ListMessages(ctx context.Context, connectionID, requestingUserID uuid.UUID) ([]*Message, error) {
	conn, err := s.connections.GetConnectionByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if !conn.IsParty(requestingUserID) {
		return nil, ErrNotParticipant
	}

	return s.messages.ListMessagesByConnection(ctx, connectionID)
}

// MarkRead stamps read_at on the reader's unread incoming messages.
func (s *MessageService) MarkRead(ctx context.Context, connectionID, readerID uuid.UUID) (int, error) {
	conn, err := s.connections.GetConnectionByID(ctx, connectionID)
	if err != nil {
		return 0, err
	}
	if !conn.IsParty(readerID) {
		return 0, ErrNotParticipant
	}

	return s.messages.MarkMessagesRead(ctx, connectionID, readerID)
}
