package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type ConnectionService struct {
	repo ConnectionRepository
}

func NewConnectionService(repo ConnectionRepository) *ConnectionService {
	return &ConnectionService{
		repo: repo,
	}
}

// CreateConnection opens a pending request from requester to receiver. A
// live (pending or accepted) connection between the pair, in either
// direction, blocks a new one.
//
// The existence check and the insert are separate statements, so two
// simultaneous requests between the same pair can still slip through; the
// partial unique index on the unordered pair catches that case.
func (s *ConnectionService) CreateConnection(ctx context.Context, requesterID, receiverID uuid.UUID, message *string) (*Connection, error) {
	if requesterID == receiverID {
		return nil, ErrSelfConnection
	}

	existing, err := s.repo.GetLiveConnectionBetween(ctx, requesterID, receiverID)
	if err != nil && !errors.Is(err, ErrConnectionNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: connection %s is %s", ErrDuplicateConnection, existing.ID, existing.Status)
	}

	if message != nil {
		trimmed := strings.TrimSpace(*message)
		if trimmed == "" {
			message = nil
		} else {
			message = &trimmed
		}
	}

	return s.repo.CreateConnection(ctx, requesterID, receiverID, message)
}

// UpdateStatus moves a connection along the state machine. The receiver
// accepts or declines; either party may block, from pending or accepted.
func (s *ConnectionService) UpdateStatus(ctx context.Context, connectionID uuid.UUID, newStatus ConnectionStatus, actingUserID uuid.UUID) (*Connection, error) {
	if !newStatus.Valid() || newStatus == ConnectionStatusPending {
		return nil, fmt.Errorf("%w: cannot move to %q", ErrInvalidTransition, newStatus)
	}

	conn, err := s.repo.GetConnectionByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}

	if !conn.IsParty(actingUserID) {
		return nil, ErrNotParticipant
	}

	switch newStatus {
	case ConnectionStatusAccepted, ConnectionStatusDeclined:
		if conn.ReceiverID != actingUserID {
			return nil, fmt.Errorf("%w: only the receiver may %s a request", ErrNotParticipant, verbFor(newStatus))
		}
	case ConnectionStatusBlocked:
		// either party
	}

	if !CanTransition(conn.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, conn.Status, newStatus)
	}

	updated, err := s.repo.UpdateConnectionStatus(ctx, connectionID, conn.Status, newStatus)
	if errors.Is(err, ErrConnectionNotFound) {
		// The status moved between our read and the conditional write.
		// Re-read so the error names the transition that actually failed.
		current, rerr := s.repo.GetConnectionByID(ctx, connectionID)
		if rerr != nil {
			return nil, rerr
		}
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, newStatus)
	}
	return updated, err
}

// ListConnections returns every connection the user is a party to, each
// enriched with the other party's record.
func (s *ConnectionService) ListConnections(ctx context.Context, userID uuid.UUID) ([]*Connection, error) {
	rows, err := s.repo.ListConnectionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	conns := make([]*Connection, 0, len(rows))
	for _, row := range rows {
		conn := row.Connection
		if row.RequesterID == userID {
			if row.Receiver != nil {
				conn.OtherUser = row.Receiver.ToResponse()
			}
		} else {
			if row.Requester != nil {
				conn.OtherUser = row.Requester.ToResponse()
			}
		}
		conns = append(conns, &conn)
	}
	return conns, nil
}

// GetConnection returns a connection the user is a party to.
func (s *ConnectionService) GetConnection(ctx context.Context, connectionID, userID uuid.UUID) (*Connection, error) {
	conn, err := s.repo.GetConnectionByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if !conn.IsParty(userID) {
		return nil, ErrNotParticipant
	}
	return conn, nil
}

func verbFor(status ConnectionStatus) string {
	if status == ConnectionStatusAccepted {
		return "accept"
	}
	return "decline"
}
