package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusDeclined ConnectionStatus = "declined"
	ConnectionStatusBlocked  ConnectionStatus = "blocked"
)

func (s ConnectionStatus) Valid() bool {
	switch s {
	case ConnectionStatusPending, ConnectionStatusAccepted, ConnectionStatusDeclined, ConnectionStatusBlocked:
		return true
	}
	return false
}

// Live reports whether the connection still gates the pair: pending and
// accepted block new requests between the same two users; declined and
// blocked are terminal and do not.
func (s ConnectionStatus) Live() bool {
	return s == ConnectionStatusPending || s == ConnectionStatusAccepted
}

// transitions is the allowed state machine. Declined and blocked have no
// outgoing edges; blocked is reachable from both pending and accepted.
var transitions = map[ConnectionStatus][]ConnectionStatus{
	ConnectionStatusPending:  {ConnectionStatusAccepted, ConnectionStatusDeclined, ConnectionStatusBlocked},
	ConnectionStatusAccepted: {ConnectionStatusBlocked},
}

// CanTransition reports whether from -> to is an allowed edge.
func CanTransition(from, to ConnectionStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Connection is a directed sparring request from requester to receiver.
// Connections are never deleted; their lifecycle is the status column.
type Connection struct {
	ID          uuid.UUID        `json:"id"`
	RequesterID uuid.UUID        `json:"requester_id"`
	ReceiverID  uuid.UUID        `json:"receiver_id"`
	Status      ConnectionStatus `json:"status"`
	Message     *string          `json:"message,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// OtherUser is the counterparty relative to the user who listed the
	// connection. Populated on reads, never stored.
	OtherUser *UserResponse `json:"user,omitempty"`
}

// IsParty reports whether userID is the requester or the receiver.
func (c *Connection) IsParty(userID uuid.UUID) bool {
	return c.RequesterID == userID || c.ReceiverID == userID
}

// ConnectionWithUsers is a connection joined with both party records, each
// resolved independently.
type ConnectionWithUsers struct {
	Connection
	Requester *User
	Receiver  *User
}

type ConnectionRepository interface {
	CreateConnection(ctx context.Context, requesterID, receiverID uuid.UUID, message *string) (*Connection, error)
	GetConnectionByID(ctx context.Context, connectionID uuid.UUID) (*Connection, error)
	// GetLiveConnectionBetween looks up a pending or accepted connection
	// between the unordered pair, in either direction.
	GetLiveConnectionBetween(ctx context.Context, userA, userB uuid.UUID) (*Connection, error)
	// ListConnectionsByUser returns every connection the user is a party to,
	// any state, most recently updated first, with requester and receiver
	// joined separately.
	ListConnectionsByUser(ctx context.Context, userID uuid.UUID) ([]*ConnectionWithUsers, error)
	// UpdateConnectionStatus moves the connection from the expected current
	// status to the new one in a single conditional update. It returns
	// ErrConnectionNotFound when no row matches, either because the
	// connection is gone or because its status changed since it was read.
	UpdateConnectionStatus(ctx context.Context, connectionID uuid.UUID, from, to ConnectionStatus) (*Connection, error)
}
