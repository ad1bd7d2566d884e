package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileNotFound    = errors.New("fighter profile not found")
	ErrConnectionNotFound = errors.New("connection not found")
	ErrGymNotFound        = errors.New("gym not found")

	ErrValidation    = errors.New("invalid input")
	ErrInvalidFilter = errors.New("invalid search filter")
	ErrEmptyContent  = errors.New("message content is empty")

	ErrSelfConnection      = errors.New("cannot connect with self")
	ErrDuplicateConnection = errors.New("a live connection already exists between these users")
	ErrInvalidTransition   = errors.New("invalid connection status transition")
	ErrNotParticipant      = errors.New("user is not a party to this connection")
	ErrNotAccepted         = errors.New("connection is not accepted")
)
