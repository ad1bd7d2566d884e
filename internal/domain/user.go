package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User represents an account in the domain layer. Accounts are created and
// verified by the external auth service; this core only reads them and
// mirrors the attributes it receives via upsert.
type User struct {
	ID              uuid.UUID `json:"id"`
	Email           *string   `json:"email,omitempty"`
	FirstName       *string   `json:"first_name,omitempty"`
	LastName        *string   `json:"last_name,omitempty"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserResponse is the public representation of a user
type UserResponse struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email,omitempty"`
	FirstName       string    `json:"first_name,omitempty"`
	LastName        string    `json:"last_name,omitempty"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToResponse converts a User to a UserResponse
func (u *User) ToResponse() *UserResponse {
	response := &UserResponse{
		ID:        u.ID,
		CreatedAt: u.CreatedAt,
	}

	if u.Email != nil {
		response.Email = *u.Email
	}
	if u.FirstName != nil {
		response.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		response.LastName = *u.LastName
	}
	if u.ProfileImageURL != nil {
		response.ProfileImageURL = *u.ProfileImageURL
	}

	return response
}

// UpsertUserParams carries the identity attributes supplied by the auth
// collaborator.
type UpsertUserParams struct {
	ID              uuid.UUID
	Email           *string
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
}

type UserRepository interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpsertUser(ctx context.Context, params UpsertUserParams) (*User, error)
}
