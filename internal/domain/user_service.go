package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserService exposes the account mirror. The auth collaborator owns
// identity; it pushes attribute changes here via SyncUser.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// SyncUser upserts the caller's account row with the attributes resolved by
// the auth service. Idempotent per user id.
func (s *UserService) SyncUser(ctx context.Context, params UpsertUserParams) (*User, error) {
	if params.ID == uuid.Nil {
		return nil, ErrValidation
	}
	return s.repo.UpsertUser(ctx, params)
}
