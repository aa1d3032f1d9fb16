package user

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=user.go -destination=../../mocks/user_repository.go -package=mocks -mock_names=Repository=MockUserRepository

// User is the identity record a profile belongs to. It is owned by the account service;
// this service only reads it and removes it during account deletion.
type User struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar"`
}

type Repository interface {
	// FindByID returns apperror.ErrNotFound when the user does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// Delete removes the user if present. A missing user is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
