package repository

import (
	"context"

	"advisor-api/internal/domain/user"
)

// UserRepository is the only component allowed to touch the user store.
type UserRepository interface {
	// GetUserByEmail returns ErrNotFound when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	// Create assigns u.ID and returns ErrAlreadyExists when the email is taken.
	// Uniqueness is enforced by the store itself, not by a preceding read.
	Create(ctx context.Context, u *user.User) error
	// EnsureSchema creates the table or collection and its unique email index.
	EnsureSchema(ctx context.Context) error
	Ping(ctx context.Context) error
}
