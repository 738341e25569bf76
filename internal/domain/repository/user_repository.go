package repository

import (
	"context"
	"errors"

	"github.com/carbonsaathi/carbonsaathi-api/internal/domain/entity"
)

var (
	// ErrNotFound is a normal outcome for lookups; absence is not a failure.
	ErrNotFound = errors.New("account not found")
	// ErrEmailTaken is returned by Create when the email unique constraint
	// rejects the row, regardless of any earlier existence check.
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
