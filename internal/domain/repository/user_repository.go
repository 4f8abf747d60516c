package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/recipe-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned by lookups that match no row.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned by Insert when the email's unique constraint rejects the row.
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository defines the persistence contract for user accounts.
// A single instance is shared by all callers for the life of the process.
type UserRepository interface {
	// Initialize creates the users table and email index if missing. It is
	// safe to call repeatedly and never drops data.
	Initialize(ctx context.Context) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// Insert persists u, failing with ErrEmailTaken if the email exists.
	Insert(ctx context.Context, u *entity.User) error
	Ping(ctx context.Context) error
	Close() error
}
