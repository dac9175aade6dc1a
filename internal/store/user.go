package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mkazanov/nutrilog/internal/domain"
)

// UserStore persists accounts. Password hashing happens inside Create, so
// callers hand over the domain User with the plaintext still set.
type UserStore interface {
	// Create validates and saves a new user, hashing the password.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if the user
	// does not exist. The plaintext password is never populated.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email address. Returns ErrUserNotFound
	// if the user does not exist. The plaintext password is never populated.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// WithTx returns a new UserStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
