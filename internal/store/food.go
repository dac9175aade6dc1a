package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mkazanov/nutrilog/internal/domain"
)

// FoodStore defines the interface for persisting a user's learned foods.
// Foods are keyed by the normalized name; the full per-user mapping is the
// search space of the local matcher, so reads return it whole.
type FoodStore interface {
	// GetAll retrieves every learned food for the user, keyed by normalized
	// name. Returns an empty map when the user has no foods yet.
	GetAll(ctx context.Context, userID uuid.UUID) (map[string]*domain.FoodRecord, error)

	// GetByKey retrieves a single learned food by its normalized key.
	// Returns ErrFoodNotFound if the user has no food under that key.
	GetByKey(ctx context.Context, userID uuid.UUID, key string) (*domain.FoodRecord, error)

	// Upsert atomically inserts the food or replaces the existing record
	// under the same (user, key) pair. Validates the record first and
	// returns validation errors wrapped in ErrInvalidEntity.
	Upsert(ctx context.Context, record *domain.FoodRecord) error

	// WithTx returns a new FoodStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) FoodStore
}
