package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mkazanov/nutrilog/internal/domain"
)

// DayLogStore defines the interface for per-day calorie totals.
type DayLogStore interface {
	// AddCalories atomically adds kcal to the user's running total for the
	// given day (formatted as domain.DayKey produces), creating the day row
	// if it does not exist yet. Returns the updated log.
	AddCalories(ctx context.Context, userID uuid.UUID, day string, kcal float64) (*domain.DayLog, error)

	// Get retrieves the user's total for the given day.
	// Returns ErrDayLogNotFound if nothing has been logged that day.
	Get(ctx context.Context, userID uuid.UUID, day string) (*domain.DayLog, error)

	// WithTx returns a new DayLogStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) DayLogStore
}
