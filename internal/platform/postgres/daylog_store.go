package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mkazanov/nutrilog/internal/domain"
	"github.com/mkazanov/nutrilog/internal/platform/logger"
	"github.com/mkazanov/nutrilog/internal/store"
)

// PostgresDayLogStore implements the store.DayLogStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDayLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDayLogStore creates a new PostgreSQL implementation of the DayLogStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresDayLogStore(db store.DBTX, logger *slog.Logger) *PostgresDayLogStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDayLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "daylog_store")),
	}
}

// Ensure PostgresDayLogStore implements store.DayLogStore interface
var _ store.DayLogStore = (*PostgresDayLogStore)(nil)

// AddCalories implements store.DayLogStore.AddCalories
// The increment runs as a single insert-or-add statement, so concurrent
// logs for the same day never lose an addition.
func (s *PostgresDayLogStore) AddCalories(
	ctx context.Context,
	userID uuid.UUID,
	day string,
	kcal float64,
) (*domain.DayLog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO day_logs (user_id, day, logged_calories, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, day) DO UPDATE SET
			logged_calories = day_logs.logged_calories + EXCLUDED.logged_calories,
			updated_at = EXCLUDED.updated_at
		RETURNING user_id, day, logged_calories, updated_at
	`

	var dayLog domain.DayLog
	err := s.db.QueryRowContext(ctx, query, userID, day, kcal, time.Now().UTC()).Scan(
		&dayLog.UserID,
		&dayLog.Day,
		&dayLog.LoggedCalories,
		&dayLog.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to add calories to day log",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("day", day))
		return nil, mapError(err)
	}

	log.Info("calories logged",
		slog.String("user_id", userID.String()),
		slog.String("day", day),
		slog.Float64("added_kcal", kcal),
		slog.Float64("total_kcal", dayLog.LoggedCalories))
	return &dayLog, nil
}

// Get implements store.DayLogStore.Get
// Returns store.ErrDayLogNotFound if nothing has been logged that day.
func (s *PostgresDayLogStore) Get(
	ctx context.Context,
	userID uuid.UUID,
	day string,
) (*domain.DayLog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, day, logged_calories, updated_at
		FROM day_logs
		WHERE user_id = $1 AND day = $2
	`

	var dayLog domain.DayLog
	err := s.db.QueryRowContext(ctx, query, userID, day).Scan(
		&dayLog.UserID,
		&dayLog.Day,
		&dayLog.LoggedCalories,
		&dayLog.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("day log not found",
				slog.String("user_id", userID.String()),
				slog.String("day", day))
			return nil, store.ErrDayLogNotFound
		}
		log.Error("failed to get day log",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("day", day))
		return nil, err
	}

	return &dayLog, nil
}

// WithTx implements store.DayLogStore.WithTx
func (s *PostgresDayLogStore) WithTx(tx *sql.Tx) store.DayLogStore {
	return &PostgresDayLogStore{
		db:     tx,
		logger: s.logger,
	}
}
