package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mkazanov/nutrilog/internal/domain"
	"github.com/mkazanov/nutrilog/internal/platform/logger"
	"github.com/mkazanov/nutrilog/internal/store"
)

// PostgresFoodStore implements the store.FoodStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFoodStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFoodStore creates a new PostgreSQL implementation of the FoodStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresFoodStore(db store.DBTX, logger *slog.Logger) *PostgresFoodStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFoodStore{
		db:     db,
		logger: logger.With(slog.String("component", "food_store")),
	}
}

// Ensure PostgresFoodStore implements store.FoodStore interface
var _ store.FoodStore = (*PostgresFoodStore)(nil)

// GetAll implements store.FoodStore.GetAll
// It loads the user's entire learned-food mapping keyed by normalized name.
func (s *PostgresFoodStore) GetAll(
	ctx context.Context,
	userID uuid.UUID,
) (map[string]*domain.FoodRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, key, display_name, kcal_100g, serving_grams, source, created_at, updated_at
		FROM food_records
		WHERE user_id = $1
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query food records",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, mapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	foods := make(map[string]*domain.FoodRecord)
	for rows.Next() {
		record, err := scanFoodRecord(rows)
		if err != nil {
			log.Error("failed to scan food record row",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, err
		}
		foods[record.Key] = record
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning food record rows",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	log.Debug("loaded food records",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(foods)))
	return foods, nil
}

// GetByKey implements store.FoodStore.GetByKey
// Returns store.ErrFoodNotFound if the user has no food under the key.
func (s *PostgresFoodStore) GetByKey(
	ctx context.Context,
	userID uuid.UUID,
	key string,
) (*domain.FoodRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, key, display_name, kcal_100g, serving_grams, source, created_at, updated_at
		FROM food_records
		WHERE user_id = $1 AND key = $2
	`

	record, err := scanFoodRecord(s.db.QueryRowContext(ctx, query, userID, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("food record not found",
				slog.String("user_id", userID.String()),
				slog.String("key", key))
			return nil, store.ErrFoodNotFound
		}
		log.Error("failed to get food record by key",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("key", key))
		return nil, err
	}

	return record, nil
}

// Upsert implements store.FoodStore.Upsert
// The insert-or-replace runs as a single statement, so a concurrent upsert
// under the same (user, key) pair resolves to last writer wins without a
// partial record ever being visible.
func (s *PostgresFoodStore) Upsert(ctx context.Context, record *domain.FoodRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := record.Validate(); err != nil {
		log.Warn("food record validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("user_id", record.UserID.String()),
			slog.String("key", record.Key))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO food_records (user_id, key, display_name, kcal_100g, serving_grams, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, key) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			kcal_100g = EXCLUDED.kcal_100g,
			serving_grams = EXCLUDED.serving_grams,
			source = EXCLUDED.source,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		record.UserID,
		record.Key,
		record.DisplayName,
		record.Kcal100g,
		record.ServingGrams,
		record.Source,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to upsert food record",
			slog.String("error", err.Error()),
			slog.String("user_id", record.UserID.String()),
			slog.String("key", record.Key))
		return mapError(err)
	}

	log.Info("food record upserted",
		slog.String("user_id", record.UserID.String()),
		slog.String("key", record.Key),
		slog.String("source", string(record.Source)))
	return nil
}

// WithTx implements store.FoodStore.WithTx
func (s *PostgresFoodStore) WithTx(tx *sql.Tx) store.FoodStore {
	return &PostgresFoodStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFoodRecord(row rowScanner) (*domain.FoodRecord, error) {
	var record domain.FoodRecord
	var serving sql.NullFloat64
	var source string

	err := row.Scan(
		&record.UserID,
		&record.Key,
		&record.DisplayName,
		&record.Kcal100g,
		&serving,
		&source,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if serving.Valid {
		record.ServingGrams = &serving.Float64
	}
	record.Source = domain.FoodSource(source)

	return &record, nil
}
