package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// FoodSource identifies how a food record entered a user's private food list.
type FoodSource string

// Possible food record sources
const (
	// FoodSourceManual marks records the user entered explicitly
	// (direct kcal/100g input or the add-food endpoint).
	FoodSourceManual FoodSource = "manual"

	// FoodSourceLearned marks records the system created or enriched while
	// resolving a query, e.g. a serving size learned during disambiguation.
	FoodSourceLearned FoodSource = "learned"
)

// Common validation errors for FoodRecord
var (
	ErrEmptyFoodUserID    = errors.New("food record user ID cannot be empty")
	ErrEmptyFoodKey       = errors.New("food record key cannot be empty")
	ErrEmptyFoodName      = errors.New("food record display name cannot be empty")
	ErrNonPositiveKcal    = errors.New("kcal per 100g must be positive")
	ErrNonPositiveServing = errors.New("serving grams must be positive")
	ErrInvalidFoodSource  = errors.New("invalid food record source")
)

// FoodRecord is one entry in a user's private learned-food mapping.
// The Key is the normalized form of the display name and is unique within
// a user; it is what queries are matched against.
type FoodRecord struct {
	UserID       uuid.UUID  `json:"user_id"`
	Key          string     `json:"key"`
	DisplayName  string     `json:"display_name"`
	Kcal100g     float64    `json:"kcal_100g"`
	ServingGrams *float64   `json:"serving_grams,omitempty"`
	Source       FoodSource `json:"source"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewFoodRecord creates a new FoodRecord for the given user.
// The caller supplies the already-normalized key; this package does not
// depend on the normalizer so that the matching pipeline can depend on
// domain types without a cycle.
// Returns an error if validation fails.
func NewFoodRecord(
	userID uuid.UUID,
	key, displayName string,
	kcal100g float64,
	servingGrams *float64,
	source FoodSource,
) (*FoodRecord, error) {
	record := &FoodRecord{
		UserID:       userID,
		Key:          key,
		DisplayName:  displayName,
		Kcal100g:     kcal100g,
		ServingGrams: servingGrams,
		Source:       source,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Validate checks if the FoodRecord has valid data.
// Returns an error if any field fails validation.
func (r *FoodRecord) Validate() error {
	if r.UserID == uuid.Nil {
		return ErrEmptyFoodUserID
	}

	if r.Key == "" {
		return ErrEmptyFoodKey
	}

	if r.DisplayName == "" {
		return ErrEmptyFoodName
	}

	if r.Kcal100g <= 0 {
		return ErrNonPositiveKcal
	}

	if r.ServingGrams != nil && *r.ServingGrams <= 0 {
		return ErrNonPositiveServing
	}

	if !isValidFoodSource(r.Source) {
		return ErrInvalidFoodSource
	}

	return nil
}

// SetServingGrams records a learned serving size and updates the
// UpdatedAt timestamp. Returns an error if grams is not positive.
func (r *FoodRecord) SetServingGrams(grams float64) error {
	if grams <= 0 {
		return ErrNonPositiveServing
	}

	r.ServingGrams = &grams
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// isValidFoodSource checks if the given source is a valid FoodSource.
func isValidFoodSource(source FoodSource) bool {
	switch source {
	case FoodSourceManual, FoodSourceLearned:
		return true
	default:
		return false
	}
}
