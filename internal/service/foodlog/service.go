// Package foodlog drives the multi-turn food logging conversation: it feeds
// user messages through the resolution pipeline, asks follow-up questions
// when resolution or quantity conversion needs more input, and charges the
// final calorie amount to the user's day log.
package foodlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkazanov/nutrilog/internal/domain"
)

// PromptKind identifies the follow-up question being asked.
type PromptKind string

// Possible follow-up prompts
const (
	// PromptChoice asks the user to pick one of Options or reject them all.
	PromptChoice PromptKind = "choice"

	// PromptManualKcal asks for a kcal/100g value.
	PromptManualKcal PromptKind = "manual_kcal"

	// PromptServingGrams asks for the gram weight of one piece or serving.
	PromptServingGrams PromptKind = "serving_grams"

	// PromptGrams asks for the eaten amount in grams.
	PromptGrams PromptKind = "grams"
)

// Prompt is a follow-up question to the user. Only the fields relevant to
// the Kind are set.
type Prompt struct {
	Kind       PromptKind         `json:"kind"`
	FoodName   string             `json:"food_name,omitempty"`
	Kcal100g   float64            `json:"kcal_100g,omitempty"`
	Amount     float64            `json:"amount,omitempty"`
	Options    []domain.Candidate `json:"options,omitempty"`
	Confidence int                `json:"confidence,omitempty"`
}

// LogEntry is one successfully logged meal.
type LogEntry struct {
	FoodName      string  `json:"food_name"`
	Kcal100g      float64 `json:"kcal_100g"`
	Grams         float64 `json:"grams"`
	Calories      float64 `json:"calories"`
	Day           string  `json:"day"`
	TotalCalories float64 `json:"total_calories"`
	Confidence    int     `json:"confidence"`
	Source        string  `json:"source"`
}

// Outcome is the result of one conversation turn: either the meal was
// logged (Logged set) or the service needs more input (Prompt set).
// Exactly one of the two fields is non-nil.
type Outcome struct {
	Logged *LogEntry `json:"logged,omitempty"`
	Prompt *Prompt   `json:"prompt,omitempty"`
}

// Service is the food logging conversation as the transport layer sees it.
// All methods are safe for concurrent use; turns for the same user are
// serialized and a new LogFood always replaces whatever question was
// pending (last writer wins).
type Service interface {
	// LogFood starts a logging conversation from a free-text message such
	// as "банан 1шт" or "oatmeal 60g". Any pending question for the user is
	// discarded. Returns ErrEmptyQuery for blank input.
	LogFood(ctx context.Context, userID uuid.UUID, text string) (*Outcome, error)

	// ChooseOption answers a PromptChoice with the zero-based index of the
	// picked candidate. Returns ErrNoPendingPrompt when no choice is
	// pending and ErrInvalidChoice for an out-of-range index; in both
	// cases the pending question is preserved.
	ChooseOption(ctx context.Context, userID uuid.UUID, index int) (*Outcome, error)

	// ChooseManual answers a PromptChoice by rejecting every candidate;
	// the conversation moves on to asking for a manual kcal/100g value.
	// Returns ErrNoPendingPrompt when no choice is pending.
	ChooseManual(ctx context.Context, userID uuid.UUID) (*Outcome, error)

	// EnterManualKcal answers a PromptManualKcal. The value is persisted
	// into the user's learned foods under the normalized query, so the next
	// mention of the food resolves locally. Returns ErrInvalidInput for a
	// non-positive or implausibly large value, preserving the question.
	EnterManualKcal(ctx context.Context, userID uuid.UUID, kcal100g float64) (*Outcome, error)

	// EnterServingGrams answers a PromptServingGrams. The serving size is
	// learned for the food, then the original quantity is converted and
	// logged. Returns ErrInvalidInput for an implausible value, preserving
	// the question.
	EnterServingGrams(ctx context.Context, userID uuid.UUID, grams float64) (*Outcome, error)

	// EnterGrams answers a PromptGrams with the eaten amount.
	// Returns ErrInvalidInput for an implausible value, preserving the
	// question.
	EnterGrams(ctx context.Context, userID uuid.UUID, grams float64) (*Outcome, error)

	// Cancel discards any pending question for the user.
	Cancel(ctx context.Context, userID uuid.UUID) error
}

// Common error types for the food logging service
var (
	// ErrEmptyQuery indicates a blank food message.
	ErrEmptyQuery = errors.New("food query cannot be empty")

	// ErrNoPendingPrompt indicates the turn answers a question that is not
	// currently pending for the user.
	ErrNoPendingPrompt = errors.New("no pending prompt for user")

	// ErrInvalidChoice indicates an out-of-range option index.
	ErrInvalidChoice = errors.New("invalid option choice")

	// ErrInvalidInput indicates a value outside the plausible range for the
	// pending question. The question remains pending.
	ErrInvalidInput = errors.New("invalid input value")
)

// ServiceError wraps errors from the food logging service with additional
// context, so consumers can differentiate error types with errors.As
// instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "log_food")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewLogFoodError returns a new ServiceError for the log_food operation.
func NewLogFoodError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "log_food",
		Message:   message,
		Err:       err,
	}
}
