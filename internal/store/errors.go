package store

import (
	"errors"
	"fmt"
)

// The store error tree. Entity-specific errors wrap the generic ones, so
// callers can match broadly (errors.Is(err, ErrNotFound)) or precisely
// (errors.Is(err, ErrFoodNotFound)).
var (
	// ErrNotFound is the generic "entity does not exist" error.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when a write would violate a uniqueness rule.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. The wrapped error carries the specific violation.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrFoodNotFound indicates the user has no learned food under the
	// requested key.
	ErrFoodNotFound = fmt.Errorf("%w: food", ErrNotFound)

	// ErrDayLogNotFound indicates no calories have been logged for the
	// requested day.
	ErrDayLogNotFound = fmt.Errorf("%w: day log", ErrNotFound)

	// ErrEmailExists indicates a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)
