package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mkazanov/nutrilog/internal/service/auth"
	"github.com/mkazanov/nutrilog/internal/service/foodlog"
	"github.com/mkazanov/nutrilog/internal/store"
)

// MapErrorToStatusCode translates service and store errors into HTTP
// status codes. Anything unrecognized is a 500, so new internal errors
// never leak as client errors by accident.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Answering a question that is not pending is a state conflict, not a
	// malformed request.
	case errors.Is(err, foodlog.ErrNoPendingPrompt):
		return http.StatusConflict

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, foodlog.ErrEmptyQuery),
		errors.Is(err, foodlog.ErrInvalidChoice),
		errors.Is(err, foodlog.ErrInvalidInput):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage picks the client-facing message for an error. Only
// fixed strings leave this function; internal error text stays in the logs.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, foodlog.ErrNoPendingPrompt):
		return "No pending question to answer"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrFoodNotFound):
		return "Food not found"

	case errors.Is(err, store.ErrDayLogNotFound):
		return "Nothing logged for this day"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, foodlog.ErrEmptyQuery):
		return "Food message cannot be empty"

	case errors.Is(err, foodlog.ErrInvalidChoice):
		return "Invalid option choice"

	case errors.Is(err, foodlog.ErrInvalidInput):
		return "Value is out of the accepted range"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a validator error into a short message
// naming the first offending field without echoing the submitted value.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return "Invalid " + fe.Field() + ": " + validationTagMessage(fe.Tag())
	}
	return "Validation error"
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gt", "gte":
		return "value too small"
	default:
		return "validation failed"
	}
}
