package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkazanov/nutrilog/internal/service/auth"
	"github.com/mkazanov/nutrilog/internal/service/foodlog"
	"github.com/mkazanov/nutrilog/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"no pending prompt", foodlog.ErrNoPendingPrompt, http.StatusConflict},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"food not found", store.ErrFoodNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"empty query", foodlog.ErrEmptyQuery, http.StatusBadRequest},
		{"invalid choice", foodlog.ErrInvalidChoice, http.StatusBadRequest},
		{"invalid input", foodlog.ErrInvalidInput, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{
			// Wrapped errors must map the same as their cause.
			"wrapped invalid input",
			foodlog.NewLogFoodError("grams out of range", foodlog.ErrInvalidInput),
			http.StatusBadRequest,
		},
		{
			"wrapped store error",
			fmt.Errorf("resolve: %w", store.ErrFoodNotFound),
			http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	// Internal detail must never reach the client, no matter the cause.
	internal := errors.New(`pq: connection to "postgres://user:hunter2@db/app" refused`)
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(internal))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))

	assert.Equal(t, "No pending question to answer",
		GetSafeErrorMessage(foodlog.ErrNoPendingPrompt))
	assert.Equal(t, "Value is out of the accepted range",
		GetSafeErrorMessage(foodlog.NewLogFoodError("bad grams", foodlog.ErrInvalidInput)))
	assert.Equal(t, "Invalid token", GetSafeErrorMessage(auth.ErrExpiredToken))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := validator.New().Struct(struct {
		Email string `validate:"required,email"`
	}{Email: "not-an-email"})
	require.Error(t, err)
	assert.Equal(t, "Invalid Email: invalid email format", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
