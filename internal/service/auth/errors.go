package auth

import "errors"

// Token validation errors. The API layer maps all of these to 401 but
// logs them distinctly.
var (
	// ErrInvalidToken covers malformed tokens and signature mismatches.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token's lifetime has passed.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates an nbf claim in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrWrongTokenType indicates a well-formed token of a kind this
	// service does not accept for API access.
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrMissingToken indicates no token was provided at all.
	ErrMissingToken = errors.New("authentication token is missing")
)
