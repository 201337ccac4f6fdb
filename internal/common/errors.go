package common

import "errors"

// Callers should use errors.Is to match these values.
var (
	// repository-level errors
	ErrorNotFound = errors.New("not found")

	// validation errors
	ErrorValidation = errors.New("validation error")

	// auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
