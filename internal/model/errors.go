package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by stores when a row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks a missing or malformed required field.
	ErrValidation = errors.New("validation failed")
	// ErrUsernameConflict is returned when the username is already registered.
	ErrUsernameConflict = errors.New("username is already taken")
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated is returned when an operation needs a logged-in principal.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrStoryNotFound is returned when the referenced story does not exist.
	ErrStoryNotFound = errors.New("story not found")
	// ErrStorageUnavailable is a transient storage failure. Callers may retry.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrInternal is a non-retryable failure.
	ErrInternal = errors.New("internal error")
)

var (
	ErrSessionRevoked  = errors.New("session revoked")
	ErrSessionExpired  = errors.New("session expired")
	ErrSessionMismatch = errors.New("session token mismatch")
)

// ValidationError describes which field was rejected and why.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
