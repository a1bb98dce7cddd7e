// Package common defines shared constants and sentinel errors used across
// the LensHive backend. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Auth-specific errors.
	ErrorInvalidCredentials = errors.New("invalid email or password")
	ErrorUserDisabled       = errors.New("user account is disabled")
)
