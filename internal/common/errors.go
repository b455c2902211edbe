// Package common defines shared constants and sentinel errors used across
// client and server layers of messagely. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration input errors.
	ErrorValidation = errors.New("missing information")

	// Login errors. One value covers both "no such user" and "wrong
	// password" so callers cannot probe for valid usernames.
	ErrorInvalidCredentials = errors.New("invalid username/password")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
