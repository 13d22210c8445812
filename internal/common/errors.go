// Package common defines shared constants and sentinel errors used across
// the server, the client and the persistence layer. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound          = errors.New("not found")
	ErrorPersistence       = errors.New("persistence error")
	ErrorUnknownAttribute  = errors.New("unknown attribute")
	ErrorUnsupportedEngine = errors.New("unsupported storage engine")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors reported by the remote boundary.
	ErrorMissingField = errors.New("missing required field")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
