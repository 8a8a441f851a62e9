// Package common defines sentinel errors shared by the server, the portal
// and the command line client. Callers should use errors.Is to match them.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// List query rejected by the repository whitelist.
	ErrInvalidFilter = errors.New("invalid filter")

	ErrRateLimited = errors.New("rate limited")
)

// FilterError names the list parameter that failed the whitelist.
// It matches ErrInvalidFilter with errors.Is.
type FilterError struct {
	Param string
}

func (e *FilterError) Error() string { return "Invalid " + e.Param }

func (e *FilterError) Is(target error) bool { return target == ErrInvalidFilter }
