// Package common defines shared constants and the sentinel errors that make
// up the service's error taxonomy. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Entity lookup failures.
	ErrUserNotFound = errors.New("user not found")
	ErrFileNotFound = errors.New("file not found")

	// Authorization outcomes.
	ErrNotOwner     = errors.New("not the file owner")
	ErrNoAccess     = errors.New("no access")
	ErrGrantExpired = errors.New("grant expired")

	// Grant lifecycle conflicts.
	ErrAlreadyGranted = errors.New("access already granted")
	ErrNoActiveGrant  = errors.New("no active grant")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
