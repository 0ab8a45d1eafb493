package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRemoteUnavailable indicates the level index could not be reached,
	// or returned a non-success response with no usable data.
	// The pipeline folds this into an empty result set at its boundary.
	ErrRemoteUnavailable = errors.New("remote index unavailable")

	// ErrSessionAccessDenied indicates a navigation attempt by someone
	// other than the session owner. No state changes.
	ErrSessionAccessDenied = errors.New("session access denied")

	// ErrSessionExpired indicates a navigation attempt after the session
	// lifetime elapsed. No state changes.
	ErrSessionExpired = errors.New("session expired")

	// ErrRateLimited indicates the remote API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// DetailFetchError indicates the detail fetch for one level failed on both
// the primary and the brief endpoint. It is always local to one candidate:
// the pipeline logs it and skips the level, never aborting the batch.
type DetailFetchError struct {
	LevelID string
	Err     error
}

// Error implements the error interface.
func (e *DetailFetchError) Error() string {
	return fmt.Sprintf("detail fetch failed for level %s: %v", e.LevelID, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DetailFetchError) Unwrap() error {
	return e.Err
}
