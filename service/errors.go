package service

import (
	"errors"
	"fmt"
)

// Failure taxonomy shared by every service. No operation retries
// internally; each error surfaces immediately with enough context for the
// caller to diagnose without server logs.
var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateVote   = errors.New("already voted on this image")
	ErrRejectedContent = errors.New("image rejected by content moderation")
	ErrPersistence     = errors.New("write was not applied")
)

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s is required", e.Field)
}

func missingField(field string) error {
	return &ValidationError{Field: field}
}

// UpstreamError wraps a failed object-storage or moderation call. The
// caller is expected to retry the whole operation; the server never does.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *UpstreamError) Unwrap() error { return e.Err }
