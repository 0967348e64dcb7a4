package service

import (
	"errors"
	"fmt"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	// ErrInferenceTimeout is returned when a captioning call exceeds the configured bound.
	ErrInferenceTimeout = errors.New("inference timed out")
	ErrEmptyCaption     = errors.New("inference returned an empty caption")
)

// ValidationError marks input rejected before any work is done.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// InferenceError wraps any failure of the captioning backend: transport,
// non-success status, malformed response or timeout.
type InferenceError struct {
	Provider string
	Err      error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("%s inference failed: %v", e.Provider, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// PersistenceError wraps a failed write or read of the result store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
