package taskflow

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced id does not resolve.
var ErrNotFound = errors.New("not found")

// ValidationError reports invalid input, detected before any mutation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ConflictError reports an operation that lost to an earlier state change,
// such as resolving an already-resolved submission.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

func conflictf(format string, args ...any) error {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}
