// Package errors provides sentinel errors and exit codes for the Shuttle CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates malformed user input or a generated project that failed verification.
	ErrValidation = errors.New("validation error")

	// ErrConnectivity indicates a template source could not be reached.
	ErrConnectivity = errors.New("connectivity error")

	// ErrPermission indicates insufficient filesystem permissions.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a template, file, or directory was not found.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the destination already holds an unrelated project.
	ErrConflict = errors.New("conflict")

	// ErrCancelled indicates the user aborted an interactive prompt.
	ErrCancelled = errors.New("cancelled")
)

// DetailError captures structured error information for display.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file or directory the error refers to (optional).
	Location string

	// Field is the input field name for input errors (optional).
	Field string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, field, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Field:    field,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewConnectivityError creates a connectivity error with details. cause may
// be nil; otherwise it is kept in the chain alongside ErrConnectivity.
func NewConnectivityError(message string, context map[string]string, hint string, cause error) error {
	return &DetailError{
		Type:    "template source unavailable",
		Message: message,
		Context: context,
		Hint:    hint,
		Cause:   withSentinel(ErrConnectivity, cause),
	}
}

// NewNotFoundError creates a not found error with details. cause may be nil.
func NewNotFoundError(message, location, hint string, cause error) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    withSentinel(ErrNotFound, cause),
	}
}

// NewConflictError creates a destination conflict error with details. cause
// may be nil.
func NewConflictError(message, location, hint string, cause error) error {
	return &DetailError{
		Type:     "destination conflict",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    withSentinel(ErrConflict, cause),
	}
}

// withSentinel returns a cause that matches sentinel under errors.Is.
func withSentinel(sentinel, cause error) error {
	switch {
	case cause == nil:
		return sentinel
	case errors.Is(cause, sentinel):
		return cause
	default:
		return fmt.Errorf("%w: %w", sentinel, cause)
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
