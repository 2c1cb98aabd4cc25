// Package domainerrors provides coded errors that cross the service boundary.
//
// Stores return sentinel errors (pkg/platform/sentinel) or typed store errors;
// services translate those into coded errors from this package; the HTTP layer
// maps codes onto statuses via pkg/platform/httputil. Codes are stable strings
// and form the error contract with UI collaborators.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure.
type Code string

const (
	// CodeValidation covers empty or malformed attendee selections.
	CodeValidation Code = "validation"
	// CodeDuplicate means every requested attendee is already registered.
	CodeDuplicate Code = "duplicate"
	// CodeCapacity is the fast pre-check rejection; remaining capacity travels
	// in the error metadata.
	CodeCapacity Code = "capacity"
	// CodeCapacityCommit is the commit-time capacity rejection. Callers treat
	// it like CodeCapacity; it stays distinct for observability.
	CodeCapacityCommit Code = "capacity_commit"
	// CodeConflict means a concurrent request registered one of the attendees
	// between the duplicate check and the commit.
	CodeConflict Code = "conflict"

	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeUnavailable  Code = "unavailable"
	CodeInternal     Code = "internal_error"
)

// Error carries a code, a human-readable message, optional structured metadata
// for the UI, and an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Meta    map[string]any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// WithMeta attaches a structured key/value to the error and returns it so
// construction chains: New(...).WithMeta("remaining", 2).
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any, 1)
	}
	e.Meta[key] = value
	return e
}

// New creates a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a coded error around a cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is an alias for HasCode kept for call-site readability.
func Is(err error, code Code) bool { return HasCode(err, code) }

// CodeOf returns the code carried by err, or CodeInternal when err is not a
// domain error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MetaOf returns the structured metadata carried by err, if any.
func MetaOf(err error) map[string]any {
	var de *Error
	if errors.As(err, &de) {
		return de.Meta
	}
	return nil
}
