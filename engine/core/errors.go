package core

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode string

const (
	// ErrorCodeNotFound marks a referenced project/task id that does not exist.
	ErrorCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrorCodeValidation marks a missing required field, a value outside its
	// declared enumeration/range, or a zero-field search selection.
	ErrorCodeValidation ErrorCode = "VALIDATION_FAILED"

	// ErrorCodeBackend marks a connection/transport failure to the storage layer.
	ErrorCodeBackend ErrorCode = "BACKEND_UNAVAILABLE"
)

// Error represents a structured error with code and metadata
type Error struct {
	Err      error          `json:"error"`
	Code     ErrorCode      `json:"code"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// NewError creates a new structured error for domain boundaries
func NewError(err error, code ErrorCode, metadata map[string]any) *Error {
	return &Error{
		Err:      err,
		Code:     code,
		Metadata: metadata,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// NotFoundf builds a not-found error with a human-readable message
// identifying the missing entity.
func NotFoundf(format string, args ...any) *Error {
	return NewError(fmt.Errorf(format, args...), ErrorCodeNotFound, nil)
}

// Invalidf builds a validation error with a human-readable message
// identifying the invalid input.
func Invalidf(format string, args ...any) *Error {
	return NewError(fmt.Errorf(format, args...), ErrorCodeValidation, nil)
}

// Unavailable wraps a storage transport failure.
func Unavailable(err error) *Error {
	return NewError(err, ErrorCodeBackend, nil)
}

// HasCode reports whether err carries the given error code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
