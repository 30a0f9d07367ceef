// Package errors provides structured error types for the graphdeck application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and dashboard API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The three core categories map directly to the failure modes of the graph
// pipeline:
//   - INVALID_PARAMETER: bad generator arguments, rejected before any work
//   - MALFORMED_GRAPH: schema violations, dangling edges, duplicate IDs on load
//   - UNKNOWN_NODE: an operation referenced a node absent from the loaded graph
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownNode, "node %q not in graph", id)
//	if errors.Is(err, errors.ErrCodeUnknownNode) {
//	    // Handle stale node reference
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedGraph, origErr, "load %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Deterministic input errors (never retried, never partially applied)
	ErrCodeInvalidParameter Code = "INVALID_PARAMETER"
	ErrCodeMalformedGraph   Code = "MALFORMED_GRAPH"
	ErrCodeUnknownNode      Code = "UNKNOWN_NODE"

	// Plumbing errors
	ErrCodeInvalidLayout   Code = "INVALID_LAYOUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"
	ErrCodeInternal        Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
