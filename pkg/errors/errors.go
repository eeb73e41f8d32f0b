// Package errors provides structured error types for mend.
//
// Two codes are fatal for a model response: [ErrCodeParse] when the payload
// cannot be decoded at all, and [ErrCodeStructure] when it decodes but does not
// have the shape of a canvas graph. Everything else a model gets wrong (dangling
// edges, blank nodes, unmatched patches) is reported as diagnostics, never as
// an error.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeStructure, "node %d: missing id", i)
//	if errors.Is(err, errors.ErrCodeStructure) {
//	    // Tell the user the response was unusable
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeParse, decodeErr, "decode graph payload")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Model output that cannot be interpreted at all.
	ErrCodeParse     Code = "PARSE_ERROR"
	ErrCodeStructure Code = "INVALID_STRUCTURE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
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

// IsFatal reports whether err means a model response could not be used at all.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeParse, ErrCodeStructure:
		return true
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
