// Package errors provides structured error types for magnitude.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the pipeline stages and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages that name the offending entry
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Every stage of the pipeline fails with its own code:
//   - INVALID_VALUE, UNSUPPORTED_UNIT: unit normalization
//   - SCHEMA, DUPLICATE_LABEL: dataset loading
//   - EMPTY_DATASET: scale building
//   - TEMPLATE: rendering
//
// None of these are retried. A failure always means the dataset or the
// template is malformed.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "min separation must be >= 0, got %v", sep)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Typed errors carry the same codes
//	var dup *errors.DuplicateLabelError
//	if stderrors.As(err, &dup) {
//	    fmt.Println(dup.Label)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidValue  Code = "INVALID_VALUE"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Dataset errors
	ErrCodeUnsupportedUnit Code = "UNSUPPORTED_UNIT"
	ErrCodeSchema          Code = "SCHEMA"
	ErrCodeDuplicateLabel  Code = "DUPLICATE_LABEL"
	ErrCodeEmptyDataset    Code = "EMPTY_DATASET"

	// Rendering errors
	ErrCodeTemplate Code = "TEMPLATE"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// coded is implemented by the typed domain errors.
type coded interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It walks the error chain and compares against the first coded error found.
func Is(err error, code Code) bool {
	if err == nil {
		return false
	}
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case coded:
			return e.Code()
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}
