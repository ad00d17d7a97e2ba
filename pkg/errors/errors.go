// Package errors provides structured error types for ratiomerge.
//
// Every failure that reaches the command line carries a machine-readable
// [Code] so the CLI can choose an exit path (usage text, plain message) and
// tests can assert on the category without matching message strings.
//
// # Error Codes
//
//   - INVALID_*: argument, configuration, and record validation failures
//   - PARSE_ERROR: a token that should be numeric is not
//   - FILE_NOT_FOUND, IO_ERROR: filesystem failures
//   - INTERNAL_ERROR: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidArgs, "expected an even number of paths, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidArgs) {
//	    // print usage
//	}
//
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Argument and configuration errors
	ErrCodeInvalidArgs   Code = "INVALID_ARGS"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Record errors
	ErrCodeInvalidRecord Code = "INVALID_RECORD"
	ErrCodeParse         Code = "PARSE_ERROR"

	// Filesystem errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeIO           Code = "IO_ERROR"

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

// Is reports whether err has the given error code.
// Only the outermost *Error in the chain is consulted.
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

// UserMessage returns a message suitable for the terminal: the message
// without the code prefix, followed by the cause when there is one.
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

// RecordError describes a record that could not be turned into a point.
// It is used as the Cause of INVALID_RECORD and PARSE_ERROR errors so
// callers can report where the bad line is.
type RecordError struct {
	Line int    // 1-based line number in the input
	Text string // line content without the trailing newline
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %q", e.Line, e.Text)
}
