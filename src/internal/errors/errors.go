// Package errors provides domain-specific error types for cgproxy.
//
// Every error returned by the configuration layer carries an ErrorCode, so callers
// can tell an I/O failure (FILE_ERROR) from rejected input (PARAM_ERROR) without
// string matching, and the CLI can turn them into process exit statuses.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeFile indicates the configuration file could not be opened, read or written.
	ErrCodeFile ErrorCode = "FILE_ERROR"

	// ErrCodeParam indicates the supplied JSON failed validation.
	ErrCodeParam ErrorCode = "PARAM_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Process exit statuses for each error code.
const (
	ExitOK       = 0
	ExitFile     = 1
	ExitParam    = 2
	ExitInternal = 3
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewFileError creates a new file I/O error.
func NewFileError(message string, cause error) *Error {
	return Wrap(ErrCodeFile, message, cause)
}

// NewParamError creates a new invalid-input error.
func NewParamError(message string, cause error) *Error {
	return Wrap(ErrCodeParam, message, cause)
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCodeInternal, message, cause)
}

// CodeOf returns the code of the first domain error in err's chain.
// Errors without a domain code report ErrCodeInternal; nil reports "".
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// IsFileError reports whether err carries FILE_ERROR.
func IsFileError(err error) bool {
	return CodeOf(err) == ErrCodeFile
}

// IsParamError reports whether err carries PARAM_ERROR.
func IsParamError(err error) bool {
	return CodeOf(err) == ErrCodeParam
}

// ExitCode maps err to a process exit status.
func ExitCode(err error) int {
	switch CodeOf(err) {
	case "":
		return ExitOK
	case ErrCodeFile:
		return ExitFile
	case ErrCodeParam:
		return ExitParam
	default:
		return ExitInternal
	}
}
