// Package errors defines the error vocabulary of the generator. A build
// fails with exactly one of two core kinds: a DescriptorError (the subject
// type could not be described) or an EmissionError (a descriptor was
// structurally incomplete at emission time). Neither is retried; both
// propagate unchanged to the caller.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode classifies a generator error.
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	// SyntaxErrorCode marks a malformed iterwrap:: directive.
	SyntaxErrorCode

	// DescriptorErrorCode marks a subject type that cannot be described:
	// missing or raw base embed, unavailable metadata, or a directive that
	// references a parameter the method does not have.
	DescriptorErrorCode

	// EmissionErrorCode marks a structurally incomplete descriptor handed to
	// the emitter. It is a programming-contract violation, not a transient
	// condition.
	EmissionErrorCode

	// ValidationErrorCode marks caller-level problems such as output-path
	// collisions or unusable CLI arguments.
	ValidationErrorCode

	// FileSystemErrorCode marks scan/read/write failures around the core.
	FileSystemErrorCode
)

// String returns the string representation of the error code.
func (e ErrorCode) String() string {
	switch e {
	case SyntaxErrorCode:
		return "SyntaxError"
	case DescriptorErrorCode:
		return "DescriptorError"
	case EmissionErrorCode:
		return "EmissionError"
	case ValidationErrorCode:
		return "ValidationError"
	case FileSystemErrorCode:
		return "FileSystemError"
	default:
		return "UnknownError"
	}
}

// SourceLocation points at the source position an error refers to.
type SourceLocation struct {
	File string
	Line int
}

// String returns a formatted representation of the location.
func (s SourceLocation) String() string {
	if s.File == "" {
		return "unknown location"
	}
	if s.Line == 0 {
		return s.File
	}
	return fmt.Sprintf("%s:%d", s.File, s.Line)
}

// IsEmpty returns true if the location has no useful information.
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError carries the code, message, optional location and cause of a
// generator error.
type BaseError struct {
	Code    ErrorCode
	Message string
	Loc     SourceLocation
	Cause   error
	Hints   []string
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	if e.Loc.IsEmpty() {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Loc, e.Message)
}

// Unwrap returns the underlying cause for error-chain inspection.
func (e *BaseError) Unwrap() error {
	return e.Cause
}

// WithLocation attaches location information to the error.
func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

// WithCause attaches an underlying cause.
func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

// WithSuggestion appends a hint shown to the user alongside the error.
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// New creates a BaseError with the given code and message.
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

// Newf creates a BaseError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a BaseError that wraps a cause.
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{Code: code, Message: message, Cause: cause}
}

// Wrapf creates a BaseError that wraps a cause with a formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...interface{}) *BaseError {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// HasCode reports whether any error in err's chain carries the given code.
func HasCode(err error, code ErrorCode) bool {
	var base *BaseError
	if stderrors.As(err, &base) {
		return base.Code == code
	}
	return false
}

// IsDescriptorError reports whether err is a DescriptorError.
func IsDescriptorError(err error) bool {
	return HasCode(err, DescriptorErrorCode)
}

// IsEmissionError reports whether err is an EmissionError.
func IsEmissionError(err error) bool {
	return HasCode(err, EmissionErrorCode)
}
