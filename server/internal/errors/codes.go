package errors

import (
	"errors"
	"fmt"
)

// Code classifies a failure so the API layer can map it to a status code
// and a client can tell a rejected input apart from an unavailable upstream.
type Code string

const (
	// CodeInvalidArgument indicates empty or malformed input. User-correctable.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	// CodeNotFound indicates no review session exists with the requested id.
	CodeNotFound Code = "NOT_FOUND"
	// CodeAIUnavailable indicates the upstream AI call failed or returned
	// unusable output. The client may retry later.
	CodeAIUnavailable Code = "AI_UNAVAILABLE"
	// CodeStoreFailure indicates a persistence backend failure. Internal fault.
	CodeStoreFailure Code = "STORE_FAILURE"
	// CodeTimeout indicates the operation exceeded its deadline.
	CodeTimeout Code = "TIMEOUT"
)

// Error is a structured failure carrying a taxonomy code.
type Error struct {
	Code    Code
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

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Convenience constructors for the taxonomy members.

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *Error {
	return &Error{Code: CodeInvalidArgument, Message: msg}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// AIUnavailable creates an AI unavailable error.
func AIUnavailable(msg string, cause error) *Error {
	return &Error{Code: CodeAIUnavailable, Message: msg, Cause: cause}
}

// StoreFailure creates a store failure error.
func StoreFailure(msg string, cause error) *Error {
	return &Error{Code: CodeStoreFailure, Message: msg, Cause: cause}
}

// Timeout creates a timeout error.
func Timeout(msg string, cause error) *Error {
	return &Error{Code: CodeTimeout, Message: msg, Cause: cause}
}

// Wrap wraps an existing error with a taxonomy code.
func Wrap(cause error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error carries a specific code anywhere in its chain.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf extracts the taxonomy code from any error.
// Returns the provided default code if the error carries none.
func CodeOf(err error, defaultCode Code) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return defaultCode
}
