// Package errors defines structured error codes for engine and provider
// operations so handlers can map failures to HTTP responses uniformly.
package errors

import (
	"fmt"
)

// ErrorCode identifies a failure category.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeEmptyInput indicates an analysis request with no usable thoughts.
	ErrCodeEmptyInput ErrorCode = "EMPTY_INPUT"
	// ErrCodeNotFound indicates the requested object does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeStaleGeneration indicates the request referenced a superseded analysis.
	ErrCodeStaleGeneration ErrorCode = "STALE_GENERATION"
	// ErrCodeRateLimitExceeded indicates the rate limit has been exceeded.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeProviderUnavailable indicates the LLM provider is not reachable or not configured.
	ErrCodeProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"
	// ErrCodeContextCanceled indicates the operation was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
	// ErrCodeTimeout indicates the operation timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// EngineError is a structured error carrying a code and optional cause.
type EngineError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// Convenience constructors for common error types.

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *EngineError {
	return &EngineError{Code: ErrCodeInvalidArgument, Message: msg}
}

// EmptyInput creates an empty input error.
func EmptyInput(msg string) *EngineError {
	return &EngineError{Code: ErrCodeEmptyInput, Message: msg}
}

// NotFound creates a not found error.
func NotFound(msg string) *EngineError {
	return &EngineError{Code: ErrCodeNotFound, Message: msg}
}

// StaleGeneration creates a stale generation error.
func StaleGeneration(msg string) *EngineError {
	return &EngineError{Code: ErrCodeStaleGeneration, Message: msg}
}

// RateLimitExceeded creates a rate limit exceeded error.
func RateLimitExceeded(msg string) *EngineError {
	return &EngineError{Code: ErrCodeRateLimitExceeded, Message: msg}
}

// ProviderUnavailable creates a provider unavailable error.
func ProviderUnavailable(msg string) *EngineError {
	return &EngineError{Code: ErrCodeProviderUnavailable, Message: msg}
}

// ContextCanceled creates a context canceled error.
func ContextCanceled(cause error) *EngineError {
	return &EngineError{Code: ErrCodeContextCanceled, Message: "operation canceled", Cause: cause}
}

// Timeout creates a timeout error.
func Timeout(msg string) *EngineError {
	return &EngineError{Code: ErrCodeTimeout, Message: msg}
}

// Wrap wraps an existing error with a code and message.
func Wrap(cause error, code ErrorCode, msg string) *EngineError {
	return &EngineError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error carries a specific code.
func IsCode(err error, code ErrorCode) bool {
	if engineErr, ok := err.(*EngineError); ok {
		return engineErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error, falling back to
// defaultCode for plain errors.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if engineErr, ok := err.(*EngineError); ok {
		return engineErr.Code
	}
	return defaultCode
}
