package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Configuration errors
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrUnknownKey    ErrorCode = "UNKNOWN_KEY"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrBaseCycle     ErrorCode = "BASE_CYCLE"
	ErrConfigWrite   ErrorCode = "CONFIG_WRITE"
)

// LofarError represents a structured error with code and details
type LofarError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LofarError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LofarError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LofarError) Is(target error) bool {
	var targetErr *LofarError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LofarError with the given code and message
func New(code ErrorCode, message string) *LofarError {
	return &LofarError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LofarError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LofarError {
	return &LofarError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a LofarError
func Wrap(err error, code ErrorCode, message string) *LofarError {
	if err == nil {
		return nil
	}
	return &LofarError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LofarError {
	if err == nil {
		return nil
	}
	return &LofarError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *LofarError) WithDetail(key string, value interface{}) *LofarError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var lofarErr *LofarError
	if errors.As(err, &lofarErr) {
		return lofarErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LofarError
func GetErrorCode(err error) ErrorCode {
	var lofarErr *LofarError
	if errors.As(err, &lofarErr) {
		return lofarErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a LofarError
func GetErrorDetails(err error) map[string]interface{} {
	var lofarErr *LofarError
	if errors.As(err, &lofarErr) {
		return lofarErr.Details
	}
	return nil
}
