package errors

import (
	"fmt"
)

// ErrorCode represents a specific error kind for scheduling operations.
type ErrorCode string

const (
	// ErrCodeInvalidInput indicates a malformed or out-of-range argument.
	// Always detected before any mutation.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeNotFound indicates a referenced calendar, item, or bucket
	// membership does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates a duplicate calendar creation for an
	// owner who already has one.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	// ErrCodeInconsistent indicates the derived index was observed in a
	// partially-applied state relative to the registries. Internal-only;
	// surfaced to callers as NOT_FOUND on the missing side.
	ErrCodeInconsistent ErrorCode = "INCONSISTENT"
	// ErrCodeUnauthenticated indicates session token verification failure.
	ErrCodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
)

// ScheduleError represents a structured error for scheduling operations.
type ScheduleError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ScheduleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ScheduleError) Unwrap() error {
	return e.Cause
}

// GetCode returns the error code.
func (e *ScheduleError) GetCode() ErrorCode {
	return e.Code
}

// Convenience constructors for common error kinds.

// InvalidInput creates an invalid input error.
func InvalidInput(format string, args ...any) *ScheduleError {
	return &ScheduleError{Code: ErrCodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not found error.
func NotFound(format string, args ...any) *ScheduleError {
	return &ScheduleError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// AlreadyExists creates an already exists error.
func AlreadyExists(format string, args ...any) *ScheduleError {
	return &ScheduleError{Code: ErrCodeAlreadyExists, Message: fmt.Sprintf(format, args...)}
}

// Unauthenticated creates an unauthenticated error.
func Unauthenticated(msg string) *ScheduleError {
	return &ScheduleError{Code: ErrCodeUnauthenticated, Message: msg}
}

// Wrap wraps an existing error with a code and message.
func Wrap(cause error, code ErrorCode, msg string) *ScheduleError {
	return &ScheduleError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error is of a specific code, unwrapping as needed.
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		if schedErr, ok := err.(*ScheduleError); ok {
			return schedErr.Code == code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not a ScheduleError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	for err != nil {
		if schedErr, ok := err.(*ScheduleError); ok {
			return schedErr.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return defaultCode
}
