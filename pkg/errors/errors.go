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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Target enumeration errors
	ErrEnumerate ErrorCode = "ENUMERATE"

	// Fragment errors
	ErrFragmentRead ErrorCode = "FRAGMENT_READ"

	// Backup errors
	ErrBackupDir  ErrorCode = "BACKUP_DIR"
	ErrBackupCopy ErrorCode = "BACKUP_COPY"
	ErrPrune      ErrorCode = "PRUNE"

	// Target write errors
	ErrTargetRead  ErrorCode = "TARGET_READ"
	ErrTargetWrite ErrorCode = "TARGET_WRITE"

	// License mirror errors
	ErrLicenseArchive ErrorCode = "LICENSE_ARCHIVE"
	ErrLicenseRestore ErrorCode = "LICENSE_RESTORE"
)

// JbsyncError represents a structured error with code and details
type JbsyncError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *JbsyncError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *JbsyncError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *JbsyncError) Is(target error) bool {
	var targetErr *JbsyncError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new JbsyncError with the given code and message
func New(code ErrorCode, message string) *JbsyncError {
	return &JbsyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new JbsyncError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *JbsyncError {
	return &JbsyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a JbsyncError
func Wrap(err error, code ErrorCode, message string) *JbsyncError {
	if err == nil {
		return nil
	}
	return &JbsyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *JbsyncError {
	if err == nil {
		return nil
	}
	return &JbsyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *JbsyncError) WithDetail(key string, value interface{}) *JbsyncError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// GetCode extracts the error code from an error, returning ErrUnknown
// for errors that are not JbsyncErrors
func GetCode(err error) ErrorCode {
	var jbsyncErr *JbsyncError
	if errors.As(err, &jbsyncErr) {
		return jbsyncErr.Code
	}
	return ErrUnknown
}

// IsCode checks whether err carries the given code anywhere in its chain
func IsCode(err error, code ErrorCode) bool {
	var jbsyncErr *JbsyncError
	if errors.As(err, &jbsyncErr) {
		return jbsyncErr.Code == code
	}
	return false
}
