package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified pipekit error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// IsCode reports whether err is (or wraps) an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// --- Common Error Constructors ---

// InvalidConfig creates a new AppError for an invalid configuration field.
func InvalidConfig(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: fmt.Sprintf("Invalid configuration: %s", reason),
		Retryable: false, Details: details,
	}
}

// Validation creates a new AppError for a validation failure.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: message,
		Retryable: false,
	}
}

// PipeCreateFailed creates a new AppError for a failed pipe allocation.
func PipeCreateFailed(cause error) *AppError {
	return &AppError{
		Code: ErrCodePipeCreate, Message: "Could not create the stdin pipe for the child process.",
		Retryable: false, Cause: cause,
	}
}

// LaunchFailed creates a new AppError for a child process that could not be started.
func LaunchFailed(command string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeLaunch, Message: "Could not start the child process.",
		Retryable: false, Cause: cause,
		Details: map[string]any{"command": command},
	}
}

// WriteFailed creates a new AppError for a fatal stdin write failure.
func WriteFailed(cause error) *AppError {
	return &AppError{
		Code: ErrCodeWrite, Message: "Writing to the child process stdin failed.",
		Retryable: false, Cause: cause,
	}
}

// FdFlagsFailed creates a new AppError for a descriptor flag operation failure.
func FdFlagsFailed(op string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeFdFlags, Message: "Changing descriptor flags failed.",
		Retryable: false, Cause: cause,
		Details: map[string]any{"op": op},
	}
}

// ReapFailed creates a new AppError for a failed wait on the child process.
func ReapFailed(pid int, cause error) *AppError {
	return &AppError{
		Code: ErrCodeReap, Message: "Waiting for the child process failed.",
		Retryable: false, Cause: cause,
		Details: map[string]any{"pid": pid},
	}
}

// Closed creates a new AppError for an operation on a closed sink.
func Closed() *AppError {
	return &AppError{
		Code: ErrCodeClosed, Message: "The sink is closed.",
		Retryable: false,
	}
}
