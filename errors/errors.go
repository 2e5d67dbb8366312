// Package errors provides unified error handling for the scaffolding engine.
// It implements structured error types with error codes, process exit-code
// mapping, and fatality detection per the engine's error taxonomy.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Exit codes produced by the host from engine failures.
const (
	ExitOK    = 0
	ExitFatal = 1
)

// AppError is the unified engine error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Fatal indicates the run must abort.
	Fatal bool `json:"fatal"`
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

// New creates a new AppError with automatic fatality detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Fatal:   IsFatalCode(code),
	}
}

// ExitCode maps an error to the process exit code the host should use.
// nil maps to ExitOK; every engine failure is reported as ExitFatal.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	return ExitFatal
}

// IsFatal reports whether the error should abort the run.
func IsFatal(err error) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Fatal
	}
	return true
}

// --- Common Error Constructors ---

// Configuration creates a new AppError for a malformed configuration.
func Configuration(reason string) *AppError {
	return New(ErrCodeConfiguration, reason)
}

// Configurationf creates a new configuration AppError with a formatted message.
func Configurationf(format string, args ...any) *AppError {
	return New(ErrCodeConfiguration, fmt.Sprintf(format, args...))
}

// DuplicateID creates a new AppError for a duplicate identifier in the merged set.
func DuplicateID(kind, id string) *AppError {
	return New(ErrCodeConfiguration, fmt.Sprintf("duplicate %s id %q", kind, id)).
		WithDetail("kind", kind).WithDetail("id", id)
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// Resolution creates a new AppError for a value that failed to resolve.
// Resolution failures are non-fatal; the run continues with the value unset.
func Resolution(id string, cause error) *AppError {
	return New(ErrCodeResolution, fmt.Sprintf("value %q failed to resolve", id)).
		WithDetail("id", id).WithCause(cause)
}

// Execution creates a new AppError for a task whose handler failed.
func Execution(taskID string, cause error) *AppError {
	return New(ErrCodeExecution, fmt.Sprintf("task %q failed", taskID)).
		WithDetail("task", taskID).WithCause(cause)
}

// Cycle creates a new AppError naming a task participating in a dependency cycle.
func Cycle(taskID string) *AppError {
	return New(ErrCodeCycle, fmt.Sprintf("dependency cycle detected involving task %q", taskID)).
		WithDetail("task", taskID)
}

// Timeout creates a new AppError for a subprocess that exceeded its time bound.
func Timeout(operation string) *AppError {
	return New(ErrCodeTimeout, fmt.Sprintf("operation %q timed out", operation)).
		WithDetail("operation", operation)
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "an unexpected error occurred").WithCause(cause)
}
