package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for both demo
// binaries. These codes are used to signal the outcome of the program
// execution to the OS. The default invocation of either program always
// exits with ExitSuccess, racy or not.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates synchronized strategies disagreed on the final count.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect
// user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// RunError encapsulates a demo run failure while preserving the original
// cause. This allows for structured error handling and inspection of what
// went wrong while the workers were executing.
type RunError struct {
	// Cause is the underlying error that interrupted the run.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e RunError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e RunError) Unwrap() error { return e.Cause }

// TimeoutError represents a run that exceeded its configured deadline. It
// captures the operation name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MismatchError reports that two synchronized counter strategies produced
// different final values for identical worker and iteration settings.
// Unlike the racy strategy, synchronized strategies are deterministic, so a
// mismatch indicates a real defect rather than a demonstration artifact.
type MismatchError struct {
	// StrategyA and StrategyB are the names of the disagreeing strategies.
	StrategyA string
	StrategyB string
	// ValueA and ValueB are the final counter values they reported.
	ValueA int64
	ValueB int64
}

// Error returns a formatted message describing the mismatch.
func (e MismatchError) Error() string {
	return fmt.Sprintf("strategy mismatch: %s reported %d but %s reported %d",
		e.StrategyA, e.ValueA, e.StrategyB, e.ValueB)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeForError maps a run error to the corresponding application exit
// code. A nil error maps to ExitSuccess.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	}
	var timeout TimeoutError
	if errors.As(err, &timeout) {
		return ExitErrorTimeout
	}
	var mismatch MismatchError
	if errors.As(err, &mismatch) {
		return ExitErrorMismatch
	}
	var cfg ConfigError
	if errors.As(err, &cfg) {
		return ExitErrorConfig
	}
	return ExitErrorGeneric
}
