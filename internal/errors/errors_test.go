// Package apperrors provides tests for application error types.
package apperrors

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid value %d for flag %s", 42, "--workers"),
			expected: "invalid value 42 for flag --workers",
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestRunError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		cause       error
		expectedMsg string
		checkIs     error
		checkUnwrap bool
	}{
		{
			name:        "Error returns cause message",
			cause:       errors.New("worker panicked"),
			expectedMsg: "worker panicked",
		},
		{
			name:        "Unwrap returns cause",
			cause:       errors.New("original error"),
			expectedMsg: "original error",
			checkUnwrap: true,
		},
		{
			name:        "errors.Is works with wrapped error",
			cause:       context.Canceled,
			expectedMsg: "context canceled",
			checkIs:     context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := RunError{Cause: tt.cause}
			if err.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, err.Error())
			}
			if tt.checkUnwrap {
				if !errors.Is(err, tt.cause) {
					t.Error("Unwrap should expose the original cause")
				}
			}
			if tt.checkIs != nil {
				if !errors.Is(err, tt.checkIs) {
					t.Errorf("errors.Is(err, %v) should be true", tt.checkIs)
				}
			}
		})
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	err := TimeoutError{Operation: "race demo", Limit: 5 * time.Minute}
	want := `operation "race demo" timed out after 5m0s`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	err := ValidationError{Field: "yield-every", Message: "must be a power of two"}
	want := `validation error for "yield-every": must be a power of two`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestMismatchError(t *testing.T) {
	t.Parallel()
	err := MismatchError{StrategyA: "mutex", StrategyB: "atomic", ValueA: 8000000, ValueB: 7999999}
	want := "strategy mismatch: mutex reported 8000000 but atomic reported 7999999"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()
		if WrapError(nil, "context") != nil {
			t.Error("WrapError(nil, ...) should return nil")
		}
	})

	t.Run("wrapped error preserves cause", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("root cause")
		err := WrapError(cause, "while running %d workers", 8)
		if !errors.Is(err, cause) {
			t.Error("wrapped error should match the cause with errors.Is")
		}
		want := "while running 8 workers: root cause"
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	})
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped canceled", WrapError(context.Canceled, "run"), true},
		{"other error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.want {
				t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeForError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil is success", nil, ExitSuccess},
		{"deadline maps to timeout", context.DeadlineExceeded, ExitErrorTimeout},
		{"canceled maps to canceled", context.Canceled, ExitErrorCanceled},
		{"mismatch maps to mismatch", MismatchError{StrategyA: "a", StrategyB: "b"}, ExitErrorMismatch},
		{"config maps to config", NewConfigError("bad flag"), ExitErrorConfig},
		{"anything else is generic", errors.New("boom"), ExitErrorGeneric},
		{"wrapped deadline maps to timeout", WrapError(context.DeadlineExceeded, "run"), ExitErrorTimeout},
		{"typed timeout maps to timeout", TimeoutError{Operation: "run", Limit: time.Second}, ExitErrorTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
