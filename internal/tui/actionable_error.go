package tui

import rclierrors "github.com/mrz1836/rcli/internal/errors"

// ActionableError wraps an error with an actionable suggestion.
//
//	err := NewActionableError("key file not found", "Run: rcli text generate -O ./keys")
//	output.Error(err)
//	// ✗ key file not found
//	//   ▸ Try: rcli text generate -O ./keys
type ActionableError struct {
	// Message is the primary error message.
	Message string

	// Suggestion provides guidance for resolving the error.
	Suggestion string

	// Context is appended to the message in parentheses when set.
	Context string

	cause error
}

// NewActionableError creates a new ActionableError with message and suggestion.
func NewActionableError(msg, suggestion string) *ActionableError {
	return &ActionableError{
		Message:    msg,
		Suggestion: suggestion,
	}
}

// FromError builds an ActionableError from the user-facing message and
// action registered for err's sentinel. The original error becomes the
// context and stays reachable through errors.Is. Returns nil for nil.
func FromError(err error) *ActionableError {
	if err == nil {
		return nil
	}
	msg, action := rclierrors.Actionable(err)
	ae := &ActionableError{
		Message:    msg,
		Suggestion: action,
		cause:      err,
	}
	if msg != err.Error() {
		ae.Context = err.Error()
	}
	return ae
}

// Error returns the message with context if provided, e.g. "file not found (/path)".
func (e *ActionableError) Error() string {
	if e.Context != "" {
		return e.Message + " (" + e.Context + ")"
	}
	return e.Message
}

// Unwrap returns the error the ActionableError was built from, if any.
func (e *ActionableError) Unwrap() error {
	return e.cause
}

// WithContext adds optional context to the error and returns it for chaining.
func (e *ActionableError) WithContext(ctx string) *ActionableError {
	e.Context = ctx
	return e
}
