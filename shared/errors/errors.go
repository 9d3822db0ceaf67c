package errors

import (
	"errors"
	"fmt"
)

// ErrorWithStatusCode is a failure reported by the backend or the transport.
// Message is shown to the user verbatim.
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// ValidationError is raised before an intent is dispatched to the backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrAuthRequired short-circuits intents issued without an authenticated user.
var ErrAuthRequired = errors.New("authentication required")

// Message extracts the human-readable text stored in a store's error slot.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var backendErr *ErrorWithStatusCode
	if errors.As(err, &backendErr) {
		return backendErr.Message
	}
	return err.Error()
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
