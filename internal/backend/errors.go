package backend

import (
	"errors"
	"fmt"
)

// ErrUnreachable is returned (wrapped) when a request could not reach
// the backend or the backend failed to serve it. Check with errors.Is.
var ErrUnreachable = errors.New("backend: unreachable")

// ValidationError is returned when the backend rejects a payload.
// Distinct from transport failure: the request arrived and was refused.
type ValidationError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s rejected: %s", e.Operation, e.Message)
}

// NewValidationError builds a ValidationError for the given operation.
func NewValidationError(operation string, statusCode int, message string) *ValidationError {
	return &ValidationError{Operation: operation, StatusCode: statusCode, Message: message}
}
