package shop

import "fmt"

// ValidationError rejects a shop write whose input is malformed or violates a
// profile invariant.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
