package booking

import "fmt"

// ValidationError blocks a booking submission before any remote write is
// attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// TransitionError rejects a status change that is outside the state machine
// or not permitted to the acting role.
type TransitionError struct {
	Message string
}

func (e *TransitionError) Error() string {
	return e.Message
}

func newTransitionError(format string, args ...any) error {
	return &TransitionError{Message: fmt.Sprintf(format, args...)}
}
