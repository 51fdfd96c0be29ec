package tracker

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired means the call arrived without an authenticated actor.
	ErrAuthRequired = errors.New("authentication required")
	// ErrForbidden means the actor lacks the role or ownership the operation needs.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound covers missing ids, including rows deleted mid-operation.
	ErrNotFound = errors.New("not found")
	// ErrNameTaken means another game already uses the requested name.
	ErrNameTaken = errors.New("game name already taken")
)

// ValidationError reports a rejected field value. It is matched with
// errors.As at the HTTP boundary.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a field validation failure.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
