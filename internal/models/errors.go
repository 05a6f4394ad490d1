package models

import "errors"

var ErrOrderNotFound = errors.New("order not found")

// ValidationError marks input that was rejected before any write.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation distinguishes rejected input from infrastructure failures.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
