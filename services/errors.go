package services

import "errors"

var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidState = errors.New("operation not allowed in current state")
)

// ValidationError carries the specific reason a request was refused
// (insufficient balance, amount out of bounds, wallet not set, ...).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(reason string) error {
	return &ValidationError{Reason: reason}
}
