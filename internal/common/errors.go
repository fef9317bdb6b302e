package common

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks malformed or out-of-range input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIllegalState marks an operation invoked out of order.
	ErrIllegalState = errors.New("illegal state")
)

// ValidationError is returned by CheckValid and by every constructor that
// validates its input. It matches ErrInvalidArgument with errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// IsValidationError checks if error is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UnexpectedError wraps a platform or cryptographic failure that does not
// belong to any other category.
type UnexpectedError struct {
	Op  string
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error during %s: %v", e.Op, e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

// IsUnexpectedError checks if error is an UnexpectedError
func IsUnexpectedError(err error) bool {
	var ue *UnexpectedError
	return errors.As(err, &ue)
}

// NotSigned is returned when a record is rendered before it was signed.
func NotSigned() error {
	return fmt.Errorf("not signed: %w", ErrIllegalState)
}
