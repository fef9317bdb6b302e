package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthenticationRequired marks a challenge that cannot be presented,
	// for example because no credential is enrolled.
	ErrAuthenticationRequired  = errors.New("authentication required")
	ErrAuthenticationFailed    = errors.New("authentication failed")
	ErrAuthenticationCancelled = errors.New("authentication cancelled")
)

// Error carries the message of an authenticator that could not complete.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return "authentication error: " + e.Message
}

// IsAuthError checks if error is an authentication Error
func IsAuthError(err error) bool {
	var ae *Error
	return errors.As(err, &ae)
}

// RequiredError names the authenticator type that has nothing enrolled.
type RequiredError struct {
	Type Type
}

func (e *RequiredError) Error() string {
	return fmt.Sprintf("authentication required: no %s credential enrolled", e.Type)
}

func (e *RequiredError) Unwrap() error {
	return ErrAuthenticationRequired
}
