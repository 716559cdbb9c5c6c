// Package domain contains the core business entities for Coursebook.
package domain

import (
	"errors"
	"strings"
)

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (database, network, etc.).

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrCourseNotFound indicates the requested course does not exist.
	ErrCourseNotFound = errors.New("course not found")

	// ErrInvalidCredentials indicates authentication failed. Callers must
	// not distinguish between an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Constraint-violation messages surfaced to API clients. The store-level
// violations reuse these so field-shape and uniqueness failures look alike.
const (
	// MsgEmailTaken is the message for a duplicate email address.
	MsgEmailTaken = "emailAddress must be unique"

	// MsgUserMissing is the message for a course whose userId references
	// no existing user.
	MsgUserMissing = "userId must reference an existing user"
)

// ValidationError carries an ordered list of human-readable constraint
// violation messages, one per broken rule. Field-shape violations and
// store uniqueness conflicts both surface as this type so handlers can
// translate them uniformly to a 400 response.
type ValidationError struct {
	// Messages holds one message per violated constraint, in field order.
	Messages []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// NewValidationError creates a ValidationError from the given messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// AsValidationError extracts a *ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
