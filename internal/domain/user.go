// Package domain contains the core business entities for Coursebook.
// These are pure Go structs with no external dependencies, representing
// the fundamental concepts of the course catalog.
package domain

import (
	"time"
)

// User represents a registered user in the system.
// Users own courses and authenticate with basic credentials.
type User struct {
	// ID is the unique identifier for the user (auto-generated).
	ID int64 `json:"id"`

	// FirstName is the user's given name. Required, non-empty.
	FirstName string `json:"firstName"`

	// LastName is the user's family name. Required, non-empty.
	LastName string `json:"lastName"`

	// EmailAddress is the unique email address used as the login identifier.
	EmailAddress string `json:"emailAddress"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This should never be exposed in API responses.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUser creates a new User with the given identity fields and password hash.
func NewUser(firstName, lastName, emailAddress, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		FirstName:    firstName,
		LastName:     lastName,
		EmailAddress: emailAddress,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
