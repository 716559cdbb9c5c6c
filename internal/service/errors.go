// Package service provides business logic services for Coursebook.
package service

import "errors"

// Common service errors. Business rule violations use the typed errors in
// the domain package; these cover the infrastructure side.
var (
	// ErrInternalError wraps unexpected infrastructure failures so
	// handlers never leak driver details to clients.
	ErrInternalError = errors.New("internal server error")
)
