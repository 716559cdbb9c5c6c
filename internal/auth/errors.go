// Package auth provides HTTP basic authentication for Coursebook.
package auth

import "errors"

// Authentication errors.
var (
	// ErrMissingAuthorization indicates no Authorization header was sent.
	ErrMissingAuthorization = errors.New("missing authorization header")

	// ErrMalformedAuthorization indicates the Authorization header is not
	// a well-formed basic-auth credential.
	ErrMalformedAuthorization = errors.New("malformed authorization header")

	// ErrAccessDenied indicates the credentials did not resolve to a user.
	// Unknown email and wrong password both map here so the response does
	// not reveal which half of the credential failed.
	ErrAccessDenied = errors.New("access denied")
)
