package auth

import (
	"encoding/base64"
	"net/http"
	"strings"
)

// AuthorizationHeader is the header carrying the basic credential.
const AuthorizationHeader = "Authorization"

// basicPrefix is the scheme marker for basic authentication.
const basicPrefix = "Basic "

// Credentials is a decoded basic-auth credential pair. The name half is
// the user's email address.
type Credentials struct {
	// EmailAddress is the login identifier.
	EmailAddress string

	// Password is the plaintext password supplied by the client. It is
	// only ever compared against the stored hash, never persisted.
	Password string
}

// ParseBasicAuth extracts and decodes the basic-auth credential from a
// request. It returns ErrMissingAuthorization when no header is present
// and ErrMalformedAuthorization when the header cannot be decoded.
func ParseBasicAuth(r *http.Request) (*Credentials, error) {
	header := r.Header.Get(AuthorizationHeader)
	if header == "" {
		return nil, ErrMissingAuthorization
	}

	if len(header) < len(basicPrefix) || !strings.EqualFold(header[:len(basicPrefix)], basicPrefix) {
		return nil, ErrMalformedAuthorization
	}

	decoded, err := base64.StdEncoding.DecodeString(header[len(basicPrefix):])
	if err != nil {
		return nil, ErrMalformedAuthorization
	}

	email, password, found := strings.Cut(string(decoded), ":")
	if !found || email == "" {
		return nil, ErrMalformedAuthorization
	}

	return &Credentials{
		EmailAddress: email,
		Password:     password,
	}, nil
}
