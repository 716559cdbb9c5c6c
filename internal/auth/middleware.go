package auth

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/prn-tf/coursebook/internal/domain"
)

// CredentialVerifier resolves a basic-auth credential pair to a user.
// Implementations must fail closed: unknown email and wrong password both
// return an error indistinguishable to the caller.
type CredentialVerifier interface {
	// Verify looks up the user by email (case-sensitive exact match) and
	// checks the plaintext password against the stored bcrypt hash.
	Verify(ctx context.Context, emailAddress, password string) (*domain.User, error)
}

// contextKey is a private type for context values set by this package.
type contextKey struct{}

// currentUserKey is the context key under which the authenticated user is
// stored.
var currentUserKey contextKey

// WithCurrentUser returns a context carrying the authenticated user.
func WithCurrentUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// CurrentUser retrieves the authenticated user from a request context.
func CurrentUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*domain.User)
	return user, ok
}

// Gate authenticates requests from scratch on every invocation. There is
// no session, token, or expiry.
type Gate struct {
	verifier CredentialVerifier
	logger   zerolog.Logger
}

// NewGate creates a new authentication gate.
func NewGate(verifier CredentialVerifier, logger zerolog.Logger) *Gate {
	return &Gate{
		verifier: verifier,
		logger:   logger.With().Str("component", "auth").Logger(),
	}
}

// Authenticate resolves the request's basic credential to a user. It is
// transport-framework independent so callers can compose it outside the
// middleware chain.
func (g *Gate) Authenticate(r *http.Request) (*domain.User, error) {
	creds, err := ParseBasicAuth(r)
	if err != nil {
		return nil, err
	}

	user, err := g.verifier.Verify(r.Context(), creds.EmailAddress, creds.Password)
	if err != nil {
		g.logger.Debug().Str("email", creds.EmailAddress).Msg("credential verification failed")
		return nil, ErrAccessDenied
	}

	return user, nil
}

// Middleware wraps a handler with the authentication gate. On failure it
// short-circuits with 401 and a generic message; on success it binds the
// resolved user onto the request context and invokes the wrapped handler.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := g.Authenticate(r)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCurrentUser(r.Context(), user)))
	})
}

// writeUnauthorized writes the generic 401 response. The body never leaks
// which half of the credential failed.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"message":"Access Denied"}`))
}
