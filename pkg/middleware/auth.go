package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/huyvng/storedash/pkg/auth"
	"github.com/huyvng/storedash/pkg/response"
)

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// IdentityResolver turns validated token claims into a full identity,
// typically by loading the user record.
type IdentityResolver interface {
	Resolve(ctx context.Context, userID string) (*Identity, error)
}

type identityKey struct{}

// Auth returns middleware that requires a valid bearer token. The resolver
// loads the caller's identity; any failure means 401.
func Auth(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" || token == header {
				response.Unauthorized(w, "Missing authentication token")
				return
			}

			claims, err := auth.ValidateToken(token)
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			ident, err := resolver.Resolve(r.Context(), claims.UserID)
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey{}, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromCtx returns the authenticated caller, if any.
func IdentityFromCtx(r *http.Request) (*Identity, bool) {
	ident, ok := r.Context().Value(identityKey{}).(*Identity)
	return ident, ok
}

// WithIdentity injects an identity into ctx. Exposed for tests.
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}
