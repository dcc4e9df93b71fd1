package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huyvng/storedash/pkg/auth"
	"github.com/huyvng/storedash/pkg/middleware"
)

type staticResolver struct {
	ident *middleware.Identity
	err   error
}

func (r staticResolver) Resolve(_ context.Context, _ string) (*middleware.Identity, error) {
	return r.ident, r.err
}

func protectedHandler(t *testing.T, resolver middleware.IdentityResolver) http.Handler {
	t.Helper()
	return middleware.Auth(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := middleware.IdentityFromCtx(r)
		require.True(t, ok)
		w.Write([]byte(ident.Email)) //nolint:errcheck
	}))
}

func TestAuthRejectsMissingToken(t *testing.T) {
	h := protectedHandler(t, staticResolver{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	h := protectedHandler(t, staticResolver{})

	req := httptest.NewRequest("GET", "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsUnresolvableIdentity(t *testing.T) {
	h := protectedHandler(t, staticResolver{err: errors.New("user gone")})

	token, err := auth.GenerateToken("64f1c0ffee64f1c0ffee64f1", "user")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthInjectsIdentity(t *testing.T) {
	ident := &middleware.Identity{ID: "64f1c0ffee64f1c0ffee64f1", Email: "alice@example.com", Role: "admin"}
	h := protectedHandler(t, staticResolver{ident: ident})

	token, err := auth.GenerateToken(ident.ID, ident.Role)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@example.com", rec.Body.String())
}
