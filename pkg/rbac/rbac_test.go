package rbac_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huyvng/storedash/pkg/middleware"
	"github.com/huyvng/storedash/pkg/rbac"
)

func requestWithRole(role string) *http.Request {
	req := httptest.NewRequest("POST", "/api/users", nil)
	if role == "" {
		return req
	}
	ctx := middleware.WithIdentity(req.Context(), &middleware.Identity{ID: "1", Role: role})
	return req.WithContext(ctx)
}

func TestHasRole(t *testing.T) {
	var called bool
	h := rbac.HasRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithRole("admin"))
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)

	called = false
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithRole("user"))
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithRole(""))
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
