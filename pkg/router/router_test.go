package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huyvng/storedash/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNamedRoutesAndURL(t *testing.T) {
	r := router.New()
	r.Get("/api/products/{id}", "products.show", ok)
	r.Delete("/api/products/{id}", "products.destroy", ok)

	path, found := r.Path("products.show")
	require.True(t, found)
	assert.Equal(t, "/api/products/{id}", path)

	url, err := r.URL("products.destroy", map[string]string{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/api/products/42", url)

	_, err = r.URL("products.destroy", nil)
	assert.Error(t, err)

	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var touched bool
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			touched = true
			next.ServeHTTP(w, req)
		})
	}

	r := router.New()
	api := r.Group("/api", mw)
	api.Get("/health", "health", ok)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, touched)

	routes := r.Routes()
	assert.Equal(t, "/api/health", routes["health"])
}

func TestMethodRouting(t *testing.T) {
	r := router.New()
	r.Put("/api/orders/{id}", "orders.update", ok)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/orders/1", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("PUT", "/api/orders/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
