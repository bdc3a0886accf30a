package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ventureboard/backend/internal/integration/adapters"
	"github.com/ventureboard/backend/internal/integration/entrypoint/controller"
	"github.com/ventureboard/backend/internal/integration/entrypoint/middleware"
)

func newTestRouter() *Router {
	up := func(context.Context) bool { return true }
	return NewRouter(
		controller.NewHealthController(up, nil),
		&controller.CompanyController{},
		&controller.TransactionController{},
		&controller.StatementController{},
		&controller.IntercompanyController{},
		&controller.BudgetController{},
		middleware.NewRateLimiter(),
		middleware.NewAuthMiddleware(adapters.NewTokenService("router-test-secret", time.Hour)),
	)
}

func TestRouter_APIRoutesRequireAuthentication(t *testing.T) {
	engine := newTestRouter().Setup("test")

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/companies"},
		{http.MethodPost, "/api/v1/companies"},
		{http.MethodGet, "/api/v1/companies/9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d/transactions"},
		{http.MethodPost, "/api/v1/companies/9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d/transactions"},
		{http.MethodGet, "/api/v1/companies/9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d/statements"},
		{http.MethodPost, "/api/v1/companies/9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d/statements/recalculate"},
		{http.MethodPost, "/api/v1/companies/9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d/intercompany/normalize"},
		{http.MethodPost, "/api/v1/companies/9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d/intercompany/deduplicate"},
		{http.MethodPost, "/api/v1/companies/9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d/intercompany/migrate"},
		{http.MethodGet, "/api/v1/consolidation"},
		{http.MethodPost, "/api/v1/intercompany/mirror"},
		{http.MethodPost, "/api/v1/budget/periods"},
		{http.MethodPost, "/api/v1/budget/categories"},
		{http.MethodGet, "/api/v1/budget/periods/9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d/lines"},
		{http.MethodPost, "/api/v1/budget/periods/9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d/lines"},
		{http.MethodPost, "/api/v1/budget/periods/9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d/approve"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRouter_PublicRoutes(t *testing.T) {
	engine := newTestRouter().Setup("test")

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"cache":"disabled"`)
	})

	t.Run("metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v2/companies", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
