package router

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebook/backend/config"
	"github.com/pageza/recipebook/backend/internal/middleware"
	"github.com/pageza/recipebook/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{CORSOrigins: []string{"http://localhost:5173"}}
}

func serve(r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSetupRouter(t *testing.T) {
	r := SetupRouter(testConfig(), testhelpers.SetupTestDatabase(t), nil, zap.NewNop())

	w := serve(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = serve(r, http.MethodPost, "/recipe", []byte(`{"recipeName":"Toast","ingredients":[{"name":"Bread"}]}`))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/recipes", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "recipes_http_requests_total")

	w = serve(r, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetupRouterRateLimit(t *testing.T) {
	limiter := middleware.NewLocalLimiter(middleware.RateLimitConfig{Limit: 1, Window: time.Hour})
	r := SetupRouter(testConfig(), testhelpers.SetupTestDatabase(t), limiter, zap.NewNop())

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/recipes", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/recipes", nil).Code)

	// operational endpoints stay reachable
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/metrics", nil).Code)
}
