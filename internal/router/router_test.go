package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/recipe-api/config"
	"github.com/oksasatya/recipe-api/internal/container"
	"github.com/oksasatya/recipe-api/internal/infrastructure/sqlite"
	"github.com/oksasatya/recipe-api/pkg/helpers"
)

func newEngine(t *testing.T, mutate func(*config.Config)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		AppName:             "recipe-api",
		Env:                 "test",
		StoreDriver:         config.DriverSQLite,
		SQLitePath:          sqlite.MemoryPath,
		JWTAccessSecret:     "router-test",
		AccessTTL:           time.Hour,
		DebugMetricsEnabled: true,
	}
	if mutate != nil {
		mutate(cfg)
	}
	logger := helpers.NewDiscardLogger()
	store, err := container.OpenStore(context.Background(), cfg, logger)
	require.NoError(t, err)
	c, err := container.New(cfg, logger, store, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return NewEngine(c)
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRoutes(t *testing.T) {
	r := newEngine(t, nil)

	tests := []struct {
		path   string
		status int
	}{
		{"/api/recipes", http.StatusOK},
		{"/api/recipes/3", http.StatusOK},
		{"/api/recipes/abc", http.StatusBadRequest},
		{"/api/categories", http.StatusOK},
		{"/api/categories/soups", http.StatusOK},
		{"/api/auth/profile/not-a-uuid", http.StatusBadRequest},
		{"/api/auth/me", http.StatusUnauthorized},
		{"/health", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/swagger.yaml", http.StatusOK},
		{"/api-docs/", http.StatusOK},
		{"/api/debug/vars", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.status, get(r, tt.path).Code)
		})
	}
}

func TestNoRoute_NotFoundEnvelope(t *testing.T) {
	r := newEngine(t, nil)
	w := get(r, "/api/nothing-here")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"Not Found"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestDocsRedirectsToTrailingSlash(t *testing.T) {
	r := newEngine(t, nil)
	w := get(r, "/api-docs")
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/api-docs/", w.Header().Get("Location"))
}

func TestDebugVars_Disabled(t *testing.T) {
	r := newEngine(t, func(c *config.Config) { c.DebugMetricsEnabled = false })
	assert.Equal(t, http.StatusNotFound, get(r, "/api/debug/vars").Code)
}

func TestRegisterLoginMe(t *testing.T) {
	r := newEngine(t, nil)

	body := `{"email":"mehmet@example.com","password":"secret1","name":"Mehmet"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"mehmet@example.com","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mehmet@example.com")
}

func TestCORS(t *testing.T) {
	open := newEngine(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("Origin", "http://anywhere.test")
	w := httptest.NewRecorder()
	open.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	strict := newEngine(t, func(c *config.Config) { c.CORSAllowedOrigins = "http://app.test" })
	req = httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("Origin", "http://app.test")
	w = httptest.NewRecorder()
	strict.ServeHTTP(w, req)
	assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
