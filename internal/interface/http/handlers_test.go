package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/recipe-api/internal/application"
	"github.com/oksasatya/recipe-api/internal/infrastructure/catalog"
	"github.com/oksasatya/recipe-api/internal/infrastructure/sqlite"
	"github.com/oksasatya/recipe-api/internal/interface/middleware"
	"github.com/oksasatya/recipe-api/pkg/apperr"
	"github.com/oksasatya/recipe-api/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

type envelope struct {
	Status    int             `json:"status"`
	RequestID string          `json:"request_id"`
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     map[string]any  `json:"error"`
}

type testServer struct {
	engine *gin.Engine
	users  *UserHandler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	store := sqlite.NewUserRepository(db)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Initialize(ctx))

	logger := helpers.NewDiscardLogger()
	svc := application.NewUserService(store, logger)
	cat, err := application.NewCatalogService(catalog.Embedded())
	require.NoError(t, err)

	users := NewUserHandler(svc, helpers.NewJWTManager("test-secret", time.Hour), logger, "", false, false)
	recipes := NewRecipeHandler(cat, users.Errors)
	categories := NewCategoryHandler(cat, users.Errors)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("request_id", "req-1") })
	r.POST("/api/auth/register", users.Register)
	r.POST("/api/auth/login", users.Login)
	r.POST("/api/auth/logout", users.Logout)
	r.GET("/api/auth/profile/:id", users.GetProfile)
	r.GET("/api/auth/me", func(c *gin.Context) {
		c.Set(middleware.CtxUserIDKey, c.GetHeader("X-Test-User"))
	}, users.Me)
	r.GET("/api/recipes", recipes.List)
	r.GET("/api/recipes/:id", recipes.Get)
	r.GET("/api/categories", categories.List)
	r.GET("/api/categories/:id", categories.Get)
	r.GET(OpenAPIPath, OpenAPIDocument)
	r.GET(DocsPath+"*any", SwaggerUI("Recipe API"))
	r.GET("/health", NewHealthHandler(store, nil, logger).Check)

	return &testServer{engine: r, users: users}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd *bytes.Reader
	switch b := body.(type) {
	case nil:
		rd = bytes.NewReader(nil)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func registerBody() map[string]any {
	return map[string]any{"email": "ayse@example.com", "password": "secret1", "name": "Ayşe", "birthday": "1992-04-23"}
}

func TestRegister_Created(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(t, http.MethodPost, "/api/auth/register", registerBody())

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "req-1", env.RequestID)

	var p map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "ayse@example.com", p["email"])
	assert.Equal(t, "1992-04-23", p["birthday"])
	assert.NotContains(t, p, "password")
	assert.NotContains(t, p, "passwordHash")
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, p["createdAt"])
}

func TestRegister_Errors(t *testing.T) {
	s := newTestServer(t)
	_, _ = s.do(t, http.MethodPost, "/api/auth/register", registerBody())

	tests := []struct {
		name   string
		body   any
		status int
		msg    string
	}{
		{"duplicate email", registerBody(), http.StatusConflict, "Email already exists"},
		{"bad email", map[string]any{"email": "nope", "password": "secret1", "name": "A"}, http.StatusBadRequest, "Invalid email format"},
		{"short password", map[string]any{"email": "b@example.com", "password": "12345", "name": "B"}, http.StatusBadRequest, "Password must be at least 6 characters long"},
		{"bad birthday", map[string]any{"email": "c@example.com", "password": "secret1", "name": "C", "birthday": "2021-02-29"}, http.StatusBadRequest, "Invalid birthday date"},
		{"malformed json", `{"email":`, http.StatusBadRequest, MsgInvalidBody},
		{"wrong type", map[string]any{"email": 42}, http.StatusBadRequest, MsgInvalidBody},
		{"empty body", nil, http.StatusBadRequest, MsgInvalidBody},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := s.do(t, http.MethodPost, "/api/auth/register", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.msg, env.Message)
		})
	}
}

func TestLogin_SetsCookieAndMeWorks(t *testing.T) {
	s := newTestServer(t)
	_, reg := s.do(t, http.MethodPost, "/api/auth/register", registerBody())
	var regProfile struct{ ID string }
	require.NoError(t, json.Unmarshal(reg.Data, &regProfile))

	w, env := s.do(t, http.MethodPost, "/api/auth/login", map[string]any{"email": "ayse@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	var p struct{ ID string }
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, regProfile.ID, p.ID)

	var access *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == helpers.AccessTokenCookie {
			access = c
		}
	}
	require.NotNil(t, access)
	assert.True(t, access.HttpOnly)
	claims, err := s.users.JWT.ParseAccessToken(access.Value)
	require.NoError(t, err)
	assert.Equal(t, p.ID, claims.UserID)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("X-Test-User", claims.UserID)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ayse@example.com")
}

func TestLogin_Failures(t *testing.T) {
	s := newTestServer(t)
	_, _ = s.do(t, http.MethodPost, "/api/auth/register", registerBody())

	w, env := s.do(t, http.MethodPost, "/api/auth/login", map[string]any{"email": "ayse@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email and password are required", env.Message)

	w, wrong := s.do(t, http.MethodPost, "/api/auth/login", map[string]any{"email": "ayse@example.com", "password": "bad-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())

	w, unknown := s.do(t, http.MethodPost, "/api/auth/login", map[string]any{"email": "who@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, wrong.Message, unknown.Message)
	assert.Equal(t, "Invalid email or password", unknown.Message)
}

func TestLogout_ClearsCookie(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.do(t, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, helpers.AccessTokenCookie, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestGetProfile(t *testing.T) {
	s := newTestServer(t)
	_, reg := s.do(t, http.MethodPost, "/api/auth/register", registerBody())
	var p struct{ ID string }
	require.NoError(t, json.Unmarshal(reg.Data, &p))

	w, _ := s.do(t, http.MethodGet, "/api/auth/profile/"+p.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := s.do(t, http.MethodGet, "/api/auth/profile/00000000-0000-0000-0000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", env.Message)

	w, env = s.do(t, http.MethodGet, "/api/auth/profile/123", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid user ID format", env.Message)
}

func TestRecipes(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/api/recipes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 12)
	assert.Contains(t, all[0], "category")

	w, env = s.do(t, http.MethodGet, "/api/recipes?categoryId=soups&keyword=LENTIL", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var filtered []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &filtered))
	require.Len(t, filtered, 1)
	assert.EqualValues(t, 1, filtered[0]["id"])

	_, env = s.do(t, http.MethodGet, "/api/recipes?categoryId=nothing", nil)
	assert.JSONEq(t, `[]`, string(env.Data))

	w, env = s.do(t, http.MethodGet, "/api/recipes/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"ingredients"`)

	w, env = s.do(t, http.MethodGet, "/api/recipes/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid recipe ID", env.Message)

	w, env = s.do(t, http.MethodGet, "/api/recipes/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Recipe not found", env.Message)
}

func TestCategories(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 6)

	w, env = s.do(t, http.MethodGet, "/api/categories/desserts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"Desserts"`)

	w, env = s.do(t, http.MethodGet, "/api/categories/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Category not found", env.Message)
}

func TestDocs(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, OpenAPIPath, nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")

	req = httptest.NewRequest(http.MethodGet, DocsPath, nil)
	w = httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger")
}

type downStore struct{}

func (downStore) Ping(context.Context) error { return errors.New("closed") }

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"store":"up","redis":"disabled"}`, string(env.Data))

	r := gin.New()
	r.GET("/health", NewHealthHandler(downStore{}, nil, nil).Check)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"store":"down"`)
}

func TestErrorWriter(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperr.With(apperr.ErrInvalidInput, "x"), http.StatusBadRequest},
		{apperr.With(apperr.ErrConflict, "x"), http.StatusConflict},
		{apperr.With(apperr.ErrUnauthorized, "x"), http.StatusUnauthorized},
		{apperr.With(apperr.ErrNotFound, "x"), http.StatusNotFound},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.status, StatusFor(c.err), c.err.Error())
	}

	write := func(ew ErrorWriter) map[string]any {
		rec := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(rec)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		ew.Write(ctx, apperr.Wrap(apperr.ErrInternal, errors.New("disk on fire"), "save"))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var out map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, MsgInternal, out["message"])
		return out["error"].(map[string]any)
	}

	hidden := write(ErrorWriter{Logger: helpers.NewDiscardLogger()})
	assert.NotContains(t, hidden, "cause")
	shown := write(ErrorWriter{ExposeCause: true})
	assert.Contains(t, shown["cause"], "disk on fire")
}
