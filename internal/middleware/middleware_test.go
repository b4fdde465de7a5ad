package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/deppfellow/starwars-api/internal/errs"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/testutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEcho(s *server.Server) *echo.Echo {
	e := echo.New()
	m := NewMiddlewares(s)
	e.HTTPErrorHandler = m.Global.GlobalErrorHandler
	e.Use(
		RequestID(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
		m.Global.Recover(),
		m.RateLimit.Limit(),
	)
	return e
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequestID(t *testing.T) {
	e := newEcho(testutil.NewServer(t))
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := rec.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, rec.Body.String())

	id := "7b4c1ad8-6a8e-4e3b-9a53-8e1b0d6f2c11"
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, id)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "not a uuid\nforged=1")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.NotContains(t, rec.Header().Get(RequestIDHeader), "forged")
}

func TestGlobalErrorHandler(t *testing.T) {
	e := newEcho(testutil.NewServer(t))
	e.GET("/http", func(c echo.Context) error {
		return errs.NewNotFoundError("User 9 not found", true, nil)
	})
	e.GET("/unique", func(c echo.Context) error {
		return &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_email_key"}
	})
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("dial tcp 10.0.0.5:5432: connection refused")
	})
	e.GET("/panic", func(c echo.Context) error {
		panic("lost the death star plans")
	})

	tests := []struct {
		path   string
		status int
		kind   string
		msg    string
	}{
		{"/http", http.StatusNotFound, "NotFoundError", "User 9 not found"},
		{"/unique", http.StatusConflict, "ConflictError", "A User with this Email already exists"},
		{"/boom", http.StatusInternalServerError, "InternalError", "Internal Server Error"},
		{"/panic", http.StatusInternalServerError, "InternalError", "Internal Server Error"},
		{"/nowhere", http.StatusNotFound, "NotFoundError", "Route not found"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.kind, body["error_kind"])
			assert.Equal(t, tt.msg, body["message"])
			assert.EqualValues(t, tt.status, body["status"])
		})
	}
}

func TestGlobalErrorHandler_MethodNotAllowed(t *testing.T) {
	e := newEcho(testutil.NewServer(t))
	e.GET("/only-get", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/only-get", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, rec)["code"])
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)

	s := testutil.NewServer(t)
	s.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = s.Redis.Close() })
	s.Config.RateLimit.Enabled = true
	s.Config.RateLimit.Capacity = 2
	s.Config.RateLimit.RefillInterval = time.Minute

	e := newEcho(s)
	e.GET("/planet", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	do := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/planet", nil))
		return rec
	}

	first := do()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, do().Code)

	limited := do()
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))
	assert.Equal(t, "RateLimitError", decodeError(t, limited)["error_kind"])
}

func TestRateLimit_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)

	s := testutil.NewServer(t)
	s.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = s.Redis.Close() })
	s.Config.RateLimit.Enabled = true
	s.Config.RateLimit.Capacity = 1

	e := newEcho(s)
	e.GET("/planet", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	mr.Close()

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/planet", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimit_DisabledWithoutRedis(t *testing.T) {
	s := testutil.NewServer(t)
	s.Config.RateLimit.Enabled = true

	e := newEcho(s)
	e.GET("/planet", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/planet", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}
