package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/starwars-api/internal/errs"
	"github.com/deppfellow/starwars-api/internal/middleware"
	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/repository"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/testutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlanetPayload() *model.CreatePlanetPayload {
	return &model.CreatePlanetPayload{}
}

const hoth = `{"name":"Hoth","gravity":1,"population":0,"climate":"frozen","terrain":"tundra"}`

func post(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func countPlanets(t *testing.T, s *server.Server) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.DB.ORM.Model(&model.Planet{}).Count(&n).Error)
	return n
}

func TestHandle_CommitsOnSuccess(t *testing.T) {
	s := testutil.NewServer(t)
	planets := repository.NewTable[model.Planet](s.DB.ORM)
	h := NewHandler(s)

	e := echo.New()
	e.POST("/planet", HandleOK(h, func(c echo.Context, req *model.CreatePlanetPayload) (*model.Planet, error) {
		_, open := repository.SessionFromContext(c.Request().Context())
		assert.True(t, open)

		planet := req.ToModel()
		return planet, planets.Add(c.Request().Context(), planet)
	}, newPlanetPayload))

	rec := post(e, "/planet", hoth)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Hoth"`)
	assert.Equal(t, int64(1), countPlanets(t, s))
}

func TestHandle_RollsBackOnError(t *testing.T) {
	s := testutil.NewServer(t)
	planets := repository.NewTable[model.Planet](s.DB.ORM)
	h := NewHandler(s)

	e := echo.New()
	e.POST("/planet", HandleOK(h, func(c echo.Context, req *model.CreatePlanetPayload) (*model.Planet, error) {
		planet := req.ToModel()
		if err := planets.Add(c.Request().Context(), planet); err != nil {
			return nil, err
		}
		return nil, errors.New("hyperdrive failure")
	}, newPlanetPayload))

	rec := post(e, "/planet", hoth)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, int64(0), countPlanets(t, s))
}

func TestHandle_ValidationSkipsHandler(t *testing.T) {
	s := testutil.NewServer(t)
	h := NewHandler(s)

	called := false
	e := echo.New()
	e.POST("/planet", HandleOK(h, func(c echo.Context, req *model.CreatePlanetPayload) (*model.Planet, error) {
		called = true
		return nil, nil
	}, newPlanetPayload))

	rec := post(e, "/planet", `{"name":"Hoth"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
}

func TestHandle_FreshPayloadPerRequest(t *testing.T) {
	s := testutil.NewServer(t)
	h := NewHandler(s)

	var seen []*model.CreatePlanetPayload
	e := echo.New()
	e.POST("/planet", HandleOK(h, func(c echo.Context, req *model.CreatePlanetPayload) (string, error) {
		seen = append(seen, req)
		return req.Name, nil
	}, newPlanetPayload))

	post(e, "/planet", hoth)
	post(e, "/planet", strings.Replace(hoth, "Hoth", "Endor", 1))

	require.Len(t, seen, 2)
	assert.NotSame(t, seen[0], seen[1])
	assert.Equal(t, "Hoth", seen[0].Name)
}

func TestHandle_PostgresUniqueViolationNamesTheColumn(t *testing.T) {
	s := testutil.NewServer(t)
	users := repository.NewTable[model.User](s.DB.ORM)
	h := NewHandler(s)

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	e.POST("/user", HandleOK(h, func(c echo.Context, req *model.CreateUserPayload) (*model.User, error) {
		user := req.ToModel()
		if err := users.Add(c.Request().Context(), user); err != nil {
			return nil, err
		}
		// What pgx reports when a concurrent insert took the username first.
		return nil, fmt.Errorf("table:users: add: %w", &pgconn.PgError{
			Severity:       "ERROR",
			Code:           "23505",
			Message:        `duplicate key value violates unique constraint "users_username_key"`,
			TableName:      "users",
			ConstraintName: "users_username_key",
		})
	}, func() *model.CreateUserPayload { return &model.CreateUserPayload{} }))

	rec := post(e, "/user", `{"name":"Han Solo","username":"han","email":"han@falcon.sw"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "USER_ALREADY_EXISTS", body.Code)
	assert.Equal(t, "A User with this Username already exists", body.Message)
	assert.Equal(t, errs.KindConflict, body.Kind)
	assert.NotContains(t, rec.Body.String(), "duplicate key")

	var n int64
	require.NoError(t, s.DB.ORM.Model(&model.User{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}
