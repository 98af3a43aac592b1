package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/post-api/internal/errs"
	"github.com/deppfellow/post-api/internal/testutil"
)

func newContext(method string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/post/1", nil)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequestIDGenerated(t *testing.T) {
	c, rec := newContext(http.MethodGet)

	var seen string
	err := RequestID()(func(c echo.Context) error {
		seen = GetRequestID(c)
		return nil
	})(c)
	require.NoError(t, err)

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDPropagated(t *testing.T) {
	c, rec := newContext(http.MethodGet)
	c.Request().Header.Set(RequestIDHeader, "abc-123")

	err := RequestID()(func(c echo.Context) error { return nil })(c)
	require.NoError(t, err)

	assert.Equal(t, "abc-123", GetRequestID(c))
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestGetLoggerFallback(t *testing.T) {
	c, _ := newContext(http.MethodGet)
	require.NotNil(t, GetLogger(c))
}

func TestEnhanceContext(t *testing.T) {
	var buf bytes.Buffer
	s := testutil.NewServer()
	base := zerolog.New(&buf)
	s.Logger = &base

	ce := NewContextEnhancer(s)
	c, _ := newContext(http.MethodGet)
	c.Set(RequestIDKey, "req-1")

	err := ce.EnhanceContext()(func(c echo.Context) error {
		GetLogger(c).Info().Msg("from echo")
		zerolog.Ctx(c.Request().Context()).Info().Msg("from context")
		return nil
	})(c)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, `"request_id":"req-1"`)
		assert.Contains(t, line, `"method":"GET"`)
	}
}

func TestGlobalErrorHandler(t *testing.T) {
	global := NewGlobalMiddlewares(testutil.NewServer())

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "http error",
			err:        errs.NewNotFoundError("Post not found", false, nil),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantMsg:    "Post not found",
		},
		{
			name:       "wrapped http error",
			err:        fmt.Errorf("service: %w", errs.NewBadRequestError("Validation failed", true, nil, nil, nil)),
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
			wantMsg:    "Validation failed",
		},
		{
			name:       "echo route not found",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantMsg:    "Route not found",
		},
		{
			name:       "echo method not allowed",
			err:        echo.ErrMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   "METHOD_NOT_ALLOWED",
			wantMsg:    "Method Not Allowed",
		},
		{
			name: "unique violation",
			err: &pgconn.PgError{
				Code:           "23505",
				TableName:      "users",
				ConstraintName: "users_username_key",
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "USER_ALREADY_EXISTS",
			wantMsg:    "A User with this Username already exists",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantMsg:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(http.MethodGet)

			global.GlobalErrorHandler(tt.err, c)

			require.Equal(t, tt.wantStatus, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestGlobalErrorHandlerCommitted(t *testing.T) {
	global := NewGlobalMiddlewares(testutil.NewServer())
	c, rec := newContext(http.MethodGet)

	require.NoError(t, c.String(http.StatusOK, "done"))
	global.GlobalErrorHandler(errors.New("late"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}

func TestRateLimitDenies(t *testing.T) {
	s := testutil.NewServer()
	s.Config.Server.RateLimit = 1

	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.Use(NewRateLimitMiddleware(s).Limit())
	e.GET("/post", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	statuses := make([]int, 0, 5)
	for range 5 {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/post", nil))
		statuses = append(statuses, rec.Code)
	}

	assert.Equal(t, http.StatusOK, statuses[0])
	assert.Contains(t, statuses, http.StatusTooManyRequests)
}
