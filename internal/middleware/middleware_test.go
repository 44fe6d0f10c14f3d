package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newContext(auth string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestExtractClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	// missing header
	ctx, _ := newContext("")
	_, err := extractClaims(ctx)
	require.Error(t, err)

	// bad format
	ctx, _ = newContext("BadHeader")
	_, err = extractClaims(ctx)
	require.Error(t, err)

	// invalid token
	ctx, _ = newContext("Bearer invalid")
	_, err = extractClaims(ctx)
	require.Error(t, err)

	// valid token
	tok, err := service.IssueAccessToken(model.User{ID: 1, IsAdmin: true}, time.Minute)
	require.NoError(t, err)
	ctx, _ = newContext("Bearer " + tok)
	claims, err := extractClaims(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, claims.UserID)
	require.True(t, claims.IsAdmin)
}

func TestRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	tok, err := service.IssueAccessToken(model.User{ID: 2}, time.Minute)
	require.NoError(t, err)

	// success path
	ctx, rec := newContext("Bearer " + tok)
	called := false
	handler := RequireAuth(func(c echo.Context) error {
		called = true
		require.Equal(t, 2, CurrentClaims(c).UserID)
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(ctx))
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	// missing token
	ctx, _ = newContext("")
	called = false
	err = RequireAuth(func(echo.Context) error { called = true; return nil })(ctx)
	require.Error(t, err)
	require.False(t, called)
}

func TestRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	adminTok, err := service.IssueAccessToken(model.User{ID: 1, IsAdmin: true}, time.Minute)
	require.NoError(t, err)
	userTok, err := service.IssueAccessToken(model.User{ID: 2}, time.Minute)
	require.NoError(t, err)

	// admin passes
	ctx, _ := newContext("Bearer " + adminTok)
	called := false
	handler := RequireAdmin(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(ctx))
	require.True(t, called)

	// non-admin rejected
	ctx, _ = newContext("Bearer " + userTok)
	called = false
	err = RequireAdmin(func(echo.Context) error { called = true; return nil })(ctx)
	require.Error(t, err)
	require.False(t, called)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusForbidden, httpErr.Code)
}
