package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskboard/internal/cache"
	"taskboard/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestPingHandler(t *testing.T) {
	e := echo.New()

	t.Run("db unhealthy", func(t *testing.T) {
		db := &database.FakeDB{
			PingFn: func(ctx context.Context) error { return errors.New("fail") },
		}
		rdb := &cache.FakeCache{}
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)
		require.NoError(t, PingHandler(db, rdb)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "database unhealthy")
	})

	t.Run("cache unhealthy", func(t *testing.T) {
		db := &database.FakeDB{
			PingFn: func(ctx context.Context) error { return nil },
		}
		rdb := &cache.FakeCache{SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
			return redis.NewStatusResult("", errors.New("set"))
		}}
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)
		require.NoError(t, PingHandler(db, rdb)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "cache unhealthy")
	})

	t.Run("ok", func(t *testing.T) {
		db := &database.FakeDB{
			PingFn: func(ctx context.Context) error { return nil },
		}
		rdb := &cache.FakeCache{SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
			return redis.NewStatusResult("OK", nil)
		}}
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)
		require.NoError(t, PingHandler(db, rdb)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "pong")
	})
}
