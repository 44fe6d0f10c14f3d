package main

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/logger"
	"taskboard/internal/worker"
)

func restoreGlobals() {
	loadConfig = config.Load
	initLoggers = logger.Init
	newPgxPool = database.NewPgxPool
	newRedisClient = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool = worker.NewPool
	startServer = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc = func(code int) {}
}

func stubConfig() *config.Config {
	return &config.Config{
		DatabaseURL:   "db",
		RedisAddr:     "127",
		RedisPassword: "pw",
		RedisDB:       1,
		JWTSecret:     "s",
		ListenAddr:    ":0",
		WorkerCount:   2,
		LogDir:        "logs",
	}
}

func TestCustomValidator(t *testing.T) {
	cv := &CustomValidator{validator: validator.New()}
	type s struct {
		Name string `validate:"required"`
	}
	require.NoError(t, cv.Validate(&s{Name: "ok"}))
	require.Error(t, cv.Validate(&s{}))
}

func TestRunSuccess(t *testing.T) {
	t.Cleanup(restoreGlobals)
	called := make(map[string]bool)

	loadConfig = func() (*config.Config, error) { return stubConfig(), nil }
	initLoggers = func(string) error { called["logger"] = true; return nil }
	newPgxPool = func(ctx context.Context, url string) (database.DB, error) {
		called["pgx"] = true
		return &database.FakeDB{CloseFn: func() { called["dbClose"] = true }}, nil
	}
	newRedisClient = func(addr, pwd string, db int) (cache.Cache, error) {
		called["redis"] = true
		require.Equal(t, "127", addr)
		require.Equal(t, "pw", pwd)
		require.Equal(t, 1, db)
		return &cache.FakeCache{CloseFn: func() error { called["redisClose"] = true; return nil }}, nil
	}
	runMigrationsFn = func(url string) error { called["migrate"] = true; return nil }
	startServer = func(e *echo.Echo, addr string) error {
		called["start"] = true
		require.Equal(t, ":0", addr)
		return nil
	}

	require.NoError(t, run())
	require.True(t, called["logger"])
	require.True(t, called["pgx"])
	require.True(t, called["redis"])
	require.True(t, called["migrate"])
	require.True(t, called["start"])
	require.True(t, called["dbClose"])
	require.True(t, called["redisClose"])
}

func TestRunErrors(t *testing.T) {
	t.Cleanup(restoreGlobals)

	loadConfig = func() (*config.Config, error) { return nil, errors.New("config") }
	require.Error(t, run())

	loadConfig = func() (*config.Config, error) { return stubConfig(), nil }
	initLoggers = func(string) error { return errors.New("logger") }
	require.Error(t, run())

	initLoggers = func(string) error { return nil }
	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("db") }
	require.Error(t, run())

	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }
	newRedisClient = func(string, string, int) (cache.Cache, error) { return nil, errors.New("redis") }
	require.Error(t, run())

	newRedisClient = func(string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }
	runMigrationsFn = func(string) error { return errors.New("migrate") }
	require.Error(t, run())

	runMigrationsFn = func(string) error { return nil }
	startServer = func(*echo.Echo, string) error { return errors.New("start") }
	require.Error(t, run())
}

func TestMainExit(t *testing.T) {
	t.Cleanup(restoreGlobals)
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	loadConfig = func() (*config.Config, error) { return nil, errors.New("fail") }
	main()
	require.Equal(t, 1, exitCode)
}
