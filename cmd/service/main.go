// File: cmd/service/main.go
// @title        Taskboard API
// @version      1.0
// @description  任務看板與商品目錄的後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/events"
	"taskboard/internal/logger"
	"taskboard/internal/router"
	"taskboard/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "taskboard/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	initLoggers     = logger.Init
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool   = worker.NewPool
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc        = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := initLoggers(cfg.LogDir); err != nil {
		return fmt.Errorf("Logger 初始化失敗: %v", err)
	}
	defer logger.Sync()

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	bus := events.NewRedisBus(rdb, wp)

	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	router.Setup(e, db, rdb, bus)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return startServer(e, cfg.ListenAddr)
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
