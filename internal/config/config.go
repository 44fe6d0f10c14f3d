// File: internal/config/config.go
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config 服務啟動所需的全部設定，來源為環境變數
type Config struct {
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	ListenAddr    string
	WorkerCount   int
	LogDir        string
}

// Load 以 viper 讀取環境變數並套用預設值
// DATABASE_URL、REDIS_ADDR 與 JWT_SECRET 為必填
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("WORKER_COUNT", 4)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("LOG_DIR", "logs")

	cfg := &Config{
		DatabaseURL:   v.GetString("DATABASE_URL"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		ListenAddr:    v.GetString("LISTEN_ADDR"),
		WorkerCount:   v.GetInt("WORKER_COUNT"),
		LogDir:        v.GetString("LOG_DIR"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("環境變數 JWT_SECRET 未設定")
	}
	if cfg.WorkerCount <= 0 {
		return nil, fmt.Errorf("無效的 WORKER_COUNT: %d", cfg.WorkerCount)
	}
	return cfg, nil
}
