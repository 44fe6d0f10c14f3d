// File: internal/logger/logger.go
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Audit 與 Security 為全域結構化日誌
// 未呼叫 Init 前為 no-op，單元測試無需初始化
var (
	Audit    = zap.NewNop()
	Security = zap.NewNop()
)

func newLogger(filePath string, level zapcore.Level) (*zap.Logger, error) {
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(file),
		level,
	)
	return zap.New(core), nil
}

// Init 在 dir 下建立 audit.log 與 security.log 並啟用 JSON 日誌
func Init(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	audit, err := newLogger(filepath.Join(dir, "audit.log"), zapcore.InfoLevel)
	if err != nil {
		return err
	}
	security, err := newLogger(filepath.Join(dir, "security.log"), zapcore.WarnLevel)
	if err != nil {
		return err
	}

	Audit = audit
	Security = security
	return nil
}

// Sync flush 所有日誌緩衝
func Sync() {
	_ = Audit.Sync()
	_ = Security.Sync()
}
