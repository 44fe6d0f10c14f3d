package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	t.Cleanup(func() {
		Audit = zap.NewNop()
		Security = zap.NewNop()
	})

	require.NoError(t, Init(dir))

	Audit.Info("task created", zap.Int("task_id", 1))
	Security.Warn("invalid credentials", zap.String("name", "alice"))
	Sync()

	audit, err := os.ReadFile(filepath.Join(dir, "audit.log"))
	require.NoError(t, err)
	require.Contains(t, string(audit), "task created")

	security, err := os.ReadFile(filepath.Join(dir, "security.log"))
	require.NoError(t, err)
	require.Contains(t, string(security), "invalid credentials")
}

func TestInitBadDir(t *testing.T) {
	// 以檔案佔用目錄路徑使 MkdirAll 失敗
	base := t.TempDir()
	file := filepath.Join(base, "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	require.Error(t, Init(filepath.Join(file, "logs")))
}
