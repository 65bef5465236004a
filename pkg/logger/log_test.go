package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Obkeldiyev/vitality-clinic-hub/pkg/config"
)

func TestNewLogger_WritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	log := NewLogger(config.LogConfig{Level: "info", File: file, MaxSizeMB: 1})

	log.Debug("не должно попасть в файл")
	log.Info("сервер запущен")
	_ = log.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "сервер запущен")
	assert.NotContains(t, string(data), "не должно попасть")
}
