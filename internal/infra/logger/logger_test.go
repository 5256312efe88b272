package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homework_status_bot/internal/infra/config"
)

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program.log")
	closer, err := Init(&config.AppConfig{LogLevel: "info", LogFile: path, Environment: "development"})
	require.NoError(t, err)

	Named("homework_bot").WithField("from_date", 1000).Info("request sent")
	Named("homework_bot").Debug("hidden below info")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "level=info")
	assert.Contains(t, content, `msg="request sent"`)
	assert.Contains(t, content, "logger=homework_bot")
	assert.Contains(t, content, "from_date=1000")
	assert.NotContains(t, content, "hidden below info")
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}

func TestInitProductionUsesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program.log")
	closer, err := Init(&config.AppConfig{LogLevel: "debug", LogFile: path, Environment: "production"})
	require.NoError(t, err)

	Named("homework_bot").Error("tick failed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"tick failed"`)
	assert.Contains(t, string(data), `"logger":"homework_bot"`)
}

func TestInitBadLevelFallsBack(t *testing.T) {
	closer, err := Init(&config.AppConfig{LogLevel: "loud"})
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
}

func TestInitUnwritableFile(t *testing.T) {
	_, err := Init(&config.AppConfig{LogFile: filepath.Join(t.TempDir(), "missing", "program.log")})
	assert.Error(t, err)
}
