package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 30000, cfg.HTTPTimeoutMs)
	assert.Equal(t, 4, cfg.FanOut)
	assert.False(t, cfg.LogCalls)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, "travelsay.db", filepath.Base(cfg.DBPath))
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("TRAVELSAY_API_URL", "https://trips.example.com/")
	t.Setenv("TRAVELSAY_DB", "/tmp/x.db")
	t.Setenv("TRAVELSAY_HTTP_TIMEOUT_MS", "1500")
	t.Setenv("TRAVELSAY_FANOUT", "8")
	t.Setenv("TRAVELSAY_LOG_CALLS", "true")
	t.Setenv("TRAVELSAY_LOG_LEVEL", "debug")

	cfg := FromEnv()
	assert.Equal(t, "https://trips.example.com", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, 1500, cfg.HTTPTimeoutMs)
	assert.Equal(t, 8, cfg.FanOut)
	assert.True(t, cfg.LogCalls)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestFromEnv_IgnoresMalformed(t *testing.T) {
	t.Setenv("TRAVELSAY_HTTP_TIMEOUT_MS", "soon")
	t.Setenv("TRAVELSAY_FANOUT", "-2")
	t.Setenv("TRAVELSAY_LOG_LEVEL", "loud")

	cfg := FromEnv()
	def := DefaultConfig()
	assert.Equal(t, def.HTTPTimeoutMs, cfg.HTTPTimeoutMs)
	assert.Equal(t, def.FanOut, cfg.FanOut)
	assert.Equal(t, def.LogLevel, cfg.LogLevel)
}

func TestLoadConfig_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TRAVELSAY_FANOUT=6\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("TRAVELSAY_FANOUT", "")
	require.NoError(t, os.Unsetenv("TRAVELSAY_FANOUT"))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.FanOut)
	require.NoError(t, os.Unsetenv("TRAVELSAY_FANOUT"))
}

func TestLoadConfig_MissingDotEnvIsFine(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := LoadConfig()
	assert.NoError(t, err)
}
