package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
app:
  base_url: https://portal.example.com
  request_timeout: 30s
  log_level: debug
storage:
  backend: redis
  key: portal:token
  redis:
    addr: redis.example.com:6379
    db: 2
policy:
  path: config/access_policy.csv
`)
	t.Setenv("TERMBRIDGE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://portal.example.com", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, BackendRedis, cfg.StorageBackend)
	assert.Equal(t, "portal:token", cfg.TokenKey)
	assert.Equal(t, "redis.example.com:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "config/access_policy.csv", cfg.PolicyPath)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
app:
  base_url: https://portal.example.com
`)
	t.Setenv("TERMBRIDGE_CONFIG", path)
	t.Setenv("TERMBRIDGE_BASE_URL", "http://localhost:9000")
	t.Setenv("TERMBRIDGE_STORAGE_BACKEND", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", cfg.BaseURL)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("TERMBRIDGE_CONFIG", filepath.Join(t.TempDir(), "nope.yml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, BackendFile, cfg.StorageBackend)
	// No timeout by default: requests are never aborted client-side.
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
	assert.NotEmpty(t, cfg.TokenPath)
	assert.Equal(t, "termbridge:access_token", cfg.TokenKey)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	path := writeConfig(t, `
app:
  request_timeout: soon
`)
	t.Setenv("TERMBRIDGE_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}
