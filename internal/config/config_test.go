package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapEnv map[string]string

func (m mapEnv) Getenv(key string) string { return m[key] }

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadConfigFromEnv(mapEnv{"HOME": "/home/ann"})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.BackendURL)
	assert.Equal(t, filepath.Join("/home/ann", ".course-manager", "state.json"), cfg.StateFile)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigFromEnv_MissingStateLocation(t *testing.T) {
	_, err := LoadConfigFromEnv(mapEnv{})
	require.Error(t, err)
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	cfg, err := LoadConfigFromEnv(mapEnv{
		"BACKEND_URL":             "https://courses.example.com",
		"STATE_FILE":              "/tmp/state.json",
		"REQUEST_TIMEOUT_SECONDS": "5",
		"LOG_LEVEL":               "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://courses.example.com", cfg.BackendURL)
	assert.Equal(t, "/tmp/state.json", cfg.StateFile)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigFromEnv_InvalidValues(t *testing.T) {
	_, err := LoadConfigFromEnv(mapEnv{"HOME": "/h", "BACKEND_URL": "localhost"})
	assert.Error(t, err)

	_, err = LoadConfigFromEnv(mapEnv{"HOME": "/h", "REQUEST_TIMEOUT_SECONDS": "0"})
	assert.Error(t, err)
}

func TestLoadBackendConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadBackendConfigFromEnv(mapEnv{"MASTER_SECRET": "x"})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenExpiry)
	assert.Equal(t, 10, cfg.LoginRateLimit)
	assert.False(t, cfg.SeedData)
}

func TestLoadBackendConfigFromEnv_SeedData(t *testing.T) {
	cfg, err := LoadBackendConfigFromEnv(mapEnv{"MASTER_SECRET": "x", "SEED_DATA": "true"})
	require.NoError(t, err)
	assert.True(t, cfg.SeedData)

	_, err = LoadBackendConfigFromEnv(mapEnv{"MASTER_SECRET": "x", "SEED_DATA": "sometimes"})
	assert.Error(t, err)
}

func TestLoadBackendConfigFromEnv_MissingSecret(t *testing.T) {
	_, err := LoadBackendConfigFromEnv(mapEnv{})
	require.Error(t, err)
}

func TestLoadBackendConfigFromEnv_PortOverride(t *testing.T) {
	cfg, err := LoadBackendConfigFromEnv(mapEnv{"MASTER_SECRET": "x", "PORT": "1234"})
	require.NoError(t, err)
	assert.Equal(t, 1234, cfg.Port)

	_, err = LoadBackendConfigFromEnv(mapEnv{"MASTER_SECRET": "x", "PORT": "70000"})
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("COURSE_MANAGER_DOTENV_PROBE=loaded\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("COURSE_MANAGER_DOTENV_PROBE") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("COURSE_MANAGER_DOTENV_PROBE"))
}
