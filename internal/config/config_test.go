package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(loadOptions{dataPath: t.TempDir(), envFile: "does-not-exist.env"})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 10.0, cfg.RateLimit.RPS)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
}

func TestLoad_FlagsOverride(t *testing.T) {
	cfg, err := load(loadOptions{
		env:            "production",
		logLevel:       "warn",
		serverPort:     "9090",
		dataPath:       t.TempDir(),
		corsOrigins:    "https://app.example.com, https://admin.example.com",
		rateLimitRPS:   "2.5",
		rateLimitBurst: "5",
		envFile:        "does-not-exist.env",
	})
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 2.5, cfg.RateLimit.RPS)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	_, err := load(loadOptions{env: "cloud", dataPath: t.TempDir(), envFile: "does-not-exist.env"})
	assert.ErrorContains(t, err, "invalid environment")
}

func TestLoad_InvalidTimeout(t *testing.T) {
	_, err := load(loadOptions{readTimeout: "soon", dataPath: t.TempDir(), envFile: "does-not-exist.env"})
	assert.ErrorContains(t, err, "invalid read timeout")
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("# comment\nSERVER_PORT=3000\n"), 0o644))

	// Env file values apply only when the variable is not already set.
	t.Setenv("SERVER_PORT", "")
	os.Unsetenv("SERVER_PORT")

	cfg, err := load(loadOptions{dataPath: dir, envFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Server.Port)
}

func TestDerivedPaths(t *testing.T) {
	dir := t.TempDir()
	cfg, err := load(loadOptions{dataPath: dir, envFile: "does-not-exist.env"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "bookden.db"), cfg.DatabasePath())
	assert.Equal(t, filepath.Join(dir, "search"), cfg.SearchPath())
}
