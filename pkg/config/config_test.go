package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// t.Setenv registers restoration of the original value; unsetting
	// afterwards lets getEnv fall back to its defaults.
	for _, key := range []string{"SERVER_PORT", "APP_ENV", "DB_PATH", "DB_LOG_LEVEL", "JWT_SECRET_KEY", "LOG_LEVEL", "METRICS_PREFIX"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "cars.db", cfg.Database.Path)
	assert.Equal(t, "warn", cfg.Database.LogLevel)
	assert.Equal(t, "carservicesecretkey", cfg.JWT.SigningKey)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "car", cfg.Metrics.Prefix)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_PATH", "/tmp/test-cars.db")
	t.Setenv("JWT_SECRET_KEY", "override-secret")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("METRICS_PREFIX", "unit")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, "/tmp/test-cars.db", cfg.Database.Path)
	assert.Equal(t, "override-secret", cfg.JWT.SigningKey)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "unit", cfg.Metrics.Prefix)
}
