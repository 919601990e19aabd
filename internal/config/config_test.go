package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/retail")

	cfg, err := Load("does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, ":8080", cfg.App.Addr())
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, 15*time.Minute, cfg.Cache.MaxAge)
	assert.Equal(t, 10*time.Minute, cfg.Jobs.MetricsRefreshInterval)
	assert.True(t, cfg.Jobs.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/retail")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_BACKEND", "Postgres")
	t.Setenv("METRICS_CACHE_MAX_AGE", "1h")
	t.Setenv("JOBS_ENABLED", "false")

	cfg, err := Load("does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.MaxAge)
	assert.False(t, cfg.Jobs.Enabled)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := Load("does-not-exist.env")
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/retail")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err = Load("does-not-exist.env")
	assert.Error(t, err)

	t.Setenv("APP_ENV", "development")
	t.Setenv("CACHE_BACKEND", "memcached")
	_, err = Load("does-not-exist.env")
	assert.Error(t, err)
}
