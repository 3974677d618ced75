package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("CACHE_DRIVER", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("PORT", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_PORT", "")
	t.Setenv("LOG_DEV", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, CacheDriverRedis, cfg.Cache.Driver)
	assert.Equal(t, time.Duration(0), cfg.Cache.TTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.True(t, cfg.Log.Dev)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("CACHE_DRIVER", "MEMORY")
	t.Setenv("CACHE_TTL", "10m")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("DB_NAME", "cards")
	t.Setenv("LOG_DEV", "false")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, CacheDriverMemory, cfg.Cache.Driver)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr())
	assert.Contains(t, cfg.Database.DSN(), "dbname=cards")
	assert.False(t, cfg.Log.Dev)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestGetDurationEnv_Invalid(t *testing.T) {
	t.Setenv("SOME_TIMEOUT", "soon")
	assert.Equal(t, 3*time.Second, GetDurationEnv("SOME_TIMEOUT", 3*time.Second))
}
