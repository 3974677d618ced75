package cache

import (
	"testing"

	"marketplace/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	redisCfg := config.RedisConfig{Host: "localhost", Port: "6379"}

	s, err := Open(config.CacheConfig{Driver: config.CacheDriverRedis}, redisCfg)
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)
	require.NoError(t, s.Close())

	s, err = Open(config.CacheConfig{Driver: config.CacheDriverMemory}, redisCfg)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(config.CacheConfig{Driver: config.CacheDriverNone}, redisCfg)
	require.NoError(t, err)
	assert.IsType(t, NoopStore{}, s)

	_, err = Open(config.CacheConfig{Driver: "memcached"}, redisCfg)
	assert.Error(t, err)
}
