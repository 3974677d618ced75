package cache

import (
	"fmt"

	"marketplace/internal/config"
)

// Open builds the Store selected by cfg.Driver.
func Open(cfg config.CacheConfig, redisCfg config.RedisConfig) (Store, error) {
	switch cfg.Driver {
	case config.CacheDriverRedis, "":
		return NewRedisStore(NewRedisClient(redisCfg), cfg.TTL), nil
	case config.CacheDriverMemory:
		return NewMemoryStore(cfg.TTL), nil
	case config.CacheDriverNone:
		return NoopStore{}, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}
