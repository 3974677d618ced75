package cache

import (
	"context"
	"encoding/json"
	"errors"

	keys "marketplace/internal/utils/cache"

	"go.uber.org/zap"
)

// Cache wraps a Store with JSON encoding and fail-open error handling:
// nothing here ever returns a store failure to the caller. Read faults
// degrade to a miss, write and eviction faults are logged and dropped.
type Cache struct {
	store Store
	stats *Stats
	log   *zap.Logger
}

func New(store Store, stats *Stats, log *zap.Logger) *Cache {
	if store == nil {
		store = NoopStore{}
	}
	if stats == nil {
		stats = NewStats()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{store: store, stats: stats, log: log}
}

func (c *Cache) Stats() *Stats { return c.stats }

func (c *Cache) Store() Store { return c.store }

// Lookup decodes the value under key into dest and reports whether it did.
func (c *Cache) Lookup(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			c.recordError(key)
			c.log.Warn("cache read failed, falling back to store", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.recordError(key)
		c.log.Warn("cache entry undecodable, treating as miss", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Put stores value under key.
func (c *Cache) Put(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Error("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, key, data); err != nil {
		c.recordError(key)
		c.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Evict deletes every key matching each pattern. Every pattern is attempted
// even when an earlier one fails.
func (c *Cache) Evict(ctx context.Context, patterns ...string) {
	for _, pattern := range patterns {
		n, err := c.store.DeleteMatching(ctx, pattern)
		if err != nil {
			c.recordError(pattern)
			c.log.Warn("cache eviction failed", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		if n > 0 {
			c.log.Debug("cache entries evicted", zap.String("pattern", pattern), zap.Int("count", n))
		}
	}
}

// Invalidate evicts every cached view touched by m.
func (c *Cache) Invalidate(ctx context.Context, m keys.Mutation) {
	c.Evict(ctx, keys.Patterns(m)...)
}

func (c *Cache) recordError(key string) {
	if scope, _, ok := keys.ParseKey(key); ok {
		c.stats.RecordError(string(scope))
		return
	}
	c.stats.RecordError("unknown")
}
