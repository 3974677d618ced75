package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/config"

	"github.com/redis/go-redis/v9"
)

const deleteBatchSize = 100

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
}

// RedisStore is the Store backed by a Redis server.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps client. A zero ttl stores keys without expiry.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("%w: get %s: %v", ErrUnavailable, key, err)
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrUnavailable, key, err)
	}
	return nil
}

// DeleteMatching walks the keyspace with SCAN rather than KEYS so large
// keyspaces do not block the server, deleting matches in batches.
func (s *RedisStore) DeleteMatching(ctx context.Context, pattern string) (int, error) {
	var (
		batch   []string
		deleted int
	)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := s.client.Del(ctx, batch...).Result()
		if err != nil {
			return err
		}
		deleted += int(n)
		batch = batch[:0]
		return nil
	}

	iter := s.client.Scan(ctx, 0, pattern, deleteBatchSize).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= deleteBatchSize {
			if err := flush(); err != nil {
				return deleted, fmt.Errorf("%w: delete %s: %v", ErrUnavailable, pattern, err)
			}
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("%w: scan %s: %v", ErrUnavailable, pattern, err)
	}
	if err := flush(); err != nil {
		return deleted, fmt.Errorf("%w: delete %s: %v", ErrUnavailable, pattern, err)
	}
	return deleted, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: redis connection failed: %v", ErrUnavailable, err)
	}
	return nil
}

// Flush empties the selected database.
func (s *RedisStore) Flush(ctx context.Context) error {
	return s.client.FlushDB(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// PoolStats exposes the client connection pool counters.
func (s *RedisStore) PoolStats() *redis.PoolStats {
	return s.client.PoolStats()
}
