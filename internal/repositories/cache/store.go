// Package cache holds the key/value stores behind the read-through cache
// and the JSON wrapper services use to talk to them.
package cache

import (
	"context"
	"errors"
)

var (
	// ErrCacheMiss reports that no value is stored under the key.
	ErrCacheMiss = errors.New("cache miss")
	// ErrUnavailable wraps any failure reaching the backing store.
	ErrUnavailable = errors.New("cache unavailable")
)

// Store is a key/value store with pattern-based deletion. Patterns use
// Redis MATCH glob syntax.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	DeleteMatching(ctx context.Context, pattern string) (int, error)
	Ping(ctx context.Context) error
	Flush(ctx context.Context) error
	Close() error
}
