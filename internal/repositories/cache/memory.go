package cache

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/tidwall/match"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryStore is an in-process Store for single-instance deployments and tests.
type MemoryStore struct {
	entries *xsync.MapOf[string, memoryEntry]
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: xsync.NewMapOf[string, memoryEntry](),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	entry, ok := s.entries.Load(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	if entry.expired(s.now()) {
		s.entries.Delete(key)
		return nil, ErrCacheMiss
	}
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	entry := memoryEntry{value: append([]byte(nil), value...)}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}
	s.entries.Store(key, entry)
	return nil
}

// DeleteMatching removes every key matching a Redis MATCH style pattern.
func (s *MemoryStore) DeleteMatching(_ context.Context, pattern string) (int, error) {
	deleted := 0
	s.entries.Range(func(key string, _ memoryEntry) bool {
		if match.Match(key, pattern) {
			s.entries.Delete(key)
			deleted++
		}
		return true
	})
	return deleted, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Flush(context.Context) error {
	s.entries.Clear()
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// Len reports the number of stored keys, expired ones included.
func (s *MemoryStore) Len() int {
	return s.entries.Size()
}
