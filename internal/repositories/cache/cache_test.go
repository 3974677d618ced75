package cache

import (
	"context"
	"errors"
	"testing"

	keys "marketplace/internal/utils/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type failingStore struct {
	NoopStore
	err error
}

func (f failingStore) Get(context.Context, string) ([]byte, error) { return nil, f.err }

func (f failingStore) Set(context.Context, string, []byte) error { return f.err }

func (f failingStore) DeleteMatching(context.Context, string) (int, error) { return 0, f.err }

type view struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestCache_PutLookup(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore(0), nil, nil)

	var got view
	assert.False(t, c.Lookup(ctx, "accounts:1_a@x.com", &got))

	c.Put(ctx, "accounts:1_a@x.com", view{ID: 1, Name: "Jane"})
	require.True(t, c.Lookup(ctx, "accounts:1_a@x.com", &got))
	assert.Equal(t, view{ID: 1, Name: "Jane"}, got)
}

func TestCache_FailOpen(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)
	stats := NewStats()
	c := New(failingStore{err: errors.New("connection refused")}, stats, zap.New(core))

	var got view
	assert.False(t, c.Lookup(ctx, "accounts:1_a@x.com", &got))
	c.Put(ctx, "accounts:1_a@x.com", view{ID: 1})
	c.Evict(ctx, "accounts:1_*", "cards:2_*")

	assert.Equal(t, 4, logs.Len())
	snap := stats.Snapshot()
	assert.Equal(t, int64(3), snap["accounts"].Errors)
	assert.Equal(t, int64(1), snap["cards"].Errors)
}

func TestCache_UndecodableEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	require.NoError(t, store.Set(ctx, "cards:1_a@x.com", []byte("not json")))
	c := New(store, nil, nil)

	var got view
	assert.False(t, c.Lookup(ctx, "cards:1_a@x.com", &got))
}

func TestCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	c := New(store, nil, nil)
	c.Put(ctx, "accounts:1_a@x.com", view{ID: 1})
	c.Put(ctx, "accounts:a@x.com_root@x.com", view{ID: 1})
	c.Put(ctx, "cards:7_a@x.com", view{ID: 7})
	c.Put(ctx, "cards:8_a@x.com", view{ID: 8})

	c.Invalidate(ctx, keys.Mutation{
		Kind:          keys.KindCard,
		AccountID:     1,
		AccountEmails: []string{"a@x.com"},
		CardIDs:       []uint{7},
	})

	assert.Equal(t, 1, store.Len())
	var got view
	assert.True(t, c.Lookup(ctx, "cards:8_a@x.com", &got))
}

func TestStats_Snapshot(t *testing.T) {
	s := NewStats()
	s.RecordHit("accounts")
	s.RecordHit("accounts")
	s.RecordHit("accounts")
	s.RecordMiss("accounts")
	s.RecordDenied("cards")

	snap := s.Snapshot()
	assert.Equal(t, int64(3), snap["accounts"].Hits)
	assert.InDelta(t, 75.0, snap["accounts"].Ratio, 0.001)
	assert.Equal(t, int64(1), snap["cards"].Denied)
	assert.Equal(t, int64(3), snap["total"].Hits)
	assert.Equal(t, int64(1), snap["total"].Misses)
}
