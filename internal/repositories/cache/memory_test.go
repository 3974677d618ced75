package cache

import (
	"context"
	"testing"
	"time"

	keys "marketplace/internal/utils/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	_, err := s.Get(ctx, "accounts:1_a@x.com")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, s.Set(ctx, "accounts:1_a@x.com", []byte(`{"id":1}`)))
	got, err := s.Get(ctx, "accounts:1_a@x.com")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, string(got))

	// callers must not be able to mutate the stored value
	got[0] = 'X'
	again, _ := s.Get(ctx, "accounts:1_a@x.com")
	assert.Equal(t, `{"id":1}`, string(again))
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	_, err := s.Get(ctx, "k")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_DeleteMatching(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	for _, k := range []string{
		"accounts:1_a@x.com",
		"accounts:1_root@x.com",
		"accounts:10_a@x.com",
		"cards:1_a@x.com",
	} {
		require.NoError(t, s.Set(ctx, k, []byte("{}")))
	}

	n, err := s.DeleteMatching(ctx, "accounts:1_*")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, s.Len())

	_, err = s.Get(ctx, "accounts:10_a@x.com")
	assert.NoError(t, err)
	_, err = s.Get(ctx, "cards:1_a@x.com")
	assert.NoError(t, err)

	require.NoError(t, s.Flush(ctx))
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_DeleteMatchingPatterns(t *testing.T) {
	tests := []struct {
		pattern string
		key     string
		want    bool
	}{
		{"accounts:1_*", "accounts:1_a@x.com", true},
		{"accounts:1_*", "accounts:1_", true},
		{"accounts:1_*", "accounts:10_a@x.com", false},
		{"accounts:1_*", "cards:1_a@x.com", false},
		{"cards:?_*", "cards:7_a@x.com", true},
		{`accounts:a\*b@x.com_*`, "accounts:a*b@x.com_root", true},
		{`accounts:a\*b@x.com_*`, "accounts:azzb@x.com_root", false},
		{"*", "anything", true},
		{
			keys.EvictionPattern(keys.ScopeAccounts, "john_doe@x.com"),
			keys.ReadKey(keys.ScopeAccounts, "john_doe@x.com", "root@x.com"),
			true,
		},
		{
			keys.EvictionPattern(keys.ScopeAccounts, "john"),
			keys.ReadKey(keys.ScopeAccounts, "john_doe@x.com", "root@x.com"),
			false,
		},
		{
			keys.EvictionPattern(keys.ScopeAccounts, `a\b[1]@x.com`),
			keys.ReadKey(keys.ScopeAccounts, `a\b[1]@x.com`, "a_b@x.com"),
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"|"+tt.key, func(t *testing.T) {
			ctx := context.Background()
			s := NewMemoryStore(0)
			require.NoError(t, s.Set(ctx, tt.key, []byte("{}")))

			n, err := s.DeleteMatching(ctx, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n == 1)
		})
	}
}
