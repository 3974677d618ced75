// Package readthrough implements the authorization-aware read-through cache
// shared by the account and card services.
//
// A read is cached under a key that includes the principal, and only after
// the gate approved that principal for the loaded value, so a cached view
// is never served to anyone who could not have loaded it. Mutations evict
// every principal's entries for each affected lookup key.
//
// Every Invalidate bumps a generation counter. A fill that raced with an
// invalidation (the value was loaded, or written through, before a newer
// mutation evicted) is dropped or undone, so a stale view cannot outlive
// the eviction that should have removed it.
package readthrough

import (
	"context"
	"sync/atomic"

	"marketplace/internal/models"
	"marketplace/internal/repositories/cache"
	"marketplace/internal/services/access"
	keys "marketplace/internal/utils/cache"
)

// Outcome tags how a read was satisfied.
type Outcome int

const (
	Hit Outcome = iota
	Miss
	Denied
)

func (o Outcome) String() string {
	switch o {
	case Hit:
		return "hit"
	case Miss:
		return "miss"
	case Denied:
		return "denied"
	default:
		return "unknown"
	}
}

// Loader fetches the value from the store together with the email of the
// account that owns it.
type Loader[T any] func(ctx context.Context) (value T, ownerEmail string, err error)

type Cache struct {
	cache      *cache.Cache
	gate       access.Gate
	generation atomic.Uint64
}

func New(c *cache.Cache, gate access.Gate) *Cache {
	if gate == nil {
		gate = access.OwnershipGate{}
	}
	return &Cache{cache: c, gate: gate}
}

func (c *Cache) Gate() access.Gate { return c.gate }

// Read serves lookup from the principal's cache entry when present. On a
// miss it loads, authorizes and only then populates the entry. A denied
// read returns an error wrapping services.ErrForbidden and caches nothing.
func Read[T any](ctx context.Context, c *Cache, scope keys.Scope, lookup interface{}, principal models.Principal, load Loader[T]) (T, Outcome, error) {
	var zero T
	key := keys.ReadKey(scope, lookup, principal.ID)
	stats := c.cache.Stats()

	var cached T
	if c.cache.Lookup(ctx, key, &cached) {
		stats.RecordHit(string(scope))
		return cached, Hit, nil
	}
	stats.RecordMiss(string(scope))

	gen := c.generation.Load()
	value, owner, err := load(ctx)
	if err != nil {
		return zero, Miss, err
	}
	if err := access.Authorize(c.gate, principal, owner); err != nil {
		stats.RecordDenied(string(scope))
		return zero, Denied, err
	}

	c.fill(ctx, gen, key, value)
	return value, Miss, nil
}

// Populate writes value through to the principal's entry for lookup. gen
// is the generation returned by the Invalidate of the same mutation; the
// write is skipped when a later mutation invalidated in between, or when
// the principal no longer passes the gate for ownerEmail.
func (c *Cache) Populate(ctx context.Context, gen uint64, scope keys.Scope, lookup interface{}, principal models.Principal, ownerEmail string, value interface{}) {
	if !c.gate.CanAccess(principal, ownerEmail) {
		return
	}
	c.fill(ctx, gen, keys.ReadKey(scope, lookup, principal.ID), value)
}

// Invalidate evicts every cached view touched by m, for all principals,
// and returns the new generation.
func (c *Cache) Invalidate(ctx context.Context, m keys.Mutation) uint64 {
	gen := c.generation.Add(1)
	c.cache.Invalidate(ctx, m)
	return gen
}

// fill stores value under key unless an invalidation happened after gen.
// The generation is bumped before evicting, so an invalidation that lands
// between the check and the write is caught by the second check.
func (c *Cache) fill(ctx context.Context, gen uint64, key string, value interface{}) {
	if c.generation.Load() != gen {
		return
	}
	c.cache.Put(ctx, key, value)
	if c.generation.Load() != gen {
		c.cache.Evict(ctx, keys.EscapeGlob(key))
	}
}
