package cache

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
)

type scopeCounters struct {
	hits   atomic.Int64
	misses atomic.Int64
	denied atomic.Int64
	errors atomic.Int64
}

// ScopeStats is a point-in-time copy of one scope's counters.
type ScopeStats struct {
	Hits   int64   `json:"hits"`
	Misses int64   `json:"misses"`
	Denied int64   `json:"denied"`
	Errors int64   `json:"errors"`
	Ratio  float64 `json:"ratio"`
}

// Stats counts read-through outcomes per key scope.
type Stats struct {
	scopes *xsync.MapOf[string, *scopeCounters]
}

func NewStats() *Stats {
	return &Stats{scopes: xsync.NewMapOf[string, *scopeCounters]()}
}

func (s *Stats) counters(scope string) *scopeCounters {
	c, _ := s.scopes.LoadOrCompute(scope, func() *scopeCounters {
		return &scopeCounters{}
	})
	return c
}

func (s *Stats) RecordHit(scope string)    { s.counters(scope).hits.Add(1) }
func (s *Stats) RecordMiss(scope string)   { s.counters(scope).misses.Add(1) }
func (s *Stats) RecordDenied(scope string) { s.counters(scope).denied.Add(1) }
func (s *Stats) RecordError(scope string)  { s.counters(scope).errors.Add(1) }

// Snapshot returns the counters of every scope seen so far plus a "total" entry.
func (s *Stats) Snapshot() map[string]ScopeStats {
	out := make(map[string]ScopeStats)
	var total ScopeStats
	s.scopes.Range(func(scope string, c *scopeCounters) bool {
		st := ScopeStats{
			Hits:   c.hits.Load(),
			Misses: c.misses.Load(),
			Denied: c.denied.Load(),
			Errors: c.errors.Load(),
		}
		st.Ratio = hitRatio(st.Hits, st.Misses)
		out[scope] = st

		total.Hits += st.Hits
		total.Misses += st.Misses
		total.Denied += st.Denied
		total.Errors += st.Errors
		return true
	})
	total.Ratio = hitRatio(total.Hits, total.Misses)
	out["total"] = total
	return out
}

func hitRatio(hits, misses int64) float64 {
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) / float64(hits+misses) * 100
}
