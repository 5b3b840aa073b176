package cachelistener

import (
	"sync/atomic"

	"github.com/resctx/resctx-runtime/pkg/ids"
)

// Counters is an in-memory Listener that keeps running totals per entity
// kind, useful for tests and for hosts that want a cheap snapshot without
// standing up Prometheus (see PrometheusListener for that).
type Counters struct {
	hits, misses, errs [3]atomic.Int64 // indexed by kindSlot
	clears             atomic.Int64
	contextErrs        atomic.Int64
}

// NewCounters returns a ready-to-use Counters.
func NewCounters() *Counters { return &Counters{} }

func kindSlot(kind ids.Kind) int {
	switch kind {
	case ids.KindCondition:
		return 0
	case ids.KindConditionSet:
		return 1
	case ids.KindDecision:
		return 2
	default:
		return 0
	}
}

func (c *Counters) OnHit(kind ids.Kind)  { c.hits[kindSlot(kind)].Add(1) }
func (c *Counters) OnMiss(kind ids.Kind) { c.misses[kindSlot(kind)].Add(1) }
func (c *Counters) OnError(kind ids.Kind, _ error) {
	c.errs[kindSlot(kind)].Add(1)
}
func (c *Counters) OnClear()             { c.clears.Add(1) }
func (c *Counters) OnContextError(error) { c.contextErrs.Add(1) }

// Snapshot is a point-in-time read of a Counters' totals.
type Snapshot struct {
	Hits, Misses, Errors map[ids.Kind]int64
	Clears               int64
	ContextErrors        int64
}

// Snapshot reads the current totals.
func (c *Counters) Snapshot() Snapshot {
	kinds := []ids.Kind{ids.KindCondition, ids.KindConditionSet, ids.KindDecision}
	s := Snapshot{
		Hits:   map[ids.Kind]int64{},
		Misses: map[ids.Kind]int64{},
		Errors: map[ids.Kind]int64{},
	}
	for _, k := range kinds {
		slot := kindSlot(k)
		s.Hits[k] = c.hits[slot].Load()
		s.Misses[k] = c.misses[slot].Load()
		s.Errors[k] = c.errs[slot].Load()
	}
	s.Clears = c.clears.Load()
	s.ContextErrors = c.contextErrs.Load()
	return s
}
