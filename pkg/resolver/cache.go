package resolver

import (
	"sync"

	"github.com/resctx/resctx-runtime/pkg/ids"
)

// cacheEntry wraps a lazily-computed per-index result. computed guards
// against re-evaluating the same index twice for the same context.
type cacheEntry[T any] struct {
	computed bool
	value    T
	err      error
}

// cache is the resolver's three-level memoization table (spec §4.5 "O(1)
// resolution cache"): one slice per entity kind, sized once at construction
// to the arena's dense index ranges, so every lookup is a slice index
// instead of a hash map probe. A single mutex guards all three slices;
// resolving is cheap enough, and contexts change rarely enough, that
// per-entry locking wouldn't earn its complexity here.
type cache struct {
	mu            sync.Mutex
	conditions    []cacheEntry[conditionResult]
	conditionSets []cacheEntry[conditionSetResult]
	decisions     []cacheEntry[decisionResult]
}

func newCache(numConditions, numConditionSets, numDecisions int) *cache {
	return &cache{
		conditions:    make([]cacheEntry[conditionResult], numConditions),
		conditionSets: make([]cacheEntry[conditionSetResult], numConditionSets),
		decisions:     make([]cacheEntry[decisionResult], numDecisions),
	}
}

func (c *cache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.conditions {
		c.conditions[i] = cacheEntry[conditionResult]{}
	}
	for i := range c.conditionSets {
		c.conditionSets[i] = cacheEntry[conditionSetResult]{}
	}
	for i := range c.decisions {
		c.decisions[i] = cacheEntry[decisionResult]{}
	}
}

// condition, conditionSet, and decision each look up idx without holding
// the lock across compute, since compute for a condition set or decision
// recurses back into this same cache for its dependencies (condition sets
// depend on conditions, decisions depend on condition sets) — holding the
// lock across that call would deadlock on the non-reentrant mutex. A
// concurrent caller computing the same index redundantly is harmless: these
// computations are pure functions of the arena and context.

func (c *cache) condition(idx ids.ConditionIndex, compute func() (conditionResult, error)) (conditionResult, error, bool) {
	c.mu.Lock()
	e := c.conditions[idx]
	c.mu.Unlock()
	if e.computed {
		return e.value, e.err, true
	}
	v, err := compute()
	c.mu.Lock()
	c.conditions[idx] = cacheEntry[conditionResult]{computed: true, value: v, err: err}
	c.mu.Unlock()
	return v, err, false
}

func (c *cache) conditionSet(idx ids.ConditionSetIndex, compute func() (conditionSetResult, error)) (conditionSetResult, error, bool) {
	c.mu.Lock()
	e := c.conditionSets[idx]
	c.mu.Unlock()
	if e.computed {
		return e.value, e.err, true
	}
	v, err := compute()
	c.mu.Lock()
	c.conditionSets[idx] = cacheEntry[conditionSetResult]{computed: true, value: v, err: err}
	c.mu.Unlock()
	return v, err, false
}

func (c *cache) decision(idx ids.DecisionIndex, compute func() (decisionResult, error)) (decisionResult, error, bool) {
	c.mu.Lock()
	e := c.decisions[idx]
	c.mu.Unlock()
	if e.computed {
		return e.value, e.err, true
	}
	v, err := compute()
	c.mu.Lock()
	c.decisions[idx] = cacheEntry[decisionResult]{computed: true, value: v, err: err}
	c.mu.Unlock()
	return v, err, false
}
