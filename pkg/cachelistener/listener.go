// Package cachelistener implements the cache listener (C8): an observer
// hook the resolver (C5) calls on every cache hit, miss, evaluation error,
// or cache clear, so a host application can wire its own metrics backend
// without the resolver knowing anything about metrics (spec §4.8).
package cachelistener

import "github.com/resctx/resctx-runtime/pkg/ids"

// Listener observes resolver cache activity. Implementations must be safe
// for concurrent use; the resolver may call these methods from any number
// of goroutines resolving against the same arena.
type Listener interface {
	// OnHit fires when resolving a condition, condition set, or decision was
	// served from cache.
	OnHit(kind ids.Kind)

	// OnMiss fires when resolving a condition, condition set, or decision
	// required fresh evaluation.
	OnMiss(kind ids.Kind)

	// OnError fires when evaluating a condition, condition set, or decision
	// returned an error (an arena lookup for it or one of its dependencies
	// failed). Composition errors are returned to the caller and are not
	// reported here.
	OnError(kind ids.Kind, err error)

	// OnClear fires when a resolver's caches are reset, e.g. after a context
	// change invalidates previously cached results.
	OnClear()

	// OnContextError fires when a condition being evaluated consults a
	// qualifier that has no value in the resolver's context; the condition
	// is then scored as no match.
	OnContextError(err error)
}

// NoOp is a Listener that does nothing; it is the resolver's default so
// callers who don't care about metrics pay no cost for them.
type NoOp struct{}

func (NoOp) OnHit(ids.Kind)          {}
func (NoOp) OnMiss(ids.Kind)         {}
func (NoOp) OnError(ids.Kind, error) {}
func (NoOp) OnClear()                {}
func (NoOp) OnContextError(error)    {}

// multi fans a single event out to several listeners in registration order.
type multi struct {
	listeners []Listener
}

// Multi combines several listeners into one, so a resolver can be given a
// single Listener that, say, updates both Prometheus counters and an
// in-memory snapshot.
func Multi(listeners ...Listener) Listener {
	return multi{listeners: listeners}
}

func (m multi) OnHit(kind ids.Kind) {
	for _, l := range m.listeners {
		l.OnHit(kind)
	}
}

func (m multi) OnMiss(kind ids.Kind) {
	for _, l := range m.listeners {
		l.OnMiss(kind)
	}
}

func (m multi) OnError(kind ids.Kind, err error) {
	for _, l := range m.listeners {
		l.OnError(kind, err)
	}
}

func (m multi) OnClear() {
	for _, l := range m.listeners {
		l.OnClear()
	}
}

func (m multi) OnContextError(err error) {
	for _, l := range m.listeners {
		l.OnContextError(err)
	}
}
