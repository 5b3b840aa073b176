// Package resolver implements the resource resolver (C5), the engine's
// core: evaluating conditions against a context, ranking condition sets and
// decisions, and composing a resource's selected candidates into one value
// (spec §4.4-§4.5).
package resolver

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/resctx/resctx-runtime/internal/jsonmerge"
	"github.com/resctx/resctx-runtime/pkg/arena"
	"github.com/resctx/resctx-runtime/pkg/cachelistener"
	"github.com/resctx/resctx-runtime/pkg/ids"
	"github.com/resctx/resctx-runtime/pkg/qualtypes"
	"github.com/resctx/resctx-runtime/pkg/resctx"
)

// matchedSlot is one decision slot (a candidate position and the condition
// set guarding it) that matched the current context.
type matchedSlot struct {
	slot   int
	result conditionSetResult
}

// decisionResult is a decision's evaluation, split into the two buckets
// spec §4.4.5 requires: slots whose condition set matched outright, and
// slots that only matched via scoreAsDefault. Each bucket is independently
// ranked best-first per betterConditionSetResult, so a match always outranks
// a matchAsDefault regardless of priority (spec §4.4.4 step 1).
type decisionResult struct {
	matching        []matchedSlot
	defaultMatching []matchedSlot
}

// Resolver evaluates conditions, condition sets, and decisions against one
// context at a time, memoizing results in a three-level cache (spec §4.5).
// A Resolver is safe for concurrent Resolve* calls; SetContext clears the
// cache and must not race with in-flight resolves (callers needing to swap
// contexts concurrently should build a new Resolver instead, which is
// cheap — the cache is the only per-context state).
type Resolver struct {
	arena         *arena.Arena
	ctx           *resctx.Context
	listener      cachelistener.Listener
	cache         *cache
	opts          jsonmerge.Options
	correlationID string
}

// Options configures a Resolver's composition behavior.
type Options struct {
	// SuppressNullAsDelete controls whether an explicit null in a partial
	// candidate deletes the corresponding key (the default, RFC 7396
	// behavior) or is preserved as a literal null.
	SuppressNullAsDelete bool

	// Listener receives cache hit/miss/error/clear events. Defaults to
	// cachelistener.NoOp{} if nil.
	Listener cachelistener.Listener
}

// New builds a Resolver over a (arena or ctx) pairing.
func New(a *arena.Arena, ctx *resctx.Context, opts Options) *Resolver {
	listener := opts.Listener
	if listener == nil {
		listener = cachelistener.NoOp{}
	}
	return &Resolver{
		arena:         a,
		ctx:           ctx,
		listener:      listener,
		cache:         newCache(a.NumConditions(), a.NumConditionSets(), a.NumDecisions()),
		opts:          jsonmerge.Options{SuppressNullAsDelete: opts.SuppressNullAsDelete},
		correlationID: uuid.New().String(),
	}
}

// CorrelationID identifies this Resolver instance in logs and diagnostics,
// so a tree-wide resolution failure (pkg/treeresolve) or a cache metrics
// dump can be tied back to the resolver that produced it even when many
// resolvers are in flight across requests.
func (r *Resolver) CorrelationID() string {
	return r.correlationID
}

// SetContext replaces the resolver's context and clears every cache entry,
// since cached match results are only valid for the context they were
// computed against (spec §4.5 "cache invalidates on context change").
func (r *Resolver) SetContext(ctx *resctx.Context) {
	r.ctx = ctx
	r.cache.clear()
	r.listener.OnClear()
}

// WithContext returns a new Resolver sharing this one's arena and listener
// but scoped to ctx, with a fresh cache. Unlike SetContext, the original
// Resolver (and its cache) is left untouched.
func (r *Resolver) WithContext(ctx *resctx.Context) *Resolver {
	return New(r.arena, ctx, Options{SuppressNullAsDelete: r.opts.SuppressNullAsDelete, Listener: r.listener})
}

// ClearCache discards every cached result without changing the context,
// e.g. after the host knows underlying qualifier type state changed in a
// way that could affect Matches results (a dynamic allow-list, say).
func (r *Resolver) ClearCache() {
	r.cache.clear()
	r.listener.OnClear()
}

func (r *Resolver) resolveCondition(idx ids.ConditionIndex) (conditionResult, error) {
	v, err, hit := r.cache.condition(idx, func() (conditionResult, error) {
		return r.evalCondition(idx)
	})
	if hit {
		r.listener.OnHit(ids.KindCondition)
	} else {
		r.listener.OnMiss(ids.KindCondition)
	}
	if err != nil {
		r.listener.OnError(ids.KindCondition, err)
	}
	return v, err
}

func (r *Resolver) evalCondition(idx ids.ConditionIndex) (conditionResult, error) {
	cond, err := r.arena.ConditionAt(idx)
	if err != nil {
		return conditionResult{}, err
	}
	priority := int(cond.Priority)
	if cond.IsUnconditional() {
		switch cond.Operator {
		case qualtypes.OperatorAlways:
			return conditionResult{kind: Match, score: qualtypes.PerfectMatch, priority: priority}, nil
		case qualtypes.OperatorNever:
			return conditionResult{kind: NoMatch, priority: priority}, nil
		}
	}

	qualifier, err := r.arena.QualifierAt(cond.QualifierIndex)
	if err != nil {
		return conditionResult{}, err
	}
	qt, err := r.arena.QualifierTypeAt(qualifier.TypeIndex)
	if err != nil {
		return conditionResult{}, err
	}

	// A qualifier absent from the context scores as zero, same as one that
	// is present but fails to match (spec §4.4.2 step 4): either way
	// scoreAsDefault is the only way left to salvage a match. An absent
	// qualifier is also reported to the listener as a context error.
	score := qualtypes.NoMatch
	contextValue, present := r.ctx.ValueAt(cond.QualifierIndex)
	if present {
		score = qt.Impl.Matches(cond.Value, contextValue, cond.Operator)
	} else {
		r.listener.OnContextError(fmt.Errorf("resolver: qualifier %q has no value in the context", qualifier.Name))
	}
	if score > qualtypes.NoMatch {
		return conditionResult{kind: Match, score: score, priority: priority}, nil
	}
	if cond.ScoreAsDefault != nil && *cond.ScoreAsDefault > 0 {
		return conditionResult{kind: MatchAsDefault, score: qualtypes.MatchScore(*cond.ScoreAsDefault), priority: priority}, nil
	}
	return conditionResult{kind: NoMatch, priority: priority}, nil
}

func (r *Resolver) resolveConditionSet(idx ids.ConditionSetIndex) (conditionSetResult, error) {
	v, err, hit := r.cache.conditionSet(idx, func() (conditionSetResult, error) {
		return r.evalConditionSet(idx)
	})
	if hit {
		r.listener.OnHit(ids.KindConditionSet)
	} else {
		r.listener.OnMiss(ids.KindConditionSet)
	}
	if err != nil {
		r.listener.OnError(ids.KindConditionSet, err)
	}
	return v, err
}

func (r *Resolver) evalConditionSet(idx ids.ConditionSetIndex) (conditionSetResult, error) {
	cs, err := r.arena.ConditionSetAt(idx)
	if err != nil {
		return conditionSetResult{}, err
	}
	result := conditionSetResult{kind: Match}
	for _, ci := range cs.Conditions {
		cr, err := r.resolveCondition(ci)
		if err != nil {
			return conditionSetResult{}, err
		}
		result.matches = append(result.matches, cr)
		if cr.kind == NoMatch {
			result.kind = NoMatch
			return result, nil
		}
		if cr.kind == MatchAsDefault {
			result.kind = MatchAsDefault
		}
	}
	return result, nil
}

func (r *Resolver) resolveDecision(idx ids.DecisionIndex) (decisionResult, error) {
	v, err, hit := r.cache.decision(idx, func() (decisionResult, error) {
		return r.evalDecision(idx)
	})
	if hit {
		r.listener.OnHit(ids.KindDecision)
	} else {
		r.listener.OnMiss(ids.KindDecision)
	}
	if err != nil {
		r.listener.OnError(ids.KindDecision, err)
	}
	return v, err
}

func (r *Resolver) evalDecision(idx ids.DecisionIndex) (decisionResult, error) {
	d, err := r.arena.DecisionAt(idx)
	if err != nil {
		return decisionResult{}, err
	}
	var dr decisionResult
	for slot, csIdx := range d.CandidateSlots {
		res, err := r.resolveConditionSet(csIdx)
		if err != nil {
			return decisionResult{}, err
		}
		switch res.kind {
		case Match:
			dr.matching = append(dr.matching, matchedSlot{slot: slot, result: res})
		case MatchAsDefault:
			dr.defaultMatching = append(dr.defaultMatching, matchedSlot{slot: slot, result: res})
		}
	}
	rank := func(s []matchedSlot) {
		sort.SliceStable(s, func(i, j int) bool {
			return betterConditionSetResult(s[i].result, s[j].result)
		})
	}
	rank(dr.matching)
	rank(dr.defaultMatching)
	return dr, nil
}

// CandidateMatch is one of a resource's candidates that matched the current
// context, ordered from most to least specific (spec §4.4.6
// resolve_all_candidates: matching slots, each ranked best-first, followed
// by default-matching slots, each ranked best-first).
type CandidateMatch struct {
	Slot      int
	Kind      MatchKind
	Value     any
	IsPartial bool
}

// ResolveAllCandidates returns every candidate of the resource at
// resourceIdx whose decision slot matched the current context: every
// matching slot, best-first, followed by every default-matching slot,
// best-first (spec §4.4.6).
func (r *Resolver) ResolveAllCandidates(resourceIdx ids.ResourceIndex) ([]CandidateMatch, error) {
	res, err := r.arena.ResourceAt(resourceIdx)
	if err != nil {
		return nil, err
	}
	dr, err := r.resolveDecision(res.DecisionIdx)
	if err != nil {
		return nil, err
	}
	out := make([]CandidateMatch, 0, len(dr.matching)+len(dr.defaultMatching))
	appendSlots := func(slots []matchedSlot) {
		for _, m := range slots {
			c := res.Candidates[m.slot]
			out = append(out, CandidateMatch{
				Slot:      m.slot,
				Kind:      m.result.kind,
				Value:     c.JSON,
				IsPartial: c.IsPartial,
			})
		}
	}
	appendSlots(dr.matching)
	appendSlots(dr.defaultMatching)
	return out, nil
}

// ResolveComposed composes a resource's matching candidates into a single
// value per spec §4.4.7. Candidates are scanned best-to-worst: a run of
// partial candidates (IsPartial) is collected until the first non-partial
// candidate, which becomes the base (or, if every candidate is partial, the
// least specific one does). The collected partials are then merged onto the
// base in least-to-most-specific order, so the most specific partial wins
// any key conflict — mirroring the teacher's ResolveResourceValue. found is
// false if no candidate matched the current context at all.
func (r *Resolver) ResolveComposed(resourceIdx ids.ResourceIndex) (value any, found bool, err error) {
	candidates, err := r.ResolveAllCandidates(resourceIdx)
	if err != nil {
		return nil, false, err
	}
	if len(candidates) == 0 {
		return nil, false, nil
	}

	baseIdx := -1
	var scanOrderPartials []CandidateMatch // most specific first, as encountered
	for i, c := range candidates {
		if c.IsPartial {
			scanOrderPartials = append(scanOrderPartials, c)
			continue
		}
		baseIdx = i
		break
	}

	var base CandidateMatch
	if baseIdx >= 0 {
		base = candidates[baseIdx]
	} else {
		base = candidates[len(candidates)-1]
		scanOrderPartials = candidates[:len(candidates)-1]
	}

	if len(scanOrderPartials) == 0 {
		return base.Value, true, nil
	}

	// Reverse so the least specific partial merges first and the most
	// specific merges last, winning any key conflict.
	partials := make([]CandidateMatch, len(scanOrderPartials))
	for i, p := range scanOrderPartials {
		partials[len(scanOrderPartials)-1-i] = p
	}

	acc := base.Value
	for _, p := range partials {
		merged, err := jsonmerge.Augment(acc, p.Value, r.opts)
		if err != nil {
			return nil, false, fmt.Errorf("resolver: composing resource %d: %w", resourceIdx, err)
		}
		acc = merged
	}
	return acc, true, nil
}

// ResolveResource is a convenience wrapper looking a resource up by its
// dotted ID before composing it.
func (r *Resolver) ResolveResource(id string) (value any, found bool, err error) {
	res, ok := r.arena.ResourceByID(id)
	if !ok {
		return nil, false, fmt.Errorf("resolver: no resource with id %q", id)
	}
	return r.ResolveComposed(res.Index)
}
