// Package arena implements the indexed entity arena (C2): append-only,
// densely indexed storage for every entity kind a compiled resource
// collection contains. Arrays are contiguous and addressed by the
// strongly-typed index of the corresponding kind (pkg/ids), which is what
// makes the resolver's caches (pkg/resolver) plain O(1) slices rather than
// hash maps (spec §3 "Index invariants", §4.1).
//
// The arena is built once by pkg/loader and is read-only thereafter; it may
// be shared by any number of resolvers without synchronization (spec §5).
package arena

import (
	"github.com/resctx/resctx-runtime/pkg/ids"
	"github.com/resctx/resctx-runtime/pkg/qualtypes"
	"github.com/resctx/resctx-runtime/pkg/wire"
)

// QualifierType pairs a compiled qualifier type's arena index with the
// concrete strategy object (pkg/qualtypes) that scores matches for it.
type QualifierType struct {
	Index ids.QualifierTypeIndex
	Name  string
	Impl  qualtypes.QualifierType
}

// Qualifier is a named context dimension bound to a qualifier type.
type Qualifier struct {
	Index           ids.QualifierIndex
	Name            string
	TypeIndex       ids.QualifierTypeIndex
	DefaultPriority int
}

// ResourceType names a resource's payload kind; the engine treats its
// configuration as opaque (spec §1).
type ResourceType struct {
	Index ids.ResourceTypeIndex
	Name  string
}

// Condition is the tagged union described by spec §3/§9: either
// unconditional (Operator always/never, in which case QualifierIndex and
// Value are unused) or binary (qualifier/operator/value/priority, with an
// optional score-as-default for match-as-default fallback).
type Condition struct {
	Index          ids.ConditionIndex
	QualifierIndex ids.QualifierIndex
	Operator       qualtypes.Operator
	Value          string
	Priority       uint16
	ScoreAsDefault *float32
}

// IsUnconditional reports whether this condition is the always/never
// variant, which never consults the context.
func (c Condition) IsUnconditional() bool {
	return c.Operator == qualtypes.OperatorAlways || c.Operator == qualtypes.OperatorNever
}

// ConditionSet is an ordered conjunction of conditions. Equal condition sets
// (by the multiset-of-condition-indices equality in spec §3) share an arena
// index; the loader is responsible for that dedup (pkg/loader).
type ConditionSet struct {
	Index      ids.ConditionSetIndex
	Conditions []ids.ConditionIndex
}

// Decision is an ordered list of candidate-selection slots, each tied to one
// condition set. len(CandidateSlots) must equal len(Candidates) for every
// resource referencing this decision.
type Decision struct {
	Index          ids.DecisionIndex
	CandidateSlots []ids.ConditionSetIndex
}

// Candidate is one alternative JSON value for a resource, already decoded
// into a generic Go value (map[string]any for objects, or any other JSON
// scalar/array).
type Candidate struct {
	JSON        any
	IsPartial   bool
	MergeMethod wire.MergeMethod
}

// Resource is a dotted-path-addressable entity carrying one decision and the
// candidate payloads it selects among; len(Candidates) == len(decision's
// CandidateSlots), pairwise (spec §3).
type Resource struct {
	Index       ids.ResourceIndex
	ID          string // dotted path, e.g. "app.greeting"
	Name        string // leaf segment, e.g. "greeting"
	TypeIndex   ids.ResourceTypeIndex
	DecisionIdx ids.DecisionIndex
	Candidates  []Candidate
}
