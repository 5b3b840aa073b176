// Package wire defines the on-wire shape of a compiled resource collection
// (spec §6): the structurally-validated JSON document the loader (C3)
// consumes to build an arena. These types are deliberately dumb — plain
// exported fields, no behavior — since validating and interpreting them is
// the loader's job, not theirs.
package wire

import "encoding/json"

// MergeMethod is the merge method recorded for a candidate. The loader
// validates it and the arena keeps it, but composition (pkg/resolver) does
// not read it: whether a candidate merges onto a base is decided by
// IsPartial alone. The loader treats the zero value as "replace".
type MergeMethod string

const (
	MergeAugment MergeMethod = "augment"
	MergeReplace MergeMethod = "replace"
	MergeDelete  MergeMethod = "delete"
)

// QualifierType is a named matching strategy with an opaque configuration
// blob interpreted by whatever concrete qualtypes.QualifierType the loader
// constructs for it (see pkg/loader's qualifier type factory).
type QualifierType struct {
	Name   string          `json:"name"`
	Config json.RawMessage `json:"config,omitempty"`
}

// Qualifier is a named context dimension bound to a qualifier type.
type Qualifier struct {
	Name            string `json:"name"`
	Type            int    `json:"type"` // index into QualifierTypes
	DefaultPriority int    `json:"defaultPriority"`
}

// ResourceType names a resource's payload kind. The engine treats it as
// opaque metadata; resource types beyond this abstract contract are out of
// scope (spec §1).
type ResourceType struct {
	Name   string          `json:"name"`
	Config json.RawMessage `json:"config,omitempty"`
}

// Condition is either unconditional (Operator always/never, Value empty) or
// binary: qualifier/operator/value/priority, with an optional
// score-as-default for match-as-default fallback (spec §3).
type Condition struct {
	QualifierIndex int      `json:"qualifierIndex"`
	Operator       string   `json:"operator,omitempty"` // defaults to "matches"
	Value          string   `json:"value"`
	Priority       uint16   `json:"priority"`
	ScoreAsDefault *float32 `json:"scoreAsDefault,omitempty"`
}

// ConditionSet is an ordered conjunction of conditions, referenced by index.
type ConditionSet struct {
	Conditions []int `json:"conditions"`
}

// Decision is an ordered list of candidate-selection slots, each tied to a
// condition set; len(ConditionSets) must equal len(Resource.Candidates) for
// every resource that references this decision.
type Decision struct {
	ConditionSets []int `json:"conditionSets"`
}

// Candidate is one alternative JSON value for a resource.
type Candidate struct {
	JSON        json.RawMessage `json:"json"`
	IsPartial   bool            `json:"isPartial"`
	MergeMethod MergeMethod     `json:"mergeMethod,omitempty"` // defaults to "replace"
}

// Resource is a dotted-path-addressable entity carrying one decision and the
// candidate payloads it selects among.
type Resource struct {
	ID         string      `json:"id"`
	Type       int         `json:"type"` // index into ResourceTypes
	Decision   int         `json:"decision"`
	Candidates []Candidate `json:"candidates"`
}

// Collection is the complete compiled resource collection: seven dense
// arrays in dependency order, each element's index implied by its position
// (spec §3 "Index invariants", §6).
type Collection struct {
	QualifierTypes []QualifierType `json:"qualifierTypes"`
	Qualifiers     []Qualifier     `json:"qualifiers"`
	ResourceTypes  []ResourceType  `json:"resourceTypes"`
	Conditions     []Condition     `json:"conditions"`
	ConditionSets  []ConditionSet  `json:"conditionSets"`
	Decisions      []Decision      `json:"decisions"`
	Resources      []Resource      `json:"resources"`
}
