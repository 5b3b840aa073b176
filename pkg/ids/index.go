// Package ids defines the strongly-typed, dense indices used to address every
// entity kind stored in the resource arena. Keeping each kind's index as its
// own Go type (rather than a bare int) makes it impossible to, say, pass a
// ConditionIndex where a DecisionIndex is expected, and keeps cache arrays
// honest about what they're indexed by.
package ids

import "fmt"

// QualifierTypeIndex addresses an entry in the qualifier type array.
type QualifierTypeIndex int

// QualifierIndex addresses an entry in the qualifier array.
type QualifierIndex int

// ResourceTypeIndex addresses an entry in the resource type array.
type ResourceTypeIndex int

// ConditionIndex addresses an entry in the condition array.
type ConditionIndex int

// ConditionSetIndex addresses an entry in the condition set array.
type ConditionSetIndex int

// DecisionIndex addresses an entry in the decision array.
type DecisionIndex int

// ResourceIndex addresses an entry in the resource array.
type ResourceIndex int

// CandidateSlot addresses one candidate within a single resource's
// candidate list. It is positional, not a dense arena index, since
// candidate lists are owned by their resource rather than the arena.
type CandidateSlot int

func (i QualifierTypeIndex) String() string { return fmt.Sprintf("qualifierType[%d]", int(i)) }
func (i QualifierIndex) String() string     { return fmt.Sprintf("qualifier[%d]", int(i)) }
func (i ResourceTypeIndex) String() string  { return fmt.Sprintf("resourceType[%d]", int(i)) }
func (i ConditionIndex) String() string     { return fmt.Sprintf("condition[%d]", int(i)) }
func (i ConditionSetIndex) String() string  { return fmt.Sprintf("conditionSet[%d]", int(i)) }
func (i DecisionIndex) String() string      { return fmt.Sprintf("decision[%d]", int(i)) }
func (i ResourceIndex) String() string      { return fmt.Sprintf("resource[%d]", int(i)) }

// Kind enumerates the entity kinds the resolver caches (condition,
// condition set, decision) for use by the cache listener (C8), which needs
// a single small value to tag events by rather than three parallel
// interfaces.
type Kind string

const (
	KindCondition    Kind = "condition"
	KindConditionSet Kind = "conditionSet"
	KindDecision     Kind = "decision"
)
