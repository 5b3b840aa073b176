// Package qualtypes defines the qualifier-type contract (C1): the strategy
// objects that score how well a condition value matches a runtime context
// value for one operator. The engine treats the returned score as opaque
// except that 0.0 always means "no match" (spec §4.2).
package qualtypes

import (
	"fmt"

	"github.com/resctx/resctx-runtime/pkg/ids"
)

// Operator is the closed, extensible set of condition operators. Keeping it
// as a string-backed enum (rather than free-form text) lets the loader
// reject an unknown operator once, at load time, instead of the resolver
// discovering it mid-resolution (spec §9, second open question).
type Operator string

const (
	OperatorAlways  Operator = "always"
	OperatorNever   Operator = "never"
	OperatorMatches Operator = "matches"
)

// IsKnown reports whether op is one of the operators this engine understands.
// Qualifier types may recognize additional operators beyond these three, but
// every qualifier type must at least accept always/never/matches.
func (op Operator) IsKnown() bool {
	switch op {
	case OperatorAlways, OperatorNever, OperatorMatches:
		return true
	default:
		return false
	}
}

// MatchScore is a match strength in [0.0, 1.0], with 0.0 meaning no match
// and 1.0 meaning a perfect match.
type MatchScore float64

const (
	NoMatch      MatchScore = 0.0
	PerfectMatch MatchScore = 1.0
)

// Valid reports whether s is in the legal [0,1] range.
func (s MatchScore) Valid() bool { return s >= 0.0 && s <= 1.0 }

// QualifierType is the hot-path contract every qualifier type implements
// (spec §4.2). Its sole mandatory operation is Matches; the Is*/Validate*
// methods exist so that a context provider (C4) and a loader (C3) can reject
// bad values before they ever reach the resolver.
type QualifierType interface {
	// Name is this qualifier type's registry name.
	Name() string

	// Index returns the index assigned to this qualifier type at load time,
	// or -1 if it has not been assigned one yet.
	Index() ids.QualifierTypeIndex

	// SetIndex assigns this qualifier type's arena index. It may be called
	// exactly once; a second call is an error (arena entities are immutable
	// once indexed).
	SetIndex(ids.QualifierTypeIndex) error

	// IsValidConditionValue reports whether value is legal as the right-hand
	// side of a condition using this qualifier type.
	IsValidConditionValue(value string) bool

	// IsValidContextValue reports whether value is legal as a context value
	// for a qualifier of this type.
	IsValidContextValue(value string) bool

	// Matches scores how well a condition value matches a context value
	// under the given operator. The zero value means no match; anything
	// else is a positive score the resolver uses for tie-breaking and
	// match-as-default fallback.
	Matches(conditionValue, contextValue string, operator Operator) MatchScore

	// AllowContextList reports whether a single context value for a
	// qualifier of this type may be a comma-separated list of candidate
	// values, each scored independently against the condition (best wins).
	AllowContextList() bool
}

// Base provides the bookkeeping shared by every qualifier type
// implementation: name, index assignment, and the AllowContextList flag.
// Concrete types embed it and supply Matches/IsValidConditionValue/
// IsValidContextValue themselves.
type Base struct {
	name             string
	index            ids.QualifierTypeIndex
	allowContextList bool
}

// NewBase constructs a Base with its index unset (-1).
func NewBase(name string, allowContextList bool) *Base {
	return &Base{name: name, index: -1, allowContextList: allowContextList}
}

func (b *Base) Name() string                      { return b.name }
func (b *Base) Index() ids.QualifierTypeIndex      { return b.index }
func (b *Base) AllowContextList() bool             { return b.allowContextList }

func (b *Base) SetIndex(i ids.QualifierTypeIndex) error {
	if b.index != -1 {
		return fmt.Errorf("qualifier type %q: index already assigned (%d), cannot reassign to %d", b.name, b.index, i)
	}
	b.index = i
	return nil
}
