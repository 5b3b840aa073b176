package loader

import (
	"encoding/json"
	"reflect"

	"github.com/resctx/resctx-runtime/pkg/arena"
	"github.com/resctx/resctx-runtime/pkg/wire"
)

// CollectionBuilder assembles a wire.Collection programmatically, which is
// how the runtime's own tests construct small collections
// without hand-indexing JSON arrays. It gives condition sets and decisions
// add-or-get semantics: adding an equal one a second time returns the index
// of the existing entry instead of creating a duplicate, mirroring how a
// real compiler for this format would intern structurally identical sets
// (spec §3's condition set equality is by conditions-as-a-set, independent
// of order, which AddConditionSet normalizes for before comparing).
type CollectionBuilder struct {
	col wire.Collection
}

// NewCollectionBuilder returns an empty builder.
func NewCollectionBuilder() *CollectionBuilder {
	return &CollectionBuilder{}
}

// AddQualifierType appends a qualifier type and returns its index.
func (b *CollectionBuilder) AddQualifierType(name string, config any) int {
	b.col.QualifierTypes = append(b.col.QualifierTypes, wire.QualifierType{Name: name, Config: mustJSON(config)})
	return len(b.col.QualifierTypes) - 1
}

// AddQualifier appends a qualifier and returns its index.
func (b *CollectionBuilder) AddQualifier(name string, typeIndex, defaultPriority int) int {
	b.col.Qualifiers = append(b.col.Qualifiers, wire.Qualifier{Name: name, Type: typeIndex, DefaultPriority: defaultPriority})
	return len(b.col.Qualifiers) - 1
}

// AddResourceType appends a resource type and returns its index.
func (b *CollectionBuilder) AddResourceType(name string, config any) int {
	b.col.ResourceTypes = append(b.col.ResourceTypes, wire.ResourceType{Name: name, Config: mustJSON(config)})
	return len(b.col.ResourceTypes) - 1
}

// AddCondition appends a binary (qualifier/operator/value) condition and
// returns its index.
func (b *CollectionBuilder) AddCondition(qualifierIndex int, operator, value string, priority uint16) int {
	b.col.Conditions = append(b.col.Conditions, wire.Condition{
		QualifierIndex: qualifierIndex,
		Operator:       operator,
		Value:          value,
		Priority:       priority,
	})
	return len(b.col.Conditions) - 1
}

// AddConditionWithScoreAsDefault appends a binary condition carrying an
// explicit scoreAsDefault, letting tests exercise the matchAsDefault path
// (spec §4.4.2) without round-tripping through JSON.
func (b *CollectionBuilder) AddConditionWithScoreAsDefault(qualifierIndex int, operator, value string, priority uint16, scoreAsDefault float32) int {
	b.col.Conditions = append(b.col.Conditions, wire.Condition{
		QualifierIndex: qualifierIndex,
		Operator:       operator,
		Value:          value,
		Priority:       priority,
		ScoreAsDefault: &scoreAsDefault,
	})
	return len(b.col.Conditions) - 1
}

// AddUnconditional appends an always/never condition and returns its index.
func (b *CollectionBuilder) AddUnconditional(operator string, priority uint16) int {
	b.col.Conditions = append(b.col.Conditions, wire.Condition{Operator: operator, Priority: priority})
	return len(b.col.Conditions) - 1
}

// AddConditionSet interns a condition set by its (unordered) member set,
// returning the index of an existing equal set if one was already added.
func (b *CollectionBuilder) AddConditionSet(conditions ...int) int {
	for i, existing := range b.col.ConditionSets {
		if sameMembers(existing.Conditions, conditions) {
			return i
		}
	}
	b.col.ConditionSets = append(b.col.ConditionSets, wire.ConditionSet{Conditions: append([]int{}, conditions...)})
	return len(b.col.ConditionSets) - 1
}

// AddDecision interns a decision by its ordered list of condition set
// indices, returning the index of an existing identical decision if one was
// already added. Order matters here (slot i pairs with candidate i of every
// resource using the decision), unlike condition set membership.
func (b *CollectionBuilder) AddDecision(conditionSets ...int) int {
	for i, existing := range b.col.Decisions {
		if reflect.DeepEqual(existing.ConditionSets, conditionSets) {
			return i
		}
	}
	b.col.Decisions = append(b.col.Decisions, wire.Decision{ConditionSets: append([]int{}, conditionSets...)})
	return len(b.col.Decisions) - 1
}

// CandidateSpec describes one candidate to add via AddResource.
type CandidateSpec struct {
	Value       any
	IsPartial   bool
	MergeMethod wire.MergeMethod
}

// AddResource appends a resource and returns its index.
func (b *CollectionBuilder) AddResource(id string, typeIndex, decisionIndex int, candidates ...CandidateSpec) int {
	wcs := make([]wire.Candidate, len(candidates))
	for i, c := range candidates {
		wcs[i] = wire.Candidate{JSON: mustJSON(c.Value), IsPartial: c.IsPartial, MergeMethod: c.MergeMethod}
	}
	b.col.Resources = append(b.col.Resources, wire.Resource{ID: id, Type: typeIndex, Decision: decisionIndex, Candidates: wcs})
	return len(b.col.Resources) - 1
}

// Collection returns the assembled wire.Collection.
func (b *CollectionBuilder) Collection() wire.Collection { return b.col }

// Build assembles and loads the collection in one step.
func (b *CollectionBuilder) Build() (*arena.Arena, error) {
	return Load(b.col)
}

func sameMembers(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	counts := map[int]int{}
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]--
	}
	for _, c := range counts {
		if c != 0 {
			return false
		}
	}
	return true
}

func mustJSON(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		panic("loader: config value does not marshal to JSON: " + err.Error())
	}
	return raw
}
