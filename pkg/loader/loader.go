// Package loader implements the compiled collection loader (C3): turning a
// wire.Collection into a validated, indexed arena.Arena. Loading is
// all-or-nothing — any structural problem anywhere in the collection is
// recorded and loading continues so the caller sees every problem at once,
// but Load returns a non-nil *LoadError instead of a usable arena if any were
// found (spec §7).
package loader

import (
	"encoding/json"
	"strings"

	"github.com/resctx/resctx-runtime/pkg/arena"
	"github.com/resctx/resctx-runtime/pkg/ids"
	"github.com/resctx/resctx-runtime/pkg/qualtypes"
	"github.com/resctx/resctx-runtime/pkg/wire"
)

// Load validates col and builds an arena from it. col's seven arrays are
// taken to already be in index order (spec §3 "Index invariants", §6): the
// i-th element of each array is assigned index i, and every cross-reference
// (a qualifier's type, a condition's qualifier, a condition set's
// conditions, a decision's condition sets, a resource's type/decision) is
// range-checked against that.
func Load(col wire.Collection) (*arena.Arena, error) {
	var issues issueCollector

	qualifierTypes := loadQualifierTypes(col.QualifierTypes, &issues)
	qualifiers := loadQualifiers(col.Qualifiers, qualifierTypes, &issues)
	resourceTypes := loadResourceTypes(col.ResourceTypes)
	conditions := loadConditions(col.Conditions, qualifiers, qualifierTypes, &issues)
	conditionSets := loadConditionSets(col.ConditionSets, conditions, &issues)
	decisions := loadDecisions(col.Decisions, conditionSets, &issues)
	resources := loadResources(col.Resources, resourceTypes, decisions, &issues)

	if err := issues.err(); err != nil {
		return nil, err
	}

	a, err := arena.New(qualifierTypes, qualifiers, resourceTypes, conditions, conditionSets, decisions, resources)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func loadQualifierTypes(in []wire.QualifierType, issues *issueCollector) []arena.QualifierType {
	out := make([]arena.QualifierType, len(in))
	for i, w := range in {
		impl, err := buildQualifierType(w)
		if err != nil {
			issues.addf("qualifier type[%d] %q: %v", i, w.Name, err)
			continue
		}
		if err := impl.SetIndex(ids.QualifierTypeIndex(i)); err != nil {
			issues.add(err)
			continue
		}
		out[i] = arena.QualifierType{Index: ids.QualifierTypeIndex(i), Name: w.Name, Impl: impl}
	}
	return out
}

func loadQualifiers(in []wire.Qualifier, qualifierTypes []arena.QualifierType, issues *issueCollector) []arena.Qualifier {
	out := make([]arena.Qualifier, len(in))
	for i, w := range in {
		if w.Type < 0 || w.Type >= len(qualifierTypes) {
			issues.addf("qualifier[%d] %q: type index %d out of range [0,%d)", i, w.Name, w.Type, len(qualifierTypes))
			continue
		}
		out[i] = arena.Qualifier{
			Index:           ids.QualifierIndex(i),
			Name:            w.Name,
			TypeIndex:       ids.QualifierTypeIndex(w.Type),
			DefaultPriority: w.DefaultPriority,
		}
	}
	return out
}

func loadResourceTypes(in []wire.ResourceType) []arena.ResourceType {
	out := make([]arena.ResourceType, len(in))
	for i, w := range in {
		out[i] = arena.ResourceType{Index: ids.ResourceTypeIndex(i), Name: w.Name}
	}
	return out
}

func loadConditions(in []wire.Condition, qualifiers []arena.Qualifier, qualifierTypes []arena.QualifierType, issues *issueCollector) []arena.Condition {
	out := make([]arena.Condition, len(in))
	for i, w := range in {
		op := qualtypes.Operator(w.Operator)
		if op == "" {
			op = qualtypes.OperatorMatches
		}
		if !op.IsKnown() {
			issues.addf("condition[%d]: unknown operator %q", i, w.Operator)
			continue
		}
		c := arena.Condition{
			Index:          ids.ConditionIndex(i),
			Operator:       op,
			Value:          w.Value,
			Priority:       w.Priority,
			ScoreAsDefault: w.ScoreAsDefault,
		}
		if op == qualtypes.OperatorMatches {
			if w.QualifierIndex < 0 || w.QualifierIndex >= len(qualifiers) {
				issues.addf("condition[%d]: qualifier index %d out of range [0,%d)", i, w.QualifierIndex, len(qualifiers))
				continue
			}
			q := qualifiers[w.QualifierIndex]
			qt := qualifierTypes[q.TypeIndex].Impl
			if qt != nil && !qt.IsValidConditionValue(w.Value) {
				issues.addf("condition[%d]: value %q is not valid for qualifier %q (type %q)", i, w.Value, q.Name, qualifierTypes[q.TypeIndex].Name)
				continue
			}
			c.QualifierIndex = ids.QualifierIndex(w.QualifierIndex)
		}
		if w.ScoreAsDefault != nil && (*w.ScoreAsDefault < 0 || *w.ScoreAsDefault > 1) {
			issues.addf("condition[%d]: scoreAsDefault %v out of range [0,1]", i, *w.ScoreAsDefault)
			continue
		}
		out[i] = c
	}
	return out
}

func loadConditionSets(in []wire.ConditionSet, conditions []arena.Condition, issues *issueCollector) []arena.ConditionSet {
	out := make([]arena.ConditionSet, len(in))
	for i, w := range in {
		members := make([]ids.ConditionIndex, len(w.Conditions))
		ok := true
		for j, ci := range w.Conditions {
			if ci < 0 || ci >= len(conditions) {
				issues.addf("conditionSet[%d]: condition index %d out of range [0,%d)", i, ci, len(conditions))
				ok = false
				continue
			}
			members[j] = ids.ConditionIndex(ci)
		}
		if !ok {
			continue
		}
		out[i] = arena.ConditionSet{Index: ids.ConditionSetIndex(i), Conditions: members}
	}
	return out
}

func loadDecisions(in []wire.Decision, conditionSets []arena.ConditionSet, issues *issueCollector) []arena.Decision {
	out := make([]arena.Decision, len(in))
	for i, w := range in {
		slots := make([]ids.ConditionSetIndex, len(w.ConditionSets))
		ok := true
		for j, csi := range w.ConditionSets {
			if csi < 0 || csi >= len(conditionSets) {
				issues.addf("decision[%d]: condition set index %d out of range [0,%d)", i, csi, len(conditionSets))
				ok = false
				continue
			}
			slots[j] = ids.ConditionSetIndex(csi)
		}
		if !ok {
			continue
		}
		out[i] = arena.Decision{Index: ids.DecisionIndex(i), CandidateSlots: slots}
	}
	return out
}

func loadResources(in []wire.Resource, resourceTypes []arena.ResourceType, decisions []arena.Decision, issues *issueCollector) []arena.Resource {
	out := make([]arena.Resource, len(in))
	for i, w := range in {
		if w.ID == "" {
			issues.addf("resource[%d]: empty id", i)
			continue
		}
		if w.Type < 0 || w.Type >= len(resourceTypes) {
			issues.addf("resource[%d] %q: type index %d out of range [0,%d)", i, w.ID, w.Type, len(resourceTypes))
			continue
		}
		if w.Decision < 0 || w.Decision >= len(decisions) {
			issues.addf("resource[%d] %q: decision index %d out of range [0,%d)", i, w.ID, w.Decision, len(decisions))
			continue
		}
		decision := decisions[w.Decision]
		if len(w.Candidates) != len(decision.CandidateSlots) {
			issues.addf("resource[%d] %q: has %d candidate(s) but decision %d has %d slot(s)",
				i, w.ID, len(w.Candidates), w.Decision, len(decision.CandidateSlots))
			continue
		}
		candidates := make([]arena.Candidate, len(w.Candidates))
		ok := true
		for j, wc := range w.Candidates {
			mm := wc.MergeMethod
			if mm == "" {
				mm = wire.MergeReplace
			}
			switch mm {
			case wire.MergeAugment, wire.MergeReplace, wire.MergeDelete:
			default:
				issues.addf("resource[%d] %q: candidate[%d]: unknown merge method %q", i, w.ID, j, wc.MergeMethod)
				ok = false
				continue
			}
			var value any
			if len(wc.JSON) > 0 {
				if err := json.Unmarshal(wc.JSON, &value); err != nil {
					issues.addf("resource[%d] %q: candidate[%d]: invalid json: %v", i, w.ID, j, err)
					ok = false
					continue
				}
			}
			candidates[j] = arena.Candidate{JSON: value, IsPartial: wc.IsPartial, MergeMethod: mm}
		}
		if !ok {
			continue
		}
		segments := strings.Split(w.ID, ".")
		out[i] = arena.Resource{
			Index:       ids.ResourceIndex(i),
			ID:          w.ID,
			Name:        segments[len(segments)-1],
			TypeIndex:   ids.ResourceTypeIndex(w.Type),
			DecisionIdx: ids.DecisionIndex(w.Decision),
			Candidates:  candidates,
		}
	}
	return out
}
