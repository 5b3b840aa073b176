package arena

import (
	"fmt"
	"sync"

	"github.com/resctx/resctx-runtime/pkg/ids"
	"github.com/resctx/resctx-runtime/pkg/tree"
)

// Arena holds every entity of a compiled resource collection in dense,
// index-addressed arrays. It is assembled once by pkg/loader and read-only
// from then on; all accessor methods are safe for concurrent use by any
// number of resolvers (spec §5).
type Arena struct {
	qualifierTypes []QualifierType
	qualifiers     []Qualifier
	resourceTypes  []ResourceType
	conditions     []Condition
	conditionSets  []ConditionSet
	decisions      []Decision
	resources      []Resource

	resourcesByID map[string]ids.ResourceIndex

	treeOnce sync.Once
	tree     *tree.Tree
}

// New assembles an Arena from fully-resolved entity slices. Each slice's
// index-th element must already carry the matching typed index (callers are
// expected to be pkg/loader, which enforces index density while decoding the
// wire collection) — New itself only builds the resourcesByID index and
// validates that resource IDs are unique.
func New(
	qualifierTypes []QualifierType,
	qualifiers []Qualifier,
	resourceTypes []ResourceType,
	conditions []Condition,
	conditionSets []ConditionSet,
	decisions []Decision,
	resources []Resource,
) (*Arena, error) {
	byID := make(map[string]ids.ResourceIndex, len(resources))
	for _, r := range resources {
		if _, dup := byID[r.ID]; dup {
			return nil, fmt.Errorf("arena: duplicate resource id %q", r.ID)
		}
		byID[r.ID] = r.Index
	}
	return &Arena{
		qualifierTypes: qualifierTypes,
		qualifiers:     qualifiers,
		resourceTypes:  resourceTypes,
		conditions:     conditions,
		conditionSets:  conditionSets,
		decisions:      decisions,
		resources:      resources,
		resourcesByID:  byID,
	}, nil
}

// NumQualifierTypes, NumQualifiers, ... report the dense size of each entity
// kind, i.e. the valid index range is [0, Num<Kind>()).
func (a *Arena) NumQualifierTypes() int { return len(a.qualifierTypes) }
func (a *Arena) NumQualifiers() int     { return len(a.qualifiers) }
func (a *Arena) NumResourceTypes() int  { return len(a.resourceTypes) }
func (a *Arena) NumConditions() int     { return len(a.conditions) }
func (a *Arena) NumConditionSets() int  { return len(a.conditionSets) }
func (a *Arena) NumDecisions() int      { return len(a.decisions) }
func (a *Arena) NumResources() int      { return len(a.resources) }

// QualifierTypeAt, QualifierAt, ... fetch the entity at a given arena index,
// returning an error if the index is out of the dense range rather than
// panicking — callers on the resolver hot path are expected to check Num* at
// construction time and never hit this error after that.

func (a *Arena) QualifierTypeAt(i ids.QualifierTypeIndex) (QualifierType, error) {
	if int(i) < 0 || int(i) >= len(a.qualifierTypes) {
		return QualifierType{}, fmt.Errorf("arena: qualifier type index %d out of range [0,%d)", i, len(a.qualifierTypes))
	}
	return a.qualifierTypes[i], nil
}

func (a *Arena) QualifierAt(i ids.QualifierIndex) (Qualifier, error) {
	if int(i) < 0 || int(i) >= len(a.qualifiers) {
		return Qualifier{}, fmt.Errorf("arena: qualifier index %d out of range [0,%d)", i, len(a.qualifiers))
	}
	return a.qualifiers[i], nil
}

func (a *Arena) ResourceTypeAt(i ids.ResourceTypeIndex) (ResourceType, error) {
	if int(i) < 0 || int(i) >= len(a.resourceTypes) {
		return ResourceType{}, fmt.Errorf("arena: resource type index %d out of range [0,%d)", i, len(a.resourceTypes))
	}
	return a.resourceTypes[i], nil
}

func (a *Arena) ConditionAt(i ids.ConditionIndex) (Condition, error) {
	if int(i) < 0 || int(i) >= len(a.conditions) {
		return Condition{}, fmt.Errorf("arena: condition index %d out of range [0,%d)", i, len(a.conditions))
	}
	return a.conditions[i], nil
}

func (a *Arena) ConditionSetAt(i ids.ConditionSetIndex) (ConditionSet, error) {
	if int(i) < 0 || int(i) >= len(a.conditionSets) {
		return ConditionSet{}, fmt.Errorf("arena: condition set index %d out of range [0,%d)", i, len(a.conditionSets))
	}
	return a.conditionSets[i], nil
}

func (a *Arena) DecisionAt(i ids.DecisionIndex) (Decision, error) {
	if int(i) < 0 || int(i) >= len(a.decisions) {
		return Decision{}, fmt.Errorf("arena: decision index %d out of range [0,%d)", i, len(a.decisions))
	}
	return a.decisions[i], nil
}

func (a *Arena) ResourceAt(i ids.ResourceIndex) (Resource, error) {
	if int(i) < 0 || int(i) >= len(a.resources) {
		return Resource{}, fmt.Errorf("arena: resource index %d out of range [0,%d)", i, len(a.resources))
	}
	return a.resources[i], nil
}

// ResourceByID looks up a resource by its dotted path.
func (a *Arena) ResourceByID(id string) (Resource, bool) {
	idx, ok := a.resourcesByID[id]
	if !ok {
		return Resource{}, false
	}
	return a.resources[idx], true
}

// ListResourceIDs returns every resource's dotted ID, in arena index order.
// Adapted from the teacher's ResourceManager.ListResourceIDs.
func (a *Arena) ListResourceIDs() []string {
	ids := make([]string, len(a.resources))
	for i, r := range a.resources {
		ids[i] = r.ID
	}
	return ids
}

// NumCandidates reports how many candidates a resource has, without the
// caller needing to fetch the Resource itself first. Adapted from the
// teacher's ResourceManager.GetNumCandidates.
func (a *Arena) NumCandidates(i ids.ResourceIndex) (int, error) {
	r, err := a.ResourceAt(i)
	if err != nil {
		return 0, err
	}
	return len(r.Candidates), nil
}

// Tree returns the resource tree over this arena's resources, building and
// memoizing it on first call (spec §4.6 "lazily built"). The result is
// shared-immutable and safe to retain across calls.
func (a *Arena) Tree() *tree.Tree {
	a.treeOnce.Do(func() {
		entries := make([]tree.Entry, len(a.resources))
		for i, r := range a.resources {
			entries[i] = tree.Entry{ID: r.ID, Index: r.Index}
		}
		a.tree = tree.Build(entries)
	})
	return a.tree
}
