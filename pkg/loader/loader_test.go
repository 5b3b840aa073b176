package loader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resctx/resctx-runtime/pkg/loader"
)

func TestLoad_SimpleResource(t *testing.T) {
	b := loader.NewCollectionBuilder()
	qt := b.AddQualifierType("literal", map[string]any{"enumeratedValues": []string{"dev", "prod"}})
	q := b.AddQualifier("env", qt, 100)
	b.AddResourceType("json", nil)
	cond := b.AddCondition(q, "matches", "prod", 0)
	cs := b.AddConditionSet(cond)
	dec := b.AddDecision(cs)
	b.AddResource("app.greeting", 0, dec, loader.CandidateSpec{Value: map[string]any{"text": "hi prod"}})

	a, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 1, a.NumResources())

	r, ok := a.ResourceByID("app.greeting")
	require.True(t, ok)
	assert.Equal(t, "greeting", r.Name)
	assert.Len(t, r.Candidates, 1)
}

func TestLoad_RejectsOutOfRangeReferences(t *testing.T) {
	b := loader.NewCollectionBuilder()
	b.AddResourceType("json", nil)
	b.AddResource("broken", 0, 7) // decision index 7 doesn't exist

	_, err := b.Build()
	require.Error(t, err)
	var loadErr *loader.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.NotEmpty(t, loadErr.Issues)
}

func TestLoad_RejectsCandidateSlotMismatch(t *testing.T) {
	b := loader.NewCollectionBuilder()
	qt := b.AddQualifierType("literal", nil)
	q := b.AddQualifier("env", qt, 0)
	b.AddResourceType("json", nil)
	cond := b.AddCondition(q, "matches", "prod", 0)
	cs := b.AddConditionSet(cond)
	dec := b.AddDecision(cs)
	// Decision has one slot but resource supplies two candidates.
	b.AddResource("app.greeting", 0, dec,
		loader.CandidateSpec{Value: "a"},
		loader.CandidateSpec{Value: "b"},
	)

	_, err := b.Build()
	require.Error(t, err)
}

func TestLoad_RejectsInvalidConditionValue(t *testing.T) {
	b := loader.NewCollectionBuilder()
	qt := b.AddQualifierType("literal", map[string]any{"enumeratedValues": []string{"dev", "prod"}})
	q := b.AddQualifier("env", qt, 0)
	b.AddCondition(q, "matches", "staging", 0) // not in enumeratedValues

	_, err := b.Build()
	require.Error(t, err)
}

func TestCollectionBuilder_DedupsConditionSetsByMembership(t *testing.T) {
	b := loader.NewCollectionBuilder()
	qt := b.AddQualifierType("literal", nil)
	q := b.AddQualifier("env", qt, 0)
	c1 := b.AddCondition(q, "matches", "prod", 0)
	c2 := b.AddCondition(q, "matches", "dev", 0)

	first := b.AddConditionSet(c1, c2)
	second := b.AddConditionSet(c2, c1) // same members, different order
	assert.Equal(t, first, second)
}
