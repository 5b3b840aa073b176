package treeresolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resctx/resctx-runtime/pkg/loader"
	"github.com/resctx/resctx-runtime/pkg/resctx"
	"github.com/resctx/resctx-runtime/pkg/resolver"
	"github.com/resctx/resctx-runtime/pkg/treeresolve"
)

func buildSampleArena(t *testing.T) *loader.CollectionBuilder {
	t.Helper()
	b := loader.NewCollectionBuilder()
	b.AddResourceType("json", nil)
	always := b.AddUnconditional("always", 0)
	cs := b.AddConditionSet(always)
	dec := b.AddDecision(cs)

	b.AddResource("app.title", 0, dec, loader.CandidateSpec{Value: "My App", MergeMethod: "replace"})
	b.AddResource("app.widgets.button", 0, dec, loader.CandidateSpec{Value: "Click me", MergeMethod: "replace"})
	return b
}

func TestTreeResolver_ResolvesWholeTree(t *testing.T) {
	b := buildSampleArena(t)
	a, err := b.Build()
	require.NoError(t, err)

	ctx, err := resctx.New(a, nil)
	require.NoError(t, err)
	res := resolver.New(a, ctx, resolver.Options{})

	tr := treeresolve.New(res, a.Tree())
	root, err := tr.Resolve(treeresolve.Options{})
	require.NoError(t, err)

	appNode, ok := root.Lookup("app")
	require.True(t, ok)
	assert.False(t, appNode.HasValue)

	title, ok := root.Lookup("app.title")
	require.True(t, ok)
	assert.True(t, title.HasValue)
	assert.Equal(t, "My App", title.Value)

	button, ok := root.Lookup("app.widgets.button")
	require.True(t, ok)
	assert.Equal(t, "Click me", button.Value)
}

func TestTreeResolver_OmitsEmptyBranchesByDefault(t *testing.T) {
	b := loader.NewCollectionBuilder()
	qt := b.AddQualifierType("literal", map[string]any{"enumeratedValues": []string{"dev", "prod"}})
	q := b.AddQualifier("env", qt, 0)
	b.AddResourceType("json", nil)
	prod := b.AddCondition(q, "matches", "prod", 0)
	cs := b.AddConditionSet(prod)
	dec := b.AddDecision(cs)
	b.AddResource("app.secret", 0, dec, loader.CandidateSpec{Value: "shh", MergeMethod: "replace"})

	a, err := b.Build()
	require.NoError(t, err)

	ctx, err := resctx.New(a, map[string]string{"env": "dev"}) // won't match "prod"
	require.NoError(t, err)
	res := resolver.New(a, ctx, resolver.Options{})

	tr := treeresolve.New(res, a.Tree())
	root, err := tr.Resolve(treeresolve.Options{})
	require.NoError(t, err)

	_, ok := root.Lookup("app")
	assert.False(t, ok, "branch with no resolved descendants should be omitted")
}
