package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resctx/resctx-runtime/pkg/arena"
	"github.com/resctx/resctx-runtime/pkg/ids"
)

func TestArena_OutOfRangeAccessorsError(t *testing.T) {
	a, err := arena.New(nil, nil, nil, nil, nil, nil, nil)
	require.NoError(t, err)

	_, err = a.ResourceAt(0)
	assert.Error(t, err)
	_, err = a.ConditionAt(0)
	assert.Error(t, err)
}

func TestArena_RejectsDuplicateResourceIDs(t *testing.T) {
	resources := []arena.Resource{
		{Index: 0, ID: "app.a"},
		{Index: 1, ID: "app.a"},
	}
	_, err := arena.New(nil, nil, nil, nil, nil, nil, resources)
	assert.Error(t, err)
}

func TestArena_ListResourceIDsAndNumCandidates(t *testing.T) {
	resources := []arena.Resource{
		{Index: 0, ID: "app.title", Candidates: []arena.Candidate{{JSON: "Hi"}, {JSON: "Hey"}}},
		{Index: 1, ID: "app.subtitle", Candidates: []arena.Candidate{{JSON: "Sub"}}},
	}
	a, err := arena.New(nil, nil, nil, nil, nil, nil, resources)
	require.NoError(t, err)

	assert.Equal(t, []string{"app.title", "app.subtitle"}, a.ListResourceIDs())

	n, err := a.NumCandidates(0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = a.NumCandidates(5)
	assert.Error(t, err)
}

func TestArena_TreeIsMemoizedAndOrdered(t *testing.T) {
	resources := []arena.Resource{
		{Index: 0, ID: "app.widgets.button"},
		{Index: 1, ID: "app.widgets"},
		{Index: 2, ID: "app.title"},
	}
	a, err := arena.New(nil, nil, nil, nil, nil, nil, resources)
	require.NoError(t, err)

	t1 := a.Tree()
	t2 := a.Tree()
	assert.Same(t, t1, t2, "Tree() must memoize")

	appNode, ok := t1.ByID("app")
	require.True(t, ok)
	assert.False(t, appNode.Leaf.HasResource)

	widgets, ok := t1.ByID("app.widgets")
	require.True(t, ok)
	require.True(t, widgets.Leaf.HasResource)
	assert.Equal(t, ids.ResourceIndex(1), widgets.Leaf.Index)

	children := appNode.Children()
	require.Len(t, children, 2)
	assert.Equal(t, "widgets", children[0].Name, "first-insertion order")
	assert.Equal(t, "title", children[1].Name)
}
