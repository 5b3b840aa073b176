package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resctx/resctx-runtime/pkg/ids"
	"github.com/resctx/resctx-runtime/pkg/tree"
)

func TestBuild_CreatesIntermediateBranches(t *testing.T) {
	tr := tree.Build([]tree.Entry{
		{ID: "a.b.c", Index: 0},
	})

	_, ok := tr.ByID("a")
	require.True(t, ok)
	_, ok = tr.ByID("a.b")
	require.True(t, ok)
	leaf, ok := tr.ByID("a.b.c")
	require.True(t, ok)
	assert.True(t, leaf.Leaf.HasResource)
	assert.Equal(t, ids.ResourceIndex(0), leaf.Leaf.Index)
}

func TestBuild_TopLevelSingleSegment(t *testing.T) {
	tr := tree.Build([]tree.Entry{{ID: "standalone", Index: 5}})
	node, ok := tr.ByID("standalone")
	require.True(t, ok)
	assert.True(t, node.Leaf.HasResource)
	assert.Equal(t, ids.ResourceIndex(5), node.Leaf.Index)
}
