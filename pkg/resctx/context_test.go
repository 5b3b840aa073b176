package resctx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resctx/resctx-runtime/pkg/loader"
	"github.com/resctx/resctx-runtime/pkg/resctx"
)

func buildTestArena(t *testing.T) *loader.CollectionBuilder {
	t.Helper()
	b := loader.NewCollectionBuilder()
	qt := b.AddQualifierType("literal", map[string]any{"enumeratedValues": []string{"dev", "prod"}})
	b.AddQualifier("env", qt, 0)
	return b
}

func TestContext_RejectsUnknownQualifier(t *testing.T) {
	b := buildTestArena(t)
	a, err := b.Build()
	require.NoError(t, err)

	_, err = resctx.New(a, map[string]string{"region": "us"})
	require.Error(t, err)
}

func TestContext_RejectsInvalidValue(t *testing.T) {
	b := buildTestArena(t)
	a, err := b.Build()
	require.NoError(t, err)

	_, err = resctx.New(a, map[string]string{"env": "staging"})
	require.Error(t, err)
}

func TestContext_GetAndWith(t *testing.T) {
	b := buildTestArena(t)
	a, err := b.Build()
	require.NoError(t, err)

	ctx, err := resctx.New(a, map[string]string{"env": "dev"})
	require.NoError(t, err)
	v, ok := ctx.Get("env")
	require.True(t, ok)
	assert.Equal(t, "dev", v)

	updated, err := ctx.With(map[string]string{"env": "prod"})
	require.NoError(t, err)
	v, ok = updated.Get("env")
	require.True(t, ok)
	assert.Equal(t, "prod", v)

	// original is untouched
	v, ok = ctx.Get("env")
	require.True(t, ok)
	assert.Equal(t, "dev", v)
}
