package jsonmerge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resctx/resctx-runtime/internal/jsonmerge"
)

func TestAugment_DeepMergesObjects(t *testing.T) {
	base := map[string]any{"a": 1, "nested": map[string]any{"x": 1, "y": 2}}
	patch := map[string]any{"b": 2, "nested": map[string]any{"y": 20}}

	out, err := jsonmerge.Augment(base, patch, jsonmerge.Options{})
	require.NoError(t, err)

	merged, ok := out.(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, merged["a"])
	assert.EqualValues(t, 2, merged["b"])
	nested := merged["nested"].(map[string]any)
	assert.EqualValues(t, 1, nested["x"])
	assert.EqualValues(t, 20, nested["y"])
}

func TestAugment_NullDeletesByDefault(t *testing.T) {
	base := map[string]any{"a": 1, "b": 2}
	patch := map[string]any{"b": nil}

	out, err := jsonmerge.Augment(base, patch, jsonmerge.Options{})
	require.NoError(t, err)

	merged := out.(map[string]any)
	_, present := merged["b"]
	assert.False(t, present)
	assert.EqualValues(t, 1, merged["a"])
}

func TestAugment_NullPreservedWhenSuppressed(t *testing.T) {
	base := map[string]any{"a": 1, "b": 2}
	patch := map[string]any{"b": nil}

	out, err := jsonmerge.Augment(base, patch, jsonmerge.Options{SuppressNullAsDelete: true})
	require.NoError(t, err)

	merged := out.(map[string]any)
	v, present := merged["b"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestAugment_ArrayReplacesWholesale(t *testing.T) {
	base := map[string]any{"list": []any{1, 2, 3}}
	patch := map[string]any{"list": []any{9}}

	out, err := jsonmerge.Augment(base, patch, jsonmerge.Options{})
	require.NoError(t, err)
	merged := out.(map[string]any)
	assert.Equal(t, []any{float64(9)}, merged["list"])
}

func TestAugment_RejectsNonObjectBase(t *testing.T) {
	_, err := jsonmerge.Augment([]any{1, 2}, map[string]any{"a": 1}, jsonmerge.Options{})
	require.Error(t, err)
	var ce *jsonmerge.CompositionError
	assert.ErrorAs(t, err, &ce)
}

func TestAugment_RejectsNonObjectPatch(t *testing.T) {
	_, err := jsonmerge.Augment(map[string]any{"a": 1}, []any{1, 2}, jsonmerge.Options{})
	require.Error(t, err)
}
