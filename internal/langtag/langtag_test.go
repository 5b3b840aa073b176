package langtag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resctx/resctx-runtime/internal/langtag"
)

func TestParse(t *testing.T) {
	tag, err := langtag.Parse("zh-Hans-CN")
	require.NoError(t, err)
	assert.Equal(t, "zh", tag.Primary)
	assert.Equal(t, "Hans", tag.Script)
	assert.Equal(t, "CN", tag.Region)

	tag, err = langtag.Parse("en-US")
	require.NoError(t, err)
	assert.Equal(t, "en", tag.Primary)
	assert.Empty(t, tag.Script)
	assert.Equal(t, "US", tag.Region)

	tag, err = langtag.Parse("en")
	require.NoError(t, err)
	assert.Equal(t, "en", tag.Primary)
	assert.Empty(t, tag.Region)

	_, err = langtag.Parse("")
	assert.Error(t, err)
	_, err = langtag.Parse("en_US")
	assert.Error(t, err, "underscore is not a valid BCP-47 separator")
}

func TestMatch(t *testing.T) {
	a, err := langtag.Parse("en-US")
	require.NoError(t, err)
	b, err := langtag.Parse("en-US")
	require.NoError(t, err)
	assert.Equal(t, langtag.SimilarityExact, langtag.Match(a, b))

	c, err := langtag.Parse("en-GB")
	require.NoError(t, err)
	assert.Equal(t, langtag.SimilarityRegion, langtag.Match(a, c))

	d, err := langtag.Parse("en")
	require.NoError(t, err)
	assert.Equal(t, langtag.SimilarityNeutralRegion, langtag.Match(a, d))

	fr, err := langtag.Parse("fr-FR")
	require.NoError(t, err)
	assert.Equal(t, langtag.SimilarityNone, langtag.Match(a, fr))
}
