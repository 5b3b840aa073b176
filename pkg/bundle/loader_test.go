package bundle_test

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resctx/resctx-runtime/pkg/bundle"
	"github.com/resctx/resctx-runtime/pkg/wire"
)

func testCollection() wire.Collection {
	return wire.Collection{
		QualifierTypes: []wire.QualifierType{{Name: "literal", Config: json.RawMessage(`{"enumeratedValues":["en","fr"]}`)}},
		Qualifiers:     []wire.Qualifier{{Name: "language", Type: 0, DefaultPriority: 1}},
		ResourceTypes:  []wire.ResourceType{{Name: "text"}},
		Conditions:     []wire.Condition{{QualifierIndex: 0, Operator: "matches", Value: "en", Priority: 1}},
		ConditionSets:  []wire.ConditionSet{{Conditions: []int{0}}},
		Decisions:      []wire.Decision{{ConditionSets: []int{0}}},
		Resources: []wire.Resource{
			{ID: "greeting", Type: 0, Decision: 0, Candidates: []wire.Candidate{
				{JSON: json.RawMessage(`"Hello"`), IsPartial: false, MergeMethod: wire.MergeReplace},
			}},
		},
	}
}

// marshalBundle builds a bundle JSON document for col, with checksum set
// either to the real computed checksum (valid=true) or a deliberately wrong
// value (valid=false).
func marshalBundle(t *testing.T, col wire.Collection, valid bool) []byte {
	t.Helper()
	checksum, err := bundle.Checksum(col, false)
	require.NoError(t, err)
	if !valid {
		checksum = "00000000"
	}
	version := "1.0.0"
	b := bundle.Bundle{
		Metadata: bundle.Metadata{
			DateBuilt:   time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
			Checksum:    checksum,
			Version:     &version,
			Description: nil,
		},
		Collection: col,
	}
	data, err := json.Marshal(b)
	require.NoError(t, err)
	return data
}

func TestDefaultLoaderOptions(t *testing.T) {
	opts := bundle.DefaultLoaderOptions()
	assert.False(t, opts.SkipChecksumVerification)
	assert.False(t, opts.UseSHA256)
}

func TestLoadFromReader_SkipsChecksumVerification(t *testing.T) {
	data := marshalBundle(t, testCollection(), false)
	b, err := bundle.LoadFromReader(strings.NewReader(string(data)), bundle.LoaderOptions{SkipChecksumVerification: true})
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "1.0.0", *b.Metadata.Version)
	assert.Len(t, b.Collection.Resources, 1)
}

func TestLoadFromReader_InvalidJSON(t *testing.T) {
	_, err := bundle.LoadFromReader(strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestLoadFromReader_ChecksumMismatchFails(t *testing.T) {
	data := marshalBundle(t, testCollection(), false)
	_, err := bundle.LoadFromReader(strings.NewReader(string(data)))
	assert.Error(t, err)
}

func TestLoadFromReader_ChecksumMatchSucceeds(t *testing.T) {
	data := marshalBundle(t, testCollection(), true)
	b, err := bundle.LoadFromReader(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Len(t, b.Collection.Resources, 1)
}

func TestLoadFromFile(t *testing.T) {
	tmp, err := os.CreateTemp("", "test-bundle-*.json")
	require.NoError(t, err)
	defer os.Remove(tmp.Name())

	_, err = tmp.Write(marshalBundle(t, testCollection(), true))
	require.NoError(t, err)
	require.NoError(t, tmp.Close())

	b, err := bundle.LoadFromFile(tmp.Name())
	require.NoError(t, err)
	assert.Len(t, b.Collection.Resources, 1)
}

func TestLoadFromFile_Nonexistent(t *testing.T) {
	_, err := bundle.LoadFromFile("nonexistent-file.json")
	assert.Error(t, err)
}

func TestLoad_FeedsLoaderAndBuildsArena(t *testing.T) {
	tmp, err := os.CreateTemp("", "test-bundle-*.json")
	require.NoError(t, err)
	defer os.Remove(tmp.Name())

	_, err = tmp.Write(marshalBundle(t, testCollection(), true))
	require.NoError(t, err)
	require.NoError(t, tmp.Close())

	a, err := bundle.Load(tmp.Name())
	require.NoError(t, err)
	assert.Equal(t, 1, a.NumResources())
}

func TestMetadata_RoundTripsDateBuilt(t *testing.T) {
	data := marshalBundle(t, testCollection(), true)
	b, err := bundle.LoadFromReader(strings.NewReader(string(data)))
	require.NoError(t, err)
	expected := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	assert.True(t, b.Metadata.DateBuilt.Equal(expected))
}

func TestValidate_RejectsBundleWithNoResources(t *testing.T) {
	empty := wire.Collection{}
	data := marshalBundle(t, empty, false)
	b, err := bundle.LoadFromReader(strings.NewReader(string(data)), bundle.LoaderOptions{SkipChecksumVerification: true})
	require.NoError(t, err)
	assert.Error(t, bundle.Validate(b))
}

func TestChecksum_SHA256VariantDiffersFromCRC32(t *testing.T) {
	col := testCollection()
	crc, err := bundle.Checksum(col, false)
	require.NoError(t, err)
	sha, err := bundle.Checksum(col, true)
	require.NoError(t, err)
	assert.NotEqual(t, crc, sha)
	assert.Len(t, crc, 8)
	assert.Len(t, sha, 64)
}
