package qualtypes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resctx/resctx-runtime/pkg/qualtypes"
)

func TestExprType_MatchesEvaluatesBooleanExpression(t *testing.T) {
	et, err := qualtypes.NewExprType("")
	require.NoError(t, err)

	assert.Equal(t, qualtypes.PerfectMatch, et.Matches(`context.startsWith("beta-")`, "beta-canary", qualtypes.OperatorMatches))
	assert.Equal(t, qualtypes.NoMatch, et.Matches(`context.startsWith("beta-")`, "stable", qualtypes.OperatorMatches))
}

func TestExprType_IsValidConditionValue(t *testing.T) {
	et, err := qualtypes.NewExprType("")
	require.NoError(t, err)

	assert.True(t, et.IsValidConditionValue(`context == "x"`))
	assert.False(t, et.IsValidConditionValue(`this is not cel`))
	assert.False(t, et.IsValidConditionValue(`context`), "must evaluate to bool, not string")
}

func TestExprType_CompilesOnce(t *testing.T) {
	et, err := qualtypes.NewExprType("")
	require.NoError(t, err)

	expr := `context == "x"`
	assert.Equal(t, qualtypes.PerfectMatch, et.Matches(expr, "x", qualtypes.OperatorMatches))
	// second call reuses the memoized program; behavior should be identical.
	assert.Equal(t, qualtypes.NoMatch, et.Matches(expr, "y", qualtypes.OperatorMatches))
}

func TestExprType_MatchesOperators(t *testing.T) {
	et, err := qualtypes.NewExprType("")
	require.NoError(t, err)
	assert.Equal(t, qualtypes.PerfectMatch, et.Matches("anything", "anything", qualtypes.OperatorAlways))
	assert.Equal(t, qualtypes.NoMatch, et.Matches("anything", "anything", qualtypes.OperatorNever))
}
