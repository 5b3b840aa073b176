package qualtypes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/resctx/resctx-runtime/pkg/qualtypes"
)

func TestLanguageType_IsValidConditionValue(t *testing.T) {
	lt := qualtypes.NewLanguageType(qualtypes.LanguageConfig{})
	assert.True(t, lt.IsValidConditionValue("en-US"))
	assert.False(t, lt.IsValidConditionValue("not a tag"))

	permissive := qualtypes.NewLanguageType(qualtypes.LanguageConfig{AcceptMalformed: true})
	assert.True(t, permissive.IsValidConditionValue("not a tag"))
}

func TestLanguageType_AllowedLanguages(t *testing.T) {
	lt := qualtypes.NewLanguageType(qualtypes.LanguageConfig{AllowedLanguages: []string{"en", "fr"}})
	assert.True(t, lt.IsValidConditionValue("en-US"))
	assert.True(t, lt.IsValidConditionValue("fr-CA"))
	assert.False(t, lt.IsValidConditionValue("de-DE"))
}

func TestLanguageType_Matches(t *testing.T) {
	lt := qualtypes.NewLanguageType(qualtypes.LanguageConfig{})
	assert.Equal(t, qualtypes.MatchScore(1.0), lt.Matches("en-US", "en-US", qualtypes.OperatorMatches))
	assert.Equal(t, qualtypes.MatchScore(0.8), lt.Matches("en-US", "en-GB", qualtypes.OperatorMatches))
	assert.Equal(t, qualtypes.MatchScore(0.0), lt.Matches("en-US", "fr-FR", qualtypes.OperatorMatches))
	assert.Equal(t, qualtypes.PerfectMatch, lt.Matches("en", "en", qualtypes.OperatorAlways))
	assert.Equal(t, qualtypes.NoMatch, lt.Matches("en", "en", qualtypes.OperatorNever))
}

func TestLanguageType_MatchesContextList(t *testing.T) {
	lt := qualtypes.NewLanguageType(qualtypes.LanguageConfig{AllowContextList: true})
	assert.Equal(t, qualtypes.MatchScore(1.0), lt.Matches("fr-CA", "en-US,fr-CA,de-DE", qualtypes.OperatorMatches))
}
