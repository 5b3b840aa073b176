package qualtypes

import (
	"strings"

	"github.com/resctx/resctx-runtime/internal/langtag"
)

// LanguageType matches BCP-47-shaped language tags, preferring an exact tag
// match but giving partial credit for same-language/different-region
// matches via internal/langtag. Adapted from the teacher's
// LanguageQualifierType (pkg/qualifiers/languageQualifierType.go), which
// delegated to the sibling ts-bcp47 module; here the matching logic is
// reduced to the primary-language/script/region subset langtag models (see
// internal/langtag's doc comment for why).
type LanguageType struct {
	*Base
	allowedLanguages []string // primary tags as configured, compared case-insensitively
	acceptMalformed  bool
}

// LanguageConfig configures a LanguageType.
type LanguageConfig struct {
	Name             string   `json:"name"`
	AllowContextList bool     `json:"allowContextList"`
	AllowedLanguages []string `json:"allowedLanguages"`
	AcceptMalformed  bool     `json:"acceptMalformed"`
}

// NewLanguageType builds a LanguageType.
func NewLanguageType(cfg LanguageConfig) *LanguageType {
	name := cfg.Name
	if name == "" {
		name = "language"
	}
	return &LanguageType{
		Base:             NewBase(name, cfg.AllowContextList),
		allowedLanguages: cfg.AllowedLanguages,
		acceptMalformed:  cfg.AcceptMalformed,
	}
}

func (lt *LanguageType) IsValidConditionValue(value string) bool {
	tag, err := langtag.Parse(value)
	if err != nil {
		return lt.acceptMalformed
	}
	if lt.allowedLanguages != nil {
		for _, allowed := range lt.allowedLanguages {
			if strings.EqualFold(allowed, tag.Primary) {
				return true
			}
		}
		return false
	}
	return true
}

func (lt *LanguageType) IsValidContextValue(value string) bool {
	if lt.AllowContextList() && strings.Contains(value, ",") {
		for _, part := range splitContextList(value) {
			if part == "" || !lt.IsValidConditionValue(part) {
				return false
			}
		}
		return true
	}
	return lt.IsValidConditionValue(value)
}

func (lt *LanguageType) Matches(conditionValue, contextValue string, operator Operator) MatchScore {
	switch operator {
	case OperatorAlways:
		return PerfectMatch
	case OperatorNever:
		return NoMatch
	case OperatorMatches:
		if lt.AllowContextList() && strings.Contains(contextValue, ",") {
			return bestOfList(conditionValue, contextValue, lt.matchOne)
		}
		return lt.matchOne(conditionValue, contextValue)
	default:
		return NoMatch
	}
}

func (lt *LanguageType) matchOne(conditionValue, contextValue string) MatchScore {
	conditionTag, err := langtag.Parse(conditionValue)
	if err != nil {
		if !lt.acceptMalformed {
			return NoMatch
		}
		conditionTag = langtag.Tag{Raw: conditionValue, Primary: strings.ToLower(conditionValue)}
	}
	contextTag, err := langtag.Parse(contextValue)
	if err != nil {
		if !lt.acceptMalformed {
			return NoMatch
		}
		contextTag = langtag.Tag{Raw: contextValue, Primary: strings.ToLower(contextValue)}
	}
	return MatchScore(langtag.Match(conditionTag, contextTag))
}
