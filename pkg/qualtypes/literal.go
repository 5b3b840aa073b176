package qualtypes

import (
	"regexp"
	"strings"
)

var literalIdentifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

// LiteralType matches opaque string identifiers (e.g. a "role" or "channel"
// qualifier), optionally constrained to an enumerated set of legal values
// and/or organized into a value hierarchy. Adapted from the teacher's
// LiteralQualifierType (pkg/qualifiers/literal.go).
type LiteralType struct {
	*Base
	caseSensitive    bool
	enumeratedValues []string
	hierarchy        *ValueHierarchy
}

// LiteralConfig configures a LiteralType.
type LiteralConfig struct {
	Name             string             `json:"name"`
	AllowContextList bool               `json:"allowContextList"`
	CaseSensitive    bool               `json:"caseSensitive"`
	EnumeratedValues []string           `json:"enumeratedValues"`
	Hierarchy        ValueHierarchyDecl `json:"hierarchy"`
}

// NewLiteralType builds a LiteralType from configuration, wiring up a value
// hierarchy if one was declared.
func NewLiteralType(cfg LiteralConfig) (*LiteralType, error) {
	name := cfg.Name
	if name == "" {
		name = "literal"
	}
	lt := &LiteralType{
		Base:             NewBase(name, cfg.AllowContextList),
		caseSensitive:    cfg.CaseSensitive,
		enumeratedValues: cfg.EnumeratedValues,
	}
	if len(cfg.Hierarchy) > 0 {
		h, err := NewValueHierarchy(ValueHierarchyConfig{Values: cfg.EnumeratedValues, Hierarchy: cfg.Hierarchy})
		if err != nil {
			return nil, err
		}
		lt.hierarchy = h
	}
	return lt, nil
}

func (lt *LiteralType) IsValidConditionValue(value string) bool {
	if lt.enumeratedValues != nil {
		for _, v := range lt.enumeratedValues {
			if lt.equal(v, value) {
				return true
			}
		}
		return false
	}
	return literalIdentifierPattern.MatchString(value)
}

func (lt *LiteralType) IsValidContextValue(value string) bool {
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

func (lt *LiteralType) equal(a, b string) bool {
	if lt.caseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}

func (lt *LiteralType) Matches(conditionValue, contextValue string, operator Operator) MatchScore {
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

func (lt *LiteralType) matchOne(condition, context string) MatchScore {
	if lt.hierarchy != nil {
		return lt.hierarchy.Match(condition, context)
	}
	if lt.equal(condition, context) {
		return PerfectMatch
	}
	return NoMatch
}
