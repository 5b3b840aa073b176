package qualtypes

import (
	"fmt"
	"regexp"
	"strings"
)

var territoryCodePattern = regexp.MustCompile(`^[a-zA-Z]{2}$`)

// TerritoryType matches ISO 3166-1 alpha-2 territory codes (e.g. "US",
// "CA"), optionally restricted to an allow-list and/or organized into a
// hierarchy of such codes (e.g. "PR" under "US"). Only two-letter codes are
// valid or matched, so subdivision codes such as "US-CA" never match.
// Adapted from the teacher's
// TerritoryQualifierType (pkg/qualifiers/territory.go).
type TerritoryType struct {
	*Base
	allowedTerritories []string // normalized uppercase
	acceptLowercase    bool
	hierarchy          *ValueHierarchy
}

// TerritoryConfig configures a TerritoryType.
type TerritoryConfig struct {
	Name               string             `json:"name"`
	AllowContextList   bool               `json:"allowContextList"`
	AllowedTerritories []string           `json:"allowedTerritories"`
	AcceptLowercase    bool               `json:"acceptLowercase"`
	Hierarchy          ValueHierarchyDecl `json:"hierarchy"`
}

// NewTerritoryType builds a TerritoryType, normalizing and validating the
// allow-list to uppercase territory codes.
func NewTerritoryType(cfg TerritoryConfig) (*TerritoryType, error) {
	name := cfg.Name
	if name == "" {
		name = "territory"
	}
	tt := &TerritoryType{
		Base:            NewBase(name, cfg.AllowContextList),
		acceptLowercase: cfg.AcceptLowercase,
	}
	if cfg.AllowedTerritories != nil {
		normalized := make([]string, len(cfg.AllowedTerritories))
		for i, t := range cfg.AllowedTerritories {
			u := strings.ToUpper(t)
			if !territoryCodePattern.MatchString(u) {
				return nil, fmt.Errorf("territory type %q: invalid territory code %q", name, t)
			}
			normalized[i] = u
		}
		tt.allowedTerritories = normalized
	}
	if len(cfg.Hierarchy) > 0 {
		h, err := NewValueHierarchy(ValueHierarchyConfig{Values: cfg.AllowedTerritories, Hierarchy: cfg.Hierarchy})
		if err != nil {
			return nil, fmt.Errorf("territory type %q: %w", name, err)
		}
		tt.hierarchy = h
	}
	return tt, nil
}

func (tt *TerritoryType) IsValidConditionValue(value string) bool {
	normalized := value
	if tt.acceptLowercase {
		normalized = strings.ToUpper(value)
	}
	if !territoryCodePattern.MatchString(normalized) {
		return false
	}
	if tt.allowedTerritories != nil {
		for _, a := range tt.allowedTerritories {
			if a == strings.ToUpper(normalized) {
				return true
			}
		}
		return false
	}
	if !tt.acceptLowercase && value != strings.ToUpper(value) {
		return false
	}
	return true
}

func (tt *TerritoryType) IsValidContextValue(value string) bool {
	if tt.AllowContextList() && strings.Contains(value, ",") {
		for _, part := range splitContextList(value) {
			if part == "" || !tt.IsValidConditionValue(part) {
				return false
			}
		}
		return true
	}
	return tt.IsValidConditionValue(value)
}

func (tt *TerritoryType) Matches(conditionValue, contextValue string, operator Operator) MatchScore {
	switch operator {
	case OperatorAlways:
		return PerfectMatch
	case OperatorNever:
		return NoMatch
	case OperatorMatches:
		if tt.AllowContextList() && strings.Contains(contextValue, ",") {
			return bestOfList(conditionValue, contextValue, tt.matchOne)
		}
		return tt.matchOne(conditionValue, contextValue)
	default:
		return NoMatch
	}
}

func (tt *TerritoryType) matchOne(condition, context string) MatchScore {
	nc, nx := strings.ToUpper(condition), strings.ToUpper(context)
	if !territoryCodePattern.MatchString(nc) || !territoryCodePattern.MatchString(nx) {
		return NoMatch
	}
	if nc == nx {
		return PerfectMatch
	}
	if tt.hierarchy != nil {
		return tt.hierarchy.Match(nc, nx)
	}
	return NoMatch
}
