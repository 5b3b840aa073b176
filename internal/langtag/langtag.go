// Package langtag implements a trimmed BCP-47 language tag model: parsing a
// tag into its primary-language/script/region subtags and scoring how well
// two tags match. It is adapted from ts-bcp47's similarity model
// (pkg/bcp47/similarity.go, parser.go) for use by the language qualifier
// type (pkg/qualtypes/language.go); it intentionally drops extended
// language subtags, extensions, private-use subtags and grandfathered tags,
// which the resolution engine never needs to look at to compute a match
// score. A caller wanting the full BCP-47 grammar should use ts-bcp47
// itself — this package is not meant to replace it for general-purpose tag
// handling, only to give the language qualifier type something sharper
// than a literal string compare.
package langtag

import (
	"fmt"
	"regexp"
	"strings"
)

// Tag is a parsed (primary language, script, region) triple.
type Tag struct {
	Raw     string
	Primary string
	Script  string
	Region  string
}

var subtagPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Parse parses a BCP-47-shaped tag ("en", "en-US", "zh-Hans-CN", ...) into
// its primary/script/region subtags. Parsing is permissive about subtag
// content (any alphanumeric run) but strict about shape: a primary subtag is
// required, a 4-letter subtag in position two is a script, and a 2-letter or
// 3-digit subtag is a region. Anything else after the primary subtag is
// ignored, matching ts-bcp47's "well-formed" validity level for the subset
// this package models.
func Parse(raw string) (Tag, error) {
	if raw == "" {
		return Tag{}, fmt.Errorf("langtag: empty tag")
	}
	parts := strings.Split(raw, "-")
	for _, p := range parts {
		if !subtagPattern.MatchString(p) {
			return Tag{}, fmt.Errorf("langtag: invalid subtag %q in tag %q", p, raw)
		}
	}
	tag := Tag{Raw: raw, Primary: strings.ToLower(parts[0])}
	rest := parts[1:]
	if len(rest) > 0 && len(rest[0]) == 4 && isAlpha(rest[0]) {
		tag.Script = title(rest[0])
		rest = rest[1:]
	}
	if len(rest) > 0 && isRegionSubtag(rest[0]) {
		tag.Region = strings.ToUpper(rest[0])
	}
	return tag, nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func isRegionSubtag(s string) bool {
	if len(s) == 2 && isAlpha(s) {
		return true
	}
	if len(s) == 3 {
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	}
	return false
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// Similarity is a match strength in [0,1], mirroring the levels ts-bcp47
// assigns (pkg/bcp47/similarity.go) but trimmed to the subset this package's
// Tag can distinguish: exact, same-language-and-script-different-region,
// and same-language-neutral-region.
type Similarity float64

const (
	SimilarityExact         Similarity = 1.0
	SimilarityRegion        Similarity = 0.8
	SimilarityNeutralRegion Similarity = 0.5
	SimilarityNone          Similarity = 0.0
)

// Match scores how well the condition tag matches the context tag. A
// mismatched primary language is always SimilarityNone; identical tags are
// SimilarityExact; same language (and script, if both specify one) with
// differing or absent regions scores lower, favoring an exact region match
// over a condition that omits region altogether.
func Match(condition, context Tag) Similarity {
	if !strings.EqualFold(condition.Primary, context.Primary) {
		return SimilarityNone
	}
	if condition.Script != "" && context.Script != "" && !strings.EqualFold(condition.Script, context.Script) {
		return SimilarityNone
	}
	if condition.Region == "" || context.Region == "" {
		if condition.Raw == context.Raw {
			return SimilarityExact
		}
		return SimilarityNeutralRegion
	}
	if strings.EqualFold(condition.Region, context.Region) {
		return SimilarityExact
	}
	return SimilarityRegion
}
