package resolver

import "github.com/resctx/resctx-runtime/pkg/qualtypes"

// MatchKind classifies how a condition or condition set related to the
// current context (spec §4.4.3): it matched against an explicit context
// value, it matched only because the condition's scoreAsDefault kicked in
// (the context value was absent or did not match), or it didn't match at
// all. The
// iota ordering doubles as the §4.4.4 step 1 ranking: Match > MatchAsDefault
// > NoMatch.
type MatchKind int

const (
	NoMatch MatchKind = iota
	MatchAsDefault
	Match
)

func (k MatchKind) String() string {
	switch k {
	case Match:
		return "match"
	case MatchAsDefault:
		return "matchAsDefault"
	default:
		return "noMatch"
	}
}

// conditionResult is one condition's evaluation against the current
// context: its ConditionMatch per spec §4.4.2, carrying the condition's own
// priority so a condition set's ordered match list can be compared
// position-by-position against another set's.
type conditionResult struct {
	kind     MatchKind
	score    qualtypes.MatchScore
	priority int
}

// conditionSetResult is a condition set's evaluation: the conjunction of its
// member conditions. A condition set matches only if every member condition
// matches (Match or MatchAsDefault); its kind is MatchAsDefault if any
// member matched that way, Match if all matched directly, NoMatch the
// moment any member doesn't match. matches preserves each member condition's
// result in declared order — §4.4.4's tie-break needs the ordered list, not
// just a summary.
type conditionSetResult struct {
	kind    MatchKind
	matches []conditionResult
}

// betterConditionSetResult orders two matching results best-first per spec
// §4.4.4: match-type is compared first (match > matchAsDefault > noMatch);
// if the two sets share a match-type, their ordered condition results are
// walked in parallel, position by position, comparing priority then score,
// and the first differing position decides; if every compared position
// ties, the longer (more specific) condition list wins. Returns true if a
// should be preferred over b.
func betterConditionSetResult(a, b conditionSetResult) bool {
	if a.kind != b.kind {
		return a.kind > b.kind
	}
	n := len(a.matches)
	if len(b.matches) < n {
		n = len(b.matches)
	}
	for i := 0; i < n; i++ {
		if a.matches[i].priority != b.matches[i].priority {
			return a.matches[i].priority > b.matches[i].priority
		}
		if a.matches[i].score != b.matches[i].score {
			return a.matches[i].score > b.matches[i].score
		}
	}
	return len(a.matches) > len(b.matches)
}
