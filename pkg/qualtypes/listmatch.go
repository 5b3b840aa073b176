package qualtypes

import "strings"

// splitContextList splits a comma-separated context value into its trimmed
// parts. Used by qualifier types whose AllowContextList is true, so that a
// single context entry (e.g. "en,fr,de") is scored as a list of candidates
// rather than one opaque string.
func splitContextList(value string) []string {
	raw := strings.Split(value, ",")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		parts = append(parts, strings.TrimSpace(p))
	}
	return parts
}

// bestOfList scores condition against every element of a comma-separated
// context list using match, returning the best score found. Short-circuits
// on a perfect match since nothing can score higher.
func bestOfList(condition, contextList string, match func(condition, context string) MatchScore) MatchScore {
	best := NoMatch
	for _, part := range splitContextList(contextList) {
		if part == "" {
			continue
		}
		if score := match(condition, part); score > best {
			best = score
		}
		if best == PerfectMatch {
			break
		}
	}
	return best
}
