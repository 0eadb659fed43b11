// Package scoring provides the pure similarity and priority-scoring kernel for gap ranking.
package scoring

import "strings"

// Similarity returns a 0-1 similarity between two skill names.
// Exact case-insensitive matches score 1.0, containment scores 0.9, and
// everything else falls back to the Jaccard index of whitespace token sets.
func Similarity(a, b string) float64 {
	aLower := strings.ToLower(strings.TrimSpace(a))
	bLower := strings.ToLower(strings.TrimSpace(b))

	if aLower == bLower && aLower != "" {
		return 1.0
	}

	if aLower != "" && bLower != "" {
		if strings.Contains(aLower, bLower) || strings.Contains(bLower, aLower) {
			return 0.9
		}
	}

	aTokens := tokenSet(aLower)
	bTokens := tokenSet(bLower)
	if len(aTokens) == 0 && len(bTokens) == 0 {
		return 0.0
	}

	intersection := 0
	for token := range aTokens {
		if bTokens[token] {
			intersection++
		}
	}
	union := len(aTokens) + len(bTokens) - intersection
	if union == 0 {
		return 0.0
	}

	return float64(intersection) / float64(union)
}

// tokenSet splits a string into its set of whitespace-delimited tokens.
func tokenSet(s string) map[string]bool {
	tokens := make(map[string]bool)
	for _, token := range strings.Fields(s) {
		tokens[token] = true
	}
	return tokens
}

// NormalizeLevel maps a textual proficiency level to a 0-100 score.
// Unknown input defaults to 50 (intermediate).
func NormalizeLevel(level string) float64 {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "beginner":
		return 25
	case "intermediate":
		return 50
	case "advanced":
		return 75
	case "expert":
		return 95
	default:
		return 50
	}
}
