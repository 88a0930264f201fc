package automation

import (
	"github.com/pmezard/go-difflib/difflib"
)

// DefaultCutoff is the minimum similarity ratio for a fuzzy match.
const DefaultCutoff = 0.5

// Matcher finds the closest candidate phrase for an input.
type Matcher interface {
	Match(input string, candidates []string) (string, bool)
}

// RatioMatcher matches by character-level sequence similarity, keeping
// the candidate with the highest ratio at or above the cutoff.
type RatioMatcher struct {
	cutoff float64
}

// NewRatioMatcher creates a matcher with the given similarity cutoff.
func NewRatioMatcher(cutoff float64) *RatioMatcher {
	if cutoff <= 0 {
		cutoff = DefaultCutoff
	}
	return &RatioMatcher{cutoff: cutoff}
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// Match returns the best-matching candidate, or false when no candidate
// reaches the cutoff.
func (m *RatioMatcher) Match(input string, candidates []string) (string, bool) {
	inputChars := chars(input)

	best := ""
	bestRatio := m.cutoff
	for _, candidate := range candidates {
		sm := difflib.NewMatcher(inputChars, chars(candidate))
		if ratio := sm.Ratio(); ratio >= bestRatio {
			best = candidate
			bestRatio = ratio
		}
	}
	return best, best != ""
}
