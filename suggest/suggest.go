// Package suggest provides did-you-mean suggestions for unresolved keys.
package suggest

import "github.com/agext/levenshtein"

// Key returns the registered key that most closely matches want.
//
// A candidate is only suggested when the edit distance is small relative to
// the length of want, so suggestions stay plausible for short keys. If no
// candidate is close enough, an empty string is returned. The distance
// heuristic may change; callers should treat a suggestion as a hint only.
func Key(want string, registered []string) string {
	if want == "" {
		return ""
	}

	maxDist := len(want) / 3
	if maxDist == 0 {
		maxDist = 1
	}

	best := ""
	bestDist := maxDist + 1
	for _, key := range registered {
		if key == want {
			return key
		}
		if d := levenshtein.Distance(want, key, nil); d < bestDist {
			best = key
			bestDist = d
		}
	}
	return best
}
