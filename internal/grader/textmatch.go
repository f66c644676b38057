package grader

import (
	"fmt"
	"strings"

	"github.com/Travinkel/CortexCLI-sub002/internal/textutil"
)

// exactMatch is a case-insensitive trim-compare.
func exactMatch(user, correct string) bool {
	return textutil.Fold(user) == textutil.Fold(correct)
}

// containsMatch is the flashcard-style fuzzy rule: after normalization the
// answers match when either one contains the other. "ARP" passes against
// "Address Resolution Protocol (ARP)" and vice versa.
func containsMatch(user, correct string) bool {
	u := textutil.Normalize(user)
	c := textutil.Normalize(correct)
	if u == "" || c == "" {
		return u == c
	}
	return strings.Contains(u, c) || strings.Contains(c, u)
}

// positionMatches zips submitted against required and counts equal pairs,
// case-insensitively. Positions beyond the shorter list count as wrong.
func positionMatches(submitted, required []string) int {
	n := len(submitted)
	if len(required) < n {
		n = len(required)
	}
	matches := 0
	for i := 0; i < n; i++ {
		if textutil.Fold(submitted[i]) == textutil.Fold(required[i]) {
			matches++
		}
	}
	return matches
}

// resolveList turns a submission into the ordered strings it denotes: an
// explicit List wins, otherwise 1-based Indices are read against the
// displayed line order. Out-of-range indices resolve to "" and grade wrong.
func resolveList(resp Response, pres *Presentation) []string {
	if len(resp.List) > 0 {
		return resp.List
	}
	if pres == nil || len(pres.ScrambledLines) == 0 {
		return nil
	}
	out := make([]string, 0, len(resp.Indices))
	for _, idx := range resp.Indices {
		if idx < 1 || idx > len(pres.ScrambledLines) {
			out = append(out, "")
			continue
		}
		out = append(out, pres.ScrambledLines[idx-1])
	}
	return out
}

// orderFeedback phrases a positional score.
func orderFeedback(matches, total int) string {
	if matches == total {
		return "Correct order."
	}
	return fmt.Sprintf("%d of %d positions correct.", matches, total)
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
