package grader

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// sequenceHint is the shared ladder for ordered exercises: the first correct
// element, then the last, then a middle one. Hints are strictly ordered,
// never repeat, and the ladder ends before the full answer is given away.
func sequenceHint(items []string, attempt int) (string, bool) {
	if len(items) == 0 {
		return "", false
	}
	switch attempt {
	case 1:
		return fmt.Sprintf("First: %s", items[0]), true
	case 2:
		if len(items) < 2 {
			return "", false
		}
		return fmt.Sprintf("Last: %s", items[len(items)-1]), true
	case 3:
		if len(items) < 4 {
			return "", false
		}
		mid := len(items) / 2
		return fmt.Sprintf("Position %d: %s", mid+1, items[mid]), true
	default:
		return "", false
	}
}

// textHint is the ladder for free-text answers: first letter, then length,
// then the first word when there is more than one.
func textHint(answer string, attempt int) (string, bool) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", false
	}
	switch attempt {
	case 1:
		r, _ := utf8.DecodeRuneInString(answer)
		return fmt.Sprintf("Starts with %q.", string(r)), true
	case 2:
		return fmt.Sprintf("%d characters.", utf8.RuneCountInString(answer)), true
	case 3:
		words := strings.Fields(answer)
		if len(words) < 2 {
			return "", false
		}
		return fmt.Sprintf("First word: %s", words[0]), true
	default:
		return "", false
	}
}

// eliminationHint rules out wrong options one at a time, in option order, so
// the ladder stays deterministic. It stops while at least two candidates
// would remain.
func eliminationHint(options []string, wrong []int, attempt int) (string, bool) {
	if attempt < 1 || attempt > len(wrong) {
		return "", false
	}
	if len(options)-attempt < 2 {
		return "", false
	}
	return fmt.Sprintf("Not: %s", options[wrong[attempt-1]]), true
}
