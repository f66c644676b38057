package grader

import (
	"fmt"
	"strings"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
	"github.com/Travinkel/CortexCLI-sub002/internal/textutil"
)

// matchingGrader pairs terms with definitions. The submission maps each term
// index to a position in the displayed (shuffled) definition list; every
// term must land on its own definition.
type matchingGrader struct{}

func (matchingGrader) pairs(a *atom.Atom) []atom.Pair {
	var pl atom.MatchingPayload
	if a.Decode(&pl) != nil {
		return nil
	}
	return pl.Pairs
}

func (g matchingGrader) Validate(a *atom.Atom) bool {
	return len(g.pairs(a)) >= 2
}

func (g matchingGrader) Check(a *atom.Atom, resp Response, pres *Presentation) Result {
	pairs := g.pairs(a)
	correct := 0
	for term, defIdx := range resp.Mapping {
		if term < 0 || term >= len(pairs) {
			continue
		}
		var picked string
		if pres != nil && len(pres.ShuffledDefs) == len(pairs) {
			if defIdx < 0 || defIdx >= len(pres.ShuffledDefs) {
				continue
			}
			picked = pres.ShuffledDefs[defIdx]
		} else {
			// no shuffle state: definitions shown in pair order
			if defIdx < 0 || defIdx >= len(pairs) {
				continue
			}
			picked = pairs[defIdx].Definition
		}
		if textutil.Fold(picked) == textutil.Fold(pairs[term].Definition) {
			correct++
		}
	}
	if correct == len(pairs) && len(resp.Mapping) == len(pairs) {
		return Result{Correct: true, Partial: 1.0, Feedback: "All pairs matched."}
	}
	return Result{
		Partial:  ratio(correct, len(pairs)),
		Feedback: fmt.Sprintf("%d of %d pairs matched.", correct, len(pairs)),
		Reveal:   g.Reveal(a),
	}
}

func (g matchingGrader) Hint(a *atom.Atom, attempt int, _ *Presentation) (string, bool) {
	pairs := g.pairs(a)
	if len(pairs) == 0 {
		return "", false
	}
	switch attempt {
	case 1:
		return fmt.Sprintf("%s — %s", pairs[0].Term, pairs[0].Definition), true
	case 2:
		if len(pairs) < 3 {
			return "", false
		}
		last := pairs[len(pairs)-1]
		return fmt.Sprintf("%s — %s", last.Term, last.Definition), true
	default:
		return "", false
	}
}

func (g matchingGrader) Reveal(a *atom.Atom) string {
	pairs := g.pairs(a)
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.Term + " — " + p.Definition
	}
	return strings.Join(parts, "; ")
}
