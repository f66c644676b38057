package grader

import (
	"fmt"
	"strings"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
	"github.com/Travinkel/CortexCLI-sub002/internal/textutil"
)

// distractorGrader is parsons with bait: the learner assembles the correct
// lines in order and leaves every distractor in the discard pile. Credit is
// split 60/40 between ordering and discard judgment.
type distractorGrader struct{}

func (distractorGrader) spec(a *atom.Atom) (atom.DistractorPayload, bool) {
	var pl atom.DistractorPayload
	if a.Decode(&pl) != nil {
		return pl, false
	}
	return pl, len(pl.Items) >= 2 && len(pl.Distractors) >= 1
}

func (g distractorGrader) Validate(a *atom.Atom) bool {
	_, ok := g.spec(a)
	return ok
}

func (g distractorGrader) Check(a *atom.Atom, resp Response, pres *Presentation) Result {
	pl, ok := g.spec(a)
	if !ok {
		return Result{Feedback: "Malformed exercise."}
	}
	selected := resolveList(resp, pres)

	posMatches := positionMatches(selected, pl.Items)
	exactOrder := posMatches == len(pl.Items) && len(selected) == len(pl.Items)

	chosen := map[string]bool{}
	for _, s := range selected {
		chosen[textutil.Fold(s)] = true
	}
	distractorsPicked := 0
	for _, d := range pl.Distractors {
		if chosen[textutil.Fold(d)] {
			distractorsPicked++
		}
	}
	itemsDiscarded := 0
	for _, it := range pl.Items {
		if !chosen[textutil.Fold(it)] {
			itemsDiscarded++
		}
	}
	correctlyDiscarded := len(pl.Distractors) - distractorsPicked

	if exactOrder && distractorsPicked == 0 {
		return Result{Correct: true, Partial: 1.0, Feedback: "Correct: right lines, right order."}
	}

	discardScore := float64(correctlyDiscarded-itemsDiscarded) / float64(len(pl.Distractors))
	if discardScore < 0 {
		discardScore = 0
	}
	partial := 0.6*ratio(posMatches, len(pl.Items)) + 0.4*discardScore
	fb := fmt.Sprintf("%d of %d positions correct", posMatches, len(pl.Items))
	if distractorsPicked > 0 {
		fb += fmt.Sprintf("; %d distractor(s) included", distractorsPicked)
	}
	return Result{
		Partial:  partial,
		Feedback: fb + ".",
		Reveal:   strings.Join(pl.Items, " → "),
	}
}

func (g distractorGrader) Hint(a *atom.Atom, attempt int, _ *Presentation) (string, bool) {
	pl, ok := g.spec(a)
	if !ok {
		return "", false
	}
	switch attempt {
	case 1:
		return fmt.Sprintf("First: %s", pl.Items[0]), true
	case 2:
		return fmt.Sprintf("Last: %s", pl.Items[len(pl.Items)-1]), true
	case 3:
		return fmt.Sprintf("Discard: %s", pl.Distractors[0]), true
	default:
		return "", false
	}
}

func (g distractorGrader) Reveal(a *atom.Atom) string {
	pl, _ := g.spec(a)
	return strings.Join(pl.Items, " → ")
}
