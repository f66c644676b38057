package grader

import (
	"fmt"
	"strings"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
	"github.com/Travinkel/CortexCLI-sub002/internal/textutil"
)

// fadedGrader is parsons with holes: the lines must land in order and every
// {{blank:id}} must be filled with its expected value. Credit splits 60/40
// between ordering and blanks.
type fadedGrader struct{}

func (fadedGrader) spec(a *atom.Atom) (atom.FadedPayload, bool) {
	var pl atom.FadedPayload
	if a.Decode(&pl) != nil {
		return pl, false
	}
	return pl, len(pl.Lines) >= 2 && len(pl.Blanks) >= 1
}

func (g fadedGrader) Validate(a *atom.Atom) bool {
	_, ok := g.spec(a)
	return ok
}

func (g fadedGrader) Check(a *atom.Atom, resp Response, pres *Presentation) Result {
	pl, ok := g.spec(a)
	if !ok {
		return Result{Feedback: "Malformed exercise."}
	}
	submitted := resolveList(resp, pres)
	posMatches := positionMatches(submitted, pl.Lines)
	orderExact := posMatches == len(pl.Lines) && len(submitted) == len(pl.Lines)

	blanksCorrect := 0
	for id, want := range pl.Blanks {
		if textutil.Fold(resp.Blanks[id]) == textutil.Fold(want) {
			blanksCorrect++
		}
	}
	allBlanks := blanksCorrect == len(pl.Blanks)

	if orderExact && allBlanks {
		return Result{Correct: true, Partial: 1.0, Feedback: "Correct: order and blanks."}
	}
	partial := 0.6*ratio(posMatches, len(pl.Lines)) + 0.4*ratio(blanksCorrect, len(pl.Blanks))
	return Result{
		Partial: partial,
		Feedback: fmt.Sprintf("%d of %d positions, %d of %d blanks correct.",
			posMatches, len(pl.Lines), blanksCorrect, len(pl.Blanks)),
		Reveal: g.Reveal(a),
	}
}

func (g fadedGrader) Hint(a *atom.Atom, attempt int, _ *Presentation) (string, bool) {
	pl, ok := g.spec(a)
	if !ok {
		return "", false
	}
	return sequenceHint(pl.Lines, attempt)
}

// Reveal renders the lines in order with blanks substituted in.
func (g fadedGrader) Reveal(a *atom.Atom) string {
	pl, ok := g.spec(a)
	if !ok {
		return ""
	}
	lines := make([]string, len(pl.Lines))
	for i, line := range pl.Lines {
		for id, val := range pl.Blanks {
			line = strings.ReplaceAll(line, "{{blank:"+id+"}}", val)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
