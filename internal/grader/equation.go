package grader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
)

// equationGrader checks balancing coefficients compound by compound; every
// coefficient must match exactly for full credit.
type equationGrader struct{}

func (equationGrader) spec(a *atom.Atom) (atom.EquationPayload, bool) {
	var pl atom.EquationPayload
	if a.Decode(&pl) != nil {
		return pl, false
	}
	return pl, len(pl.Coefficients) >= 1
}

func (g equationGrader) Validate(a *atom.Atom) bool {
	_, ok := g.spec(a)
	return ok
}

func (g equationGrader) Check(a *atom.Atom, resp Response, _ *Presentation) Result {
	pl, ok := g.spec(a)
	if !ok {
		return Result{Feedback: "Malformed equation spec."}
	}
	matched := 0
	for compound, want := range pl.Coefficients {
		if got, present := resp.Coefficients[compound]; present && got == want {
			matched++
		}
	}
	total := len(pl.Coefficients)
	if matched == total {
		return Result{Correct: true, Partial: 1.0, Feedback: "Balanced."}
	}
	return Result{
		Partial:  ratio(matched, total),
		Feedback: fmt.Sprintf("%d of %d coefficients correct.", matched, total),
		Reveal:   g.Reveal(a),
	}
}

func (g equationGrader) Hint(a *atom.Atom, attempt int, _ *Presentation) (string, bool) {
	pl, ok := g.spec(a)
	if !ok {
		return "", false
	}
	compounds := sortedCompounds(pl)
	switch attempt {
	case 1:
		return fmt.Sprintf("%d compounds to balance.", len(compounds)), true
	case 2:
		c := compounds[0]
		return fmt.Sprintf("%s has coefficient %d.", c, pl.Coefficients[c]), true
	default:
		return "", false
	}
}

func (g equationGrader) Reveal(a *atom.Atom) string {
	pl, ok := g.spec(a)
	if !ok {
		return ""
	}
	compounds := sortedCompounds(pl)
	parts := make([]string, len(compounds))
	for i, c := range compounds {
		parts[i] = fmt.Sprintf("%d %s", pl.Coefficients[c], c)
	}
	return strings.Join(parts, ", ")
}

func sortedCompounds(pl atom.EquationPayload) []string {
	out := make([]string, 0, len(pl.Coefficients))
	for c := range pl.Coefficients {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
