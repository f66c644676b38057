package grader

import (
	"fmt"
	"strconv"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
)

// scriptConcordanceGrader scores diagnostic judgments on the -2..+2 Likert
// scale. "Correct" means within one step of the expert consensus. Partial
// credit comes from the expert response distribution when one is supplied,
// otherwise from linear distance to consensus — the two deliberately
// disagree when the panel was split, and that divergence is kept.
type scriptConcordanceGrader struct{}

func (scriptConcordanceGrader) spec(a *atom.Atom) (atom.ScriptConcordancePayload, bool) {
	var pl atom.ScriptConcordancePayload
	if a.Decode(&pl) != nil {
		return pl, false
	}
	return pl, pl.Consensus >= -2 && pl.Consensus <= 2
}

func (g scriptConcordanceGrader) Validate(a *atom.Atom) bool {
	_, ok := g.spec(a)
	return ok
}

func (g scriptConcordanceGrader) Check(a *atom.Atom, resp Response, _ *Presentation) Result {
	pl, ok := g.spec(a)
	if !ok {
		return Result{Feedback: "Malformed consensus spec."}
	}
	user := resp.Scale
	if user < -2 || user > 2 {
		return Result{Feedback: "Answer on the -2..+2 scale.", Reveal: g.Reveal(a)}
	}
	dist := user - pl.Consensus
	if dist < 0 {
		dist = -dist
	}
	acceptable := dist <= 1

	// Partial credit is computed independently of the acceptability flag:
	// with a histogram it is the share of experts who picked the same value,
	// so an acceptable answer can still earn low credit when the panel was
	// split. Callers that need the invariant Correct => Partial==1 must not
	// rely on it for this exercise type.
	var partial float64
	if total := pl.TotalExperts(); total > 0 {
		partial = float64(pl.ExpertsAt(user)) / float64(total)
	} else {
		partial = 1 - 0.25*float64(dist)
		if partial < 0 {
			partial = 0
		}
	}

	res := Result{
		Correct: acceptable,
		Partial: partial,
		Reveal:  g.Reveal(a),
	}
	if acceptable {
		res.Feedback = "Within the expert consensus range."
	} else {
		res.Feedback = fmt.Sprintf("Outside consensus: experts settled on %+d.", pl.Consensus)
	}
	return res
}

func (g scriptConcordanceGrader) Hint(a *atom.Atom, attempt int, _ *Presentation) (string, bool) {
	pl, ok := g.spec(a)
	if !ok {
		return "", false
	}
	switch attempt {
	case 1:
		if pl.Consensus > 0 {
			return "The expert panel leaned positive.", true
		}
		if pl.Consensus < 0 {
			return "The expert panel leaned negative.", true
		}
		return "The expert panel was neutral.", true
	default:
		return "", false
	}
}

func (g scriptConcordanceGrader) Reveal(a *atom.Atom) string {
	pl, ok := g.spec(a)
	if !ok {
		return ""
	}
	return "Expert consensus: " + strconv.FormatInt(int64(pl.Consensus), 10)
}
