package grader

import (
	"fmt"
	"strings"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
)

// confidenceGrader grades the answer by plain string equality and reports
// calibration error — the gap between stated confidence and the outcome —
// as feedback only. Calibration never changes correctness.
type confidenceGrader struct{}

func (confidenceGrader) Validate(a *atom.Atom) bool {
	return strings.TrimSpace(a.Front) != "" && strings.TrimSpace(a.Back) != ""
}

func (confidenceGrader) Check(a *atom.Atom, resp Response, _ *Presentation) Result {
	correct := exactMatch(resp.Text, a.Back)
	outcome := 0
	if correct {
		outcome = 100
	}
	calErr := resp.Confidence - outcome
	if calErr < 0 {
		calErr = -calErr
	}
	fb := fmt.Sprintf("Calibration error: %d (stated %d%%).", calErr, resp.Confidence)
	if correct {
		return Result{Correct: true, Partial: 1.0, Feedback: "Correct. " + fb}
	}
	return Result{Feedback: "Incorrect. " + fb, Reveal: a.Back}
}

func (confidenceGrader) Hint(a *atom.Atom, attempt int, _ *Presentation) (string, bool) {
	return textHint(a.Back, attempt)
}

func (confidenceGrader) Reveal(a *atom.Atom) string { return a.Back }

// effortGrader records a 1..5 self-report of mental effort. There is no
// wrong answer; out-of-range input just asks again.
type effortGrader struct{}

func (effortGrader) Validate(a *atom.Atom) bool {
	return strings.TrimSpace(a.Front) != ""
}

func (effortGrader) Check(_ *atom.Atom, resp Response, _ *Presentation) Result {
	if resp.Scale < 1 || resp.Scale > 5 {
		return Result{Feedback: "Rate effort from 1 to 5."}
	}
	return Result{
		Correct:  true,
		Partial:  1.0,
		Feedback: fmt.Sprintf("Effort %d/5 recorded.", resp.Scale),
	}
}

func (effortGrader) Hint(_ *atom.Atom, _ int, _ *Presentation) (string, bool) {
	return "", false
}

func (effortGrader) Reveal(_ *atom.Atom) string { return "" }
