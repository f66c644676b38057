package grader

import (
	"strings"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
)

// flashcardGrader accepts an answer when either normalized side contains the
// other; flashcards are self-checked recall, not dictation.
type flashcardGrader struct{}

func (flashcardGrader) Validate(a *atom.Atom) bool {
	return strings.TrimSpace(a.Front) != "" && strings.TrimSpace(a.Back) != ""
}

func (flashcardGrader) Check(a *atom.Atom, resp Response, _ *Presentation) Result {
	if containsMatch(resp.Text, a.Back) {
		return Result{Correct: true, Partial: 1.0, Feedback: "Correct."}
	}
	return Result{Feedback: "Not quite.", Reveal: a.Back}
}

func (flashcardGrader) Hint(a *atom.Atom, attempt int, _ *Presentation) (string, bool) {
	return textHint(a.Back, attempt)
}

func (flashcardGrader) Reveal(a *atom.Atom) string { return a.Back }

// shortAnswerGrader is the strict variant: case-insensitive trim-compare.
type shortAnswerGrader struct{}

func (shortAnswerGrader) Validate(a *atom.Atom) bool {
	return strings.TrimSpace(a.Front) != "" && strings.TrimSpace(a.Back) != ""
}

func (shortAnswerGrader) Check(a *atom.Atom, resp Response, _ *Presentation) Result {
	if exactMatch(resp.Text, a.Back) {
		return Result{Correct: true, Partial: 1.0, Feedback: "Correct."}
	}
	return Result{Feedback: "Incorrect.", Reveal: a.Back}
}

func (shortAnswerGrader) Hint(a *atom.Atom, attempt int, _ *Presentation) (string, bool) {
	return textHint(a.Back, attempt)
}

func (shortAnswerGrader) Reveal(a *atom.Atom) string { return a.Back }

// clozeGrader grades the deleted span with flashcard-style containment.
type clozeGrader struct{}

func (clozeGrader) Validate(a *atom.Atom) bool {
	return strings.TrimSpace(a.Front) != "" && strings.TrimSpace(a.ClozeAnswer()) != ""
}

func (clozeGrader) Check(a *atom.Atom, resp Response, _ *Presentation) Result {
	answer := a.ClozeAnswer()
	if containsMatch(resp.Text, answer) {
		return Result{Correct: true, Partial: 1.0, Feedback: "Correct."}
	}
	return Result{Feedback: "Not quite.", Reveal: answer}
}

func (clozeGrader) Hint(a *atom.Atom, attempt int, _ *Presentation) (string, bool) {
	return textHint(a.ClozeAnswer(), attempt)
}

func (clozeGrader) Reveal(a *atom.Atom) string { return a.ClozeAnswer() }

// clozeDropdownGrader grades a selection from a fixed option list; the
// chosen option must match the flagged one exactly.
type clozeDropdownGrader struct{}

func (clozeDropdownGrader) Validate(a *atom.Atom) bool {
	var pl atom.ChoicePayload
	if a.Decode(&pl) != nil {
		return false
	}
	return len(pl.Options) >= 2 && len(pl.CorrectIndices()) == 1
}

func (clozeDropdownGrader) Check(a *atom.Atom, resp Response, pres *Presentation) Result {
	var pl atom.ChoicePayload
	if a.Decode(&pl) != nil {
		return Result{Feedback: "Malformed option list."}
	}
	correct := pl.CorrectIndices()
	chosen, ok := chosenOption(resp, pres, len(pl.Options))
	if !ok {
		return Result{Feedback: "No option selected.", Reveal: pl.Options[correct[0]].Text}
	}
	if chosen == correct[0] {
		return Result{Correct: true, Partial: 1.0, Feedback: "Correct."}
	}
	return Result{
		Feedback:    "Incorrect.",
		Reveal:      pl.Options[correct[0]].Text,
		Explanation: pl.Explanation,
	}
}

func (clozeDropdownGrader) Hint(a *atom.Atom, attempt int, _ *Presentation) (string, bool) {
	var pl atom.ChoicePayload
	if a.Decode(&pl) != nil {
		return "", false
	}
	texts, wrong := optionTexts(pl)
	return eliminationHint(texts, wrong, attempt)
}

func (clozeDropdownGrader) Reveal(a *atom.Atom) string {
	var pl atom.ChoicePayload
	if a.Decode(&pl) != nil {
		return ""
	}
	if c := pl.CorrectIndices(); len(c) > 0 {
		return pl.Options[c[0]].Text
	}
	return pl.Explanation
}
