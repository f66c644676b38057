package grader

import (
	"fmt"
	"strings"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
)

// chosenOption maps the first submitted index through the displayed shuffle
// back to the original option position.
func chosenOption(resp Response, pres *Presentation, n int) (int, bool) {
	if len(resp.Indices) == 0 {
		return 0, false
	}
	return mapOption(resp.Indices[0], pres, n)
}

func mapOption(displayIdx int, pres *Presentation, n int) (int, bool) {
	if displayIdx < 1 || displayIdx > n {
		return 0, false
	}
	if pres != nil && len(pres.ShuffledOptions) == n {
		return pres.ShuffledOptions[displayIdx-1], true
	}
	return displayIdx - 1, true
}

// optionTexts returns the option texts plus the indices of wrong options,
// in option order, for the elimination hint ladder.
func optionTexts(pl atom.ChoicePayload) ([]string, []int) {
	texts := make([]string, len(pl.Options))
	var wrong []int
	for i, o := range pl.Options {
		texts[i] = o.Text
		if !o.Correct {
			wrong = append(wrong, i)
		}
	}
	return texts, wrong
}

// choiceGrader handles single- and multi-select MCQ. Multi-select demands
// the exact set of flagged options; supersets and subsets never count.
type choiceGrader struct{}

func (choiceGrader) Validate(a *atom.Atom) bool {
	var pl atom.ChoicePayload
	if a.Decode(&pl) != nil {
		return false
	}
	// A question with no flagged option still validates: grading falls back
	// to the explanation text and marks every selection incorrect. That is
	// a known upstream data-quality wart, kept as-is rather than papered
	// over with a guess at the intended key.
	return len(pl.Options) >= 2
}

func (choiceGrader) Check(a *atom.Atom, resp Response, pres *Presentation) Result {
	var pl atom.ChoicePayload
	if a.Decode(&pl) != nil {
		return Result{Feedback: "Malformed option list."}
	}
	correct := pl.CorrectIndices()
	if len(correct) == 0 {
		return Result{
			Feedback: "No answer key for this question.",
			Reveal:   pl.Explanation,
		}
	}

	chosen := map[int]bool{}
	for _, idx := range resp.Indices {
		orig, ok := mapOption(idx, pres, len(pl.Options))
		if !ok {
			return Result{Feedback: "Selection out of range.", Reveal: revealOptions(pl, correct)}
		}
		chosen[orig] = true
	}

	want := len(correct)
	if pl.RequiredCount > 0 {
		want = pl.RequiredCount
	}
	ok := len(chosen) == want && len(chosen) == len(correct)
	if ok {
		for _, c := range correct {
			if !chosen[c] {
				ok = false
				break
			}
		}
	}
	if ok {
		return Result{Correct: true, Partial: 1.0, Feedback: "Correct.", Explanation: pl.Explanation}
	}
	return Result{
		Feedback:    "Incorrect.",
		Reveal:      revealOptions(pl, correct),
		Explanation: pl.Explanation,
	}
}

func (choiceGrader) Hint(a *atom.Atom, attempt int, _ *Presentation) (string, bool) {
	var pl atom.ChoicePayload
	if a.Decode(&pl) != nil {
		return "", false
	}
	texts, wrong := optionTexts(pl)
	return eliminationHint(texts, wrong, attempt)
}

func (choiceGrader) Reveal(a *atom.Atom) string {
	var pl atom.ChoicePayload
	if a.Decode(&pl) != nil {
		return ""
	}
	correct := pl.CorrectIndices()
	if len(correct) == 0 {
		return pl.Explanation
	}
	return revealOptions(pl, correct)
}

func revealOptions(pl atom.ChoicePayload, idx []int) string {
	parts := make([]string, len(idx))
	for i, c := range idx {
		parts[i] = pl.Options[c].Text
	}
	return strings.Join(parts, ", ")
}

// trueFalseGrader grades a boolean answer given as T/F/true/false.
type trueFalseGrader struct{}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t", "true", "yes", "y":
		return true, true
	case "f", "false", "no", "n":
		return false, true
	}
	return false, false
}

func (trueFalseGrader) Validate(a *atom.Atom) bool {
	_, ok := parseBool(a.Back)
	return ok
}

func (trueFalseGrader) Check(a *atom.Atom, resp Response, _ *Presentation) Result {
	want, _ := parseBool(a.Back)
	got, ok := parseBool(resp.Text)
	if !ok {
		return Result{Feedback: "Answer true or false.", Reveal: a.Back}
	}
	if got == want {
		return Result{Correct: true, Partial: 1.0, Feedback: "Correct."}
	}
	return Result{Feedback: "Incorrect.", Reveal: a.Back}
}

func (trueFalseGrader) Hint(_ *atom.Atom, _ int, _ *Presentation) (string, bool) {
	// A hint for a binary question is the answer.
	return "", false
}

func (trueFalseGrader) Reveal(a *atom.Atom) string { return a.Back }

// keyFeatureGrader asks for exactly the k critical options out of n. Credit
// accrues per key option found; picking wrong options costs the missed keys.
type keyFeatureGrader struct{}

func (keyFeatureGrader) Validate(a *atom.Atom) bool {
	var pl atom.KeyFeaturePayload
	if a.Decode(&pl) != nil {
		return false
	}
	if len(pl.Options) < 2 || len(pl.Key) == 0 {
		return false
	}
	for _, k := range pl.Key {
		if k < 0 || k >= len(pl.Options) {
			return false
		}
	}
	return pl.RequiredCount == 0 || pl.RequiredCount == len(pl.Key)
}

func (keyFeatureGrader) Check(a *atom.Atom, resp Response, _ *Presentation) Result {
	var pl atom.KeyFeaturePayload
	if a.Decode(&pl) != nil {
		return Result{Feedback: "Malformed key-feature spec."}
	}
	required := pl.RequiredCount
	if required == 0 {
		required = len(pl.Key)
	}
	key := map[int]bool{}
	for _, k := range pl.Key {
		key[k] = true
	}
	chosen := map[int]bool{}
	for _, idx := range resp.Indices {
		if idx >= 1 && idx <= len(pl.Options) {
			chosen[idx-1] = true
		}
	}
	hits := 0
	for c := range chosen {
		if key[c] {
			hits++
		}
	}
	if hits == required && len(chosen) == required {
		return Result{Correct: true, Partial: 1.0, Feedback: "All key features identified."}
	}
	return Result{
		Partial:  ratio(hits, required),
		Feedback: fmt.Sprintf("%d of %d key features identified.", hits, required),
		Reveal:   revealKeyFeatures(pl),
	}
}

func (keyFeatureGrader) Hint(a *atom.Atom, attempt int, _ *Presentation) (string, bool) {
	var pl atom.KeyFeaturePayload
	if a.Decode(&pl) != nil {
		return "", false
	}
	var wrong []int
	key := map[int]bool{}
	for _, k := range pl.Key {
		key[k] = true
	}
	for i := range pl.Options {
		if !key[i] {
			wrong = append(wrong, i)
		}
	}
	return eliminationHint(pl.Options, wrong, attempt)
}

func (keyFeatureGrader) Reveal(a *atom.Atom) string {
	var pl atom.KeyFeaturePayload
	if a.Decode(&pl) != nil {
		return ""
	}
	return revealKeyFeatures(pl)
}

func revealKeyFeatures(pl atom.KeyFeaturePayload) string {
	parts := make([]string, 0, len(pl.Key))
	for _, k := range pl.Key {
		if k >= 0 && k < len(pl.Options) {
			parts = append(parts, pl.Options[k])
		}
	}
	return strings.Join(parts, ", ")
}
