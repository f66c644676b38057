package grader

import (
	"regexp"
	"strings"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
)

// regexGrader full-matches the submission against a pattern from the
// payload. No pattern means plain exact comparison against the display
// answer; an uncompilable pattern fails validation.
type regexGrader struct{}

func (regexGrader) spec(a *atom.Atom) (atom.RegexPayload, bool) {
	var pl atom.RegexPayload
	if a.Decode(&pl) != nil {
		// No payload at all: treat the back as the display answer.
		pl = atom.RegexPayload{Answer: a.Back}
	}
	if pl.Answer == "" {
		pl.Answer = a.Back
	}
	if pl.Pattern == "" {
		return pl, pl.Answer != ""
	}
	if _, err := compileFull(pl.Pattern, pl.CaseSensitive); err != nil {
		return pl, false
	}
	return pl, true
}

func compileFull(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(`\A(?:` + pattern + `)\z`)
}

func (g regexGrader) Validate(a *atom.Atom) bool {
	_, ok := g.spec(a)
	return ok
}

func (g regexGrader) Check(a *atom.Atom, resp Response, _ *Presentation) Result {
	pl, ok := g.spec(a)
	if !ok {
		return Result{Feedback: "Malformed answer pattern.", Reveal: pl.Answer}
	}
	text := strings.TrimSpace(resp.Text)
	if pl.Pattern == "" {
		if exactMatch(text, pl.Answer) {
			return Result{Correct: true, Partial: 1.0, Feedback: "Correct."}
		}
		return Result{Feedback: "Incorrect.", Reveal: pl.Answer}
	}
	re, err := compileFull(pl.Pattern, pl.CaseSensitive)
	if err == nil && re.MatchString(text) {
		return Result{Correct: true, Partial: 1.0, Feedback: "Correct."}
	}
	return Result{Feedback: "Incorrect.", Reveal: pl.Answer}
}

func (g regexGrader) Hint(a *atom.Atom, attempt int, _ *Presentation) (string, bool) {
	pl, _ := g.spec(a)
	return textHint(pl.Answer, attempt)
}

func (g regexGrader) Reveal(a *atom.Atom) string {
	pl, _ := g.spec(a)
	return pl.Answer
}
