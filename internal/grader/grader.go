// Package grader checks submitted answers against an atom's correct-answer
// spec. There is one Grader per exercise family behind a single interface,
// selected through a static table; no global mutable registry. Graders are
// pure: any shuffle state lives in a caller-owned Presentation value, so two
// learners can grade the same atom concurrently.
package grader

import (
	"math/rand"
	"strings"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
)

// Result is the verdict for one submission. Partial is always in [0,1] and
// equals 1.0 whenever Correct is true.
type Result struct {
	Correct     bool    `json:"correct"`
	Partial     float64 `json:"partial_score"`
	Feedback    string  `json:"feedback"`
	Reveal      string  `json:"reveal,omitempty"`
	Explanation string  `json:"explanation,omitempty"`
	DontKnow    bool    `json:"dont_know,omitempty"`
}

// Response is the structured shape the presentation layer collected. Each
// grader reads only the fields its exercise family uses.
type Response struct {
	Text         string            // free text, numeric literals, T/F
	Indices      []int             // 1-based selections against the displayed order
	List         []string          // ordered free-text entries
	Mapping      map[int]int       // matching: term index -> displayed definition index
	Assignment   map[string]string // categorization: item -> category
	Blanks       map[string]string // faded parsons: blank id -> entered value
	Coefficients map[string]int    // equation balancing
	Scale        int               // script concordance (-2..+2), effort rating
	Confidence   int               // 0..100, confidence slider
	Skip         bool              // nothing to grade against; never penalized
}

// Presentation is the caller-owned display state for index-based answers.
// Graders read it and never write it; the atom itself stays untouched.
type Presentation struct {
	ShuffledOptions []int    // displayed position -> original option index
	ShuffledDefs    []string // matching definitions in displayed order
	ScrambledLines  []string // sequence items in displayed order
}

// Shuffle builds the display state for an atom from a caller-supplied seed.
// The same seed always yields the same layout, which keeps review sessions
// resumable and tests exact.
func Shuffle(a *atom.Atom, seed int64) *Presentation {
	rng := rand.New(rand.NewSource(seed))
	p := &Presentation{}
	switch a.Type {
	case atom.TypeMultipleChoice, atom.TypeClozeDropdown:
		var pl atom.ChoicePayload
		if a.Decode(&pl) == nil {
			p.ShuffledOptions = rng.Perm(len(pl.Options))
		}
	case atom.TypeMatching:
		var pl atom.MatchingPayload
		if a.Decode(&pl) == nil {
			p.ShuffledDefs = make([]string, len(pl.Pairs))
			for disp, orig := range rng.Perm(len(pl.Pairs)) {
				p.ShuffledDefs[disp] = pl.Pairs[orig].Definition
			}
		}
	case atom.TypeParsons, atom.TypeRanking, atom.TypeSQLClauseOrdering:
		var pl atom.SequencePayload
		if a.Decode(&pl) == nil {
			p.ScrambledLines = permuted(pl.Items, rng)
		}
	case atom.TypeDistractorParsons:
		var pl atom.DistractorPayload
		if a.Decode(&pl) == nil {
			all := append(append([]string{}, pl.Items...), pl.Distractors...)
			p.ScrambledLines = permuted(all, rng)
		}
	case atom.TypeFadedParsons:
		var pl atom.FadedPayload
		if a.Decode(&pl) == nil {
			p.ScrambledLines = permuted(pl.Lines, rng)
		}
	case atom.TypeTimelineOrdering:
		var pl atom.TimelinePayload
		if a.Decode(&pl) == nil {
			names := make([]string, len(pl.Events))
			for i, ev := range pl.Events {
				names[i] = ev.Name
			}
			p.ScrambledLines = permuted(names, rng)
		}
	}
	return p
}

func permuted(items []string, rng *rand.Rand) []string {
	out := make([]string, len(items))
	for disp, orig := range rng.Perm(len(items)) {
		out[disp] = items[orig]
	}
	return out
}

// Grader is the per-exercise-type contract. Callers must check Validate
// before Check; behavior on an invalid atom is unspecified but never a
// panic in the built-in graders.
type Grader interface {
	// Validate reports whether the atom carries the fields this grader needs.
	Validate(a *atom.Atom) bool
	// Check grades one submission.
	Check(a *atom.Atom, resp Response, pres *Presentation) Result
	// Hint returns the hint for the given 1-based attempt number; the second
	// return is false once the ladder is exhausted.
	Hint(a *atom.Atom, attempt int, pres *Presentation) (string, bool)
	// Reveal renders the correct answer for display.
	Reveal(a *atom.Atom) string
}

// graders is the sealed dispatch table. Built once; read-only afterwards.
var graders = map[atom.Type]Grader{
	atom.TypeFlashcard:         flashcardGrader{},
	atom.TypeShortAnswer:       shortAnswerGrader{},
	atom.TypeShortAnswerRegex:  regexGrader{},
	atom.TypeCloze:             clozeGrader{},
	atom.TypeClozeDropdown:     clozeDropdownGrader{},
	atom.TypeMultipleChoice:    choiceGrader{},
	atom.TypeTrueFalse:         trueFalseGrader{},
	atom.TypeKeyFeature:        keyFeatureGrader{},
	atom.TypeParsons:           sequenceGrader{},
	atom.TypeRanking:           sequenceGrader{},
	atom.TypeSQLClauseOrdering: sequenceGrader{},
	atom.TypeDistractorParsons: distractorGrader{},
	atom.TypeFadedParsons:      fadedGrader{},
	atom.TypeListRecall:        listRecallGrader{},
	atom.TypeOrderedListRecall: orderedRecallGrader{},
	atom.TypeCategorization:    categorizationGrader{},
	atom.TypeMatching:          matchingGrader{},
	atom.TypeNumeric:           numericGrader{},
	atom.TypeEquationBalancing: equationGrader{},
	atom.TypeTimelineOrdering:  timelineGrader{},
	atom.TypeScriptConcordance: scriptConcordanceGrader{},
	atom.TypeConfidenceSlider:  confidenceGrader{},
	atom.TypeEffortRating:      effortGrader{},
}

// For returns the grader for an exercise type.
func For(t atom.Type) (Grader, bool) {
	g, ok := graders[t]
	return g, ok
}

// dontKnowSentinels are the explicit abstentions, compared case-insensitively
// after trimming.
var dontKnowSentinels = map[string]bool{
	"?":          true,
	"idk":        true,
	"dk":         true,
	"don't know": true,
	"dont know":  true,
}

// IsDontKnow reports whether the text is an explicit abstention.
func IsDontKnow(text string) bool {
	return dontKnowSentinels[strings.ToLower(strings.TrimSpace(text))]
}

// Check runs the uniform sentinel pre-check and then the type-specific
// grader. This is the entry point the study loop uses.
func Check(a *atom.Atom, resp Response, pres *Presentation) Result {
	g, ok := For(a.Type)
	if !ok {
		return Result{Feedback: "no grader for type " + string(a.Type)}
	}
	if resp.Skip {
		return Result{Correct: true, Partial: 1.0, Feedback: "skipped"}
	}
	if IsDontKnow(resp.Text) {
		return Result{
			DontKnow: true,
			Feedback: "Marked as not known.",
			Reveal:   g.Reveal(a),
		}
	}
	return g.Check(a, resp, pres)
}

// Hint dispatches to the type-specific hint ladder after the same type
// lookup as Check.
func Hint(a *atom.Atom, attempt int, pres *Presentation) (string, bool) {
	g, ok := For(a.Type)
	if !ok {
		return "", false
	}
	return g.Hint(a, attempt, pres)
}
