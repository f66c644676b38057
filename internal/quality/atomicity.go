package quality

import (
	"regexp"
	"strings"

	"github.com/Travinkel/CortexCLI-sub002/internal/textutil"
)

// Connective phrases that join discrete facts into one answer. Atomicity is
// the strongest correctness signal the engine has, so any of these flags
// the back as multi-fact.
var multiFactConnectives = []string{
	"and also",
	"additionally",
	"furthermore",
	"in addition",
	"as well as",
	"; ",
}

var compoundQuestion = regexp.MustCompile(`(?i)\band (what|how|why|when|which)\b`)

// checkAtomicity detects backs that carry more than one fact and fronts
// that embed more than one question.
func (e *Engine) checkAtomicity(front, back string) []finding {
	var out []finding
	lowBack := strings.ToLower(back)

	multi := false
	for _, c := range multiFactConnectives {
		if strings.Contains(lowBack, c) {
			multi = true
			break
		}
	}
	if !multi && textutil.SentenceCount(back) > 2 {
		multi = true
	}
	if multi {
		out = append(out, finding{IssueMultipleFacts, e.cfg.PenaltyMultipleFacts,
			"Split this answer: each atom should test exactly one fact."})
	}

	if textutil.ListLines(back) >= 2 {
		out = append(out, finding{IssueListInAnswer, e.cfg.PenaltyListInAnswer,
			"An enumerated answer belongs in a list-recall exercise, not a flashcard."})
	}

	if strings.Count(front, "?") > 1 || compoundQuestion.MatchString(front) {
		out = append(out, finding{IssueMultiQuestion, e.cfg.PenaltyMultiQuestion,
			"Ask one question per atom; split the compound prompt."})
	}
	return out
}
