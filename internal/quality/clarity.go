package quality

import (
	"regexp"
	"strings"
)

// bareQuestion matches prompts like "What is X?" or "Define X" with no
// qualifying context at all.
var bareQuestion = regexp.MustCompile(`(?i)^(what is|what are|define)\s+\S+\s*\??$`)

// Phrases that make an answer unverifiable at review time.
var hedgedAnswers = []string{
	"it depends",
	"various",
	"sometimes",
	"many things",
	"and more",
	"etc.",
}

var interrogativeLead = regexp.MustCompile(
	`(?i)^(what|which|why|how|when|where|who|name|list|describe|explain|define|state|identify|compare|give)\b`)

// checkClarity penalizes vague phrasing on either side and text below the
// absolute minimum lengths. wantQuestion gates the interrogative-structure
// check; ordering and rating fronts are legitimately imperative.
func (e *Engine) checkClarity(front, back string, wantQuestion bool) []finding {
	var out []finding

	if len(strings.TrimSpace(front)) < e.cfg.FrontMinChars {
		out = append(out, finding{IssueFrontTooShort, e.cfg.PenaltyTooShort,
			"Question is too short to stand alone; add the missing context."})
	}
	if len(strings.TrimSpace(back)) < e.cfg.BackMinChars {
		out = append(out, finding{IssueBackTooShort, e.cfg.PenaltyTooShort,
			"Answer is too short to verify recall against."})
	}

	if bareQuestion.MatchString(strings.TrimSpace(front)) {
		out = append(out, finding{IssueVagueQuestion, e.cfg.PenaltyVagueQuestion,
			"Add a qualifier: bare \"What is X?\" prompts invite rote non-answers."})
	}

	lowBack := strings.ToLower(back)
	for _, h := range hedgedAnswers {
		if strings.Contains(lowBack, h) {
			out = append(out, finding{IssueVagueAnswer, e.cfg.PenaltyVagueAnswer,
				"Replace hedged wording with the specific fact."})
			break
		}
	}

	if wantQuestion && !strings.Contains(front, "?") &&
		!strings.Contains(front, "{{") &&
		!interrogativeLead.MatchString(strings.TrimSpace(front)) {
		out = append(out, finding{IssueNotAQuestion, e.cfg.PenaltyNotAQuestion,
			"Phrase the front as a question or an explicit recall instruction."})
	}
	return out
}
