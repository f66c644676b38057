package quality

import (
	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
	"github.com/Travinkel/CortexCLI-sub002/internal/textutil"
)

// checkLength enforces the two-tier word limits and the independent
// character caps. Word counts exclude code spans; a flashcard that quotes a
// router command is not penalized for the command's length.
func (e *Engine) checkLength(front, back string, k atom.Knowledge) []finding {
	var out []finding
	cfg := e.cfg

	fw := textutil.WordCount(front)
	switch {
	case fw > cfg.FrontMaxWords:
		out = append(out, finding{IssueFrontTooLong, cfg.PenaltyTooLong,
			"Shorten the question; long prompts slow every future review."})
	case fw > cfg.FrontOptimalWords:
		out = append(out, finding{IssueFrontVerbose, cfg.PenaltyVerbose,
			"Trim the question toward a single focused ask."})
	}

	backMax := cfg.BackMaxWordsConceptual
	if k == atom.KnowledgeFactual {
		backMax = cfg.BackMaxWordsFactual
	}
	bw := textutil.WordCount(back)
	switch {
	case bw > backMax:
		out = append(out, finding{IssueBackTooLong, cfg.PenaltyTooLong,
			"Cut the answer down to the single fact being tested."})
	case bw > cfg.BackOptimalWords:
		out = append(out, finding{IssueBackVerbose, cfg.PenaltyVerbose,
			"Tighten the answer; it should be terser than the question."})
	}

	if len(front) > cfg.FrontMaxChars {
		out = append(out, finding{IssueFrontCharLimit, cfg.PenaltyCharLimit,
			"Question exceeds the character cap even after word limits."})
	}
	if len(back) > cfg.BackMaxChars {
		out = append(out, finding{IssueBackCharLimit, cfg.PenaltyCharLimit,
			"Answer exceeds the character cap even after word limits."})
	}
	return out
}
