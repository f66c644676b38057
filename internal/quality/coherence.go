package quality

import "regexp"

// Signatures of broken LLM output. A hit here is not "suboptimal text", it
// is text that never made it out of generation intact, so the penalty sits
// in the hard-reject tier.
var malformedSignatures = []*regexp.Regexp{
	// repeated punctuation: ",," "??" "!!" or an ellipsis
	regexp.MustCompile(`,,|\?\?|!!|\.{3,}`),
	// a WH-word immediately followed by a capitalized article mid-sentence
	// usually marks a dropped clause: "What The router ..."
	regexp.MustCompile(`\b(What|Which|Why|How|When|Where|Who)\s+(The|A|An)\b`),
	// generic placeholder questions the generator emits when it loses the topic
	regexp.MustCompile(`(?i)\bwhat is (this|it|that)\s*\?`),
}

// clozeSpan matches {{...}} blank markup, which carries literal dots and
// must not read as an ellipsis.
var clozeSpan = regexp.MustCompile(`\{\{[^}]*\}\}`)

// checkCoherence scans both sides for generation artifacts.
func (e *Engine) checkCoherence(front, back string) []finding {
	front = clozeSpan.ReplaceAllString(front, " ")
	back = clozeSpan.ReplaceAllString(back, " ")
	for _, sig := range malformedSignatures {
		if sig.MatchString(front) || sig.MatchString(back) {
			return []finding{{IssueMalformedText, e.cfg.PenaltyMalformed,
				"Regenerate this atom; the text carries generation artifacts."}}
		}
	}
	return nil
}
