package atom

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// Option is one selectable choice for MCQ-style exercises.
type Option struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// ChoicePayload backs multiple_choice and cloze_dropdown atoms.
type ChoicePayload struct {
	Options       []Option `json:"options"`
	RequiredCount int      `json:"required_count,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
}

// CorrectIndices returns the positions flagged correct, in option order.
func (p ChoicePayload) CorrectIndices() []int {
	var out []int
	for i, o := range p.Options {
		if o.Correct {
			out = append(out, i)
		}
	}
	return out
}

// Pair is one term/definition pairing for matching atoms.
type Pair struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// MatchingPayload backs matching atoms.
type MatchingPayload struct {
	Pairs []Pair `json:"pairs"`
}

// SequencePayload backs parsons, ranking and sql_clause_ordering atoms: the
// items in their one correct order.
type SequencePayload struct {
	Items []string `json:"items"`
}

// DistractorPayload backs distractor_parsons: the correct ordered lines plus
// lines that belong in the discard pile.
type DistractorPayload struct {
	Items       []string `json:"items"`
	Distractors []string `json:"distractors"`
}

// FadedPayload backs faded_parsons: ordered lines that may embed {{blank:id}}
// markers, plus the expected value for each blank id.
type FadedPayload struct {
	Lines  []string          `json:"lines"`
	Blanks map[string]string `json:"blanks"`
}

// RecallPayload backs list_recall and ordered_list_recall.
type RecallPayload struct {
	Items []string `json:"items"`
}

// CategorizationPayload backs categorization: category name to its members.
type CategorizationPayload struct {
	Categories map[string][]string `json:"categories"`
}

// ItemCount returns the total number of categorized items.
func (p CategorizationPayload) ItemCount() int {
	n := 0
	for _, items := range p.Categories {
		n += len(items)
	}
	return n
}

// NumericPayload backs numeric atoms. Answer stays a string so binary, hex,
// dotted-quad and CIDR forms survive until normalization. Tolerance is a
// fraction of the correct magnitude and applies to float comparisons only.
type NumericPayload struct {
	Answer    string  `json:"answer"`
	Tolerance float64 `json:"tolerance,omitempty"`
}

// EquationPayload backs equation_balancing: compound to integer coefficient.
type EquationPayload struct {
	Coefficients map[string]int `json:"coefficients"`
}

// TimelineEvent is one dated event for timeline_ordering atoms.
type TimelineEvent struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

// TimelinePayload backs timeline_ordering.
type TimelinePayload struct {
	Events []TimelineEvent `json:"events"`
}

// KeyFeaturePayload backs key_feature: pick exactly RequiredCount of the
// options, and only the ones flagged key.
type KeyFeaturePayload struct {
	Options       []string `json:"options"`
	Key           []int    `json:"key"`
	RequiredCount int      `json:"required_count"`
}

// ScriptConcordancePayload backs script_concordance. Consensus is the expert
// panel value on the -2..+2 scale; Distribution, when present, maps scale
// values (as strings, JSON object keys) to expert counts.
type ScriptConcordancePayload struct {
	Consensus    int            `json:"consensus"`
	Distribution map[string]int `json:"distribution,omitempty"`
}

// ExpertsAt returns how many experts picked value v.
func (p ScriptConcordancePayload) ExpertsAt(v int) int {
	return p.Distribution[strconv.Itoa(v)]
}

// TotalExperts sums the distribution.
func (p ScriptConcordancePayload) TotalExperts() int {
	n := 0
	for _, c := range p.Distribution {
		n += c
	}
	return n
}

// RegexPayload backs short_answer_regex. Answer is the display form shown
// when revealing; Pattern may be empty, in which case grading falls back to
// exact comparison against Answer.
type RegexPayload struct {
	Pattern       string `json:"pattern"`
	Answer        string `json:"answer"`
	CaseSensitive bool   `json:"case_sensitive,omitempty"`
}

// ClozePayload backs cloze atoms whose deletion is an explicit field rather
// than {{...}} markup in the front text.
type ClozePayload struct {
	Answer string `json:"answer"`
}

// Decode unmarshals the atom's payload into dst.
func (a *Atom) Decode(dst any) error {
	if len(a.Payload) == 0 {
		return fmt.Errorf("atom %s: no payload for type %s", a.ID, a.Type)
	}
	if err := json.Unmarshal(a.Payload, dst); err != nil {
		return fmt.Errorf("atom %s: payload: %w", a.ID, err)
	}
	return nil
}

// SetPayload marshals p into the atom's payload column.
func (a *Atom) SetPayload(p any) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	a.Payload = raw
	return nil
}

var clozeMarkup = regexp.MustCompile(`\{\{(.+?)\}\}`)

// ClozeAnswer resolves a cloze atom's deletion: the explicit payload field
// wins, then the first {{...}} span in the front, then the back text.
func (a *Atom) ClozeAnswer() string {
	if len(a.Payload) > 0 {
		var p ClozePayload
		if err := json.Unmarshal(a.Payload, &p); err == nil && p.Answer != "" {
			return p.Answer
		}
	}
	if m := clozeMarkup.FindStringSubmatch(a.Front); m != nil {
		return m[1]
	}
	return a.Back
}
