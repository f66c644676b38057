// Package atom defines the learning-atom model shared by the quality engine,
// the answer graders, and the store.
package atom

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Type tags one exercise family. The set is closed: graders are selected
// from a static table keyed by Type and unknown types fail validation.
type Type string

const (
	TypeFlashcard         Type = "flashcard"
	TypeCloze             Type = "cloze"
	TypeClozeDropdown     Type = "cloze_dropdown"
	TypeMultipleChoice    Type = "multiple_choice"
	TypeTrueFalse         Type = "true_false"
	TypeShortAnswer       Type = "short_answer"
	TypeShortAnswerRegex  Type = "short_answer_regex"
	TypeMatching          Type = "matching"
	TypeRanking           Type = "ranking"
	TypeParsons           Type = "parsons"
	TypeDistractorParsons Type = "distractor_parsons"
	TypeFadedParsons      Type = "faded_parsons"
	TypeListRecall        Type = "list_recall"
	TypeOrderedListRecall Type = "ordered_list_recall"
	TypeCategorization    Type = "categorization"
	TypeNumeric           Type = "numeric"
	TypeEquationBalancing Type = "equation_balancing"
	TypeTimelineOrdering  Type = "timeline_ordering"
	TypeSQLClauseOrdering Type = "sql_clause_ordering"
	TypeKeyFeature        Type = "key_feature"
	TypeScriptConcordance Type = "script_concordance"
	TypeConfidenceSlider  Type = "confidence_slider"
	TypeEffortRating      Type = "effort_rating"
)

// Types lists every known exercise type, in a stable order.
func Types() []Type {
	return []Type{
		TypeFlashcard, TypeCloze, TypeClozeDropdown, TypeMultipleChoice,
		TypeTrueFalse, TypeShortAnswer, TypeShortAnswerRegex, TypeMatching,
		TypeRanking, TypeParsons, TypeDistractorParsons, TypeFadedParsons,
		TypeListRecall, TypeOrderedListRecall, TypeCategorization,
		TypeNumeric, TypeEquationBalancing, TypeTimelineOrdering,
		TypeSQLClauseOrdering, TypeKeyFeature, TypeScriptConcordance,
		TypeConfidenceSlider, TypeEffortRating,
	}
}

// Knowledge classifies what kind of knowing the atom exercises. The quality
// engine uses it to pick answer-length ceilings.
type Knowledge string

const (
	KnowledgeFactual    Knowledge = "factual"
	KnowledgeConceptual Knowledge = "conceptual"
	KnowledgeProcedural Knowledge = "procedural"
)

// Atom is a single learning item. Front/Back carry the prompt and the plain
// answer; structured exercise types put their correct-answer spec in Payload
// as JSON, the same way exam questions ride a questions_json column.
type Atom struct {
	ID        string          `json:"id"`
	Type      Type            `json:"type"`
	Front     string          `json:"front"`
	Back      string          `json:"back"`
	Knowledge Knowledge       `json:"knowledge,omitempty"`
	Tags      []string        `json:"tags,omitempty"`
	SectionID string          `json:"section_id,omitempty"`
	Payload   json.RawMessage `json:"content_json,omitempty"`
}

// New returns an atom with a fresh ID.
func New(t Type, front, back string) *Atom {
	return &Atom{ID: uuid.NewString(), Type: t, Front: front, Back: back}
}

// Gradable reports whether the atom carries enough text to be graded at all.
func (a *Atom) Gradable() bool {
	if strings.TrimSpace(a.Front) == "" {
		return false
	}
	return strings.TrimSpace(a.Back) != "" || len(a.Payload) > 0
}
