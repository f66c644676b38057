package generate

import (
	"context"
	"strings"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
	"github.com/Travinkel/CortexCLI-sub002/internal/ingest"
)

// StaticGenerator derives atoms from section structure alone: cloze cards
// from key terms, a parsons exercise from command blocks, matching pairs
// from two-column tables. It needs no external model, so it backs tests and
// offline runs.
type StaticGenerator struct {
	MaxCommands int // cap on parsons length, default 6
}

func (g StaticGenerator) Generate(_ context.Context, sec *ingest.Section) ([]*atom.Atom, error) {
	var out []*atom.Atom
	out = append(out, g.clozeFromKeyTerms(sec)...)
	if a := g.parsonsFromCommands(sec); a != nil {
		out = append(out, a)
	}
	if a := g.matchingFromTable(sec); a != nil {
		out = append(out, a)
	}
	for _, a := range out {
		a.SectionID = sec.ID
	}
	return out, nil
}

// clozeFromKeyTerms turns each key term into a cloze over the first sentence
// that mentions it.
func (g StaticGenerator) clozeFromKeyTerms(sec *ingest.Section) []*atom.Atom {
	var out []*atom.Atom
	for _, term := range sec.KeyTerms {
		sentence := sentenceWith(sec.Content, term)
		if sentence == "" {
			continue
		}
		front := replaceFold(sentence, term, "{{"+term+"}}")
		if front == sentence {
			continue
		}
		a := atom.New(atom.TypeCloze, front, term)
		a.Knowledge = atom.KnowledgeFactual
		out = append(out, a)
	}
	return out
}

func (g StaticGenerator) parsonsFromCommands(sec *ingest.Section) *atom.Atom {
	limit := g.MaxCommands
	if limit <= 0 {
		limit = 6
	}
	cmds := sec.Commands
	if len(cmds) < 2 {
		return nil
	}
	if len(cmds) > limit {
		cmds = cmds[:limit]
	}
	a := atom.New(atom.TypeParsons, "Arrange the commands in the order they are entered.", "")
	a.Knowledge = atom.KnowledgeProcedural
	if err := a.SetPayload(atom.SequencePayload{Items: cmds}); err != nil {
		return nil
	}
	return a
}

// matchingFromTable builds a matching exercise from the first two-column
// table with at least two data rows. The first row is taken as the header.
func (g StaticGenerator) matchingFromTable(sec *ingest.Section) *atom.Atom {
	if len(sec.Tables) < 3 {
		return nil
	}
	header := sec.Tables[0]
	if len(header) != 2 {
		return nil
	}
	var pairs []atom.Pair
	for _, row := range sec.Tables[1:] {
		if len(row) != 2 || row[0] == "" || row[1] == "" {
			continue
		}
		pairs = append(pairs, atom.Pair{Term: row[0], Definition: row[1]})
	}
	if len(pairs) < 2 {
		return nil
	}
	a := atom.New(atom.TypeMatching,
		"Match each "+strings.ToLower(header[0])+" with its "+strings.ToLower(header[1])+".", "")
	a.Knowledge = atom.KnowledgeFactual
	if err := a.SetPayload(atom.MatchingPayload{Pairs: pairs}); err != nil {
		return nil
	}
	return a
}

// sentenceWith returns the first sentence of text containing term,
// case-insensitively.
func sentenceWith(text, term string) string {
	folded := strings.ToLower(term)
	for _, line := range strings.Split(text, "\n") {
		for _, sentence := range splitSentences(line) {
			if strings.Contains(strings.ToLower(sentence), folded) {
				return strings.TrimSpace(sentence)
			}
		}
	}
	return ""
}

func splitSentences(line string) []string {
	var out []string
	start := 0
	for i, r := range line {
		if r == '.' || r == '!' || r == '?' {
			out = append(out, line[start:i+1])
			start = i + 1
		}
	}
	if start < len(line) {
		out = append(out, line[start:])
	}
	return out
}

// replaceFold replaces the first case-insensitive occurrence of old in s.
func replaceFold(s, old, repl string) string {
	idx := strings.Index(strings.ToLower(s), strings.ToLower(old))
	if idx < 0 {
		return s
	}
	return s[:idx] + repl + s[idx+len(old):]
}
