// Package ingest parses course module text into sections the generator and
// the quality engine consume. Input is markdown-ish: numbered headings,
// fenced command blocks, pipe tables, bolded key terms.
package ingest

import (
	"regexp"
	"strings"
)

// Section is one heading's worth of module text. Content is cleaned prose;
// RawContent keeps the original block for source-accuracy checks. Commands,
// Tables and KeyTerms are pulled out of the block during parsing.
type Section struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	RawContent string     `json:"raw_content"`
	Commands   []string   `json:"commands,omitempty"`
	Tables     [][]string `json:"tables,omitempty"`
	KeyTerms   []string   `json:"key_terms,omitempty"`
	Children   []*Section `json:"children,omitempty"`
}

// Walk visits the section and every descendant, depth first.
func (s *Section) Walk(fn func(*Section)) {
	fn(s)
	for _, c := range s.Children {
		c.Walk(fn)
	}
}

var (
	headingRe  = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	numberedRe = regexp.MustCompile(`^(\d+(?:\.\d+)*)\s+(.+)$`)
	boldRe     = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	tableSepRe = regexp.MustCompile(`^\|[\s:|-]+\|$`)
)

// Parse splits module text into a tree of sections. Text before the first
// heading becomes a section with an empty title.
func Parse(text string) []*Section {
	lines := strings.Split(text, "\n")

	type raw struct {
		level int
		sec   *Section
		body  []string
	}
	var flat []raw
	cur := raw{level: 1, sec: &Section{}}

	flush := func() {
		if cur.sec.Title == "" && len(cur.body) == 0 {
			return
		}
		fillSection(cur.sec, cur.body)
		flat = append(flat, cur)
	}

	inFence := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			cur.body = append(cur.body, line)
			continue
		}
		if m := headingRe.FindStringSubmatch(line); m != nil && !inFence {
			flush()
			level := len(m[1])
			sec := &Section{Title: strings.TrimSpace(m[2])}
			if nm := numberedRe.FindStringSubmatch(sec.Title); nm != nil {
				sec.ID = nm[1]
				sec.Title = strings.TrimSpace(nm[2])
			}
			cur = raw{level: level, sec: sec}
			continue
		}
		cur.body = append(cur.body, line)
	}
	flush()

	// Rebuild the heading hierarchy from levels.
	var roots []*Section
	type frame struct {
		level int
		sec   *Section
	}
	var stack []frame
	for _, r := range flat {
		for len(stack) > 0 && stack[len(stack)-1].level >= r.level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, r.sec)
		} else {
			parent := stack[len(stack)-1].sec
			parent.Children = append(parent.Children, r.sec)
		}
		stack = append(stack, frame{level: r.level, sec: r.sec})
	}
	return roots
}

// fillSection extracts commands, tables and key terms from the body lines
// and leaves cleaned prose in Content.
func fillSection(s *Section, body []string) {
	s.RawContent = strings.TrimSpace(strings.Join(body, "\n"))

	var prose []string
	var table [][]string
	inFence := false
	flushTable := func() {
		if len(table) > 0 {
			s.Tables = append(s.Tables, table...)
			table = nil
		}
	}

	for _, line := range body {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			if trimmed != "" {
				s.Commands = append(s.Commands, trimmed)
			}
			continue
		}
		if strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|") && len(trimmed) > 1 {
			if tableSepRe.MatchString(trimmed) {
				continue
			}
			table = append(table, splitTableRow(trimmed))
			continue
		}
		flushTable()
		if trimmed != "" {
			prose = append(prose, trimmed)
		}
	}
	flushTable()

	joined := strings.Join(prose, "\n")
	seen := map[string]bool{}
	for _, m := range boldRe.FindAllStringSubmatch(joined, -1) {
		term := strings.TrimSpace(m[1])
		if term != "" && !seen[strings.ToLower(term)] {
			seen[strings.ToLower(term)] = true
			s.KeyTerms = append(s.KeyTerms, term)
		}
	}
	s.Content = strings.TrimSpace(boldRe.ReplaceAllString(joined, "$1"))
}

func splitTableRow(line string) []string {
	line = strings.Trim(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}
