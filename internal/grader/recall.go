package grader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
	"github.com/Travinkel/CortexCLI-sub002/internal/textutil"
)

// listRecallGrader checks an unordered set: the submitted entries, lowercased
// and trimmed, must equal the required set exactly for full credit; partial
// credit is the recalled fraction.
type listRecallGrader struct{}

func (listRecallGrader) items(a *atom.Atom) []string {
	var pl atom.RecallPayload
	if a.Decode(&pl) != nil {
		return nil
	}
	return pl.Items
}

func (g listRecallGrader) Validate(a *atom.Atom) bool {
	return len(g.items(a)) >= 2
}

func (g listRecallGrader) Check(a *atom.Atom, resp Response, _ *Presentation) Result {
	items := g.items(a)
	required := map[string]bool{}
	for _, it := range items {
		required[textutil.Fold(it)] = true
	}
	submitted := map[string]bool{}
	for _, s := range resp.List {
		if t := textutil.Fold(s); t != "" {
			submitted[t] = true
		}
	}
	recalled := 0
	for s := range submitted {
		if required[s] {
			recalled++
		}
	}
	extras := len(submitted) - recalled
	if recalled == len(required) && extras == 0 {
		return Result{Correct: true, Partial: 1.0, Feedback: "All items recalled."}
	}
	fb := fmt.Sprintf("%d of %d items recalled", recalled, len(required))
	if extras > 0 {
		fb += fmt.Sprintf(", %d extra", extras)
	}
	return Result{
		Partial:  ratio(recalled, len(required)),
		Feedback: fb + ".",
		Reveal:   strings.Join(items, ", "),
	}
}

func (g listRecallGrader) Hint(a *atom.Atom, attempt int, _ *Presentation) (string, bool) {
	items := g.items(a)
	switch attempt {
	case 1:
		return fmt.Sprintf("%d items.", len(items)), true
	case 2:
		if len(items) == 0 {
			return "", false
		}
		return fmt.Sprintf("One of them: %s", items[0]), true
	case 3:
		if len(items) < 3 {
			return "", false
		}
		return fmt.Sprintf("Another: %s", items[len(items)-1]), true
	default:
		return "", false
	}
}

func (g listRecallGrader) Reveal(a *atom.Atom) string {
	return strings.Join(g.items(a), ", ")
}

// orderedRecallGrader checks a list where order matters: every position must
// match case-insensitively; partial credit is matched positions over the
// required length.
type orderedRecallGrader struct{}

func (orderedRecallGrader) items(a *atom.Atom) []string {
	var pl atom.RecallPayload
	if a.Decode(&pl) != nil {
		return nil
	}
	return pl.Items
}

func (g orderedRecallGrader) Validate(a *atom.Atom) bool {
	return len(g.items(a)) >= 2
}

func (g orderedRecallGrader) Check(a *atom.Atom, resp Response, _ *Presentation) Result {
	items := g.items(a)
	matches := positionMatches(resp.List, items)
	if matches == len(items) && len(resp.List) == len(items) {
		return Result{Correct: true, Partial: 1.0, Feedback: "Correct order."}
	}
	return Result{
		Partial:  ratio(matches, len(items)),
		Feedback: orderFeedback(matches, len(items)),
		Reveal:   strings.Join(items, " → "),
	}
}

func (g orderedRecallGrader) Hint(a *atom.Atom, attempt int, _ *Presentation) (string, bool) {
	return sequenceHint(g.items(a), attempt)
}

func (g orderedRecallGrader) Reveal(a *atom.Atom) string {
	return strings.Join(g.items(a), " → ")
}

// categorizationGrader scores each item placed into its own category, summed
// over the total item count.
type categorizationGrader struct{}

func (categorizationGrader) spec(a *atom.Atom) (atom.CategorizationPayload, bool) {
	var pl atom.CategorizationPayload
	if a.Decode(&pl) != nil {
		return pl, false
	}
	return pl, len(pl.Categories) >= 2 && pl.ItemCount() >= 2
}

func (g categorizationGrader) Validate(a *atom.Atom) bool {
	_, ok := g.spec(a)
	return ok
}

func (g categorizationGrader) Check(a *atom.Atom, resp Response, _ *Presentation) Result {
	pl, ok := g.spec(a)
	if !ok {
		return Result{Feedback: "Malformed categories."}
	}
	// item (folded) -> its category (folded)
	home := map[string]string{}
	for cat, items := range pl.Categories {
		for _, it := range items {
			home[textutil.Fold(it)] = textutil.Fold(cat)
		}
	}
	placed := 0
	for item, cat := range resp.Assignment {
		if home[textutil.Fold(item)] == textutil.Fold(cat) {
			placed++
		}
	}
	total := pl.ItemCount()
	if placed == total && len(resp.Assignment) == total {
		return Result{Correct: true, Partial: 1.0, Feedback: "Every item placed correctly."}
	}
	return Result{
		Partial:  ratio(placed, total),
		Feedback: fmt.Sprintf("%d of %d items placed correctly.", placed, total),
		Reveal:   g.Reveal(a),
	}
}

func (g categorizationGrader) Hint(a *atom.Atom, attempt int, _ *Presentation) (string, bool) {
	pl, ok := g.spec(a)
	if !ok {
		return "", false
	}
	cats := make([]string, 0, len(pl.Categories))
	for c := range pl.Categories {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	switch attempt {
	case 1:
		return fmt.Sprintf("Categories: %s.", strings.Join(cats, ", ")), true
	case 2:
		first := cats[0]
		items := pl.Categories[first]
		if len(items) == 0 {
			return "", false
		}
		return fmt.Sprintf("%s belongs under %s.", items[0], first), true
	default:
		return "", false
	}
}

func (g categorizationGrader) Reveal(a *atom.Atom) string {
	pl, ok := g.spec(a)
	if !ok {
		return ""
	}
	cats := make([]string, 0, len(pl.Categories))
	for c := range pl.Categories {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = c + ": " + strings.Join(pl.Categories[c], ", ")
	}
	return strings.Join(parts, "; ")
}
