package grader

import (
	"sort"
	"strings"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
)

// sequenceGrader covers parsons, ranking and SQL-clause ordering: one
// correct order, partial credit per position that lines up.
type sequenceGrader struct{}

func (sequenceGrader) items(a *atom.Atom) []string {
	var pl atom.SequencePayload
	if a.Decode(&pl) != nil {
		return nil
	}
	return pl.Items
}

func (g sequenceGrader) Validate(a *atom.Atom) bool {
	return len(g.items(a)) >= 2
}

func (g sequenceGrader) Check(a *atom.Atom, resp Response, pres *Presentation) Result {
	items := g.items(a)
	submitted := resolveList(resp, pres)
	matches := positionMatches(submitted, items)
	if matches == len(items) && len(submitted) == len(items) {
		return Result{Correct: true, Partial: 1.0, Feedback: "Correct order."}
	}
	return Result{
		Partial:  ratio(matches, len(items)),
		Feedback: orderFeedback(matches, len(items)),
		Reveal:   strings.Join(items, " → "),
	}
}

func (g sequenceGrader) Hint(a *atom.Atom, attempt int, _ *Presentation) (string, bool) {
	return sequenceHint(g.items(a), attempt)
}

func (g sequenceGrader) Reveal(a *atom.Atom) string {
	return strings.Join(g.items(a), " → ")
}

// timelineGrader orders events chronologically. The correct sequence is the
// events sorted ascending by year; grading compares event names per position.
type timelineGrader struct{}

func (timelineGrader) sortedNames(a *atom.Atom) []string {
	var pl atom.TimelinePayload
	if a.Decode(&pl) != nil {
		return nil
	}
	events := append([]atom.TimelineEvent{}, pl.Events...)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Year < events[j].Year })
	names := make([]string, len(events))
	for i, ev := range events {
		names[i] = ev.Name
	}
	return names
}

func (g timelineGrader) Validate(a *atom.Atom) bool {
	return len(g.sortedNames(a)) >= 2
}

func (g timelineGrader) Check(a *atom.Atom, resp Response, pres *Presentation) Result {
	names := g.sortedNames(a)
	submitted := resolveList(resp, pres)
	matches := positionMatches(submitted, names)
	if matches == len(names) && len(submitted) == len(names) {
		return Result{Correct: true, Partial: 1.0, Feedback: "Correct chronology."}
	}
	return Result{
		Partial:  ratio(matches, len(names)),
		Feedback: orderFeedback(matches, len(names)),
		Reveal:   strings.Join(names, " → "),
	}
}

func (g timelineGrader) Hint(a *atom.Atom, attempt int, _ *Presentation) (string, bool) {
	return sequenceHint(g.sortedNames(a), attempt)
}

func (g timelineGrader) Reveal(a *atom.Atom) string {
	return strings.Join(g.sortedNames(a), " → ")
}
