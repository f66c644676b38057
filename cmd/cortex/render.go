package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
	"github.com/Travinkel/CortexCLI-sub002/internal/grader"
)

// termRenderer is the plain-terminal presentation layer: prompt on stdout,
// one line of input per answer. "!hint" asks for a hint, "!skip" skips.
type termRenderer struct {
	in *bufio.Scanner
}

func newTermRenderer() *termRenderer {
	return &termRenderer{in: bufio.NewScanner(os.Stdin)}
}

func (r *termRenderer) Prompt(a *atom.Atom, pres *grader.Presentation) (grader.Response, bool, error) {
	fmt.Println()
	fmt.Println(a.Front)
	showChoices(os.Stdout, a, pres)

	line, err := r.readLine()
	if err != nil {
		return grader.Response{}, false, err
	}
	switch strings.TrimSpace(strings.ToLower(line)) {
	case "!hint":
		return grader.Response{}, true, nil
	case "!skip":
		return grader.Response{Skip: true}, false, nil
	}
	return parseResponse(a.Type, line), false, nil
}

func (r *termRenderer) ShowHint(hint string) {
	fmt.Println("  hint:", hint)
}

func (r *termRenderer) ShowResult(_ *atom.Atom, res grader.Result) {
	switch {
	case res.DontKnow:
		fmt.Println("  marked unknown —", res.Reveal)
	case res.Correct:
		fmt.Println("  ✓", res.Feedback)
	default:
		fmt.Printf("  ✗ %s (%.0f%%)\n", res.Feedback, res.Partial*100)
		if res.Reveal != "" {
			fmt.Println("  answer:", res.Reveal)
		}
	}
	if res.Explanation != "" {
		fmt.Println("  ", res.Explanation)
	}
}

func (r *termRenderer) readLine() (string, error) {
	fmt.Print("> ")
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("input closed")
	}
	return r.in.Text(), nil
}

// showChoices prints the displayed option or line order for index-based
// exercises. Key-feature and equation atoms carry no shuffle state, so
// their candidates come straight from the payload.
func showChoices(w io.Writer, a *atom.Atom, pres *grader.Presentation) {
	switch {
	case pres != nil && len(pres.ScrambledLines) > 0:
		for i, line := range pres.ScrambledLines {
			fmt.Fprintf(w, "  %d. %s\n", i+1, line)
		}
	case pres != nil && len(pres.ShuffledOptions) > 0:
		var pl atom.ChoicePayload
		if a.Decode(&pl) == nil {
			for disp, orig := range pres.ShuffledOptions {
				if orig >= 0 && orig < len(pl.Options) {
					fmt.Fprintf(w, "  %d. %s\n", disp+1, pl.Options[orig].Text)
				}
			}
		}
	case pres != nil && len(pres.ShuffledDefs) > 0:
		var pl atom.MatchingPayload
		if a.Decode(&pl) == nil {
			for i, p := range pl.Pairs {
				fmt.Fprintf(w, "  %d. %s\n", i+1, p.Term)
			}
			for i, def := range pres.ShuffledDefs {
				fmt.Fprintf(w, "     %c. %s\n", 'a'+i, def)
			}
		}
	case a.Type == atom.TypeKeyFeature:
		var pl atom.KeyFeaturePayload
		if a.Decode(&pl) == nil {
			for i, opt := range pl.Options {
				fmt.Fprintf(w, "  %d. %s\n", i+1, opt)
			}
		}
	case a.Type == atom.TypeEquationBalancing:
		var pl atom.EquationPayload
		if a.Decode(&pl) == nil {
			names := make([]string, 0, len(pl.Coefficients))
			for name := range pl.Coefficients {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Fprintf(w, "  compounds: %s\n", strings.Join(names, ", "))
		}
	}
}

// parseResponse maps one input line onto the structured response the
// grader for this exercise type reads.
func parseResponse(t atom.Type, line string) grader.Response {
	trimmed := strings.TrimSpace(line)
	switch t {
	case atom.TypeMultipleChoice, atom.TypeClozeDropdown, atom.TypeKeyFeature,
		atom.TypeParsons, atom.TypeRanking, atom.TypeSQLClauseOrdering,
		atom.TypeDistractorParsons, atom.TypeTimelineOrdering:
		if idx, ok := parseIndices(trimmed); ok {
			return grader.Response{Indices: idx}
		}
		return grader.Response{Text: trimmed, List: splitList(trimmed)}
	case atom.TypeFadedParsons:
		// "2,1 / if=GigabitEthernet0/1" — line order, then blank fills.
		order, blanks := trimmed, ""
		if i := strings.Index(trimmed, " / "); i >= 0 {
			order, blanks = trimmed[:i], trimmed[i+3:]
		}
		resp := grader.Response{Text: trimmed, Blanks: parsePairs(blanks)}
		if idx, ok := parseIndices(order); ok {
			resp.Indices = idx
		} else {
			resp.List = splitList(order)
		}
		return resp
	case atom.TypeListRecall, atom.TypeOrderedListRecall:
		return grader.Response{Text: trimmed, List: splitList(trimmed)}
	case atom.TypeMatching:
		return grader.Response{Text: trimmed, Mapping: parseMapping(trimmed)}
	case atom.TypeCategorization:
		return grader.Response{Text: trimmed, Assignment: parsePairs(trimmed)}
	case atom.TypeEquationBalancing:
		return grader.Response{Text: trimmed, Coefficients: parseCoefficients(trimmed)}
	case atom.TypeScriptConcordance, atom.TypeEffortRating:
		n, _ := strconv.Atoi(trimmed)
		return grader.Response{Text: trimmed, Scale: n}
	case atom.TypeConfidenceSlider:
		// "answer @ 80" states 80% confidence.
		if at := strings.LastIndex(trimmed, "@"); at >= 0 {
			conf, err := strconv.Atoi(strings.TrimSpace(trimmed[at+1:]))
			if err == nil {
				return grader.Response{Text: strings.TrimSpace(trimmed[:at]), Confidence: conf}
			}
		}
		return grader.Response{Text: trimmed}
	default:
		return grader.Response{Text: trimmed}
	}
}

func parseIndices(s string) ([]int, bool) {
	parts := splitList(s)
	if len(parts) == 0 {
		return nil, false
	}
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parseMapping reads "1=b,2=a" into 0-based term -> definition indices.
func parseMapping(s string) map[int]int {
	out := map[int]int{}
	for k, v := range parsePairs(s) {
		term, err := strconv.Atoi(k)
		if err != nil || term < 1 {
			continue
		}
		v = strings.ToLower(v)
		var def int
		if n, err := strconv.Atoi(v); err == nil {
			def = n - 1
		} else if len(v) == 1 && v[0] >= 'a' && v[0] <= 'z' {
			def = int(v[0] - 'a')
		} else {
			continue
		}
		out[term-1] = def
	}
	return out
}

// parsePairs reads "key=value, key=value" pairs.
func parsePairs(s string) map[string]string {
	out := map[string]string{}
	for _, part := range strings.Split(s, ",") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.TrimSpace(kv[0])
		v := strings.TrimSpace(kv[1])
		if k != "" && v != "" {
			out[k] = v
		}
	}
	return out
}

func parseCoefficients(s string) map[string]int {
	out := map[string]int{}
	for k, v := range parsePairs(s) {
		if n, err := strconv.Atoi(v); err == nil {
			out[k] = n
		}
	}
	return out
}
