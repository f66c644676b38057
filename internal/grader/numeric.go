package grader

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
)

// numValue is the result of normalizing a raw numeric answer. Kind drives
// the comparison: strings compare case-insensitively, ints exactly (bit
// patterns must be precise), floats within tolerance. Mixed kinds are
// automatically incorrect.
type numValue struct {
	kind numKind
	str  string
	i    int64
	f    float64
}

type numKind int

const (
	kindString numKind = iota
	kindInt
	kindFloat
)

// normalizeNumeric runs the parse ladder: dotted-quad IPv4, hex (0x or
// trailing h), binary (0b or a bare run of at least four 0/1 digits), CIDR
// prefix, then plain int or float. Anything unparseable falls back to the
// trimmed original for literal comparison.
func normalizeNumeric(raw string) numValue {
	trimmed := strings.TrimSpace(raw)
	s := strings.ToLower(strings.ReplaceAll(trimmed, "_", ""))
	s = strings.Join(strings.Fields(s), "")

	if ip, ok := canonicalIPv4(s); ok {
		return numValue{kind: kindString, str: ip}
	}
	if strings.HasPrefix(s, "0x") {
		if v, err := strconv.ParseInt(s[2:], 16, 64); err == nil {
			return numValue{kind: kindInt, i: v}
		}
	}
	if strings.HasSuffix(s, "h") && len(s) > 1 {
		if v, err := strconv.ParseInt(s[:len(s)-1], 16, 64); err == nil {
			return numValue{kind: kindInt, i: v}
		}
	}
	if strings.HasPrefix(s, "0b") {
		if v, err := strconv.ParseInt(s[2:], 2, 64); err == nil {
			return numValue{kind: kindInt, i: v}
		}
	}
	if len(s) >= 4 && strings.Trim(s, "01") == "" {
		if v, err := strconv.ParseInt(s, 2, 64); err == nil {
			return numValue{kind: kindInt, i: v}
		}
	}
	if strings.HasPrefix(s, "/") {
		return numValue{kind: kindString, str: s}
	}
	if !strings.ContainsAny(s, ".e") {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return numValue{kind: kindInt, i: v}
		}
	} else if v, err := strconv.ParseFloat(s, 64); err == nil {
		return numValue{kind: kindFloat, f: v}
	}
	return numValue{kind: kindString, str: strings.ToLower(trimmed)}
}

// canonicalIPv4 accepts four dot-separated octets in 0..255 and returns the
// canonical dotted-decimal form.
func canonicalIPv4(s string) (string, bool) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return "", false
	}
	out := make([]string, 4)
	for i, p := range parts {
		if p == "" || len(p) > 3 {
			return "", false
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v > 255 {
			return "", false
		}
		out[i] = strconv.Itoa(v)
	}
	return strings.Join(out, "."), true
}

// numericEqual compares two normalized values with the type-aware rules.
func numericEqual(user, correct numValue, tolerance float64) bool {
	if user.kind != correct.kind {
		return false
	}
	switch correct.kind {
	case kindString:
		return strings.EqualFold(user.str, correct.str)
	case kindInt:
		return user.i == correct.i
	case kindFloat:
		if tolerance > 0 {
			return math.Abs(user.f-correct.f) <= tolerance*math.Abs(correct.f)
		}
		return user.f == correct.f
	}
	return false
}

// numericGrader grades numeric answers across decimal, binary, hex, IPv4 and
// CIDR notations: "0b11111111" matches a correct answer of "255".
type numericGrader struct{}

func (numericGrader) spec(a *atom.Atom) (atom.NumericPayload, bool) {
	var pl atom.NumericPayload
	if a.Decode(&pl) != nil {
		if strings.TrimSpace(a.Back) == "" {
			return pl, false
		}
		pl = atom.NumericPayload{Answer: a.Back}
	}
	return pl, strings.TrimSpace(pl.Answer) != ""
}

func (g numericGrader) Validate(a *atom.Atom) bool {
	_, ok := g.spec(a)
	return ok
}

func (g numericGrader) Check(a *atom.Atom, resp Response, _ *Presentation) Result {
	pl, ok := g.spec(a)
	if !ok {
		return Result{Feedback: "No numeric answer configured."}
	}
	want := normalizeNumeric(pl.Answer)
	got := normalizeNumeric(resp.Text)
	if numericEqual(got, want, pl.Tolerance) {
		return Result{Correct: true, Partial: 1.0, Feedback: "Correct."}
	}
	return Result{Feedback: "Incorrect.", Reveal: pl.Answer}
}

func (g numericGrader) Hint(a *atom.Atom, attempt int, _ *Presentation) (string, bool) {
	pl, ok := g.spec(a)
	if !ok {
		return "", false
	}
	want := normalizeNumeric(pl.Answer)
	switch attempt {
	case 1:
		switch want.kind {
		case kindString:
			if strings.HasPrefix(want.str, "/") {
				return "The answer is a CIDR prefix length.", true
			}
			return "The answer is a dotted-decimal address.", true
		case kindFloat:
			return "The answer is not a whole number.", true
		default:
			return fmt.Sprintf("A whole number with %d digit(s) in decimal.",
				len(strconv.FormatInt(want.i, 10))), true
		}
	case 2:
		switch want.kind {
		case kindInt:
			dec := strconv.FormatInt(want.i, 10)
			return fmt.Sprintf("It starts with %q.", string(dec[0])), true
		case kindString:
			return fmt.Sprintf("It starts with %q.", string(want.str[0])), true
		}
		return "", false
	default:
		return "", false
	}
}

func (g numericGrader) Reveal(a *atom.Atom) string {
	pl, _ := g.spec(a)
	return pl.Answer
}
