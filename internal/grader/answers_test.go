package grader_test

import (
	"strings"
	"testing"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
	"github.com/Travinkel/CortexCLI-sub002/internal/grader"
)

func check(t *testing.T, a *atom.Atom, resp grader.Response, pres *grader.Presentation) grader.Result {
	t.Helper()
	return grader.Check(a, resp, pres)
}

func TestFlashcardContainment(t *testing.T) {
	a := mustAtom(t, atom.TypeFlashcard, "What does ARP resolve?", "IP addresses to MAC addresses", nil)
	cases := []struct {
		text string
		want bool
	}{
		{"IP addresses to MAC addresses", true},
		{"ip addresses to mac addresses!", true},
		{"it maps IP addresses to MAC addresses on the LAN", true}, // answer inside submission
		{"TCP port numbers", false},
		{"", false},
	}
	for _, tc := range cases {
		res := check(t, a, grader.Response{Text: tc.text}, nil)
		if res.Correct != tc.want {
			t.Errorf("%q: correct=%v, want %v", tc.text, res.Correct, tc.want)
		}
	}
}

func TestShortAnswerExact(t *testing.T) {
	a := mustAtom(t, atom.TypeShortAnswer, "Default OSPF hello interval in seconds?", "10", nil)
	if res := check(t, a, grader.Response{Text: "  10 "}, nil); !res.Correct {
		t.Errorf("trimmed match rejected: %+v", res)
	}
	if res := check(t, a, grader.Response{Text: "10 seconds"}, nil); res.Correct {
		t.Errorf("superset accepted by exact matcher: %+v", res)
	}
}

func TestClozeAnswerFromMarkup(t *testing.T) {
	a := mustAtom(t, atom.TypeCloze, "The {{three-way handshake}} establishes a TCP session.", "", nil)
	if res := check(t, a, grader.Response{Text: "three way handshake"}, nil); !res.Correct {
		t.Errorf("punctuation-normalized cloze rejected: %+v", res)
	}
	if res := check(t, a, grader.Response{Text: "four-way handshake"}, nil); res.Correct {
		t.Error("wrong cloze accepted")
	}
}

func TestRegexAnchoredFullMatch(t *testing.T) {
	a := mustAtom(t, atom.TypeShortAnswerRegex, "Loopback address?", "",
		atom.RegexPayload{Pattern: `127\.0\.0\.\d+`, Answer: "127.0.0.1"})
	if res := check(t, a, grader.Response{Text: "127.0.0.53"}, nil); !res.Correct {
		t.Errorf("pattern match rejected: %+v", res)
	}
	// Anchoring: a match inside a longer string is not a match.
	if res := check(t, a, grader.Response{Text: "ping 127.0.0.1"}, nil); res.Correct {
		t.Error("substring match accepted")
	}
}

func TestRegexCaseSensitivity(t *testing.T) {
	insensitive := mustAtom(t, atom.TypeShortAnswerRegex, "Privileged-mode command?", "",
		atom.RegexPayload{Pattern: `enable`, Answer: "enable"})
	if res := check(t, insensitive, grader.Response{Text: "ENABLE"}, nil); !res.Correct {
		t.Errorf("default should be case-insensitive: %+v", res)
	}
	sensitive := mustAtom(t, atom.TypeShortAnswerRegex, "Privileged-mode command?", "",
		atom.RegexPayload{Pattern: `enable`, Answer: "enable", CaseSensitive: true})
	if res := check(t, sensitive, grader.Response{Text: "ENABLE"}, nil); res.Correct {
		t.Error("case-sensitive pattern matched wrong case")
	}
}

func TestRegexUncompilablePatternFailsValidation(t *testing.T) {
	a := mustAtom(t, atom.TypeShortAnswerRegex, "Broken.", "",
		atom.RegexPayload{Pattern: `[unclosed`, Answer: "x"})
	g, _ := grader.For(a.Type)
	if g.Validate(a) {
		t.Error("uncompilable pattern validated")
	}
}

func TestMultipleChoiceExactSet(t *testing.T) {
	a := mustAtom(t, atom.TypeMultipleChoice, "Which two operate at layer 4?", "",
		atom.ChoicePayload{Options: []atom.Option{
			{Text: "TCP", Correct: true},
			{Text: "IP"},
			{Text: "UDP", Correct: true},
			{Text: "Ethernet"},
		}})
	// Indices are 1-based against the displayed order; no shuffle here.
	if res := check(t, a, grader.Response{Indices: []int{1, 3}}, nil); !res.Correct {
		t.Errorf("exact set rejected: %+v", res)
	}
	// A superset of the key is incorrect, not partially correct-and-done.
	if res := check(t, a, grader.Response{Indices: []int{1, 2, 3}}, nil); res.Correct {
		t.Error("superset accepted")
	}
	if res := check(t, a, grader.Response{Indices: []int{1, 2}}, nil); res.Correct {
		t.Error("wrong pair accepted")
	}
}

func TestMultipleChoiceShuffledIndices(t *testing.T) {
	a := mustAtom(t, atom.TypeMultipleChoice, "Which protocol is connectionless?", "",
		atom.ChoicePayload{Options: []atom.Option{
			{Text: "TCP"},
			{Text: "UDP", Correct: true},
			{Text: "HTTP"},
		}})
	// Displayed order: HTTP, UDP, TCP. Picking displayed #2 means original #1.
	pres := &grader.Presentation{ShuffledOptions: []int{2, 1, 0}}
	if res := check(t, a, grader.Response{Indices: []int{2}}, pres); !res.Correct {
		t.Errorf("shuffled pick rejected: %+v", res)
	}
	if res := check(t, a, grader.Response{Indices: []int{1}}, pres); res.Correct {
		t.Error("displayed #1 (HTTP) accepted")
	}
}

func TestMultipleChoiceNoKeyedOptionNeverSatisfiable(t *testing.T) {
	a := mustAtom(t, atom.TypeMultipleChoice, "Authored without a key.", "",
		atom.ChoicePayload{
			Options:     []atom.Option{{Text: "A"}, {Text: "B"}},
			Explanation: "The author forgot to flag the key.",
		})
	g, _ := grader.For(a.Type)
	if !g.Validate(a) {
		t.Fatal("keyless question should still validate")
	}
	for _, pick := range [][]int{{1}, {2}, {1, 2}} {
		res := check(t, a, grader.Response{Indices: pick}, nil)
		if res.Correct {
			t.Errorf("keyless question graded correct for %v", pick)
		}
		if res.Reveal == "" {
			t.Errorf("keyless question gave no reveal for %v", pick)
		}
	}
}

func TestTrueFalseSpellings(t *testing.T) {
	a := mustAtom(t, atom.TypeTrueFalse, "UDP guarantees delivery.", "false", nil)
	for _, text := range []string{"false", "F", "no", "N", " FALSE "} {
		if res := check(t, a, grader.Response{Text: text}, nil); !res.Correct {
			t.Errorf("%q: rejected", text)
		}
	}
	for _, text := range []string{"true", "t", "yes"} {
		if res := check(t, a, grader.Response{Text: text}, nil); res.Correct {
			t.Errorf("%q: accepted", text)
		}
	}
	if res := check(t, a, grader.Response{Text: "maybe"}, nil); res.Correct {
		t.Error("unparseable answer accepted")
	}
}

func TestKeyFeatureExactCount(t *testing.T) {
	a := mustAtom(t, atom.TypeKeyFeature, "Pick the two link-state protocols.", "",
		atom.KeyFeaturePayload{Options: []string{"OSPF", "RIP", "IS-IS", "EIGRP"}, Key: []int{0, 2}, RequiredCount: 2})
	if res := check(t, a, grader.Response{Indices: []int{1, 3}}, nil); !res.Correct {
		t.Errorf("correct pair rejected: %+v", res)
	}
	// One right pick out of the required two earns half credit.
	res := check(t, a, grader.Response{Indices: []int{1, 4}}, nil)
	if res.Correct || res.Partial != 0.5 {
		t.Errorf("one-of-two: correct=%v partial=%v", res.Correct, res.Partial)
	}
	// Picking all the key options plus extras is not correct.
	if res := check(t, a, grader.Response{Indices: []int{1, 3, 4}}, nil); res.Correct {
		t.Error("over-selection accepted")
	}
}

func TestNumericFormatEquivalence(t *testing.T) {
	cases := []struct {
		answer, submitted string
		want              bool
	}{
		{"255", "0b11111111", true},
		{"255", "11111111", true}, // bare binary, 8 digits
		{"255", "0xFF", true},
		{"255", "FFh", true},
		{"255", "255", true},
		{"255", "254", false},
		{"192.168.1.1", "192.168.001.001", true},
		{"192.168.1.1", "192.168.1.2", false},
		{"/24", "/24", true},
		{"/24", "/25", false},
		// Bare binary needs at least four digits; "11" stays the integer eleven.
		{"11", "11", true},
		{"3", "11", false},
	}
	for _, tc := range cases {
		a := mustAtom(t, atom.TypeNumeric, "Convert.", "", atom.NumericPayload{Answer: tc.answer})
		res := check(t, a, grader.Response{Text: tc.submitted}, nil)
		if res.Correct != tc.want {
			t.Errorf("answer %q, submitted %q: correct=%v, want %v", tc.answer, tc.submitted, res.Correct, tc.want)
		}
	}
}

func TestNumericFloatTolerance(t *testing.T) {
	a := mustAtom(t, atom.TypeNumeric, "Approximate value of pi?", "",
		atom.NumericPayload{Answer: "3.14", Tolerance: 0.01})
	if res := check(t, a, grader.Response{Text: "3.15"}, nil); !res.Correct {
		t.Errorf("within tolerance rejected: %+v", res)
	}
	if res := check(t, a, grader.Response{Text: "3.5"}, nil); res.Correct {
		t.Error("outside tolerance accepted")
	}
}

func TestNumericMixedKindsNeverEqual(t *testing.T) {
	a := mustAtom(t, atom.TypeNumeric, "How many usable hosts in a /24?", "",
		atom.NumericPayload{Answer: "254"})
	if res := check(t, a, grader.Response{Text: "254.0"}, nil); res.Correct {
		t.Error("float accepted against integer answer")
	}
	if res := check(t, a, grader.Response{Text: "two hundred"}, nil); res.Correct {
		t.Error("prose accepted")
	}
}

func TestEquationPerCompoundCredit(t *testing.T) {
	a := mustAtom(t, atom.TypeEquationBalancing, "Balance the combustion of methane.", "",
		atom.EquationPayload{Coefficients: map[string]int{"CH4": 1, "O2": 2, "CO2": 1, "H2O": 2}})
	full := check(t, a, grader.Response{Coefficients: map[string]int{"CH4": 1, "O2": 2, "CO2": 1, "H2O": 2}}, nil)
	if !full.Correct || full.Partial != 1.0 {
		t.Errorf("balanced equation rejected: %+v", full)
	}
	half := check(t, a, grader.Response{Coefficients: map[string]int{"CH4": 1, "O2": 3, "CO2": 1, "H2O": 3}}, nil)
	if half.Correct || half.Partial != 0.5 {
		t.Errorf("two-of-four: correct=%v partial=%v", half.Correct, half.Partial)
	}
}

func TestScriptConcordanceDivergence(t *testing.T) {
	// Split panel: consensus +1 but only 2 of 10 experts picked exactly +1.
	a := mustAtom(t, atom.TypeScriptConcordance, "The ping succeeds; the hypothesis becomes…", "",
		atom.ScriptConcordancePayload{
			Consensus:    1,
			Distribution: map[string]int{"-1": 3, "0": 2, "1": 2, "2": 3},
		})
	res := check(t, a, grader.Response{Scale: 1}, nil)
	if !res.Correct {
		t.Fatalf("consensus answer not acceptable: %+v", res)
	}
	// Histogram credit, not 1.0: this type keeps the two scales independent.
	if res.Partial != 0.2 {
		t.Errorf("partial = %v, want 0.2", res.Partial)
	}
}

func TestScriptConcordanceLinearFallback(t *testing.T) {
	a := mustAtom(t, atom.TypeScriptConcordance, "New evidence arrives.", "",
		atom.ScriptConcordancePayload{Consensus: 2})
	cases := []struct {
		scale   int
		correct bool
		partial float64
	}{
		{2, true, 1.0},
		{1, true, 0.75},
		{0, false, 0.5},
		{-2, false, 0.0},
	}
	for _, tc := range cases {
		res := check(t, a, grader.Response{Scale: tc.scale}, nil)
		if res.Correct != tc.correct || res.Partial != tc.partial {
			t.Errorf("scale %+d: correct=%v partial=%v, want %v/%v",
				tc.scale, res.Correct, res.Partial, tc.correct, tc.partial)
		}
	}
}

func TestConfidenceCalibrationFeedback(t *testing.T) {
	a := mustAtom(t, atom.TypeConfidenceSlider, "Default administrative distance of OSPF?", "110", nil)
	res := check(t, a, grader.Response{Text: "110", Confidence: 40}, nil)
	if !res.Correct {
		t.Fatalf("correct answer rejected: %+v", res)
	}
	if !strings.Contains(res.Feedback, "60") {
		t.Errorf("calibration gap missing from feedback: %q", res.Feedback)
	}
	// Calibration never changes the verdict.
	wrong := check(t, a, grader.Response{Text: "90", Confidence: 100}, nil)
	if wrong.Correct || wrong.Partial != 0 {
		t.Errorf("miscalibrated wrong answer scored: %+v", wrong)
	}
}

func TestEffortRatingRange(t *testing.T) {
	a := mustAtom(t, atom.TypeEffortRating, "How hard was this block?", "", nil)
	if res := check(t, a, grader.Response{Scale: 4}, nil); !res.Correct {
		t.Errorf("in-range rating rejected: %+v", res)
	}
	if res := check(t, a, grader.Response{Scale: 0}, nil); res.Correct {
		t.Error("out-of-range rating accepted")
	}
	if res := check(t, a, grader.Response{Scale: 6}, nil); res.Correct {
		t.Error("out-of-range rating accepted")
	}
}
