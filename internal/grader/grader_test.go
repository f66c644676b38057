package grader_test

import (
	"testing"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
	"github.com/Travinkel/CortexCLI-sub002/internal/grader"
)

func mustAtom(t *testing.T, typ atom.Type, front, back string, payload any) *atom.Atom {
	t.Helper()
	a := atom.New(typ, front, back)
	if payload != nil {
		if err := a.SetPayload(payload); err != nil {
			t.Fatal(err)
		}
	}
	return a
}

// oneOfEach builds a valid atom for every exercise type.
func oneOfEach(t *testing.T) []*atom.Atom {
	t.Helper()
	return []*atom.Atom{
		mustAtom(t, atom.TypeFlashcard, "What does ARP resolve?", "IP addresses to MAC addresses", nil),
		mustAtom(t, atom.TypeShortAnswer, "Default OSPF hello interval?", "10", nil),
		mustAtom(t, atom.TypeShortAnswerRegex, "Loopback address?", "",
			atom.RegexPayload{Pattern: `127\.0\.0\.\d+`, Answer: "127.0.0.1"}),
		mustAtom(t, atom.TypeCloze, "The {{three-way handshake}} establishes a TCP session.", "", nil),
		mustAtom(t, atom.TypeClozeDropdown, "STP prevents {{...}}.", "",
			atom.ChoicePayload{Options: []atom.Option{{Text: "loops", Correct: true}, {Text: "collisions"}}}),
		mustAtom(t, atom.TypeMultipleChoice, "Which protocol is connectionless?", "",
			atom.ChoicePayload{Options: []atom.Option{{Text: "TCP"}, {Text: "UDP", Correct: true}, {Text: "HTTP"}}}),
		mustAtom(t, atom.TypeTrueFalse, "UDP guarantees delivery.", "false", nil),
		mustAtom(t, atom.TypeKeyFeature, "Pick the two link-state protocols.", "",
			atom.KeyFeaturePayload{Options: []string{"OSPF", "RIP", "IS-IS", "EIGRP"}, Key: []int{0, 2}, RequiredCount: 2}),
		mustAtom(t, atom.TypeParsons, "Order the DHCP exchange.", "",
			atom.SequencePayload{Items: []string{"Discover", "Offer", "Request", "Ack"}}),
		mustAtom(t, atom.TypeRanking, "Rank cable types by maximum run length.", "",
			atom.SequencePayload{Items: []string{"Multimode fiber", "Cat6", "Cat5e"}}),
		mustAtom(t, atom.TypeSQLClauseOrdering, "Order the clauses.", "",
			atom.SequencePayload{Items: []string{"SELECT", "FROM", "WHERE", "ORDER BY"}}),
		mustAtom(t, atom.TypeDistractorParsons, "Assemble the ping workflow.", "",
			atom.DistractorPayload{Items: []string{"Resolve name", "Send echo request", "Receive echo reply"},
				Distractors: []string{"Open TCP session"}}),
		mustAtom(t, atom.TypeFadedParsons, "Complete the interface bring-up.", "",
			atom.FadedPayload{Lines: []string{"interface {{blank:if}}", "no shutdown"},
				Blanks: map[string]string{"if": "GigabitEthernet0/1"}}),
		mustAtom(t, atom.TypeListRecall, "Name the private IPv4 blocks.", "",
			atom.RecallPayload{Items: []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}}),
		mustAtom(t, atom.TypeOrderedListRecall, "List the OSI layers bottom-up.", "",
			atom.RecallPayload{Items: []string{"Physical", "Data Link", "Network", "Transport"}}),
		mustAtom(t, atom.TypeCategorization, "Sort the protocols by transport.", "",
			atom.CategorizationPayload{Categories: map[string][]string{
				"TCP": {"HTTP", "SMTP"}, "UDP": {"DNS", "TFTP"}}}),
		mustAtom(t, atom.TypeMatching, "Match the term to its definition.", "",
			atom.MatchingPayload{Pairs: []atom.Pair{{Term: "TCP", Definition: "reliable"}, {Term: "UDP", Definition: "fast"}}}),
		mustAtom(t, atom.TypeNumeric, "How many usable hosts in a /24?", "",
			atom.NumericPayload{Answer: "254"}),
		mustAtom(t, atom.TypeEquationBalancing, "Balance the combustion of methane.", "",
			atom.EquationPayload{Coefficients: map[string]int{"CH4": 1, "O2": 2, "CO2": 1, "H2O": 2}}),
		mustAtom(t, atom.TypeTimelineOrdering, "Order the Ethernet standards.", "",
			atom.TimelinePayload{Events: []atom.TimelineEvent{
				{Name: "10BASE-T", Year: 1990}, {Name: "100BASE-TX", Year: 1995}, {Name: "1000BASE-T", Year: 1999}}}),
		mustAtom(t, atom.TypeScriptConcordance, "New evidence: the ping succeeds. The hypothesis becomes…", "",
			atom.ScriptConcordancePayload{Consensus: 1}),
		mustAtom(t, atom.TypeConfidenceSlider, "Default administrative distance of OSPF?", "110", nil),
		mustAtom(t, atom.TypeEffortRating, "How hard was this block?", "", nil),
	}
}

func TestEveryTypeHasAGrader(t *testing.T) {
	for _, typ := range atom.Types() {
		if _, ok := grader.For(typ); !ok {
			t.Errorf("no grader registered for %s", typ)
		}
	}
}

func TestEveryTypeValidates(t *testing.T) {
	for _, a := range oneOfEach(t) {
		g, ok := grader.For(a.Type)
		if !ok {
			t.Fatalf("no grader for %s", a.Type)
		}
		if !g.Validate(a) {
			t.Errorf("%s: fixture atom failed validation", a.Type)
		}
	}
}

func TestDontKnowUniformity(t *testing.T) {
	sentinels := []string{"?", "idk", "DK", "don't know", " Dont Know "}
	for _, a := range oneOfEach(t) {
		for _, s := range sentinels {
			res := grader.Check(a, grader.Response{Text: s}, nil)
			if res.Correct || !res.DontKnow || res.Partial != 0 {
				t.Errorf("%s: sentinel %q gave correct=%v dontKnow=%v partial=%v",
					a.Type, s, res.Correct, res.DontKnow, res.Partial)
			}
		}
	}
}

func TestSkipNeverPenalizes(t *testing.T) {
	for _, a := range oneOfEach(t) {
		res := grader.Check(a, grader.Response{Skip: true}, nil)
		if !res.Correct || res.Partial != 1.0 || res.Feedback != "skipped" {
			t.Errorf("%s: skip gave %+v", a.Type, res)
		}
	}
}

// TestPartialBounds exercises every grader with empty, wrong and nonsense
// submissions and checks the Result invariants. Script concordance is the
// documented exception to Correct => Partial == 1.
func TestPartialBounds(t *testing.T) {
	responses := []grader.Response{
		{},
		{Text: "completely wrong"},
		{Indices: []int{1}},
		{List: []string{"x", "y"}},
		{Scale: 1},
		{Coefficients: map[string]int{"CH4": 9}},
	}
	for _, a := range oneOfEach(t) {
		for _, resp := range responses {
			res := grader.Check(a, resp, nil)
			if res.Partial < 0 || res.Partial > 1 {
				t.Errorf("%s: partial %v out of range for %+v", a.Type, res.Partial, resp)
			}
			if res.Correct && res.Partial != 1.0 && a.Type != atom.TypeScriptConcordance {
				t.Errorf("%s: correct with partial %v", a.Type, res.Partial)
			}
		}
	}
}

func TestShuffleDeterministic(t *testing.T) {
	a := mustAtom(t, atom.TypeParsons, "Order the DHCP exchange.", "",
		atom.SequencePayload{Items: []string{"Discover", "Offer", "Request", "Ack"}})
	p1 := grader.Shuffle(a, 42)
	p2 := grader.Shuffle(a, 42)
	if len(p1.ScrambledLines) != 4 {
		t.Fatalf("scrambled lines: %v", p1.ScrambledLines)
	}
	for i := range p1.ScrambledLines {
		if p1.ScrambledLines[i] != p2.ScrambledLines[i] {
			t.Fatalf("same seed, different layout: %v vs %v", p1.ScrambledLines, p2.ScrambledLines)
		}
	}
}

func TestUnknownTypeNeverPanics(t *testing.T) {
	a := atom.New(atom.Type("holodeck"), "front", "back")
	res := grader.Check(a, grader.Response{Text: "x"}, nil)
	if res.Correct {
		t.Errorf("unknown type graded correct: %+v", res)
	}
	if _, ok := grader.Hint(a, 1, nil); ok {
		t.Error("unknown type produced a hint")
	}
}
