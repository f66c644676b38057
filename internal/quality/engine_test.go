package quality_test

import (
	"reflect"
	"testing"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
	"github.com/Travinkel/CortexCLI-sub002/internal/quality"
)

func TestGradeThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{100, "A"},
		{90, "A"},
		{89.999, "B"},
		{75, "B"},
		{74.999, "C"},
		{60, "C"},
		{59.999, "D"},
		{40, "D"},
		{39.999, "F"},
		{0, "F"},
	}
	for _, c := range cases {
		if got := quality.GradeFor(c.score); got != c.want {
			t.Errorf("GradeFor(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestAnalyzeCleanAtom(t *testing.T) {
	e := quality.NewEngine()
	r := e.Analyze("What port does SSH listen on by default?", "Port 22", "")
	if r.Grade != "A" {
		t.Fatalf("clean atom graded %q (score %v, issues %v)", r.Grade, r.Score, r.Issues)
	}
	if !r.IsAtomic || r.NeedsSplit || r.NeedsRewrite {
		t.Errorf("clean atom flags: atomic=%v split=%v rewrite=%v", r.IsAtomic, r.NeedsSplit, r.NeedsRewrite)
	}
	if len(r.Issues) != 0 {
		t.Errorf("clean atom issues: %v", r.Issues)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	e := quality.NewEngine()
	front := "Which protocol resolves IP addresses to MAC addresses?"
	back := "ARP"
	source := "ARP resolves IP addresses to MAC addresses on a LAN."
	a := e.Analyze(front, back, source)
	b := e.Analyze(front, back, source)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Analyze not idempotent:\n%+v\n%+v", a, b)
	}
}

func TestMultipleFacts(t *testing.T) {
	e := quality.NewEngine()
	r := e.Analyze(
		"What protocol features make TCP reliable?",
		"TCP is reliable. It uses sequence numbers. It also uses acknowledgments.",
		"")
	if !r.HasIssue(quality.IssueMultipleFacts) {
		t.Fatalf("expected MULTIPLE_FACTS, got %v", r.Issues)
	}
	if r.IsAtomic {
		t.Error("multi-fact back reported atomic")
	}
	if !r.NeedsSplit {
		t.Error("multi-fact back not flagged for split")
	}
	if r.Grade == "A" || r.Grade == "B" {
		t.Errorf("multi-fact atom graded %q; want C or lower", r.Grade)
	}
}

func TestConnectivePhrases(t *testing.T) {
	e := quality.NewEngine()
	r := e.Analyze("What does a router do?",
		"Forwards packets and also maintains routing tables", "")
	if !r.HasIssue(quality.IssueMultipleFacts) {
		t.Errorf("connective phrase not detected: %v", r.Issues)
	}
}

func TestListInAnswer(t *testing.T) {
	e := quality.NewEngine()
	r := e.Analyze("What are the OSI layers?",
		"- Physical\n- Data Link\n- Network", "")
	if !r.HasIssue(quality.IssueListInAnswer) {
		t.Errorf("bulleted answer not detected: %v", r.Issues)
	}
	if r.IsAtomic {
		t.Error("enumerated answer reported atomic")
	}
}

func TestMultipleQuestions(t *testing.T) {
	e := quality.NewEngine()
	r := e.Analyze("What is a VLAN? And how does trunking work?", "A broadcast domain", "")
	if !r.HasIssue(quality.IssueMultiQuestion) {
		t.Errorf("compound front not detected: %v", r.Issues)
	}
	if !r.NeedsSplit {
		t.Error("compound front not flagged for split")
	}
}

func TestEmptyInputScoresTooShort(t *testing.T) {
	e := quality.NewEngine()
	r := e.Analyze("", "", "")
	if !r.HasIssue(quality.IssueFrontTooShort) || !r.HasIssue(quality.IssueBackTooShort) {
		t.Errorf("empty input issues: %v", r.Issues)
	}
	if r.Score < 0 || r.Score > 100 {
		t.Errorf("score out of range: %v", r.Score)
	}
}

func TestMalformedText(t *testing.T) {
	e := quality.NewEngine()
	cases := []string{
		"What is This?",
		"What The router does when a frame arrives?",
		"Which protocol,, is used for name resolution?",
		"Which protocol is used for... name resolution?",
	}
	for _, front := range cases {
		r := e.Analyze(front, "DNS", "")
		if !r.HasIssue(quality.IssueMalformedText) {
			t.Errorf("front %q: expected MALFORMED_TEXT, got %v", front, r.Issues)
		}
	}
}

func TestClozeMarkupIsNotAnEllipsis(t *testing.T) {
	e := quality.NewEngine()
	r := e.Analyze("STP prevents {{...}} in switched networks.", "loops", "")
	if r.HasIssue(quality.IssueMalformedText) {
		t.Errorf("blank markup flagged as malformed: %v", r.Issues)
	}
}

func TestVagueQuestionAndAnswer(t *testing.T) {
	e := quality.NewEngine()
	r := e.Analyze("What is OSPF?", "It depends on the network design", "")
	if !r.HasIssue(quality.IssueVagueQuestion) {
		t.Errorf("bare question not flagged: %v", r.Issues)
	}
	if !r.HasIssue(quality.IssueVagueAnswer) {
		t.Errorf("hedged answer not flagged: %v", r.Issues)
	}
}

func TestVerboseTiers(t *testing.T) {
	e := quality.NewEngine()
	verbose := "Considering everything we have covered so far about LAN switching, which specific protocol is primarily being used in this scenario?"
	r := e.Analyze(verbose, "STP", "")
	if !r.HasIssue(quality.IssueFrontVerbose) {
		t.Errorf("20-word front not flagged verbose: %v", r.Issues)
	}
	if r.HasIssue(quality.IssueFrontTooLong) {
		t.Errorf("20-word front flagged too long: %v", r.Issues)
	}
}

func TestAddingIssueNeverRaisesScore(t *testing.T) {
	e := quality.NewEngine()
	clean := e.Analyze("What port does DNS use for queries?", "Port 53", "")
	hedged := e.Analyze("What port does DNS use for queries?", "Port 53, sometimes", "")
	if hedged.Score > clean.Score {
		t.Errorf("extra issue raised score: %v > %v", hedged.Score, clean.Score)
	}
}

func TestSourceAccuracy(t *testing.T) {
	e := quality.NewEngine()
	source := "OSPF is a link-state routing protocol. Routers exchange LSAs to build the topology."

	traced := e.Analyze("What kind of routing protocol is OSPF?", "A link-state protocol used by routers", source)
	if traced.HasIssue(quality.IssueSourceMismatch) {
		t.Errorf("traceable atom flagged inaccurate: %v", traced.Issues)
	}

	invented := e.Analyze("What address does BGP advertise for DHCP and NAT on 203.0.113.9?",
		"The EIGRP gateway 198.51.100.7", source)
	if !invented.HasIssue(quality.IssueSourceMismatch) {
		t.Errorf("hallucinated atom not flagged: %v", invented.Issues)
	}
	if invented.Score >= traced.Score {
		t.Errorf("hallucinated atom scored %v >= %v", invented.Score, traced.Score)
	}
}

func TestCustomThresholds(t *testing.T) {
	e := quality.NewEngine(quality.WithFrontLimits(3, 5))
	r := e.Analyze("Name the default OSPF hello interval value", "10 seconds", "")
	if !r.HasIssue(quality.IssueFrontTooLong) {
		t.Errorf("custom limit not applied: %v", r.Issues)
	}
}

func TestAnalyzeAtomKnowledgeCeiling(t *testing.T) {
	e := quality.NewEngine()
	back := "The switch floods the frame out every port except the one it arrived on, then records the source address in its address table"

	factual := atom.New(atom.TypeFlashcard, "What does a switch do with an unknown unicast frame?", back)
	factual.Knowledge = atom.KnowledgeFactual
	conceptual := atom.New(atom.TypeFlashcard, "What does a switch do with an unknown unicast frame?", back)
	conceptual.Knowledge = atom.KnowledgeConceptual

	rf := e.AnalyzeAtom(factual, "")
	rc := e.AnalyzeAtom(conceptual, "")
	if !rf.HasIssue(quality.IssueBackTooLong) {
		t.Errorf("factual ceiling not applied: %v", rf.Issues)
	}
	if rc.HasIssue(quality.IssueBackTooLong) {
		t.Errorf("conceptual atom hit factual ceiling: %v", rc.Issues)
	}
}

func TestImperativeFrontsSkipQuestionCheck(t *testing.T) {
	e := quality.NewEngine()
	a := atom.New(atom.TypeParsons, "Arrange the OSI layers from bottom to top", "")
	if err := a.SetPayload(atom.SequencePayload{Items: []string{"Physical", "Data Link", "Network"}}); err != nil {
		t.Fatal(err)
	}
	r := e.AnalyzeAtom(a, "")
	if r.HasIssue(quality.IssueNotAQuestion) {
		t.Errorf("imperative parsons front flagged NOT_A_QUESTION: %v", r.Issues)
	}
}

func TestCodeSpansExcludedFromLength(t *testing.T) {
	e := quality.NewEngine()
	back := "Use `show ip interface brief` like this:\n```\nRouter# show ip interface brief\nInterface IP-Address OK? Method Status Protocol\nGigabitEthernet0/0 10.0.0.1 YES manual up up\n```"
	r := e.Analyze("Which command summarizes interface state?", back, "")
	if r.HasIssue(quality.IssueBackTooLong) {
		t.Errorf("code block counted against word limit: %v", r.Issues)
	}
}
