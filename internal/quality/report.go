package quality

// Issue is one member of the closed set of problems the engine can flag.
type Issue string

const (
	IssueFrontTooShort  Issue = "FRONT_TOO_SHORT"
	IssueBackTooShort   Issue = "BACK_TOO_SHORT"
	IssueFrontVerbose   Issue = "FRONT_VERBOSE"
	IssueFrontTooLong   Issue = "FRONT_TOO_LONG"
	IssueBackVerbose    Issue = "BACK_VERBOSE"
	IssueBackTooLong    Issue = "BACK_TOO_LONG"
	IssueFrontCharLimit Issue = "FRONT_CHAR_LIMIT"
	IssueBackCharLimit  Issue = "BACK_CHAR_LIMIT"
	IssueMultipleFacts  Issue = "MULTIPLE_FACTS"
	IssueListInAnswer   Issue = "LIST_IN_ANSWER"
	IssueMultiQuestion  Issue = "MULTIPLE_QUESTIONS"
	IssueVagueQuestion  Issue = "VAGUE_QUESTION"
	IssueVagueAnswer    Issue = "VAGUE_ANSWER"
	IssueNotAQuestion   Issue = "NOT_A_QUESTION"
	IssueMalformedText  Issue = "MALFORMED_TEXT"
	IssueSourceMismatch Issue = "SOURCE_MISMATCH"
)

// Report is the verdict for one atom. Grade is always consistent with Score
// under the fixed thresholds, and the boolean flags are pure functions of
// the issue set.
type Report struct {
	Score           float64  `json:"score"`
	Grade           string   `json:"grade"`
	Issues          []Issue  `json:"issues"`
	Recommendations []string `json:"recommendations"`
	IsAtomic        bool     `json:"is_atomic"`
	NeedsSplit      bool     `json:"needs_split"`
	NeedsRewrite    bool     `json:"needs_rewrite"`
}

// HasIssue reports whether code was flagged.
func (r Report) HasIssue(code Issue) bool {
	for _, i := range r.Issues {
		if i == code {
			return true
		}
	}
	return false
}

// GradeFor maps a score to its letter grade. The thresholds are fixed, not
// configuration: 90 A, 75 B, 60 C, 40 D, else F.
func GradeFor(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 75:
		return "B"
	case score >= 60:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}

// finding is one triggered check result before aggregation.
type finding struct {
	issue   Issue
	penalty float64
	rec     string
}

// build aggregates findings into a Report: additive penalties from 100,
// clamped to [0,100]; issues deduplicated in first-seen order;
// recommendations deduplicated likewise.
func build(findings []finding) Report {
	score := 100.0
	seenIssue := map[Issue]bool{}
	seenRec := map[string]bool{}
	r := Report{}
	for _, f := range findings {
		score -= f.penalty
		if !seenIssue[f.issue] {
			seenIssue[f.issue] = true
			r.Issues = append(r.Issues, f.issue)
		}
		if f.rec != "" && !seenRec[f.rec] {
			seenRec[f.rec] = true
			r.Recommendations = append(r.Recommendations, f.rec)
		}
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	r.Score = score
	r.Grade = GradeFor(score)

	split := seenIssue[IssueMultipleFacts] || seenIssue[IssueListInAnswer] || seenIssue[IssueMultiQuestion]
	r.IsAtomic = !split
	r.NeedsSplit = split
	r.NeedsRewrite = r.Grade == "D" || r.Grade == "F"
	return r
}
