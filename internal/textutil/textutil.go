// Package textutil holds the pure string helpers shared by the quality
// engine and the answer graders. Everything here is deterministic and
// allocation-light; nothing does I/O.
package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

// Normalize does simple casefolding and trims punctuation/extra spaces.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range []rune(s) {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsPunct(r):
			// skip
		default:
			if space && len(out) > 0 {
				out = append(out, ' ')
			}
			space = false
			out = append(out, unicode.ToLower(r))
		}
	}
	return string(out)
}

// Fold lowercases and collapses surrounding whitespace. Unlike Normalize it
// keeps punctuation, so IP addresses and CLI commands survive comparison.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var (
	fencedCode = regexp.MustCompile("(?s)```.*?```")
	inlineCode = regexp.MustCompile("`[^`\n]*`")
)

// StripCode removes fenced and inline code spans. Word-count limits apply to
// prose only; a long configuration snippet should not read as verbosity.
func StripCode(s string) string {
	s = fencedCode.ReplaceAllString(s, " ")
	s = inlineCode.ReplaceAllString(s, " ")
	return s
}

// WordCount counts whitespace-separated words outside code spans.
func WordCount(s string) int {
	return len(strings.Fields(StripCode(s)))
}

// SentenceCount counts sentence-ending punctuation marks (. ! ?) outside
// code spans. Decimal points and dotted quads are not sentence ends.
func SentenceCount(s string) int {
	s = StripCode(s)
	n := 0
	runes := []rune(s)
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		// a dot flanked by digits is a decimal or an octet separator
		if r == '.' && i > 0 && i < len(runes)-1 &&
			unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
			continue
		}
		n++
	}
	return n
}

// ListLines counts lines that look like bullet or numbered list entries.
func ListLines(s string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		if strings.HasPrefix(t, "- ") || strings.HasPrefix(t, "* ") || strings.HasPrefix(t, "• ") {
			n++
			continue
		}
		if numberedLine.MatchString(t) {
			n++
		}
	}
	return n
}

var numberedLine = regexp.MustCompile(`^\d+[.)]\s`)

// Levenshtein computes edit distance (insertion, deletion, substitution cost 1).
func Levenshtein(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	n, m := len(ar), len(br)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}
	dp := make([]int, m+1)
	for j := 0; j <= m; j++ {
		dp[j] = j
	}
	for i := 1; i <= n; i++ {
		prev := dp[0]
		dp[0] = i
		for j := 1; j <= m; j++ {
			tmp := dp[j]
			cost := 0
			if ar[i-1] != br[j-1] {
				cost = 1
			}
			ins := dp[j] + 1
			del := dp[j-1] + 1
			sub := prev + cost
			dp[j] = min3(ins, del, sub)
			prev = tmp
		}
	}
	return dp[m]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

var ipv4Pattern = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)

// IPv4Literals returns every dotted-quad-shaped token in s. Octet range is
// not validated here; the accuracy check only needs literal traceability.
func IPv4Literals(s string) []string {
	return ipv4Pattern.FindAllString(s, -1)
}
