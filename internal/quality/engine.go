// Package quality scores candidate atoms for pedagogical fitness. The engine
// is a pure function of its inputs: independent rule-based checks each
// contribute a penalty against a starting score of 100, the sum is clamped
// to [0,100], and the score maps to a letter grade through fixed thresholds.
// Penalty contributions are commutative, so check order never changes the
// result.
package quality

import "github.com/Travinkel/CortexCLI-sub002/internal/atom"

// Config carries every threshold and penalty magnitude the checks use.
// Zero values are not meaningful; start from DefaultConfig and override
// through options so tests can tighten or loosen single knobs.
type Config struct {
	// Word-count thresholds. Fronts get a two-tier limit: over optimal is
	// verbose, over max is too long. Backs must be terser than fronts, and
	// factual answers get a smaller ceiling than conceptual ones.
	FrontOptimalWords      int
	FrontMaxWords          int
	BackOptimalWords       int
	BackMaxWordsFactual    int
	BackMaxWordsConceptual int

	// Character caps apply independently of word caps so a single long
	// token (an unbroken command line, a base64 blob) is still caught.
	FrontMaxChars int
	BackMaxChars  int
	FrontMinChars int
	BackMinChars  int

	// Source-accuracy gate: below this confidence the atom is flagged.
	AccuracyThreshold float64

	PenaltyVerbose       float64
	PenaltyTooLong       float64
	PenaltyCharLimit     float64
	PenaltyTooShort      float64
	PenaltyMultipleFacts float64
	PenaltyListInAnswer  float64
	PenaltyMultiQuestion float64
	PenaltyVagueQuestion float64
	PenaltyVagueAnswer   float64
	PenaltyNotAQuestion  float64
	PenaltyMalformed     float64
	PenaltyInaccuracyMax float64
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		FrontOptimalWords:      15,
		FrontMaxWords:          25,
		BackOptimalWords:       10,
		BackMaxWordsFactual:    20,
		BackMaxWordsConceptual: 40,
		FrontMaxChars:          200,
		BackMaxChars:           300,
		FrontMinChars:          15,
		BackMinChars:           3,
		AccuracyThreshold:      0.70,
		PenaltyVerbose:         5,
		PenaltyTooLong:         15,
		PenaltyCharLimit:       10,
		PenaltyTooShort:        20,
		PenaltyMultipleFacts:   30,
		PenaltyListInAnswer:    25,
		PenaltyMultiQuestion:   20,
		PenaltyVagueQuestion:   10,
		PenaltyVagueAnswer:     15,
		PenaltyNotAQuestion:    10,
		PenaltyMalformed:       45,
		PenaltyInaccuracyMax:   35,
	}
}

// Option tweaks engine configuration.
type Option func(*Config)

// WithConfig replaces the whole configuration.
func WithConfig(c Config) Option { return func(dst *Config) { *dst = c } }

// WithAccuracyThreshold overrides the source-accuracy confidence gate.
func WithAccuracyThreshold(t float64) Option {
	return func(c *Config) { c.AccuracyThreshold = t }
}

// WithFrontLimits overrides the front word thresholds.
func WithFrontLimits(optimal, max int) Option {
	return func(c *Config) { c.FrontOptimalWords, c.FrontMaxWords = optimal, max }
}

// Engine runs the checks. Safe for concurrent use; Analyze mutates nothing.
type Engine struct {
	cfg Config
}

// NewEngine builds an engine from the defaults plus any options.
func NewEngine(opts ...Option) *Engine {
	cfg := DefaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Engine{cfg: cfg}
}

// Config returns a copy of the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Analyze grades front/back text against an optional source excerpt.
// Empty strings are valid input and score as "too short"; the function
// never fails. Without an atom in hand the answer is held to the
// conceptual-knowledge length ceiling.
func (e *Engine) Analyze(front, back, sourceText string) Report {
	return e.analyze(front, back, sourceText, atom.KnowledgeConceptual, true)
}

// AnalyzeAtom grades a full atom, using its knowledge type to pick the
// answer-length ceiling and skipping question-structure checks for
// exercise types whose fronts are instructions rather than questions.
func (e *Engine) AnalyzeAtom(a *atom.Atom, sourceText string) Report {
	k := a.Knowledge
	if k == "" {
		k = atom.KnowledgeConceptual
	}
	return e.analyze(a.Front, a.Back, sourceText, k, questionFront(a.Type))
}

func (e *Engine) analyze(front, back, sourceText string, k atom.Knowledge, wantQuestion bool) Report {
	var findings []finding
	findings = append(findings, e.checkLength(front, back, k)...)
	findings = append(findings, e.checkAtomicity(front, back)...)
	findings = append(findings, e.checkClarity(front, back, wantQuestion)...)
	findings = append(findings, e.checkCoherence(front, back)...)
	if sourceText != "" {
		findings = append(findings, e.checkAccuracy(front, back, sourceText)...)
	}
	return build(findings)
}

// questionFront reports whether the exercise type phrases its front as a
// question. Ordering, matching and rating prompts are imperative.
func questionFront(t atom.Type) bool {
	switch t {
	case atom.TypeFlashcard, atom.TypeShortAnswer, atom.TypeShortAnswerRegex,
		atom.TypeMultipleChoice, atom.TypeTrueFalse, atom.TypeNumeric:
		return true
	default:
		return false
	}
}
