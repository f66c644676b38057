// Package generate runs candidate atoms from a content generator through
// the quality engine and stores the ones that pass the gate.
package generate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
	"github.com/Travinkel/CortexCLI-sub002/internal/grader"
	"github.com/Travinkel/CortexCLI-sub002/internal/ingest"
	"github.com/Travinkel/CortexCLI-sub002/internal/quality"
	"github.com/Travinkel/CortexCLI-sub002/internal/store"
)

// Generator produces candidate atoms for a section. Implementations are
// external content sources; the pipeline treats them as opaque.
type Generator interface {
	Generate(ctx context.Context, sec *ingest.Section) ([]*atom.Atom, error)
}

// Outcome summarizes one pipeline run.
type Outcome struct {
	Candidates int
	Stored     int
	Rejected   int
	Invalid    int
	Reports    map[string]quality.Report // by atom ID, stored atoms only
}

// Pipeline gates generated atoms on quality and validity before storage.
type Pipeline struct {
	gen      Generator
	engine   *quality.Engine
	store    store.Store
	minScore float64
	log      *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMinScore sets the quality score an atom needs to be stored.
func WithMinScore(score float64) Option {
	return func(p *Pipeline) { p.minScore = score }
}

func WithLogger(log *zap.Logger) Option {
	return func(p *Pipeline) { p.log = log }
}

func NewPipeline(gen Generator, engine *quality.Engine, st store.Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		gen:      gen,
		engine:   engine,
		store:    st,
		minScore: 60, // keep C or better by default
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run generates atoms for the section and its descendants. Candidates that
// fail grader validation are dropped before quality scoring; the rest are
// scored against the section's raw text and stored when they clear the
// minimum score. Reports for stored atoms are persisted alongside them.
func (p *Pipeline) Run(ctx context.Context, sec *ingest.Section) (Outcome, error) {
	out := Outcome{Reports: map[string]quality.Report{}}
	var firstErr error
	sec.Walk(func(s *ingest.Section) {
		if firstErr != nil {
			return
		}
		if err := p.runOne(ctx, s, &out); err != nil {
			firstErr = err
		}
	})
	return out, firstErr
}

func (p *Pipeline) runOne(ctx context.Context, sec *ingest.Section, out *Outcome) error {
	cands, err := p.gen.Generate(ctx, sec)
	if err != nil {
		return fmt.Errorf("generate %q: %w", sec.Title, err)
	}
	out.Candidates += len(cands)

	for _, a := range cands {
		if a.SectionID == "" {
			a.SectionID = sec.ID
		}
		g, ok := grader.For(a.Type)
		if !ok || !g.Validate(a) {
			out.Invalid++
			p.log.Warn("dropping invalid candidate",
				zap.String("type", string(a.Type)),
				zap.String("section", sec.ID))
			continue
		}

		rep := p.engine.AnalyzeAtom(a, sec.RawContent)
		if rep.Score < p.minScore {
			out.Rejected++
			p.log.Info("rejected by quality gate",
				zap.String("atom", a.ID),
				zap.Float64("score", rep.Score),
				zap.String("grade", rep.Grade))
			continue
		}

		if err := p.store.PutAtom(ctx, a); err != nil {
			return fmt.Errorf("store atom %s: %w", a.ID, err)
		}
		if err := p.store.PutReport(ctx, a.ID, rep); err != nil {
			return fmt.Errorf("store report %s: %w", a.ID, err)
		}
		out.Stored++
		out.Reports[a.ID] = rep
	}
	return nil
}
