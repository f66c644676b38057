// Package study drives review sessions: due atoms come out of the store,
// answers go through the graders, and SM-2 reschedules each atom from the
// outcome.
package study

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
	"github.com/Travinkel/CortexCLI-sub002/internal/grader"
	"github.com/Travinkel/CortexCLI-sub002/internal/store"
)

// Renderer is the presentation layer: it shows prompts and results and
// collects structured responses. WantHint on a response asks for the next
// hint instead of grading.
type Renderer interface {
	Prompt(a *atom.Atom, pres *grader.Presentation) (grader.Response, bool, error)
	ShowHint(hint string)
	ShowResult(a *atom.Atom, res grader.Result)
}

// Summary totals one session.
type Summary struct {
	Reviewed int
	Correct  int
	Partial  int // incorrect but with partial credit
	DontKnow int
	Skipped  int
}

// Session pulls due reviews and runs them through renderer and graders.
type Session struct {
	store    store.Store
	renderer Renderer
	sm2      *SM2
	log      *zap.Logger
	now      func() time.Time
	seed     func() int64
}

type SessionOption func(*Session)

// WithClock fixes the session's notion of now.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithSeed fixes the shuffle seed source.
func WithSeed(seed func() int64) SessionOption {
	return func(s *Session) { s.seed = seed }
}

func WithSessionLogger(log *zap.Logger) SessionOption {
	return func(s *Session) { s.log = log }
}

func NewSession(st store.Store, r Renderer, opts ...SessionOption) *Session {
	s := &Session{
		store:    st,
		renderer: r,
		sm2:      NewSM2(),
		log:      zap.NewNop(),
		now:      time.Now,
		seed:     func() int64 { return time.Now().UnixNano() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run reviews up to limit due atoms and returns the session totals.
func (s *Session) Run(ctx context.Context, limit int) (Summary, error) {
	var sum Summary
	due, err := s.store.DueReviews(ctx, s.now(), limit)
	if err != nil {
		return sum, err
	}
	for _, rev := range due {
		if err := s.reviewOne(ctx, rev, &sum); err != nil {
			return sum, err
		}
	}
	return sum, nil
}

func (s *Session) reviewOne(ctx context.Context, rev store.Review, sum *Summary) error {
	a, err := s.store.GetAtom(ctx, rev.AtomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Atom deleted since scheduling; drop the orphan silently.
			s.log.Warn("orphaned review", zap.String("atom", rev.AtomID))
			return nil
		}
		return err
	}

	pres := grader.Shuffle(a, s.seed())
	hintsUsed := 0
	var resp grader.Response
	for {
		r, wantHint, err := s.renderer.Prompt(a, pres)
		if err != nil {
			return fmt.Errorf("prompt %s: %w", a.ID, err)
		}
		if !wantHint {
			resp = r
			break
		}
		hint, ok := grader.Hint(a, hintsUsed+1, pres)
		if !ok {
			s.renderer.ShowHint("No more hints.")
			continue
		}
		hintsUsed++
		s.renderer.ShowHint(hint)
	}

	res := grader.Check(a, resp, pres)
	s.renderer.ShowResult(a, res)

	now := s.now()
	if err := s.store.LogAttempt(ctx, store.Attempt{
		ID:         uuid.NewString(),
		AtomID:     a.ID,
		Correct:    res.Correct,
		Partial:    res.Partial,
		DontKnow:   res.DontKnow,
		HintsUsed:  hintsUsed,
		AnsweredAt: now,
	}); err != nil {
		return err
	}

	sum.Reviewed++
	switch {
	case resp.Skip:
		sum.Skipped++
		// A skip carries no signal; leave the schedule untouched.
		return nil
	case res.DontKnow:
		sum.DontKnow++
	case res.Correct:
		sum.Correct++
	case res.Partial > 0:
		sum.Partial++
	}

	s.sm2.Process(&rev, QualityOf(res, hintsUsed), now)
	s.log.Debug("rescheduled",
		zap.String("atom", a.ID),
		zap.Int("quality", rev.LastQuality),
		zap.Int("interval_days", rev.IntervalDay))
	return s.store.PutReview(ctx, rev)
}

// Enroll creates review state for every stored atom that has none, so new
// atoms enter the queue. It returns how many were enrolled.
func (s *Session) Enroll(ctx context.Context, f store.Filter) (int, error) {
	atoms, err := s.store.ListAtoms(ctx, f)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, a := range atoms {
		if _, err := s.store.GetReview(ctx, a.ID); err == nil {
			continue
		} else if !errors.Is(err, store.ErrNotFound) {
			return n, err
		}
		if err := s.store.PutReview(ctx, store.NewReview(a.ID, s.now())); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
