// Package store persists atoms, their quality reports and review state
// behind one interface with SQL and in-memory implementations.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
	"github.com/Travinkel/CortexCLI-sub002/internal/quality"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// Filter narrows ListAtoms. Zero values match everything.
type Filter struct {
	SectionID string
	Type      atom.Type
}

// Review is the SM-2 scheduling state for one atom.
type Review struct {
	AtomID      string    `json:"atom_id"`
	Ease        float64   `json:"ease"`
	IntervalDay int       `json:"interval_days"`
	Repetitions int       `json:"repetitions"`
	Lapses      int       `json:"lapses"`
	LastQuality int       `json:"last_quality"`
	DueAt       time.Time `json:"due_at"`
	ReviewedAt  time.Time `json:"reviewed_at"`
}

// NewReview returns the state for an atom that has never been reviewed: due
// immediately at the default SM-2 ease.
func NewReview(atomID string, now time.Time) Review {
	return Review{AtomID: atomID, Ease: 2.5, DueAt: now}
}

// Attempt is one graded answer, kept for calibration and difficulty stats.
type Attempt struct {
	ID         string    `json:"id"`
	AtomID     string    `json:"atom_id"`
	Correct    bool      `json:"correct"`
	Partial    float64   `json:"partial_score"`
	DontKnow   bool      `json:"dont_know"`
	HintsUsed  int       `json:"hints_used"`
	AnsweredAt time.Time `json:"answered_at"`
}

// Store is the persistence contract shared by the SQL and in-memory
// implementations.
type Store interface {
	PutAtom(ctx context.Context, a *atom.Atom) error
	GetAtom(ctx context.Context, id string) (*atom.Atom, error)
	ListAtoms(ctx context.Context, f Filter) ([]*atom.Atom, error)
	DeleteAtom(ctx context.Context, id string) error

	PutReport(ctx context.Context, atomID string, r quality.Report) error
	GetReport(ctx context.Context, atomID string) (quality.Report, error)

	PutReview(ctx context.Context, r Review) error
	GetReview(ctx context.Context, atomID string) (Review, error)
	DueReviews(ctx context.Context, now time.Time, limit int) ([]Review, error)

	LogAttempt(ctx context.Context, at Attempt) error
	Attempts(ctx context.Context, atomID string) ([]Attempt, error)
}
