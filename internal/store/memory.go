package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
	"github.com/Travinkel/CortexCLI-sub002/internal/quality"
)

// MemoryStore is the map-backed Store used by tests and one-shot CLI runs
// that do not need a database file.
type MemoryStore struct {
	mu       sync.RWMutex
	atoms    map[string]*atom.Atom
	order    []string // insertion order for stable listings
	reports  map[string]quality.Report
	reviews  map[string]Review
	attempts map[string][]Attempt
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		atoms:    map[string]*atom.Atom{},
		reports:  map[string]quality.Report{},
		reviews:  map[string]Review{},
		attempts: map[string][]Attempt{},
	}
}

func copyAtom(a *atom.Atom) *atom.Atom {
	c := *a
	c.Tags = append([]string(nil), a.Tags...)
	c.Payload = append([]byte(nil), a.Payload...)
	return &c
}

func (s *MemoryStore) PutAtom(_ context.Context, a *atom.Atom) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.atoms[a.ID]; !exists {
		s.order = append(s.order, a.ID)
	}
	s.atoms[a.ID] = copyAtom(a)
	return nil
}

func (s *MemoryStore) GetAtom(_ context.Context, id string) (*atom.Atom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.atoms[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyAtom(a), nil
}

func (s *MemoryStore) ListAtoms(_ context.Context, f Filter) ([]*atom.Atom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*atom.Atom
	for _, id := range s.order {
		a, ok := s.atoms[id]
		if !ok {
			continue
		}
		if f.SectionID != "" && a.SectionID != f.SectionID {
			continue
		}
		if f.Type != "" && a.Type != f.Type {
			continue
		}
		out = append(out, copyAtom(a))
	}
	return out, nil
}

func (s *MemoryStore) DeleteAtom(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.atoms[id]; !ok {
		return ErrNotFound
	}
	delete(s.atoms, id)
	delete(s.reports, id)
	delete(s.reviews, id)
	delete(s.attempts, id)
	return nil
}

func (s *MemoryStore) PutReport(_ context.Context, atomID string, r quality.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[atomID] = r
	return nil
}

func (s *MemoryStore) GetReport(_ context.Context, atomID string) (quality.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[atomID]
	if !ok {
		return quality.Report{}, ErrNotFound
	}
	return r, nil
}

func (s *MemoryStore) PutReview(_ context.Context, r Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[r.AtomID] = r
	return nil
}

func (s *MemoryStore) GetReview(_ context.Context, atomID string) (Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reviews[atomID]
	if !ok {
		return Review{}, ErrNotFound
	}
	return r, nil
}

func (s *MemoryStore) DueReviews(_ context.Context, now time.Time, limit int) ([]Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var due []Review
	for _, r := range s.reviews {
		if !r.DueAt.After(now) {
			due = append(due, r)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].DueAt.Equal(due[j].DueAt) {
			return due[i].DueAt.Before(due[j].DueAt)
		}
		return due[i].AtomID < due[j].AtomID
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (s *MemoryStore) LogAttempt(_ context.Context, at Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[at.AtomID] = append(s.attempts[at.AtomID], at)
	return nil
}

func (s *MemoryStore) Attempts(_ context.Context, atomID string) ([]Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Attempt(nil), s.attempts[atomID]...), nil
}
