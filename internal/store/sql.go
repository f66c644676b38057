package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Travinkel/CortexCLI-sub002/internal/atom"
	"github.com/Travinkel/CortexCLI-sub002/internal/quality"
)

// SQLStore implements Store on database/sql. The same statements run on both
// drivers: sqlite accepts $N placeholders like postgres does.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) PutAtom(ctx context.Context, a *atom.Atom) error {
	tags, err := json.Marshal(a.Tags)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO atoms (id,type,front,back,knowledge,tags_json,section_id,content_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET type=EXCLUDED.type, front=EXCLUDED.front, back=EXCLUDED.back,
			knowledge=EXCLUDED.knowledge, tags_json=EXCLUDED.tags_json, section_id=EXCLUDED.section_id,
			content_json=EXCLUDED.content_json`,
		a.ID, string(a.Type), a.Front, a.Back, string(a.Knowledge), string(tags), a.SectionID,
		string(a.Payload), time.Now().Unix())
	return err
}

func scanAtom(row interface{ Scan(...any) error }) (*atom.Atom, error) {
	var a atom.Atom
	var typ, knowledge, tags, payload string
	if err := row.Scan(&a.ID, &typ, &a.Front, &a.Back, &knowledge, &tags, &a.SectionID, &payload); err != nil {
		return nil, err
	}
	a.Type = atom.Type(typ)
	a.Knowledge = atom.Knowledge(knowledge)
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &a.Tags); err != nil {
			return nil, err
		}
	}
	if payload != "" {
		a.Payload = json.RawMessage(payload)
	}
	return &a, nil
}

const atomCols = `id,type,front,back,knowledge,tags_json,section_id,content_json`

func (s *SQLStore) GetAtom(ctx context.Context, id string) (*atom.Atom, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+atomCols+` FROM atoms WHERE id=$1`, id)
	a, err := scanAtom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (s *SQLStore) ListAtoms(ctx context.Context, f Filter) ([]*atom.Atom, error) {
	q := `SELECT ` + atomCols + ` FROM atoms WHERE ($1 = '' OR section_id = $1) AND ($2 = '' OR type = $2) ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, q, f.SectionID, string(f.Type))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*atom.Atom
	for rows.Next() {
		a, err := scanAtom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteAtom(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM atoms WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) PutReport(ctx context.Context, atomID string, r quality.Report) error {
	buf, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO quality_reports (atom_id,score,grade,report_json,graded_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (atom_id) DO UPDATE SET score=EXCLUDED.score, grade=EXCLUDED.grade,
			report_json=EXCLUDED.report_json, graded_at=EXCLUDED.graded_at`,
		atomID, r.Score, r.Grade, string(buf), time.Now().Unix())
	return err
}

func (s *SQLStore) GetReport(ctx context.Context, atomID string) (quality.Report, error) {
	row := s.db.QueryRowContext(ctx, `SELECT report_json FROM quality_reports WHERE atom_id=$1`, atomID)
	var buf string
	if err := row.Scan(&buf); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quality.Report{}, ErrNotFound
		}
		return quality.Report{}, err
	}
	var r quality.Report
	if err := json.Unmarshal([]byte(buf), &r); err != nil {
		return quality.Report{}, err
	}
	return r, nil
}

func (s *SQLStore) PutReview(ctx context.Context, r Review) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO reviews (atom_id,ease,interval_days,repetitions,lapses,last_quality,due_at,reviewed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (atom_id) DO UPDATE SET ease=EXCLUDED.ease, interval_days=EXCLUDED.interval_days,
			repetitions=EXCLUDED.repetitions, lapses=EXCLUDED.lapses, last_quality=EXCLUDED.last_quality,
			due_at=EXCLUDED.due_at, reviewed_at=EXCLUDED.reviewed_at`,
		r.AtomID, r.Ease, r.IntervalDay, r.Repetitions, r.Lapses, r.LastQuality,
		r.DueAt.Unix(), unixOrZero(r.ReviewedAt))
	return err
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func scanReview(row interface{ Scan(...any) error }) (Review, error) {
	var r Review
	var due, reviewed int64
	if err := row.Scan(&r.AtomID, &r.Ease, &r.IntervalDay, &r.Repetitions, &r.Lapses, &r.LastQuality, &due, &reviewed); err != nil {
		return Review{}, err
	}
	r.DueAt = time.Unix(due, 0)
	if reviewed != 0 {
		r.ReviewedAt = time.Unix(reviewed, 0)
	}
	return r, nil
}

const reviewCols = `atom_id,ease,interval_days,repetitions,lapses,last_quality,due_at,reviewed_at`

func (s *SQLStore) GetReview(ctx context.Context, atomID string) (Review, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+reviewCols+` FROM reviews WHERE atom_id=$1`, atomID)
	r, err := scanReview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Review{}, ErrNotFound
	}
	return r, err
}

func (s *SQLStore) DueReviews(ctx context.Context, now time.Time, limit int) ([]Review, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+reviewCols+` FROM reviews WHERE due_at <= $1 ORDER BY due_at, atom_id LIMIT $2`,
		now.Unix(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) LogAttempt(ctx context.Context, at Attempt) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO attempts (id,atom_id,correct,partial,dont_know,hints_used,answered_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		at.ID, at.AtomID, boolInt(at.Correct), at.Partial, boolInt(at.DontKnow), at.HintsUsed, at.AnsweredAt.Unix())
	return err
}

func (s *SQLStore) Attempts(ctx context.Context, atomID string) ([]Attempt, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,atom_id,correct,partial,dont_know,hints_used,answered_at
		FROM attempts WHERE atom_id=$1 ORDER BY answered_at, id`, atomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Attempt
	for rows.Next() {
		var at Attempt
		var correct, dontKnow int
		var answered int64
		if err := rows.Scan(&at.ID, &at.AtomID, &correct, &at.Partial, &dontKnow, &at.HintsUsed, &answered); err != nil {
			return nil, err
		}
		at.Correct = correct != 0
		at.DontKnow = dontKnow != 0
		at.AnsweredAt = time.Unix(answered, 0)
		out = append(out, at)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
