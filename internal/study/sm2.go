package study

import (
	"time"

	"github.com/Travinkel/CortexCLI-sub002/internal/grader"
	"github.com/Travinkel/CortexCLI-sub002/internal/store"
)

// Quality is the 0..5 SuperMemo-2 response grade.
type Quality int

const (
	QualityBlackout      Quality = 0 // gave up or marked "don't know"
	QualityWrong         Quality = 1 // incorrect, no partial credit
	QualityWrongFamiliar Quality = 2 // incorrect but earned partial credit
	QualityHardCorrect   Quality = 3 // correct after leaning on hints
	QualityCorrect       Quality = 4 // correct with one hint
	QualityPerfect       Quality = 5 // correct, unaided
)

// QualityOf maps a grading result onto the SM-2 scale.
func QualityOf(res grader.Result, hintsUsed int) Quality {
	switch {
	case res.DontKnow:
		return QualityBlackout
	case !res.Correct && res.Partial == 0:
		return QualityWrong
	case !res.Correct:
		return QualityWrongFamiliar
	case hintsUsed >= 2:
		return QualityHardCorrect
	case hintsUsed == 1:
		return QualityCorrect
	default:
		return QualityPerfect
	}
}

// SM2 schedules reviews with the SuperMemo-2 algorithm: an easiness factor
// nudged by each response, fixed early intervals, multiplicative growth
// afterwards, and a reset to one day on failure.
type SM2 struct {
	PassThreshold    Quality
	MaxIntervalDays  int
	InitialIntervals []int
}

func NewSM2() *SM2 {
	return &SM2{
		PassThreshold:    QualityHardCorrect,
		MaxIntervalDays:  365,
		InitialIntervals: []int{1, 3, 7, 14, 30},
	}
}

// Process updates the review state in place for one response at time now.
func (s *SM2) Process(r *store.Review, q Quality, now time.Time) {
	r.LastQuality = int(q)
	r.ReviewedAt = now

	ease := r.Ease + (0.1 - (5.0-float64(q))*(0.08+(5.0-float64(q))*0.02))
	if ease < 1.3 {
		ease = 1.3
	}
	r.Ease = ease

	if q >= s.PassThreshold {
		var next int
		if r.Repetitions < len(s.InitialIntervals) {
			next = s.InitialIntervals[r.Repetitions]
		} else {
			next = int(float64(r.IntervalDay) * r.Ease)
		}
		if next > s.MaxIntervalDays {
			next = s.MaxIntervalDays
		}
		r.IntervalDay = next
		r.Repetitions++
	} else {
		r.Lapses++
		r.Repetitions = 0
		r.IntervalDay = 1
	}
	r.DueAt = now.AddDate(0, 0, r.IntervalDay)
}

// Mastered reports whether the atom can be considered learned: several
// successful repetitions, a recent good response, and a long interval.
func (s *SM2) Mastered(r store.Review) bool {
	return r.Repetitions >= 5 && r.LastQuality >= int(QualityCorrect) && r.IntervalDay >= 30
}
