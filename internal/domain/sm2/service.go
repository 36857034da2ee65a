package sm2

import (
	"errors"
	"time"

	"github.com/lingoflow/lingoflow-api/internal/domain"
)

// Common errors
var (
	ErrNilEntry       = errors.New("vocabulary entry cannot be nil")
	ErrInvalidQuality = errors.New("quality must be between 0 and 5")
)

// Service defines the interface for scheduling operations on vocabulary
// entries. It wraps the pure Compute function with entry bookkeeping
// (familiarity clamping, review counting, next-review timestamps) while
// keeping the entries themselves immutable.
type Service interface {
	// NextSchedule computes the entry's state after a graded event of the
	// given quality, following immutability principles by returning a new
	// entry rather than modifying the existing one.
	NextSchedule(entry *domain.VocabularyEntry, quality int, now time.Time) (*domain.VocabularyEntry, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct{}

// NewService creates the fixed-policy SM-2 scheduling service.
func NewService() Service {
	return defaultService{}
}

// NextSchedule implements Service.
func (defaultService) NextSchedule(
	entry *domain.VocabularyEntry,
	quality int,
	now time.Time,
) (*domain.VocabularyEntry, error) {
	if entry == nil {
		return nil, ErrNilEntry
	}

	if quality < 0 || quality > 5 {
		return nil, ErrInvalidQuality
	}

	result := Compute(entry.IntervalDays, entry.EaseFactor, quality)

	// Copy, never mutate the input entry.
	next := *entry
	next.IntervalDays = result.IntervalDays
	next.EaseFactor = result.EaseFactor
	next.Familiarity = domain.ClampFamiliarity(entry.Familiarity + result.FamiliarityDelta)
	next.ReviewCount = entry.ReviewCount + 1
	next.NextReviewAt = now.AddDate(0, 0, result.IntervalDays)
	lastReview := now
	next.LastReviewAt = &lastReview
	next.UpdatedAt = now

	return &next, nil
}

// QualityForRating maps a self-rating to its SM-2 quality grade for the
// paths graded immediately (no follow-up test). "known" has no immediate
// grade: it is only graded once the test answer arrives.
func QualityForRating(rating domain.Rating) (int, bool) {
	switch rating {
	case domain.RatingUnknown:
		return QualityBlackout, true
	case domain.RatingFuzzy:
		return QualityFuzzy, true
	default:
		return 0, false
	}
}

// QualityForAnswer maps a follow-up test outcome to its SM-2 quality grade.
// A confirmed "known" earns a perfect grade; a failed test is graded as a
// complete blackout regardless of the self-report. This asymmetry is the
// anti-gaming rule: self-report alone never advances a schedule.
func QualityForAnswer(correct bool) int {
	if correct {
		return QualityPerfect
	}
	return QualityBlackout
}
