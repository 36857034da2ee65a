package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Scheduling defaults and bounds for vocabulary entries.
const (
	// DefaultEaseFactor is the SM-2 easiness factor assigned to a fresh entry.
	DefaultEaseFactor = 2.5

	// MinEaseFactor is the floor below which the easiness factor never drops.
	MinEaseFactor = 1.3

	// MaxFamiliarity and MinFamiliarity bound the familiarity score.
	MaxFamiliarity = 100
	MinFamiliarity = 0
)

// Common validation errors for VocabularyEntry
var (
	ErrEmptyEntryID      = errors.New("vocabulary entry ID cannot be empty")
	ErrEmptyEntryUserID  = errors.New("vocabulary entry user ID cannot be empty")
	ErrEmptyEntryWordID  = errors.New("vocabulary entry word ID cannot be empty")
	ErrInvalidInterval   = errors.New("interval must be greater than or equal to 0")
	ErrInvalidEaseFactor = errors.New("ease factor must be at least 1.3")
	ErrInvalidFamiliarity = errors.New(
		"familiarity must be between 0 and 100",
	)
)

// VocabularyEntry is one user's relationship to one catalog word, carrying
// the SM-2 scheduling state that decides when the word comes up for review.
//
// Invariants: EaseFactor >= 1.3 always; Familiarity stays in [0,100];
// NextReviewAt only moves forward from "now", except for the reset-to-one-day
// rule applied on a failed review.
type VocabularyEntry struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	WordID      uuid.UUID `json:"word_id"`
	Familiarity int       `json:"familiarity"`  // Bounded [0,100] confidence score
	ReviewCount int       `json:"review_count"` // Monotonic count of graded events
	EaseFactor  float64   `json:"ease_factor"`  // SM-2 easiness factor, floor 1.3
	IntervalDays int      `json:"interval_days"`
	NextReviewAt time.Time `json:"next_review_at"`
	LastReviewAt *time.Time `json:"last_review_at,omitempty"` // Nil until first graded event
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Word is the joined catalog word, populated by store reads.
	// Read-only from the review engine's perspective.
	Word *Word `json:"word,omitempty"`
}

// NewVocabularyEntry creates a fresh entry for a user and word with default
// scheduling state: zero familiarity, no review history, due immediately.
func NewVocabularyEntry(userID, wordID uuid.UUID) (*VocabularyEntry, error) {
	now := time.Now().UTC()
	entry := &VocabularyEntry{
		ID:           uuid.New(),
		UserID:       userID,
		WordID:       wordID,
		Familiarity:  0,
		ReviewCount:  0,
		EaseFactor:   DefaultEaseFactor,
		IntervalDays: 0,
		NextReviewAt: now, // Available for review immediately
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the VocabularyEntry has valid data.
// Returns an error if any field fails validation.
func (e *VocabularyEntry) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyEntryID
	}

	if e.UserID == uuid.Nil {
		return ErrEmptyEntryUserID
	}

	if e.WordID == uuid.Nil {
		return ErrEmptyEntryWordID
	}

	if e.IntervalDays < 0 {
		return ErrInvalidInterval
	}

	if e.EaseFactor < MinEaseFactor {
		return ErrInvalidEaseFactor
	}

	if e.Familiarity < MinFamiliarity || e.Familiarity > MaxFamiliarity {
		return ErrInvalidFamiliarity
	}

	return nil
}

// ClampFamiliarity bounds a familiarity value to [MinFamiliarity, MaxFamiliarity].
func ClampFamiliarity(familiarity int) int {
	if familiarity < MinFamiliarity {
		return MinFamiliarity
	}
	if familiarity > MaxFamiliarity {
		return MaxFamiliarity
	}
	return familiarity
}
