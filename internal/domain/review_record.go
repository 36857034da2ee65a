package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Rating is a user's self-assessment of how well they know a word.
type Rating string

// Possible self-rating values
const (
	// RatingKnown means the user claims to know the word. It is never
	// trusted standalone: the schedule only advances after the follow-up
	// test confirms it.
	RatingKnown Rating = "known"

	// RatingFuzzy means the user half-remembers the word.
	RatingFuzzy Rating = "fuzzy"

	// RatingUnknown means the user does not know the word.
	RatingUnknown Rating = "unknown"
)

// IsValid reports whether r is one of the known rating values.
func (r Rating) IsValid() bool {
	switch r {
	case RatingKnown, RatingFuzzy, RatingUnknown:
		return true
	default:
		return false
	}
}

// Validation errors for ReviewRecord
var (
	ErrEmptyRecordID      = errors.New("review record ID cannot be empty")
	ErrEmptyRecordUserID  = errors.New("review record user ID cannot be empty")
	ErrEmptyRecordEntryID = errors.New("review record entry ID cannot be empty")
)

// ReviewRecord is one append-only log entry for a self-rating event.
// A record created by a "known" rating stays open (TestPassed nil) until
// the follow-up test answer closes it; records for "unknown"/"fuzzy"
// ratings are immutable from creation.
type ReviewRecord struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	EntryID        uuid.UUID `json:"entry_id"`
	Rating         Rating    `json:"rating"`
	TestPassed     *bool     `json:"test_passed,omitempty"`
	ResponseTimeMs *int      `json:"response_time_ms,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewReviewRecord creates an open review record for a self-rating event.
func NewReviewRecord(userID, entryID uuid.UUID, rating Rating) (*ReviewRecord, error) {
	record := &ReviewRecord{
		ID:        uuid.New(),
		UserID:    userID,
		EntryID:   entryID,
		Rating:    rating,
		CreatedAt: time.Now().UTC(),
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Validate checks if the ReviewRecord has valid data.
func (r *ReviewRecord) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyRecordID
	}

	if r.UserID == uuid.Nil {
		return ErrEmptyRecordUserID
	}

	if r.EntryID == uuid.Nil {
		return ErrEmptyRecordEntryID
	}

	if !r.Rating.IsValid() {
		return ErrInvalidRating
	}

	return nil
}
