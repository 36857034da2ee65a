// Package review implements the spaced-repetition review engine: the due
// queue with its cached snapshot, the self-rating and test-answer state
// machine, and the wiring between them and the SM-2 scheduler.
//
// Per-entry review is a small state machine with two entry points and at
// most two steps. A non-"known" self-rating grades the entry immediately.
// A "known" self-rating is never trusted standalone: it opens a review
// record and hands back a multiple-choice question, and only the test
// answer grades the entry. Answers flagged as error-queue retries report
// correctness but never touch scheduling state.
package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common review service errors
var (
	// ErrEntryNotFound indicates the vocabulary entry does not exist or
	// does not belong to the requesting user. The two cases are deliberately
	// indistinguishable to the caller.
	ErrEntryNotFound = errors.New("vocabulary entry not found")

	// ErrRecordNotFound indicates the referenced review record does not
	// exist or does not match the entry being answered.
	ErrRecordNotFound = errors.New("review record not found")

	// ErrInvalidRating indicates the rating value is not one of
	// known/fuzzy/unknown.
	ErrInvalidRating = errors.New("invalid rating value")

	// ErrEmptyAnswer indicates a test answer with no content.
	ErrEmptyAnswer = errors.New("answer cannot be empty")
)

// QueueItem is the display projection of one due vocabulary entry.
type QueueItem struct {
	EntryID     uuid.UUID `json:"entry_id"`
	WordID      uuid.UUID `json:"word_id"`
	Word        string    `json:"word"`
	Phonetic    string    `json:"phonetic"`
	Meaning     string    `json:"meaning"`
	Familiarity int       `json:"familiarity"`
	ReviewCount int       `json:"review_count"`
}

// Question is a 4-option multiple-choice test for a word. Options may
// degrade below 4 when the catalog lacks enough distinct distractor
// meanings.
type Question struct {
	Word          string   `json:"word"`
	Phonetic      string   `json:"phonetic"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"-"`
}

// RatingResult is the outcome of a self-rating submission.
//
// RecordID identifies the review record opened by this rating. For the
// "known" path the caller should echo it back in the answer submission so
// the answer closes this exact record instead of relying on "most recent
// open".
type RatingResult struct {
	RecordID uuid.UUID `json:"record_id"`

	// NeedTest is true when the rating was "known" and the schedule is
	// untouched pending the follow-up test.
	NeedTest bool `json:"need_test"`

	// Question is set only when NeedTest is true.
	Question *Question `json:"question,omitempty"`

	// Meaning reveals the correct meaning on the immediately graded paths.
	Meaning string `json:"meaning,omitempty"`

	// NextReviewAt and Familiarity reflect the new schedule on the
	// immediately graded paths; both are nil when NeedTest is true.
	NextReviewAt *time.Time `json:"next_review_at,omitempty"`
	Familiarity  *int       `json:"familiarity,omitempty"`
}

// AnswerResult is the outcome of a test-answer submission.
type AnswerResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`

	// NextReviewAt and Familiarity reflect the new schedule; both are nil
	// for error-queue retries, which never mutate scheduling state.
	NextReviewAt *time.Time `json:"next_review_at,omitempty"`
	Familiarity  *int       `json:"familiarity,omitempty"`
}

// AnswerRequest carries the parameters of a test-answer submission.
type AnswerRequest struct {
	// EntryID identifies the vocabulary entry being answered.
	EntryID uuid.UUID

	// Answer is the selected meaning; correctness is an exact string match
	// against the catalog meaning.
	Answer string

	// RecordID optionally pins the review record this answer closes.
	// When uuid.Nil, the most recent open record for the entry is used.
	RecordID uuid.UUID

	// IsFromErrorQueue marks the answer as a retry from the error-review
	// drill flow. Such answers only report correctness.
	IsFromErrorQueue bool

	// ResponseTimeMs optionally records how long the user took to answer.
	ResponseTimeMs *int
}

// ReviewService is the review orchestrator exposed to the transport layer.
type ReviewService interface {
	// GetQueue returns today's due queue for the user, serving the cached
	// snapshot when one exists and rebuilding it from the store otherwise.
	GetQueue(ctx context.Context, userID uuid.UUID) ([]QueueItem, error)

	// SubmitRating processes a self-rating for a vocabulary entry.
	// Returns ErrEntryNotFound if the entry is absent or owned by another
	// user, ErrInvalidRating for an unrecognized rating value.
	SubmitRating(ctx context.Context, userID, entryID uuid.UUID, rating string) (*RatingResult, error)

	// SubmitAnswer processes a test answer for a vocabulary entry.
	// Returns ErrEntryNotFound if the entry is absent or owned by another
	// user, ErrRecordNotFound if req.RecordID names a record that does not
	// match, ErrEmptyAnswer for a blank answer.
	SubmitAnswer(ctx context.Context, userID uuid.UUID, req AnswerRequest) (*AnswerResult, error)
}
