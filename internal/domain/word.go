package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Difficulty is the coarse difficulty classification of a catalog word.
type Difficulty string

// Possible difficulty values
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether d is one of the known difficulty values.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Word-specific validation errors
var (
	// ErrWordIDEmpty is returned when a word ID is empty or nil.
	ErrWordIDEmpty = errors.New("word ID cannot be empty")

	// ErrWordTextEmpty is returned when a word's text is empty.
	ErrWordTextEmpty = errors.New("word text cannot be empty")

	// ErrWordMeaningEmpty is returned when a word's meaning is empty.
	ErrWordMeaningEmpty = errors.New("word meaning cannot be empty")
)

// Word is one entry in the shared word catalog. Words are read-only from
// the review engine's perspective; only the catalog importer writes them.
type Word struct {
	ID              uuid.UUID  `json:"id"`
	Text            string     `json:"text"`
	Phonetic        string     `json:"phonetic"`
	Meaning         string     `json:"meaning"`
	ExampleSentence string     `json:"example_sentence,omitempty"`
	Difficulty      Difficulty `json:"difficulty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewWord creates a new catalog Word.
// Returns an error if validation fails.
func NewWord(text, phonetic, meaning string, difficulty Difficulty) (*Word, error) {
	word := &Word{
		ID:         uuid.New(),
		Text:       text,
		Phonetic:   phonetic,
		Meaning:    meaning,
		Difficulty: difficulty,
		CreatedAt:  time.Now().UTC(),
	}

	if err := word.Validate(); err != nil {
		return nil, err
	}

	return word, nil
}

// Validate checks if the Word has valid data.
func (w *Word) Validate() error {
	if w.ID == uuid.Nil {
		return ErrWordIDEmpty
	}

	if w.Text == "" {
		return ErrWordTextEmpty
	}

	if w.Meaning == "" {
		return ErrWordMeaningEmpty
	}

	if !w.Difficulty.IsValid() {
		return ErrInvalidDifficulty
	}

	return nil
}
