package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-api/internal/domain"
)

// WordStore defines the interface for catalog word persistence.
// The catalog is read-mostly: the review engine only ever reads it.
type WordStore interface {
	// GetByID retrieves a word by its unique ID.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// FindAll returns the entire catalog, ordered by word text.
	// Used by the question generator for distractor sampling.
	FindAll(ctx context.Context) ([]*domain.Word, error)

	// List returns a page of the catalog, optionally filtered by
	// difficulty (empty difficulty means no filter), plus the total count
	// matching the filter.
	List(ctx context.Context, difficulty domain.Difficulty, offset, limit int) ([]*domain.Word, int, error)

	// FindUnlearned returns up to limit words the user has not yet added
	// to their vocabulary, optionally filtered by difficulty.
	FindUnlearned(ctx context.Context, userID uuid.UUID, difficulty domain.Difficulty, limit int) ([]*domain.Word, error)

	// SetExampleSentence stores a generated example sentence on the word.
	// Returns ErrWordNotFound if the word does not exist.
	SetExampleSentence(ctx context.Context, id uuid.UUID, sentence string) error

	// WithTx returns a new WordStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) WordStore
}
