package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-api/internal/domain"
)

// VocabularyStore defines the interface for vocabulary entry persistence.
// Entries carry the per-user SM-2 scheduling state, so reads that precede
// a scheduling write must use GetForUpdate inside a transaction.
type VocabularyStore interface {
	// Create saves a new vocabulary entry.
	// Returns ErrEntryExists if the user already has this word.
	Create(ctx context.Context, entry *domain.VocabularyEntry) error

	// GetByID retrieves an entry (with its joined word) by its unique ID.
	// Returns ErrEntryNotFound if the entry does not exist.
	// NOTE: no row locking; do not use when you plan to update scheduling
	// state under concurrency.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.VocabularyEntry, error)

	// GetForUpdate retrieves an entry with a row-level lock using
	// SELECT ... FOR UPDATE. Must be called within a transaction; it
	// protects the SM-2 read-modify-write from interleaving with another
	// grading event on the same entry.
	// Returns ErrEntryNotFound if the entry does not exist.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.VocabularyEntry, error)

	// FindDueForUser returns up to limit entries (with joined words) whose
	// next review time is at or before nowLimit, ordered by next review
	// time ascending.
	FindDueForUser(ctx context.Context, userID uuid.UUID, nowLimit time.Time, limit int) ([]*domain.VocabularyEntry, error)

	// ListByUser returns a page of the user's entries (with joined words),
	// newest first, plus the total entry count for the user.
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.VocabularyEntry, int, error)

	// FindByUserAndWord retrieves the entry linking a user to a word.
	// Returns ErrEntryNotFound if the user has not added the word.
	FindByUserAndWord(ctx context.Context, userID, wordID uuid.UUID) (*domain.VocabularyEntry, error)

	// Update persists new scheduling state for an existing entry.
	// Returns ErrEntryNotFound if the entry does not exist.
	Update(ctx context.Context, entry *domain.VocabularyEntry) error

	// Delete removes an entry. Returns ErrEntryNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new VocabularyStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) VocabularyStore
}
