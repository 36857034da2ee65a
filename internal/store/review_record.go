package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-api/internal/domain"
)

// ReviewRecordStore defines the interface for the append-mostly review log.
type ReviewRecordStore interface {
	// Create appends a new review record.
	Create(ctx context.Context, record *domain.ReviewRecord) error

	// GetByID retrieves a record by its unique ID.
	// Returns ErrRecordNotFound if the record does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewRecord, error)

	// FindMostRecentOpen returns the newest "known"-rated record for the
	// entry that is still awaiting its follow-up test outcome.
	// Returns ErrRecordNotFound if no open record exists.
	FindMostRecentOpen(ctx context.Context, userID, entryID uuid.UUID) (*domain.ReviewRecord, error)

	// UpdateOutcome closes a record with the follow-up test outcome.
	// Returns ErrRecordNotFound if the record does not exist.
	UpdateOutcome(ctx context.Context, record *domain.ReviewRecord) error

	// WithTx returns a new ReviewRecordStore instance that uses the
	// provided transaction.
	WithTx(tx *sql.Tx) ReviewRecordStore
}
