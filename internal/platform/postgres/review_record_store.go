package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-api/internal/domain"
	"github.com/lingoflow/lingoflow-api/internal/store"
)

// PostgresReviewRecordStore implements the store.ReviewRecordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewRecordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewRecordStore creates a new PostgreSQL implementation of
// the ReviewRecordStore interface.
func NewPostgresReviewRecordStore(db store.DBTX, logger *slog.Logger) *PostgresReviewRecordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewRecordStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_record_store")),
	}
}

// Ensure PostgresReviewRecordStore implements store.ReviewRecordStore interface
var _ store.ReviewRecordStore = (*PostgresReviewRecordStore)(nil)

const recordColumns = `id, user_id, entry_id, rating, test_passed, response_time_ms, created_at`

// Create implements store.ReviewRecordStore.Create
func (s *PostgresReviewRecordStore) Create(ctx context.Context, record *domain.ReviewRecord) error {
	query := `
		INSERT INTO review_records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.UserID, record.EntryID, record.Rating,
		record.TestPassed, record.ResponseTimeMs, record.CreatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// GetByID implements store.ReviewRecordStore.GetByID
func (s *PostgresReviewRecordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM review_records WHERE id = $1`
	return s.scanRecord(s.db.QueryRowContext(ctx, query, id))
}

// FindMostRecentOpen implements store.ReviewRecordStore.FindMostRecentOpen
func (s *PostgresReviewRecordStore) FindMostRecentOpen(
	ctx context.Context,
	userID, entryID uuid.UUID,
) (*domain.ReviewRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM review_records
		WHERE user_id = $1 AND entry_id = $2
		  AND rating = 'known' AND test_passed IS NULL
		ORDER BY created_at DESC
		LIMIT 1
	`
	return s.scanRecord(s.db.QueryRowContext(ctx, query, userID, entryID))
}

// UpdateOutcome implements store.ReviewRecordStore.UpdateOutcome
func (s *PostgresReviewRecordStore) UpdateOutcome(ctx context.Context, record *domain.ReviewRecord) error {
	query := `
		UPDATE review_records
		SET test_passed = $2, response_time_ms = $3
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, record.ID, record.TestPassed, record.ResponseTimeMs)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrRecordNotFound
	}

	return nil
}

// WithTx implements store.ReviewRecordStore.WithTx
func (s *PostgresReviewRecordStore) WithTx(tx *sql.Tx) store.ReviewRecordStore {
	return &PostgresReviewRecordStore{db: tx, logger: s.logger}
}

func (s *PostgresReviewRecordStore) scanRecord(row *sql.Row) (*domain.ReviewRecord, error) {
	var record domain.ReviewRecord
	var testPassed sql.NullBool
	var responseTime sql.NullInt64

	err := row.Scan(
		&record.ID, &record.UserID, &record.EntryID, &record.Rating,
		&testPassed, &responseTime, &record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrRecordNotFound
		}
		return nil, MapError(err)
	}

	if testPassed.Valid {
		record.TestPassed = &testPassed.Bool
	}
	if responseTime.Valid {
		ms := int(responseTime.Int64)
		record.ResponseTimeMs = &ms
	}

	return &record, nil
}
