package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-api/internal/domain"
	"github.com/lingoflow/lingoflow-api/internal/store"
)

// PostgresVocabularyStore implements the store.VocabularyStore interface
// using a PostgreSQL database as the storage backend.
type PostgresVocabularyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresVocabularyStore creates a new PostgreSQL implementation of
// the VocabularyStore interface.
func NewPostgresVocabularyStore(db store.DBTX, logger *slog.Logger) *PostgresVocabularyStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresVocabularyStore{
		db:     db,
		logger: logger.With(slog.String("component", "vocabulary_store")),
	}
}

// Ensure PostgresVocabularyStore implements store.VocabularyStore interface
var _ store.VocabularyStore = (*PostgresVocabularyStore)(nil)

// entrySelect joins the catalog word so reads come back display-ready.
const entrySelect = `
	SELECT v.id, v.user_id, v.word_id, v.familiarity, v.review_count,
	       v.ease_factor, v.interval_days, v.next_review_at, v.last_review_at,
	       v.created_at, v.updated_at,
	       w.id, w.text, w.phonetic, w.meaning, w.example_sentence, w.difficulty, w.created_at
	FROM vocabulary_entries v
	JOIN words w ON w.id = v.word_id
`

// Create implements store.VocabularyStore.Create
func (s *PostgresVocabularyStore) Create(ctx context.Context, entry *domain.VocabularyEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO vocabulary_entries
			(id, user_id, word_id, familiarity, review_count, ease_factor,
			 interval_days, next_review_at, last_review_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.WordID, entry.Familiarity, entry.ReviewCount,
		entry.EaseFactor, entry.IntervalDays, entry.NextReviewAt, entry.LastReviewAt,
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err, "vocabulary_entries_user_id_word_id_key") {
			return fmt.Errorf("%w: %v", store.ErrEntryExists, err)
		}
		return MapError(err)
	}

	return nil
}

// GetByID implements store.VocabularyStore.GetByID
func (s *PostgresVocabularyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.VocabularyEntry, error) {
	return s.getOne(ctx, entrySelect+` WHERE v.id = $1`, id)
}

// GetForUpdate implements store.VocabularyStore.GetForUpdate
// The row lock covers only the vocabulary_entries row; the joined word is
// read-only catalog data and needs no lock, hence the two-step read.
func (s *PostgresVocabularyStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.VocabularyEntry, error) {
	lockQuery := `
		SELECT id, user_id, word_id, familiarity, review_count, ease_factor,
		       interval_days, next_review_at, last_review_at, created_at, updated_at
		FROM vocabulary_entries
		WHERE id = $1
		FOR UPDATE
	`

	var entry domain.VocabularyEntry
	var lastReview sql.NullTime
	err := s.db.QueryRowContext(ctx, lockQuery, id).Scan(
		&entry.ID, &entry.UserID, &entry.WordID, &entry.Familiarity,
		&entry.ReviewCount, &entry.EaseFactor, &entry.IntervalDays,
		&entry.NextReviewAt, &lastReview, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrEntryNotFound
		}
		return nil, MapError(err)
	}
	if lastReview.Valid {
		entry.LastReviewAt = &lastReview.Time
	}

	wordQuery := `SELECT ` + wordColumns + ` FROM words WHERE id = $1`
	word, err := scanWord(s.db.QueryRowContext(ctx, wordQuery, entry.WordID))
	if err != nil {
		return nil, MapError(err)
	}
	entry.Word = word

	return &entry, nil
}

// FindDueForUser implements store.VocabularyStore.FindDueForUser
func (s *PostgresVocabularyStore) FindDueForUser(
	ctx context.Context,
	userID uuid.UUID,
	nowLimit time.Time,
	limit int,
) ([]*domain.VocabularyEntry, error) {
	query := entrySelect + `
		WHERE v.user_id = $1 AND v.next_review_at <= $2
		ORDER BY v.next_review_at
		LIMIT $3
	`
	rows, err := s.db.QueryContext(ctx, query, userID, nowLimit, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectEntries(rows)
}

// ListByUser implements store.VocabularyStore.ListByUser
func (s *PostgresVocabularyStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.VocabularyEntry, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM vocabulary_entries WHERE user_id = $1`
	if err := s.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, MapError(err)
	}

	query := entrySelect + `
		WHERE v.user_id = $1
		ORDER BY v.created_at DESC
		OFFSET $2 LIMIT $3
	`
	rows, err := s.db.QueryContext(ctx, query, userID, offset, limit)
	if err != nil {
		return nil, 0, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// FindByUserAndWord implements store.VocabularyStore.FindByUserAndWord
func (s *PostgresVocabularyStore) FindByUserAndWord(
	ctx context.Context,
	userID, wordID uuid.UUID,
) (*domain.VocabularyEntry, error) {
	return s.getOne(ctx, entrySelect+` WHERE v.user_id = $1 AND v.word_id = $2`, userID, wordID)
}

// Update implements store.VocabularyStore.Update
func (s *PostgresVocabularyStore) Update(ctx context.Context, entry *domain.VocabularyEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE vocabulary_entries
		SET familiarity = $2, review_count = $3, ease_factor = $4,
		    interval_days = $5, next_review_at = $6, last_review_at = $7,
		    updated_at = $8
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.Familiarity, entry.ReviewCount, entry.EaseFactor,
		entry.IntervalDays, entry.NextReviewAt, entry.LastReviewAt, entry.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrEntryNotFound
	}

	return nil
}

// Delete implements store.VocabularyStore.Delete
func (s *PostgresVocabularyStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM vocabulary_entries WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrEntryNotFound
	}

	return nil
}

// WithTx implements store.VocabularyStore.WithTx
func (s *PostgresVocabularyStore) WithTx(tx *sql.Tx) store.VocabularyStore {
	return &PostgresVocabularyStore{db: tx, logger: s.logger}
}

func (s *PostgresVocabularyStore) getOne(
	ctx context.Context,
	query string,
	args ...any,
) (*domain.VocabularyEntry, error) {
	entry, err := scanEntry(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrEntryNotFound
		}
		return nil, MapError(err)
	}
	return entry, nil
}

func scanEntry(row scanner) (*domain.VocabularyEntry, error) {
	var entry domain.VocabularyEntry
	var word domain.Word
	var lastReview sql.NullTime
	var example sql.NullString

	err := row.Scan(
		&entry.ID, &entry.UserID, &entry.WordID, &entry.Familiarity,
		&entry.ReviewCount, &entry.EaseFactor, &entry.IntervalDays,
		&entry.NextReviewAt, &lastReview, &entry.CreatedAt, &entry.UpdatedAt,
		&word.ID, &word.Text, &word.Phonetic, &word.Meaning,
		&example, &word.Difficulty, &word.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastReview.Valid {
		entry.LastReviewAt = &lastReview.Time
	}
	word.ExampleSentence = example.String
	entry.Word = &word

	return &entry, nil
}

func collectEntries(rows *sql.Rows) ([]*domain.VocabularyEntry, error) {
	var entries []*domain.VocabularyEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, MapError(err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return entries, nil
}
