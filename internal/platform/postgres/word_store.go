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

// PostgresWordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the
// WordStore interface.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

const wordColumns = `id, text, phonetic, meaning, example_sentence, difficulty, created_at`

// GetByID implements store.WordStore.GetByID
func (s *PostgresWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words WHERE id = $1`

	word, err := scanWord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWordNotFound
		}
		return nil, MapError(err)
	}
	return word, nil
}

// FindAll implements store.WordStore.FindAll
func (s *PostgresWordStore) FindAll(ctx context.Context) ([]*domain.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words ORDER BY text`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectWords(rows)
}

// List implements store.WordStore.List
func (s *PostgresWordStore) List(
	ctx context.Context,
	difficulty domain.Difficulty,
	offset, limit int,
) ([]*domain.Word, int, error) {
	// Empty difficulty disables the filter; the OR keeps it one query.
	countQuery := `SELECT COUNT(*) FROM words WHERE ($1 = '' OR difficulty = $1)`

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, string(difficulty)).Scan(&total); err != nil {
		return nil, 0, MapError(err)
	}

	query := `
		SELECT ` + wordColumns + `
		FROM words
		WHERE ($1 = '' OR difficulty = $1)
		ORDER BY text
		OFFSET $2 LIMIT $3
	`
	rows, err := s.db.QueryContext(ctx, query, string(difficulty), offset, limit)
	if err != nil {
		return nil, 0, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	words, err := collectWords(rows)
	if err != nil {
		return nil, 0, err
	}
	return words, total, nil
}

// FindUnlearned implements store.WordStore.FindUnlearned
func (s *PostgresWordStore) FindUnlearned(
	ctx context.Context,
	userID uuid.UUID,
	difficulty domain.Difficulty,
	limit int,
) ([]*domain.Word, error) {
	query := `
		SELECT ` + wordColumns + `
		FROM words w
		WHERE ($2 = '' OR w.difficulty = $2)
		  AND NOT EXISTS (
			SELECT 1 FROM vocabulary_entries v
			WHERE v.user_id = $1 AND v.word_id = w.id
		  )
		ORDER BY w.difficulty, w.text
		LIMIT $3
	`
	rows, err := s.db.QueryContext(ctx, query, userID, string(difficulty), limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectWords(rows)
}

// SetExampleSentence implements store.WordStore.SetExampleSentence
func (s *PostgresWordStore) SetExampleSentence(
	ctx context.Context,
	id uuid.UUID,
	sentence string,
) error {
	query := `UPDATE words SET example_sentence = $2 WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id, sentence)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrWordNotFound
	}
	return nil
}

// WithTx implements store.WordStore.WithTx
func (s *PostgresWordStore) WithTx(tx *sql.Tx) store.WordStore {
	return &PostgresWordStore{db: tx, logger: s.logger}
}

// scanner matches both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanWord(row scanner) (*domain.Word, error) {
	var word domain.Word
	var example sql.NullString
	err := row.Scan(
		&word.ID, &word.Text, &word.Phonetic, &word.Meaning,
		&example, &word.Difficulty, &word.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	word.ExampleSentence = example.String
	return &word, nil
}

func collectWords(rows *sql.Rows) ([]*domain.Word, error) {
	var words []*domain.Word
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, MapError(err)
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return words, nil
}
