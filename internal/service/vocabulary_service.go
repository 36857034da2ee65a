package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-api/internal/domain"
	"github.com/lingoflow/lingoflow-api/internal/store"
)

// VocabularyService manages the words a user is learning. Adding a word
// creates the entry with fresh scheduling state (familiarity 0, due
// immediately); the review engine owns every subsequent mutation.
type VocabularyService interface {
	// AddWord adds a catalog word to the user's vocabulary.
	// Returns store.ErrWordNotFound for an unknown word and
	// store.ErrEntryExists when the word was already added.
	AddWord(ctx context.Context, userID, wordID uuid.UUID) (*domain.VocabularyEntry, error)

	// AddWords adds several catalog words at once, skipping duplicates.
	// Returns the entries actually created.
	AddWords(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID) ([]*domain.VocabularyEntry, error)

	// ListVocabulary returns a page of the user's entries, newest first,
	// plus the total count.
	ListVocabulary(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.VocabularyEntry, int, error)

	// RemoveEntry deletes one of the user's vocabulary entries.
	// Returns store.ErrEntryNotFound if absent, ErrNotOwned if the entry
	// belongs to another user.
	RemoveEntry(ctx context.Context, userID, entryID uuid.UUID) error
}

// VocabularyServiceImpl implements the VocabularyService interface
type VocabularyServiceImpl struct {
	entryStore store.VocabularyStore
	wordStore  store.WordStore
	db         *sql.DB
	logger     *slog.Logger
}

// Ensure VocabularyServiceImpl implements VocabularyService interface
var _ VocabularyService = (*VocabularyServiceImpl)(nil)

// NewVocabularyService creates a new VocabularyService
func NewVocabularyService(
	entryStore store.VocabularyStore,
	wordStore store.WordStore,
	db *sql.DB,
	logger *slog.Logger,
) *VocabularyServiceImpl {
	return &VocabularyServiceImpl{
		entryStore: entryStore,
		wordStore:  wordStore,
		db:         db,
		logger:     logger.With("component", "vocabulary_service"),
	}
}

// AddWord adds a catalog word to the user's vocabulary.
func (s *VocabularyServiceImpl) AddWord(
	ctx context.Context,
	userID, wordID uuid.UUID,
) (*domain.VocabularyEntry, error) {
	word, err := s.wordStore.GetByID(ctx, wordID)
	if err != nil {
		return nil, err
	}

	entry, err := domain.NewVocabularyEntry(userID, wordID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.entryStore.WithTx(tx).Create(ctx, entry)
	})
	if err != nil {
		if errors.Is(err, store.ErrEntryExists) {
			s.logger.Debug("word already in vocabulary",
				"user_id", userID,
				"word_id", wordID)
		} else {
			s.logger.Error("failed to add word to vocabulary",
				"error", err,
				"user_id", userID,
				"word_id", wordID)
		}
		return nil, err
	}

	entry.Word = word

	s.logger.Info("word added to vocabulary",
		"user_id", userID,
		"word_id", wordID,
		"entry_id", entry.ID)

	return entry, nil
}

// AddWords adds several catalog words in a single transaction, skipping
// words already in the vocabulary rather than failing the whole batch.
func (s *VocabularyServiceImpl) AddWords(
	ctx context.Context,
	userID uuid.UUID,
	wordIDs []uuid.UUID,
) ([]*domain.VocabularyEntry, error) {
	if len(wordIDs) == 0 {
		return nil, nil
	}

	var created []*domain.VocabularyEntry
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		entries := s.entryStore.WithTx(tx)
		words := s.wordStore.WithTx(tx)

		for _, wordID := range wordIDs {
			word, err := words.GetByID(ctx, wordID)
			if err != nil {
				return err
			}

			if _, err := entries.FindByUserAndWord(ctx, userID, wordID); err == nil {
				continue
			} else if !store.IsNotFoundError(err) {
				return err
			}

			entry, err := domain.NewVocabularyEntry(userID, wordID)
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrValidation, err)
			}
			if err := entries.Create(ctx, entry); err != nil {
				return err
			}

			entry.Word = word
			created = append(created, entry)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to add words to vocabulary",
			"error", err,
			"user_id", userID,
			"requested", len(wordIDs))
		return nil, err
	}

	s.logger.Info("words added to vocabulary",
		"user_id", userID,
		"requested", len(wordIDs),
		"created", len(created))

	return created, nil
}

// ListVocabulary returns a page of the user's entries with the total count.
func (s *VocabularyServiceImpl) ListVocabulary(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.VocabularyEntry, int, error) {
	entries, total, err := s.entryStore.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		s.logger.Error("failed to list vocabulary",
			"error", err,
			"user_id", userID)
		return nil, 0, fmt.Errorf("failed to list vocabulary: %w", err)
	}
	return entries, total, nil
}

// RemoveEntry deletes one of the user's vocabulary entries.
func (s *VocabularyServiceImpl) RemoveEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		entries := s.entryStore.WithTx(tx)

		entry, err := entries.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry.UserID != userID {
			return ErrNotOwned
		}

		return entries.Delete(ctx, entryID)
	})
	if err != nil {
		if !store.IsNotFoundError(err) && !errors.Is(err, ErrNotOwned) {
			s.logger.Error("failed to remove vocabulary entry",
				"error", err,
				"user_id", userID,
				"entry_id", entryID)
		}
		return err
	}

	s.logger.Info("vocabulary entry removed",
		"user_id", userID,
		"entry_id", entryID)

	return nil
}
