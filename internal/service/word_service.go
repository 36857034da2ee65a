package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-api/internal/domain"
	"github.com/lingoflow/lingoflow-api/internal/generation"
	"github.com/lingoflow/lingoflow-api/internal/store"
)

// WordService provides read access to the word catalog plus AI-assisted
// enrichment of catalog entries.
type WordService interface {
	// GetWord retrieves a catalog word by ID.
	GetWord(ctx context.Context, wordID uuid.UUID) (*domain.Word, error)

	// ListWords returns a page of the catalog, optionally filtered by
	// difficulty (empty difficulty disables the filter), plus the total
	// count for the filter.
	ListWords(ctx context.Context, difficulty domain.Difficulty, offset, limit int) ([]*domain.Word, int, error)

	// SuggestWords returns up to limit catalog words the user has not yet
	// added to their vocabulary, easiest first.
	SuggestWords(ctx context.Context, userID uuid.UUID, difficulty domain.Difficulty, limit int) ([]*domain.Word, error)

	// GetExampleSentence returns the word's example sentence, generating
	// and persisting one on first request when a generator is configured.
	// Returns generation.ErrDisabled when the word has no sentence and no
	// generator is available.
	GetExampleSentence(ctx context.Context, wordID uuid.UUID) (string, error)
}

// WordServiceImpl implements the WordService interface
type WordServiceImpl struct {
	wordStore store.WordStore
	generator generation.Generator // nil when the LLM feature is disabled
	logger    *slog.Logger
}

// Ensure WordServiceImpl implements WordService interface
var _ WordService = (*WordServiceImpl)(nil)

// NewWordService creates a new WordService. generator may be nil, which
// disables example sentence generation.
func NewWordService(
	wordStore store.WordStore,
	generator generation.Generator,
	logger *slog.Logger,
) *WordServiceImpl {
	return &WordServiceImpl{
		wordStore: wordStore,
		generator: generator,
		logger:    logger.With("component", "word_service"),
	}
}

// GetWord retrieves a catalog word by ID.
func (s *WordServiceImpl) GetWord(ctx context.Context, wordID uuid.UUID) (*domain.Word, error) {
	return s.wordStore.GetByID(ctx, wordID)
}

// ListWords returns a page of the catalog with the total count.
func (s *WordServiceImpl) ListWords(
	ctx context.Context,
	difficulty domain.Difficulty,
	offset, limit int,
) ([]*domain.Word, int, error) {
	if difficulty != "" && !difficulty.IsValid() {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrValidation, domain.ErrInvalidDifficulty)
	}

	words, total, err := s.wordStore.List(ctx, difficulty, offset, limit)
	if err != nil {
		s.logger.Error("failed to list words",
			"error", err,
			"difficulty", difficulty)
		return nil, 0, fmt.Errorf("failed to list words: %w", err)
	}

	return words, total, nil
}

// SuggestWords returns catalog words the user has not yet added.
func (s *WordServiceImpl) SuggestWords(
	ctx context.Context,
	userID uuid.UUID,
	difficulty domain.Difficulty,
	limit int,
) ([]*domain.Word, error) {
	if difficulty != "" && !difficulty.IsValid() {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, domain.ErrInvalidDifficulty)
	}

	words, err := s.wordStore.FindUnlearned(ctx, userID, difficulty, limit)
	if err != nil {
		s.logger.Error("failed to find unlearned words",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to suggest words: %w", err)
	}

	return words, nil
}

// GetExampleSentence returns the word's example sentence, generating one
// lazily when missing. Generation failures are surfaced; the caller
// decides whether to degrade.
func (s *WordServiceImpl) GetExampleSentence(ctx context.Context, wordID uuid.UUID) (string, error) {
	word, err := s.wordStore.GetByID(ctx, wordID)
	if err != nil {
		return "", err
	}

	if word.ExampleSentence != "" {
		return word.ExampleSentence, nil
	}

	if s.generator == nil {
		return "", generation.ErrDisabled
	}

	sentence, err := s.generator.GenerateExampleSentence(ctx, word)
	if err != nil {
		if !errors.Is(err, generation.ErrDisabled) {
			s.logger.Error("example sentence generation failed",
				"error", err,
				"word_id", wordID,
				"word", word.Text)
		}
		return "", err
	}

	// Persist so the next request skips the generator. The sentence is
	// already in hand, so a failed write degrades to regenerating later
	// rather than failing this request.
	if err := s.wordStore.SetExampleSentence(ctx, wordID, sentence); err != nil {
		s.logger.Warn("failed to persist generated example sentence",
			"error", err,
			"word_id", wordID)
	}

	s.logger.Info("generated example sentence",
		"word_id", wordID,
		"word", word.Text)

	return sentence, nil
}
