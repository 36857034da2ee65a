package review

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-api/internal/config"
	"github.com/lingoflow/lingoflow-api/internal/domain"
	"github.com/lingoflow/lingoflow-api/internal/domain/sm2"
	"github.com/lingoflow/lingoflow-api/internal/store"
)

// TxRunner executes a function within a database transaction. Abstracting
// it lets tests run the function directly with a nil transaction while
// production wires store.RunInTransaction over a *sql.DB.
type TxRunner func(ctx context.Context, fn store.TxFn) error

// NewSQLTxRunner adapts a *sql.DB to the TxRunner contract.
func NewSQLTxRunner(db *sql.DB) TxRunner {
	return func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, db, fn)
	}
}

// reviewService is the default ReviewService implementation.
type reviewService struct {
	runTx      TxRunner
	entries    store.VocabularyStore
	records    store.ReviewRecordStore
	scheduler  sm2.Service
	questions  *QuestionGenerator
	cache      *queueCache
	queueLimit int
	now        func() time.Time
	logger     *slog.Logger
}

// Ensure reviewService implements ReviewService interface
var _ ReviewService = (*reviewService)(nil)

// NewReviewService creates the review orchestrator.
//
// The now function is injectable for deterministic tests; pass nil for
// time.Now.
func NewReviewService(
	runTx TxRunner,
	entries store.VocabularyStore,
	words store.WordStore,
	records store.ReviewRecordStore,
	scheduler sm2.Service,
	cache store.Cache,
	cfg config.ReviewConfig,
	now func() time.Time,
	logger *slog.Logger,
) ReviewService {
	if runTx == nil {
		panic("runTx cannot be nil")
	}
	if entries == nil || words == nil || records == nil {
		panic("stores cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if cache == nil {
		panic("cache cannot be nil")
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "review_service"))

	ttl := time.Duration(cfg.QueueCacheTTLHours) * time.Hour

	return &reviewService{
		runTx:      runTx,
		entries:    entries,
		records:    records,
		scheduler:  scheduler,
		questions:  NewQuestionGenerator(words),
		cache:      newQueueCache(cache, ttl, now, logger),
		queueLimit: cfg.QueueLimit,
		now:        now,
		logger:     logger,
	}
}

// GetQueue implements ReviewService.GetQueue
func (s *reviewService) GetQueue(ctx context.Context, userID uuid.UUID) ([]QueueItem, error) {
	if items, ok := s.cache.Get(ctx, userID); ok {
		s.logger.DebugContext(ctx, "serving review queue from cache",
			"user_id", userID,
			"item_count", len(items))
		return items, nil
	}

	entries, err := s.entries.FindDueForUser(ctx, userID, s.now(), s.queueLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load due entries: %w", err)
	}

	items := make([]QueueItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, projectQueueItem(entry))
	}

	s.cache.Set(ctx, userID, items)

	s.logger.DebugContext(ctx, "rebuilt review queue from store",
		"user_id", userID,
		"item_count", len(items))

	return items, nil
}

// SubmitRating implements ReviewService.SubmitRating
func (s *reviewService) SubmitRating(
	ctx context.Context,
	userID, entryID uuid.UUID,
	rating string,
) (*RatingResult, error) {
	r := domain.Rating(rating)
	if !r.IsValid() {
		return nil, ErrInvalidRating
	}

	entry, err := s.getOwnedEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	record, err := domain.NewReviewRecord(userID, entryID, r)
	if err != nil {
		return nil, fmt.Errorf("failed to create review record: %w", err)
	}

	quality, immediate := sm2.QualityForRating(r)
	if !immediate {
		// "known" path: open the record and hand back a question; the
		// schedule stays untouched until the test answer arrives. If the
		// client never answers, the entry simply stays due and the record
		// stays open; the next rating starts over.
		if err := s.records.Create(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to append review record: %w", err)
		}

		question, err := s.questions.Generate(ctx, entry.Word)
		if err != nil {
			return nil, fmt.Errorf("failed to generate question: %w", err)
		}

		s.logger.InfoContext(ctx, "rating accepted, awaiting test",
			"user_id", userID,
			"entry_id", entryID,
			"record_id", record.ID)

		return &RatingResult{
			RecordID: record.ID,
			NeedTest: true,
			Question: question,
		}, nil
	}

	graded, err := s.grade(ctx, userID, entryID, quality, func(tx *sql.Tx) error {
		return s.records.WithTx(tx).Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "rating graded immediately",
		"user_id", userID,
		"entry_id", entryID,
		"rating", rating,
		"quality", quality,
		"interval_days", graded.IntervalDays,
		"familiarity", graded.Familiarity)

	familiarity := graded.Familiarity
	nextReview := graded.NextReviewAt
	return &RatingResult{
		RecordID:     record.ID,
		NeedTest:     false,
		Meaning:      entry.Word.Meaning,
		NextReviewAt: &nextReview,
		Familiarity:  &familiarity,
	}, nil
}

// SubmitAnswer implements ReviewService.SubmitAnswer
func (s *reviewService) SubmitAnswer(
	ctx context.Context,
	userID uuid.UUID,
	req AnswerRequest,
) (*AnswerResult, error) {
	if req.Answer == "" {
		return nil, ErrEmptyAnswer
	}

	entry, err := s.getOwnedEntry(ctx, userID, req.EntryID)
	if err != nil {
		return nil, err
	}

	correct := req.Answer == entry.Word.Meaning

	if req.IsFromErrorQueue {
		// Error-queue drills re-practice missed words without touching the
		// primary schedule: no scheduling write, no record update, no
		// cache invalidation.
		s.logger.InfoContext(ctx, "error-queue answer scored",
			"user_id", userID,
			"entry_id", req.EntryID,
			"correct", correct)

		return &AnswerResult{
			Correct:       correct,
			CorrectAnswer: entry.Word.Meaning,
		}, nil
	}

	quality := sm2.QualityForAnswer(correct)
	graded, err := s.grade(ctx, userID, req.EntryID, quality, func(tx *sql.Tx) error {
		return s.closeRecord(ctx, tx, userID, req, correct)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "test answer graded",
		"user_id", userID,
		"entry_id", req.EntryID,
		"correct", correct,
		"quality", quality,
		"interval_days", graded.IntervalDays,
		"familiarity", graded.Familiarity)

	familiarity := graded.Familiarity
	nextReview := graded.NextReviewAt
	return &AnswerResult{
		Correct:       correct,
		CorrectAnswer: entry.Word.Meaning,
		NextReviewAt:  &nextReview,
		Familiarity:   &familiarity,
	}, nil
}

// getOwnedEntry loads the entry and verifies ownership. Absence and
// foreign ownership both surface as ErrEntryNotFound.
func (s *reviewService) getOwnedEntry(
	ctx context.Context,
	userID, entryID uuid.UUID,
) (*domain.VocabularyEntry, error) {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to load entry: %w", err)
	}
	if entry.UserID != userID {
		return nil, ErrEntryNotFound
	}
	return entry, nil
}

// grade applies the scheduler to the entry atomically and invalidates the
// user's queue snapshot after the transaction commits. The row lock keeps
// the read-modify-write from interleaving with a concurrent grading event
// on the same entry. extra runs inside the same transaction, after the
// scheduling write.
func (s *reviewService) grade(
	ctx context.Context,
	userID, entryID uuid.UUID,
	quality int,
	extra func(tx *sql.Tx) error,
) (*domain.VocabularyEntry, error) {
	var graded *domain.VocabularyEntry

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		entries := s.entries.WithTx(tx)

		locked, err := entries.GetForUpdate(ctx, entryID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return ErrEntryNotFound
			}
			return fmt.Errorf("failed to lock entry: %w", err)
		}
		if locked.UserID != userID {
			return ErrEntryNotFound
		}

		next, err := s.scheduler.NextSchedule(locked, quality, s.now())
		if err != nil {
			return fmt.Errorf("failed to compute schedule: %w", err)
		}

		if err := entries.Update(ctx, next); err != nil {
			return fmt.Errorf("failed to persist schedule: %w", err)
		}

		if extra != nil {
			if err := extra(tx); err != nil {
				return err
			}
		}

		graded = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Write-then-invalidate: the eviction must happen after the committed
	// store write, or a concurrent read could repopulate pre-update state.
	s.cache.Invalidate(ctx, userID)

	return graded, nil
}

// closeRecord sets the test outcome on the review record opened by the
// preceding "known" rating. An explicit record id wins; without one the
// most recent open record for the entry is closed. An answer with no open
// record still grades the entry, it just leaves no record to close.
func (s *reviewService) closeRecord(
	ctx context.Context,
	tx *sql.Tx,
	userID uuid.UUID,
	req AnswerRequest,
	correct bool,
) error {
	records := s.records.WithTx(tx)

	var record *domain.ReviewRecord
	var err error
	if req.RecordID != uuid.Nil {
		record, err = records.GetByID(ctx, req.RecordID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return ErrRecordNotFound
			}
			return fmt.Errorf("failed to load review record: %w", err)
		}
		// Only a "known" rating opens a record that awaits an answer;
		// unknown/fuzzy records are already final and must stay untouched.
		if record.UserID != userID || record.EntryID != req.EntryID ||
			record.Rating != domain.RatingKnown || record.TestPassed != nil {
			return ErrRecordNotFound
		}
	} else {
		record, err = records.FindMostRecentOpen(ctx, userID, req.EntryID)
		if err != nil {
			if store.IsNotFoundError(err) {
				s.logger.DebugContext(ctx, "no open review record to close",
					"user_id", userID,
					"entry_id", req.EntryID)
				return nil
			}
			return fmt.Errorf("failed to find open review record: %w", err)
		}
	}

	record.TestPassed = &correct
	record.ResponseTimeMs = req.ResponseTimeMs
	if err := records.UpdateOutcome(ctx, record); err != nil {
		return fmt.Errorf("failed to close review record: %w", err)
	}

	return nil
}

func projectQueueItem(entry *domain.VocabularyEntry) QueueItem {
	item := QueueItem{
		EntryID:     entry.ID,
		WordID:      entry.WordID,
		Familiarity: entry.Familiarity,
		ReviewCount: entry.ReviewCount,
	}
	if entry.Word != nil {
		item.Word = entry.Word.Text
		item.Phonetic = entry.Word.Phonetic
		item.Meaning = entry.Word.Meaning
	}
	return item
}
