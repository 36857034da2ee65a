package review

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingoflow/lingoflow-api/internal/config"
	"github.com/lingoflow/lingoflow-api/internal/domain"
	"github.com/lingoflow/lingoflow-api/internal/domain/sm2"
)

type testEnv struct {
	svc     ReviewService
	vocab   *fakeVocabStore
	words   *fakeWordStore
	records *fakeRecordStore
	cache   *fakeCache
	now     time.Time
	userID  uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	words := &fakeWordStore{}
	for _, m := range []struct{ text, meaning string }{
		{"ephemeral", "lasting a very short time"},
		{"ubiquitous", "present everywhere"},
		{"gregarious", "fond of company"},
		{"laconic", "using few words"},
		{"obstinate", "stubbornly refusing to change"},
	} {
		words.words = append(words.words, &domain.Word{
			ID:         uuid.New(),
			Text:       m.text,
			Phonetic:   "/" + m.text + "/",
			Meaning:    m.meaning,
			Difficulty: domain.DifficultyMedium,
			CreatedAt:  now,
		})
	}

	env := &testEnv{
		vocab:   newFakeVocabStore(),
		words:   words,
		records: &fakeRecordStore{},
		cache:   newFakeCache(),
		now:     now,
		userID:  uuid.New(),
	}

	env.svc = NewReviewService(
		passthroughTxRunner,
		env.vocab,
		env.words,
		env.records,
		sm2.NewService(),
		env.cache,
		config.ReviewConfig{QueueLimit: 100, QueueCacheTTLHours: 24},
		func() time.Time { return env.now },
		nil,
	)

	return env
}

// addEntry seeds a due vocabulary entry for the env's user backed by the
// catalog word at the given index.
func (env *testEnv) addEntry(t *testing.T, wordIdx, intervalDays int, easeFactor float64, familiarity int) *domain.VocabularyEntry {
	t.Helper()

	word := env.words.words[wordIdx]
	entry := &domain.VocabularyEntry{
		ID:           uuid.New(),
		UserID:       env.userID,
		WordID:       word.ID,
		Familiarity:  familiarity,
		ReviewCount:  0,
		EaseFactor:   easeFactor,
		IntervalDays: intervalDays,
		NextReviewAt: env.now.Add(-time.Hour),
		CreatedAt:    env.now.Add(-48 * time.Hour),
		UpdatedAt:    env.now.Add(-48 * time.Hour),
		Word:         word,
	}
	env.vocab.put(entry)
	return entry
}

func (env *testEnv) storedEntry(t *testing.T, id uuid.UUID) *domain.VocabularyEntry {
	t.Helper()
	entry, err := env.vocab.GetByID(context.Background(), id)
	require.NoError(t, err)
	return entry
}

func TestGetQueue(t *testing.T) {
	t.Parallel()

	t.Run("rebuilds from store on miss and caches the result", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		entry := env.addEntry(t, 0, 0, 2.5, 50)

		items, err := env.svc.GetQueue(context.Background(), env.userID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, entry.ID, items[0].EntryID)
		assert.Equal(t, "ephemeral", items[0].Word)
		assert.Equal(t, "lasting a very short time", items[0].Meaning)
		assert.Equal(t, 50, items[0].Familiarity)
		assert.Equal(t, 1, env.cache.sets, "non-empty queue should be cached")
	})

	t.Run("serves the cached snapshot verbatim on hit", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.addEntry(t, 0, 0, 2.5, 50)

		first, err := env.svc.GetQueue(context.Background(), env.userID)
		require.NoError(t, err)

		// Removing the entry from the store does not affect the snapshot.
		require.NoError(t, env.vocab.Delete(context.Background(), first[0].EntryID))

		second, err := env.svc.GetQueue(context.Background(), env.userID)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("never caches an empty queue", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		items, err := env.svc.GetQueue(context.Background(), env.userID)
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Zero(t, env.cache.sets)

		// A word becoming due is visible on the very next read.
		env.addEntry(t, 0, 0, 2.5, 0)
		items, err = env.svc.GetQueue(context.Background(), env.userID)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("treats cache faults as misses", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.addEntry(t, 0, 0, 2.5, 50)
		env.cache.failReads = true
		env.cache.failWrites = true

		items, err := env.svc.GetQueue(context.Background(), env.userID)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("does not leak other users entries", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.addEntry(t, 0, 0, 2.5, 50)

		items, err := env.svc.GetQueue(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestSubmitRating(t *testing.T) {
	t.Parallel()

	t.Run("unknown grades immediately with a hard reset", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		entry := env.addEntry(t, 0, 0, 2.5, 50)

		result, err := env.svc.SubmitRating(context.Background(), env.userID, entry.ID, "unknown")
		require.NoError(t, err)
		assert.False(t, result.NeedTest)
		assert.Nil(t, result.Question)
		assert.Equal(t, "lasting a very short time", result.Meaning)
		require.NotNil(t, result.Familiarity)
		assert.Equal(t, 30, *result.Familiarity)
		require.NotNil(t, result.NextReviewAt)
		assert.Equal(t, env.now.AddDate(0, 0, 1), *result.NextReviewAt)

		stored := env.storedEntry(t, entry.ID)
		assert.Equal(t, 1, stored.IntervalDays)
		assert.InDelta(t, 2.3, stored.EaseFactor, 1e-9)
		assert.Equal(t, 30, stored.Familiarity)
		assert.Equal(t, 1, stored.ReviewCount)

		require.Len(t, env.records.records, 1)
		assert.Equal(t, domain.RatingUnknown, env.records.records[0].Rating)
		assert.Nil(t, env.records.records[0].TestPassed)
	})

	t.Run("fuzzy grades immediately with quality one", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		entry := env.addEntry(t, 0, 6, 2.5, 80)

		result, err := env.svc.SubmitRating(context.Background(), env.userID, entry.ID, "fuzzy")
		require.NoError(t, err)
		assert.False(t, result.NeedTest)

		stored := env.storedEntry(t, entry.ID)
		assert.Equal(t, 1, stored.IntervalDays, "failure quality resets the interval")
		assert.InDelta(t, 2.3, stored.EaseFactor, 1e-9)
		assert.Equal(t, 60, stored.Familiarity)
	})

	t.Run("known returns a question and leaves the schedule untouched", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		entry := env.addEntry(t, 0, 1, 2.5, 50)

		result, err := env.svc.SubmitRating(context.Background(), env.userID, entry.ID, "known")
		require.NoError(t, err)
		assert.True(t, result.NeedTest)
		require.NotNil(t, result.Question)
		assert.Equal(t, "ephemeral", result.Question.Word)
		assert.Len(t, result.Question.Options, 4)
		assert.Contains(t, result.Question.Options, "lasting a very short time")
		assert.NotEqual(t, uuid.Nil, result.RecordID)
		assert.Nil(t, result.NextReviewAt)

		stored := env.storedEntry(t, entry.ID)
		assert.Equal(t, entry.IntervalDays, stored.IntervalDays)
		assert.Equal(t, entry.EaseFactor, stored.EaseFactor)
		assert.Equal(t, entry.Familiarity, stored.Familiarity)
		assert.Equal(t, 0, stored.ReviewCount)

		assert.Zero(t, env.cache.deletes, "known path must not invalidate the queue")
	})

	t.Run("invalidates the queue snapshot on immediate grading", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		entry := env.addEntry(t, 0, 0, 2.5, 50)

		before, err := env.svc.GetQueue(context.Background(), env.userID)
		require.NoError(t, err)
		require.Len(t, before, 1)

		_, err = env.svc.SubmitRating(context.Background(), env.userID, entry.ID, "unknown")
		require.NoError(t, err)

		after, err := env.svc.GetQueue(context.Background(), env.userID)
		require.NoError(t, err)
		assert.NotEqual(t, before, after, "pre-mutation snapshot must not survive grading")
	})

	t.Run("rejects invalid rating values", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		entry := env.addEntry(t, 0, 0, 2.5, 50)

		_, err := env.svc.SubmitRating(context.Background(), env.userID, entry.ID, "mastered")
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("reports foreign and absent entries as not found", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		entry := env.addEntry(t, 0, 0, 2.5, 50)

		_, err := env.svc.SubmitRating(context.Background(), uuid.New(), entry.ID, "unknown")
		assert.ErrorIs(t, err, ErrEntryNotFound)

		_, err = env.svc.SubmitRating(context.Background(), env.userID, uuid.New(), "unknown")
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})
}

func TestSubmitAnswer(t *testing.T) {
	t.Parallel()

	t.Run("correct answer confirms known and advances the schedule", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		entry := env.addEntry(t, 0, 1, 2.5, 50)

		rating, err := env.svc.SubmitRating(context.Background(), env.userID, entry.ID, "known")
		require.NoError(t, err)

		ms := 1200
		result, err := env.svc.SubmitAnswer(context.Background(), env.userID, AnswerRequest{
			EntryID:        entry.ID,
			Answer:         "lasting a very short time",
			RecordID:       rating.RecordID,
			ResponseTimeMs: &ms,
		})
		require.NoError(t, err)
		assert.True(t, result.Correct)
		assert.Equal(t, "lasting a very short time", result.CorrectAnswer)
		require.NotNil(t, result.Familiarity)
		assert.Equal(t, 65, *result.Familiarity)

		stored := env.storedEntry(t, entry.ID)
		assert.Equal(t, 6, stored.IntervalDays)
		assert.InDelta(t, 2.6, stored.EaseFactor, 1e-9)
		assert.Equal(t, 65, stored.Familiarity)
		assert.Equal(t, env.now.AddDate(0, 0, 6), stored.NextReviewAt)

		record, err := env.records.GetByID(context.Background(), rating.RecordID)
		require.NoError(t, err)
		require.NotNil(t, record.TestPassed)
		assert.True(t, *record.TestPassed)
		require.NotNil(t, record.ResponseTimeMs)
		assert.Equal(t, 1200, *record.ResponseTimeMs)
	})

	t.Run("wrong answer grades as a blackout despite the self-report", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		entry := env.addEntry(t, 0, 1, 2.5, 50)

		rating, err := env.svc.SubmitRating(context.Background(), env.userID, entry.ID, "known")
		require.NoError(t, err)

		result, err := env.svc.SubmitAnswer(context.Background(), env.userID, AnswerRequest{
			EntryID:  entry.ID,
			Answer:   "present everywhere",
			RecordID: rating.RecordID,
		})
		require.NoError(t, err)
		assert.False(t, result.Correct)

		stored := env.storedEntry(t, entry.ID)
		assert.Equal(t, 1, stored.IntervalDays)
		assert.InDelta(t, 2.3, stored.EaseFactor, 1e-9)
		assert.Equal(t, 30, stored.Familiarity)

		record, err := env.records.GetByID(context.Background(), rating.RecordID)
		require.NoError(t, err)
		require.NotNil(t, record.TestPassed)
		assert.False(t, *record.TestPassed)
	})

	t.Run("falls back to the most recent open record", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		entry := env.addEntry(t, 0, 1, 2.5, 50)

		rating, err := env.svc.SubmitRating(context.Background(), env.userID, entry.ID, "known")
		require.NoError(t, err)

		_, err = env.svc.SubmitAnswer(context.Background(), env.userID, AnswerRequest{
			EntryID: entry.ID,
			Answer:  "lasting a very short time",
		})
		require.NoError(t, err)

		record, err := env.records.GetByID(context.Background(), rating.RecordID)
		require.NoError(t, err)
		require.NotNil(t, record.TestPassed)
		assert.True(t, *record.TestPassed)
	})

	t.Run("error queue answers never mutate scheduling state", func(t *testing.T) {
		t.Parallel()

		for _, answer := range []string{"lasting a very short time", "wrong"} {
			env := newTestEnv(t)
			entry := env.addEntry(t, 0, 6, 2.2, 40)

			result, err := env.svc.SubmitAnswer(context.Background(), env.userID, AnswerRequest{
				EntryID:          entry.ID,
				Answer:           answer,
				IsFromErrorQueue: true,
			})
			require.NoError(t, err)
			assert.Equal(t, answer == "lasting a very short time", result.Correct)
			assert.Nil(t, result.NextReviewAt)
			assert.Nil(t, result.Familiarity)

			stored := env.storedEntry(t, entry.ID)
			assert.Equal(t, entry.IntervalDays, stored.IntervalDays)
			assert.Equal(t, entry.EaseFactor, stored.EaseFactor)
			assert.Equal(t, entry.Familiarity, stored.Familiarity)
			assert.Equal(t, entry.NextReviewAt, stored.NextReviewAt)
			assert.Zero(t, env.cache.deletes)
		}
	})

	t.Run("rejects a record id belonging to another entry", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		first := env.addEntry(t, 0, 1, 2.5, 50)
		second := env.addEntry(t, 1, 1, 2.5, 50)

		rating, err := env.svc.SubmitRating(context.Background(), env.userID, first.ID, "known")
		require.NoError(t, err)

		_, err = env.svc.SubmitAnswer(context.Background(), env.userID, AnswerRequest{
			EntryID:  second.ID,
			Answer:   "present everywhere",
			RecordID: rating.RecordID,
		})
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("rejects a record id from an already graded rating", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		entry := env.addEntry(t, 0, 1, 2.5, 50)

		rating, err := env.svc.SubmitRating(context.Background(), env.userID, entry.ID, "unknown")
		require.NoError(t, err)

		_, err = env.svc.SubmitAnswer(context.Background(), env.userID, AnswerRequest{
			EntryID:  entry.ID,
			Answer:   "lasting a very short time",
			RecordID: rating.RecordID,
		})
		assert.ErrorIs(t, err, ErrRecordNotFound)

		record, err := env.records.GetByID(context.Background(), rating.RecordID)
		require.NoError(t, err)
		assert.Nil(t, record.TestPassed)
	})

	t.Run("rejects empty answers before any mutation", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		entry := env.addEntry(t, 0, 1, 2.5, 50)

		_, err := env.svc.SubmitAnswer(context.Background(), env.userID, AnswerRequest{
			EntryID: entry.ID,
		})
		assert.ErrorIs(t, err, ErrEmptyAnswer)

		stored := env.storedEntry(t, entry.ID)
		assert.Equal(t, entry.Familiarity, stored.Familiarity)
	})

	t.Run("reports foreign entries as not found", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		entry := env.addEntry(t, 0, 1, 2.5, 50)

		_, err := env.svc.SubmitAnswer(context.Background(), uuid.New(), AnswerRequest{
			EntryID: entry.ID,
			Answer:  "anything",
		})
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("invalidates the queue snapshot after grading", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		entry := env.addEntry(t, 0, 1, 2.5, 50)

		before, err := env.svc.GetQueue(context.Background(), env.userID)
		require.NoError(t, err)
		require.Len(t, before, 1)

		_, err = env.svc.SubmitAnswer(context.Background(), env.userID, AnswerRequest{
			EntryID: entry.ID,
			Answer:  "lasting a very short time",
		})
		require.NoError(t, err)

		after, err := env.svc.GetQueue(context.Background(), env.userID)
		require.NoError(t, err)
		assert.Empty(t, after, "graded entry is no longer due today")
	})
}
