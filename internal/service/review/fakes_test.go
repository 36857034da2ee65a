package review

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-api/internal/domain"
	"github.com/lingoflow/lingoflow-api/internal/store"
)

// passthroughTxRunner runs the transaction function directly with a nil
// transaction; the fakes ignore WithTx rebinding.
func passthroughTxRunner(ctx context.Context, fn store.TxFn) error {
	return fn(ctx, nil)
}

type fakeVocabStore struct {
	entries map[uuid.UUID]*domain.VocabularyEntry
}

var _ store.VocabularyStore = (*fakeVocabStore)(nil)

func newFakeVocabStore() *fakeVocabStore {
	return &fakeVocabStore{entries: make(map[uuid.UUID]*domain.VocabularyEntry)}
}

func (s *fakeVocabStore) put(entry *domain.VocabularyEntry) {
	copied := *entry
	s.entries[entry.ID] = &copied
}

func (s *fakeVocabStore) Create(ctx context.Context, entry *domain.VocabularyEntry) error {
	if _, ok := s.entries[entry.ID]; ok {
		return store.ErrEntryExists
	}
	s.put(entry)
	return nil
}

func (s *fakeVocabStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.VocabularyEntry, error) {
	entry, ok := s.entries[id]
	if !ok {
		return nil, store.ErrEntryNotFound
	}
	copied := *entry
	return &copied, nil
}

func (s *fakeVocabStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.VocabularyEntry, error) {
	return s.GetByID(ctx, id)
}

func (s *fakeVocabStore) FindDueForUser(
	ctx context.Context,
	userID uuid.UUID,
	nowLimit time.Time,
	limit int,
) ([]*domain.VocabularyEntry, error) {
	var due []*domain.VocabularyEntry
	for _, entry := range s.entries {
		if entry.UserID == userID && !entry.NextReviewAt.After(nowLimit) {
			copied := *entry
			due = append(due, &copied)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].NextReviewAt.Before(due[j].NextReviewAt)
	})
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (s *fakeVocabStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.VocabularyEntry, int, error) {
	return nil, 0, errors.New("not used in these tests")
}

func (s *fakeVocabStore) FindByUserAndWord(
	ctx context.Context,
	userID, wordID uuid.UUID,
) (*domain.VocabularyEntry, error) {
	for _, entry := range s.entries {
		if entry.UserID == userID && entry.WordID == wordID {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, store.ErrEntryNotFound
}

func (s *fakeVocabStore) Update(ctx context.Context, entry *domain.VocabularyEntry) error {
	if _, ok := s.entries[entry.ID]; !ok {
		return store.ErrEntryNotFound
	}
	s.put(entry)
	return nil
}

func (s *fakeVocabStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.entries[id]; !ok {
		return store.ErrEntryNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *fakeVocabStore) WithTx(tx *sql.Tx) store.VocabularyStore { return s }

type fakeWordStore struct {
	words []*domain.Word
}

var _ store.WordStore = (*fakeWordStore)(nil)

func (s *fakeWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	for _, w := range s.words {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, store.ErrWordNotFound
}

func (s *fakeWordStore) FindAll(ctx context.Context) ([]*domain.Word, error) {
	return s.words, nil
}

func (s *fakeWordStore) List(
	ctx context.Context,
	difficulty domain.Difficulty,
	offset, limit int,
) ([]*domain.Word, int, error) {
	return s.words, len(s.words), nil
}

func (s *fakeWordStore) FindUnlearned(
	ctx context.Context,
	userID uuid.UUID,
	difficulty domain.Difficulty,
	limit int,
) ([]*domain.Word, error) {
	return s.words, nil
}

func (s *fakeWordStore) SetExampleSentence(ctx context.Context, id uuid.UUID, sentence string) error {
	for _, w := range s.words {
		if w.ID == id {
			w.ExampleSentence = sentence
			return nil
		}
	}
	return store.ErrWordNotFound
}

func (s *fakeWordStore) WithTx(tx *sql.Tx) store.WordStore { return s }

type fakeRecordStore struct {
	records []*domain.ReviewRecord
}

var _ store.ReviewRecordStore = (*fakeRecordStore)(nil)

func (s *fakeRecordStore) Create(ctx context.Context, record *domain.ReviewRecord) error {
	copied := *record
	s.records = append(s.records, &copied)
	return nil
}

func (s *fakeRecordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewRecord, error) {
	for _, r := range s.records {
		if r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, store.ErrRecordNotFound
}

func (s *fakeRecordStore) FindMostRecentOpen(
	ctx context.Context,
	userID, entryID uuid.UUID,
) (*domain.ReviewRecord, error) {
	var newest *domain.ReviewRecord
	for _, r := range s.records {
		if r.UserID != userID || r.EntryID != entryID {
			continue
		}
		if r.Rating != domain.RatingKnown || r.TestPassed != nil {
			continue
		}
		if newest == nil || r.CreatedAt.After(newest.CreatedAt) {
			newest = r
		}
	}
	if newest == nil {
		return nil, store.ErrRecordNotFound
	}
	copied := *newest
	return &copied, nil
}

func (s *fakeRecordStore) UpdateOutcome(ctx context.Context, record *domain.ReviewRecord) error {
	for _, r := range s.records {
		if r.ID == record.ID {
			r.TestPassed = record.TestPassed
			r.ResponseTimeMs = record.ResponseTimeMs
			return nil
		}
	}
	return store.ErrRecordNotFound
}

func (s *fakeRecordStore) WithTx(tx *sql.Tx) store.ReviewRecordStore { return s }

type fakeCache struct {
	data       map[string]string
	failReads  bool
	failWrites bool
	sets       int
	deletes    int
}

var _ store.Cache = (*fakeCache)(nil)

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if c.failReads {
		return "", errors.New("cache unavailable")
	}
	value, ok := c.data[key]
	if !ok {
		return "", store.ErrCacheMiss
	}
	return value, nil
}

func (c *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if c.failWrites {
		return errors.New("cache unavailable")
	}
	c.data[key] = value
	c.sets++
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	if c.failWrites {
		return errors.New("cache unavailable")
	}
	delete(c.data, key)
	c.deletes++
	return nil
}
