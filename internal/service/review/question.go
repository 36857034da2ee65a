package review

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/lingoflow/lingoflow-api/internal/domain"
	"github.com/lingoflow/lingoflow-api/internal/store"
)

// desiredOptionCount is the target number of answer options per question:
// the correct meaning plus three distractors.
const desiredOptionCount = 4

// QuestionGenerator builds multiple-choice questions for catalog words,
// drawing distractor meanings from the full catalog.
//
// Determinism is intentionally absent: re-asking the same word can yield a
// different distractor set and option order. The package-level rand
// functions are safe for concurrent use.
type QuestionGenerator struct {
	words store.WordStore
}

// NewQuestionGenerator creates a question generator backed by the given
// word catalog.
func NewQuestionGenerator(words store.WordStore) *QuestionGenerator {
	if words == nil {
		panic("words cannot be nil")
	}
	return &QuestionGenerator{words: words}
}

// Generate builds a question for the target word. When the catalog holds
// fewer than three distinct distractor meanings, the options list degrades
// below four rather than failing.
func (g *QuestionGenerator) Generate(ctx context.Context, target *domain.Word) (*Question, error) {
	if target == nil {
		return nil, fmt.Errorf("target word cannot be nil")
	}

	catalog, err := g.words.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load word catalog: %w", err)
	}

	distractors := sampleDistractors(catalog, target, desiredOptionCount-1)

	options := append(distractors, target.Meaning)
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return &Question{
		Word:          target.Text,
		Phonetic:      target.Phonetic,
		Options:       options,
		CorrectAnswer: target.Meaning,
	}, nil
}

// sampleDistractors picks up to count distinct meanings from the catalog,
// excluding the target word and anything sharing its meaning text.
func sampleDistractors(catalog []*domain.Word, target *domain.Word, count int) []string {
	seen := map[string]struct{}{target.Meaning: {}}
	var pool []string
	for _, w := range catalog {
		if w.ID == target.ID {
			continue
		}
		if _, dup := seen[w.Meaning]; dup {
			continue
		}
		seen[w.Meaning] = struct{}{}
		pool = append(pool, w.Meaning)
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if len(pool) > count {
		pool = pool[:count]
	}
	return pool
}
