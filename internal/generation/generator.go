// Package generation defines the boundary between the application core and
// external AI/LLM services used to enrich catalog words.
package generation

import (
	"context"

	"github.com/lingoflow/lingoflow-api/internal/domain"
)

// Generator defines the interface for generating example sentences for
// catalog words. Implementations talk to an external language model; the
// rest of the application only sees this interface.
type Generator interface {
	// GenerateExampleSentence produces a single example sentence that uses
	// the given word naturally, suitable for a learner at the word's
	// difficulty level.
	GenerateExampleSentence(ctx context.Context, word *domain.Word) (string, error)
}
