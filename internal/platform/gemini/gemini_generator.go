// Package gemini implements the generation.Generator interface using
// Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/lingoflow/lingoflow-api/internal/config"
	"github.com/lingoflow/lingoflow-api/internal/domain"
	"github.com/lingoflow/lingoflow-api/internal/generation"
)

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API to generate example sentences for catalog words.
type GeminiGenerator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// Ensure GeminiGenerator implements generation.Generator interface
var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a new GeminiGenerator from the LLM
// configuration. Returns generation.ErrInvalidConfig if the API key or
// model name is missing.
func NewGeminiGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &GeminiGenerator{
		logger: logger.With(slog.String("component", "gemini_generator")),
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// GenerateExampleSentence implements generation.Generator.
func (g *GeminiGenerator) GenerateExampleSentence(
	ctx context.Context,
	word *domain.Word,
) (string, error) {
	if word == nil || word.Text == "" {
		return "", fmt.Errorf("%w: word cannot be empty", generation.ErrGenerationFailed)
	}

	prompt := buildPrompt(word)

	g.logger.DebugContext(ctx, "calling Gemini API",
		"model", g.model,
		"word", word.Text)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"error", err,
			"word", word.Text)
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	sentence := strings.TrimSpace(resp.Text())
	if sentence == "" {
		return "", fmt.Errorf("%w: empty response", generation.ErrInvalidResponse)
	}

	// Models occasionally wrap output in quotes despite instructions.
	sentence = strings.Trim(sentence, `"`)

	g.logger.DebugContext(ctx, "generated example sentence",
		"word", word.Text,
		"sentence_length", len(sentence))

	return sentence, nil
}

func buildPrompt(word *domain.Word) string {
	var b strings.Builder
	b.WriteString("Write one natural English example sentence using the word ")
	fmt.Fprintf(&b, "%q (meaning: %s).", word.Text, word.Meaning)
	b.WriteString(" The sentence should suit a ")
	b.WriteString(string(word.Difficulty))
	b.WriteString("-level English learner.")
	b.WriteString(" Respond with the sentence only, no quotes and no explanation.")
	return b.String()
}
