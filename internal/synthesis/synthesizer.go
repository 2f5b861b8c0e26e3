// Package synthesis turns retrieved evidence into a written answer via the
// language model.
package synthesis

import (
	"context"

	"go.uber.org/zap"

	"github.com/andeslegal/consulta/internal/classify"
	"github.com/andeslegal/consulta/internal/generation"
	"github.com/andeslegal/consulta/pkg/utils"
)

const (
	// maxContextChars bounds the legal and documents blocks in the prompt.
	maxContextChars = 2000
	// maxUserContextChars bounds the requester context block.
	maxUserContextChars = 500

	defaultMaxTokens   = 1200
	defaultTemperature = 0.1

	// FallbackAnswer is returned when the model call fails. The caller still
	// gets a readable answer; the error signals the confidence penalty.
	FallbackAnswer = "Lo siento, ocurrió un error al generar la respuesta. Por favor intenta nuevamente."
)

// Input carries everything one synthesis call needs.
type Input struct {
	Question         string
	Category         classify.Category
	QueryType        classify.QueryType
	LegalContext     string
	UserContext      string
	DocumentsContext string
}

// Output is the written answer plus usage accounting.
type Output struct {
	Answer     string
	TokensUsed int
}

// Synthesizer builds prompts and calls the generator.
type Synthesizer struct {
	generator   generation.Generator
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

// NewSynthesizer creates a synthesizer over generator.
func NewSynthesizer(generator generation.Generator, logger *zap.Logger) *Synthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synthesizer{
		generator:   generator,
		maxTokens:   defaultMaxTokens,
		temperature: defaultTemperature,
		logger:      logger,
	}
}

// Synthesize writes the answer. On generator failure it returns the fallback
// answer together with the error, so the caller can both show something and
// penalize confidence.
func (s *Synthesizer) Synthesize(ctx context.Context, in *Input) (*Output, error) {
	prompt := BuildPrompt(
		in.Question,
		utils.Truncate(in.UserContext, maxUserContextChars),
		utils.Truncate(in.DocumentsContext, maxContextChars),
		utils.Truncate(in.LegalContext, maxContextChars),
		in.QueryType,
	)

	resp, err := s.generator.Generate(ctx, &generation.Request{
		System:      SystemPrompt(in.Category),
		Prompt:      prompt,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		s.logger.Error("generation failed",
			zap.String("category", in.Category.String()),
			zap.Error(err))
		return &Output{Answer: FallbackAnswer}, err
	}

	return &Output{Answer: resp.Text, TokensUsed: resp.TokensUsed}, nil
}
