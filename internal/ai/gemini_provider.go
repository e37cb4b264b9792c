package ai

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// DefaultGeminiModel is used when ai.model is not set for the gemini provider.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider sends prompts to Google Gemini through langchaingo.
type GeminiProvider struct {
	llm llms.Model
}

// NewGeminiProvider creates a Gemini client for the given model.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if model == "" {
		model = DefaultGeminiModel
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiProvider{llm: llm}, nil
}

// Complete asks Gemini for a JSON-only answer to prompt.
func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, p.llm, prompt,
		llms.WithJSONMode(),
		llms.WithTemperature(0.2),
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return out, nil
}
