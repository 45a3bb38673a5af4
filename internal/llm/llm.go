package llm

import (
	"context"
	"fmt"

	"codeberg.org/skillsage/server/internal/config"
)

// combines an Embedder and a TextGenerator into a single LLM
type CompositeLLM struct {
	TextGenerator
	Embedder
}

// creates the Gemini-backed LLM from server configuration
func NewLLM(ctx context.Context, cfg config.AIConfig) (LLM, error) {
	return NewLLMWithConfig(ctx, &Config{
		APIKey:              cfg.APIKey,
		GenerationModel:     cfg.GenerationModel,
		Temperature:         defaultTemperature,
		EmbeddingModel:      cfg.EmbeddingModel,
		EmbeddingDimensions: cfg.EmbeddingDimensions,
		RequestsPerSecond:   cfg.RequestsPerSecond,
		Burst:               cfg.Burst,
		InitialInterval:     cfg.InitialInterval,
		MaxElapsedTime:      cfg.MaxElapsedTime,
	})
}

// creates a new LLM with explicit configuration
func NewLLMWithConfig(ctx context.Context, cfg *Config) (LLM, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	client, err := NewGeminiClient(ctx, *cfg)
	if err != nil {
		return nil, err
	}

	return &CompositeLLM{
		TextGenerator: client,
		Embedder:      client,
	}, nil
}
