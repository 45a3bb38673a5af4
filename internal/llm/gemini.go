package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"codeberg.org/skillsage/server/internal/metrics"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// talks to the Gemini API for both generation and embeddings
type GeminiClient struct {
	client  *genai.Client
	config  Config
	limiter *rate.Limiter
	retry   retryPolicy
}

func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}

	if cfg.GenerationModel == "" {
		cfg.GenerationModel = defaultGenerationModel
	}

	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = defaultEmbeddingModel
	}

	if cfg.EmbeddingDimensions <= 0 {
		cfg.EmbeddingDimensions = defaultDimensions
	}

	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 5
	}

	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		config:  cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		retry:   newRetryPolicy(cfg.InitialInterval, cfg.MaxElapsedTime),
	}, nil
}

// generates text for a single-turn prompt
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (text string, err error) {
	start := time.Now()
	defer func() { metrics.ObserveAI("generate", start, err) }()

	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.config.Temperature),
	}

	err = g.retry.do(ctx, func() error {
		if err := g.limiter.Wait(ctx); err != nil {
			return permanent(err)
		}

		resp, err := g.client.Models.GenerateContent(ctx, g.config.GenerationModel, genai.Text(prompt), genConfig)
		if err != nil {
			return classify(err)
		}

		text = strings.TrimSpace(resp.Text())
		if text == "" {
			return emptyReply(g.config.GenerationModel)
		}

		return nil
	})
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	return text, nil
}

// generates an embedding with the configured dimensionality
func (g *GeminiClient) GenerateEmbedding(ctx context.Context, text string) (values []float32, err error) {
	start := time.Now()
	defer func() { metrics.ObserveAI("embed", start, err) }()

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	dims := int32(g.config.EmbeddingDimensions) //nolint:gosec // validated at config load
	embedConfig := &genai.EmbedContentConfig{
		TaskType:             "SEMANTIC_SIMILARITY",
		OutputDimensionality: &dims,
	}

	err = g.retry.do(ctx, func() error {
		if err := g.limiter.Wait(ctx); err != nil {
			return permanent(err)
		}

		res, err := g.client.Models.EmbedContent(ctx, g.config.EmbeddingModel, genai.Text(text), embedConfig)
		if err != nil {
			return classify(err)
		}

		if res == nil || len(res.Embeddings) == 0 || res.Embeddings[0] == nil || len(res.Embeddings[0].Values) == 0 {
			return permanent(fmt.Errorf("empty embedding result"))
		}

		values = res.Embeddings[0].Values
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("embedding failed: %w", err)
	}

	if len(values) != g.config.EmbeddingDimensions {
		return nil, fmt.Errorf("embedding has %d dimensions, expected %d", len(values), g.config.EmbeddingDimensions)
	}

	return values, nil
}
