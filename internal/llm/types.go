package llm

import (
	"context"
	"errors"
	"time"
)

var ErrEmptyReply = errors.New("empty reply")

// generates free text from a prompt
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// generates embeddings from text
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// combines text generation and embedding generation
type LLM interface {
	TextGenerator
	Embedder
}

// holds configuration for LLM initialization
type Config struct {
	APIKey string

	GenerationModel string  // e.g., "gemini-2.0-flash"
	Temperature     float32 // 0.0 to 2.0

	EmbeddingModel      string // e.g., "text-embedding-004"
	EmbeddingDimensions int

	// client-side throttle shared by generation and embedding calls
	RequestsPerSecond float64
	Burst             int

	// retry policy for transient upstream failures
	InitialInterval time.Duration
	MaxElapsedTime  time.Duration
}

const (
	defaultGenerationModel = "gemini-2.0-flash"
	defaultEmbeddingModel  = "text-embedding-004"
	defaultDimensions      = 768
	defaultTemperature     = 0.4
)
