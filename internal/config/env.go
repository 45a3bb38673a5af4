package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return Parse()
}

// parses the current process environment without touching .env files
func Parse() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.AI.EmbeddingDimensions <= 0 {
		return nil, fmt.Errorf("EMBEDDING_DIMENSIONS must be positive, got %d", cfg.AI.EmbeddingDimensions)
	}

	if cfg.AI.PlagiarismThreshold < 0 || cfg.AI.PlagiarismThreshold > 100 {
		return nil, fmt.Errorf("PLAGIARISM_THRESHOLD must be between 0 and 100, got %v", cfg.AI.PlagiarismThreshold)
	}

	if cfg.AI.PlagiarismNeighbors <= 0 {
		cfg.AI.PlagiarismNeighbors = 5
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = cfg.JWTSecret
	}

	return &cfg, nil
}
