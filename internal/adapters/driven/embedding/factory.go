// Package embedding selects and constructs the configured embedding
// service adapter.
package embedding

import (
	"fmt"
	"time"

	"github.com/lexidx/lexidx/internal/adapters/driven/embedding/ollama"
	"github.com/lexidx/lexidx/internal/adapters/driven/embedding/openai"
	"github.com/lexidx/lexidx/internal/core/domain"
	"github.com/lexidx/lexidx/internal/core/ports/driven"
)

// Provider types.
const (
	TypeOllama = "ollama"
	TypeOpenAI = "openai"
)

// Config selects and configures an embedding provider.
type Config struct {
	// Type is the provider: "ollama" (default) or "openai".
	Type string

	// BaseURL overrides the provider's API base URL.
	BaseURL string

	// APIKey authenticates against the provider (openai only).
	APIKey string

	// Model is the embedding model. The same model must be used for
	// building the index and for queries; a persisted index built with
	// a different model produces meaningless distances.
	Model string

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// Dimensions overrides the model's vector size.
	Dimensions int
}

// New constructs the embedding service for the configured provider.
func New(cfg Config) (driven.EmbeddingService, error) {
	switch cfg.Type {
	case TypeOllama, "":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Timeout:    cfg.Timeout,
			Dimensions: cfg.Dimensions,
		}), nil
	case TypeOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: openai embedder requires an API key", domain.ErrEmbeddingUnavailable)
		}
		return openai.NewEmbeddingService(openai.Config{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Timeout:    cfg.Timeout,
			Dimensions: cfg.Dimensions,
		}), nil
	default:
		return nil, fmt.Errorf("%w: unknown embedder type %q", domain.ErrInvalidInput, cfg.Type)
	}
}
