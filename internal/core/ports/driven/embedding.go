package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// The underlying model is an opaque capability: deterministic per model
// identity, no side effects, fixed dimensionality. The same model MUST
// be used at build time and at query time - mismatched embedding spaces
// silently produce meaningless distances, and nothing in the data model
// can detect that.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in order.
	// The index build embeds the whole corpus through a single call.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768, 1536).
	// Determined by the model identity.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
