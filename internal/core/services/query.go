package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexidx/lexidx/internal/core/domain"
	"github.com/lexidx/lexidx/internal/core/ports/driven"
	"github.com/lexidx/lexidx/internal/core/ports/driving"
)

// Ensure QueryEngine implements the interface.
var _ driving.QueryEngine = (*QueryEngine)(nil)

// QueryEngine retrieves the passages nearest to a query. It holds the
// loaded snapshot and the embedding service as immutable state; both
// are constructed once at process start and injected here.
type QueryEngine struct {
	embedder driven.EmbeddingService
	snap     *driven.Snapshot
}

// NewQueryEngine creates a query engine over a loaded snapshot.
// The embedder must be the same model the snapshot was built with.
func NewQueryEngine(embedder driven.EmbeddingService, snap *driven.Snapshot) *QueryEngine {
	return &QueryEngine{embedder: embedder, snap: snap}
}

// Search embeds the query and returns up to topK passages in ascending
// distance order. topK below 1 is raised to 1 and topK above the
// corpus size is truncated; neither is an error.
func (e *QueryEngine) Search(ctx context.Context, query string, topK int) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if topK < 1 {
		topK = 1
	}
	if n := len(e.snap.Passages); topK > n {
		topK = n
	}

	vector, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	hits, err := e.snap.Index.Search(ctx, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		if hit.Position < 0 || hit.Position >= len(e.snap.Passages) {
			return nil, fmt.Errorf("%w: index returned row %d for %d passages",
				domain.ErrSnapshotInvalid, hit.Position, len(e.snap.Passages))
		}
		results = append(results, domain.SearchResult{
			Passage: e.snap.Passages[hit.Position],
			Score:   hit.Distance,
		})
	}
	return results, nil
}
