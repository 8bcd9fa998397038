package driving

import (
	"context"

	"github.com/lexidx/lexidx/internal/core/domain"
)

// QueryEngine retrieves the passages nearest to a free-text query.
type QueryEngine interface {
	// Search embeds the query and returns up to topK passages in
	// ascending distance order. topK is clamped to the corpus size;
	// asking for more results than exist is never an error.
	Search(ctx context.Context, query string, topK int) ([]domain.SearchResult, error)
}
