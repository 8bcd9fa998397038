package driven

import (
	"context"

	"github.com/lexidx/lexidx/internal/core/domain"
)

// Fetcher retrieves a remote document and caches it on disk.
//
// The cache is content-addressed by URL: once a file exists for a
// source it is returned unchanged on every subsequent call, with no
// freshness check. Staleness is an accepted tradeoff.
type Fetcher interface {
	// Fetch returns the raw document for a source, downloading it on
	// the first call and serving the cached file afterwards. The
	// returned document carries both the cache path and the bytes.
	Fetch(ctx context.Context, source domain.Source) (*domain.RawDocument, error)
}
