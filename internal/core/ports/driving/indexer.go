package driving

import (
	"context"

	"github.com/lexidx/lexidx/internal/core/ports/driven"
)

// Indexer builds or loads the passage index.
type Indexer interface {
	// BuildOrLoad returns the persisted snapshot when a valid one
	// exists, otherwise runs the full ingestion pipeline and persists
	// the result. Returns domain.ErrEmptyCorpus when no source yields
	// any passage.
	BuildOrLoad(ctx context.Context) (*driven.Snapshot, error)

	// Rebuild always runs the full ingestion pipeline, replacing any
	// existing snapshot.
	Rebuild(ctx context.Context) (*driven.Snapshot, error)
}
