// Package services implements the driving ports: the pipeline that
// builds or loads the passage index, and the query engine over it.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lexidx/lexidx/internal/core/domain"
	"github.com/lexidx/lexidx/internal/core/ports/driven"
	"github.com/lexidx/lexidx/internal/core/ports/driving"
	"github.com/lexidx/lexidx/internal/logger"
)

// Ensure IndexOrchestrator implements the interface.
var _ driving.Indexer = (*IndexOrchestrator)(nil)

// IndexOrchestrator coordinates the ingestion pipeline:
// fetch → extract → chunk per source, then embed, index and persist.
type IndexOrchestrator struct {
	sources   []domain.Source
	fetcher   driven.Fetcher
	registry  driven.ExtractorRegistry
	chunker   driven.Chunker
	embedder  driven.EmbeddingService
	builder   driven.IndexBuilder
	snapshots driven.SnapshotStore
}

// NewIndexOrchestrator creates an orchestrator over the configured
// sources. Source declaration order defines passage ordering.
func NewIndexOrchestrator(
	sources []domain.Source,
	fetcher driven.Fetcher,
	registry driven.ExtractorRegistry,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	builder driven.IndexBuilder,
	snapshots driven.SnapshotStore,
) *IndexOrchestrator {
	return &IndexOrchestrator{
		sources:   sources,
		fetcher:   fetcher,
		registry:  registry,
		chunker:   chunker,
		embedder:  embedder,
		builder:   builder,
		snapshots: snapshots,
	}
}

// BuildOrLoad returns the persisted snapshot when a valid one exists;
// otherwise it runs the full pipeline. An invalid snapshot is logged
// and rebuilt, never surfaced as an error.
func (o *IndexOrchestrator) BuildOrLoad(ctx context.Context) (*driven.Snapshot, error) {
	snap, err := o.snapshots.Load(ctx)
	if err == nil {
		return snap, nil
	}
	switch {
	case errors.Is(err, domain.ErrSnapshotMissing):
		logger.Info("no index snapshot found, building")
	case errors.Is(err, domain.ErrSnapshotInvalid):
		logger.Warn("index snapshot is inconsistent, rebuilding: %v", err)
	default:
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	return o.Rebuild(ctx)
}

// Rebuild runs the full ingestion pipeline and persists the result,
// replacing any existing snapshot.
func (o *IndexOrchestrator) Rebuild(ctx context.Context) (*driven.Snapshot, error) {
	passages := o.collect(ctx)
	if len(passages) == 0 {
		return nil, domain.ErrEmptyCorpus
	}

	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}

	logger.Info("embedding %d passages with %s", len(texts), o.embedder.ModelName())
	matrix, err := o.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding passages: %w", err)
	}

	index, err := o.builder.Build(matrix)
	if err != nil {
		return nil, fmt.Errorf("building vector index: %w", err)
	}

	snap := &driven.Snapshot{Index: index, Matrix: matrix, Passages: passages}
	if err := o.snapshots.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}
	return snap, nil
}

// collect runs fetch → extract → chunk for every source in declared
// order. A failed source is logged and skipped; it never aborts the
// build. Passage positions are assigned across the whole corpus.
func (o *IndexOrchestrator) collect(ctx context.Context) []domain.Passage {
	var passages []domain.Passage
	for _, src := range o.sources {
		raw, err := o.fetcher.Fetch(ctx, src)
		if err != nil {
			logger.Warn("skipping %s: fetch failed: %v", src.Title, err)
			continue
		}

		extractor, err := o.registry.Get(src.Kind)
		if err != nil {
			logger.Warn("skipping %s: %v", src.Title, err)
			continue
		}

		text, err := extractor.Extract(ctx, raw)
		if err != nil {
			logger.Warn("skipping %s: extraction failed: %v", src.Title, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			logger.Warn("skipping %s: no extractable text", src.Title)
			continue
		}

		doc := domain.Document{ID: uuid.New().String(), Source: src, Content: text}
		chunks := o.chunker.Chunk(doc.Content)
		logger.Debug("document %s (%s): %d chunks", doc.ID, src.Title, len(chunks))

		for i, chunk := range chunks {
			passages = append(passages, domain.Passage{
				Position:    len(passages),
				Text:        chunk,
				SourceTitle: src.Title,
				SourceURL:   src.URL,
				ChunkIndex:  i,
			})
		}
	}
	return passages
}
