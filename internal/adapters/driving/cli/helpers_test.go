package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/lexidx/lexidx/internal/core/domain"
	"github.com/lexidx/lexidx/internal/core/ports/driven"
)

// stubIndex is a trivial vector index over three passages.
type stubIndex struct{}

func (stubIndex) Search(_ context.Context, _ []float32, k int) ([]driven.VectorHit, error) {
	hits := []driven.VectorHit{
		{Position: 0, Distance: 0.1},
		{Position: 1, Distance: 0.5},
		{Position: 2, Distance: 0.9},
	}
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

func (stubIndex) Len() int        { return 3 }
func (stubIndex) Dimensions() int { return 2 }

func stubSnapshot() *driven.Snapshot {
	return &driven.Snapshot{
		Index:  stubIndex{},
		Matrix: [][]float32{{0, 0}, {1, 1}, {2, 2}},
		Passages: []domain.Passage{
			{Position: 0, Text: "employer contribution rates", SourceTitle: "EPF Act 1952 (PDF)"},
			{Position: 1, Text: "tax deducted at source deposit", SourceTitle: "TDS Deposit (HTML)"},
			{Position: 2, Text: "duties of directors", SourceTitle: "Companies Act, 2013 (PDF)"},
		},
	}
}

// stubIndexer implements driving.Indexer.
type stubIndexer struct {
	rebuilds int
}

func (s *stubIndexer) BuildOrLoad(context.Context) (*driven.Snapshot, error) {
	return stubSnapshot(), nil
}

func (s *stubIndexer) Rebuild(context.Context) (*driven.Snapshot, error) {
	s.rebuilds++
	return stubSnapshot(), nil
}

// stubEmbedder implements driven.EmbeddingService.
type stubEmbedder struct{}

func (stubEmbedder) Embed(context.Context, string) ([]float32, error) {
	return []float32{0.5, 0.5}, nil
}

func (stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.5, 0.5}
	}
	return out, nil
}

func (stubEmbedder) Dimensions() int           { return 2 }
func (stubEmbedder) ModelName() string         { return "stub" }
func (stubEmbedder) Ping(context.Context) error { return nil }
func (stubEmbedder) Close() error              { return nil }

// stubSnapshotStore implements driven.SnapshotStore.
type stubSnapshotStore struct {
	removes int
}

func (s *stubSnapshotStore) Load(context.Context) (*driven.Snapshot, error) {
	return stubSnapshot(), nil
}

func (s *stubSnapshotStore) Save(context.Context, *driven.Snapshot) error { return nil }

func (s *stubSnapshotStore) Remove(context.Context) error {
	s.removes++
	return nil
}

// setupTestServices injects stub services and points the data
// directory at a temp dir. The returned cleanup restores everything.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	origIndexer := indexerService
	origEmbedder := embedderService
	origSnapshots := snapshotService
	origDataDir := dataDirFlag
	origConfig := configPath

	indexerService = &stubIndexer{}
	embedderService = stubEmbedder{}
	snapshotService = &stubSnapshotStore{}
	dir := t.TempDir()
	dataDirFlag = dir
	configPath = filepath.Join(dir, "config.toml")

	return func() {
		indexerService = origIndexer
		embedderService = origEmbedder
		snapshotService = origSnapshots
		dataDirFlag = origDataDir
		configPath = origConfig
	}
}
