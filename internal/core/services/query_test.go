package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexidx/lexidx/internal/core/domain"
	"github.com/lexidx/lexidx/internal/core/ports/driven"
)

func snapshotWithPassages(n int) *driven.Snapshot {
	passages := make([]domain.Passage, n)
	matrix := make([][]float32, n)
	hits := make([]driven.VectorHit, n)
	for i := 0; i < n; i++ {
		passages[i] = domain.Passage{Position: i, Text: "passage", SourceTitle: "src"}
		matrix[i] = []float32{float32(i), 1}
		hits[i] = driven.VectorHit{Position: i, Distance: float64(i)}
	}
	return &driven.Snapshot{
		Index:    &mockIndex{rows: n, dims: 2, hits: hits},
		Matrix:   matrix,
		Passages: passages,
	}
}

func TestSearch_ReturnsAscendingDistances(t *testing.T) {
	e := NewQueryEngine(&mockEmbedder{}, snapshotWithPassages(5))

	results, err := e.Search(context.Background(), "provident fund withdrawal", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].Score, results[i].Score)
	}
	assert.Equal(t, 0, results[0].Passage.Position)
}

func TestSearch_EmptyQuery(t *testing.T) {
	e := NewQueryEngine(&mockEmbedder{}, snapshotWithPassages(3))

	for _, query := range []string{"", "   ", "\n\t"} {
		_, err := e.Search(context.Background(), query, 3)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestSearch_TopKAboveCorpusSizeIsClamped(t *testing.T) {
	e := NewQueryEngine(&mockEmbedder{}, snapshotWithPassages(2))

	results, err := e.Search(context.Background(), "tds deposit due date", 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearch_TopKBelowOneIsRaised(t *testing.T) {
	e := NewQueryEngine(&mockEmbedder{}, snapshotWithPassages(4))

	results, err := e.Search(context.Background(), "director liability", 0)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = e.Search(context.Background(), "director liability", -7)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearch_EmbedderFailureSurfaces(t *testing.T) {
	e := NewQueryEngine(&mockEmbedder{embedErr: errors.New("connection refused")}, snapshotWithPassages(3))

	_, err := e.Search(context.Background(), "anything", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding query")
}

func TestSearch_OutOfRangeHitIsSnapshotInvalid(t *testing.T) {
	snap := snapshotWithPassages(2)
	snap.Index = &mockIndex{rows: 2, dims: 2, hits: []driven.VectorHit{{Position: 9, Distance: 0}}}
	e := NewQueryEngine(&mockEmbedder{}, snap)

	_, err := e.Search(context.Background(), "anything", 1)
	assert.ErrorIs(t, err, domain.ErrSnapshotInvalid)
}
