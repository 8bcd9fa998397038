package flat

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexidx/lexidx/internal/core/domain"
)

func buildTestIndex(t *testing.T, matrix [][]float32) *Index {
	t.Helper()
	idx, err := Builder{}.Build(matrix)
	require.NoError(t, err)
	return idx.(*Index)
}

func TestSearch_AscendingDistance(t *testing.T) {
	idx := buildTestIndex(t, [][]float32{
		{0, 0}, // distance 2 from (1,1)
		{1, 1}, // distance 0
		{3, 3}, // distance 8
	})

	hits, err := idx.Search(context.Background(), []float32{1, 1}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, 1, hits[0].Position)
	assert.Equal(t, 0, hits[1].Position)
	assert.Equal(t, 2, hits[2].Position)

	assert.Equal(t, 0.0, hits[0].Distance)
	assert.Equal(t, 2.0, hits[1].Distance)
	assert.Equal(t, 8.0, hits[2].Distance)
}

func TestSearch_TiesBrokenByPosition(t *testing.T) {
	idx := buildTestIndex(t, [][]float32{
		{2, 0},
		{0, 2},
		{-2, 0},
	})

	hits, err := idx.Search(context.Background(), []float32{0, 0}, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, []int{hits[0].Position, hits[1].Position, hits[2].Position})
}

func TestSearch_KLargerThanRowCount(t *testing.T) {
	idx := buildTestIndex(t, [][]float32{{1}, {2}})

	hits, err := idx.Search(context.Background(), []float32{0}, 100)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestSearch_DimensionMismatch(t *testing.T) {
	idx := buildTestIndex(t, [][]float32{{1, 2}})

	_, err := idx.Search(context.Background(), []float32{1}, 1)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestSearch_InvalidK(t *testing.T) {
	idx := buildTestIndex(t, [][]float32{{1}})

	_, err := idx.Search(context.Background(), []float32{1}, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdd_DimensionMismatch(t *testing.T) {
	idx, err := New(3)
	require.NoError(t, err)
	assert.ErrorIs(t, idx.Add([]float32{1, 2}), domain.ErrDimensionMismatch)
}

func TestBuild_EmptyMatrix(t *testing.T) {
	_, err := Builder{}.Build(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRoundTrip(t *testing.T) {
	original := buildTestIndex(t, [][]float32{
		{0.5, -1.25, 3},
		{1, 2, 3},
		{-0.001, 0, 42},
	})

	var buf bytes.Buffer
	_, err := original.WriteTo(&buf)
	require.NoError(t, err)

	restored, err := Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, original.Len(), restored.Len())
	assert.Equal(t, original.Dimensions(), restored.Dimensions())

	// Same search results before and after the round trip.
	query := []float32{0.4, 0.1, 2.9}
	want, err := original.Search(context.Background(), query, 3)
	require.NoError(t, err)
	got, err := restored.Search(context.Background(), query, 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRead_BadMagic(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("NOTANIDX........")))
	assert.ErrorIs(t, err, domain.ErrSnapshotInvalid)
}

func TestRead_Truncated(t *testing.T) {
	idx := buildTestIndex(t, [][]float32{{1, 2}, {3, 4}})
	var buf bytes.Buffer
	_, err := idx.WriteTo(&buf)
	require.NoError(t, err)

	_, err = Read(bytes.NewReader(buf.Bytes()[:buf.Len()-3]))
	assert.Error(t, err)
}
