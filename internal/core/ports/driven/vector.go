package driven

import "context"

// VectorIndex provides nearest-neighbour search over passage embeddings.
//
// Row IDs are defined to equal passage positions: row i of the index is
// the embedding of passage i. The search algorithm itself is opaque;
// lexidx ships a flat exhaustive L2 implementation, but an approximate
// index can be substituted behind this port.
type VectorIndex interface {
	// Search finds the k nearest rows to the query vector by squared
	// L2 distance, in ascending distance order. When k exceeds the
	// row count, all rows are returned.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of rows in the index.
	Len() int

	// Dimensions returns the vector size the index was built for.
	Dimensions() int
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// Position is the matched row, equal to the passage position.
	Position int

	// Distance is the squared L2 distance to the query vector.
	Distance float64
}

// IndexBuilder constructs a vector index over an embedding matrix.
// Row i of the matrix becomes row i of the index.
type IndexBuilder interface {
	Build(matrix [][]float32) (VectorIndex, error)
}
