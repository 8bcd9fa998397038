// Package flat provides an exhaustive L2 nearest-neighbour index.
//
// Every query scans the full embedding matrix, so recall is exact by
// construction. Row IDs equal the insertion order, which the pipeline
// defines to be passage positions. The corpora this serves are a few
// thousand rows; brute force is well within budget.
package flat

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/lexidx/lexidx/internal/core/domain"
	"github.com/lexidx/lexidx/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// magic identifies the serialized index format.
const magic = "LXFLAT1\n"

// Index is a flat (exhaustive) L2 vector index.
type Index struct {
	dimensions int
	vectors    [][]float32
}

// New creates an empty index for vectors of the given dimensionality.
func New(dimensions int) (*Index, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive", domain.ErrInvalidInput)
	}
	return &Index{dimensions: dimensions}, nil
}

// Builder constructs flat indexes over embedding matrices.
// It implements driven.IndexBuilder.
type Builder struct{}

// Build creates an index whose row i is matrix row i.
func (Builder) Build(matrix [][]float32) (driven.VectorIndex, error) {
	if len(matrix) == 0 {
		return nil, fmt.Errorf("%w: empty embedding matrix", domain.ErrInvalidInput)
	}
	idx, err := New(len(matrix[0]))
	if err != nil {
		return nil, err
	}
	if err := idx.Add(matrix...); err != nil {
		return nil, err
	}
	return idx, nil
}

// Add appends vectors to the index in order.
func (idx *Index) Add(vectors ...[]float32) error {
	for _, v := range vectors {
		if len(v) != idx.dimensions {
			return fmt.Errorf("%w: got %d, index has %d", domain.ErrDimensionMismatch, len(v), idx.dimensions)
		}
		idx.vectors = append(idx.vectors, v)
	}
	return nil
}

// Search returns the k nearest rows to the query by squared L2
// distance, ascending. Ties are broken by row order. k greater than
// the row count returns every row.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if len(query) != idx.dimensions {
		return nil, fmt.Errorf("%w: query has %d, index has %d", domain.ErrDimensionMismatch, len(query), idx.dimensions)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1", domain.ErrInvalidInput)
	}
	if k > len(idx.vectors) {
		k = len(idx.vectors)
	}

	hits := make([]driven.VectorHit, len(idx.vectors))
	for i, v := range idx.vectors {
		hits[i] = driven.VectorHit{Position: i, Distance: squaredL2(query, v)}
	}
	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Distance != hits[b].Distance {
			return hits[a].Distance < hits[b].Distance
		}
		return hits[a].Position < hits[b].Position
	})

	return hits[:k], nil
}

// Len returns the number of rows in the index.
func (idx *Index) Len() int {
	return len(idx.vectors)
}

// Dimensions returns the vector size the index was built for.
func (idx *Index) Dimensions() int {
	return idx.dimensions
}

// squaredL2 computes the squared Euclidean distance between two
// vectors. The square root is skipped: it does not change ordering.
func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// WriteTo serializes the index: magic, uint32 dimensions, uint32 row
// count, then the vectors as little-endian float32.
func (idx *Index) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	n := int64(0)

	written, err := bw.WriteString(magic)
	if err != nil {
		return n, err
	}
	n += int64(written)

	header := []uint32{uint32(idx.dimensions), uint32(len(idx.vectors))}
	if err := binary.Write(bw, binary.LittleEndian, header); err != nil {
		return n, err
	}
	n += 8

	for _, v := range idx.vectors {
		if err := binary.Write(bw, binary.LittleEndian, v); err != nil {
			return n, err
		}
		n += int64(4 * len(v))
	}

	return n, bw.Flush()
}

// Read deserializes an index written by WriteTo.
func Read(r io.Reader) (*Index, error) {
	br := bufio.NewReader(r)

	got := make([]byte, len(magic))
	if _, err := io.ReadFull(br, got); err != nil {
		return nil, fmt.Errorf("reading index header: %w", err)
	}
	if string(got) != magic {
		return nil, fmt.Errorf("%w: bad index file magic", domain.ErrSnapshotInvalid)
	}

	var header [2]uint32
	if err := binary.Read(br, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("reading index header: %w", err)
	}
	dimensions, rows := int(header[0]), int(header[1])

	idx, err := New(dimensions)
	if err != nil {
		return nil, fmt.Errorf("%w: index file declares %d dimensions", domain.ErrSnapshotInvalid, dimensions)
	}

	idx.vectors = make([][]float32, rows)
	for i := range idx.vectors {
		v := make([]float32, dimensions)
		if err := binary.Read(br, binary.LittleEndian, v); err != nil {
			return nil, fmt.Errorf("reading index row %d: %w", i, err)
		}
		idx.vectors[i] = v
	}

	return idx, nil
}
