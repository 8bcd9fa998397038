package driven

import (
	"context"

	"github.com/lexidx/lexidx/internal/core/domain"
)

// Snapshot is the durable unit of the whole index: the vector index,
// the raw embedding matrix and the passage collection. The three parts
// are only meaningful together - row i of each refers to passage i.
type Snapshot struct {
	// Index is the vector index over the embedding matrix.
	Index VectorIndex

	// Matrix is the embedding matrix, one row per passage, in passage
	// position order.
	Matrix [][]float32

	// Passages is the ordered passage collection. Passages[i].Position
	// is always i.
	Passages []domain.Passage
}

// SnapshotStore persists and reloads the index snapshot as a unit.
type SnapshotStore interface {
	// Load deserializes a previously saved snapshot. Returns
	// domain.ErrSnapshotMissing when any artifact is absent and
	// domain.ErrSnapshotInvalid when the artifacts disagree on row
	// count or passage ordering; both mean "rebuild".
	Load(ctx context.Context) (*Snapshot, error)

	// Save persists all snapshot artifacts as one logical write.
	// A crash mid-save must never leave a half-written snapshot that
	// a later Load accepts.
	Save(ctx context.Context, snap *Snapshot) error

	// Remove deletes the persisted snapshot if it exists.
	Remove(ctx context.Context) error
}
