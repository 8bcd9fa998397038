// Package snapshot persists the index snapshot: the vector index, the
// embedding matrix and the passage collection, written and loaded as a
// single consistent unit.
//
// Artifacts are written into a staging directory and committed with one
// rename, so a crash mid-build can never leave a half-written snapshot
// that a later load silently accepts. Loading re-validates that all
// three artifacts agree on row count and passage ordering; any
// disagreement is treated exactly like a missing snapshot.
package snapshot

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/lexidx/lexidx/internal/adapters/driven/storage/sqlite"
	"github.com/lexidx/lexidx/internal/adapters/driven/vectorindex/flat"
	"github.com/lexidx/lexidx/internal/core/domain"
	"github.com/lexidx/lexidx/internal/core/ports/driven"
	"github.com/lexidx/lexidx/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.SnapshotStore = (*Store)(nil)

// Artifact filenames within the snapshot directory.
const (
	indexFile    = "index.flat"
	matrixFile   = "embeddings.bin"
	passagesFile = "passages.db"
)

// matrixMagic identifies the serialized embedding matrix format.
const matrixMagic = "LXMATRX1"

// Store persists snapshots under <dataDir>/snapshot.
type Store struct {
	dataDir string
}

// NewStore creates a snapshot store rooted at dataDir.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("snapshot: %w: data directory required", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	s := &Store{dataDir: dataDir}
	s.sweepStale()
	return s, nil
}

// sweepStale removes staging and retired snapshot directories left
// behind by a crash mid-save.
func (s *Store) sweepStale() {
	for _, pattern := range []string{"snapshot.staging-*", "snapshot.old-*"} {
		matches, err := filepath.Glob(filepath.Join(s.dataDir, pattern))
		if err != nil {
			continue
		}
		for _, match := range matches {
			if err := os.RemoveAll(match); err != nil {
				logger.Warn("could not remove stale snapshot directory %s: %v", match, err)
				continue
			}
			logger.Debug("removed stale snapshot directory %s", match)
		}
	}
}

// Dir returns the live snapshot directory.
func (s *Store) Dir() string {
	return filepath.Join(s.dataDir, "snapshot")
}

// Load deserializes the persisted snapshot and verifies the alignment
// invariant across its three artifacts.
func (s *Store) Load(ctx context.Context) (*driven.Snapshot, error) {
	dir := s.Dir()
	for _, name := range []string{indexFile, matrixFile, passagesFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrSnapshotMissing, name)
		}
	}

	f, err := os.Open(filepath.Join(dir, indexFile))
	if err != nil {
		return nil, fmt.Errorf("opening index artifact: %w", err)
	}
	defer f.Close()
	index, err := flat.Read(f)
	if err != nil {
		return nil, asInvalid(err)
	}

	matrix, err := readMatrix(filepath.Join(dir, matrixFile))
	if err != nil {
		return nil, asInvalid(err)
	}

	passageStore, err := sqlite.NewPassageStore(filepath.Join(dir, passagesFile))
	if err != nil {
		return nil, asInvalid(err)
	}
	defer passageStore.Close()
	passages, err := passageStore.LoadPassages(ctx)
	if err != nil {
		return nil, asInvalid(err)
	}

	if index.Len() != len(matrix) || len(matrix) != len(passages) {
		return nil, fmt.Errorf("%w: index has %d rows, matrix %d, passages %d",
			domain.ErrSnapshotInvalid, index.Len(), len(matrix), len(passages))
	}
	if len(matrix) > 0 && len(matrix[0]) != index.Dimensions() {
		return nil, fmt.Errorf("%w: matrix dimension %d, index dimension %d",
			domain.ErrSnapshotInvalid, len(matrix[0]), index.Dimensions())
	}

	logger.Debug("loaded snapshot: %d passages, %d dimensions", len(passages), index.Dimensions())
	return &driven.Snapshot{Index: index, Matrix: matrix, Passages: passages}, nil
}

// asInvalid classifies a deserialization failure as an invalid
// snapshot. Truncated or corrupted artifacts must make callers
// rebuild, never surface as plain IO errors.
func asInvalid(err error) error {
	if errors.Is(err, domain.ErrSnapshotInvalid) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrSnapshotInvalid, err)
}

// Save writes all artifacts into a staging directory and commits them
// with a single rename.
func (s *Store) Save(ctx context.Context, snap *driven.Snapshot) error {
	if snap == nil || len(snap.Passages) == 0 {
		return fmt.Errorf("snapshot: %w: nothing to save", domain.ErrInvalidInput)
	}
	if len(snap.Matrix) != len(snap.Passages) || snap.Index.Len() != len(snap.Passages) {
		return fmt.Errorf("snapshot: %w: misaligned artifacts", domain.ErrInvalidInput)
	}

	staging := filepath.Join(s.dataDir, "snapshot.staging-"+uuid.New().String())
	if err := os.MkdirAll(staging, 0o700); err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging) //nolint:errcheck // best-effort cleanup on failure

	index, ok := snap.Index.(*flat.Index)
	if !ok {
		return fmt.Errorf("snapshot: %w: unsupported index type %T", domain.ErrInvalidInput, snap.Index)
	}
	if err := writeIndexFile(filepath.Join(staging, indexFile), index); err != nil {
		return err
	}
	if err := writeMatrix(filepath.Join(staging, matrixFile), snap.Matrix); err != nil {
		return err
	}

	passageStore, err := sqlite.NewPassageStore(filepath.Join(staging, passagesFile))
	if err != nil {
		return err
	}
	if err := passageStore.SavePassages(ctx, snap.Passages); err != nil {
		passageStore.Close()
		return err
	}
	if err := passageStore.Close(); err != nil {
		return fmt.Errorf("closing passage artifact: %w", err)
	}

	// Commit: swap the staging directory into place. The live
	// directory is renamed aside first so the commit itself is a
	// single rename.
	live := s.Dir()
	old := live + ".old-" + uuid.New().String()
	if _, err := os.Stat(live); err == nil {
		if err := os.Rename(live, old); err != nil {
			return fmt.Errorf("retiring old snapshot: %w", err)
		}
	}
	if err := os.Rename(staging, live); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	if err := os.RemoveAll(old); err != nil {
		logger.Warn("could not remove retired snapshot %s: %v", old, err)
	}

	logger.Info("snapshot saved: %d passages", len(snap.Passages))
	return nil
}

// Remove deletes the live snapshot if it exists.
func (s *Store) Remove(_ context.Context) error {
	if err := os.RemoveAll(s.Dir()); err != nil {
		return fmt.Errorf("removing snapshot: %w", err)
	}
	return nil
}

func writeIndexFile(path string, index *flat.Index) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating index artifact: %w", err)
	}
	defer f.Close()
	if _, err := index.WriteTo(f); err != nil {
		return fmt.Errorf("writing index artifact: %w", err)
	}
	return f.Sync()
}

// writeMatrix serializes the embedding matrix: magic, uint32
// dimensions, uint32 row count, rows as little-endian float32.
func writeMatrix(path string, matrix [][]float32) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating matrix artifact: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(matrixMagic); err != nil {
		return err
	}
	dims := 0
	if len(matrix) > 0 {
		dims = len(matrix[0])
	}
	if err := binary.Write(w, binary.LittleEndian, []uint32{uint32(dims), uint32(len(matrix))}); err != nil {
		return err
	}
	for i, row := range matrix {
		if len(row) != dims {
			return fmt.Errorf("matrix: %w: row %d has %d values, want %d", domain.ErrDimensionMismatch, i, len(row), dims)
		}
		if err := binary.Write(w, binary.LittleEndian, row); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

func readMatrix(path string) ([][]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening matrix artifact: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	got := make([]byte, len(matrixMagic))
	if _, err := io.ReadFull(r, got); err != nil {
		return nil, fmt.Errorf("reading matrix header: %w", err)
	}
	if string(got) != matrixMagic {
		return nil, fmt.Errorf("%w: bad matrix file magic", domain.ErrSnapshotInvalid)
	}

	var header [2]uint32
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("reading matrix header: %w", err)
	}
	dims, rows := int(header[0]), int(header[1])

	matrix := make([][]float32, rows)
	for i := range matrix {
		row := make([]float32, dims)
		if err := binary.Read(r, binary.LittleEndian, row); err != nil {
			return nil, fmt.Errorf("reading matrix row %d: %w", i, err)
		}
		matrix[i] = row
	}
	return matrix, nil
}
