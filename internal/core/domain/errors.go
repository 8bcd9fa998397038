package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedKind indicates no extractor handles a source kind.
	ErrUnsupportedKind = errors.New("unsupported document kind")

	// ErrEmptyCorpus indicates zero passages survived extraction and
	// chunking across all configured sources. This is fatal: the
	// process must not proceed to index construction or search.
	ErrEmptyCorpus = errors.New("no passages extracted from any source")

	// ErrSnapshotMissing indicates one or more snapshot artifacts do
	// not exist on disk. Triggers a full rebuild, never an error to
	// the user.
	ErrSnapshotMissing = errors.New("index snapshot missing")

	// ErrSnapshotInvalid indicates the snapshot artifacts exist but
	// disagree on row count or passage ordering. Treated exactly like
	// a missing snapshot.
	ErrSnapshotInvalid = errors.New("index snapshot invalid")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable. Nothing works without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrDimensionMismatch indicates a vector's dimensionality does
	// not match the index.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)
