package domain

// RawDocument represents the cached bytes fetched from a source.
// It is the fetcher's output before text extraction.
type RawDocument struct {
	// Source is the source the bytes were fetched for.
	Source Source

	// Path is the location of the cached file on disk.
	Path string

	// Content is the raw bytes.
	Content []byte
}

// Document represents the extracted plain text of a single source.
// It is the extractor's output before chunking.
type Document struct {
	// ID is the unique identifier assigned at extraction time.
	ID string

	// Source is the source the text was extracted from.
	Source Source

	// Content is the full plain text after extraction.
	Content string
}

// Passage is the atomic retrievable unit: a bounded-length slice of
// a document's extracted text. Passages are created once during index
// build and are immutable thereafter.
type Passage struct {
	// Position is the explicit identifier of the passage: its index
	// in the flat corpus-wide passage sequence. Row i of the embedding
	// matrix and row i of the vector index hold the same passage,
	// and every persisted artifact stores this position so the
	// alignment can be verified on load.
	Position int

	// Text is the trimmed passage text. Always longer than the
	// chunker's minimum length.
	Text string

	// SourceTitle is the title of the originating source.
	SourceTitle string

	// SourceURL is the URL of the originating source.
	SourceURL string

	// ChunkIndex is the 0-based position of the passage within its
	// own source's extracted text.
	ChunkIndex int
}
