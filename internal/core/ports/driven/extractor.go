package driven

import (
	"context"

	"github.com/lexidx/lexidx/internal/core/domain"
)

// Extractor converts a raw document into plain text.
// Each extractor handles specific document kinds (PDF, HTML, ...).
type Extractor interface {
	// Kinds returns the document kinds this extractor handles.
	Kinds() []domain.Kind

	// Extract returns the plain text content of a raw document.
	// Partial failures degrade to partial text; an empty result means
	// the caller should skip the source without failing the build.
	Extract(ctx context.Context, raw *domain.RawDocument) (string, error)
}

// ExtractorRegistry selects the extractor for a document kind.
type ExtractorRegistry interface {
	// Get returns the extractor registered for the kind, or
	// domain.ErrUnsupportedKind when none is.
	Get(kind domain.Kind) (Extractor, error)
}

// Chunker splits extracted text into an ordered sequence of passages.
// Implementations must be pure: identical input yields identical output.
type Chunker interface {
	Chunk(text string) []string
}
