// Package domain defines the core business entities for lexidx.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Source: A configured remote document source
//   - RawDocument: Cached bytes fetched from a source
//   - Document: Extracted plain text for a source
//   - Passage: A bounded-length retrievable slice of extracted text
//   - SearchResult: A passage with its query distance
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
