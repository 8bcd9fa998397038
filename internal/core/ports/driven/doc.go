// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Fetcher: Retrieves and caches remote documents
//   - Extractor: Converts raw documents into plain text
//   - ExtractorRegistry: Selects the extractor for a document kind
//   - Chunker: Splits plain text into passages
//   - EmbeddingService: Generates vector embeddings
//   - IndexBuilder: Constructs a vector index over an embedding matrix
//   - SnapshotStore: Persists and reloads the index snapshot
//
// The embedding model and the nearest-neighbour search are deliberately
// opaque capabilities behind EmbeddingService and VectorIndex so that a
// different model or index algorithm can be substituted without touching
// the pipeline.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
