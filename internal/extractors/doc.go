// Package extractors provides implementations of the Extractor interface
// for the document kinds lexidx ingests. Each extractor knows how to pull
// plain text out of one format.
//
// Extractors are registered with the Registry at startup and selected by
// the source's kind.
package extractors
