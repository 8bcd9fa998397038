package domain

// SearchResult represents a single retrieval hit.
type SearchResult struct {
	// Passage is the retrieved passage.
	Passage Passage

	// Score is the squared Euclidean distance between the query
	// embedding and the passage embedding. Lower is more relevant;
	// the ordering is identical to plain Euclidean distance.
	Score float64
}

// MaxTopK is the upper bound the query surface accepts for top-k.
// The query engine itself only clamps to the corpus size.
const MaxTopK = 10

// DefaultTopK is the number of passages returned when the caller
// does not ask for a specific count.
const DefaultTopK = 3
