// Package chunking provides the fixed-size passage chunker.
package chunking

import (
	"strings"
	"unicode/utf8"
)

// DefaultSize is the default stride in characters between cut points.
const DefaultSize = 800

// DefaultLookahead is how far past a cut point the chunker searches
// for a newline or space before giving up and cutting mid-token.
const DefaultLookahead = 100

// DefaultMinLength is the trimmed length below which a chunk is
// discarded as too short to be a useful retrieval unit.
const DefaultMinLength = 50

// Chunker splits plain text into bounded-length passages.
//
// The walk is a pure function of its input: carriage returns are
// replaced with spaces, then the text is cut in fixed strides. A cut
// that would land mid-text is extended to the nearest newline within
// the lookahead window, or failing that the nearest space, so words
// are not split. When neither occurs within the window the cut happens
// at the stride, splitting mid-token but never mid-rune.
type Chunker struct {
	size      int
	lookahead int
	minLength int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithSize sets the stride in characters.
func WithSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.size = size
		}
	}
}

// WithLookahead sets the boundary search window in characters.
func WithLookahead(lookahead int) Option {
	return func(c *Chunker) {
		if lookahead > 0 {
			c.lookahead = lookahead
		}
	}
}

// WithMinLength sets the trimmed length a chunk must exceed to survive.
func WithMinLength(minLength int) Option {
	return func(c *Chunker) {
		if minLength >= 0 {
			c.minLength = minLength
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		size:      DefaultSize,
		lookahead: DefaultLookahead,
		minLength: DefaultMinLength,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chunk splits text into ordered passages. The slice index of each
// returned passage is its chunk index within the source.
func (c *Chunker) Chunk(text string) []string {
	text = strings.ReplaceAll(text, "\r", " ")

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + c.size
		if end >= len(text) {
			end = len(text)
		} else {
			// Extend the cut to the next newline (preferred) or space
			// within the lookahead window so it lands between tokens.
			window := text[end:minInt(end+c.lookahead, len(text))]
			if cut := strings.IndexByte(window, '\n'); cut != -1 {
				end += cut
			} else if cut := strings.IndexByte(window, ' '); cut != -1 {
				end += cut
			} else {
				// Mid-token cut: advance to the next rune boundary so
				// a multi-byte character is never split across chunks.
				for end < len(text) && !utf8.RuneStart(text[end]) {
					end++
				}
			}
		}

		piece := strings.TrimSpace(text[start:end])
		if len(piece) > c.minLength {
			chunks = append(chunks, piece)
		}

		start = end
	}
	return chunks
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
