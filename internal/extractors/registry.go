package extractors

import (
	"fmt"

	"github.com/lexidx/lexidx/internal/core/domain"
	"github.com/lexidx/lexidx/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps document kinds to extractors.
type Registry struct {
	byKind map[domain.Kind]driven.Extractor
}

// NewRegistry creates a registry over the given extractors.
// Later registrations win when two extractors claim the same kind.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{byKind: make(map[domain.Kind]driven.Extractor)}
	for _, e := range extractors {
		for _, k := range e.Kinds() {
			r.byKind[k] = e
		}
	}
	return r
}

// Get returns the extractor registered for the kind.
func (r *Registry) Get(kind domain.Kind) (driven.Extractor, error) {
	e, ok := r.byKind[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedKind, kind)
	}
	return e, nil
}
