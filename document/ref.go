package document

import (
	"fmt"

	"github.com/milk9111/tactile/command"
	"github.com/milk9111/tactile/tilemap"
)

// Ref is a weak handle to a document.
type Ref struct {
	registry *Registry
	id       ID
}

func (r Ref) ID() ID {
	return r.id
}

// Document resolves the handle. It fails once the document is closed.
func (r Ref) Document() (*Document, bool) {
	if r.registry == nil {
		return nil, false
	}
	return r.registry.Get(r.id)
}

// Map resolves the map of the referenced document.
func (r Ref) Map() (*tilemap.Map, bool) {
	doc, ok := r.Document()
	if !ok {
		return nil, false
	}
	return doc.Map, true
}

// Resolve is Map for command constructors: a closed document yields an
// error wrapping command.ErrInvalidTarget.
func (r Ref) Resolve() (*tilemap.Map, error) {
	m, ok := r.Map()
	if !ok {
		return nil, fmt.Errorf("%w: document %s is closed", command.ErrInvalidTarget, r.id)
	}
	return m, nil
}
