// Package document owns open map documents. Documents live in a registry
// keyed by generational ids, so history entries that outlive a closed
// document resolve to nothing instead of a dangling map.
package document

import (
	"errors"
	"fmt"

	"github.com/milk9111/tactile/command"
	"github.com/milk9111/tactile/ecs"
	"github.com/milk9111/tactile/tilemap"
	"github.com/milk9111/tactile/viewport"
)

var ErrNoSuchDocument = errors.New("document: no such document")

// ID identifies an open document. IDs of closed documents are never reused.
type ID = ecs.Entity

// Document is an open map together with its history and viewport.
type Document struct {
	id       ID
	Path     string
	Map      *tilemap.Map
	History  *command.Stack
	Viewport viewport.Viewport
}

func (d *Document) ID() ID {
	return d.id
}

// IsClean reports whether the document matches its last saved state.
func (d *Document) IsClean() bool {
	return d.History.IsClean()
}

// Registry is the arena of open documents.
type Registry struct {
	store    ecs.Store
	docs     ecs.SparseSet[*Document]
	active   ID
	capacity int
}

// NewRegistry creates an empty registry whose documents get histories of the
// given capacity.
func NewRegistry(capacity int) *Registry {
	return &Registry{capacity: max(capacity, 1)}
}

// Open adds m as a new document and makes it active.
func (r *Registry) Open(m *tilemap.Map, path string) *Document {
	id := r.store.Create()
	doc := &Document{
		id:       id,
		Path:     path,
		Map:      m,
		History:  command.NewStack(r.capacity),
		Viewport: viewport.New(m.TileSize.Vec2()),
	}
	r.docs.Set(id, doc)
	r.active = id
	return doc
}

// Close removes the document. If it was active, another open document (if
// any) becomes active.
func (r *Registry) Close(id ID) error {
	if !r.docs.Remove(id) {
		return fmt.Errorf("%w: %s", ErrNoSuchDocument, id)
	}
	r.store.Destroy(id)
	if r.active == id {
		r.active = 0
		if ids := r.docs.Entities(); len(ids) > 0 {
			r.active = ids[0]
		}
	}
	return nil
}

func (r *Registry) Get(id ID) (*Document, bool) {
	return r.docs.Get(id)
}

// Active returns the active document.
func (r *Registry) Active() (*Document, bool) {
	return r.docs.Get(r.active)
}

func (r *Registry) SetActive(id ID) error {
	if !r.docs.Has(id) {
		return fmt.Errorf("%w: %s", ErrNoSuchDocument, id)
	}
	r.active = id
	return nil
}

func (r *Registry) Len() int {
	return r.docs.Len()
}

// Each visits every open document.
func (r *Registry) Each(fn func(*Document)) {
	for _, doc := range r.docs.Values() {
		fn(doc)
	}
}

// SetCapacity changes the history bound of every open document and of
// documents opened later.
func (r *Registry) SetCapacity(capacity int) {
	r.capacity = max(capacity, 1)
	r.Each(func(doc *Document) {
		doc.History.SetCapacity(r.capacity)
	})
}

// Ref returns a handle to the document that is resolved on every use.
func (r *Registry) Ref(id ID) Ref {
	return Ref{registry: r, id: id}
}
