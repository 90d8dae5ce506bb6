package attribute

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrDuplicateComponent = errors.New("attribute: component name already used")

// ComponentDef describes a reusable set of named attributes with defaults.
type ComponentDef struct {
	ID         uuid.UUID
	Name       string
	Attributes Properties
}

// Instantiate creates an instance carrying the default values.
func (d *ComponentDef) Instantiate() *Component {
	return &Component{Definition: d.ID, Attributes: d.Attributes.Clone()}
}

// ComponentIndex holds the component definitions of a document.
type ComponentIndex struct {
	defs []*ComponentDef
}

// Define creates a new definition with a unique name.
func (x *ComponentIndex) Define(name string) (*ComponentDef, error) {
	if _, ok := x.ByName(name); ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateComponent, name)
	}
	def := &ComponentDef{ID: uuid.New(), Name: name}
	x.defs = append(x.defs, def)
	return def, nil
}

// Restore re-inserts a previously removed definition at index.
func (x *ComponentIndex) Restore(index int, def *ComponentDef) {
	index = max(0, min(index, len(x.defs)))
	x.defs = append(x.defs, nil)
	copy(x.defs[index+1:], x.defs[index:])
	x.defs[index] = def
}

// Remove deletes the definition with id and returns it with its index.
func (x *ComponentIndex) Remove(id uuid.UUID) (*ComponentDef, int, error) {
	for i, def := range x.defs {
		if def.ID == id {
			x.defs = append(x.defs[:i], x.defs[i+1:]...)
			return def, i, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: %s", ErrNoSuchComponent, id)
}

func (x *ComponentIndex) Get(id uuid.UUID) (*ComponentDef, bool) {
	if x == nil {
		return nil, false
	}
	for _, def := range x.defs {
		if def.ID == id {
			return def, true
		}
	}
	return nil, false
}

func (x *ComponentIndex) ByName(name string) (*ComponentDef, bool) {
	if x == nil {
		return nil, false
	}
	for _, def := range x.defs {
		if def.Name == name {
			return def, true
		}
	}
	return nil, false
}

// Rename changes a definition name, keeping names unique.
func (x *ComponentIndex) Rename(id uuid.UUID, name string) error {
	def, ok := x.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchComponent, id)
	}
	if other, ok := x.ByName(name); ok && other.ID != id {
		return fmt.Errorf("%w: %q", ErrDuplicateComponent, name)
	}
	def.Name = name
	return nil
}

func (x *ComponentIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.defs)
}

// All returns the definitions in creation order.
func (x *ComponentIndex) All() []*ComponentDef {
	if x == nil {
		return nil
	}
	return append([]*ComponentDef(nil), x.defs...)
}
