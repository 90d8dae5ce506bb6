package attribute

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

var (
	ErrNoSuchComponent      = errors.New("attribute: no such component")
	ErrComponentAttached    = errors.New("attribute: component already attached")
	ErrComponentNotAttached = errors.New("attribute: component not attached")
)

// Component is an instance of a component definition attached to a context.
type Component struct {
	Definition uuid.UUID
	Attributes Properties
}

// Clone returns a deep copy.
func (c *Component) Clone() *Component {
	if c == nil {
		return nil
	}
	return &Component{Definition: c.Definition, Attributes: c.Attributes.Clone()}
}

// Context is the property and component bag carried by maps, layers,
// objects and tilesets.
type Context struct {
	ID         uuid.UUID
	Name       string
	Properties Properties

	components []*Component
}

// NewContext creates an empty context with a fresh id.
func NewContext(name string) Context {
	return Context{ID: uuid.New(), Name: name}
}

// Component returns the attached instance of def.
func (c *Context) Component(def uuid.UUID) (*Component, bool) {
	if c == nil {
		return nil, false
	}
	for _, comp := range c.components {
		if comp.Definition == def {
			return comp, true
		}
	}
	return nil, false
}

func (c *Context) HasComponent(def uuid.UUID) bool {
	_, ok := c.Component(def)
	return ok
}

// Attach adds comp to the context.
func (c *Context) Attach(comp *Component) error {
	return c.AttachAt(len(c.components), comp)
}

// AttachAt inserts comp at index, clamped to the component list.
func (c *Context) AttachAt(index int, comp *Component) error {
	if comp == nil {
		return ErrNoSuchComponent
	}
	if c.HasComponent(comp.Definition) {
		return fmt.Errorf("%w: %s", ErrComponentAttached, comp.Definition)
	}
	index = max(0, min(index, len(c.components)))
	c.components = slices.Insert(c.components, index, comp)
	return nil
}

// Detach removes the instance of def and returns it with the index it held.
func (c *Context) Detach(def uuid.UUID) (*Component, int, error) {
	for i, comp := range c.components {
		if comp.Definition == def {
			c.components = slices.Delete(c.components, i, i+1)
			return comp, i, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: %s", ErrComponentNotAttached, def)
}

// Components returns the attached components in attach order.
func (c *Context) Components() []*Component {
	if c == nil {
		return nil
	}
	return append([]*Component(nil), c.components...)
}

// Clone deep-copies the context under a new id.
func (c *Context) Clone(id uuid.UUID) Context {
	out := Context{ID: id, Name: c.Name, Properties: c.Properties.Clone()}
	for _, comp := range c.components {
		out.components = append(out.components, comp.Clone())
	}
	return out
}
