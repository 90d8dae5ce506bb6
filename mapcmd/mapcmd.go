// Package mapcmd implements every command that mutates a map document.
//
// Commands hold a document.Ref and the ids of the entities they touch, never
// pointers into the map, and resolve them on every Redo and Undo. Once the
// document is closed the command does nothing.
package mapcmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/milk9111/tactile/attribute"
	"github.com/milk9111/tactile/command"
	"github.com/milk9111/tactile/document"
	"github.com/milk9111/tactile/layer"
	"github.com/milk9111/tactile/tilemap"
)

// ErrInvalidArgument is returned by constructors given out of range values.
var ErrInvalidArgument = errors.New("mapcmd: invalid argument")

func invalidTarget(format string, args ...any) error {
	return fmt.Errorf("%w: %s", command.ErrInvalidTarget, fmt.Sprintf(format, args...))
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// target is embedded by every command.
type target struct {
	doc document.Ref
}

func (t target) resolve(op string) (*tilemap.Map, bool) {
	m, ok := t.doc.Map()
	if !ok {
		log.Printf("mapcmd: %s: document %s is closed", op, t.doc.ID())
	}
	return m, ok
}

func (t target) lookupLayer(op string, id uuid.UUID) (*tilemap.Map, *layer.Layer, bool) {
	m, ok := t.resolve(op)
	if !ok {
		return nil, nil, false
	}
	l, ok := m.Layer(id)
	if !ok {
		log.Printf("mapcmd: %s: no layer %s", op, id)
		return nil, nil, false
	}
	return m, l, true
}

func (t target) lookupObject(op string, id uuid.UUID) (*layer.Object, bool) {
	m, ok := t.resolve(op)
	if !ok {
		return nil, false
	}
	obj, _, ok := m.Root.FindObject(id)
	if !ok {
		log.Printf("mapcmd: %s: no object %s", op, id)
	}
	return obj, ok
}

func (t target) lookupContext(op string, id uuid.UUID) (*tilemap.Map, *attribute.Context, bool) {
	m, ok := t.resolve(op)
	if !ok {
		return nil, nil, false
	}
	ctx, err := m.FindContext(id)
	if err != nil {
		log.Printf("mapcmd: %s: %v", op, err)
		return nil, nil, false
	}
	return m, ctx, true
}

// logErr reports failures that can only happen when history and document
// have diverged.
func logErr(op string, err error) {
	if err != nil {
		log.Printf("mapcmd: %s: %v", op, err)
	}
}

// open resolves doc for a constructor.
func open(doc document.Ref) (*tilemap.Map, error) {
	return doc.Resolve()
}

func findLayer(m *tilemap.Map, id uuid.UUID) (*layer.Layer, error) {
	l, ok := m.Layer(id)
	if !ok {
		return nil, invalidTarget("no layer %s", id)
	}
	return l, nil
}

func findObject(m *tilemap.Map, id uuid.UUID) (*layer.Object, error) {
	obj, _, ok := m.Root.FindObject(id)
	if !ok {
		return nil, invalidTarget("no object %s", id)
	}
	return obj, nil
}

func findContext(m *tilemap.Map, id uuid.UUID) (*attribute.Context, error) {
	ctx, err := m.FindContext(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", command.ErrInvalidTarget, err)
	}
	return ctx, nil
}

func findComponent(m *tilemap.Map, id uuid.UUID) (*attribute.ComponentDef, error) {
	def, ok := m.Components.Get(id)
	if !ok {
		return nil, invalidTarget("no component %s", id)
	}
	return def, nil
}
