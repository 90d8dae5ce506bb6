// Package layer implements the map layer tree: tile, object and group layers
// forming an ordered forest under a root group.
package layer

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/milk9111/tactile/attribute"
	"github.com/milk9111/tactile/tile"
)

var (
	ErrNoSuchLayer  = errors.New("layer: no such layer")
	ErrNotGroup     = errors.New("layer: parent is not a group layer")
	ErrNoSuchObject = errors.New("layer: no such object")
	ErrCycle        = errors.New("layer: layer cannot contain itself")
)

// Kind discriminates the layer variants.
type Kind uint8

const (
	TileLayer Kind = iota
	ObjectLayer
	GroupLayer
)

func (k Kind) String() string {
	switch k {
	case TileLayer:
		return "Tile Layer"
	case ObjectLayer:
		return "Object Layer"
	case GroupLayer:
		return "Group Layer"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Layer is one node of the layer tree. Only the field matching Kind is used:
// Tiles for tile layers, Objects for object layers, Children for groups.
type Layer struct {
	attribute.Context

	Kind    Kind
	Opacity float64
	Visible bool

	Tiles    *tile.Matrix
	Objects  []*Object
	Children []*Layer
}

func newLayer(kind Kind, name string) *Layer {
	return &Layer{
		Context: attribute.NewContext(name),
		Kind:    kind,
		Opacity: 1,
		Visible: true,
	}
}

// NewTileLayer creates a tile layer with an empty matrix of the given extent.
func NewTileLayer(name string, ext tile.Extent) *Layer {
	return NewTileLayerOf(name, tile.NewMatrix(ext))
}

// NewTileLayerOf creates a tile layer that owns tiles.
func NewTileLayerOf(name string, tiles *tile.Matrix) *Layer {
	l := newLayer(TileLayer, name)
	l.Tiles = tiles
	return l
}

func NewObjectLayer(name string) *Layer {
	return newLayer(ObjectLayer, name)
}

func NewGroupLayer(name string) *Layer {
	return newLayer(GroupLayer, name)
}

// NewRoot creates the invisible group that owns the top-level layers.
func NewRoot() *Layer {
	return newLayer(GroupLayer, "root")
}

func (l *Layer) IsGroup() bool {
	return l != nil && l.Kind == GroupLayer
}

// Clone deep-copies the layer and its subtree. Every copied layer and object
// receives a fresh id.
func (l *Layer) Clone() *Layer {
	if l == nil {
		return nil
	}
	out := &Layer{
		Context: l.Context.Clone(uuid.New()),
		Kind:    l.Kind,
		Opacity: l.Opacity,
		Visible: l.Visible,
		Tiles:   l.Tiles.Clone(),
	}
	for _, obj := range l.Objects {
		out.Objects = append(out.Objects, obj.Clone())
	}
	for _, child := range l.Children {
		out.Children = append(out.Children, child.Clone())
	}
	return out
}

// Each visits l and all descendants depth-first in sibling order. Returning
// false from fn stops the walk.
func (l *Layer) Each(fn func(*Layer) bool) bool {
	if l == nil {
		return true
	}
	if !fn(l) {
		return false
	}
	for _, child := range l.Children {
		if !child.Each(fn) {
			return false
		}
	}
	return true
}

// Find returns the layer with id in the subtree rooted at l.
func (l *Layer) Find(id uuid.UUID) (*Layer, bool) {
	var found *Layer
	l.Each(func(n *Layer) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// Parent returns the group holding id and the index of id within it.
func (l *Layer) Parent(id uuid.UUID) (*Layer, int, bool) {
	var parent *Layer
	index := -1
	l.Each(func(n *Layer) bool {
		for i, child := range n.Children {
			if child.ID == id {
				parent, index = n, i
				return false
			}
		}
		return true
	})
	return parent, index, parent != nil
}

// Insert places child under parent at index (clamped). Use index < 0 to append.
func (l *Layer) Insert(parentID uuid.UUID, index int, child *Layer) error {
	parent, ok := l.Find(parentID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchLayer, parentID)
	}
	if !parent.IsGroup() {
		return fmt.Errorf("%w: %s", ErrNotGroup, parentID)
	}
	if _, ok := child.Find(parentID); ok {
		return ErrCycle
	}
	if index < 0 || index > len(parent.Children) {
		index = len(parent.Children)
	}
	parent.Children = append(parent.Children, nil)
	copy(parent.Children[index+1:], parent.Children[index:])
	parent.Children[index] = child
	return nil
}

// Remove detaches the layer with id, together with its descendants.
func (l *Layer) Remove(id uuid.UUID) (removed, parent *Layer, index int, err error) {
	parent, index, ok := l.Parent(id)
	if !ok {
		return nil, nil, -1, fmt.Errorf("%w: %s", ErrNoSuchLayer, id)
	}
	removed = parent.Children[index]
	parent.Children = append(parent.Children[:index], parent.Children[index+1:]...)
	return removed, parent, index, nil
}

// CanMoveUp reports whether the layer has a previous sibling.
func (l *Layer) CanMoveUp(id uuid.UUID) bool {
	_, index, ok := l.Parent(id)
	return ok && index > 0
}

// CanMoveDown reports whether the layer has a next sibling.
func (l *Layer) CanMoveDown(id uuid.UUID) bool {
	parent, index, ok := l.Parent(id)
	return ok && index < len(parent.Children)-1
}

// MoveUp swaps the layer with its previous sibling. It is a no-op at the
// start of the sibling list.
func (l *Layer) MoveUp(id uuid.UUID) bool {
	parent, index, ok := l.Parent(id)
	if !ok || index == 0 {
		return false
	}
	parent.Children[index-1], parent.Children[index] = parent.Children[index], parent.Children[index-1]
	return true
}

// MoveDown swaps the layer with its next sibling. It is a no-op at the end
// of the sibling list.
func (l *Layer) MoveDown(id uuid.UUID) bool {
	parent, index, ok := l.Parent(id)
	if !ok || index >= len(parent.Children)-1 {
		return false
	}
	parent.Children[index+1], parent.Children[index] = parent.Children[index], parent.Children[index+1]
	return true
}

// TileLayers returns every tile layer in the subtree in visit order.
func (l *Layer) TileLayers() []*Layer {
	var out []*Layer
	l.Each(func(n *Layer) bool {
		if n.Kind == TileLayer {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FindObject locates an object and the object layer that owns it.
func (l *Layer) FindObject(id uuid.UUID) (*Object, *Layer, bool) {
	var (
		obj   *Object
		owner *Layer
	)
	l.Each(func(n *Layer) bool {
		for _, o := range n.Objects {
			if o.ID == id {
				obj, owner = o, n
				return false
			}
		}
		return true
	})
	return obj, owner, obj != nil
}

// Count returns the number of layers in the subtree, excluding l itself.
func (l *Layer) Count() int {
	n := -1
	l.Each(func(*Layer) bool {
		n++
		return true
	})
	return max(n, 0)
}
