// Package tilemap implements the map document model: the layer tree, the
// attached tilesets, tile format, extent and tile size.
package tilemap

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/milk9111/tactile/attribute"
	"github.com/milk9111/tactile/common"
	"github.com/milk9111/tactile/layer"
	"github.com/milk9111/tactile/tile"
	"github.com/milk9111/tactile/tileset"
)

var (
	ErrInvalidExtent   = errors.New("tilemap: extent must be at least 1x1")
	ErrInvalidTileSize = errors.New("tilemap: tile size must be positive")
	ErrNoSuchContext   = errors.New("tilemap: no such context")
)

// Map aggregates everything a map document owns.
type Map struct {
	attribute.Context

	Extent   tile.Extent
	TileSize common.Int2
	Format   TileFormat

	Root       *layer.Layer
	Tilesets   *tileset.Bundle
	Components *attribute.ComponentIndex

	ActiveLayer     uuid.UUID
	NextLayerIndex  int
	NextObjectIndex int
}

// New creates an empty map.
func New(name string, ext tile.Extent, tileSize common.Int2) (*Map, error) {
	if ext.Rows < 1 || ext.Cols < 1 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidExtent, ext)
	}
	if tileSize.X < 1 || tileSize.Y < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidTileSize, tileSize.X, tileSize.Y)
	}
	return &Map{
		Context:         attribute.NewContext(name),
		Extent:          ext,
		TileSize:        tileSize,
		Format:          DefaultTileFormat(),
		Root:            layer.NewRoot(),
		Tilesets:        tileset.NewBundle(),
		Components:      &attribute.ComponentIndex{},
		NextLayerIndex:  1,
		NextObjectIndex: 1,
	}, nil
}

// ContentSize is the map size in pixels at native tile size.
func (m *Map) ContentSize() common.Vec2 {
	return common.Vec2{
		X: float64(m.Extent.Cols * m.TileSize.X),
		Y: float64(m.Extent.Rows * m.TileSize.Y),
	}
}

// Layer finds a layer anywhere in the tree.
func (m *Map) Layer(id uuid.UUID) (*layer.Layer, bool) {
	if id == m.Root.ID {
		return nil, false
	}
	return m.Root.Find(id)
}

// TileLayer finds a tile layer.
func (m *Map) TileLayer(id uuid.UUID) (*layer.Layer, bool) {
	l, ok := m.Layer(id)
	if !ok || l.Kind != layer.TileLayer {
		return nil, false
	}
	return l, true
}

// TileLayers returns every tile layer, including those nested in groups.
func (m *Map) TileLayers() []*layer.Layer {
	return m.Root.TileLayers()
}

// NewLayer creates a layer of the given kind sized to the map and consumes a
// layer index for its default name. The layer is not inserted.
func (m *Map) NewLayer(kind layer.Kind) *layer.Layer {
	name := fmt.Sprintf("%s %d", kind, m.NextLayerIndex)
	m.NextLayerIndex++
	switch kind {
	case layer.TileLayer:
		return layer.NewTileLayer(name, m.Extent)
	case layer.ObjectLayer:
		return layer.NewObjectLayer(name)
	default:
		return layer.NewGroupLayer(name)
	}
}

// ParentOrRoot resolves the group a new layer should go under: the given
// parent if it is a group, otherwise the root.
func (m *Map) ParentOrRoot(parent uuid.UUID) *layer.Layer {
	if parent != uuid.Nil {
		if l, ok := m.Layer(parent); ok && l.IsGroup() {
			return l
		}
	}
	return m.Root
}

// FindContext resolves a property context by id. The map itself, its layers,
// objects, attached tilesets and their tiles all carry one.
func (m *Map) FindContext(id uuid.UUID) (*attribute.Context, error) {
	if id == m.ID {
		return &m.Context, nil
	}
	if l, ok := m.Layer(id); ok {
		return &l.Context, nil
	}
	if obj, _, ok := m.Root.FindObject(id); ok {
		return &obj.Context, nil
	}
	if a, ok := m.Tilesets.Get(id); ok {
		return &a.Tileset.Context, nil
	}
	for _, a := range m.Tilesets.All() {
		if ctx, ok := a.Tileset.FindContext(id); ok {
			return ctx, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoSuchContext, id)
}

// Contexts returns every context in the map.
func (m *Map) Contexts() []*attribute.Context {
	out := []*attribute.Context{&m.Context}
	m.Root.Each(func(l *layer.Layer) bool {
		if l != m.Root {
			out = append(out, &l.Context)
		}
		for _, obj := range l.Objects {
			out = append(out, &obj.Context)
		}
		return true
	})
	for _, a := range m.Tilesets.All() {
		out = append(out, &a.Tileset.Context)
		for _, local := range a.Tileset.TileIndices() {
			meta, _ := a.Tileset.Tile(local)
			out = append(out, meta.Contexts()...)
		}
	}
	return out
}

// Resize changes the extent and resizes every tile layer in lockstep.
func (m *Map) Resize(ext tile.Extent) {
	m.Extent = ext
	for _, l := range m.TileLayers() {
		l.Tiles.Resize(ext)
	}
}

// CanRemoveRow reports whether a row can be removed without going below 1x1.
func (m *Map) CanRemoveRow() bool {
	return m.Extent.Rows > 1
}

// CanRemoveColumn reports whether a column can be removed without going below 1x1.
func (m *Map) CanRemoveColumn() bool {
	return m.Extent.Cols > 1
}

// IsValidTile reports whether id is Empty or owned by an attached tileset.
func (m *Map) IsValidTile(id tile.ID) bool {
	return id == tile.Empty || m.Tilesets.IsValidTile(id)
}
