package tileset

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/milk9111/tactile/attribute"
	"github.com/milk9111/tactile/layer"
)

var (
	ErrNoSuchTile  = errors.New("tileset: no such tile")
	ErrNoSuchFrame = errors.New("tileset: no such animation frame")
)

// Frame is one step of a tile animation. Tile is a local index into the
// same sheet.
type Frame struct {
	Tile     int
	Duration time.Duration
}

// TileMeta is the data a tileset keeps for a single tile: its own property
// context, an optional animation and the objects the tile owns.
type TileMeta struct {
	attribute.Context

	Frames  []Frame
	Objects []*layer.Object
}

// NewTileMeta creates empty metadata for the tile at local.
func NewTileMeta(local int) *TileMeta {
	return &TileMeta{Context: attribute.NewContext(fmt.Sprintf("Tile %d", local))}
}

func (t *TileMeta) IsAnimated() bool {
	return t != nil && len(t.Frames) > 0
}

// InsertFrame puts f at index, clamped to the frame list.
func (t *TileMeta) InsertFrame(index int, f Frame) {
	index = max(0, min(index, len(t.Frames)))
	t.Frames = slices.Insert(t.Frames, index, f)
}

func (t *TileMeta) RemoveFrame(index int) (Frame, error) {
	if index < 0 || index >= len(t.Frames) {
		return Frame{}, fmt.Errorf("%w: %d of %d", ErrNoSuchFrame, index, len(t.Frames))
	}
	f := t.Frames[index]
	t.Frames = slices.Delete(t.Frames, index, index+1)
	return f, nil
}

// Object finds an object owned by the tile.
func (t *TileMeta) Object(id uuid.UUID) (*layer.Object, bool) {
	for _, o := range t.Objects {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// InsertObject puts obj at index, clamped to the object list.
func (t *TileMeta) InsertObject(index int, obj *layer.Object) {
	index = max(0, min(index, len(t.Objects)))
	t.Objects = slices.Insert(t.Objects, index, obj)
}

func (t *TileMeta) RemoveObject(id uuid.UUID) (*layer.Object, int, error) {
	for i, o := range t.Objects {
		if o.ID == id {
			t.Objects = slices.Delete(t.Objects, i, i+1)
			return o, i, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: %s", layer.ErrNoSuchObject, id)
}

// Contexts returns the tile context followed by those of its objects.
func (t *TileMeta) Contexts() []*attribute.Context {
	out := []*attribute.Context{&t.Context}
	for _, o := range t.Objects {
		out = append(out, &o.Context)
	}
	return out
}

// Tile returns the metadata of the tile at local.
func (t *Tileset) Tile(local int) (*TileMeta, bool) {
	meta, ok := t.tiles[local]
	return meta, ok
}

// SetTile installs meta for the tile at local, replacing any existing entry.
func (t *Tileset) SetTile(local int, meta *TileMeta) error {
	if local < 0 || local >= t.TileCount {
		return fmt.Errorf("%w: %d of %d", ErrNoSuchTile, local, t.TileCount)
	}
	if t.tiles == nil {
		t.tiles = map[int]*TileMeta{}
	}
	t.tiles[local] = meta
	return nil
}

// RemoveTile drops the metadata of the tile at local.
func (t *Tileset) RemoveTile(local int) (*TileMeta, bool) {
	meta, ok := t.tiles[local]
	delete(t.tiles, local)
	return meta, ok
}

// TileIndices returns the local indices that carry metadata, ascending.
func (t *Tileset) TileIndices() []int {
	return slices.Sorted(maps.Keys(t.tiles))
}

// FindContext resolves a tile or tile object context by id.
func (t *Tileset) FindContext(id uuid.UUID) (*attribute.Context, bool) {
	for _, local := range t.TileIndices() {
		for _, ctx := range t.tiles[local].Contexts() {
			if ctx.ID == id {
				return ctx, true
			}
		}
	}
	return nil, false
}
