package mapcmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/milk9111/tactile/common"
	"github.com/milk9111/tactile/document"
	"github.com/milk9111/tactile/layer"
	"github.com/milk9111/tactile/tilemap"
	"github.com/milk9111/tactile/tileset"
)

// tileTarget addresses one tile of an attached tileset. Commands that add
// data to a tile without metadata install it on Redo and drop it again on
// Undo, reusing the same value so its context id stays stable.
type tileTarget struct {
	target
	tileset uuid.UUID
	local   int

	meta      *tileset.TileMeta
	installed bool
}

func newTileTarget(doc document.Ref, id uuid.UUID, local int) (tileTarget, *tilemap.Map, *tileset.Tileset, error) {
	m, err := open(doc)
	if err != nil {
		return tileTarget{}, nil, nil, err
	}
	a, ok := m.Tilesets.Get(id)
	if !ok {
		return tileTarget{}, nil, nil, invalidTarget("no tileset %s", id)
	}
	if local < 0 || local >= a.Tileset.TileCount {
		return tileTarget{}, nil, nil, invalidArgument("tile %d outside %s", local, a.Tileset.Name)
	}
	return tileTarget{target: target{doc}, tileset: id, local: local}, m, a.Tileset, nil
}

func (t *tileTarget) lookup(op string) (*tilemap.Map, *tileset.Tileset, bool) {
	m, ok := t.resolve(op)
	if !ok {
		return nil, nil, false
	}
	a, ok := m.Tilesets.Get(t.tileset)
	if !ok {
		log.Printf("mapcmd: %s: no tileset %s", op, t.tileset)
		return nil, nil, false
	}
	return m, a.Tileset, true
}

// acquire returns the tile metadata, installing it when the tile has none.
func (t *tileTarget) acquire(op string) (*tilemap.Map, *tileset.TileMeta, bool) {
	m, ts, ok := t.lookup(op)
	if !ok {
		return nil, nil, false
	}
	if meta, ok := ts.Tile(t.local); ok {
		return m, meta, true
	}
	if t.meta == nil {
		t.meta = tileset.NewTileMeta(t.local)
	}
	if err := ts.SetTile(t.local, t.meta); err != nil {
		logErr(op, err)
		return nil, nil, false
	}
	t.installed = true
	return m, t.meta, true
}

// existing returns the tile metadata without installing it.
func (t *tileTarget) existing(op string) (*tileset.TileMeta, bool) {
	_, ts, ok := t.lookup(op)
	if !ok {
		return nil, false
	}
	meta, ok := ts.Tile(t.local)
	if !ok {
		logErr(op, fmt.Errorf("%w: %d", tileset.ErrNoSuchTile, t.local))
	}
	return meta, ok
}

// release drops metadata installed by acquire.
func (t *tileTarget) release(op string) {
	if !t.installed {
		return
	}
	if _, ts, ok := t.lookup(op); ok {
		ts.RemoveTile(t.local)
	}
	t.installed = false
}

// AddAnimationFrame appends a frame to a tile animation.
type AddAnimationFrame struct {
	tileTarget
	frame tileset.Frame
	index int
}

func NewAddAnimationFrame(doc document.Ref, tilesetID uuid.UUID, local, frameTile int, duration time.Duration) (*AddAnimationFrame, error) {
	t, _, ts, err := newTileTarget(doc, tilesetID, local)
	if err != nil {
		return nil, err
	}
	if frameTile < 0 || frameTile >= ts.TileCount {
		return nil, invalidArgument("frame tile %d outside %s", frameTile, ts.Name)
	}
	if duration <= 0 {
		return nil, invalidArgument("frame duration must be positive, got %s", duration)
	}
	return &AddAnimationFrame{tileTarget: t, frame: tileset.Frame{Tile: frameTile, Duration: duration}}, nil
}

func (c *AddAnimationFrame) Name() string { return "Add Animation Frame" }

func (c *AddAnimationFrame) Redo() {
	_, meta, ok := c.acquire(c.Name())
	if !ok {
		return
	}
	c.index = len(meta.Frames)
	meta.InsertFrame(c.index, c.frame)
}

func (c *AddAnimationFrame) Undo() {
	meta, ok := c.existing(c.Name())
	if !ok {
		return
	}
	_, err := meta.RemoveFrame(c.index)
	logErr(c.Name(), err)
	c.release(c.Name())
}

type RemoveAnimationFrame struct {
	tileTarget
	index   int
	removed *tileset.Frame
}

func NewRemoveAnimationFrame(doc document.Ref, tilesetID uuid.UUID, local, index int) (*RemoveAnimationFrame, error) {
	t, _, ts, err := newTileTarget(doc, tilesetID, local)
	if err != nil {
		return nil, err
	}
	meta, ok := ts.Tile(local)
	if !ok || index < 0 || index >= len(meta.Frames) {
		return nil, invalidTarget("no frame %d on tile %d", index, local)
	}
	return &RemoveAnimationFrame{tileTarget: t, index: index}, nil
}

func (c *RemoveAnimationFrame) Name() string { return "Remove Animation Frame" }

func (c *RemoveAnimationFrame) Redo() {
	meta, ok := c.existing(c.Name())
	if !ok {
		return
	}
	f, err := meta.RemoveFrame(c.index)
	if err != nil {
		logErr(c.Name(), err)
		return
	}
	c.removed = &f
}

func (c *RemoveAnimationFrame) Undo() {
	meta, ok := c.existing(c.Name())
	if !ok || c.removed == nil {
		return
	}
	meta.InsertFrame(c.index, *c.removed)
	c.removed = nil
}

// AddTileObject creates an object owned by a tile.
type AddTileObject struct {
	tileTarget
	kind layer.ObjectKind
	pos  common.Vec2
	size common.Vec2

	object *layer.Object
}

func NewAddTileObject(doc document.Ref, tilesetID uuid.UUID, local int, kind layer.ObjectKind, pos, size common.Vec2) (*AddTileObject, error) {
	t, _, _, err := newTileTarget(doc, tilesetID, local)
	if err != nil {
		return nil, err
	}
	return &AddTileObject{tileTarget: t, kind: kind, pos: pos, size: size}, nil
}

func (c *AddTileObject) Name() string { return "Add Tile Object" }

// Object returns the object created by the first Redo.
func (c *AddTileObject) Object() *layer.Object {
	return c.object
}

func (c *AddTileObject) Redo() {
	m, meta, ok := c.acquire(c.Name())
	if !ok {
		return
	}
	if c.object == nil {
		name := fmt.Sprintf("Object %d", m.NextObjectIndex)
		m.NextObjectIndex++
		c.object = layer.NewObject(c.kind, name, c.pos, c.size)
	}
	meta.InsertObject(len(meta.Objects), c.object)
}

func (c *AddTileObject) Undo() {
	meta, ok := c.existing(c.Name())
	if !ok || c.object == nil {
		return
	}
	_, _, err := meta.RemoveObject(c.object.ID)
	logErr(c.Name(), err)
	c.release(c.Name())
}

type RemoveTileObject struct {
	tileTarget
	id uuid.UUID

	removed *layer.Object
	index   int
}

func NewRemoveTileObject(doc document.Ref, tilesetID uuid.UUID, local int, id uuid.UUID) (*RemoveTileObject, error) {
	t, _, ts, err := newTileTarget(doc, tilesetID, local)
	if err != nil {
		return nil, err
	}
	meta, ok := ts.Tile(local)
	if !ok {
		return nil, invalidTarget("tile %d has no objects", local)
	}
	if _, ok := meta.Object(id); !ok {
		return nil, invalidTarget("no object %s on tile %d", id, local)
	}
	return &RemoveTileObject{tileTarget: t, id: id}, nil
}

func (c *RemoveTileObject) Name() string { return "Remove Tile Object" }

func (c *RemoveTileObject) Redo() {
	meta, ok := c.existing(c.Name())
	if !ok {
		return
	}
	removed, index, err := meta.RemoveObject(c.id)
	if err != nil {
		logErr(c.Name(), err)
		return
	}
	c.removed, c.index = removed, index
}

func (c *RemoveTileObject) Undo() {
	meta, ok := c.existing(c.Name())
	if !ok || c.removed == nil {
		return
	}
	meta.InsertObject(c.index, c.removed)
	c.removed = nil
}
