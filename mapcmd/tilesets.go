package mapcmd

import (
	"github.com/google/uuid"
	"github.com/milk9111/tactile/document"
	"github.com/milk9111/tactile/tileset"
)

// AttachTileset adds a tileset to the map. The range assigned on the first
// Redo is kept across undo and redo.
type AttachTileset struct {
	target
	tileset  *tileset.Tileset
	embedded bool
	attached *tileset.Attached
}

func NewAttachTileset(doc document.Ref, ts *tileset.Tileset, embedded bool) (*AttachTileset, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	if ts == nil || ts.TileCount < 1 {
		return nil, invalidArgument("tileset has no tiles")
	}
	if _, ok := m.Tilesets.Get(ts.ID); ok {
		return nil, invalidArgument("tileset %s already attached", ts.Name)
	}
	return &AttachTileset{target: target{doc}, tileset: ts, embedded: embedded}, nil
}

func (c *AttachTileset) Name() string { return "Add Tileset" }

func (c *AttachTileset) Redo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	if c.attached != nil {
		logErr(c.Name(), m.Tilesets.Restore(c.attached))
		return
	}
	a, err := m.Tilesets.Attach(c.tileset, c.embedded)
	if err != nil {
		logErr(c.Name(), err)
		return
	}
	c.attached = a
}

func (c *AttachTileset) Undo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	a, err := m.Tilesets.Detach(c.tileset.ID)
	if err != nil {
		logErr(c.Name(), err)
		return
	}
	c.attached = a
}

// DetachTileset removes a tileset. Tiles referring to it stay in the layers
// until FixMapTiles clears them.
type DetachTileset struct {
	target
	id       uuid.UUID
	attached *tileset.Attached
	active   bool
}

func NewDetachTileset(doc document.Ref, id uuid.UUID) (*DetachTileset, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	if _, ok := m.Tilesets.Get(id); !ok {
		return nil, invalidTarget("no tileset %s", id)
	}
	return &DetachTileset{target: target{doc}, id: id}, nil
}

func (c *DetachTileset) Name() string { return "Remove Tileset" }

func (c *DetachTileset) Redo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	active, _ := m.Tilesets.Active()
	c.active = active != nil && active.Tileset.ID == c.id
	a, err := m.Tilesets.Detach(c.id)
	if err != nil {
		logErr(c.Name(), err)
		return
	}
	c.attached = a
}

func (c *DetachTileset) Undo() {
	m, ok := c.resolve(c.Name())
	if !ok || c.attached == nil {
		return
	}
	if err := m.Tilesets.Restore(c.attached); err != nil {
		logErr(c.Name(), err)
		return
	}
	if c.active {
		logErr(c.Name(), m.Tilesets.Select(c.id))
	}
	c.attached = nil
}
