package mapcmd

import (
	"github.com/google/uuid"
	"github.com/milk9111/tactile/document"
	"github.com/milk9111/tactile/layer"
	"github.com/milk9111/tactile/tile"
)

// SetTiles writes a batch of cells, as produced by a stamp or eraser stroke.
type SetTiles struct {
	target
	layerID uuid.UUID
	name    string
	next    map[tile.Pos]tile.ID
	prev    map[tile.Pos]tile.ID
}

func newSetTiles(doc document.Ref, layerID uuid.UUID, name string, cells map[tile.Pos]tile.ID) (*SetTiles, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	l, err := findLayer(m, layerID)
	if err != nil {
		return nil, err
	}
	if l.Kind != layer.TileLayer {
		return nil, invalidTarget("%s is not a tile layer", l.Name)
	}
	if len(cells) == 0 {
		return nil, invalidArgument("no cells")
	}
	return &SetTiles{target: target{doc}, layerID: layerID, name: name, next: cells}, nil
}

// NewStampSequence writes the given cells.
func NewStampSequence(doc document.Ref, layerID uuid.UUID, cells map[tile.Pos]tile.ID) (*SetTiles, error) {
	return newSetTiles(doc, layerID, "Stamp Sequence", cells)
}

// NewEraserSequence clears the given positions.
func NewEraserSequence(doc document.Ref, layerID uuid.UUID, positions []tile.Pos) (*SetTiles, error) {
	cells := make(map[tile.Pos]tile.ID, len(positions))
	for _, p := range positions {
		cells[p] = tile.Empty
	}
	return newSetTiles(doc, layerID, "Eraser Sequence", cells)
}

// NewSetTilesApplied records a stroke that was painted live. prev holds the
// values the stroke overwrote. Push it with command.Stack.PushWithoutRedo.
func NewSetTilesApplied(doc document.Ref, layerID uuid.UUID, prev, next map[tile.Pos]tile.ID) (*SetTiles, error) {
	c, err := newSetTiles(doc, layerID, "Stamp Sequence", next)
	if err != nil {
		return nil, err
	}
	c.prev = prev
	return c, nil
}

func (c *SetTiles) Name() string { return c.name }

func (c *SetTiles) Redo() {
	_, l, ok := c.lookupLayer(c.name, c.layerID)
	if !ok {
		return
	}
	c.prev = make(map[tile.Pos]tile.ID, len(c.next))
	for p, id := range c.next {
		c.prev[p] = l.Tiles.At(p)
		l.Tiles.Set(p, id)
	}
}

func (c *SetTiles) Undo() {
	_, l, ok := c.lookupLayer(c.name, c.layerID)
	if !ok {
		return
	}
	for p, id := range c.prev {
		l.Tiles.Set(p, id)
	}
}

// BucketFill flood fills the region under a cell.
type BucketFill struct {
	target
	layerID     uuid.UUID
	origin      tile.Pos
	replacement tile.ID

	replaced tile.ID
	affected []tile.Pos
}

func NewBucketFill(doc document.Ref, layerID uuid.UUID, origin tile.Pos, replacement tile.ID) (*BucketFill, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	l, err := findLayer(m, layerID)
	if err != nil {
		return nil, err
	}
	if l.Kind != layer.TileLayer {
		return nil, invalidTarget("%s is not a tile layer", l.Name)
	}
	if !m.Extent.Contains(origin) {
		return nil, invalidArgument("origin %s outside %s", origin, m.Extent)
	}
	return &BucketFill{target: target{doc}, layerID: layerID, origin: origin, replacement: replacement}, nil
}

func (c *BucketFill) Name() string { return "Bucket Fill" }

func (c *BucketFill) Redo() {
	_, l, ok := c.lookupLayer(c.Name(), c.layerID)
	if !ok {
		return
	}
	c.replaced = l.Tiles.At(c.origin)
	c.affected = l.Tiles.FloodFill(c.origin, c.replacement)
}

func (c *BucketFill) Undo() {
	_, l, ok := c.lookupLayer(c.Name(), c.layerID)
	if !ok {
		return
	}
	for _, p := range c.affected {
		l.Tiles.Set(p, c.replaced)
	}
	c.affected = nil
}
