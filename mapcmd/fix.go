package mapcmd

import (
	"github.com/milk9111/tactile/document"
	"github.com/milk9111/tactile/tilemap"
)

// FixMapTiles clears tiles that no attached tileset owns.
type FixMapTiles struct {
	target
	invalid tilemap.InvalidTiles
}

func NewFixMapTiles(doc document.Ref) (*FixMapTiles, error) {
	if _, err := open(doc); err != nil {
		return nil, err
	}
	return &FixMapTiles{target: target{doc}}, nil
}

// NewFixMapTilesApplied records a repair that has already been performed,
// typically while opening a file, so that it can be undone. Push it with
// command.Stack.PushWithoutRedo.
func NewFixMapTilesApplied(doc document.Ref, invalid tilemap.InvalidTiles) (*FixMapTiles, error) {
	if _, err := open(doc); err != nil {
		return nil, err
	}
	return &FixMapTiles{target: target{doc}, invalid: invalid}, nil
}

func (c *FixMapTiles) Name() string { return "Fix Map Tiles" }

// Count returns the number of cells cleared by the last Redo.
func (c *FixMapTiles) Count() int {
	return c.invalid.Count()
}

func (c *FixMapTiles) Redo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	c.invalid = m.FixTiles()
}

func (c *FixMapTiles) Undo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	m.RestoreTiles(c.invalid)
}
