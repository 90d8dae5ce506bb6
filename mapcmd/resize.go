package mapcmd

import (
	"github.com/google/uuid"
	"github.com/milk9111/tactile/document"
	"github.com/milk9111/tactile/tile"
)

// resize is the shared state of every command that changes the extent. It
// remembers the cells a shrink discards so that undo is exact.
type resize struct {
	target
	name   string
	extent func(old tile.Extent) tile.Extent

	old     tile.Extent
	removed map[uuid.UUID][]tile.Cell
}

func (c *resize) Name() string {
	return c.name
}

func (c *resize) Redo() {
	m, ok := c.resolve(c.name)
	if !ok {
		return
	}
	c.old = m.Extent
	next := c.extent(c.old)
	c.removed = nil
	for _, l := range m.TileLayers() {
		if cells := l.Tiles.Outside(next); len(cells) > 0 {
			if c.removed == nil {
				c.removed = map[uuid.UUID][]tile.Cell{}
			}
			c.removed[l.ID] = cells
		}
	}
	m.Resize(next)
}

func (c *resize) Undo() {
	m, ok := c.resolve(c.name)
	if !ok {
		return
	}
	m.Resize(c.old)
	for id, cells := range c.removed {
		l, ok := m.TileLayer(id)
		if !ok {
			continue
		}
		for _, cell := range cells {
			l.Tiles.Set(cell.Pos, cell.Tile)
		}
	}
	c.removed = nil
}

type ResizeMap struct{ resize }

// NewResizeMap sets the map extent. Cells outside a smaller extent are
// discarded and restored by Undo.
func NewResizeMap(doc document.Ref, ext tile.Extent) (*ResizeMap, error) {
	if _, err := open(doc); err != nil {
		return nil, err
	}
	if ext.Rows < 1 || ext.Cols < 1 {
		return nil, invalidArgument("extent %s", ext)
	}
	return &ResizeMap{resize{
		target: target{doc},
		name:   "Resize Map",
		extent: func(tile.Extent) tile.Extent { return ext },
	}}, nil
}

type AddRow struct{ resize }

func NewAddRow(doc document.Ref) (*AddRow, error) {
	if _, err := open(doc); err != nil {
		return nil, err
	}
	return &AddRow{resize{
		target: target{doc},
		name:   "Add Row",
		extent: func(e tile.Extent) tile.Extent { return tile.Extent{Rows: e.Rows + 1, Cols: e.Cols} },
	}}, nil
}

type AddColumn struct{ resize }

func NewAddColumn(doc document.Ref) (*AddColumn, error) {
	if _, err := open(doc); err != nil {
		return nil, err
	}
	return &AddColumn{resize{
		target: target{doc},
		name:   "Add Column",
		extent: func(e tile.Extent) tile.Extent { return tile.Extent{Rows: e.Rows, Cols: e.Cols + 1} },
	}}, nil
}

type RemoveRow struct{ resize }

// NewRemoveRow drops the bottom row. A single row map cannot lose its row.
func NewRemoveRow(doc document.Ref) (*RemoveRow, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	if !m.CanRemoveRow() {
		return nil, invalidArgument("cannot remove the only row")
	}
	return &RemoveRow{resize{
		target: target{doc},
		name:   "Remove Row",
		extent: func(e tile.Extent) tile.Extent { return tile.Extent{Rows: max(e.Rows-1, 1), Cols: e.Cols} },
	}}, nil
}

type RemoveColumn struct{ resize }

// NewRemoveColumn drops the rightmost column.
func NewRemoveColumn(doc document.Ref) (*RemoveColumn, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	if !m.CanRemoveColumn() {
		return nil, invalidArgument("cannot remove the only column")
	}
	return &RemoveColumn{resize{
		target: target{doc},
		name:   "Remove Column",
		extent: func(e tile.Extent) tile.Extent { return tile.Extent{Rows: e.Rows, Cols: max(e.Cols-1, 1)} },
	}}, nil
}
