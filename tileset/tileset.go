// Package tileset holds tileset assets and the per-map registry that assigns
// them contiguous global tile id ranges.
package tileset

import (
	"github.com/milk9111/tactile/attribute"
	"github.com/milk9111/tactile/common"
	"github.com/milk9111/tactile/tile"
)

// Tileset is a tile sheet: an image cut into TileCount tiles laid out in
// Columns columns.
type Tileset struct {
	attribute.Context

	ImagePath string
	ImageSize common.Int2
	TileSize  common.Int2
	Columns   int
	TileCount int

	tiles map[int]*TileMeta
}

// New creates a tileset covering an image of the given size.
func New(name, imagePath string, imageSize, tileSize common.Int2) *Tileset {
	ts := &Tileset{
		Context:   attribute.NewContext(name),
		ImagePath: imagePath,
		ImageSize: imageSize,
		TileSize:  tileSize,
	}
	if tileSize.X > 0 && tileSize.Y > 0 {
		ts.Columns = imageSize.X / tileSize.X
		ts.TileCount = ts.Columns * (imageSize.Y / tileSize.Y)
	}
	return ts
}

// Rows returns the number of tile rows in the sheet.
func (t *Tileset) Rows() int {
	if t.Columns == 0 {
		return 0
	}
	return t.TileCount / t.Columns
}

// Cell returns the sheet position of a local tile index.
func (t *Tileset) Cell(local int) tile.Pos {
	if t.Columns == 0 {
		return tile.Pos{}
	}
	return tile.Pos{Row: local / t.Columns, Col: local % t.Columns}
}
