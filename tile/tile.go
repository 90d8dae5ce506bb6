// Package tile holds tile identifiers and the dense tile matrix owned by
// tile layers.
package tile

import "fmt"

// ID is a global tile identifier. Empty marks a cell with no tile.
type ID int32

const Empty ID = 0

// Pos is a cell position in a tile matrix.
type Pos struct {
	Row int
	Col int
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Offset returns p moved by dr rows and dc columns.
func (p Pos) Offset(dr, dc int) Pos {
	return Pos{Row: p.Row + dr, Col: p.Col + dc}
}

// Extent is a matrix size in rows and columns.
type Extent struct {
	Rows int
	Cols int
}

func (e Extent) String() string {
	return fmt.Sprintf("%dx%d", e.Rows, e.Cols)
}

// Contains reports whether p lies within the extent.
func (e Extent) Contains(p Pos) bool {
	return p.Row >= 0 && p.Col >= 0 && p.Row < e.Rows && p.Col < e.Cols
}

// Cells returns rows*cols.
func (e Extent) Cells() int {
	return e.Rows * e.Cols
}

// Cell is a position paired with the tile found there.
type Cell struct {
	Pos  Pos
	Tile ID
}
