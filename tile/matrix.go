package tile

// Matrix is a row-major grid of tile ids. All rows have the same length.
type Matrix struct {
	rows [][]ID
	cols int
}

// NewMatrix creates a matrix filled with Empty.
func NewMatrix(ext Extent) *Matrix {
	m := &Matrix{}
	m.Resize(ext)
	return m
}

// FromRows builds a matrix from row data. Short rows are padded with Empty.
func FromRows(rows [][]ID) *Matrix {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	m := NewMatrix(Extent{Rows: len(rows), Cols: cols})
	for r, row := range rows {
		copy(m.rows[r], row)
	}
	return m
}

func (m *Matrix) Extent() Extent {
	if m == nil {
		return Extent{}
	}
	return Extent{Rows: len(m.rows), Cols: m.cols}
}

// At returns the tile at p, or Empty when p is out of bounds.
func (m *Matrix) At(p Pos) ID {
	if !m.Extent().Contains(p) {
		return Empty
	}
	return m.rows[p.Row][p.Col]
}

// Set writes id at p. Out of bounds writes are ignored and report false.
func (m *Matrix) Set(p Pos, id ID) bool {
	if !m.Extent().Contains(p) {
		return false
	}
	m.rows[p.Row][p.Col] = id
	return true
}

// Row returns a copy of row r.
func (m *Matrix) Row(r int) []ID {
	if m == nil || r < 0 || r >= len(m.rows) {
		return nil
	}
	return append([]ID(nil), m.rows[r]...)
}

// Rows returns a deep copy of the matrix contents.
func (m *Matrix) Rows() [][]ID {
	if m == nil {
		return nil
	}
	out := make([][]ID, len(m.rows))
	for i, r := range m.rows {
		out[i] = append([]ID(nil), r...)
	}
	return out
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	if m == nil {
		return nil
	}
	return &Matrix{rows: m.Rows(), cols: m.cols}
}

// Equal reports whether both matrices have the same extent and contents.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.Extent() != o.Extent() {
		return false
	}
	for r := range m.rows {
		for c := range m.rows[r] {
			if m.rows[r][c] != o.rows[r][c] {
				return false
			}
		}
	}
	return true
}

// Resize grows or shrinks the matrix, keeping the top-left overlap. New
// cells are Empty. Negative sizes are treated as zero.
func (m *Matrix) Resize(ext Extent) {
	if m == nil {
		return
	}
	rows := max(ext.Rows, 0)
	cols := max(ext.Cols, 0)

	for r := range m.rows {
		if r >= rows {
			break
		}
		if cols <= len(m.rows[r]) {
			m.rows[r] = m.rows[r][:cols:cols]
		} else {
			m.rows[r] = append(m.rows[r], make([]ID, cols-len(m.rows[r]))...)
		}
	}
	if rows <= len(m.rows) {
		m.rows = m.rows[:rows]
	} else {
		for len(m.rows) < rows {
			m.rows = append(m.rows, make([]ID, cols))
		}
	}
	m.cols = cols
}

// AddRow appends an empty row at the bottom.
func (m *Matrix) AddRow() {
	m.Resize(Extent{Rows: len(m.rows) + 1, Cols: m.cols})
}

// AddCol appends an empty column on the right.
func (m *Matrix) AddCol() {
	m.Resize(Extent{Rows: len(m.rows), Cols: m.cols + 1})
}

// RemoveRow drops the bottom row.
func (m *Matrix) RemoveRow() {
	m.Resize(Extent{Rows: len(m.rows) - 1, Cols: m.cols})
}

// RemoveCol drops the rightmost column.
func (m *Matrix) RemoveCol() {
	m.Resize(Extent{Rows: len(m.rows), Cols: m.cols - 1})
}

// Each visits every cell in row-major order.
func (m *Matrix) Each(fn func(p Pos, id ID)) {
	if m == nil {
		return
	}
	for r, row := range m.rows {
		for c, id := range row {
			fn(Pos{Row: r, Col: c}, id)
		}
	}
}

// Outside returns the non-empty cells that fall outside ext.
func (m *Matrix) Outside(ext Extent) []Cell {
	var out []Cell
	m.Each(func(p Pos, id ID) {
		if id != Empty && !ext.Contains(p) {
			out = append(out, Cell{Pos: p, Tile: id})
		}
	})
	return out
}

// Count returns the number of non-empty cells.
func (m *Matrix) Count() int {
	n := 0
	m.Each(func(_ Pos, id ID) {
		if id != Empty {
			n++
		}
	})
	return n
}
