package tile

import "testing"

func TestMatrixResize(t *testing.T) {
	cases := []struct {
		name string
		to   Extent
	}{
		{"grow_both", Extent{Rows: 5, Cols: 6}},
		{"shrink_both", Extent{Rows: 1, Cols: 2}},
		{"grow_rows_shrink_cols", Extent{Rows: 4, Cols: 1}},
		{"to_zero", Extent{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := FromRows([][]ID{
				{1, 2, 3},
				{4, 5, 6},
			})
			m.Resize(c.to)
			if m.Extent() != c.to {
				t.Fatalf("expected extent %v, got %v", c.to, m.Extent())
			}
			for r := 0; r < c.to.Rows; r++ {
				if len(m.Row(r)) != c.to.Cols {
					t.Fatalf("row %d has %d cols, want %d", r, len(m.Row(r)), c.to.Cols)
				}
			}
			if c.to.Rows > 0 && c.to.Cols > 0 && m.At(Pos{}) != 1 {
				t.Fatalf("top-left cell should be preserved")
			}
		})
	}
}

func TestMatrixShrinkThenGrowClearsCells(t *testing.T) {
	m := FromRows([][]ID{{1, 2}, {3, 4}})
	m.RemoveCol()
	m.AddCol()
	if got := m.At(Pos{Row: 0, Col: 1}); got != Empty {
		t.Fatalf("expected regrown column to be empty, got %d", got)
	}
	m.RemoveRow()
	m.AddRow()
	if got := m.At(Pos{Row: 1, Col: 0}); got != Empty {
		t.Fatalf("expected regrown row to be empty, got %d", got)
	}
}

func TestMatrixOutside(t *testing.T) {
	m := FromRows([][]ID{
		{1, 0, 3},
		{0, 5, 6},
	})
	cells := m.Outside(Extent{Rows: 1, Cols: 2})
	want := map[Pos]ID{{0, 2}: 3, {1, 1}: 5, {1, 2}: 6}
	if len(cells) != len(want) {
		t.Fatalf("expected %d cells, got %v", len(want), cells)
	}
	for _, c := range cells {
		if want[c.Pos] != c.Tile {
			t.Fatalf("unexpected cell %v", c)
		}
	}
}

func TestMatrixOutOfBounds(t *testing.T) {
	m := NewMatrix(Extent{Rows: 2, Cols: 2})
	if m.Set(Pos{Row: 2, Col: 0}, 7) {
		t.Fatalf("set out of bounds should fail")
	}
	if m.At(Pos{Row: -1, Col: 0}) != Empty {
		t.Fatalf("out of bounds read should be empty")
	}
}

func TestFloodFill(t *testing.T) {
	m := FromRows([][]ID{
		{1, 1, 2},
		{1, 2, 2},
		{1, 1, 1},
	})

	affected := m.FloodFill(Pos{Row: 0, Col: 0}, 9)
	if len(affected) != 6 {
		t.Fatalf("expected 6 affected cells, got %d", len(affected))
	}
	want := [][]ID{
		{9, 9, 2},
		{9, 2, 2},
		{9, 9, 9},
	}
	if !m.Equal(FromRows(want)) {
		t.Fatalf("unexpected result %v", m.Rows())
	}

	if got := m.FloodFill(Pos{Row: 0, Col: 0}, 9); got != nil {
		t.Fatalf("refilling with the same tile should be a no-op, got %v", got)
	}
}
