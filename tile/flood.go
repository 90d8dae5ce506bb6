package tile

// FloodFill replaces the 4-connected region of cells sharing the tile at
// origin with replacement and returns the affected positions. Nothing is
// changed when origin is out of bounds or already holds replacement.
func (m *Matrix) FloodFill(origin Pos, replacement ID) []Pos {
	ext := m.Extent()
	if !ext.Contains(origin) {
		return nil
	}
	target := m.At(origin)
	if target == replacement {
		return nil
	}

	var affected []Pos
	stack := []Pos{origin}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !ext.Contains(p) || m.rows[p.Row][p.Col] != target {
			continue
		}
		m.rows[p.Row][p.Col] = replacement
		affected = append(affected, p)
		stack = append(stack, p.Offset(-1, 0), p.Offset(1, 0), p.Offset(0, -1), p.Offset(0, 1))
	}
	return affected
}
