package tilemap

import (
	"github.com/google/uuid"
	"github.com/milk9111/tactile/tile"
)

// InvalidTiles records, per tile layer, the ids cleared by FixTiles.
type InvalidTiles map[uuid.UUID]map[tile.Pos]tile.ID

// Count returns the number of recorded cells.
func (t InvalidTiles) Count() int {
	n := 0
	for _, cells := range t {
		n += len(cells)
	}
	return n
}

// FixTiles clears every cell, in every tile layer, whose id is not Empty and
// not within the range of an attached tileset. It returns exactly the cells
// it changed along with their previous ids.
func (m *Map) FixTiles() InvalidTiles {
	result := InvalidTiles{}
	for _, l := range m.TileLayers() {
		var cells map[tile.Pos]tile.ID
		l.Tiles.Each(func(p tile.Pos, id tile.ID) {
			if m.IsValidTile(id) {
				return
			}
			if cells == nil {
				cells = map[tile.Pos]tile.ID{}
			}
			cells[p] = id
		})
		for p := range cells {
			l.Tiles.Set(p, tile.Empty)
		}
		if cells != nil {
			result[l.ID] = cells
		}
	}
	return result
}

// RestoreTiles writes back the ids recorded by FixTiles. Layers that no
// longer exist are skipped.
func (m *Map) RestoreTiles(invalid InvalidTiles) {
	for layerID, cells := range invalid {
		l, ok := m.TileLayer(layerID)
		if !ok {
			continue
		}
		for p, id := range cells {
			l.Tiles.Set(p, id)
		}
	}
}
