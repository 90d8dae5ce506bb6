package editor

import (
	"github.com/google/uuid"
	"github.com/milk9111/tactile/common"
	"github.com/milk9111/tactile/tile"
	"github.com/milk9111/tactile/tilemap"
)

// Availability predicates used to enable menu actions. Each reports false
// when no document is active.

func (a *App) activeMap() (*tilemap.Map, bool) {
	doc, ok := a.Registry.Active()
	if !ok {
		return nil, false
	}
	return doc.Map, true
}

func (a *App) CanUndo() bool {
	doc, ok := a.Registry.Active()
	return ok && doc.History.CanUndo()
}

func (a *App) CanRedo() bool {
	doc, ok := a.Registry.Active()
	return ok && doc.History.CanRedo()
}

// UndoText names the command Undo would revert.
func (a *App) UndoText() string {
	if doc, ok := a.Registry.Active(); ok {
		return doc.History.UndoText()
	}
	return ""
}

func (a *App) RedoText() string {
	if doc, ok := a.Registry.Active(); ok {
		return doc.History.RedoText()
	}
	return ""
}

// IsClean reports whether the active document has no unsaved changes.
func (a *App) IsClean() bool {
	doc, ok := a.Registry.Active()
	return ok && doc.IsClean()
}

func (a *App) CanRemoveRow() bool {
	m, ok := a.activeMap()
	return ok && m.CanRemoveRow()
}

func (a *App) CanRemoveColumn() bool {
	m, ok := a.activeMap()
	return ok && m.CanRemoveColumn()
}

// CanCompress reports whether the tile format accepts a compression codec.
func (a *App) CanCompress() bool {
	m, ok := a.activeMap()
	return ok && m.Format.SupportsCompression()
}

func (a *App) CanMoveLayerUp(id uuid.UUID) bool {
	m, ok := a.activeMap()
	return ok && m.Root.CanMoveUp(id)
}

func (a *App) CanMoveLayerDown(id uuid.UUID) bool {
	m, ok := a.activeMap()
	return ok && m.Root.CanMoveDown(id)
}

func (a *App) CanZoomOut() bool {
	doc, ok := a.Registry.Active()
	return ok && doc.Viewport.CanZoomOut()
}

// HasInvalidTiles reports whether FixTilesInMapEvent would change anything.
func (a *App) HasInvalidTiles() bool {
	m, ok := a.activeMap()
	if !ok {
		return false
	}
	for _, l := range m.TileLayers() {
		found := false
		l.Tiles.Each(func(_ tile.Pos, id tile.ID) {
			if !m.IsValidTile(id) {
				found = true
			}
		})
		if found {
			return true
		}
	}
	return false
}

func extentVec(ext tile.Extent) common.Vec2 {
	return common.Vec2{X: float64(ext.Cols), Y: float64(ext.Rows)}
}
