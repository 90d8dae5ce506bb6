package editor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/milk9111/tactile/common"
	"github.com/milk9111/tactile/document"
	"github.com/milk9111/tactile/ir"
	"github.com/milk9111/tactile/layer"
	"github.com/milk9111/tactile/mapcmd"
	"github.com/milk9111/tactile/tile"
	"github.com/milk9111/tactile/tilemap"
)

// NewMap opens an empty map with one tile layer, using the configured tile
// format. A zero extent or tile size falls back to the settings.
func (a *App) NewMap(name string, ext tile.Extent, tileSize common.Int2) (*document.Document, error) {
	if ext == (tile.Extent{}) {
		ext = a.Settings.Extent()
	}
	if tileSize == (common.Int2{}) {
		tileSize = a.Settings.TileSize()
	}
	format, err := a.Settings.Format()
	if err != nil {
		return nil, err
	}

	m, err := tilemap.New(name, ext, tileSize)
	if err != nil {
		return nil, err
	}
	m.Format = format
	first := m.NewLayer(layer.TileLayer)
	if err := m.Root.Insert(m.Root.ID, 0, first); err != nil {
		return nil, err
	}
	m.ActiveLayer = first.ID

	doc := a.Registry.Open(m, "")
	a.Logger.Printf("created map %q (%s)", name, ext)
	return doc, nil
}

// OpenMap loads the map at path into a new active document. Nothing is
// opened when parsing fails. With FixTilesOnOpen set, dangling tile ids are
// cleared and the repair is recorded as an undoable history entry.
func (a *App) OpenMap(path string) (*document.Document, error) {
	in, err := ir.Load(path)
	if err != nil {
		return nil, err
	}
	m, err := in.ToMap()
	if err != nil {
		return nil, fmt.Errorf("editor: open %s: %w", path, err)
	}

	doc := a.Registry.Open(m, path)
	if a.Settings.FixTilesOnOpen {
		if err := a.repair(doc); err != nil {
			return doc, err
		}
	}
	a.Logger.Printf("opened %s", path)
	return doc, nil
}

func (a *App) repair(doc *document.Document) error {
	invalid := doc.Map.FixTiles()
	if invalid.Count() == 0 {
		return nil
	}
	cmd, err := mapcmd.NewFixMapTilesApplied(a.Registry.Ref(doc.ID()), invalid)
	if err != nil {
		return err
	}
	doc.History.PushWithoutRedo(cmd)
	a.Logger.Printf("cleared %d invalid tiles in %s", invalid.Count(), doc.Path)
	return nil
}

// SaveMap writes the active document to path, or to its current path when
// path is empty, and marks it clean.
func (a *App) SaveMap(path string) error {
	doc, err := a.ActiveDocument()
	if err != nil {
		return err
	}
	if path == "" {
		path = doc.Path
	}
	if path == "" {
		return fmt.Errorf("editor: document %q has no path", doc.Map.Name)
	}
	out, err := ir.FromMap(doc.Map)
	if err != nil {
		return err
	}
	if err := ir.Save(path, out); err != nil {
		return err
	}
	doc.Path = path
	doc.History.MarkAsClean()
	a.Logger.Printf("saved %s", path)
	return nil
}

// CloseMap closes the active document.
func (a *App) CloseMap() error {
	doc, err := a.ActiveDocument()
	if err != nil {
		return err
	}
	if !doc.IsClean() {
		a.Logger.Printf("closing %s with unsaved changes", displayName(doc))
	}
	return a.Registry.Close(doc.ID())
}

func displayName(doc *document.Document) string {
	if doc.Path == "" {
		return doc.Map.Name
	}
	return strings.TrimSuffix(filepath.Base(doc.Path), filepath.Ext(doc.Path))
}
