package editor

import (
	"fmt"

	"github.com/milk9111/tactile/document"
	"github.com/milk9111/tactile/layer"
	"github.com/milk9111/tactile/mapcmd"
	"github.com/milk9111/tactile/tile"
	"github.com/milk9111/tactile/tilemap"
)

// Handle applies evt immediately.
func (a *App) Handle(evt Event) error {
	if a.Settings.LogVerboseEvents {
		a.Logger.Printf("event %T %+v", evt, evt)
	}

	switch e := evt.(type) {
	case UndoEvent:
		return a.undo()
	case RedoEvent:
		return a.redo()

	case ResizeMapEvent:
		ext := tile.Extent{Rows: e.Rows, Cols: e.Cols}
		return push(a, func(r document.Ref) (*mapcmd.ResizeMap, error) { return mapcmd.NewResizeMap(r, ext) })
	case AddRowEvent:
		return push(a, mapcmd.NewAddRow)
	case AddColumnEvent:
		return push(a, mapcmd.NewAddColumn)
	case RemoveRowEvent:
		if !a.CanRemoveRow() {
			return unavailable("remove row")
		}
		return push(a, mapcmd.NewRemoveRow)
	case RemoveColumnEvent:
		if !a.CanRemoveColumn() {
			return unavailable("remove column")
		}
		return push(a, mapcmd.NewRemoveColumn)
	case FixTilesInMapEvent:
		return push(a, mapcmd.NewFixMapTiles)

	case SetTileFormatEncodingEvent:
		return push(a, func(r document.Ref) (*mapcmd.SetTileFormatEncoding, error) {
			return mapcmd.NewSetTileFormatEncoding(r, e.Encoding)
		})
	case SetTileFormatCompressionEvent:
		if e.Compression != tilemap.CompressionNone && !a.CanCompress() {
			return unavailable("compression with plain encoding")
		}
		return push(a, func(r document.Ref) (*mapcmd.SetTileFormatCompression, error) {
			return mapcmd.NewSetTileFormatCompression(r, e.Compression)
		})
	case SetZlibCompressionLevelEvent:
		if !tilemap.IsValidZlibLevel(e.Level) {
			return unavailable(fmt.Sprintf("zlib level %d", e.Level))
		}
		return push(a, func(r document.Ref) (*mapcmd.SetZlibCompressionLevel, error) {
			return mapcmd.NewSetZlibCompressionLevel(r, e.Level)
		})
	case SetZstdCompressionLevelEvent:
		if !tilemap.IsValidZstdLevel(e.Level) {
			return unavailable(fmt.Sprintf("zstd level %d", e.Level))
		}
		return push(a, func(r document.Ref) (*mapcmd.SetZstdCompressionLevel, error) {
			return mapcmd.NewSetZstdCompressionLevel(r, e.Level)
		})

	case StampSequenceEvent:
		return push(a, func(r document.Ref) (*mapcmd.SetTiles, error) {
			return mapcmd.NewStampSequence(r, e.Layer, e.Cells)
		})
	case EraserSequenceEvent:
		return push(a, func(r document.Ref) (*mapcmd.SetTiles, error) {
			return mapcmd.NewEraserSequence(r, e.Layer, e.Positions)
		})
	case FloodEvent:
		return push(a, func(r document.Ref) (*mapcmd.BucketFill, error) {
			return mapcmd.NewBucketFill(r, e.Layer, e.Origin, e.Replacement)
		})

	case AttachTilesetEvent:
		return push(a, func(r document.Ref) (*mapcmd.AttachTileset, error) {
			return mapcmd.NewAttachTileset(r, e.Tileset, e.Embedded)
		})
	case DetachTilesetEvent:
		return push(a, func(r document.Ref) (*mapcmd.DetachTileset, error) {
			return mapcmd.NewDetachTileset(r, e.Tileset)
		})
	case SelectTilesetEvent:
		doc, err := a.ActiveDocument()
		if err != nil {
			return err
		}
		return doc.Map.Tilesets.Select(e.Tileset)

	case AddAnimationFrameEvent:
		return push(a, func(r document.Ref) (*mapcmd.AddAnimationFrame, error) {
			return mapcmd.NewAddAnimationFrame(r, e.Tileset, e.Tile, e.Frame, e.Duration)
		})
	case RemoveAnimationFrameEvent:
		return push(a, func(r document.Ref) (*mapcmd.RemoveAnimationFrame, error) {
			return mapcmd.NewRemoveAnimationFrame(r, e.Tileset, e.Tile, e.Index)
		})
	case AddTileObjectEvent:
		return push(a, func(r document.Ref) (*mapcmd.AddTileObject, error) {
			return mapcmd.NewAddTileObject(r, e.Tileset, e.Tile, e.Kind, e.Pos, e.Size)
		})
	case RemoveTileObjectEvent:
		return push(a, func(r document.Ref) (*mapcmd.RemoveTileObject, error) {
			return mapcmd.NewRemoveTileObject(r, e.Tileset, e.Tile, e.Object)
		})

	case AddLayerEvent:
		return push(a, func(r document.Ref) (*mapcmd.AddLayer, error) {
			return mapcmd.NewAddLayer(r, e.Kind, e.Parent)
		})
	case RemoveLayerEvent:
		return push(a, func(r document.Ref) (*mapcmd.RemoveLayer, error) {
			return mapcmd.NewRemoveLayer(r, e.Layer)
		})
	case SelectLayerEvent:
		return a.selectLayer(e)
	case RenameLayerEvent:
		return push(a, func(r document.Ref) (*mapcmd.RenameLayer, error) {
			return mapcmd.NewRenameLayer(r, e.Layer, e.Name)
		})
	case MoveLayerUpEvent:
		if !a.CanMoveLayerUp(e.Layer) {
			return unavailable("move layer up")
		}
		return push(a, func(r document.Ref) (*mapcmd.MoveLayerUp, error) {
			return mapcmd.NewMoveLayerUp(r, e.Layer)
		})
	case MoveLayerDownEvent:
		if !a.CanMoveLayerDown(e.Layer) {
			return unavailable("move layer down")
		}
		return push(a, func(r document.Ref) (*mapcmd.MoveLayerDown, error) {
			return mapcmd.NewMoveLayerDown(r, e.Layer)
		})
	case DuplicateLayerEvent:
		return push(a, func(r document.Ref) (*mapcmd.DuplicateLayer, error) {
			return mapcmd.NewDuplicateLayer(r, e.Layer)
		})
	case SetLayerOpacityEvent:
		return push(a, func(r document.Ref) (*mapcmd.SetLayerOpacity, error) {
			return mapcmd.NewSetLayerOpacity(r, e.Layer, e.Opacity)
		})
	case SetLayerVisibleEvent:
		return push(a, func(r document.Ref) (*mapcmd.SetLayerVisible, error) {
			return mapcmd.NewSetLayerVisible(r, e.Layer, e.Visible)
		})

	case AddObjectEvent:
		return push(a, func(r document.Ref) (*mapcmd.AddObject, error) {
			return mapcmd.NewAddObject(r, e.Layer, e.Kind, e.Pos, e.Size)
		})
	case RemoveObjectEvent:
		return push(a, func(r document.Ref) (*mapcmd.RemoveObject, error) {
			return mapcmd.NewRemoveObject(r, e.Object)
		})
	case MoveObjectEvent:
		return push(a, func(r document.Ref) (*mapcmd.MoveObject, error) {
			return mapcmd.NewMoveObject(r, e.Object, e.Pos)
		})
	case SetObjectTagEvent:
		return push(a, func(r document.Ref) (*mapcmd.SetObjectTag, error) {
			return mapcmd.NewSetObjectTag(r, e.Object, e.Tag)
		})
	case SetObjectNameEvent:
		return push(a, func(r document.Ref) (*mapcmd.SetObjectName, error) {
			return mapcmd.NewSetObjectName(r, e.Object, e.Name)
		})
	case SetObjectVisibleEvent:
		return push(a, func(r document.Ref) (*mapcmd.SetObjectVisible, error) {
			return mapcmd.NewSetObjectVisible(r, e.Object, e.Visible)
		})

	case CreatePropertyEvent:
		return push(a, func(r document.Ref) (*mapcmd.CreateProperty, error) {
			return mapcmd.NewCreateProperty(r, e.Context, e.Name, e.Type)
		})
	case RemovePropertyEvent:
		return push(a, func(r document.Ref) (*mapcmd.RemoveProperty, error) {
			return mapcmd.NewRemoveProperty(r, e.Context, e.Name)
		})
	case RenamePropertyEvent:
		return push(a, func(r document.Ref) (*mapcmd.RenameProperty, error) {
			return mapcmd.NewRenameProperty(r, e.Context, e.From, e.To)
		})
	case UpdatePropertyEvent:
		return push(a, func(r document.Ref) (*mapcmd.UpdateProperty, error) {
			return mapcmd.NewUpdateProperty(r, e.Context, e.Name, e.Value)
		})
	case ChangePropertyTypeEvent:
		return push(a, func(r document.Ref) (*mapcmd.SetPropertyType, error) {
			return mapcmd.NewSetPropertyType(r, e.Context, e.Name, e.Type)
		})

	case DefineComponentEvent:
		return push(a, func(r document.Ref) (*mapcmd.DefineComponent, error) {
			return mapcmd.NewDefineComponent(r, e.Name)
		})
	case UndefComponentEvent:
		return push(a, func(r document.Ref) (*mapcmd.UndefComponent, error) {
			return mapcmd.NewUndefComponent(r, e.Component)
		})
	case RenameComponentEvent:
		return push(a, func(r document.Ref) (*mapcmd.RenameComponent, error) {
			return mapcmd.NewRenameComponent(r, e.Component, e.Name)
		})
	case AddComponentAttrEvent:
		return push(a, func(r document.Ref) (*mapcmd.AddComponentAttr, error) {
			return mapcmd.NewAddComponentAttr(r, e.Component, e.Name)
		})
	case RemoveComponentAttrEvent:
		return push(a, func(r document.Ref) (*mapcmd.RemoveComponentAttr, error) {
			return mapcmd.NewRemoveComponentAttr(r, e.Component, e.Name)
		})
	case RenameComponentAttrEvent:
		return push(a, func(r document.Ref) (*mapcmd.RenameComponentAttr, error) {
			return mapcmd.NewRenameComponentAttr(r, e.Component, e.From, e.To)
		})
	case UpdateComponentAttrEvent:
		return push(a, func(r document.Ref) (*mapcmd.UpdateComponentAttr, error) {
			return mapcmd.NewUpdateComponentAttr(r, e.Component, e.Name, e.Value)
		})
	case AttachComponentEvent:
		return push(a, func(r document.Ref) (*mapcmd.AttachComponent, error) {
			return mapcmd.NewAttachComponent(r, e.Context, e.Component)
		})
	case DetachComponentEvent:
		return push(a, func(r document.Ref) (*mapcmd.DetachComponent, error) {
			return mapcmd.NewDetachComponent(r, e.Context, e.Component)
		})
	case UpdateAttachedComponentEvent:
		return push(a, func(r document.Ref) (*mapcmd.UpdateAttachedComponent, error) {
			return mapcmd.NewUpdateAttachedComponent(r, e.Context, e.Component, e.Name, e.Value)
		})
	case ResetAttachedComponentEvent:
		return push(a, func(r document.Ref) (*mapcmd.ResetAttachedComponent, error) {
			return mapcmd.NewResetAttachedComponent(r, e.Context, e.Component)
		})

	case OffsetViewportEvent, PanViewportLeftEvent, PanViewportRightEvent,
		PanViewportUpEvent, PanViewportDownEvent, IncreaseZoomEvent,
		DecreaseZoomEvent, ResetZoomEvent, CenterViewportEvent, ResizeViewportEvent:
		return a.handleViewport(evt)
	}

	return fmt.Errorf("%w: %T", ErrUnknownEvent, evt)
}

func (a *App) undo() error {
	doc, err := a.ActiveDocument()
	if err != nil {
		return err
	}
	if !doc.History.Undo() {
		return unavailable("undo")
	}
	return nil
}

func (a *App) redo() error {
	doc, err := a.ActiveDocument()
	if err != nil {
		return err
	}
	if !doc.History.Redo() {
		return unavailable("redo")
	}
	return nil
}

func (a *App) selectLayer(e SelectLayerEvent) error {
	doc, err := a.ActiveDocument()
	if err != nil {
		return err
	}
	if _, ok := doc.Map.Layer(e.Layer); !ok {
		return fmt.Errorf("%w: %s", layer.ErrNoSuchLayer, e.Layer)
	}
	doc.Map.ActiveLayer = e.Layer
	return nil
}

func (a *App) handleViewport(evt Event) error {
	doc, err := a.ActiveDocument()
	if err != nil {
		return err
	}
	v := &doc.Viewport
	native := doc.Map.TileSize.Vec2()

	switch e := evt.(type) {
	case OffsetViewportEvent:
		v.Offset(e.Delta)
	case PanViewportLeftEvent:
		v.PanLeft()
	case PanViewportRightEvent:
		v.PanRight()
	case PanViewportUpEvent:
		v.PanUp()
	case PanViewportDownEvent:
		v.PanDown()
	case IncreaseZoomEvent:
		v.ZoomIn(e.Anchor)
	case DecreaseZoomEvent:
		if !v.CanZoomOut() {
			return unavailable("zoom out")
		}
		v.ZoomOut(e.Anchor)
	case ResetZoomEvent:
		v.ResetZoom(native)
	case CenterViewportEvent:
		v.CenterOver(v.TileSize.Mul(extentVec(doc.Map.Extent)))
	case ResizeViewportEvent:
		v.SetSize(e.Size)
	}
	return nil
}
