package editor

import (
	"time"

	"github.com/google/uuid"
	"github.com/milk9111/tactile/attribute"
	"github.com/milk9111/tactile/common"
	"github.com/milk9111/tactile/layer"
	"github.com/milk9111/tactile/tile"
	"github.com/milk9111/tactile/tilemap"
	"github.com/milk9111/tactile/tileset"
)

// Event is anything App.Handle understands. The concrete types below are
// the full set.
type Event any

type (
	UndoEvent struct{}
	RedoEvent struct{}
)

// Map events.
type (
	ResizeMapEvent struct {
		Rows int
		Cols int
	}
	AddRowEvent        struct{}
	AddColumnEvent     struct{}
	RemoveRowEvent     struct{}
	RemoveColumnEvent  struct{}
	FixTilesInMapEvent struct{}

	SetTileFormatEncodingEvent struct {
		Encoding tilemap.Encoding
	}
	SetTileFormatCompressionEvent struct {
		Compression tilemap.Compression
	}
	SetZlibCompressionLevelEvent struct {
		Level int
	}
	SetZstdCompressionLevelEvent struct {
		Level int
	}
)

// Tile events.
type (
	StampSequenceEvent struct {
		Layer uuid.UUID
		Cells map[tile.Pos]tile.ID
	}
	EraserSequenceEvent struct {
		Layer     uuid.UUID
		Positions []tile.Pos
	}
	FloodEvent struct {
		Layer       uuid.UUID
		Origin      tile.Pos
		Replacement tile.ID
	}
)

// Tileset events.
type (
	AttachTilesetEvent struct {
		Tileset  *tileset.Tileset
		Embedded bool
	}
	DetachTilesetEvent struct {
		Tileset uuid.UUID
	}
	SelectTilesetEvent struct {
		Tileset uuid.UUID
	}
)

// Tile metadata events. Tile and Frame tiles are local indices into the
// tileset.
type (
	AddAnimationFrameEvent struct {
		Tileset  uuid.UUID
		Tile     int
		Frame    int
		Duration time.Duration
	}
	RemoveAnimationFrameEvent struct {
		Tileset uuid.UUID
		Tile    int
		Index   int
	}
	AddTileObjectEvent struct {
		Tileset uuid.UUID
		Tile    int
		Kind    layer.ObjectKind
		Pos     common.Vec2
		Size    common.Vec2
	}
	RemoveTileObjectEvent struct {
		Tileset uuid.UUID
		Tile    int
		Object  uuid.UUID
	}
)

// Layer events.
type (
	AddLayerEvent struct {
		Kind   layer.Kind
		Parent uuid.UUID
	}
	RemoveLayerEvent struct {
		Layer uuid.UUID
	}
	SelectLayerEvent struct {
		Layer uuid.UUID
	}
	RenameLayerEvent struct {
		Layer uuid.UUID
		Name  string
	}
	MoveLayerUpEvent struct {
		Layer uuid.UUID
	}
	MoveLayerDownEvent struct {
		Layer uuid.UUID
	}
	DuplicateLayerEvent struct {
		Layer uuid.UUID
	}
	SetLayerOpacityEvent struct {
		Layer   uuid.UUID
		Opacity float64
	}
	SetLayerVisibleEvent struct {
		Layer   uuid.UUID
		Visible bool
	}
)

// Object events.
type (
	AddObjectEvent struct {
		Layer uuid.UUID
		Kind  layer.ObjectKind
		Pos   common.Vec2
		Size  common.Vec2
	}
	RemoveObjectEvent struct {
		Object uuid.UUID
	}
	MoveObjectEvent struct {
		Object uuid.UUID
		Pos    common.Vec2
	}
	SetObjectTagEvent struct {
		Object uuid.UUID
		Tag    string
	}
	SetObjectNameEvent struct {
		Object uuid.UUID
		Name   string
	}
	SetObjectVisibleEvent struct {
		Object  uuid.UUID
		Visible bool
	}
)

// Property events. Context is the id of the map, layer, object or tileset
// owning the property.
type (
	CreatePropertyEvent struct {
		Context uuid.UUID
		Name    string
		Type    attribute.Type
	}
	RemovePropertyEvent struct {
		Context uuid.UUID
		Name    string
	}
	RenamePropertyEvent struct {
		Context uuid.UUID
		From    string
		To      string
	}
	UpdatePropertyEvent struct {
		Context uuid.UUID
		Name    string
		Value   attribute.Value
	}
	ChangePropertyTypeEvent struct {
		Context uuid.UUID
		Name    string
		Type    attribute.Type
	}
)

// Component events.
type (
	DefineComponentEvent struct {
		Name string
	}
	UndefComponentEvent struct {
		Component uuid.UUID
	}
	RenameComponentEvent struct {
		Component uuid.UUID
		Name      string
	}
	AddComponentAttrEvent struct {
		Component uuid.UUID
		Name      string
	}
	RemoveComponentAttrEvent struct {
		Component uuid.UUID
		Name      string
	}
	RenameComponentAttrEvent struct {
		Component uuid.UUID
		From      string
		To        string
	}
	UpdateComponentAttrEvent struct {
		Component uuid.UUID
		Name      string
		Value     attribute.Value
	}
	AttachComponentEvent struct {
		Context   uuid.UUID
		Component uuid.UUID
	}
	DetachComponentEvent struct {
		Context   uuid.UUID
		Component uuid.UUID
	}
	UpdateAttachedComponentEvent struct {
		Context   uuid.UUID
		Component uuid.UUID
		Name      string
		Value     attribute.Value
	}
	ResetAttachedComponentEvent struct {
		Context   uuid.UUID
		Component uuid.UUID
	}
)

// Viewport events. They act on the active document's viewport and are not
// recorded in the history.
type (
	OffsetViewportEvent struct {
		Delta common.Vec2
	}
	PanViewportLeftEvent  struct{}
	PanViewportRightEvent struct{}
	PanViewportUpEvent    struct{}
	PanViewportDownEvent  struct{}
	ResetZoomEvent        struct{}
	CenterViewportEvent   struct{}

	IncreaseZoomEvent struct {
		Anchor common.Vec2
	}
	DecreaseZoomEvent struct {
		Anchor common.Vec2
	}
	ResizeViewportEvent struct {
		Size common.Vec2
	}
)
