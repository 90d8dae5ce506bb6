// Package viewport implements pan and zoom state for map and tileset views.
//
// Pos is where the origin of the tile grid sits in viewport coordinates and
// TileSize is the on-screen size of one tile, so a grid coordinate g is drawn
// at Pos + g*TileSize. Anchored zoom keeps the content under the anchor
// stationary.
package viewport

import (
	"math"

	"github.com/milk9111/tactile/common"
	"golang.org/x/image/math/f64"
)

const (
	// MinTileHeight is the smallest on-screen tile height zooming out may reach.
	MinTileHeight = 4.0

	zoomFactor  = 0.05
	minZoomStep = 2.0
	resetFactor = 2.0
)

// Limits bounds the viewport offset component-wise.
type Limits struct {
	MinOffset common.Vec2
	MaxOffset common.Vec2
}

// Viewport is a continuous pan/zoom state. After every mutating call
// TileSize.Y >= MinTileHeight and Pos lies within Limits when set.
type Viewport struct {
	Pos      common.Vec2
	TileSize common.Vec2
	Size     common.Vec2

	limits *Limits
}

// New creates a viewport showing tiles at twice their native size.
func New(nativeTileSize common.Vec2) Viewport {
	v := Viewport{}
	v.ResetZoom(nativeTileSize)
	return v
}

// Limits returns the offset limits, if any.
func (v *Viewport) Limits() (Limits, bool) {
	if v.limits == nil {
		return Limits{}, false
	}
	return *v.limits, true
}

// SetLimits installs offset limits and clamps the current offset.
func (v *Viewport) SetLimits(l Limits) {
	v.limits = &l
	v.clamp()
}

// ClearLimits removes the offset limits.
func (v *Viewport) ClearLimits() {
	v.limits = nil
}

// SetSize records the on-screen size of the viewport.
func (v *Viewport) SetSize(size common.Vec2) {
	v.Size = size
}

func (v *Viewport) clamp() {
	if v.limits != nil {
		v.Pos = v.Pos.ClampTo(v.limits.MinOffset, v.limits.MaxOffset)
	}
}

// Offset translates the viewport by delta.
func (v *Viewport) Offset(delta common.Vec2) {
	v.Pos = v.Pos.Add(delta)
	v.clamp()
}

// PanLeft reveals one more tile column on the left.
func (v *Viewport) PanLeft() {
	v.Offset(common.Vec2{X: v.TileSize.X})
}

func (v *Viewport) PanRight() {
	v.Offset(common.Vec2{X: -v.TileSize.X})
}

func (v *Viewport) PanUp() {
	v.Offset(common.Vec2{Y: v.TileSize.Y})
}

func (v *Viewport) PanDown() {
	v.Offset(common.Vec2{Y: -v.TileSize.Y})
}

func (v *Viewport) zoomStep() common.Vec2 {
	dx := math.Round(math.Max(minZoomStep, v.TileSize.X*zoomFactor))
	ratio := 1.0
	if v.TileSize.X != 0 {
		ratio = v.TileSize.Y / v.TileSize.X
	}
	return common.Vec2{X: dx, Y: dx * ratio}
}

// rescale replaces the tile size while keeping the content under anchor in place.
func (v *Viewport) rescale(anchor, tileSize common.Vec2) {
	fraction := anchor.Sub(v.Pos).Div(v.TileSize)
	v.TileSize = tileSize
	v.Pos = anchor.Sub(fraction.Mul(tileSize))
	v.clamp()
}

// ZoomIn enlarges tiles by one step around anchor.
func (v *Viewport) ZoomIn(anchor common.Vec2) {
	v.rescale(anchor, v.TileSize.Add(v.zoomStep()))
}

// ZoomOut shrinks tiles by one step around anchor, never below MinTileHeight.
func (v *Viewport) ZoomOut(anchor common.Vec2) {
	if !v.CanZoomOut() {
		return
	}
	next := v.TileSize.Sub(v.zoomStep())
	if next.Y < MinTileHeight {
		ratio := 1.0
		if v.TileSize.Y != 0 {
			ratio = v.TileSize.X / v.TileSize.Y
		}
		next = common.Vec2{X: MinTileHeight * ratio, Y: MinTileHeight}
	}
	v.rescale(anchor, next)
}

// CanZoomOut reports whether the tile height exceeds the minimum.
func (v *Viewport) CanZoomOut() bool {
	return v.TileSize.Y > MinTileHeight
}

// ResetZoom shows tiles at twice their native size.
func (v *Viewport) ResetZoom(nativeTileSize common.Vec2) {
	v.TileSize = nativeTileSize.Scale(resetFactor)
	if v.TileSize.Y < MinTileHeight {
		v.TileSize.Y = MinTileHeight
	}
}

// Scale returns the on-screen tile size relative to nativeTileSize.
func (v *Viewport) Scale(nativeTileSize common.Vec2) common.Vec2 {
	return v.TileSize.Div(nativeTileSize)
}

// CenterOver centers content of the given on-screen size in the viewport.
func (v *Viewport) CenterOver(contentSize common.Vec2) {
	v.Pos = v.Size.Sub(contentSize).Scale(0.5)
	v.clamp()
}

// Transform returns the affine map from tile-grid coordinates (in tiles) to
// viewport coordinates.
func (v *Viewport) Transform() f64.Aff3 {
	return f64.Aff3{
		v.TileSize.X, 0, v.Pos.X,
		0, v.TileSize.Y, v.Pos.Y,
	}
}

// ScreenToTile converts a viewport point into fractional tile coordinates
// (column, row).
func (v *Viewport) ScreenToTile(p common.Vec2) common.Vec2 {
	return p.Sub(v.Pos).Div(v.TileSize)
}
