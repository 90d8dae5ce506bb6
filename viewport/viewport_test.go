package viewport

import (
	"testing"

	"github.com/milk9111/tactile/common"
)

const eps = 1e-9

func TestZoomInKeepsAnchorStationary(t *testing.T) {
	v := Viewport{TileSize: common.Vec2{X: 64, Y: 64}}
	anchor := common.Vec2{X: 32, Y: 32}
	before := v.ScreenToTile(anchor)

	v.ZoomIn(anchor)

	if v.TileSize.X != 67 || v.TileSize.Y != 67 {
		t.Fatalf("expected tile size 67, got %v", v.TileSize)
	}
	if after := v.ScreenToTile(anchor); !after.ApproxEqual(before, eps) {
		t.Fatalf("anchor moved: before %v after %v", before, after)
	}
	if !v.Pos.ApproxEqual(common.Vec2{X: -1.5, Y: -1.5}, eps) {
		t.Fatalf("unexpected pos %v", v.Pos)
	}
}

func TestZoomPreservesAspectRatio(t *testing.T) {
	v := Viewport{TileSize: common.Vec2{X: 100, Y: 50}}
	v.ZoomIn(common.Vec2{})
	if v.TileSize.X != 105 || v.TileSize.Y != 52.5 {
		t.Fatalf("unexpected tile size %v", v.TileSize)
	}
	v.ZoomOut(common.Vec2{})
	if v.TileSize.Y/v.TileSize.X != 0.5 {
		t.Fatalf("aspect ratio lost: %v", v.TileSize)
	}
}

func TestZoomOutClampsToMinimum(t *testing.T) {
	v := Viewport{TileSize: common.Vec2{X: 5, Y: 5}}
	anchor := common.Vec2{X: 10, Y: 3}
	before := v.ScreenToTile(anchor)

	if !v.CanZoomOut() {
		t.Fatalf("expected zoom out to be possible")
	}
	v.ZoomOut(anchor)
	if v.TileSize.Y != MinTileHeight {
		t.Fatalf("expected min tile height, got %v", v.TileSize)
	}
	if after := v.ScreenToTile(anchor); !after.ApproxEqual(before, eps) {
		t.Fatalf("anchor moved: before %v after %v", before, after)
	}
	if v.CanZoomOut() {
		t.Fatalf("zoom out should be blocked at the minimum")
	}
	v.ZoomOut(anchor)
	if v.TileSize.Y != MinTileHeight {
		t.Fatalf("tile height dropped below minimum: %v", v.TileSize)
	}
}

func TestOffsetRespectsLimits(t *testing.T) {
	v := Viewport{TileSize: common.Vec2{X: 32, Y: 32}}
	v.SetLimits(Limits{MinOffset: common.Vec2{X: -100, Y: -100}, MaxOffset: common.Vec2{X: 50, Y: 50}})

	cases := []struct {
		name  string
		delta common.Vec2
		want  common.Vec2
	}{
		{"inside", common.Vec2{X: 10, Y: -10}, common.Vec2{X: 10, Y: -10}},
		{"clamp_max", common.Vec2{X: 500, Y: 0}, common.Vec2{X: 50, Y: -10}},
		{"clamp_min", common.Vec2{X: -1000, Y: -1000}, common.Vec2{X: -100, Y: -100}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v.Offset(c.delta)
			if v.Pos != c.want {
				t.Fatalf("expected %v, got %v", c.want, v.Pos)
			}
		})
	}
}

func TestPanMovesByOneTile(t *testing.T) {
	v := Viewport{TileSize: common.Vec2{X: 16, Y: 24}}
	v.PanLeft()
	v.PanUp()
	if v.Pos != (common.Vec2{X: 16, Y: 24}) {
		t.Fatalf("unexpected pos %v", v.Pos)
	}
	v.PanRight()
	v.PanDown()
	if v.Pos != (common.Vec2{}) {
		t.Fatalf("expected origin, got %v", v.Pos)
	}
}

func TestResetAndCenter(t *testing.T) {
	v := New(common.Vec2{X: 32, Y: 16})
	if v.TileSize != (common.Vec2{X: 64, Y: 32}) {
		t.Fatalf("expected 2x native size, got %v", v.TileSize)
	}
	v.SetSize(common.Vec2{X: 800, Y: 600})
	v.CenterOver(common.Vec2{X: 640, Y: 320})
	if v.Pos != (common.Vec2{X: 80, Y: 140}) {
		t.Fatalf("unexpected centered pos %v", v.Pos)
	}

	m := v.Transform()
	x := m[0]*1 + m[1]*1 + m[2]
	y := m[3]*1 + m[4]*1 + m[5]
	if x != 144 || y != 172 {
		t.Fatalf("unexpected transformed point (%v, %v)", x, y)
	}
}
