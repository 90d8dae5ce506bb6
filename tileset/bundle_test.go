package tileset

import (
	"errors"
	"math"
	"testing"

	"github.com/milk9111/tactile/common"
	"github.com/milk9111/tactile/tile"
)

func makeTileset(name string) *Tileset {
	// 8x8 grid of 32px tiles
	return New(name, name+".png", common.Int2{X: 256, Y: 256}, common.Int2{X: 32, Y: 32})
}

func TestBundleDefaults(t *testing.T) {
	b := NewBundle()
	if b.NextTileID() != 1 || b.Len() != 0 {
		t.Fatalf("unexpected defaults next=%d len=%d", b.NextTileID(), b.Len())
	}
	if _, ok := b.Active(); ok {
		t.Fatalf("expected no active tileset")
	}
}

func TestBundleAttachAssignsInclusiveRange(t *testing.T) {
	b := NewBundle()
	ts := makeTileset("terrain")
	a, err := b.Attach(ts, false)
	if err != nil {
		t.Fatal(err)
	}
	if a.FirstTile != 1 || a.LastTile != 64 {
		t.Fatalf("expected [1, 64], got [%d, %d]", a.FirstTile, a.LastTile)
	}
	if b.NextTileID() != 65 {
		t.Fatalf("expected next tile 65, got %d", b.NextTileID())
	}

	cases := []struct {
		id    tile.ID
		valid bool
	}{
		{tile.Empty, false},
		{1, true},
		{42, true},
		{64, true},
		{65, false},
		{-3, false},
	}
	for _, c := range cases {
		if got := b.IsValidTile(c.id); got != c.valid {
			t.Fatalf("IsValidTile(%d) = %v, want %v", c.id, got, c.valid)
		}
	}

	local, ok := a.ToLocal(10)
	if !ok || local != 9 {
		t.Fatalf("expected local 9, got %d", local)
	}
	if global, _ := a.ToGlobal(local); global != 10 {
		t.Fatalf("expected global 10, got %d", global)
	}
	if pos := ts.Cell(9); pos != (tile.Pos{Row: 1, Col: 1}) {
		t.Fatalf("unexpected sheet cell %v", pos)
	}
}

func TestBundleAttachAtRejectsOverlap(t *testing.T) {
	b := NewBundle()
	if _, err := b.AttachAt(makeTileset("a"), 100, true); err != nil {
		t.Fatal(err)
	}
	if b.NextTileID() != 164 {
		t.Fatalf("expected next tile 164, got %d", b.NextTileID())
	}
	if _, err := b.AttachAt(makeTileset("b"), 163, false); !errors.Is(err, ErrRangeOverlap) {
		t.Fatalf("expected overlap error, got %v", err)
	}
	if _, err := b.AttachAt(makeTileset("c"), 0, false); !errors.Is(err, ErrInvalidFirstTile) {
		t.Fatalf("expected invalid first tile error, got %v", err)
	}
	if _, err := b.AttachAt(makeTileset("d"), 36, false); err != nil {
		t.Fatalf("range below an existing one should fit: %v", err)
	}
}

func TestBundleAttachAtRejectsBadRanges(t *testing.T) {
	empty := New("empty", "empty.png", common.Int2{X: 8, Y: 8}, common.Int2{X: 32, Y: 32})
	cases := []struct {
		name  string
		ts    *Tileset
		first tile.ID
		want  error
	}{
		{"no_tiles", empty, 1, ErrEmptyTileset},
		{"past_id_space", makeTileset("high"), math.MaxInt32 - 63, ErrRangeOverflow},
		{"max_id", makeTileset("top"), math.MaxInt32, ErrRangeOverflow},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := NewBundle()
			if _, err := b.AttachAt(c.ts, c.first, false); !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
			if b.Len() != 0 || b.IsValidTile(c.first) {
				t.Fatalf("rejected tileset must not be attached")
			}
		})
	}

	b := NewBundle()
	a, err := b.AttachAt(makeTileset("edge"), math.MaxInt32-64, false)
	if err != nil {
		t.Fatal(err)
	}
	if a.LastTile != math.MaxInt32-1 || b.NextTileID() != math.MaxInt32 {
		t.Fatalf("unexpected range end %d, next %d", a.LastTile, b.NextTileID())
	}
}

func TestBundleDetachKeepsNextTile(t *testing.T) {
	b := NewBundle()
	first := makeTileset("first")
	second := makeTileset("second")
	_, _ = b.Attach(first, false)
	_, _ = b.Attach(second, false)

	detached, err := b.Detach(first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if b.IsValidTile(1) {
		t.Fatalf("ids of a detached tileset must be invalid")
	}
	if b.NextTileID() != 129 {
		t.Fatalf("detach must not lower next tile id, got %d", b.NextTileID())
	}
	if active, ok := b.Active(); !ok || active.Tileset != second {
		t.Fatalf("expected active tileset to fall back to the remaining one")
	}

	if err := b.Restore(detached); err != nil {
		t.Fatal(err)
	}
	if a, _ := b.Get(first.ID); a.FirstTile != 1 || a.LastTile != 64 {
		t.Fatalf("restore must keep the exact range")
	}
	if _, err := b.Detach(first.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Detach(first.ID); !errors.Is(err, ErrNoSuchTileset) {
		t.Fatalf("expected ErrNoSuchTileset, got %v", err)
	}
}
