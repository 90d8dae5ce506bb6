package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/milk9111/tactile/common"
	"github.com/milk9111/tactile/layer"
	"github.com/milk9111/tactile/tile"
	"github.com/milk9111/tactile/tilemap"
	"github.com/milk9111/tactile/tileset"
)

func TestPrintInfo(t *testing.T) {
	m, err := tilemap.New("cave", tile.Extent{Rows: 2, Cols: 3}, common.Int2{X: 16, Y: 16})
	if err != nil {
		t.Fatal(err)
	}
	group := m.NewLayer(layer.GroupLayer)
	tiles := m.NewLayer(layer.TileLayer)
	if err := m.Root.Insert(m.Root.ID, -1, group); err != nil {
		t.Fatal(err)
	}
	if err := m.Root.Insert(group.ID, -1, tiles); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Tilesets.Attach(tileset.New("rock", "rock.png", common.Int2{X: 32, Y: 16}, common.Int2{X: 16, Y: 16}), true); err != nil {
		t.Fatal(err)
	}
	tiles.Tiles.Set(tile.Pos{Row: 0, Col: 0}, 2)
	tiles.Tiles.Set(tile.Pos{Row: 1, Col: 2}, 3)

	var buf bytes.Buffer
	printInfo(&buf, m)
	out := buf.String()

	for _, want := range []string{
		"name:     cave",
		"tilesets: 1",
		"[1, 2]",
		"  Group Layer: Group Layer 1",
		"    Tile Layer: Tile Layer 2",
		"invalid:  1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		out, in, want string
	}{
		{"", "a.yaml", "a.yaml"},
		{"b.yaml", "a.yaml", "b.yaml"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.out, tt.in); got != tt.want {
			t.Errorf("outputPath(%q, %q) = %q, want %q", tt.out, tt.in, got, tt.want)
		}
	}
}
