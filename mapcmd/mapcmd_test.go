package mapcmd

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/milk9111/tactile/attribute"
	"github.com/milk9111/tactile/command"
	"github.com/milk9111/tactile/common"
	"github.com/milk9111/tactile/document"
	"github.com/milk9111/tactile/layer"
	"github.com/milk9111/tactile/tile"
	"github.com/milk9111/tactile/tilemap"
	"github.com/milk9111/tactile/tileset"
)

type fixture struct {
	reg   *document.Registry
	doc   *document.Document
	ref   document.Ref
	m     *tilemap.Map
	layer *layer.Layer
	stack *command.Stack
}

func newFixture(t *testing.T, rows, cols int) *fixture {
	t.Helper()
	m, err := tilemap.New("test", tile.Extent{Rows: rows, Cols: cols}, common.Int2{X: 32, Y: 32})
	if err != nil {
		t.Fatal(err)
	}
	l := m.NewLayer(layer.TileLayer)
	if err := m.Root.Insert(m.Root.ID, -1, l); err != nil {
		t.Fatal(err)
	}
	reg := document.NewRegistry(64)
	doc := reg.Open(m, "")
	return &fixture{reg: reg, doc: doc, ref: reg.Ref(doc.ID()), m: m, layer: l, stack: doc.History}
}

func (f *fixture) push(t *testing.T, cmd command.Command, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
	f.stack.Push(cmd)
}

type snapshot struct {
	Extent tile.Extent
	Format tilemap.TileFormat
	Layers []string
	Tiles  map[uuid.UUID][][]tile.ID
}

func snap(m *tilemap.Map) snapshot {
	s := snapshot{Extent: m.Extent, Format: m.Format, Tiles: map[uuid.UUID][][]tile.ID{}}
	m.Root.Each(func(l *layer.Layer) bool {
		s.Layers = append(s.Layers, l.Name)
		if l.Tiles != nil {
			s.Tiles[l.ID] = l.Tiles.Rows()
		}
		return true
	})
	return s
}

func TestUndoRestoresPreviousState(t *testing.T) {
	cases := []struct {
		name string
		cmd  func(f *fixture) (command.Command, error)
	}{
		{"resize_shrink", func(f *fixture) (command.Command, error) {
			return NewResizeMap(f.ref, tile.Extent{Rows: 2, Cols: 2})
		}},
		{"resize_grow", func(f *fixture) (command.Command, error) {
			return NewResizeMap(f.ref, tile.Extent{Rows: 6, Cols: 7})
		}},
		{"add_row", func(f *fixture) (command.Command, error) { return NewAddRow(f.ref) }},
		{"add_column", func(f *fixture) (command.Command, error) { return NewAddColumn(f.ref) }},
		{"remove_row", func(f *fixture) (command.Command, error) { return NewRemoveRow(f.ref) }},
		{"remove_column", func(f *fixture) (command.Command, error) { return NewRemoveColumn(f.ref) }},
		{"fix_tiles", func(f *fixture) (command.Command, error) { return NewFixMapTiles(f.ref) }},
		{"encoding", func(f *fixture) (command.Command, error) {
			return NewSetTileFormatEncoding(f.ref, tilemap.EncodingPlain)
		}},
		{"bucket_fill", func(f *fixture) (command.Command, error) {
			return NewBucketFill(f.ref, f.layer.ID, tile.Pos{Row: 0, Col: 0}, 7)
		}},
		{"eraser", func(f *fixture) (command.Command, error) {
			return NewEraserSequence(f.ref, f.layer.ID, []tile.Pos{{Row: 1, Col: 1}, {Row: 2, Col: 2}})
		}},
		{"add_layer", func(f *fixture) (command.Command, error) {
			return NewAddLayer(f.ref, layer.GroupLayer, uuid.Nil)
		}},
		{"remove_layer", func(f *fixture) (command.Command, error) { return NewRemoveLayer(f.ref, f.layer.ID) }},
		{"duplicate_layer", func(f *fixture) (command.Command, error) { return NewDuplicateLayer(f.ref, f.layer.ID) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t, 4, 5)
			f.m.Format = tilemap.TileFormat{Encoding: tilemap.EncodingBase64, Compression: tilemap.CompressionZstd, ZlibLevel: -1, ZstdLevel: 3}
			f.layer.Tiles.Each(func(p tile.Pos, _ tile.ID) {
				f.layer.Tiles.Set(p, tile.ID(p.Row*10+p.Col))
			})
			before := snap(f.m)

			cmd, err := c.cmd(f)
			f.push(t, cmd, err)
			after := snap(f.m)
			if reflect.DeepEqual(before, after) {
				t.Fatalf("%s changed nothing", cmd.Name())
			}

			f.stack.Undo()
			if got := snap(f.m); !reflect.DeepEqual(before, got) {
				t.Fatalf("undo mismatch:\nwant %+v\ngot  %+v", before, got)
			}
			f.stack.Redo()
			if got := snap(f.m); !reflect.DeepEqual(after, got) {
				t.Fatalf("redo mismatch:\nwant %+v\ngot  %+v", after, got)
			}
		})
	}
}

func TestAddRowThenRemoveRowRoundTrip(t *testing.T) {
	f := newFixture(t, 3, 3)
	f.layer.Tiles.Set(tile.Pos{Row: 2, Col: 2}, 4)
	before := snap(f.m)

	add, err := NewAddRow(f.ref)
	f.push(t, add, err)
	f.layer.Tiles.Set(tile.Pos{Row: 3, Col: 0}, tile.Empty)
	remove, err := NewRemoveRow(f.ref)
	f.push(t, remove, err)

	if got := snap(f.m); !reflect.DeepEqual(before, got) {
		t.Fatalf("round trip mismatch: %+v vs %+v", before, got)
	}
}

func TestRemoveRowRejectsSingleRow(t *testing.T) {
	f := newFixture(t, 1, 3)
	if _, err := NewRemoveRow(f.ref); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := NewRemoveColumn(f.ref); err != nil {
		t.Fatalf("column removal should be allowed: %v", err)
	}
}

func TestCompressionLevelMerge(t *testing.T) {
	f := newFixture(t, 2, 2)
	f.m.Format.ZstdLevel = 8

	for _, level := range []int{5, 12, 18} {
		cmd, err := NewSetZstdCompressionLevel(f.ref, level)
		f.push(t, cmd, err)
	}
	if f.stack.Size() != 1 || f.m.Format.ZstdLevel != 18 {
		t.Fatalf("expected a single entry at 18, got %d entries at %d", f.stack.Size(), f.m.Format.ZstdLevel)
	}
	f.stack.Undo()
	if f.m.Format.ZstdLevel != 8 {
		t.Fatalf("expected undo to restore 8, got %d", f.m.Format.ZstdLevel)
	}
	f.stack.Redo()
	if f.m.Format.ZstdLevel != 18 {
		t.Fatalf("expected redo to apply 18, got %d", f.m.Format.ZstdLevel)
	}

	zlib, err := NewSetZlibCompressionLevel(f.ref, 9)
	f.push(t, zlib, err)
	if f.stack.Size() != 2 {
		t.Fatalf("different level commands must not merge")
	}
	if _, err := NewSetZstdCompressionLevel(f.ref, 20); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected out of range level to be rejected, got %v", err)
	}
	if _, err := NewSetZlibCompressionLevel(f.ref, -2); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected out of range level to be rejected, got %v", err)
	}
}

func TestPlainEncodingDisablesCompression(t *testing.T) {
	f := newFixture(t, 2, 2)
	if _, err := NewSetTileFormatCompression(f.ref, tilemap.CompressionZlib); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("plain encoding cannot be compressed, got %v", err)
	}

	enc, err := NewSetTileFormatEncoding(f.ref, tilemap.EncodingBase64)
	f.push(t, enc, err)
	comp, err := NewSetTileFormatCompression(f.ref, tilemap.CompressionZlib)
	f.push(t, comp, err)
	plain, err := NewSetTileFormatEncoding(f.ref, tilemap.EncodingPlain)
	f.push(t, plain, err)

	if f.m.Format.Compression != tilemap.CompressionNone {
		t.Fatalf("expected compression to be turned off")
	}
	f.stack.Undo()
	if f.m.Format.Encoding != tilemap.EncodingBase64 || f.m.Format.Compression != tilemap.CompressionZlib {
		t.Fatalf("undo should restore encoding and compression, got %+v", f.m.Format)
	}
}

func TestFixMapTilesExactness(t *testing.T) {
	f := newFixture(t, 10, 10)
	ts := tileset.New("terrain", "terrain.png", common.Int2{X: 128, Y: 128}, common.Int2{X: 32, Y: 32})
	attach, err := NewAttachTileset(f.ref, ts, false)
	f.push(t, attach, err)

	a, _ := f.m.Tilesets.Get(ts.ID)
	first, last := a.FirstTile, a.LastTile
	if first != 1 || last != 16 {
		t.Fatalf("unexpected range [%d, %d]", first, last)
	}

	cells := map[tile.Pos]tile.ID{
		{Row: 0, Col: 0}: first - 10,
		{Row: 0, Col: 1}: last + 1,
		{Row: 0, Col: 2}: last,
		{Row: 0, Col: 3}: first,
	}
	for p, id := range cells {
		f.layer.Tiles.Set(p, id)
	}

	fix, err := NewFixMapTiles(f.ref)
	f.push(t, fix, err)
	if fix.Count() != 2 {
		t.Fatalf("expected 2 repaired cells, got %d", fix.Count())
	}
	want := map[tile.Pos]tile.ID{
		{Row: 0, Col: 0}: tile.Empty,
		{Row: 0, Col: 1}: tile.Empty,
		{Row: 0, Col: 2}: last,
		{Row: 0, Col: 3}: first,
	}
	for p, id := range want {
		if got := f.layer.Tiles.At(p); got != id {
			t.Fatalf("cell %s: expected %d, got %d", p, id, got)
		}
	}

	f.stack.Undo()
	for p, id := range cells {
		if got := f.layer.Tiles.At(p); got != id {
			t.Fatalf("cell %s: expected %d after undo, got %d", p, id, got)
		}
	}
}

func TestFixMapTilesApplied(t *testing.T) {
	f := newFixture(t, 2, 2)
	f.layer.Tiles.Set(tile.Pos{Row: 1, Col: 1}, 99)

	invalid := f.m.FixTiles()
	cmd, err := NewFixMapTilesApplied(f.ref, invalid)
	if err != nil {
		t.Fatal(err)
	}
	f.stack.PushWithoutRedo(cmd)
	if f.layer.Tiles.At(tile.Pos{Row: 1, Col: 1}) != tile.Empty {
		t.Fatalf("tile should already be cleared")
	}
	f.stack.Undo()
	if f.layer.Tiles.At(tile.Pos{Row: 1, Col: 1}) != 99 {
		t.Fatalf("undo should restore the invalid tile")
	}
}

func TestDetachTilesetKeepsRange(t *testing.T) {
	f := newFixture(t, 2, 2)
	a := tileset.New("a", "a.png", common.Int2{X: 64, Y: 32}, common.Int2{X: 32, Y: 32})
	b := tileset.New("b", "b.png", common.Int2{X: 64, Y: 64}, common.Int2{X: 32, Y: 32})
	for _, ts := range []*tileset.Tileset{a, b} {
		cmd, err := NewAttachTileset(f.ref, ts, false)
		f.push(t, cmd, err)
	}

	detach, err := NewDetachTileset(f.ref, a.ID)
	f.push(t, detach, err)
	if f.m.Tilesets.IsValidTile(1) {
		t.Fatalf("detached range should be invalid")
	}
	if f.m.Tilesets.NextTileID() != 7 {
		t.Fatalf("detach must not lower the next tile id, got %d", f.m.Tilesets.NextTileID())
	}

	f.stack.Undo()
	got, ok := f.m.Tilesets.Get(a.ID)
	if !ok || got.FirstTile != 1 || got.LastTile != 2 {
		t.Fatalf("expected restored range [1, 2], got %+v", got)
	}
	if active, _ := f.m.Tilesets.Active(); active.Tileset.ID != a.ID {
		t.Fatalf("undo should reselect the detached tileset")
	}

	f.stack.Undo()
	f.stack.Undo()
	f.stack.Redo()
	if got, _ := f.m.Tilesets.Get(a.ID); got.FirstTile != 1 {
		t.Fatalf("redo of attach should reuse the original range")
	}
}

func TestLayerCommands(t *testing.T) {
	f := newFixture(t, 2, 2)
	add, err := NewAddLayer(f.ref, layer.ObjectLayer, uuid.Nil)
	f.push(t, add, err)
	objects := add.Layer()
	if f.m.ActiveLayer != objects.ID || objects.Name != "Object Layer 2" {
		t.Fatalf("unexpected new layer %q", objects.Name)
	}

	if _, err := NewMoveLayerDown(f.ref, objects.ID); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("last layer cannot move down, got %v", err)
	}
	up, err := NewMoveLayerUp(f.ref, objects.ID)
	f.push(t, up, err)
	if f.m.Root.Children[0] != objects {
		t.Fatalf("expected object layer first")
	}
	f.stack.Undo()
	if f.m.Root.Children[1] != objects {
		t.Fatalf("undo should move it back")
	}

	for _, opacity := range []float64{0.8, 0.5, 0.25} {
		cmd, err := NewSetLayerOpacity(f.ref, f.layer.ID, opacity)
		f.push(t, cmd, err)
	}
	if f.stack.Size() != 2 || f.layer.Opacity != 0.25 {
		t.Fatalf("opacity changes should merge, got %d entries", f.stack.Size())
	}
	f.stack.Undo()
	if f.layer.Opacity != 1 {
		t.Fatalf("expected opacity 1, got %g", f.layer.Opacity)
	}

	rename, err := NewRenameLayer(f.ref, f.layer.ID, "Ground")
	f.push(t, rename, err)
	hide, err := NewSetLayerVisible(f.ref, f.layer.ID, false)
	f.push(t, hide, err)
	if f.layer.Name != "Ground" || f.layer.Visible || f.stack.UndoText() != "Hide Layer" {
		t.Fatalf("unexpected layer state")
	}

	remove, err := NewRemoveLayer(f.ref, f.layer.ID)
	f.push(t, remove, err)
	if _, ok := f.m.Layer(f.layer.ID); ok {
		t.Fatalf("layer should be removed")
	}
	f.stack.Undo()
	if f.m.Root.Children[0] != f.layer {
		t.Fatalf("undo should reinsert at the original index")
	}
}

func TestObjectCommands(t *testing.T) {
	f := newFixture(t, 2, 2)
	addLayer, err := NewAddLayer(f.ref, layer.ObjectLayer, uuid.Nil)
	f.push(t, addLayer, err)
	objects := addLayer.Layer()

	if _, err := NewAddObject(f.ref, f.layer.ID, layer.RectObject, common.Vec2{}, common.Vec2{}); !errors.Is(err, command.ErrInvalidTarget) {
		t.Fatalf("tile layers cannot hold objects, got %v", err)
	}
	add, err := NewAddObject(f.ref, objects.ID, layer.RectObject, common.Vec2{X: 1, Y: 2}, common.Vec2{X: 3, Y: 4})
	f.push(t, add, err)
	obj := add.Object()

	move, err := NewMoveObject(f.ref, obj.ID, common.Vec2{X: 10, Y: 10})
	f.push(t, move, err)
	tag, err := NewSetObjectTag(f.ref, obj.ID, "spawn")
	f.push(t, tag, err)
	name, err := NewSetObjectName(f.ref, obj.ID, "Player")
	f.push(t, name, err)
	if obj.Pos.X != 10 || obj.Tag != "spawn" || obj.Name != "Player" {
		t.Fatalf("unexpected object state %+v", obj)
	}
	f.stack.Undo()
	f.stack.Undo()
	f.stack.Undo()
	if obj.Pos.X != 1 || obj.Tag != "" || obj.Name != "Object 1" {
		t.Fatalf("undo should restore the object, got %+v", obj)
	}

	remove, err := NewRemoveObject(f.ref, obj.ID)
	f.push(t, remove, err)
	if len(objects.Objects) != 0 {
		t.Fatalf("object should be removed")
	}
	f.stack.Undo()
	if len(objects.Objects) != 1 || objects.Objects[0] != obj {
		t.Fatalf("undo should restore the same object")
	}
}

func TestPropertyCommands(t *testing.T) {
	f := newFixture(t, 2, 2)
	ctx := f.layer.ID

	create, err := NewCreateProperty(f.ref, ctx, "speed", attribute.TypeFloat)
	f.push(t, create, err)
	for _, v := range []float64{1, 2, 3} {
		cmd, err := NewUpdateProperty(f.ref, ctx, "speed", attribute.Float(v))
		f.push(t, cmd, err)
	}
	if f.stack.Size() != 2 {
		t.Fatalf("updates should merge, got %d entries", f.stack.Size())
	}
	rename, err := NewRenameProperty(f.ref, ctx, "speed", "velocity")
	f.push(t, rename, err)
	retype, err := NewSetPropertyType(f.ref, ctx, "velocity", attribute.TypeBool)
	f.push(t, retype, err)

	if v, _ := f.layer.Properties.Get("velocity"); v.Type() != attribute.TypeBool {
		t.Fatalf("expected bool property, got %s", v.Type())
	}
	f.stack.Undo()
	if v, _ := f.layer.Properties.Get("velocity"); v != attribute.Float(3) {
		t.Fatalf("expected float 3 after undo, got %s", v)
	}

	remove, err := NewRemoveProperty(f.ref, ctx, "velocity")
	f.push(t, remove, err)
	if f.layer.Properties.Len() != 0 {
		t.Fatalf("property should be removed")
	}
	f.stack.Undo()
	if v, ok := f.layer.Properties.Get("velocity"); !ok || v != attribute.Float(3) {
		t.Fatalf("undo should restore the value")
	}

	if _, err := NewCreateProperty(f.ref, uuid.New(), "x", attribute.TypeInt); !errors.Is(err, command.ErrInvalidTarget) {
		t.Fatalf("unknown context should be rejected, got %v", err)
	}
}

func TestComponentCommands(t *testing.T) {
	f := newFixture(t, 2, 2)
	define, err := NewDefineComponent(f.ref, "Health")
	f.push(t, define, err)
	def := define.Definition()

	attr, err := NewAddComponentAttr(f.ref, def.ID, "max")
	f.push(t, attr, err)
	attach, err := NewAttachComponent(f.ref, f.layer.ID, def.ID)
	f.push(t, attach, err)
	comp, ok := f.layer.Component(def.ID)
	if !ok || !comp.Attributes.Has("max") {
		t.Fatalf("attached instance should carry definition attributes")
	}

	extra, err := NewAddComponentAttr(f.ref, def.ID, "regen")
	f.push(t, extra, err)
	if !comp.Attributes.Has("regen") {
		t.Fatalf("new attributes should propagate to instances")
	}

	for _, v := range []string{"1", "10", "100"} {
		cmd, err := NewUpdateAttachedComponent(f.ref, f.layer.ID, def.ID, "max", attribute.String(v))
		f.push(t, cmd, err)
	}
	if v, _ := comp.Attributes.Get("max"); v != attribute.String("100") {
		t.Fatalf("unexpected value %s", v)
	}
	before := f.stack.Size()
	reset, err := NewResetAttachedComponent(f.ref, f.layer.ID, def.ID)
	f.push(t, reset, err)
	if v, _ := comp.Attributes.Get("max"); v != attribute.String("") || f.stack.Size() != before+1 {
		t.Fatalf("reset should restore the defaults")
	}
	f.stack.Undo()

	undef, err := NewUndefComponent(f.ref, def.ID)
	f.push(t, undef, err)
	if f.m.Components.Len() != 0 || f.layer.HasComponent(def.ID) {
		t.Fatalf("undef should remove the definition and its instances")
	}
	f.stack.Undo()
	restored, ok := f.layer.Component(def.ID)
	if !ok || f.m.Components.Len() != 1 {
		t.Fatalf("undo should restore definition and instance")
	}
	if v, _ := restored.Attributes.Get("max"); v != attribute.String("100") {
		t.Fatalf("undo should restore instance values, got %s", v)
	}
}

func TestComponentUndoKeepsAttachOrder(t *testing.T) {
	f := newFixture(t, 2, 2)
	var defs []uuid.UUID
	for _, name := range []string{"A", "B"} {
		define, err := NewDefineComponent(f.ref, name)
		f.push(t, define, err)
		defs = append(defs, define.Definition().ID)
	}
	for _, def := range defs {
		attach, err := NewAttachComponent(f.ref, f.layer.ID, def)
		f.push(t, attach, err)
	}

	order := func() []uuid.UUID {
		var ids []uuid.UUID
		for _, comp := range f.layer.Components() {
			ids = append(ids, comp.Definition)
		}
		return ids
	}
	want := order()

	cases := []struct {
		name string
		cmd  func() (command.Command, error)
	}{
		{"detach", func() (command.Command, error) { return NewDetachComponent(f.ref, f.layer.ID, defs[0]) }},
		{"undef", func() (command.Command, error) { return NewUndefComponent(f.ref, defs[0]) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := tc.cmd()
			f.push(t, cmd, err)
			if f.layer.HasComponent(defs[0]) {
				t.Fatalf("component should be gone")
			}
			f.stack.Undo()
			if got := order(); !reflect.DeepEqual(got, want) {
				t.Fatalf("order after undo %v, want %v", got, want)
			}
			f.stack.Redo()
			f.stack.Undo()
			if got := order(); !reflect.DeepEqual(got, want) {
				t.Fatalf("order after redo and undo %v, want %v", got, want)
			}
		})
	}
}

func TestTileMetadataCommands(t *testing.T) {
	f := newFixture(t, 2, 2)
	ts := tileset.New("water", "water.png", common.Int2{X: 128, Y: 128}, common.Int2{X: 32, Y: 32})
	if _, err := f.m.Tilesets.Attach(ts, false); err != nil {
		t.Fatal(err)
	}

	first, err := NewAddAnimationFrame(f.ref, ts.ID, 2, 2, 100*time.Millisecond)
	f.push(t, first, err)
	second, err := NewAddAnimationFrame(f.ref, ts.ID, 2, 3, 150*time.Millisecond)
	f.push(t, second, err)
	meta, ok := ts.Tile(2)
	if !ok || !meta.IsAnimated() {
		t.Fatalf("expected an animated tile")
	}
	want := []tileset.Frame{{Tile: 2, Duration: 100 * time.Millisecond}, {Tile: 3, Duration: 150 * time.Millisecond}}
	if !reflect.DeepEqual(meta.Frames, want) {
		t.Fatalf("frames %v, want %v", meta.Frames, want)
	}
	id := meta.ID

	f.stack.Undo()
	f.stack.Undo()
	if _, ok := ts.Tile(2); ok {
		t.Fatalf("undo should drop metadata the command created")
	}
	f.stack.Redo()
	if meta, ok := ts.Tile(2); !ok || meta.ID != id {
		t.Fatalf("redo should reinstall the same tile context")
	}
	f.stack.Redo()

	prop, err := NewCreateProperty(f.ref, id, "speed", attribute.TypeInt)
	f.push(t, prop, err)
	if !meta.Properties.Has("speed") {
		t.Fatalf("tile context should accept properties")
	}

	remove, err := NewRemoveAnimationFrame(f.ref, ts.ID, 2, 0)
	f.push(t, remove, err)
	if !reflect.DeepEqual(meta.Frames, want[1:]) {
		t.Fatalf("frames after remove %v", meta.Frames)
	}
	f.stack.Undo()
	if !reflect.DeepEqual(meta.Frames, want) {
		t.Fatalf("undo should reinsert the frame in place, got %v", meta.Frames)
	}

	add, err := NewAddTileObject(f.ref, ts.ID, 2, layer.RectObject, common.Vec2{X: 1, Y: 1}, common.Vec2{X: 8, Y: 8})
	f.push(t, add, err)
	obj := add.Object()
	if _, ok := meta.Object(obj.ID); !ok {
		t.Fatalf("tile should own the new object")
	}
	if _, err := f.m.FindContext(obj.ID); err != nil {
		t.Fatalf("tile object context should resolve: %v", err)
	}
	other, err := NewAddTileObject(f.ref, ts.ID, 2, layer.PointObject, common.Vec2{}, common.Vec2{})
	f.push(t, other, err)

	drop, err := NewRemoveTileObject(f.ref, ts.ID, 2, obj.ID)
	f.push(t, drop, err)
	if _, ok := meta.Object(obj.ID); ok {
		t.Fatalf("object should be removed")
	}
	f.stack.Undo()
	if len(meta.Objects) != 2 || meta.Objects[0] != obj {
		t.Fatalf("undo should restore the object at its index")
	}

	bad := []struct {
		name string
		err  error
		want error
	}{
		{"tile_out_of_range", errOf(NewAddAnimationFrame(f.ref, ts.ID, 16, 0, time.Second)), ErrInvalidArgument},
		{"frame_out_of_range", errOf(NewAddAnimationFrame(f.ref, ts.ID, 0, 16, time.Second)), ErrInvalidArgument},
		{"zero_duration", errOf(NewAddAnimationFrame(f.ref, ts.ID, 0, 0, 0)), ErrInvalidArgument},
		{"unknown_tileset", errOf(NewAddTileObject(f.ref, uuid.New(), 0, layer.PointObject, common.Vec2{}, common.Vec2{})), command.ErrInvalidTarget},
		{"no_frame", errOf(NewRemoveAnimationFrame(f.ref, ts.ID, 2, 5)), command.ErrInvalidTarget},
		{"no_metadata", errOf(NewRemoveTileObject(f.ref, ts.ID, 7, obj.ID)), command.ErrInvalidTarget},
	}
	for _, c := range bad {
		t.Run(c.name, func(t *testing.T) {
			if !errors.Is(c.err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, c.err)
			}
		})
	}
}

// errOf drops the command and keeps the constructor error.
func errOf[T any](_ T, err error) error {
	return err
}

func TestClosedDocument(t *testing.T) {
	f := newFixture(t, 3, 3)
	add, err := NewAddRow(f.ref)
	f.push(t, add, err)

	if err := f.reg.Close(f.doc.ID()); err != nil {
		t.Fatal(err)
	}
	if _, err := NewAddRow(f.ref); !errors.Is(err, command.ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}

	add.Undo()
	add.Redo()
	if f.m.Extent.Rows != 4 {
		t.Fatalf("commands on a closed document must not touch the map")
	}
}
