package attribute

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/uuid"
)

func TestValueStringRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		v    Value
	}{
		{"string", String("hello")},
		{"int", Int(-42)},
		{"int2", Int2(3, 4)},
		{"float", Float(1.5)},
		{"float2", Float2(0.25, -2)},
		{"bool", Bool(true)},
		{"path", Path("tiles/terrain.png")},
		{"color", ColorValue(Color{R: 0x12, G: 0x34, B: 0x56, A: 0x78})},
		{"object", Object(uuid.MustParse("9b2f6c9e-5d7a-4a55-8a4e-0d3c9e1f2a10"))},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Parse(c.v.Type(), c.v.String())
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if got != c.v {
				t.Fatalf("expected %v, got %v", c.v, got)
			}
		})
	}
}

func TestZeroColorIsOpaque(t *testing.T) {
	c, ok := Zero(TypeColor).AsColor()
	if !ok || c.A != 0xFF {
		t.Fatalf("expected opaque black, got %v ok=%v", c, ok)
	}
}

func TestParseType(t *testing.T) {
	if typ, err := ParseType("Float2"); err != nil || typ != TypeFloat2 {
		t.Fatalf("expected float2, got %v err=%v", typ, err)
	}
	if _, err := ParseType("matrix"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestPropertiesOrderAndErrors(t *testing.T) {
	var p Properties
	if err := p.Add("a", Int(1)); err != nil {
		t.Fatal(err)
	}
	if err := p.Add("b", Int(2)); err != nil {
		t.Fatal(err)
	}
	if err := p.Add("a", Int(3)); !errors.Is(err, ErrDuplicateProperty) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if err := p.Rename("a", "b"); !errors.Is(err, ErrDuplicateProperty) {
		t.Fatalf("expected duplicate error on rename, got %v", err)
	}

	v, idx, err := p.Remove("a")
	if err != nil || idx != 0 || v != Int(1) {
		t.Fatalf("unexpected remove result %v %d %v", v, idx, err)
	}
	if err := p.Insert(idx, "a", v); err != nil {
		t.Fatal(err)
	}
	all := p.All()
	if len(all) != 2 || all[0].Name != "a" || all[1].Name != "b" {
		t.Fatalf("expected original order restored, got %v", all)
	}
}

func TestContextComponents(t *testing.T) {
	var index ComponentIndex
	def, err := index.Define("physics")
	if err != nil {
		t.Fatal(err)
	}
	_ = def.Attributes.Add("mass", Float(1))

	ctx := NewContext("map")
	if err := ctx.Attach(def.Instantiate()); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Attach(def.Instantiate()); !errors.Is(err, ErrComponentAttached) {
		t.Fatalf("expected attached error, got %v", err)
	}

	comp, ok := ctx.Component(def.ID)
	if !ok {
		t.Fatalf("expected component")
	}
	_ = comp.Attributes.Set("mass", Float(2))
	if v, _ := def.Attributes.Get("mass"); v != Float(1) {
		t.Fatalf("instance must not alias the definition defaults")
	}

	clone := ctx.Clone(uuid.New())
	c2, _ := clone.Component(def.ID)
	_ = c2.Attributes.Set("mass", Float(5))
	if v, _ := comp.Attributes.Get("mass"); v != Float(2) {
		t.Fatalf("clone must not alias the original instance")
	}

	if _, _, err := ctx.Detach(def.ID); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ctx.Detach(def.ID); !errors.Is(err, ErrComponentNotAttached) {
		t.Fatalf("expected not attached error, got %v", err)
	}
}

func TestContextAttachAt(t *testing.T) {
	var index ComponentIndex
	a, _ := index.Define("a")
	b, _ := index.Define("b")
	c, _ := index.Define("c")

	ctx := NewContext("layer")
	for _, def := range []*ComponentDef{a, b, c} {
		if err := ctx.Attach(def.Instantiate()); err != nil {
			t.Fatal(err)
		}
	}

	order := func() []uuid.UUID {
		var ids []uuid.UUID
		for _, comp := range ctx.Components() {
			ids = append(ids, comp.Definition)
		}
		return ids
	}

	comp, i, err := ctx.Detach(b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if i != 1 {
		t.Fatalf("expected index 1, got %d", i)
	}
	if err := ctx.AttachAt(i, comp); err != nil {
		t.Fatal(err)
	}
	if got, want := order(), []uuid.UUID{a.ID, b.ID, c.ID}; !slices.Equal(got, want) {
		t.Fatalf("order %v, want %v", got, want)
	}

	if err := ctx.AttachAt(0, comp); !errors.Is(err, ErrComponentAttached) {
		t.Fatalf("expected attached error, got %v", err)
	}

	comp, _, _ = ctx.Detach(a.ID)
	if err := ctx.AttachAt(10, comp); err != nil {
		t.Fatal(err)
	}
	if got, want := order(), []uuid.UUID{b.ID, c.ID, a.ID}; !slices.Equal(got, want) {
		t.Fatalf("out of range index must append, got %v", got)
	}
}

func TestComponentIndexRename(t *testing.T) {
	var index ComponentIndex
	a, _ := index.Define("a")
	_, _ = index.Define("b")
	if err := index.Rename(a.ID, "b"); !errors.Is(err, ErrDuplicateComponent) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if err := index.Rename(a.ID, "c"); err != nil {
		t.Fatal(err)
	}
	def, idx, err := index.Remove(a.ID)
	if err != nil || idx != 0 {
		t.Fatalf("unexpected remove %v %d", err, idx)
	}
	index.Restore(idx, def)
	if all := index.All(); all[0] != def {
		t.Fatalf("expected definition restored at index 0")
	}
}
