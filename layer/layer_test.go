package layer

import (
	"errors"
	"testing"

	"github.com/milk9111/tactile/common"
	"github.com/milk9111/tactile/tile"
)

func buildTree(t *testing.T) (root, a, group, b, c *Layer) {
	t.Helper()
	root = NewRoot()
	a = NewTileLayer("a", tile.Extent{Rows: 2, Cols: 2})
	group = NewGroupLayer("g")
	b = NewTileLayer("b", tile.Extent{Rows: 2, Cols: 2})
	c = NewObjectLayer("c")

	for _, step := range []struct {
		parent *Layer
		child  *Layer
	}{
		{root, a},
		{root, group},
		{group, b},
		{root, c},
	} {
		if err := root.Insert(step.parent.ID, -1, step.child); err != nil {
			t.Fatalf("insert %s: %v", step.child.Name, err)
		}
	}
	return root, a, group, b, c
}

func TestTreeFindAndParent(t *testing.T) {
	root, _, group, b, _ := buildTree(t)

	if got, ok := root.Find(b.ID); !ok || got != b {
		t.Fatalf("expected to find nested layer")
	}
	parent, index, ok := root.Parent(b.ID)
	if !ok || parent != group || index != 0 {
		t.Fatalf("unexpected parent %v index %d", parent, index)
	}
	if root.Count() != 4 {
		t.Fatalf("expected 4 layers, got %d", root.Count())
	}
	if n := len(root.TileLayers()); n != 2 {
		t.Fatalf("expected 2 tile layers, got %d", n)
	}
}

func TestTreeInsertErrors(t *testing.T) {
	root, a, group, _, _ := buildTree(t)

	if err := root.Insert(a.ID, 0, NewGroupLayer("x")); !errors.Is(err, ErrNotGroup) {
		t.Fatalf("expected ErrNotGroup, got %v", err)
	}
	removed, _, _, err := root.Remove(group.ID)
	if err != nil {
		t.Fatal(err)
	}
	if err := removed.Insert(removed.ID, 0, removed); !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
}

func TestTreeRemoveTakesDescendants(t *testing.T) {
	root, _, group, b, _ := buildTree(t)

	removed, parent, index, err := root.Remove(group.ID)
	if err != nil {
		t.Fatal(err)
	}
	if removed != group || parent != root || index != 1 {
		t.Fatalf("unexpected remove result")
	}
	if _, ok := root.Find(b.ID); ok {
		t.Fatalf("descendant should be gone with its group")
	}
	if err := root.Insert(parent.ID, index, removed); err != nil {
		t.Fatal(err)
	}
	if _, i, _ := root.Parent(group.ID); i != 1 {
		t.Fatalf("expected group restored at index 1, got %d", i)
	}
}

func TestTreeMoveBoundaries(t *testing.T) {
	root, a, group, _, c := buildTree(t)

	if root.CanMoveUp(a.ID) || root.MoveUp(a.ID) {
		t.Fatalf("first layer cannot move up")
	}
	if root.CanMoveDown(c.ID) || root.MoveDown(c.ID) {
		t.Fatalf("last layer cannot move down")
	}
	if !root.MoveDown(a.ID) {
		t.Fatalf("expected move down")
	}
	if root.Children[0] != group || root.Children[1] != a {
		t.Fatalf("expected swapped siblings")
	}
	if !root.MoveUp(a.ID) || root.Children[0] != a {
		t.Fatalf("expected move up to restore order")
	}
}

func TestCloneUsesFreshIDs(t *testing.T) {
	_, _, group, b, _ := buildTree(t)
	b.Tiles.Set(tile.Pos{Row: 1, Col: 1}, 7)

	clone := group.Clone()
	if clone.ID == group.ID || clone.Children[0].ID == b.ID {
		t.Fatalf("clone should use fresh ids")
	}
	clone.Children[0].Tiles.Set(tile.Pos{Row: 1, Col: 1}, 9)
	if b.Tiles.At(tile.Pos{Row: 1, Col: 1}) != 7 {
		t.Fatalf("clone must not alias tile data")
	}
}

func TestObjects(t *testing.T) {
	root, a, _, _, c := buildTree(t)

	obj := NewObject(PointObject, "spawn", common.Vec2{X: 4, Y: 8}, common.Vec2{X: 10, Y: 10})
	if obj.Size != (common.Vec2{}) {
		t.Fatalf("point objects have no size")
	}
	if err := a.AddObject(obj, -1); err == nil {
		t.Fatalf("tile layers cannot hold objects")
	}
	if err := c.AddObject(obj, -1); err != nil {
		t.Fatal(err)
	}
	found, owner, ok := root.FindObject(obj.ID)
	if !ok || found != obj || owner != c {
		t.Fatalf("expected to find object in c")
	}
	if _, _, err := c.RemoveObject(obj.ID); err != nil {
		t.Fatal(err)
	}
	if _, _, err := c.RemoveObject(obj.ID); !errors.Is(err, ErrNoSuchObject) {
		t.Fatalf("expected ErrNoSuchObject, got %v", err)
	}
}
