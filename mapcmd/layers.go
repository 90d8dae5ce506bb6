package mapcmd

import (
	"github.com/google/uuid"
	"github.com/milk9111/tactile/command"
	"github.com/milk9111/tactile/document"
	"github.com/milk9111/tactile/layer"
)

// AddLayer creates a layer under parent, or under the root when parent is
// not a group, and selects it.
type AddLayer struct {
	target
	kind   layer.Kind
	parent uuid.UUID

	layer      *layer.Layer
	prevActive uuid.UUID
}

func NewAddLayer(doc document.Ref, kind layer.Kind, parent uuid.UUID) (*AddLayer, error) {
	if _, err := open(doc); err != nil {
		return nil, err
	}
	switch kind {
	case layer.TileLayer, layer.ObjectLayer, layer.GroupLayer:
	default:
		return nil, invalidArgument("layer kind %s", kind)
	}
	return &AddLayer{target: target{doc}, kind: kind, parent: parent}, nil
}

func (c *AddLayer) Name() string { return "Add Layer" }

// Layer returns the layer created by the first Redo.
func (c *AddLayer) Layer() *layer.Layer {
	return c.layer
}

func (c *AddLayer) Redo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	if c.layer == nil {
		c.layer = m.NewLayer(c.kind)
	} else if c.layer.Kind == layer.TileLayer {
		c.layer.Tiles.Resize(m.Extent)
	}
	parent := m.ParentOrRoot(c.parent)
	if err := m.Root.Insert(parent.ID, -1, c.layer); err != nil {
		logErr(c.Name(), err)
		return
	}
	c.prevActive = m.ActiveLayer
	m.ActiveLayer = c.layer.ID
}

func (c *AddLayer) Undo() {
	m, ok := c.resolve(c.Name())
	if !ok || c.layer == nil {
		return
	}
	if _, _, _, err := m.Root.Remove(c.layer.ID); err != nil {
		logErr(c.Name(), err)
		return
	}
	m.ActiveLayer = c.prevActive
}

// RemoveLayer removes a layer with all its descendants.
type RemoveLayer struct {
	target
	id uuid.UUID

	removed    *layer.Layer
	parent     uuid.UUID
	index      int
	prevActive uuid.UUID
}

func NewRemoveLayer(doc document.Ref, id uuid.UUID) (*RemoveLayer, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	if _, err := findLayer(m, id); err != nil {
		return nil, err
	}
	return &RemoveLayer{target: target{doc}, id: id}, nil
}

func (c *RemoveLayer) Name() string { return "Remove Layer" }

func (c *RemoveLayer) Redo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	removed, parent, index, err := m.Root.Remove(c.id)
	if err != nil {
		logErr(c.Name(), err)
		return
	}
	c.removed, c.parent, c.index = removed, parent.ID, index
	c.prevActive = m.ActiveLayer
	if _, ok := removed.Find(m.ActiveLayer); ok {
		m.ActiveLayer = uuid.Nil
	}
}

func (c *RemoveLayer) Undo() {
	m, ok := c.resolve(c.Name())
	if !ok || c.removed == nil {
		return
	}
	// the extent may have changed while the layer was detached
	for _, l := range c.removed.TileLayers() {
		l.Tiles.Resize(m.Extent)
	}
	if err := m.Root.Insert(c.parent, c.index, c.removed); err != nil {
		logErr(c.Name(), err)
		return
	}
	m.ActiveLayer = c.prevActive
	c.removed = nil
}

type RenameLayer struct {
	target
	id   uuid.UUID
	name string
	old  string
}

func NewRenameLayer(doc document.Ref, id uuid.UUID, name string) (*RenameLayer, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	if _, err := findLayer(m, id); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, invalidArgument("empty layer name")
	}
	return &RenameLayer{target: target{doc}, id: id, name: name}, nil
}

func (c *RenameLayer) Name() string { return "Rename Layer" }

func (c *RenameLayer) Redo() {
	_, l, ok := c.lookupLayer(c.Name(), c.id)
	if !ok {
		return
	}
	c.old = l.Name
	l.Name = c.name
}

func (c *RenameLayer) Undo() {
	_, l, ok := c.lookupLayer(c.Name(), c.id)
	if !ok {
		return
	}
	l.Name = c.old
}

// MoveLayerUp swaps a layer with its previous sibling.
type MoveLayerUp struct {
	target
	id uuid.UUID
}

func NewMoveLayerUp(doc document.Ref, id uuid.UUID) (*MoveLayerUp, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	if _, err := findLayer(m, id); err != nil {
		return nil, err
	}
	if !m.Root.CanMoveUp(id) {
		return nil, invalidArgument("layer is already first")
	}
	return &MoveLayerUp{target: target{doc}, id: id}, nil
}

func (c *MoveLayerUp) Name() string { return "Move Layer Up" }

func (c *MoveLayerUp) Redo() {
	if m, ok := c.resolve(c.Name()); ok {
		m.Root.MoveUp(c.id)
	}
}

func (c *MoveLayerUp) Undo() {
	if m, ok := c.resolve(c.Name()); ok {
		m.Root.MoveDown(c.id)
	}
}

// MoveLayerDown swaps a layer with its next sibling.
type MoveLayerDown struct {
	target
	id uuid.UUID
}

func NewMoveLayerDown(doc document.Ref, id uuid.UUID) (*MoveLayerDown, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	if _, err := findLayer(m, id); err != nil {
		return nil, err
	}
	if !m.Root.CanMoveDown(id) {
		return nil, invalidArgument("layer is already last")
	}
	return &MoveLayerDown{target: target{doc}, id: id}, nil
}

func (c *MoveLayerDown) Name() string { return "Move Layer Down" }

func (c *MoveLayerDown) Redo() {
	if m, ok := c.resolve(c.Name()); ok {
		m.Root.MoveDown(c.id)
	}
}

func (c *MoveLayerDown) Undo() {
	if m, ok := c.resolve(c.Name()); ok {
		m.Root.MoveUp(c.id)
	}
}

// DuplicateLayer inserts a deep copy of a layer right after it.
type DuplicateLayer struct {
	target
	id  uuid.UUID
	dup *layer.Layer
}

func NewDuplicateLayer(doc document.Ref, id uuid.UUID) (*DuplicateLayer, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	if _, err := findLayer(m, id); err != nil {
		return nil, err
	}
	return &DuplicateLayer{target: target{doc}, id: id}, nil
}

func (c *DuplicateLayer) Name() string { return "Duplicate Layer" }

// Layer returns the copy created by the first Redo.
func (c *DuplicateLayer) Layer() *layer.Layer {
	return c.dup
}

func (c *DuplicateLayer) Redo() {
	m, src, ok := c.lookupLayer(c.Name(), c.id)
	if !ok {
		return
	}
	parent, index, _ := m.Root.Parent(c.id)
	if c.dup == nil {
		c.dup = src.Clone()
		c.dup.Name = src.Name + " (Copy)"
	}
	if err := m.Root.Insert(parent.ID, index+1, c.dup); err != nil {
		logErr(c.Name(), err)
	}
}

func (c *DuplicateLayer) Undo() {
	m, ok := c.resolve(c.Name())
	if !ok || c.dup == nil {
		return
	}
	if _, _, _, err := m.Root.Remove(c.dup.ID); err != nil {
		logErr(c.Name(), err)
	}
}

// SetLayerOpacity merges with following opacity changes of the same layer.
type SetLayerOpacity struct {
	target
	id      uuid.UUID
	opacity float64
	old     float64
}

func NewSetLayerOpacity(doc document.Ref, id uuid.UUID, opacity float64) (*SetLayerOpacity, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	if _, err := findLayer(m, id); err != nil {
		return nil, err
	}
	if opacity < 0 || opacity > 1 {
		return nil, invalidArgument("opacity %g not in [0, 1]", opacity)
	}
	return &SetLayerOpacity{target: target{doc}, id: id, opacity: opacity}, nil
}

func (c *SetLayerOpacity) Name() string { return "Set Layer Opacity" }

func (c *SetLayerOpacity) Redo() {
	_, l, ok := c.lookupLayer(c.Name(), c.id)
	if !ok {
		return
	}
	c.old = l.Opacity
	l.Opacity = c.opacity
}

func (c *SetLayerOpacity) Undo() {
	_, l, ok := c.lookupLayer(c.Name(), c.id)
	if !ok {
		return
	}
	l.Opacity = c.old
}

func (c *SetLayerOpacity) MergeWith(other command.Command) bool {
	o, ok := other.(*SetLayerOpacity)
	if !ok || o.doc != c.doc || o.id != c.id {
		return false
	}
	c.opacity = o.opacity
	return true
}

type SetLayerVisible struct {
	target
	id      uuid.UUID
	visible bool
	old     bool
}

func NewSetLayerVisible(doc document.Ref, id uuid.UUID, visible bool) (*SetLayerVisible, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	if _, err := findLayer(m, id); err != nil {
		return nil, err
	}
	return &SetLayerVisible{target: target{doc}, id: id, visible: visible}, nil
}

func (c *SetLayerVisible) Name() string {
	if c.visible {
		return "Show Layer"
	}
	return "Hide Layer"
}

func (c *SetLayerVisible) Redo() {
	_, l, ok := c.lookupLayer(c.Name(), c.id)
	if !ok {
		return
	}
	c.old = l.Visible
	l.Visible = c.visible
}

func (c *SetLayerVisible) Undo() {
	_, l, ok := c.lookupLayer(c.Name(), c.id)
	if !ok {
		return
	}
	l.Visible = c.old
}
