package mapcmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/milk9111/tactile/common"
	"github.com/milk9111/tactile/document"
	"github.com/milk9111/tactile/layer"
)

// AddObject creates an object in an object layer.
type AddObject struct {
	target
	layerID uuid.UUID
	kind    layer.ObjectKind
	pos     common.Vec2
	size    common.Vec2

	object *layer.Object
}

func NewAddObject(doc document.Ref, layerID uuid.UUID, kind layer.ObjectKind, pos, size common.Vec2) (*AddObject, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	l, err := findLayer(m, layerID)
	if err != nil {
		return nil, err
	}
	if l.Kind != layer.ObjectLayer {
		return nil, invalidTarget("%s is not an object layer", l.Name)
	}
	return &AddObject{target: target{doc}, layerID: layerID, kind: kind, pos: pos, size: size}, nil
}

func (c *AddObject) Name() string { return "Add Object" }

// Object returns the object created by the first Redo.
func (c *AddObject) Object() *layer.Object {
	return c.object
}

func (c *AddObject) Redo() {
	m, l, ok := c.lookupLayer(c.Name(), c.layerID)
	if !ok {
		return
	}
	if c.object == nil {
		name := fmt.Sprintf("Object %d", m.NextObjectIndex)
		m.NextObjectIndex++
		c.object = layer.NewObject(c.kind, name, c.pos, c.size)
	}
	logErr(c.Name(), l.AddObject(c.object, -1))
}

func (c *AddObject) Undo() {
	_, l, ok := c.lookupLayer(c.Name(), c.layerID)
	if !ok || c.object == nil {
		return
	}
	_, _, err := l.RemoveObject(c.object.ID)
	logErr(c.Name(), err)
}

type RemoveObject struct {
	target
	id uuid.UUID

	removed *layer.Object
	owner   uuid.UUID
	index   int
}

func NewRemoveObject(doc document.Ref, id uuid.UUID) (*RemoveObject, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	if _, err := findObject(m, id); err != nil {
		return nil, err
	}
	return &RemoveObject{target: target{doc}, id: id}, nil
}

func (c *RemoveObject) Name() string { return "Remove Object" }

func (c *RemoveObject) Redo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	_, owner, ok := m.Root.FindObject(c.id)
	if !ok {
		logErr(c.Name(), fmt.Errorf("%w: %s", layer.ErrNoSuchObject, c.id))
		return
	}
	removed, index, err := owner.RemoveObject(c.id)
	if err != nil {
		logErr(c.Name(), err)
		return
	}
	c.removed, c.owner, c.index = removed, owner.ID, index
}

func (c *RemoveObject) Undo() {
	_, l, ok := c.lookupLayer(c.Name(), c.owner)
	if !ok || c.removed == nil {
		return
	}
	logErr(c.Name(), l.AddObject(c.removed, c.index))
	c.removed = nil
}

type MoveObject struct {
	target
	id  uuid.UUID
	pos common.Vec2
	old common.Vec2
}

func NewMoveObject(doc document.Ref, id uuid.UUID, pos common.Vec2) (*MoveObject, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	if _, err := findObject(m, id); err != nil {
		return nil, err
	}
	return &MoveObject{target: target{doc}, id: id, pos: pos}, nil
}

func (c *MoveObject) Name() string { return "Move Object" }

func (c *MoveObject) Redo() {
	obj, ok := c.lookupObject(c.Name(), c.id)
	if !ok {
		return
	}
	c.old = obj.Pos
	obj.Pos = c.pos
}

func (c *MoveObject) Undo() {
	if obj, ok := c.lookupObject(c.Name(), c.id); ok {
		obj.Pos = c.old
	}
}

type SetObjectTag struct {
	target
	id  uuid.UUID
	tag string
	old string
}

func NewSetObjectTag(doc document.Ref, id uuid.UUID, tag string) (*SetObjectTag, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	if _, err := findObject(m, id); err != nil {
		return nil, err
	}
	return &SetObjectTag{target: target{doc}, id: id, tag: tag}, nil
}

func (c *SetObjectTag) Name() string { return "Set Object Tag" }

func (c *SetObjectTag) Redo() {
	obj, ok := c.lookupObject(c.Name(), c.id)
	if !ok {
		return
	}
	c.old = obj.Tag
	obj.Tag = c.tag
}

func (c *SetObjectTag) Undo() {
	if obj, ok := c.lookupObject(c.Name(), c.id); ok {
		obj.Tag = c.old
	}
}

type SetObjectName struct {
	target
	id   uuid.UUID
	name string
	old  string
}

func NewSetObjectName(doc document.Ref, id uuid.UUID, name string) (*SetObjectName, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	if _, err := findObject(m, id); err != nil {
		return nil, err
	}
	return &SetObjectName{target: target{doc}, id: id, name: name}, nil
}

func (c *SetObjectName) Name() string { return "Set Object Name" }

func (c *SetObjectName) Redo() {
	obj, ok := c.lookupObject(c.Name(), c.id)
	if !ok {
		return
	}
	c.old = obj.Context.Name
	obj.Context.Name = c.name
}

func (c *SetObjectName) Undo() {
	if obj, ok := c.lookupObject(c.Name(), c.id); ok {
		obj.Context.Name = c.old
	}
}

type SetObjectVisible struct {
	target
	id      uuid.UUID
	visible bool
	old     bool
}

func NewSetObjectVisible(doc document.Ref, id uuid.UUID, visible bool) (*SetObjectVisible, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	if _, err := findObject(m, id); err != nil {
		return nil, err
	}
	return &SetObjectVisible{target: target{doc}, id: id, visible: visible}, nil
}

func (c *SetObjectVisible) Name() string {
	if c.visible {
		return "Show Object"
	}
	return "Hide Object"
}

func (c *SetObjectVisible) Redo() {
	obj, ok := c.lookupObject(c.Name(), c.id)
	if !ok {
		return
	}
	c.old = obj.Visible
	obj.Visible = c.visible
}

func (c *SetObjectVisible) Undo() {
	if obj, ok := c.lookupObject(c.Name(), c.id); ok {
		obj.Visible = c.old
	}
}
