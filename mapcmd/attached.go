package mapcmd

import (
	"github.com/google/uuid"
	"github.com/milk9111/tactile/attribute"
	"github.com/milk9111/tactile/command"
	"github.com/milk9111/tactile/document"
)

// AttachComponent attaches a fresh instance of a definition to a context.
type AttachComponent struct {
	target
	ctx  uuid.UUID
	def  uuid.UUID
	comp *attribute.Component
}

func NewAttachComponent(doc document.Ref, ctx, def uuid.UUID) (*AttachComponent, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	c, err := findContext(m, ctx)
	if err != nil {
		return nil, err
	}
	if _, err := findComponent(m, def); err != nil {
		return nil, err
	}
	if c.HasComponent(def) {
		return nil, invalidArgument("component already attached to %s", c.Name)
	}
	return &AttachComponent{target: target{doc}, ctx: ctx, def: def}, nil
}

func (c *AttachComponent) Name() string { return "Attach Component" }

func (c *AttachComponent) Redo() {
	m, ctx, ok := c.lookupContext(c.Name(), c.ctx)
	if !ok {
		return
	}
	if c.comp == nil {
		def, ok := m.Components.Get(c.def)
		if !ok {
			return
		}
		c.comp = def.Instantiate()
	}
	logErr(c.Name(), ctx.Attach(c.comp))
}

func (c *AttachComponent) Undo() {
	if _, ctx, ok := c.lookupContext(c.Name(), c.ctx); ok {
		_, _, err := ctx.Detach(c.def)
		logErr(c.Name(), err)
	}
}

type DetachComponent struct {
	target
	ctx   uuid.UUID
	def   uuid.UUID
	comp  *attribute.Component
	index int
}

func NewDetachComponent(doc document.Ref, ctx, def uuid.UUID) (*DetachComponent, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	c, err := findContext(m, ctx)
	if err != nil {
		return nil, err
	}
	if !c.HasComponent(def) {
		return nil, invalidTarget("component not attached to %s", c.Name)
	}
	return &DetachComponent{target: target{doc}, ctx: ctx, def: def}, nil
}

func (c *DetachComponent) Name() string { return "Detach Component" }

func (c *DetachComponent) Redo() {
	_, ctx, ok := c.lookupContext(c.Name(), c.ctx)
	if !ok {
		return
	}
	comp, index, err := ctx.Detach(c.def)
	if err != nil {
		logErr(c.Name(), err)
		return
	}
	c.comp, c.index = comp, index
}

func (c *DetachComponent) Undo() {
	_, ctx, ok := c.lookupContext(c.Name(), c.ctx)
	if !ok || c.comp == nil {
		return
	}
	logErr(c.Name(), ctx.AttachAt(c.index, c.comp))
	c.comp = nil
}

// attachedTarget resolves an attached component instance.
type attachedTarget struct {
	target
	ctx uuid.UUID
	def uuid.UUID
}

func (t attachedTarget) component(op string) (*attribute.Component, bool) {
	_, ctx, ok := t.lookupContext(op, t.ctx)
	if !ok {
		return nil, false
	}
	comp, ok := ctx.Component(t.def)
	if !ok {
		logErr(op, attribute.ErrComponentNotAttached)
	}
	return comp, ok
}

func newAttachedTarget(doc document.Ref, ctx, def uuid.UUID) (attachedTarget, *attribute.Component, error) {
	m, err := open(doc)
	if err != nil {
		return attachedTarget{}, nil, err
	}
	c, err := findContext(m, ctx)
	if err != nil {
		return attachedTarget{}, nil, err
	}
	comp, ok := c.Component(def)
	if !ok {
		return attachedTarget{}, nil, invalidTarget("component not attached to %s", c.Name)
	}
	return attachedTarget{target: target{doc}, ctx: ctx, def: def}, comp, nil
}

// UpdateAttachedComponent sets one attribute of an attached instance. It
// merges with following updates of the same attribute.
type UpdateAttachedComponent struct {
	attachedTarget
	name  string
	value attribute.Value
	old   attribute.Value
}

func NewUpdateAttachedComponent(doc document.Ref, ctx, def uuid.UUID, name string, value attribute.Value) (*UpdateAttachedComponent, error) {
	t, comp, err := newAttachedTarget(doc, ctx, def)
	if err != nil {
		return nil, err
	}
	if !comp.Attributes.Has(name) {
		return nil, invalidTarget("no attribute %q", name)
	}
	return &UpdateAttachedComponent{attachedTarget: t, name: name, value: value}, nil
}

func (c *UpdateAttachedComponent) Name() string { return "Update Component" }

func (c *UpdateAttachedComponent) Redo() {
	comp, ok := c.component(c.Name())
	if !ok {
		return
	}
	c.old, _ = comp.Attributes.Get(c.name)
	logErr(c.Name(), comp.Attributes.Set(c.name, c.value))
}

func (c *UpdateAttachedComponent) Undo() {
	if comp, ok := c.component(c.Name()); ok {
		logErr(c.Name(), comp.Attributes.Set(c.name, c.old))
	}
}

func (c *UpdateAttachedComponent) MergeWith(other command.Command) bool {
	o, ok := other.(*UpdateAttachedComponent)
	if !ok || o.attachedTarget != c.attachedTarget || o.name != c.name {
		return false
	}
	c.value = o.value
	return true
}

// ResetAttachedComponent restores the definition defaults on an instance.
type ResetAttachedComponent struct {
	attachedTarget
	old attribute.Properties
}

func NewResetAttachedComponent(doc document.Ref, ctx, def uuid.UUID) (*ResetAttachedComponent, error) {
	t, _, err := newAttachedTarget(doc, ctx, def)
	if err != nil {
		return nil, err
	}
	return &ResetAttachedComponent{attachedTarget: t}, nil
}

func (c *ResetAttachedComponent) Name() string { return "Reset Component" }

func (c *ResetAttachedComponent) Redo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	def, ok := m.Components.Get(c.def)
	if !ok {
		return
	}
	comp, ok := c.component(c.Name())
	if !ok {
		return
	}
	c.old = comp.Attributes.Clone()
	comp.Attributes = def.Attributes.Clone()
}

func (c *ResetAttachedComponent) Undo() {
	if comp, ok := c.component(c.Name()); ok {
		comp.Attributes = c.old.Clone()
	}
}
