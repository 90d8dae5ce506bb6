package mapcmd

import (
	"github.com/google/uuid"
	"github.com/milk9111/tactile/attribute"
	"github.com/milk9111/tactile/command"
	"github.com/milk9111/tactile/document"
)

// CreateProperty adds a property with the zero value of its type.
type CreateProperty struct {
	target
	ctx  uuid.UUID
	name string
	typ  attribute.Type
}

func NewCreateProperty(doc document.Ref, ctx uuid.UUID, name string, typ attribute.Type) (*CreateProperty, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	c, err := findContext(m, ctx)
	if err != nil {
		return nil, err
	}
	if name == "" || c.Properties.Has(name) {
		return nil, invalidArgument("property name %q unavailable", name)
	}
	return &CreateProperty{target: target{doc}, ctx: ctx, name: name, typ: typ}, nil
}

func (c *CreateProperty) Name() string { return "Add Property" }

func (c *CreateProperty) Redo() {
	if _, ctx, ok := c.lookupContext(c.Name(), c.ctx); ok {
		logErr(c.Name(), ctx.Properties.Add(c.name, attribute.Zero(c.typ)))
	}
}

func (c *CreateProperty) Undo() {
	if _, ctx, ok := c.lookupContext(c.Name(), c.ctx); ok {
		_, _, err := ctx.Properties.Remove(c.name)
		logErr(c.Name(), err)
	}
}

type RemoveProperty struct {
	target
	ctx  uuid.UUID
	name string

	value attribute.Value
	index int
}

func NewRemoveProperty(doc document.Ref, ctx uuid.UUID, name string) (*RemoveProperty, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	c, err := findContext(m, ctx)
	if err != nil {
		return nil, err
	}
	if !c.Properties.Has(name) {
		return nil, invalidTarget("no property %q", name)
	}
	return &RemoveProperty{target: target{doc}, ctx: ctx, name: name}, nil
}

func (c *RemoveProperty) Name() string { return "Remove Property" }

func (c *RemoveProperty) Redo() {
	_, ctx, ok := c.lookupContext(c.Name(), c.ctx)
	if !ok {
		return
	}
	value, index, err := ctx.Properties.Remove(c.name)
	if err != nil {
		logErr(c.Name(), err)
		return
	}
	c.value, c.index = value, index
}

func (c *RemoveProperty) Undo() {
	if _, ctx, ok := c.lookupContext(c.Name(), c.ctx); ok {
		logErr(c.Name(), ctx.Properties.Insert(c.index, c.name, c.value))
	}
}

type RenameProperty struct {
	target
	ctx      uuid.UUID
	from, to string
}

func NewRenameProperty(doc document.Ref, ctx uuid.UUID, from, to string) (*RenameProperty, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	c, err := findContext(m, ctx)
	if err != nil {
		return nil, err
	}
	if !c.Properties.Has(from) {
		return nil, invalidTarget("no property %q", from)
	}
	if to == "" || c.Properties.Has(to) {
		return nil, invalidArgument("property name %q unavailable", to)
	}
	return &RenameProperty{target: target{doc}, ctx: ctx, from: from, to: to}, nil
}

func (c *RenameProperty) Name() string { return "Rename Property" }

func (c *RenameProperty) Redo() {
	if _, ctx, ok := c.lookupContext(c.Name(), c.ctx); ok {
		logErr(c.Name(), ctx.Properties.Rename(c.from, c.to))
	}
}

func (c *RenameProperty) Undo() {
	if _, ctx, ok := c.lookupContext(c.Name(), c.ctx); ok {
		logErr(c.Name(), ctx.Properties.Rename(c.to, c.from))
	}
}

// UpdateProperty merges with following updates of the same property.
type UpdateProperty struct {
	target
	ctx   uuid.UUID
	name  string
	value attribute.Value
	old   attribute.Value
}

func NewUpdateProperty(doc document.Ref, ctx uuid.UUID, name string, value attribute.Value) (*UpdateProperty, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	c, err := findContext(m, ctx)
	if err != nil {
		return nil, err
	}
	if !c.Properties.Has(name) {
		return nil, invalidTarget("no property %q", name)
	}
	return &UpdateProperty{target: target{doc}, ctx: ctx, name: name, value: value}, nil
}

func (c *UpdateProperty) Name() string { return "Update Property" }

func (c *UpdateProperty) Redo() {
	_, ctx, ok := c.lookupContext(c.Name(), c.ctx)
	if !ok {
		return
	}
	c.old, _ = ctx.Properties.Get(c.name)
	logErr(c.Name(), ctx.Properties.Set(c.name, c.value))
}

func (c *UpdateProperty) Undo() {
	if _, ctx, ok := c.lookupContext(c.Name(), c.ctx); ok {
		logErr(c.Name(), ctx.Properties.Set(c.name, c.old))
	}
}

func (c *UpdateProperty) MergeWith(other command.Command) bool {
	o, ok := other.(*UpdateProperty)
	if !ok || o.doc != c.doc || o.ctx != c.ctx || o.name != c.name {
		return false
	}
	c.value = o.value
	return true
}

// SetPropertyType replaces a property value with the zero value of another
// type.
type SetPropertyType struct {
	target
	ctx  uuid.UUID
	name string
	typ  attribute.Type
	old  attribute.Value
}

func NewSetPropertyType(doc document.Ref, ctx uuid.UUID, name string, typ attribute.Type) (*SetPropertyType, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	c, err := findContext(m, ctx)
	if err != nil {
		return nil, err
	}
	if !c.Properties.Has(name) {
		return nil, invalidTarget("no property %q", name)
	}
	return &SetPropertyType{target: target{doc}, ctx: ctx, name: name, typ: typ}, nil
}

func (c *SetPropertyType) Name() string { return "Change Property Type" }

func (c *SetPropertyType) Redo() {
	_, ctx, ok := c.lookupContext(c.Name(), c.ctx)
	if !ok {
		return
	}
	c.old, _ = ctx.Properties.Get(c.name)
	logErr(c.Name(), ctx.Properties.Set(c.name, attribute.Zero(c.typ)))
}

func (c *SetPropertyType) Undo() {
	if _, ctx, ok := c.lookupContext(c.Name(), c.ctx); ok {
		logErr(c.Name(), ctx.Properties.Set(c.name, c.old))
	}
}
