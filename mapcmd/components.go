package mapcmd

import (
	"github.com/google/uuid"
	"github.com/milk9111/tactile/attribute"
	"github.com/milk9111/tactile/document"
	"github.com/milk9111/tactile/tilemap"
)

// instances returns every attached instance of def keyed by context id.
func instances(m *tilemap.Map, def uuid.UUID) map[uuid.UUID]*attribute.Component {
	out := map[uuid.UUID]*attribute.Component{}
	for _, ctx := range m.Contexts() {
		if comp, ok := ctx.Component(def); ok {
			out[ctx.ID] = comp
		}
	}
	return out
}

type DefineComponent struct {
	target
	name string
	def  *attribute.ComponentDef
}

func NewDefineComponent(doc document.Ref, name string) (*DefineComponent, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	if _, ok := m.Components.ByName(name); ok || name == "" {
		return nil, invalidArgument("component name %q unavailable", name)
	}
	return &DefineComponent{target: target{doc}, name: name}, nil
}

func (c *DefineComponent) Name() string { return "Define Component" }

// Definition returns the definition created by the first Redo.
func (c *DefineComponent) Definition() *attribute.ComponentDef {
	return c.def
}

func (c *DefineComponent) Redo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	if c.def != nil {
		m.Components.Restore(m.Components.Len(), c.def)
		return
	}
	def, err := m.Components.Define(c.name)
	if err != nil {
		logErr(c.Name(), err)
		return
	}
	c.def = def
}

func (c *DefineComponent) Undo() {
	m, ok := c.resolve(c.Name())
	if !ok || c.def == nil {
		return
	}
	_, _, err := m.Components.Remove(c.def.ID)
	logErr(c.Name(), err)
}

// UndefComponent removes a definition and detaches it from every context.
type UndefComponent struct {
	target
	id uuid.UUID

	def      *attribute.ComponentDef
	index    int
	detached map[uuid.UUID]detachedComponent
}

// detachedComponent remembers where an instance sat in its context.
type detachedComponent struct {
	comp  *attribute.Component
	index int
}

func NewUndefComponent(doc document.Ref, id uuid.UUID) (*UndefComponent, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	if _, err := findComponent(m, id); err != nil {
		return nil, err
	}
	return &UndefComponent{target: target{doc}, id: id}, nil
}

func (c *UndefComponent) Name() string { return "Remove Component" }

func (c *UndefComponent) Redo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	def, index, err := m.Components.Remove(c.id)
	if err != nil {
		logErr(c.Name(), err)
		return
	}
	c.def, c.index = def, index
	c.detached = map[uuid.UUID]detachedComponent{}
	for _, ctx := range m.Contexts() {
		if comp, i, err := ctx.Detach(c.id); err == nil {
			c.detached[ctx.ID] = detachedComponent{comp: comp, index: i}
		}
	}
}

func (c *UndefComponent) Undo() {
	m, ok := c.resolve(c.Name())
	if !ok || c.def == nil {
		return
	}
	m.Components.Restore(c.index, c.def)
	for ctxID, d := range c.detached {
		ctx, err := m.FindContext(ctxID)
		if err != nil {
			logErr(c.Name(), err)
			continue
		}
		logErr(c.Name(), ctx.AttachAt(d.index, d.comp))
	}
	c.def, c.detached = nil, nil
}

type RenameComponent struct {
	target
	id   uuid.UUID
	name string
	old  string
}

func NewRenameComponent(doc document.Ref, id uuid.UUID, name string) (*RenameComponent, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	if _, err := findComponent(m, id); err != nil {
		return nil, err
	}
	if other, ok := m.Components.ByName(name); name == "" || (ok && other.ID != id) {
		return nil, invalidArgument("component name %q unavailable", name)
	}
	return &RenameComponent{target: target{doc}, id: id, name: name}, nil
}

func (c *RenameComponent) Name() string { return "Rename Component" }

func (c *RenameComponent) Redo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	def, ok := m.Components.Get(c.id)
	if !ok {
		return
	}
	c.old = def.Name
	logErr(c.Name(), m.Components.Rename(c.id, c.name))
}

func (c *RenameComponent) Undo() {
	if m, ok := c.resolve(c.Name()); ok {
		logErr(c.Name(), m.Components.Rename(c.id, c.old))
	}
}

// AddComponentAttr adds a string attribute to a definition and to every
// attached instance of it.
type AddComponentAttr struct {
	target
	def  uuid.UUID
	name string
}

func NewAddComponentAttr(doc document.Ref, def uuid.UUID, name string) (*AddComponentAttr, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	d, err := findComponent(m, def)
	if err != nil {
		return nil, err
	}
	if name == "" || d.Attributes.Has(name) {
		return nil, invalidArgument("attribute name %q unavailable", name)
	}
	return &AddComponentAttr{target: target{doc}, def: def, name: name}, nil
}

func (c *AddComponentAttr) Name() string { return "Add Component Attribute" }

func (c *AddComponentAttr) Redo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	def, ok := m.Components.Get(c.def)
	if !ok {
		return
	}
	value := attribute.Zero(attribute.TypeString)
	logErr(c.Name(), def.Attributes.Add(c.name, value))
	for _, comp := range instances(m, c.def) {
		logErr(c.Name(), comp.Attributes.Add(c.name, value))
	}
}

func (c *AddComponentAttr) Undo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	def, ok := m.Components.Get(c.def)
	if !ok {
		return
	}
	_, _, err := def.Attributes.Remove(c.name)
	logErr(c.Name(), err)
	for _, comp := range instances(m, c.def) {
		_, _, err := comp.Attributes.Remove(c.name)
		logErr(c.Name(), err)
	}
}

type removedAttr struct {
	value attribute.Value
	index int
}

// RemoveComponentAttr removes an attribute from a definition and every
// attached instance, remembering each instance value.
type RemoveComponentAttr struct {
	target
	def  uuid.UUID
	name string

	removed   removedAttr
	instances map[uuid.UUID]removedAttr
}

func NewRemoveComponentAttr(doc document.Ref, def uuid.UUID, name string) (*RemoveComponentAttr, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	d, err := findComponent(m, def)
	if err != nil {
		return nil, err
	}
	if !d.Attributes.Has(name) {
		return nil, invalidTarget("no attribute %q", name)
	}
	return &RemoveComponentAttr{target: target{doc}, def: def, name: name}, nil
}

func (c *RemoveComponentAttr) Name() string { return "Remove Component Attribute" }

func (c *RemoveComponentAttr) Redo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	def, ok := m.Components.Get(c.def)
	if !ok {
		return
	}
	value, index, err := def.Attributes.Remove(c.name)
	if err != nil {
		logErr(c.Name(), err)
		return
	}
	c.removed = removedAttr{value: value, index: index}
	c.instances = map[uuid.UUID]removedAttr{}
	for ctxID, comp := range instances(m, c.def) {
		if value, index, err := comp.Attributes.Remove(c.name); err == nil {
			c.instances[ctxID] = removedAttr{value: value, index: index}
		}
	}
}

func (c *RemoveComponentAttr) Undo() {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	def, ok := m.Components.Get(c.def)
	if !ok {
		return
	}
	logErr(c.Name(), def.Attributes.Insert(c.removed.index, c.name, c.removed.value))
	for ctxID, comp := range instances(m, c.def) {
		if r, ok := c.instances[ctxID]; ok {
			logErr(c.Name(), comp.Attributes.Insert(r.index, c.name, r.value))
		}
	}
	c.instances = nil
}

type RenameComponentAttr struct {
	target
	def      uuid.UUID
	from, to string
}

func NewRenameComponentAttr(doc document.Ref, def uuid.UUID, from, to string) (*RenameComponentAttr, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	d, err := findComponent(m, def)
	if err != nil {
		return nil, err
	}
	if !d.Attributes.Has(from) {
		return nil, invalidTarget("no attribute %q", from)
	}
	if to == "" || d.Attributes.Has(to) {
		return nil, invalidArgument("attribute name %q unavailable", to)
	}
	return &RenameComponentAttr{target: target{doc}, def: def, from: from, to: to}, nil
}

func (c *RenameComponentAttr) Name() string { return "Rename Component Attribute" }

func (c *RenameComponentAttr) rename(from, to string) {
	m, ok := c.resolve(c.Name())
	if !ok {
		return
	}
	def, ok := m.Components.Get(c.def)
	if !ok {
		return
	}
	logErr(c.Name(), def.Attributes.Rename(from, to))
	for _, comp := range instances(m, c.def) {
		logErr(c.Name(), comp.Attributes.Rename(from, to))
	}
}

func (c *RenameComponentAttr) Redo() { c.rename(c.from, c.to) }

func (c *RenameComponentAttr) Undo() { c.rename(c.to, c.from) }

// UpdateComponentAttr changes the default value of a definition attribute.
// Attached instances keep their values.
type UpdateComponentAttr struct {
	target
	def   uuid.UUID
	name  string
	value attribute.Value
	old   attribute.Value
}

func NewUpdateComponentAttr(doc document.Ref, def uuid.UUID, name string, value attribute.Value) (*UpdateComponentAttr, error) {
	m, err := open(doc)
	if err != nil {
		return nil, err
	}
	d, err := findComponent(m, def)
	if err != nil {
		return nil, err
	}
	if !d.Attributes.Has(name) {
		return nil, invalidTarget("no attribute %q", name)
	}
	return &UpdateComponentAttr{target: target{doc}, def: def, name: name, value: value}, nil
}

func (c *UpdateComponentAttr) Name() string { return "Update Component Attribute" }

func (c *UpdateComponentAttr) definition() (*attribute.ComponentDef, bool) {
	m, ok := c.resolve(c.Name())
	if !ok {
		return nil, false
	}
	return m.Components.Get(c.def)
}

func (c *UpdateComponentAttr) Redo() {
	def, ok := c.definition()
	if !ok {
		return
	}
	c.old, _ = def.Attributes.Get(c.name)
	logErr(c.Name(), def.Attributes.Set(c.name, c.value))
}

func (c *UpdateComponentAttr) Undo() {
	if def, ok := c.definition(); ok {
		logErr(c.Name(), def.Attributes.Set(c.name, c.old))
	}
}
