package attribute

import (
	"errors"
	"fmt"
)

var (
	ErrNoSuchProperty    = errors.New("attribute: no such property")
	ErrDuplicateProperty = errors.New("attribute: property already exists")
)

// Property is a named value.
type Property struct {
	Name  string
	Value Value
}

// Properties is an insertion-ordered set of uniquely named values.
type Properties struct {
	items []Property
}

func (p *Properties) index(name string) int {
	if p == nil {
		return -1
	}
	for i := range p.items {
		if p.items[i].Name == name {
			return i
		}
	}
	return -1
}

func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.items)
}

func (p *Properties) Has(name string) bool {
	return p.index(name) >= 0
}

func (p *Properties) Get(name string) (Value, bool) {
	i := p.index(name)
	if i < 0 {
		return Value{}, false
	}
	return p.items[i].Value, true
}

// Add appends a new property.
func (p *Properties) Add(name string, v Value) error {
	if p.Has(name) {
		return fmt.Errorf("%w: %q", ErrDuplicateProperty, name)
	}
	p.items = append(p.items, Property{Name: name, Value: v})
	return nil
}

// Insert places a new property at index, clamped to the valid range.
func (p *Properties) Insert(index int, name string, v Value) error {
	if p.Has(name) {
		return fmt.Errorf("%w: %q", ErrDuplicateProperty, name)
	}
	index = max(0, min(index, len(p.items)))
	p.items = append(p.items, Property{})
	copy(p.items[index+1:], p.items[index:])
	p.items[index] = Property{Name: name, Value: v}
	return nil
}

// Set overwrites an existing property.
func (p *Properties) Set(name string, v Value) error {
	i := p.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNoSuchProperty, name)
	}
	p.items[i].Value = v
	return nil
}

// Remove deletes a property and returns its value and former index.
func (p *Properties) Remove(name string) (Value, int, error) {
	i := p.index(name)
	if i < 0 {
		return Value{}, -1, fmt.Errorf("%w: %q", ErrNoSuchProperty, name)
	}
	v := p.items[i].Value
	p.items = append(p.items[:i], p.items[i+1:]...)
	return v, i, nil
}

// Rename changes the name of a property, keeping its position.
func (p *Properties) Rename(from, to string) error {
	i := p.index(from)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNoSuchProperty, from)
	}
	if from != to && p.Has(to) {
		return fmt.Errorf("%w: %q", ErrDuplicateProperty, to)
	}
	p.items[i].Name = to
	return nil
}

// All returns a copy of the properties in order.
func (p *Properties) All() []Property {
	if p == nil {
		return nil
	}
	return append([]Property(nil), p.items...)
}

// Clone returns a deep copy.
func (p Properties) Clone() Properties {
	return Properties{items: append([]Property(nil), p.items...)}
}
