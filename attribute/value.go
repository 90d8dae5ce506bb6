// Package attribute implements typed property values, property contexts and
// component definitions.
package attribute

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnknownType  = errors.New("attribute: unknown type")
	ErrTypeMismatch = errors.New("attribute: type mismatch")
)

// Type identifies the kind of value stored in a Value.
type Type uint8

const (
	TypeString Type = iota
	TypeInt
	TypeInt2
	TypeFloat
	TypeFloat2
	TypeBool
	TypePath
	TypeColor
	TypeObject
)

var typeNames = [...]string{
	TypeString: "string",
	TypeInt:    "int",
	TypeInt2:   "int2",
	TypeFloat:  "float",
	TypeFloat2: "float2",
	TypeBool:   "bool",
	TypePath:   "path",
	TypeColor:  "color",
	TypeObject: "object",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", t)
}

// ParseType maps a type name back to a Type.
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if strings.EqualFold(n, name) {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Hex formats the color as #RRGGBBAA.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ParseColor parses #RRGGBB or #RRGGBBAA.
func ParseColor(s string) (Color, error) {
	var c Color
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 6:
		c.A = 0xFF
		_, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B)
		return c, err
	case 8:
		_, err := fmt.Sscanf(s, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
		return c, err
	}
	return Color{}, fmt.Errorf("attribute: bad color %q", s)
}

// Value is a tagged variant over the supported attribute types. The zero
// Value is an empty string.
type Value struct {
	typ   Type
	str   string
	ints  [2]int64
	float [2]float64
	b     bool
	color Color
	ref   uuid.UUID
}

// Zero returns the default value of t.
func Zero(t Type) Value {
	v := Value{typ: t}
	if t == TypeColor {
		v.color = Color{A: 0xFF}
	}
	return v
}

func String(s string) Value { return Value{typ: TypeString, str: s} }
func Path(p string) Value { return Value{typ: TypePath, str: p} }
func Int(i int64) Value { return Value{typ: TypeInt, ints: [2]int64{i}} }
func Int2(x, y int64) Value { return Value{typ: TypeInt2, ints: [2]int64{x, y}} }
func Float(f float64) Value { return Value{typ: TypeFloat, float: [2]float64{f}} }
func Float2(x, y float64) Value { return Value{typ: TypeFloat2, float: [2]float64{x, y}} }
func Bool(b bool) Value { return Value{typ: TypeBool, b: b} }
func ColorValue(c Color) Value { return Value{typ: TypeColor, color: c} }
func Object(id uuid.UUID) Value { return Value{typ: TypeObject, ref: id} }

func (v Value) Type() Type { return v.typ }

func (v Value) AsString() (string, bool) {
	return v.str, v.typ == TypeString || v.typ == TypePath
}

func (v Value) AsInt() (int64, bool) {
	return v.ints[0], v.typ == TypeInt
}

func (v Value) AsInt2() (int64, int64, bool) {
	return v.ints[0], v.ints[1], v.typ == TypeInt2
}

func (v Value) AsFloat() (float64, bool) {
	return v.float[0], v.typ == TypeFloat
}

func (v Value) AsFloat2() (float64, float64, bool) {
	return v.float[0], v.float[1], v.typ == TypeFloat2
}

func (v Value) AsBool() (bool, bool) {
	return v.b, v.typ == TypeBool
}

func (v Value) AsColor() (Color, bool) {
	return v.color, v.typ == TypeColor
}

func (v Value) AsObject() (uuid.UUID, bool) {
	return v.ref, v.typ == TypeObject
}

func (v Value) String() string {
	switch v.typ {
	case TypeString, TypePath:
		return v.str
	case TypeInt:
		return fmt.Sprint(v.ints[0])
	case TypeInt2:
		return fmt.Sprintf("%d;%d", v.ints[0], v.ints[1])
	case TypeFloat:
		return fmt.Sprint(v.float[0])
	case TypeFloat2:
		return fmt.Sprintf("%g;%g", v.float[0], v.float[1])
	case TypeBool:
		return fmt.Sprint(v.b)
	case TypeColor:
		return v.color.Hex()
	case TypeObject:
		return v.ref.String()
	}
	return ""
}

// Parse decodes s, as produced by String, into a value of type t.
func Parse(t Type, s string) (Value, error) {
	switch t {
	case TypeString:
		return String(s), nil
	case TypePath:
		return Path(s), nil
	case TypeInt:
		var i int64
		if _, err := fmt.Sscan(s, &i); err != nil {
			return Value{}, fmt.Errorf("attribute: parse int %q: %w", s, err)
		}
		return Int(i), nil
	case TypeInt2:
		var x, y int64
		if _, err := fmt.Sscanf(s, "%d;%d", &x, &y); err != nil {
			return Value{}, fmt.Errorf("attribute: parse int2 %q: %w", s, err)
		}
		return Int2(x, y), nil
	case TypeFloat:
		var f float64
		if _, err := fmt.Sscan(s, &f); err != nil {
			return Value{}, fmt.Errorf("attribute: parse float %q: %w", s, err)
		}
		return Float(f), nil
	case TypeFloat2:
		var x, y float64
		if _, err := fmt.Sscanf(s, "%g;%g", &x, &y); err != nil {
			return Value{}, fmt.Errorf("attribute: parse float2 %q: %w", s, err)
		}
		return Float2(x, y), nil
	case TypeBool:
		var b bool
		if _, err := fmt.Sscan(s, &b); err != nil {
			return Value{}, fmt.Errorf("attribute: parse bool %q: %w", s, err)
		}
		return Bool(b), nil
	case TypeColor:
		c, err := ParseColor(s)
		if err != nil {
			return Value{}, err
		}
		return ColorValue(c), nil
	case TypeObject:
		if s == "" {
			return Zero(TypeObject), nil
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return Value{}, fmt.Errorf("attribute: parse object %q: %w", s, err)
		}
		return Object(id), nil
	}
	return Value{}, fmt.Errorf("%w: %d", ErrUnknownType, t)
}
