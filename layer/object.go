package layer

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/milk9111/tactile/attribute"
	"github.com/milk9111/tactile/common"
)

// ObjectKind is the shape of an object.
type ObjectKind uint8

const (
	PointObject ObjectKind = iota
	RectObject
	EllipseObject
)

func (k ObjectKind) String() string {
	switch k {
	case PointObject:
		return "point"
	case RectObject:
		return "rect"
	case EllipseObject:
		return "ellipse"
	}
	return fmt.Sprintf("ObjectKind(%d)", k)
}

// Object is an annotation owned by an object layer. Size is unused for points.
type Object struct {
	attribute.Context

	Kind    ObjectKind
	Pos     common.Vec2
	Size    common.Vec2
	Tag     string
	Visible bool
}

// NewObject creates a visible object with a fresh id.
func NewObject(kind ObjectKind, name string, pos, size common.Vec2) *Object {
	if kind == PointObject {
		size = common.Vec2{}
	}
	return &Object{
		Context: attribute.NewContext(name),
		Kind:    kind,
		Pos:     pos,
		Size:    size,
		Visible: true,
	}
}

// Clone deep-copies the object under a fresh id.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	out := *o
	out.Context = o.Context.Clone(uuid.New())
	return &out
}

// AddObject appends obj to the object layer l, or inserts it at index when
// index is within range.
func (l *Layer) AddObject(obj *Object, index int) error {
	if l == nil {
		return ErrNoSuchLayer
	}
	if l.Kind != ObjectLayer {
		return fmt.Errorf("layer: %s is not an object layer", l.Name)
	}
	if index < 0 || index > len(l.Objects) {
		index = len(l.Objects)
	}
	l.Objects = append(l.Objects, nil)
	copy(l.Objects[index+1:], l.Objects[index:])
	l.Objects[index] = obj
	return nil
}

// RemoveObject detaches the object with id from l.
func (l *Layer) RemoveObject(id uuid.UUID) (*Object, int, error) {
	if l != nil {
		for i, o := range l.Objects {
			if o.ID == id {
				l.Objects = append(l.Objects[:i], l.Objects[i+1:]...)
				return o, i, nil
			}
		}
	}
	return nil, -1, fmt.Errorf("%w: %s", ErrNoSuchObject, id)
}
