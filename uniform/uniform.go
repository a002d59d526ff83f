// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package uniform implements typed shader uniform values.
//
// A Value holds a fixed number of elements of one numeric
// type. Values can be saved to and loaded from documents,
// and bound to a driver.Program. The set of (element type,
// arity) pairs that can be persisted and bound is closed;
// see Kind.
package uniform

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/gviegas/neo3/doc"
	"github.com/gviegas/neo3/driver"
	"github.com/gviegas/neo3/internal/log"
	"github.com/gviegas/neo3/linear"
	"github.com/gviegas/neo3/typeid"
)

func logger() *zap.Logger { return log.Named("uniform") }

// Elem is the constraint satisfied by uniform element types.
type Elem interface {
	float32 | int32 | uint32
}

// Interface is the type-erased view of a Value.
type Interface interface {
	typeid.Identifier
	doc.Serializable

	// Kind returns the kind of the value.
	// It returns false if the (element type, arity) pair
	// is not a supported kind.
	Kind() (Kind, bool)

	// ContainerTag returns a tag that is distinct for
	// every (element type, arity) pair.
	ContainerTag() typeid.Tag

	// Size returns the arity of the value.
	Size() int

	// Bind sets the uniform named name in p.
	Bind(p driver.Program, name string)

	// Clone returns an independent copy of the value.
	Clone() Interface
}

// Value is a uniform value of arity elements of type T.
// Its arity is fixed at creation.
type Value[T Elem] struct {
	tag  typeid.Tag
	data []T
}

var _ Interface = (*Value[float32])(nil)

// Create creates a Value of the given arity.
// If len(values) equals arity, the value is initialized
// from values; otherwise every element is zero.
func Create[T Elem](arity int, values ...T) *Value[T] {
	arity = max(arity, 0)
	v := &Value[T]{tag: typeid.Of[T](), data: make([]T, arity)}
	v.SetData(values...)
	return v
}

// New creates a zero Value of kind k.
// It returns nil if k is not valid.
func New(k Kind) Interface {
	switch k.Elem() {
	case Float32:
		return Create[float32](k.Arity())
	case Int32:
		return Create[int32](k.Arity())
	case Uint32:
		return Create[uint32](k.Arity())
	}
	return nil
}

func New1f(x float32) *Value[float32]          { return Create(1, x) }
func New2f(x, y float32) *Value[float32]       { return Create(2, x, y) }
func New3f(x, y, z float32) *Value[float32]    { return Create(3, x, y, z) }
func New4f(x, y, z, w float32) *Value[float32] { return Create(4, x, y, z, w) }
func New1i(x int32) *Value[int32]              { return Create(1, x) }
func New2i(x, y int32) *Value[int32]           { return Create(2, x, y) }
func New3i(x, y, z int32) *Value[int32]        { return Create(3, x, y, z) }
func New4i(x, y, z, w int32) *Value[int32]     { return Create(4, x, y, z, w) }
func New1ui(x uint32) *Value[uint32]           { return Create(1, x) }
func New2ui(x, y uint32) *Value[uint32]        { return Create(2, x, y) }
func New3ui(x, y, z uint32) *Value[uint32]     { return Create(3, x, y, z) }
func New4ui(x, y, z, w uint32) *Value[uint32]  { return Create(4, x, y, z, w) }

// NewMatrix4 creates a UniformMatrix4fv value from m.
func NewMatrix4(m *linear.M4) *Value[float32] {
	a := m.Array()
	return Create(16, a[:]...)
}

// As returns u as a *Value[T] if its element type is T.
func As[T Elem](u Interface) (*Value[T], bool) {
	if u == nil || u.TypeTag() != typeid.Of[T]() {
		return nil, false
	}
	v, ok := u.(*Value[T])
	return v, ok
}

// TypeTag returns the tag of the element type.
// Values that differ only in arity report the same tag.
func (v *Value[T]) TypeTag() typeid.Tag { return v.tag }

// Kind implements Interface.
func (v *Value[T]) Kind() (Kind, bool) { return KindOf(v.tag, len(v.data)) }

// ContainerTag implements Interface.
func (v *Value[T]) ContainerTag() typeid.Tag {
	if k, ok := v.Kind(); ok {
		return k.Tag()
	}
	return typeid.FromName(fmt.Sprintf("uniform.%s[%d]", v.tag, len(v.data)))
}

// Size implements Interface.
func (v *Value[T]) Size() int { return len(v.data) }

// DataAt returns the element at index, or zero if index
// is out of bounds.
func (v *Value[T]) DataAt(index int) T {
	if index < 0 || index >= len(v.data) {
		var z T
		return z
	}
	return v.data[index]
}

// Data returns a copy of the elements.
func (v *Value[T]) Data() []T { return slices.Clone(v.data) }

// SetData replaces the elements with values.
// It does nothing unless len(values) equals the arity.
func (v *Value[T]) SetData(values ...T) {
	if len(values) != len(v.data) {
		return
	}
	copy(v.data, values)
}

// Clone implements Interface.
func (v *Value[T]) Clone() Interface {
	return &Value[T]{tag: v.tag, data: slices.Clone(v.data)}
}

func (v *Value[T]) String() string {
	if k, ok := v.Kind(); ok {
		return fmt.Sprintf("%s%v", k, v.data)
	}
	return fmt.Sprintf("uniform.Value[%s]%v", v.tag, v.data)
}

// Load implements doc.Serializable.
// It reads a "data" array of exactly Size scalars of the
// element type. If a "type" member is present, it must
// name the value's kind.
// The value is not modified on failure.
func (v *Value[T]) Load(d *doc.Value, isRootObject bool) bool {
	if isRootObject && !d.IsObject() {
		return false
	}
	if t, ok := d.Member("type"); ok {
		name, _ := t.Str()
		if k, ok := v.Kind(); !ok || k.String() != name {
			return false
		}
	}
	arr, ok := d.LoadArray("data")
	if !ok || len(arr) != len(v.data) {
		return false
	}
	data := make([]T, len(arr))
	for i := range arr {
		if data[i], ok = scalar[T](arr[i]); !ok {
			return false
		}
	}
	copy(v.data, data)
	return true
}

func scalar[T Elem](d *doc.Value) (x T, ok bool) {
	switch p := any(&x).(type) {
	case *float32:
		*p, ok = d.Float32()
	case *int32:
		*p, ok = d.Int32()
	case *uint32:
		*p, ok = d.Uint32()
	}
	return
}

// Save implements doc.Serializable.
// It writes a "type" member naming the kind, followed by
// a "data" array. Values whose (element type, arity) pair
// is not a supported kind write no fields.
func (v *Value[T]) Save(w *doc.Writer, isRootObject bool) {
	if isRootObject {
		w.StartObject()
		defer w.EndObject()
	}
	k, ok := v.Kind()
	if !ok {
		logger().Warn("unregistered uniform type not saved",
			zap.Stringer("elem", v.tag), zap.Int("arity", len(v.data)))
		return
	}
	w.SaveMember("type", k.String())
	w.SaveArray("data", func(w *doc.Writer) {
		for _, x := range v.data {
			w.SaveValue(x)
		}
	})
}
