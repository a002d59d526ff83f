// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package component defines the contract of values that
// can be attached to nodes of a scene graph.
//
// A Component has at most one owner at a time. The owner
// is held through an Owner handle, which never keeps the
// owner alive. Owners call the lifecycle hooks; other code
// must not call them.
package component

import (
	"errors"

	"github.com/jinzhu/copier"

	"github.com/gviegas/neo3/doc"
	"github.com/gviegas/neo3/typeid"
)

const prefix = "component: "

func newErr(reason string) error { return errors.New(prefix + reason) }

// Owner is a weak handle to the owner of a Component.
type Owner interface {
	// Alive returns whether the owner still exists.
	Alive() bool

	// Equal returns whether o identifies the same owner.
	Equal(o Owner) bool
}

// Component is the interface of attachable values.
type Component interface {
	typeid.Identifier

	// Clone returns a copy with equal data and no owner.
	Clone() Component

	// HasOwner returns whether the component is attached
	// to an owner that still exists.
	HasOwner() bool

	// Owner returns the owner handle, or nil if
	// HasOwner is false.
	Owner() Owner

	// OnAttaching is called when o takes ownership.
	OnAttaching(o Owner)

	// OnDetaching is called when o releases ownership.
	OnDetaching(o Owner)

	// OnOwnerDestructing is called when o is being
	// destroyed while the component is still attached.
	// o is valid during the call but must not be
	// mutated.
	OnOwnerDestructing(o Owner)
}

// Persistable is the interface of components that take
// part in persistence. Components that do not implement
// it are omitted from saved documents.
type Persistable interface {
	Component
	doc.Serializable
}

// Tag is the tag reported by a Base that was not
// initialized by a concrete component.
var Tag = typeid.Register[Component]("Component")

// Base implements the owner bookkeeping and the default
// lifecycle hooks of a Component. Concrete components
// embed it and call Init from their constructors.
type Base struct {
	tag   typeid.Tag
	owner Owner
}

// Init sets the tag of b and clears its owner.
func (b *Base) Init(tag typeid.Tag) {
	b.tag = tag
	b.owner = nil
}

func (b *Base) base() *Base { return b }

// TypeTag implements typeid.Identifier.
func (b *Base) TypeTag() typeid.Tag {
	if b.tag == typeid.Nil {
		return Tag
	}
	return b.tag
}

// HasOwner implements Component.
func (b *Base) HasOwner() bool { return b.owner != nil && b.owner.Alive() }

// Owner implements Component.
func (b *Base) Owner() Owner {
	if !b.HasOwner() {
		return nil
	}
	return b.owner
}

// OnAttaching implements Component.
func (b *Base) OnAttaching(o Owner) { b.owner = o }

// OnDetaching implements Component.
func (b *Base) OnDetaching(o Owner) { b.release(o) }

// OnOwnerDestructing implements Component.
func (b *Base) OnOwnerDestructing(o Owner) { b.release(o) }

func (b *Base) release(o Owner) {
	if b.owner != nil && (o == nil || b.owner.Equal(o)) {
		b.owner = nil
	}
}

type embedsBase interface{ base() *Base }

// CloneInto deep copies the exported fields of src into
// dst, which must be of the same type. dst gets the tag
// of src and no owner.
func CloneInto(dst, src Component) error {
	if dst == nil || src == nil {
		return newErr("nil Component in call to CloneInto")
	}
	if dst.TypeTag() != src.TypeTag() && dst.TypeTag() != Tag {
		return newErr("CloneInto with mismatched types")
	}
	opt := copier.Option{
		DeepCopy: true,
		// The owner handle must not be followed.
		Converters: []copier.TypeConverter{{
			SrcType: Base{},
			DstType: Base{},
			Fn:      func(any) (any, error) { return Base{}, nil },
		}},
	}
	if err := copier.CopyWithOption(dst, src, opt); err != nil {
		return errors.Join(newErr("copy failed"), err)
	}
	if b, ok := dst.(embedsBase); ok {
		b.base().Init(src.TypeTag())
	}
	return nil
}
