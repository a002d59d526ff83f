// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/gviegas/neo3/component"
	"github.com/gviegas/neo3/doc"
	"github.com/gviegas/neo3/material"
	"github.com/gviegas/neo3/typeid"
)

// AllPasses is a pass mask that selects every pass.
const AllPasses = ^uint32(0)

// DrawableTag identifies *Drawable.
var DrawableTag = component.Register("Drawable", func() component.Persistable { return NewDrawable("") })

// Resolver resolves material names.
// *library.Library implements it.
type Resolver interface {
	Get(name string) (*material.Material, error)
}

// Drawable is a component that causes its owner to be
// rendered with a given material.
// The material is referenced by name so that it can be
// replaced (e.g., reloaded) without touching the graph.
type Drawable struct {
	component.Base
	// Name of the material.
	Material string
	// Passes in which the owner is drawn.
	// Bit i selects pass i.
	Passes uint32
	// Hidden drawables are not submitted.
	Hidden bool
}

// NewDrawable creates a Drawable that uses the material
// named mat in every pass.
func NewDrawable(mat string) *Drawable {
	d := &Drawable{Material: mat, Passes: AllPasses}
	d.Base.Init(typeid.Of[*Drawable]())
	return d
}

// Clone implements component.Component.
func (d *Drawable) Clone() component.Component {
	c := new(Drawable)
	if err := component.CloneInto(c, d); err != nil {
		panic(err)
	}
	return c
}

// InPass returns whether d is drawn in the given pass.
func (d *Drawable) InPass(pass int) bool {
	return pass >= 0 && pass < MaxPass && d.Passes&(1<<pass) != 0
}

// Resolve returns the material of d.
func (d *Drawable) Resolve(r Resolver) (*material.Material, error) {
	return r.Get(d.Material)
}

// Load implements doc.Serializable.
// It requires a "material" string. "passes" defaults
// to AllPasses and "hidden" to false.
func (d *Drawable) Load(v *doc.Value, isRootObject bool) bool {
	if isRootObject && !v.IsObject() {
		return false
	}
	var mat string
	if !v.LoadMemberValue("material", &mat) {
		return false
	}
	passes, hidden := AllPasses, false
	if m, ok := v.Member("passes"); ok {
		if passes, ok = m.Uint32(); !ok {
			return false
		}
	}
	if m, ok := v.Member("hidden"); ok {
		if hidden, ok = m.Bool(); !ok {
			return false
		}
	}
	d.Material, d.Passes, d.Hidden = mat, passes, hidden
	return true
}

// Save implements doc.Serializable.
func (d *Drawable) Save(w *doc.Writer, isRootObject bool) {
	if isRootObject {
		w.StartObject()
		defer w.EndObject()
	}
	w.SaveMember("material", d.Material)
	w.SaveMember("passes", d.Passes)
	if d.Hidden {
		w.SaveMember("hidden", true)
	}
}
