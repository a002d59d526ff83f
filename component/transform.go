// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package component

import (
	"github.com/gviegas/neo3/doc"
	"github.com/gviegas/neo3/linear"
	"github.com/gviegas/neo3/typeid"
)

// TransformTag identifies *Transform.
var TransformTag = Register("Transform", func() Persistable { return NewTransform() })

// Transform is the local transform of its owner.
type Transform struct {
	Base
	Position linear.V3
	Rotation linear.Q
	Scale    linear.V3
}

// NewTransform creates an identity Transform.
func NewTransform() *Transform {
	t := new(Transform)
	t.Base.Init(typeid.Of[*Transform]())
	t.Rotation.I()
	t.Scale = linear.V3{1, 1, 1}
	return t
}

// Clone implements Component.
func (t *Transform) Clone() Component {
	c := new(Transform)
	if err := CloneInto(c, t); err != nil {
		// Same type, so copying cannot fail.
		panic(err)
	}
	return c
}

// Local returns the matrix T⋅R⋅S.
func (t *Transform) Local() (m linear.M4) {
	var tr, r, s linear.M4
	tr.Translate(&t.Position)
	r.Rotate(&t.Rotation)
	s.Scale(&t.Scale)
	m.Mul(&tr, &r)
	m.Mul(&m, &s)
	return
}

// Load implements doc.Serializable.
// Missing members keep their current values.
func (t *Transform) Load(v *doc.Value, isRootObject bool) bool {
	if isRootObject && !v.IsObject() {
		return false
	}
	var rot [4]float32
	rot[0], rot[1], rot[2], rot[3] = t.Rotation.V[0], t.Rotation.V[1], t.Rotation.V[2], t.Rotation.R
	pos, scl := t.Position, t.Scale
	if !loadFloats(v, "position", pos[:]) ||
		!loadFloats(v, "rotation", rot[:]) ||
		!loadFloats(v, "scale", scl[:]) {
		return false
	}
	t.Position, t.Scale = pos, scl
	t.Rotation = linear.Q{V: linear.V3{rot[0], rot[1], rot[2]}, R: rot[3]}
	return true
}

// Save implements doc.Serializable.
func (t *Transform) Save(w *doc.Writer, isRootObject bool) {
	if isRootObject {
		w.StartObject()
		defer w.EndObject()
	}
	saveFloats(w, "position", t.Position[:]...)
	saveFloats(w, "rotation", t.Rotation.V[0], t.Rotation.V[1], t.Rotation.V[2], t.Rotation.R)
	saveFloats(w, "scale", t.Scale[:]...)
}

// loadFloats loads the array member named key into dst.
// It succeeds if the member is absent. dst is not
// modified on failure.
func loadFloats(v *doc.Value, key string, dst []float32) bool {
	m, ok := v.Member(key)
	if !ok {
		return true
	}
	if !m.IsArray() || m.Len() != len(dst) {
		return false
	}
	tmp := make([]float32, len(dst))
	for i, e := range m.Elems() {
		if tmp[i], ok = e.Float32(); !ok {
			return false
		}
	}
	copy(dst, tmp)
	return true
}

func saveFloats(w *doc.Writer, key string, x ...float32) {
	w.SaveArray(key, func(w *doc.Writer) {
		for _, f := range x {
			w.SaveValue(f)
		}
	})
}
