// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package component

import (
	"github.com/gviegas/neo3/linear"
	"github.com/gviegas/neo3/typeid"
)

// Bounds is an axis-aligned bounding box cached at
// runtime. It is not persisted.
type Bounds struct {
	Base
	Min   linear.V3
	Max   linear.V3
	Valid bool
}

// NewBounds creates an empty Bounds.
func NewBounds() *Bounds {
	b := new(Bounds)
	b.Base.Init(typeid.Of[*Bounds]())
	return b
}

// Clone implements Component.
func (b *Bounds) Clone() Component {
	c := *b
	c.Base.Init(b.TypeTag())
	return &c
}

// Extend grows b to contain p.
func (b *Bounds) Extend(p *linear.V3) {
	if !b.Valid {
		b.Min, b.Max, b.Valid = *p, *p, true
		return
	}
	for i := range p {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}

// Reset makes b empty.
func (b *Bounds) Reset() { b.Min, b.Max, b.Valid = linear.V3{}, linear.V3{}, false }
