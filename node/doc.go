// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package node

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gviegas/neo3/component"
	"github.com/gviegas/neo3/doc"
)

// Save implements doc.Serializable.
// Nodes are written in an order where ancestors precede
// descendants; each one refers to its ancestor by index.
// Only components that implement component.Persistable
// and whose type is registered are written.
func (g *Graph) Save(w *doc.Writer, isRootObject bool) {
	if isRootObject {
		w.StartObject()
		defer w.EndObject()
	}
	index := make(map[Node]int, g.Len())
	w.SaveArray("nodes", func(w *doc.Writer) {
		g.Walk(func(n Node) bool {
			nd := &g.nodes[n.index()]
			parent := -1
			if nd.parent != Nil {
				parent = index[nd.parent]
			}
			index[n] = len(index)
			w.StartObject()
			w.SaveMember("uid", nd.uid.String())
			w.SaveMember("name", nd.name)
			w.SaveMember("parent", parent)
			w.SaveArray("components", func(w *doc.Writer) {
				for _, c := range nd.comps {
					saveComponent(w, c)
				}
			})
			w.EndObject()
			return true
		})
	})
}

func saveComponent(w *doc.Writer, c component.Component) {
	p, ok := c.(component.Persistable)
	if !ok {
		return
	}
	name, ok := component.NameOf(c.TypeTag())
	if !ok {
		logger().Warn("unregistered component type not saved", zap.Stringer("tag", c.TypeTag()))
		return
	}
	w.StartObject()
	w.SaveMember("type", name)
	p.Save(w, false)
	w.EndObject()
}

// Load implements doc.Serializable.
// It replaces the contents of g. On failure, nodes loaded
// so far remain in g.
func (g *Graph) Load(v *doc.Value, isRootObject bool) bool {
	if isRootObject && !v.IsObject() {
		return false
	}
	elems, ok := v.LoadArray("nodes")
	if !ok {
		return false
	}
	g.Clear()
	loaded := make([]Node, 0, len(elems))
	for i, e := range elems {
		if !e.IsObject() {
			return false
		}
		var s, name string
		var parent int
		if !e.LoadMemberValue("uid", &s) || !e.LoadMemberValue("parent", &parent) {
			return false
		}
		uid, err := uuid.Parse(s)
		if err != nil || parent < -1 || parent >= i {
			return false
		}
		e.LoadMemberValue("name", &name)
		prev := Nil
		if parent >= 0 {
			prev = loaded[parent]
		}
		n := g.insert(prev, uid)
		g.nodes[n.index()].name = name
		loaded = append(loaded, n)

		comps, ok := e.LoadArray("components")
		if !ok {
			continue
		}
		for _, ce := range comps {
			c, ok := loadComponent(ce)
			if !ok {
				return false
			}
			g.AddComponent(n, c)
		}
	}
	return true
}

func loadComponent(v *doc.Value) (component.Persistable, bool) {
	if !v.IsObject() {
		return nil, false
	}
	var name string
	if !v.LoadMemberValue("type", &name) {
		return nil, false
	}
	c, ok := component.New(name)
	if !ok {
		logger().Warn("unknown component type", zap.String("type", name))
		return nil, false
	}
	if !c.Load(v, false) {
		return nil, false
	}
	return c, true
}
