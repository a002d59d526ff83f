// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package node implements the scene's graph.
//
// Nodes own the components attached to them. Components
// refer back to their node through a Ref, which stops
// resolving once the node is removed.
package node

import (
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gviegas/neo3/component"
	"github.com/gviegas/neo3/internal/bitm"
	"github.com/gviegas/neo3/internal/log"
	"github.com/gviegas/neo3/typeid"
)

func logger() *zap.Logger { return log.Named("node") }

// Node identifies a node in a Graph.
// A Node is invalidated when the node is removed; slots
// reused by later insertions yield different Nodes.
type Node uint64

// Nil represents an invalid Node.
const Nil Node = 0

func makeNode(idx int, gen uint32) Node { return Node(uint64(gen)<<32 | uint64(idx+1)) }

func (n Node) index() int { return int(uint32(n)) - 1 }

func (n Node) gen() uint32 { return uint32(n >> 32) }

type node struct {
	gen      uint32
	parent   Node
	children []Node
	name     string
	uid      uuid.UUID
	comps    []component.Component
}

// Graph is a node graph.
// The zero value is an empty graph ready for use.
type Graph struct {
	nodes   []node
	nodeMap bitm.Bitm[uint32]
	roots   []Node
}

// Len returns the number of nodes in g.
func (g *Graph) Len() int { return g.nodeMap.Len() }

// Valid returns whether n identifies a node of g.
func (g *Graph) Valid(n Node) bool {
	idx := n.index()
	return idx >= 0 && g.nodeMap.IsSet(idx) && g.nodes[idx].gen == n.gen()
}

func (g *Graph) at(n Node) *node {
	if !g.Valid(n) {
		return nil
	}
	return &g.nodes[n.index()]
}

// Insert inserts a new node as descendant of prev.
// If prev is Nil, the node is inserted at the top level.
// It returns Nil if prev is not Nil and is invalid.
func (g *Graph) Insert(prev Node) Node {
	if prev != Nil && !g.Valid(prev) {
		return Nil
	}
	return g.insert(prev, uuid.New())
}

func (g *Graph) insert(prev Node, uid uuid.UUID) Node {
	if g.nodeMap.Rem() == 0 {
		cnt := max(1, g.nodeMap.Cap()/32)
		g.nodeMap.Grow(cnt)
		g.nodes = append(g.nodes, make([]node, cnt*32)...)
	}
	idx, ok := g.nodeMap.Search()
	if !ok {
		// Should never happen.
		panic("unexpected failure from bitm.Bitm.Search")
	}
	g.nodeMap.Set(idx)
	nd := &g.nodes[idx]
	if nd.gen == 0 {
		nd.gen = 1
	}
	n := makeNode(idx, nd.gen)
	nd.parent = prev
	nd.uid = uid
	if prev == Nil {
		g.roots = append(g.roots, n)
	} else {
		p := &g.nodes[prev.index()]
		p.children = append(p.children, n)
	}
	return n
}

// Remove removes n and its descendants.
// Components still attached to a removed node are
// notified through OnOwnerDestructing. It returns the
// number of nodes removed.
func (g *Graph) Remove(n Node) int {
	if !g.Valid(n) {
		return 0
	}
	// Descendants are torn down before their ancestors.
	var sub []Node
	g.walk(n, func(n Node) { sub = append(sub, n) })
	for _, x := range slices.Backward(sub) {
		g.teardown(x)
	}

	if p := g.nodes[n.index()].parent; p == Nil {
		g.roots = slices.DeleteFunc(g.roots, func(x Node) bool { return x == n })
	} else {
		pn := &g.nodes[p.index()]
		pn.children = slices.DeleteFunc(pn.children, func(x Node) bool { return x == n })
	}
	for _, x := range sub {
		idx := x.index()
		gen := g.nodes[idx].gen + 1
		if gen == 0 {
			gen = 1
		}
		g.nodes[idx] = node{gen: gen}
		g.nodeMap.Unset(idx)
	}
	return len(sub)
}

func (g *Graph) teardown(n Node) {
	ref := g.Ref(n)
	nd := &g.nodes[n.index()]
	for _, c := range nd.comps {
		c.OnOwnerDestructing(ref)
	}
	nd.comps = nil
}

// Clear removes every node of g.
func (g *Graph) Clear() {
	for _, n := range slices.Clone(g.roots) {
		g.Remove(n)
	}
}

// walk calls f for n and each of its descendants.
// Ancestors are visited first.
func (g *Graph) walk(n Node, f func(Node)) {
	que := []Node{n}
	for len(que) > 0 {
		f(que[0])
		que = append(que, g.nodes[que[0].index()].children...)
		que = que[1:]
	}
}

// Walk calls f for every node of g until f returns
// false. Ancestors are visited before descendants.
// The graph must not be changed until Walk returns.
func (g *Graph) Walk(f func(Node) bool) {
	que := slices.Clone(g.roots)
	for len(que) > 0 {
		n := que[0]
		if !f(n) {
			return
		}
		que = append(que[1:], g.nodes[n.index()].children...)
	}
}

// Roots returns the top-level nodes of g.
func (g *Graph) Roots() []Node { return slices.Clone(g.roots) }

// Parent returns the immediate ancestor of n, or Nil
// if n is a top-level node.
func (g *Graph) Parent(n Node) Node {
	if nd := g.at(n); nd != nil {
		return nd.parent
	}
	return Nil
}

// Children returns the immediate descendants of n in
// insertion order.
func (g *Graph) Children(n Node) []Node {
	if nd := g.at(n); nd != nil {
		return slices.Clone(nd.children)
	}
	return nil
}

// Name returns the name of n.
func (g *Graph) Name(n Node) string {
	if nd := g.at(n); nd != nil {
		return nd.name
	}
	return ""
}

// SetName sets the name of n.
func (g *Graph) SetName(n Node, name string) {
	if nd := g.at(n); nd != nil {
		nd.name = name
	}
}

// UID returns the persistent identifier of n.
func (g *Graph) UID(n Node) uuid.UUID {
	if nd := g.at(n); nd != nil {
		return nd.uid
	}
	return uuid.Nil
}

// Find returns the node whose UID is uid.
func (g *Graph) Find(uid uuid.UUID) Node {
	var found Node
	g.Walk(func(n Node) bool {
		if g.nodes[n.index()].uid == uid {
			found = n
			return false
		}
		return true
	})
	return found
}

// Ref is a weak handle to a node.
// It implements component.Owner.
type Ref struct {
	g *Graph
	n Node
}

// Ref returns a handle to n.
func (g *Graph) Ref(n Node) Ref { return Ref{g, n} }

// Graph returns the graph of r.
func (r Ref) Graph() *Graph { return r.g }

// Node returns the node of r.
func (r Ref) Node() Node { return r.n }

// Alive implements component.Owner.
func (r Ref) Alive() bool { return r.g != nil && r.g.Valid(r.n) }

// Equal implements component.Owner.
func (r Ref) Equal(o component.Owner) bool {
	s, ok := o.(Ref)
	return ok && s == r
}

// AddComponent attaches c to n.
// If c is attached to another owner, it is detached from
// that owner first. Attaching c to the node that already
// owns it does nothing.
// It returns false if n is invalid or c is nil.
func (g *Graph) AddComponent(n Node, c component.Component) bool {
	nd := g.at(n)
	if nd == nil || c == nil {
		return false
	}
	ref := g.Ref(n)
	if o := c.Owner(); o != nil {
		if o.Equal(ref) {
			return true
		}
		if prev, ok := o.(Ref); ok {
			prev.g.RemoveComponent(prev.n, c)
		} else {
			c.OnDetaching(o)
		}
	}
	nd.comps = append(nd.comps, c)
	c.OnAttaching(ref)
	return true
}

// RemoveComponent detaches c from n.
// It returns false if c is not attached to n.
func (g *Graph) RemoveComponent(n Node, c component.Component) bool {
	nd := g.at(n)
	if nd == nil {
		return false
	}
	i := slices.Index(nd.comps, c)
	if i < 0 {
		return false
	}
	nd.comps = slices.Delete(nd.comps, i, i+1)
	c.OnDetaching(g.Ref(n))
	return true
}

// Components returns the components attached to n in
// attach order.
func (g *Graph) Components(n Node) []component.Component {
	if nd := g.at(n); nd != nil {
		return slices.Clone(nd.comps)
	}
	return nil
}

// Component returns the first component of type T
// attached to n.
func Component[T component.Component](g *Graph, n Node) (T, bool) {
	var z T
	nd := g.at(n)
	if nd == nil {
		return z, false
	}
	tag := typeid.Of[T]()
	for _, c := range nd.comps {
		if c.TypeTag() == tag {
			if t, ok := c.(T); ok {
				return t, true
			}
		}
	}
	return z, false
}
