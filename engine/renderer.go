// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/gviegas/neo3/component"
	"github.com/gviegas/neo3/linear"
	"github.com/gviegas/neo3/node"
	"github.com/gviegas/neo3/uniform"
)

func newRendErr(s string) error { return errors.New("renderer: " + s) }

// WorldKey is the name of the uniform that holds the
// world matrix of a drawable.
const WorldKey = "world"

// Renderer submits the drawables of a node.Graph.
type Renderer struct {
	mats  Resolver
	progs ProgramCache
	world map[node.Node]linear.M4
}

// NewRenderer creates a Renderer that resolves materials
// through mats and obtains programs from progs.
func NewRenderer(mats Resolver, progs ProgramCache) (*Renderer, error) {
	switch {
	case mats == nil:
		return nil, newRendErr("nil Resolver in call to NewRenderer")
	case progs == nil:
		return nil, newRendErr("nil ProgramCache in call to NewRenderer")
	}
	return &Renderer{
		mats:  mats,
		progs: progs,
		world: make(map[node.Node]linear.M4),
	}, nil
}

// Submit binds every Drawable of g that is drawn in pass.
// For each one, the uniforms of its material are bound,
// followed by its world matrix as WorldKey.
// Drawables whose material cannot be resolved, or whose
// material has no shader for pass, are skipped.
// It returns the number of drawables bound. Program
// failures do not stop the submission and are returned
// joined.
func (r *Renderer) Submit(g *node.Graph, pass int) (int, error) {
	if pass < 0 || pass >= cfg.MaxPass {
		return 0, newRendErr("pass " + strconv.Itoa(pass) + " out of range")
	}
	clear(r.world)
	var (
		n    int
		errs []error
	)
	g.Walk(func(nd node.Node) bool {
		world := r.worldOf(g, nd)
		for _, c := range g.Components(nd) {
			d, ok := c.(*Drawable)
			if !ok || d.Hidden || !d.InPass(pass) {
				continue
			}
			m, err := d.Resolve(r.mats)
			if err != nil {
				logger().Warn("drawable skipped", zap.String("node", g.Name(nd)), zap.Error(err))
				continue
			}
			s := m.ShaderForPass(pass)
			if s == nil {
				continue
			}
			p, err := r.progs.Program(s)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			m.Bind(p)
			uniform.NewMatrix4(&world).Bind(p, WorldKey)
			n++
		}
		return true
	})
	return n, errors.Join(errs...)
}

// worldOf computes the world matrix of n.
// Walk visits parents first, so the parent's matrix is
// already in r.world.
func (r *Renderer) worldOf(g *node.Graph, n node.Node) linear.M4 {
	var world linear.M4
	if p, ok := r.world[g.Parent(n)]; ok {
		world = p
	} else {
		world.I()
	}
	if t, ok := node.Component[*component.Transform](g, n); ok {
		local := t.Local()
		world.Mul(&world, &local)
	}
	r.world[n] = world
	return world
}
