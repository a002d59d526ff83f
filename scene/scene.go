// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package scene provides functionality for creating and
// rendering scene graphs.
//
// A scene document is an object with a "graph" member
// holding a node.Graph document and an optional
// "libraries" array of material files or directories,
// relative to the document.
package scene

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"github.com/gviegas/neo3/config"
	"github.com/gviegas/neo3/doc"
	"github.com/gviegas/neo3/driver"
	"github.com/gviegas/neo3/engine"
	"github.com/gviegas/neo3/internal/log"
	"github.com/gviegas/neo3/library"
	"github.com/gviegas/neo3/node"
)

const prefix = "scene: "

func newErr(reason string) error { return errors.New(prefix + reason) }

func logger() *zap.Logger { return log.Named("scene") }

// Scene defines a scene graph together with the
// materials that its drawables use.
type Scene struct {
	cfg   config.Config
	graph *node.Graph
	libs  []string
	lib   *library.Library
	progs *engine.Programs
	rend  *engine.Renderer
	watch *library.Watcher
}

// New creates an empty scene.
// Programs are created from gpu, with their active
// uniforms given by reflect.
func New(cfg *config.Config, gpu driver.GPU, reflect engine.Reflector) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if gpu == nil {
		return nil, newErr("nil driver.GPU in call to New")
	}
	ecfg := engine.ConfigFrom(cfg)
	engine.Configure(&ecfg)
	s := &Scene{
		cfg:   *cfg,
		graph: new(node.Graph),
		lib:   library.New(cfg.Library),
		progs: engine.NewPrograms(gpu, reflect),
	}
	var err error
	if s.rend, err = engine.NewRenderer(s.lib, s.progs); err != nil {
		return nil, err
	}
	return s, nil
}

// Graph returns the scene graph of s.
// It is replaced by LoadFile.
func (s *Scene) Graph() *node.Graph { return s.graph }

// Library returns the material library of s.
func (s *Scene) Library() *library.Library { return s.lib }

// AddLibrary loads the material file or directory at path
// and records it as a library of s.
// If the configuration enables watching, directories are
// watched until ctx is done, and changes are applied by
// Frame.
func (s *Scene) AddLibrary(ctx context.Context, path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		err = s.lib.LoadDir(ctx, path)
	} else {
		err = s.lib.LoadFile(path)
	}
	if err != nil {
		return err
	}
	if fi.IsDir() && s.cfg.Library.Watch {
		if err := s.watchDir(ctx, path); err != nil {
			return err
		}
	}
	if !slices.Contains(s.libs, path) {
		s.libs = append(s.libs, path)
	}
	return nil
}

func (s *Scene) watchDir(ctx context.Context, dir string) error {
	if s.watch == nil {
		x, err := s.lib.Watch(ctx)
		if err != nil {
			return err
		}
		s.watch = x
	}
	return s.watch.Add(dir)
}

// Libraries returns the paths added with AddLibrary.
func (s *Scene) Libraries() []string { return slices.Clone(s.libs) }

// Missing returns the names of materials that drawables
// of s use but that are not in its library.
func (s *Scene) Missing() []string {
	var names []string
	s.graph.Walk(func(n node.Node) bool {
		for _, c := range s.graph.Components(n) {
			d, ok := c.(*engine.Drawable)
			if !ok {
				continue
			}
			if _, err := s.lib.Get(d.Material); err != nil && !slices.Contains(names, d.Material) {
				names = append(names, d.Material)
			}
		}
		return true
	})
	slices.Sort(names)
	return names
}

// Frame submits the drawables of s once for every pass.
// Library changes detected since the last call are
// applied first.
// It returns the total number of drawables bound.
func (s *Scene) Frame() (int, error) {
	if s.watch != nil {
		s.watch.Apply()
	}
	var (
		total int
		errs  []error
	)
	for pass := range s.cfg.Render.MaxPass {
		n, err := s.rend.Submit(s.graph, pass)
		total += n
		if err != nil {
			errs = append(errs, err)
		}
	}
	return total, errors.Join(errs...)
}

// LoadFile loads the scene document at path.
// Its libraries are loaded before its graph. On failure,
// the current graph is kept, although libraries loaded
// so far remain in the library.
func (s *Scene) LoadFile(ctx context.Context, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	v, err := library.Decode(bytes.NewReader(b), path)
	if err != nil {
		return err
	}
	if !v.IsObject() {
		return newErr(path + ": not an object")
	}
	if libs, ok := v.Member("libraries"); ok {
		if !libs.IsArray() {
			return newErr(path + ": libraries is not an array")
		}
		for _, e := range libs.Elems() {
			rel, ok := e.Str()
			if !ok {
				return newErr(path + ": library path is not a string")
			}
			if !filepath.IsAbs(rel) {
				rel = filepath.Join(filepath.Dir(path), rel)
			}
			if err := s.AddLibrary(ctx, rel); err != nil {
				return fmt.Errorf("%s%s: %w", prefix, path, err)
			}
		}
	}
	gv, ok := v.Member("graph")
	if !ok {
		return newErr(path + ": missing graph")
	}
	g := new(node.Graph)
	if !g.Load(gv, true) {
		g.Clear()
		return newErr(path + ": invalid graph")
	}
	s.graph.Clear()
	s.graph = g
	if missing := s.Missing(); len(missing) > 0 {
		logger().Warn("missing materials", zap.String("scene", path), zap.Strings("materials", missing))
	}
	logger().Info("loaded", zap.String("scene", path), zap.Int("nodes", g.Len()))
	return nil
}

// SaveFile writes s to path.
// Library paths are written relative to the directory of
// path when possible.
func (s *Scene) SaveFile(path string) error {
	w := doc.NewWriter()
	w.StartObject()
	w.SaveArray("libraries", func(w *doc.Writer) {
		for _, lib := range s.libs {
			if rel, err := filepath.Rel(filepath.Dir(path), lib); err == nil {
				lib = rel
			}
			w.SaveValue(filepath.ToSlash(lib))
		}
	})
	w.SaveMember("graph", doc.Marshal(s.graph))
	w.EndObject()
	if err := w.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := library.Encode(&buf, path, w.Value()); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Close destroys the programs of s and clears its graph.
func (s *Scene) Close() {
	s.progs.Destroy()
	s.graph.Clear()
}
