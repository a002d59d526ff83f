// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/gviegas/neo3/component"
	"github.com/gviegas/neo3/config"
	"github.com/gviegas/neo3/driver"
	"github.com/gviegas/neo3/driver/record"
	"github.com/gviegas/neo3/engine"
	"github.com/gviegas/neo3/material"
	"github.com/gviegas/neo3/node"
)

const brick = `{
	"name": "brick",
	"shaders": [{"name": "lit", "vertex": "lit.vert", "fragment": "lit.frag"}],
	"uniforms": [{"key": "tint", "type": "Uniform4f", "data": [1, 1, 1, 1]}]
}`

func newScene(t *testing.T) *Scene {
	drv, err := driver.Lookup(record.Name)
	if err != nil {
		t.Fatalf("driver.Lookup failed:\n%#v", err)
	}
	gpu, err := drv.Open()
	if err != nil {
		t.Fatalf("Driver.Open failed:\n%#v", err)
	}
	cfg := config.DefaultConfig()
	cfg.Render.MaxPass = 2
	s, err := New(&cfg, gpu, func(*material.Shader) []string { return []string{"tint", engine.WorldKey} })
	if err != nil {
		t.Fatalf("New failed:\n%#v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestNew(t *testing.T) {
	s := newScene(t)
	if s.Graph().Len() != 0 {
		t.Fatal("New().Graph().Len: New should not insert any nodes")
	}
	if len(s.Library().Names()) != 0 {
		t.Fatal("New().Library().Names: New should not load any materials")
	}
	cfg := config.DefaultConfig()
	if _, err := New(&cfg, nil, nil); err == nil {
		t.Fatal("New: nil GPU should fail")
	}
	cfg.Render.MaxPass = 0
	if _, err := New(&cfg, new(record.GPU), nil); err == nil {
		t.Fatal("New: invalid config should fail")
	}
}

func TestFrame(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "brick.json")
	if err := os.WriteFile(lib, []byte(brick), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newScene(t)
	if err := s.AddLibrary(context.Background(), lib); err != nil {
		t.Fatalf("Scene.AddLibrary failed:\n%#v", err)
	}
	if err := s.AddLibrary(context.Background(), filepath.Join(dir, "none")); err == nil {
		t.Fatal("Scene.AddLibrary: missing path should fail")
	}
	if libs := s.Libraries(); !slices.Equal(libs, []string{lib}) {
		t.Fatalf("Scene.Libraries\nhave %v\nwant [%s]", libs, lib)
	}

	g := s.Graph()
	n := g.Insert(node.Nil)
	g.AddComponent(n, component.NewTransform())
	g.AddComponent(n, engine.NewDrawable("brick"))
	g.AddComponent(g.Insert(n), engine.NewDrawable("stone"))
	if m := s.Missing(); !slices.Equal(m, []string{"stone"}) {
		t.Fatalf("Scene.Missing\nhave %v\nwant [stone]", m)
	}
	// brick has a shader for pass 0 only.
	if cnt, err := s.Frame(); cnt != 1 || err != nil {
		t.Fatalf("Scene.Frame\nhave %d, %v\nwant 1, nil", cnt, err)
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "mats"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "mats", "brick.json"), []byte(brick), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newScene(t)
	if err := s.AddLibrary(context.Background(), filepath.Join(dir, "mats")); err != nil {
		t.Fatalf("Scene.AddLibrary failed:\n%#v", err)
	}
	g := s.Graph()
	n := g.Insert(node.Nil)
	g.SetName(n, "wall")
	d := engine.NewDrawable("brick")
	g.AddComponent(n, d)

	for _, name := range []string{"scene.json", "scene.yaml"} {
		path := filepath.Join(dir, name)
		if err := s.SaveFile(path); err != nil {
			t.Fatalf("Scene.SaveFile(%s) failed:\n%#v", name, err)
		}
		x := newScene(t)
		if err := x.LoadFile(context.Background(), path); err != nil {
			t.Fatalf("Scene.LoadFile(%s) failed:\n%#v", name, err)
		}
		if names := x.Library().Names(); !slices.Equal(names, []string{"brick"}) {
			t.Fatalf("Scene.LoadFile(%s): libraries\nhave %v\nwant [brick]", name, names)
		}
		m := x.Graph().Find(g.UID(n))
		if x.Graph().Name(m) != "wall" {
			t.Fatalf("Scene.LoadFile(%s): node name\nhave %q\nwant \"wall\"", name, x.Graph().Name(m))
		}
		if y, ok := node.Component[*engine.Drawable](x.Graph(), m); !ok || y.Material != "brick" {
			t.Fatalf("Scene.LoadFile(%s): Drawable\nhave %v, %t", name, y, ok)
		}
	}

	// A failed load keeps the current graph.
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"graph":{"nodes":[{"uid":"x","parent":-1}]}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.LoadFile(context.Background(), bad); err == nil {
		t.Fatal("Scene.LoadFile: invalid graph should fail")
	}
	if s.Graph() != g || !g.Valid(n) || !d.HasOwner() {
		t.Fatal("Scene.LoadFile: graph replaced on failure")
	}

	// A successful load tears down the previous graph.
	if err := s.LoadFile(context.Background(), filepath.Join(dir, "scene.json")); err != nil {
		t.Fatalf("Scene.LoadFile failed:\n%#v", err)
	}
	if d.HasOwner() || g.Len() != 0 {
		t.Fatal("Scene.LoadFile: previous graph not cleared")
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Render.MaxPass = 1
	cfg.Library.Watch = true
	s, err := New(&cfg, new(record.GPU), nil)
	if err != nil {
		t.Fatalf("New failed:\n%#v", err)
	}
	defer s.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := s.AddLibrary(ctx, dir); err != nil {
		t.Fatalf("Scene.AddLibrary failed:\n%#v", err)
	}
	n := s.Graph().Insert(node.Nil)
	s.Graph().AddComponent(n, engine.NewDrawable("brick"))
	if missing := s.Missing(); !slices.Equal(missing, []string{"brick"}) {
		t.Fatalf("Scene.Missing\nhave %v\nwant [brick]", missing)
	}

	if err := os.WriteFile(filepath.Join(dir, "brick.json"), []byte(brick), 0o644); err != nil {
		t.Fatal(err)
	}
	// The library only changes when Frame runs.
	deadline := time.Now().Add(5 * time.Second)
	for len(s.Missing()) > 0 {
		if time.Now().After(deadline) {
			t.Fatal("Scene.Frame: watched library was not reloaded")
		}
		time.Sleep(10 * time.Millisecond)
		if _, err := s.Frame(); err != nil {
			t.Fatalf("Scene.Frame failed:\n%#v", err)
		}
	}
}
