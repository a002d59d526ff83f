// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package library implements a material library backed by
// document files.
//
// A file holds either a single material object or an
// object with a "materials" array. glTF files (.gltf and
// .glb) are imported through package gltf.
// Materials are indexed by name; loading a file replaces
// the materials that the same file provided before.
package library

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gviegas/neo3/config"
	"github.com/gviegas/neo3/doc"
	"github.com/gviegas/neo3/gltf"
	"github.com/gviegas/neo3/internal/log"
	"github.com/gviegas/neo3/material"
)

const prefix = "library: "

// Errors returned by Library methods.
var (
	ErrNotFound = errors.New(prefix + "material not found")
	ErrFormat   = errors.New(prefix + "unsupported file format")
	ErrInvalid  = errors.New(prefix + "invalid material document")
)

func logger() *zap.Logger { return log.Named("library") }

// Library is a collection of materials indexed by name.
// It is safe for concurrent use, but the materials it
// returns are not.
type Library struct {
	cfg config.Library

	mu     sync.RWMutex
	mats   map[string]*material.Material
	files  map[string][]string
	origin map[string]string
}

// New creates an empty Library.
func New(cfg config.Library) *Library {
	return &Library{
		cfg:    cfg,
		mats:   make(map[string]*material.Material),
		files:  make(map[string][]string),
		origin: make(map[string]string),
	}
}

// Accepts returns whether path has one of the configured
// extensions.
func (l *Library) Accepts(path string) bool {
	return slices.Contains(l.cfg.Extensions, strings.ToLower(filepath.Ext(path)))
}

// Decode decodes a document from r. The format is chosen
// by the extension of name.
func Decode(r io.Reader, name string) (*doc.Value, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return doc.DecodeJSON(r)
	case ".yaml", ".yml":
		return doc.DecodeYAML(r)
	}
	return nil, fmt.Errorf("%w: %s", ErrFormat, name)
}

// Encode writes v to w. The format is chosen by the
// extension of name.
func Encode(w io.Writer, name string, v *doc.Value) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return doc.EncodeJSON(w, v, true)
	case ".yaml", ".yml":
		return doc.EncodeYAML(w, v)
	}
	return fmt.Errorf("%w: %s", ErrFormat, name)
}

// Parse builds the materials described by v.
// Materials that fail to load are discarded and reported
// as an error wrapping ErrInvalid.
func Parse(v *doc.Value) ([]*material.Material, error) {
	elems := []*doc.Value{v}
	if arr, ok := v.LoadArray("materials"); ok {
		elems = arr
	}
	mats := make([]*material.Material, 0, len(elems))
	for i, e := range elems {
		m := material.New("")
		if !m.Load(e, true) {
			m.DeleteBuffer()
			return nil, fmt.Errorf("%w: element %d", ErrInvalid, i)
		}
		if err := m.Validate(); err != nil {
			m.DeleteBuffer()
			return nil, fmt.Errorf("%w: element %d: %w", ErrInvalid, i, err)
		}
		mats = append(mats, m)
	}
	return mats, nil
}

func parseFile(path string) ([]*material.Material, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return importFile(path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	v, err := Decode(bytes.NewReader(b), path)
	if err != nil {
		return nil, fmt.Errorf("%s%s: %w", prefix, path, err)
	}
	mats, err := Parse(v)
	if err != nil {
		return nil, fmt.Errorf("%s%s: %w", prefix, path, err)
	}
	return mats, nil
}

// importFile converts the materials of a glTF file.
func importFile(path string) ([]*material.Material, error) {
	f, err := gltf.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s%s: %w: %w", prefix, path, ErrInvalid, err)
	}
	mats := f.Convert(filepath.Dir(path), filepath.Base(path))
	for _, m := range mats {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("%s%s: %w: %w", prefix, path, ErrInvalid, err)
		}
	}
	return mats, nil
}

// LoadFile loads the materials of the file at path.
// On failure, materials previously loaded from path
// are kept.
func (l *Library) LoadFile(path string) error {
	mats, err := parseFile(path)
	if err != nil {
		return err
	}
	l.install(path, mats)
	return nil
}

// LoadDir loads every file in dir that has one of the
// configured extensions. Files are decoded concurrently
// and installed in name order. Nothing is installed if
// any file fails.
func (l *Library) LoadDir(ctx context.Context, dir string) error {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var paths []string
	for _, e := range ents {
		if path := filepath.Join(dir, e.Name()); e.Type().IsRegular() && l.Accepts(path) {
			paths = append(paths, path)
		}
	}
	results := make([][]*material.Material, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, l.cfg.Parallel))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mats, err := parseFile(path)
			results[i] = mats
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, path := range paths {
		l.install(path, results[i])
	}
	logger().Info("loaded directory", zap.String("dir", dir), zap.Int("files", len(paths)))
	return nil
}

// install replaces the materials provided by path
// with mats.
func (l *Library) install(path string, mats []*material.Material) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.drop(path)
	names := make([]string, 0, len(mats))
	for _, m := range mats {
		name := m.Name()
		if prev, ok := l.mats[name]; ok {
			logger().Warn("material redefined", zap.String("material", name),
				zap.String("file", path), zap.String("previous", l.origin[name]))
			prev.DeleteBuffer()
			l.unlink(l.origin[name], name)
		}
		l.mats[name] = m
		l.origin[name] = path
		names = append(slices.DeleteFunc(names, func(s string) bool { return s == name }), name)
	}
	l.files[path] = names
	logger().Debug("installed", zap.String("file", path), zap.Strings("materials", names))
}

// drop removes the materials provided by path.
// l.mu must be held.
func (l *Library) drop(path string) {
	for _, name := range l.files[path] {
		if m, ok := l.mats[name]; ok {
			m.DeleteBuffer()
			delete(l.mats, name)
			delete(l.origin, name)
		}
	}
	delete(l.files, path)
}

// unlink removes name from the materials of path.
// l.mu must be held.
func (l *Library) unlink(path, name string) {
	l.files[path] = slices.DeleteFunc(l.files[path], func(s string) bool { return s == name })
	if len(l.files[path]) == 0 {
		delete(l.files, path)
	}
}

// Get returns the material named name.
func (l *Library) Get(name string) (*material.Material, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	m, ok := l.mats[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return m, nil
}

// Names returns the material names in sorted order.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Sorted(maps.Keys(l.mats))
}

// Files returns the paths that provided materials, in
// sorted order.
func (l *Library) Files() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Sorted(maps.Keys(l.files))
}

// Remove removes the material named name.
// Its textures and uniforms are deleted.
func (l *Library) Remove(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.mats[name]
	if !ok {
		return false
	}
	m.DeleteBuffer()
	delete(l.mats, name)
	l.unlink(l.origin[name], name)
	delete(l.origin, name)
	return true
}

// SaveFile writes the material named name to path.
func (l *Library) SaveFile(name, path string) error {
	m, err := l.Get(name)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, path, doc.Marshal(m)); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
