// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package material implements the material model used in
// the engine.
//
// A Material aggregates per-pass shaders, keyed textures
// and keyed uniform values. Its texture flags are derived
// from the reserved texture keys and select the shader
// variant at draw time.
package material

import (
	"errors"
	"maps"
	"math"
	"slices"
	"strconv"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/gviegas/neo3/driver"
	"github.com/gviegas/neo3/entity"
	"github.com/gviegas/neo3/internal/log"
	"github.com/gviegas/neo3/uniform"
)

const matPrefix = "material: "

func newMatErr(reason string) error { return errors.New(matPrefix + reason) }

func logger() *zap.Logger { return log.Named("material") }

// Reserved texture keys.
const (
	DiffuseTexture  = "diffuse_texture"
	SpecularTexture = "specular_texture"
	NormalTexture   = "normal_texture"
)

// IDKey is the uniform key under which a Material
// publishes its ID.
const IDKey = "material_id"

// Flags classifies the texture set of a Material.
type Flags uint32

// Texture flags.
const (
	// No reserved texture present.
	ColorOnly Flags = 1 << iota
	Diffuse
	Specular
	Normal
)

func (f Flags) String() string {
	switch f {
	case ColorOnly:
		return "ColorOnly"
	case Diffuse:
		return "Diffuse"
	case Specular:
		return "Specular"
	case Normal:
		return "Normal"
	}
	return "Flags(" + strconv.FormatUint(uint64(f), 10) + ")"
}

var lastID atomic.Uint32

// nextID returns a process-unique material ID.
// IDs start at 1 and increase monotonically. Once
// math.MaxUint32 IDs were handed out, it returns 0,
// which identifies no material.
func nextID() uint32 {
	for {
		id := lastID.Load()
		if id == math.MaxUint32 {
			logger().Error("material IDs exhausted")
			return 0
		}
		if lastID.CompareAndSwap(id, id+1) {
			return id + 1
		}
	}
}

// Material defines the material properties to be applied
// to geometry during rendering.
type Material struct {
	entity.Entity
	id       uint32
	opaque   bool
	flags    Flags
	shaders  []*Shader
	textures map[string]*Texture
	uniforms map[string]uniform.Interface
}

// New creates a new material named name.
// It has no shaders, textures or uniforms other than
// its ID.
func New(name string) *Material {
	m := &Material{
		Entity:   entity.New(name),
		flags:    ColorOnly,
		textures: make(map[string]*Texture),
		uniforms: make(map[string]uniform.Interface),
	}
	m.assignID()
	return m
}

// assignID gives m a fresh ID and publishes it under
// IDKey, replacing any uniform stored there.
func (m *Material) assignID() {
	m.id = nextID()
	m.uniforms[IDKey] = uniform.New1ui(m.id)
}

// ID returns the process-unique ID of m.
// It changes on every Load. It is 0 if the process ran
// out of IDs.
func (m *Material) ID() uint32 { return m.id }

// Opaque returns whether m is opaque.
func (m *Material) Opaque() bool { return m.opaque }

// SetOpaque sets whether m is opaque.
func (m *Material) SetOpaque(opaque bool) {
	m.opaque = opaque
	m.MarkDirty()
}

// TextureFlags returns the classification of the
// textures of m.
func (m *Material) TextureFlags() Flags { return m.flags }

// classify recomputes the texture flags.
// Reserved keys have priority diffuse, then specular,
// then normal.
func (m *Material) classify() {
	has := func(key string) bool { _, ok := m.textures[key]; return ok }
	switch {
	case has(DiffuseTexture):
		m.flags = Diffuse
	case has(SpecularTexture):
		m.flags = Specular
	case has(NormalTexture):
		m.flags = Normal
	default:
		m.flags = ColorOnly
	}
}

// Texture returns the texture stored under key, or nil.
func (m *Material) Texture(key string) *Texture { return m.textures[key] }

// Textures returns the texture keys in sorted order.
func (m *Material) Textures() []string { return slices.Sorted(maps.Keys(m.textures)) }

// SetTexture stores t under key.
// A nil t removes the texture stored under key, if any.
// The texture flags are recomputed.
func (m *Material) SetTexture(key string, t *Texture) {
	if t == nil {
		if _, ok := m.textures[key]; !ok {
			return
		}
		delete(m.textures, key)
	} else {
		m.textures[key] = t
	}
	m.classify()
	m.MarkDirty()
}

// Uniform returns the uniform stored under key, or nil.
func (m *Material) Uniform(key string) uniform.Interface { return m.uniforms[key] }

// UniformKeys returns the uniform keys in sorted order.
func (m *Material) UniformKeys() []string { return slices.Sorted(maps.Keys(m.uniforms)) }

// SetUniform stores u under key.
// A nil u removes the uniform stored under key, if any.
func (m *Material) SetUniform(key string, u uniform.Interface) {
	if u == nil {
		if _, ok := m.uniforms[key]; !ok {
			return
		}
		delete(m.uniforms, key)
	} else {
		m.uniforms[key] = u
	}
	m.MarkDirty()
}

// SetShaderForPass sets the shader of pass index.
// The shader list grows as needed; new slots are nil.
func (m *Material) SetShaderForPass(index int, s *Shader) {
	if index < 0 {
		return
	}
	if n := index + 1 - len(m.shaders); n > 0 {
		m.shaders = append(m.shaders, make([]*Shader, n)...)
	}
	m.shaders[index] = s
	m.MarkDirty()
}

// ShaderForPass returns the shader of pass index, or
// nil if there is none.
func (m *Material) ShaderForPass(index int) *Shader {
	if index < 0 || index >= len(m.shaders) {
		return nil
	}
	return m.shaders[index]
}

// NumPasses returns the length of the shader list.
func (m *Material) NumPasses() int { return len(m.shaders) }

// DeleteBuffer removes every texture and uniform of m,
// including its published ID.
func (m *Material) DeleteBuffer() {
	clear(m.textures)
	clear(m.uniforms)
	m.classify()
	m.MarkDirty()
}

// Bind binds every uniform of m to p, using the uniform
// keys as names. Uniforms are bound in key order.
func (m *Material) Bind(p driver.Program) {
	for _, k := range m.UniformKeys() {
		m.uniforms[k].Bind(p, k)
	}
}

// Clone returns a copy of m with a new ID.
// Shaders and textures are shared with m; uniforms are
// copied.
func (m *Material) Clone() *Material {
	c := &Material{
		Entity:   entity.New(m.Name()),
		opaque:   m.opaque,
		flags:    m.flags,
		shaders:  slices.Clone(m.shaders),
		textures: maps.Clone(m.textures),
		uniforms: make(map[string]uniform.Interface, len(m.uniforms)),
	}
	for k, u := range m.uniforms {
		c.uniforms[k] = u.Clone()
	}
	c.assignID()
	return c
}

// Validate checks that m can be used for rendering.
func (m *Material) Validate() error {
	if m.Name() == "" {
		return newMatErr("empty name")
	}
	for i, s := range m.shaders {
		if s == nil {
			continue
		}
		if err := s.validate(); err != nil {
			return newMatErr("pass " + strconv.Itoa(i) + ": " + err.Error())
		}
	}
	for _, k := range m.Textures() {
		if err := m.textures[k].validate(); err != nil {
			return newMatErr(strconv.Quote(k) + ": " + err.Error())
		}
	}
	return nil
}
