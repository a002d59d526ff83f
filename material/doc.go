// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package material

import (
	"go.uber.org/zap"

	"github.com/gviegas/neo3/doc"
	"github.com/gviegas/neo3/uniform"
)

// optArray returns the array member named key.
// An absent member yields an empty array; a member that
// is not an array is an error.
func optArray(v *doc.Value, key string) ([]*doc.Value, bool) {
	m, ok := v.Member(key)
	if !ok {
		return nil, true
	}
	if !m.IsArray() {
		return nil, false
	}
	return m.Elems(), true
}

// Load implements doc.Serializable.
//
// Loading stops at the first malformed element. Entries
// applied before that remain in m, and m must be discarded.
// On success, m gets a fresh ID which replaces whatever
// was loaded under IDKey.
func (m *Material) Load(v *doc.Value, isRootObject bool) bool {
	if isRootObject && !v.IsObject() {
		return false
	}
	if !m.Entity.Load(v, false) {
		return false
	}
	if e, ok := v.Member("opaque"); ok {
		if m.opaque, ok = e.Bool(); !ok {
			return false
		}
	}
	// Advisory; recomputed below.
	if e, ok := v.Member("texture_flags"); ok {
		flags, ok := e.Uint32()
		if !ok {
			return false
		}
		m.flags = Flags(flags)
	}

	shaders, ok := optArray(v, "shaders")
	if !ok {
		return false
	}
	m.shaders = m.shaders[:0]
	for _, e := range shaders {
		// Unused passes are saved as null.
		if e.IsNull() {
			m.shaders = append(m.shaders, nil)
			continue
		}
		s := new(Shader)
		if !s.Load(e, true) {
			return false
		}
		m.shaders = append(m.shaders, s)
	}

	textures, ok := optArray(v, "textures")
	if !ok {
		return false
	}
	for _, e := range textures {
		var key string
		if !e.IsObject() || !e.LoadMemberValue("key", &key) {
			return false
		}
		t := new(Texture)
		if !t.Load(e, false) {
			return false
		}
		m.SetTexture(key, t)
	}

	uniforms, ok := optArray(v, "uniforms")
	if !ok {
		return false
	}
	for _, e := range uniforms {
		var key, typ string
		if !e.IsObject() || !e.LoadMemberValue("key", &key) || !e.LoadMemberValue("type", &typ) {
			return false
		}
		kind, ok := uniform.ParseKind(typ)
		if !ok {
			logger().Warn("unknown uniform type", zap.String("material", m.Name()),
				zap.String("key", key), zap.String("type", typ))
			return false
		}
		u := uniform.New(kind)
		if !u.Load(e, false) {
			return false
		}
		m.SetUniform(key, u)
	}

	m.classify()
	m.assignID()
	m.ClearDirty()
	return true
}

// Save implements doc.Serializable.
// Textures and uniforms are written in key order.
func (m *Material) Save(w *doc.Writer, isRootObject bool) {
	if isRootObject {
		w.StartObject()
		defer w.EndObject()
	}
	m.Entity.Save(w, false)
	w.SaveMember("opaque", m.opaque)
	w.SaveMember("texture_flags", uint32(m.flags))
	w.SaveArray("shaders", func(w *doc.Writer) {
		for _, s := range m.shaders {
			if s == nil {
				w.SaveValue(nil)
				continue
			}
			s.Save(w, true)
		}
	})
	w.SaveArray("textures", func(w *doc.Writer) {
		for _, k := range m.Textures() {
			w.StartObject()
			w.SaveMember("key", k)
			m.textures[k].Save(w, false)
			w.EndObject()
		}
	})
	w.SaveArray("uniforms", func(w *doc.Writer) {
		for _, k := range m.UniformKeys() {
			u := m.uniforms[k]
			if _, ok := u.Kind(); !ok {
				logger().Warn("unregistered uniform type not saved",
					zap.String("material", m.Name()), zap.String("key", k))
				continue
			}
			w.StartObject()
			w.SaveMember("key", k)
			u.Save(w, false)
			w.EndObject()
		}
	})
}
