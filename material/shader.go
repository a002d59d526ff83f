// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package material

import (
	"errors"
	"slices"

	"github.com/gviegas/neo3/doc"
	"github.com/gviegas/neo3/entity"
)

// Shader describes the program used by a material in a
// given pass. It may be shared by many materials.
type Shader struct {
	entity.Entity
	// Path of the vertex stage source.
	Vertex string
	// Path of the fragment stage source.
	Fragment string
	// Preprocessor definitions.
	Defines []string
}

// NewShader creates a named Shader.
func NewShader(name, vertex, fragment string, defines ...string) *Shader {
	return &Shader{
		Entity:   entity.New(name),
		Vertex:   vertex,
		Fragment: fragment,
		Defines:  slices.Clone(defines),
	}
}

func (s *Shader) validate() error {
	switch {
	case s.Vertex == "":
		return errors.New("shader " + s.Name() + " has no vertex stage")
	case s.Fragment == "":
		return errors.New("shader " + s.Name() + " has no fragment stage")
	}
	return nil
}

// Load implements doc.Serializable.
// It requires "name", "vertex" and "fragment" strings.
func (s *Shader) Load(v *doc.Value, isRootObject bool) bool {
	if isRootObject && !v.IsObject() {
		return false
	}
	if !s.Entity.Load(v, false) ||
		!v.LoadMemberValue("vertex", &s.Vertex) ||
		!v.LoadMemberValue("fragment", &s.Fragment) {
		return false
	}
	defines, ok := optArray(v, "defines")
	if !ok {
		return false
	}
	var strs []string
	for _, d := range defines {
		str, ok := d.Str()
		if !ok {
			return false
		}
		strs = append(strs, str)
	}
	s.Defines = strs
	return true
}

// Save implements doc.Serializable.
func (s *Shader) Save(w *doc.Writer, isRootObject bool) {
	if isRootObject {
		w.StartObject()
		defer w.EndObject()
	}
	s.Entity.Save(w, false)
	w.SaveMember("vertex", s.Vertex)
	w.SaveMember("fragment", s.Fragment)
	if len(s.Defines) > 0 {
		w.SaveArray("defines", func(w *doc.Writer) {
			for _, d := range s.Defines {
				w.SaveValue(d)
			}
		})
	}
}
