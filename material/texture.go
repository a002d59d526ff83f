// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package material

import (
	"errors"

	"github.com/gviegas/neo3/doc"
)

// Texture refers to an image used by materials.
// It may be shared by many materials.
type Texture struct {
	// Path of the image.
	Path string
	// Whether the image is encoded in sRGB.
	SRGB bool
}

// NewTexture creates a Texture for the image at path.
func NewTexture(path string, srgb bool) *Texture { return &Texture{path, srgb} }

func (t *Texture) validate() error {
	if t.Path == "" {
		return errors.New("texture has no path")
	}
	return nil
}

// Load implements doc.Serializable.
// It requires a "path" string.
func (t *Texture) Load(v *doc.Value, isRootObject bool) bool {
	if isRootObject && !v.IsObject() {
		return false
	}
	var path string
	if !v.LoadMemberValue("path", &path) {
		return false
	}
	srgb := false
	if m, ok := v.Member("srgb"); ok {
		if srgb, ok = m.Bool(); !ok {
			return false
		}
	}
	t.Path, t.SRGB = path, srgb
	return true
}

// Save implements doc.Serializable.
func (t *Texture) Save(w *doc.Writer, isRootObject bool) {
	if isRootObject {
		w.StartObject()
		defer w.EndObject()
	}
	w.SaveMember("path", t.Path)
	w.SaveMember("srgb", t.SRGB)
}
