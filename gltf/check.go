// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"errors"
	"strings"
)

func newErr(reason string) error {
	return errors.New("gltf: " + reason)
}

// Check checks that the material data of f is valid glTF.
func (f *GLTF) Check() error {
	if !strings.HasPrefix(f.Asset.Version, "2.") {
		return newErr("unsupported GLTF.Asset.Version " + f.Asset.Version)
	}
	for _, t := range f.Textures {
		if s := t.Source; s != nil && (*s < 0 || *s >= int64(len(f.Images))) {
			return newErr("invalid Texture.Source index")
		}
	}
	for i := range f.Materials {
		if err := f.Materials[i].Check(f); err != nil {
			return err
		}
	}
	return nil
}

// Check checks that m is valid glTF.materials' element.
func (m *Material) Check(gltf *GLTF) error {
	n := int64(len(gltf.Textures))
	valid := func(idx int64) bool { return idx >= 0 && idx < n }
	if p := m.PBRMetallicRoughness; p != nil {
		if t := p.BaseColorTexture; t != nil && !valid(t.Index) {
			return newErr("invalid Material.PBRMetallicRoughness.BaseColorTexture index")
		}
		if t := p.MetallicRoughnessTexture; t != nil && !valid(t.Index) {
			return newErr("invalid Material.PBRMetallicRoughness.MetallicRoughnessTexture index")
		}
	}
	if t := m.NormalTexture; t != nil && !valid(t.Index) {
		return newErr("invalid Material.NormalTexture index")
	}
	if t := m.OcclusionTexture; t != nil && !valid(t.Index) {
		return newErr("invalid Material.OcclusionTexture index")
	}
	if t := m.EmissiveTexture; t != nil && !valid(t.Index) {
		return newErr("invalid Material.EmissiveTexture index")
	}
	switch m.AlphaMode {
	case "", OPAQUE, MASK, BLEND:
	default:
		return newErr("invalid Material.AlphaMode value")
	}
	if c := m.AlphaCutoff; c != nil && *c < 0 {
		return newErr("invalid Material.AlphaCutoff value")
	}
	return nil
}
