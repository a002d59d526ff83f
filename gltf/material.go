// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gviegas/neo3/material"
	"github.com/gviegas/neo3/uniform"
)

// Keys of the textures and uniforms that Convert sets
// in addition to the reserved texture keys.
const (
	OcclusionTexture = "occlusion_texture"
	EmissiveTexture  = "emissive_texture"

	BaseColorFactor         = "base_color_factor"
	MetallicRoughnessFactor = "metallic_roughness_factor"
	EmissiveFactor          = "emissive_factor"
	AlphaCutoff             = "alpha_cutoff"
	NormalScale             = "normal_scale"
	OcclusionStrength       = "occlusion_strength"
	DoubleSided             = "double_sided"
)

// ReadFile reads the .gltf or .glb file at path.
func ReadFile(path string) (*GLTF, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	r := bufio.NewReader(file)
	var f *GLTF
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		f, err = DecodeGLB(r)
	} else {
		f, err = Decode(r)
	}
	if err != nil {
		return nil, err
	}
	if err := f.Check(); err != nil {
		return nil, err
	}
	return f, nil
}

// Convert converts the materials of f.
// f must be valid (see Check).
// Image URIs are resolved relative to dir. Images that
// are stored in buffers or data URIs are named after
// their index. Unnamed materials are named after their
// index too, prefixed by prefix.
//
// Base color and emissive textures are sRGB; metallic-
// roughness textures become material.SpecularTexture.
// Materials with an alpha mode other than OPAQUE are
// not opaque.
func (f *GLTF) Convert(dir, prefix string) []*material.Material {
	mats := make([]*material.Material, len(f.Materials))
	for i := range f.Materials {
		mats[i] = f.convert(&f.Materials[i], dir, prefix+"#"+strconv.Itoa(i))
	}
	return mats
}

func (f *GLTF) convert(gm *Material, dir, dflName string) *material.Material {
	name := gm.Name
	if name == "" {
		name = dflName
	}
	m := material.New(name)
	m.SetOpaque(gm.Opaque())

	p := gm.PBRMetallicRoughness
	if p != nil {
		if t := p.BaseColorTexture; t != nil {
			m.SetTexture(material.DiffuseTexture, f.texture(t.Index, dir, true))
		}
		if t := p.MetallicRoughnessTexture; t != nil {
			m.SetTexture(material.SpecularTexture, f.texture(t.Index, dir, false))
		}
	}
	base := p.BaseColor()
	m.SetUniform(BaseColorFactor, uniform.New4f(base[0], base[1], base[2], base[3]))
	m.SetUniform(MetallicRoughnessFactor, uniform.New2f(p.MetallicRoughness()))

	if t := gm.NormalTexture; t != nil {
		m.SetTexture(material.NormalTexture, f.texture(t.Index, dir, false))
		m.SetUniform(NormalScale, uniform.New1f(orDefault(t.Scale, 1)))
	}
	if t := gm.OcclusionTexture; t != nil {
		m.SetTexture(OcclusionTexture, f.texture(t.Index, dir, false))
		m.SetUniform(OcclusionStrength, uniform.New1f(orDefault(t.Strength, 1)))
	}
	if t := gm.EmissiveTexture; t != nil {
		m.SetTexture(EmissiveTexture, f.texture(t.Index, dir, true))
	}
	emis := gm.Emissive()
	m.SetUniform(EmissiveFactor, uniform.New3f(emis[0], emis[1], emis[2]))

	if gm.AlphaMode == MASK {
		m.SetUniform(AlphaCutoff, uniform.New1f(gm.Cutoff()))
	}
	if gm.DoubleSided {
		m.SetUniform(DoubleSided, uniform.New1i(1))
	}
	m.ClearDirty()
	return m
}

// texture creates the material.Texture of the glTF
// texture at index idx, which Check has validated.
func (f *GLTF) texture(idx int64, dir string, srgb bool) *material.Texture {
	src := f.Textures[idx].Source
	if src == nil {
		return material.NewTexture("texture"+strconv.FormatInt(idx, 10), srgb)
	}
	img := &f.Images[*src]
	if img.URI == "" || strings.HasPrefix(img.URI, "data:") {
		return material.NewTexture("image"+strconv.FormatInt(*src, 10), srgb)
	}
	return material.NewTexture(filepath.Join(dir, filepath.FromSlash(img.URI)), srgb)
}
