// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package gltf implements the subset of glTF 2.0 that
// describes materials, and their conversion into
// material.Material values.
package gltf

import (
	"encoding/json"
	"errors"
	"io"
)

// Root glTF object.
// Members that do not relate to materials are ignored.
type GLTF struct {
	ExtensionsUsed     []string `json:"extensionsUsed,omitempty"`
	ExtensionsRequired []string `json:"extensionsRequired,omitempty"`
	Asset              struct {
		Copyright  string `json:"copyright,omitempty"`
		Generator  string `json:"generator,omitempty"`
		Version    string `json:"version"`
		MinVersion string `json:"minVersion,omitempty"`
		Extensions any    `json:"extensions,omitempty"`
		Extras     any    `json:"extras,omitempty"`
	} `json:"asset"`
	Images     []Image    `json:"images,omitempty"`
	Materials  []Material `json:"materials,omitempty"`
	Textures   []Texture  `json:"textures,omitempty"`
	Extensions any        `json:"extensions,omitempty"`
	Extras     any        `json:"extras,omitempty"`
}

// glTF.images' element.
type Image struct {
	URI        string `json:"uri,omitempty"`
	MimeType   string `json:"mimeType,omitempty"`
	BufferView *int64 `json:"bufferView,omitempty"`
	Name       string `json:"name,omitempty"`
	Extensions any    `json:"extensions,omitempty"`
	Extras     any    `json:"extras,omitempty"`
}

// image.mimeType values.
const (
	JPEG = "image/jpeg"
	PNG  = "image/png"
)

// glTF.materials' element.
type Material struct {
	PBRMetallicRoughness *PBRMetallicRoughness `json:"pbrMetallicRoughness,omitempty"`
	NormalTexture        *NormalTextureInfo    `json:"normalTexture,omitempty"`
	OcclusionTexture     *OcclusionTextureInfo `json:"occlusionTexture,omitempty"`
	EmissiveTexture      *TextureInfo          `json:"emissiveTexture,omitempty"`
	EmissiveFactor       *[3]float32           `json:"emissiveFactor,omitempty"` // Default is [0, 0, 0].
	AlphaMode            string                `json:"alphaMode,omitempty"`      // Default is "OPAQUE".
	AlphaCutoff          *float32              `json:"alphaCutoff,omitempty"`    // Default is 0.5.
	DoubleSided          bool                  `json:"doubleSided,omitempty"`    // Default is false.
	Name                 string                `json:"name,omitempty"`
	Extensions           any                   `json:"extensions,omitempty"`
	Extras               any                   `json:"extras,omitempty"`
}

// material.normalTextureInfo.
type NormalTextureInfo struct {
	Index      int64    `json:"index"`
	TexCoord   int64    `json:"texCoord,omitempty"` // Default is TEXCOORD_0.
	Scale      *float32 `json:"scale,omitempty"`    // Default is 1.
	Extensions any      `json:"extensions,omitempty"`
	Extras     any      `json:"extras,omitempty"`
}

// material.occlusionTextureInfo.
type OcclusionTextureInfo struct {
	Index      int64    `json:"index"`
	TexCoord   int64    `json:"texCoord,omitempty"` // Default is TEXCOORD_0.
	Strength   *float32 `json:"strength,omitempty"` // Default is 1.
	Extensions any      `json:"extensions,omitempty"`
	Extras     any      `json:"extras,omitempty"`
}

// material.pbrMetallicRoughness.
type PBRMetallicRoughness struct {
	BaseColorFactor          *[4]float32  `json:"baseColorFactor,omitempty"` // Default is [1, 1, 1, 1].
	BaseColorTexture         *TextureInfo `json:"baseColorTexture,omitempty"`
	MetallicFactor           *float32     `json:"metallicFactor,omitempty"`  // Default is 1.
	RoughnessFactor          *float32     `json:"roughnessFactor,omitempty"` // Default is 1.
	MetallicRoughnessTexture *TextureInfo `json:"metallicRoughnessTexture,omitempty"`
	Extensions               any          `json:"extensions,omitempty"`
	Extras                   any          `json:"extras,omitempty"`
}

// material.alphaMode values.
const (
	OPAQUE = "OPAQUE"
	MASK   = "MASK"
	BLEND  = "BLEND"
)

// glTF.textures' element.
type Texture struct {
	Sampler    *int64 `json:"sampler,omitempty"`
	Source     *int64 `json:"source,omitempty"`
	Name       string `json:"name,omitempty"`
	Extensions any    `json:"extensions,omitempty"`
	Extras     any    `json:"extras,omitempty"`
}

// textureInfo.
type TextureInfo struct {
	Index      int64 `json:"index"`
	TexCoord   int64 `json:"texCoord,omitempty"` // Default is TEXCOORD_0.
	Extensions any   `json:"extensions,omitempty"`
	Extras     any   `json:"extras,omitempty"`
}

// Opaque returns whether m is drawn as opaque.
func (m *Material) Opaque() bool { return m.AlphaMode == "" || m.AlphaMode == OPAQUE }

// Cutoff returns the alpha cutoff of m.
// It is only meaningful in MASK mode.
func (m *Material) Cutoff() float32 { return orDefault(m.AlphaCutoff, 0.5) }

// Emissive returns the emissive factor of m.
func (m *Material) Emissive() (f [3]float32) {
	if m.EmissiveFactor != nil {
		f = *m.EmissiveFactor
	}
	return
}

// BaseColor returns the base color factor of p.
// p may be nil.
func (p *PBRMetallicRoughness) BaseColor() [4]float32 {
	if p == nil || p.BaseColorFactor == nil {
		return [4]float32{1, 1, 1, 1}
	}
	return *p.BaseColorFactor
}

// MetallicRoughness returns the metallic and roughness
// factors of p. p may be nil.
func (p *PBRMetallicRoughness) MetallicRoughness() (metal, rough float32) {
	if p == nil {
		return 1, 1
	}
	return orDefault(p.MetallicFactor, 1), orDefault(p.RoughnessFactor, 1)
}

func orDefault(x *float32, dfl float32) float32 {
	if x == nil {
		return dfl
	}
	return *x
}

// Encode encodes gltf into w.
func Encode(w io.Writer, gltf *GLTF) error { return json.NewEncoder(w).Encode(gltf) }

// Decode decodes r into a new GLTF instance.
// Members that are not part of the material subset are
// skipped.
func Decode(r io.Reader) (*GLTF, error) {
	gltf := new(GLTF)
	if err := json.NewDecoder(r).Decode(gltf); err != nil {
		return nil, errors.Join(newErr("malformed JSON"), err)
	}
	return gltf, nil
}
