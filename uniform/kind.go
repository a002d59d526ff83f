// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package uniform

import (
	"strconv"

	"github.com/gviegas/neo3/typeid"
)

// Kind identifies one of the supported (element type,
// arity) pairs. Its String method returns the name used
// in documents.
type Kind int

// Supported kinds.
const (
	Invalid Kind = iota
	Uniform1f
	Uniform2f
	Uniform3f
	Uniform4f
	UniformMatrix4fv
	Uniform1i
	Uniform2i
	Uniform3i
	Uniform4i
	Uniform1ui
	Uniform2ui
	Uniform3ui
	Uniform4ui

	numKind = iota - 1
)

// Element type tags.
var (
	Float32 = typeid.Of[float32]()
	Int32   = typeid.Of[int32]()
	Uint32  = typeid.Of[uint32]()
)

type kindInfo struct {
	name  string
	elem  typeid.Tag
	arity int
}

// kinds is the single source of truth for the
// kind <-> name <-> (element, arity) mapping.
var kinds = [numKind + 1]kindInfo{
	Invalid:          {"", typeid.Nil, 0},
	Uniform1f:        {"Uniform1f", Float32, 1},
	Uniform2f:        {"Uniform2f", Float32, 2},
	Uniform3f:        {"Uniform3f", Float32, 3},
	Uniform4f:        {"Uniform4f", Float32, 4},
	UniformMatrix4fv: {"UniformMatrix4fv", Float32, 16},
	Uniform1i:        {"Uniform1i", Int32, 1},
	Uniform2i:        {"Uniform2i", Int32, 2},
	Uniform3i:        {"Uniform3i", Int32, 3},
	Uniform4i:        {"Uniform4i", Int32, 4},
	Uniform1ui:       {"Uniform1ui", Uint32, 1},
	Uniform2ui:       {"Uniform2ui", Uint32, 2},
	Uniform3ui:       {"Uniform3ui", Uint32, 3},
	Uniform4ui:       {"Uniform4ui", Uint32, 4},
}

type pair struct {
	elem  typeid.Tag
	arity int
}

var (
	byName = make(map[string]Kind, numKind)
	byPair = make(map[pair]Kind, numKind)
)

func init() {
	typeid.RegisterTag(Float32, "float32")
	typeid.RegisterTag(Int32, "int32")
	typeid.RegisterTag(Uint32, "uint32")
	for k := Kind(1); k <= numKind; k++ {
		info := kinds[k]
		byName[info.name] = k
		byPair[pair{info.elem, info.arity}] = k
		typeid.RegisterTag(k.Tag(), info.name)
	}
}

// Kinds returns every valid Kind.
func Kinds() []Kind {
	ks := make([]Kind, numKind)
	for i := range ks {
		ks[i] = Kind(i + 1)
	}
	return ks
}

// Valid returns whether k is a supported kind.
func (k Kind) Valid() bool { return k > Invalid && k <= numKind }

// String returns the document name of k.
func (k Kind) String() string {
	if !k.Valid() {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kinds[k].name
}

// Elem returns the tag of the element type of k.
func (k Kind) Elem() typeid.Tag {
	if !k.Valid() {
		return typeid.Nil
	}
	return kinds[k].elem
}

// Arity returns the number of elements of k.
func (k Kind) Arity() int {
	if !k.Valid() {
		return 0
	}
	return kinds[k].arity
}

// Tag returns a tag that is distinct for every kind.
// Unlike the element tag reported by Value.TypeTag, it
// tells apart values that differ only in arity.
func (k Kind) Tag() typeid.Tag {
	if !k.Valid() {
		return typeid.Nil
	}
	return typeid.FromName("uniform." + kinds[k].name)
}

// ParseKind returns the Kind named name.
func ParseKind(name string) (Kind, bool) {
	k, ok := byName[name]
	return k, ok
}

// KindOf returns the Kind of the given element type tag
// and arity.
func KindOf(elem typeid.Tag, arity int) (Kind, bool) {
	k, ok := byPair[pair{elem, arity}]
	return k, ok
}
