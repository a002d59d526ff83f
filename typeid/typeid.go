// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package typeid implements runtime type tags.
//
// A Tag identifies a concrete Go type without requiring a
// closed enumeration of types. Tags are derived from the
// fully qualified type name, so they are stable across
// processes built from the same source.
package typeid

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Tag is an opaque type identifier.
// Tags are ordered and can be used as map keys.
type Tag uint64

// Nil is the invalid Tag.
const Nil Tag = 0

// Identifier is the interface of values that report
// their type tag.
type Identifier interface {
	// TypeTag returns the tag of the concrete type.
	// Two values of the same concrete type must return
	// the same tag.
	TypeTag() Tag
}

// Of returns the Tag of T.
func Of[T any]() Tag { return OfType(reflect.TypeFor[T]()) }

// OfType returns the Tag of typ.
func OfType(typ reflect.Type) Tag {
	if typ == nil {
		return Nil
	}
	return FromName(qualified(typ))
}

// FromName derives a Tag from an arbitrary name.
// It is meant for identities that are not backed by a
// distinct Go type (e.g., generic instantiations that
// differ only in a runtime parameter).
func FromName(name string) Tag {
	t := Tag(xxhash.Sum64String(name))
	if t == Nil {
		t++
	}
	return t
}

func qualified(typ reflect.Type) string {
	if typ.Kind() == reflect.Pointer {
		return "*" + qualified(typ.Elem())
	}
	if typ.Name() != "" && typ.PkgPath() != "" {
		return typ.PkgPath() + "." + typ.Name()
	}
	return typ.String()
}

// String returns the registered name of t, if any,
// or its hexadecimal value otherwise.
func (t Tag) String() string {
	if s, ok := Name(t); ok {
		return s
	}
	return fmt.Sprintf("typeid(%#016x)", uint64(t))
}

var registry = struct {
	sync.RWMutex
	names map[Tag]string
	tags  map[string]Tag
}{
	names: make(map[Tag]string),
	tags:  make(map[string]Tag),
}

// Register associates name with the Tag of T.
// It panics if either the name or the tag is already
// registered with a different counterpart.
func Register[T any](name string) Tag {
	return RegisterTag(Of[T](), name)
}

// RegisterTag associates name with t.
// It panics if either the name or the tag is already
// registered with a different counterpart.
func RegisterTag(t Tag, name string) Tag {
	registry.Lock()
	defer registry.Unlock()
	if s, ok := registry.names[t]; ok {
		if s == name {
			return t
		}
		panic("typeid: tag " + fmt.Sprint(uint64(t)) + " already registered as " + s)
	}
	if _, ok := registry.tags[name]; ok {
		panic("typeid: name " + name + " already registered")
	}
	registry.names[t] = name
	registry.tags[name] = t
	return t
}

// Name returns the name registered for t.
func Name(t Tag) (string, bool) {
	registry.RLock()
	defer registry.RUnlock()
	s, ok := registry.names[t]
	return s, ok
}

// Lookup returns the Tag registered for name.
func Lookup(name string) (Tag, bool) {
	registry.RLock()
	defer registry.RUnlock()
	t, ok := registry.tags[name]
	return t, ok
}

// As converts x to T if x's tag is that of T.
// It is the safe downcast query for values that are
// only known through Identifier.
func As[T Identifier](x Identifier) (T, bool) {
	var z T
	if x == nil || x.TypeTag() != Of[T]() {
		return z, false
	}
	t, ok := x.(T)
	return t, ok
}
