// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package entity implements the fields shared by named,
// persistable engine objects.
package entity

import (
	"github.com/gviegas/neo3/doc"
)

// Entity is a named object with a dirty flag.
// It is meant to be embedded.
type Entity struct {
	name  string
	dirty bool
}

// New creates an Entity named name.
func New(name string) Entity { return Entity{name: name} }

// Name returns the name of e.
func (e *Entity) Name() string { return e.name }

// SetName sets the name of e and marks it dirty.
func (e *Entity) SetName(name string) {
	if e.name != name {
		e.name = name
		e.dirty = true
	}
}

// Dirty returns whether e changed since the last call
// to ClearDirty.
func (e *Entity) Dirty() bool { return e.dirty }

// MarkDirty marks e as changed.
func (e *Entity) MarkDirty() { e.dirty = true }

// ClearDirty marks e as unchanged.
func (e *Entity) ClearDirty() { e.dirty = false }

// Load implements doc.Serializable.
// It requires a "name" string member.
func (e *Entity) Load(v *doc.Value, isRootObject bool) bool {
	if isRootObject && !v.IsObject() {
		return false
	}
	var name string
	if !v.LoadMemberValue("name", &name) {
		return false
	}
	e.name = name
	e.dirty = false
	return true
}

// Save implements doc.Serializable.
func (e *Entity) Save(w *doc.Writer, isRootObject bool) {
	if isRootObject {
		w.StartObject()
		defer w.EndObject()
	}
	w.SaveMember("name", e.name)
}
