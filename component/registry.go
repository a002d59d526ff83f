// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package component

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/gviegas/neo3/internal/log"
	"github.com/gviegas/neo3/typeid"
)

// Factory creates a detached Persistable component.
type Factory func() Persistable

var registry = struct {
	sync.RWMutex
	byName map[string]Factory
	byTag  map[typeid.Tag]string
}{
	byName: make(map[string]Factory),
	byTag:  make(map[typeid.Tag]string),
}

// Register makes a persistable component type available
// under name. Saved documents identify the type of each
// component by this name.
// It panics if name is already registered.
func Register(name string, f Factory) typeid.Tag {
	tag := f().TypeTag()
	registry.Lock()
	defer registry.Unlock()
	if _, dup := registry.byName[name]; dup {
		panic(prefix + "Register called twice for " + name)
	}
	typeid.RegisterTag(tag, name)
	registry.byName[name] = f
	registry.byTag[tag] = name
	log.Named("component").Debug("registered", zap.String("name", name), zap.Stringer("tag", tag))
	return tag
}

// New creates a component of the type registered as name.
func New(name string) (Persistable, bool) {
	registry.RLock()
	f, ok := registry.byName[name]
	registry.RUnlock()
	if !ok {
		return nil, false
	}
	return f(), true
}

// NameOf returns the name under which the type identified
// by tag was registered.
func NameOf(tag typeid.Tag) (string, bool) {
	registry.RLock()
	defer registry.RUnlock()
	name, ok := registry.byTag[tag]
	return name, ok
}

// Names returns the registered names in sorted order.
func Names() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.byName))
	for name := range registry.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
