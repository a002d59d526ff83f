// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package library

import (
	"context"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gviegas/neo3/material"
)

// update is a change detected by a Watcher.
// A nil mats drops the materials of path.
type update struct {
	path string
	mats []*material.Material
}

// Watcher tracks changes to library files.
//
// Changed files are decoded in the background, but the
// library is only modified by Apply. Materials are not
// safe for concurrent use, so Apply must be called from
// the goroutine that uses them (e.g., the one rendering).
type Watcher struct {
	l       *Library
	w       *fsnotify.Watcher
	done    chan struct{}
	pending chan struct{}

	mu      sync.Mutex
	updates []update
}

// Watch starts watching dirs, in addition to the
// configured directories, until ctx is done.
// Written or created files are decoded again; removed or
// renamed files have their materials dropped. Neither
// takes effect until Apply is called.
func (l *Library) Watch(ctx context.Context, dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range slices.Concat(l.cfg.Dirs, dirs) {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, err
		}
	}
	x := &Watcher{
		l:       l,
		w:       w,
		done:    make(chan struct{}),
		pending: make(chan struct{}, 1),
	}
	go x.run(ctx)
	return x, nil
}

// Add starts watching dir as well.
func (x *Watcher) Add(dir string) error { return x.w.Add(dir) }

// Done is closed when the watcher stops.
func (x *Watcher) Done() <-chan struct{} { return x.done }

// Pending receives a value when there are updates for
// Apply. Updates that arrive before Apply is called are
// coalesced into a single notification.
func (x *Watcher) Pending() <-chan struct{} { return x.pending }

// Apply installs the updates detected so far, in the
// order they were detected. It returns the number of
// updates applied.
func (x *Watcher) Apply() int {
	x.mu.Lock()
	ups := x.updates
	x.updates = nil
	x.mu.Unlock()
	for _, u := range ups {
		if u.mats == nil {
			x.l.mu.Lock()
			x.l.drop(u.path)
			x.l.mu.Unlock()
			logger().Info("dropped", zap.String("file", u.path))
		} else {
			x.l.install(u.path, u.mats)
			logger().Info("reloaded", zap.String("file", u.path))
		}
	}
	return len(ups)
}

func (x *Watcher) run(ctx context.Context) {
	defer close(x.done)
	defer x.w.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-x.w.Events:
			if !ok {
				return
			}
			x.handle(ev)
		case err, ok := <-x.w.Errors:
			if !ok {
				return
			}
			logger().Error("watch", zap.Error(err))
		}
	}
}

func (x *Watcher) handle(ev fsnotify.Event) {
	if !x.l.Accepts(ev.Name) {
		return
	}
	var u update
	switch {
	case ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename):
		u = update{path: ev.Name}
	case ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create):
		mats, err := parseFile(ev.Name)
		if err != nil {
			logger().Warn("reload failed", zap.String("file", ev.Name), zap.Error(err))
			return
		}
		u = update{path: ev.Name, mats: mats}
	default:
		return
	}
	x.mu.Lock()
	x.updates = append(x.updates, u)
	x.mu.Unlock()
	select {
	case x.pending <- struct{}{}:
	default:
	}
}
