// Package watch notifies the viewer when the loaded archive changes on
// disk, so a rebuild of the jar can trigger re-decompilation without
// reopening it by hand. Build tools typically replace an archive rather
// than rewrite it in place, so the watch is on the parent directory and
// filtered to the archive's name.
package watch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces event bursts from a single archive rebuild.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reports changes to one archive file.
type Watcher struct {
	fsw      *fsnotify.Watcher
	name     string // base name of the watched archive
	debounce time.Duration
	changes  chan struct{}
	stopCh   chan struct{}
}

// New starts watching the archive at path. Change notifications arrive
// on Changes after a quiet period of debounce; a non-positive debounce
// uses DefaultDebounce.
func New(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: replacing the archive (rename + create) would
	// silently detach a watch on the file itself.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		name:     filepath.Base(path),
		debounce: debounce,
		changes:  make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes yields one signal per coalesced burst of archive changes.
// The channel never closes while the watcher runs; receivers select on
// it alongside their own shutdown signal.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.stopCh)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	// Many tools produce several events for one archive replace; collect
	// them and fire once the burst settles.
	debounceTimer := time.NewTimer(0)
	<-debounceTimer.C // drain initial timer

	pending := false

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != w.name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = true
			debounceTimer.Reset(w.debounce)

		case <-debounceTimer.C:
			if !pending {
				continue
			}
			pending = false
			select {
			case w.changes <- struct{}{}:
			default:
				// A notification is already waiting; one is enough.
			}

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}
