// Package viewer coordinates the decompiler engine, the result store,
// and the background tasks behind the interactive frontends. It owns the
// session state — which archive is loaded, its package tree, the
// highlight cache — and exposes the operations the TUI and CLI invoke:
// open an archive, read one class, export everything.
package viewer

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"jarlens/internal/engine"
	"jarlens/internal/errors"
	"jarlens/internal/export"
	"jarlens/internal/highlight"
	"jarlens/internal/logging"
	"jarlens/internal/nstree"
	"jarlens/internal/store"
	"jarlens/internal/task"
)

// Viewer is the orchestration hub for one decompilation session.
// Exactly one archive is loaded at a time; loading another replaces all
// session state. One background task runs at a time — frontends disable
// the triggering actions while a task is active.
type Viewer struct {
	store  *store.Store
	engine engine.Engine
	cache  *highlight.Cache
	log    *logging.Logger

	mu        sync.RWMutex
	archive   string
	tree      *nstree.Package
	known     map[string]bool
	exportExt string
}

// New creates a Viewer around the given engine. cacheSize bounds the
// highlight cache; zero means the default. A nil logger discards logs.
func New(eng engine.Engine, cacheSize int, log *logging.Logger) *Viewer {
	if log == nil {
		log = logging.Discard()
	}
	return &Viewer{
		store:  store.New(),
		engine: eng,
		cache:  highlight.NewCache(cacheSize),
		log:    log,
		tree:   &nstree.Package{},
		known:  make(map[string]bool),
	}
}

// Store exposes the result store, mainly for frontends that need counts.
func (v *Viewer) Store() *store.Store { return v.store }

// SetExportExtension overrides the extension appended to exported entry
// names. Empty keeps the default.
func (v *Viewer) SetExportExtension(ext string) {
	v.mu.Lock()
	v.exportExt = ext
	v.mu.Unlock()
}

func (v *Viewer) exportExtension() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.exportExt
}

// Archive returns the path of the currently loaded archive, or "".
func (v *Viewer) Archive() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.archive
}

// Tree returns the package tree built by the last completed decompile.
// Before the first decompile it is an empty root.
func (v *Viewer) Tree() *nstree.Package {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.tree
}

// OpenArchive starts a decompile task for the archive at path. The store
// and highlight cache are cleared up front, the engine streams units into
// the store as it produces them, and the package tree is rebuilt when the
// engine completes. Progress is indeterminate: the engine does not report
// a total. On failure the store keeps whatever was populated before the
// engine gave up.
func (v *Viewer) OpenArchive(ctx context.Context, path string) *task.Task {
	return task.Run(ctx, task.KindDecompile, func(ctx context.Context, r task.Reporter) error {
		log := v.log.WithArchive(path).WithTask(task.KindDecompile.String())

		r.Report(task.Progress{Message: fmt.Sprintf("Decompiling %s...", filepath.Base(path))})

		if err := v.engine.AddSource(path); err != nil {
			return err
		}

		v.store.Clear()
		v.cache.Purge()
		v.mu.Lock()
		v.archive = path
		v.mu.Unlock()

		if err := v.engine.DecompileContext(ctx, v.store); err != nil {
			log.Error("decompile failed", "error", err)
			return err
		}

		names := v.store.Names()
		tree := nstree.Build(names)
		known := make(map[string]bool, len(names))
		for _, name := range names {
			known[name] = true
		}

		v.mu.Lock()
		v.tree = tree
		v.known = known
		v.mu.Unlock()

		log.Info("decompile complete", "classes", len(names))
		return nil
	})
}

// ExportDir starts a task writing every stored class under dir.
func (v *Viewer) ExportDir(ctx context.Context, dir string) *task.Task {
	return task.Run(ctx, task.KindExportDir, v.exportBody(task.KindExportDir, func() (export.Writer, error) {
		return export.NewDirWriter(dir, v.exportExtension()), nil
	}))
}

// ExportArchive starts a task writing every stored class into a zip
// archive at path.
func (v *Viewer) ExportArchive(ctx context.Context, path string) *task.Task {
	return task.Run(ctx, task.KindExportArchive, v.exportBody(task.KindExportArchive, func() (export.Writer, error) {
		return export.NewZipWriter(path, v.exportExtension())
	}))
}

// exportBody drives the export loop over the store in its stable name
// order: one Write per entry, one progress event per entry, abort on the
// first unrecoverable error. Entries written before an abort are left in
// place. Entries whose text is gone and cannot be re-rendered are skipped
// but still counted, matching the progress total.
func (v *Viewer) exportBody(kind task.Kind, open func() (export.Writer, error)) task.Body {
	return func(ctx context.Context, r task.Reporter) error {
		log := v.log.WithArchive(v.Archive()).WithTask(kind.String())

		names := v.exportNames()
		total := len(names)
		if total == 0 {
			return errors.ErrNothingToExport
		}

		w, err := open()
		if err != nil {
			return errors.NewExportError("", err)
		}

		completed := 0
		for _, name := range names {
			// Cooperative cancellation point; a started entry is never
			// abandoned halfway.
			if err := ctx.Err(); err != nil {
				return errors.Join(err, w.Close())
			}

			text, ok := v.store.Get(name)
			if !ok {
				text, ok = v.engine.ClassContent(name)
			}
			if ok {
				if err := w.Write(name, text); err != nil {
					return errors.NewExportError(export.EntryPath(name, v.exportExtension()), errors.Join(err, w.Close()))
				}
			} else {
				log.Warn("no content for entry, skipping",
					"class", name, "error", errors.ErrClassNotFound)
			}

			completed++
			r.Report(task.Progress{
				Completed: completed,
				Total:     total,
				Message:   fmt.Sprintf("Saved %d of %d classes", completed, total),
			})
		}

		if err := w.Close(); err != nil {
			return errors.NewExportError("", err)
		}

		log.Info("export complete", "classes", completed)
		return nil
	}
}

// Content returns the decompiled text for a qualified name. A missing
// entry is re-rendered through the engine and cached back into the
// store. When nothing can be produced the result is a placeholder
// diagnostic rather than an error, so selection in the UI never fails.
func (v *Viewer) Content(name string) string {
	if text, ok := v.lookup(name); ok {
		return text
	}

	v.mu.RLock()
	wasKnown := v.known[name]
	v.mu.RUnlock()

	if wasKnown {
		return fmt.Sprintf("// Error decompiling class: %s", name)
	}
	return fmt.Sprintf("// Class not found: %s", name)
}

// HighlightedContent returns the text for name along with its lexical
// spans. Real class text is highlighted through the cache; placeholder
// diagnostics are scanned directly so they never occupy a cache slot
// that later real content would need.
func (v *Viewer) HighlightedContent(name string) (string, []highlight.Span) {
	if text, ok := v.lookup(name); ok {
		return text, v.cache.Scan(name, text)
	}
	text := v.Content(name)
	return text, highlight.Scan(text)
}

// exportNames returns the entries an export covers: the class set
// recorded when the current tree was built, in sorted order. Classes
// whose text has since left the store are re-rendered or skipped by the
// export loop. Before the first decompile finishes the set is empty and
// the store itself is consulted.
func (v *Viewer) exportNames() []string {
	v.mu.RLock()
	names := make([]string, 0, len(v.known))
	for name := range v.known {
		names = append(names, name)
	}
	v.mu.RUnlock()

	if len(names) == 0 {
		return v.store.Names()
	}
	sort.Strings(names)
	return names
}

// lookup fetches text for name from the store, falling back to an
// on-demand engine render which is then cached in the store.
func (v *Viewer) lookup(name string) (string, bool) {
	if text, ok := v.store.Get(name); ok {
		return text, true
	}
	if text, ok := v.engine.ClassContent(name); ok {
		v.store.Put(name, text)
		return text, true
	}
	return "", false
}
