package engine

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"jarlens/internal/errors"
)

// sourceExt is the extension the engine's output is expected to carry.
const sourceExt = ".java"

// unitRef locates one produced unit inside the engine's output directory,
// either as a loose file or as an entry of a produced archive.
type unitRef struct {
	file    string // absolute path when the unit is a loose file
	archive string // archive path when the unit lives inside one
	entry   string // entry name within archive
}

// ExecEngine runs an external decompiler command of the conventional
// shape `cmd [-key=value...] <archive> <outdir>` (Fernflower's CLI), then
// walks the produced tree and streams every source file into the sink.
// The output directory is kept until Close so ClassContent can re-read
// individual units without re-running the command.
//
// ClassContent may be called while a decompile is in flight: a reload
// replaces the unit map under the viewer's feet while the old tree is
// still selectable. mu guards archive, outDir and units.
type ExecEngine struct {
	command string
	args    []string
	options map[string]string

	mu      sync.RWMutex
	archive string
	outDir  string
	units   map[string]unitRef
}

// NewExecEngine creates an engine adapter for the given command line.
// Extra args are placed before the option flags. Options may be nil, in
// which case DefaultOptions apply.
func NewExecEngine(command string, args []string, options map[string]string) *ExecEngine {
	if options == nil {
		options = DefaultOptions()
	}
	return &ExecEngine{
		command: command,
		args:    args,
		options: options,
		units:   make(map[string]unitRef),
	}
}

// AddSource registers the archive to decompile, replacing any previous
// one. Concurrent decompilation of multiple archives is not supported.
func (e *ExecEngine) AddSource(path string) error {
	if e.command == "" {
		return errors.ErrEngineNotConfigured
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", errors.ErrArchiveNotFound, path)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", errors.ErrNotAnArchive, path)
	}
	e.mu.Lock()
	e.archive = path
	e.mu.Unlock()
	return nil
}

// DecompileContext runs the command to completion and streams every
// produced unit into sink, keyed by its slash-qualified name. A non-zero
// exit surfaces as an EngineError carrying the tail of the command
// output; whatever reached the sink before the failure stays there.
func (e *ExecEngine) DecompileContext(ctx context.Context, sink Sink) error {
	e.mu.RLock()
	archive := e.archive
	e.mu.RUnlock()
	if archive == "" {
		return errors.ErrNoArchive
	}

	outDir, err := e.resetOutDir()
	if err != nil {
		return err
	}

	args := append([]string(nil), e.args...)
	for _, key := range sortedKeys(e.options) {
		args = append(args, fmt.Sprintf("-%s=%s", key, e.options[key]))
	}
	args = append(args, archive, outDir)

	cmd := exec.CommandContext(ctx, e.command, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.NewEngineError(archive,
			fmt.Errorf("%s: %w: %s", e.command, err, tail(out, 512)))
	}

	return e.collect(sink, archive, outDir)
}

// ClassContent re-reads one unit from the engine's output. It returns
// false when the unit was never produced or its backing file is gone.
func (e *ExecEngine) ClassContent(qualifiedName string) (string, bool) {
	e.mu.RLock()
	ref, ok := e.units[qualifiedName]
	e.mu.RUnlock()
	if !ok {
		return "", false
	}
	if ref.file != "" {
		data, err := os.ReadFile(ref.file)
		if err != nil {
			return "", false
		}
		return string(data), true
	}

	r, err := zip.OpenReader(ref.archive)
	if err != nil {
		return "", false
	}
	defer r.Close()
	for _, f := range r.File {
		if f.Name != ref.entry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", false
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", false
		}
		return string(data), true
	}
	return "", false
}

// Close removes the engine's output directory.
func (e *ExecEngine) Close() error {
	e.mu.Lock()
	dir := e.outDir
	e.outDir = ""
	e.units = make(map[string]unitRef)
	e.mu.Unlock()
	if dir == "" {
		return nil
	}
	return os.RemoveAll(dir)
}

func (e *ExecEngine) resetOutDir() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.outDir != "" {
		os.RemoveAll(e.outDir)
		e.outDir = ""
	}
	dir, err := os.MkdirTemp("", "jarlens-engine-")
	if err != nil {
		return "", fmt.Errorf("create engine output dir: %w", err)
	}
	e.outDir = dir
	e.units = make(map[string]unitRef)
	return dir, nil
}

// collect walks the output directory. Loose source files map directly to
// qualified names; archives produced by the engine (Fernflower mirrors
// the input jar) are read entry by entry.
func (e *ExecEngine) collect(sink Sink, archive, outDir string) error {
	err := filepath.WalkDir(outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch {
		case strings.HasSuffix(path, sourceExt):
			rel, err := filepath.Rel(outDir, path)
			if err != nil {
				return err
			}
			name := strings.TrimSuffix(filepath.ToSlash(rel), sourceExt)
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			e.storeUnit(name, unitRef{file: path})
			sink.Put(name, string(data))
		case strings.HasSuffix(path, ".jar") || strings.HasSuffix(path, ".zip"):
			if err := e.collectArchive(path, sink); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.NewEngineError(archive, err)
	}
	e.mu.RLock()
	produced := len(e.units)
	e.mu.RUnlock()
	if produced == 0 {
		return errors.NewEngineError(archive,
			fmt.Errorf("%w: no sources produced", errors.ErrEngineFailed))
	}
	return nil
}

// storeUnit publishes one unit reference; units become individually
// readable through ClassContent as soon as they are collected.
func (e *ExecEngine) storeUnit(name string, ref unitRef) {
	e.mu.Lock()
	e.units[name] = ref
	e.mu.Unlock()
}

func (e *ExecEngine) collectArchive(path string, sink Sink) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open produced archive %s: %w", path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !strings.HasSuffix(f.Name, sourceExt) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(f.Name, sourceExt)
		e.storeUnit(name, unitRef{archive: path, entry: f.Name})
		sink.Put(name, string(data))
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// tail returns the last n bytes of command output as a trimmed string.
func tail(out []byte, n int) string {
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return strings.TrimSpace(string(out))
}
