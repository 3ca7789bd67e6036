// Package export serializes decompiled sources to a directory tree or a
// zip archive. One qualified name maps to one entry: segments become path
// segments and the final segment gets the source extension. Targets share
// a single Writer contract so the task loop that drives them does not
// care which one it is feeding.
package export

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Extension is the default appended to the final segment of every
// exported entry. Writers accept an override for engines that emit a
// language other than Java.
const Extension = ".java"

// fixedZipTime keeps archives byte-for-byte reproducible (1980-01-01 UTC).
var fixedZipTime = time.Unix(315532800, 0).UTC()

// Writer receives one entry at a time, fully written before the next
// begins. Close must be called once all entries are written; for archive
// targets it finalizes the central directory.
type Writer interface {
	Write(qualifiedName, text string) error
	Close() error
}

// EntryPath maps a qualified name to its entry path inside an export
// target, using forward slashes: "com/acme/Server" -> "com/acme/Server.java".
// An empty ext means Extension.
func EntryPath(qualifiedName, ext string) string {
	if ext == "" {
		ext = Extension
	}
	return sanitize(qualifiedName) + ext
}

// sanitize normalizes a qualified name into a safe relative slash path:
// no drive letter, no leading slash, no '.' or '..' segments.
func sanitize(name string) string {
	s := filepath.ToSlash(name)
	if len(s) > 1 && s[1] == ':' {
		s = s[2:]
	}
	s = strings.TrimLeft(s, "/")
	parts := strings.Split(s, "/")
	stack := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		if part == ".." {
			if n := len(stack); n > 0 {
				stack = stack[:n-1]
			}
			continue
		}
		stack = append(stack, part)
	}
	if len(stack) == 0 {
		return "entry"
	}
	return strings.Join(stack, "/")
}

// DirWriter writes entries as files under a root directory, creating
// parent directories as needed and overwriting existing files.
type DirWriter struct {
	root string
	ext  string
}

// NewDirWriter creates a writer rooted at dir. The directory itself is
// created on the first entry that needs it. An empty ext means Extension.
func NewDirWriter(dir, ext string) *DirWriter {
	return &DirWriter{root: dir, ext: ext}
}

// Write stores one entry as a file.
func (w *DirWriter) Write(qualifiedName, text string) error {
	path := filepath.Join(w.root, filepath.FromSlash(EntryPath(qualifiedName, w.ext)))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Close is a no-op for directory targets.
func (w *DirWriter) Close() error { return nil }

// ZipWriter writes entries into a single zip archive. Entries use fixed
// timestamps and modes so repeated exports of the same store produce
// identical archives.
type ZipWriter struct {
	file *os.File
	zw   *zip.Writer
	ext  string
}

// NewZipWriter creates (or truncates) the archive at path. An empty ext
// means Extension.
func NewZipWriter(path, ext string) (*ZipWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return &ZipWriter{file: f, zw: zip.NewWriter(f), ext: ext}, nil
}

// Write stores one entry. The entry is opened, written, and closed
// before Write returns; entries are never interleaved.
func (w *ZipWriter) Write(qualifiedName, text string) error {
	h := &zip.FileHeader{Name: EntryPath(qualifiedName, w.ext), Method: zip.Deflate}
	h.SetMode(0o644)
	h.Modified = fixedZipTime

	entry, err := w.zw.CreateHeader(h)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", h.Name, err)
	}
	if _, err := entry.Write([]byte(text)); err != nil {
		return fmt.Errorf("write entry %s: %w", h.Name, err)
	}
	return nil
}

// Close finalizes the archive and closes the underlying file.
func (w *ZipWriter) Close() error {
	if err := w.zw.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("finalize archive: %w", err)
	}
	return w.file.Close()
}
