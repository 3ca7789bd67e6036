// Package errors provides centralized error definitions for JarLens.
// It defines sentinel errors for the archive/engine/export subsystems,
// domain error types with cause wrapping, and re-exports the standard
// helpers so callers can import only this package for error handling.
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Archive-related sentinel errors
var (
	// ErrNoArchive indicates that no archive has been loaded yet.
	ErrNoArchive = New("no archive loaded")
	// ErrArchiveNotFound indicates that the archive path does not exist.
	ErrArchiveNotFound = New("archive not found")
	// ErrNotAnArchive indicates that the path is not a readable archive.
	ErrNotAnArchive = New("not a class archive")
)

// Engine-related sentinel errors
var (
	// ErrEngineFailed indicates that the decompiler engine failed wholesale.
	ErrEngineFailed = New("decompiler engine failed")
	// ErrEngineNotConfigured indicates that no decompiler command is set.
	ErrEngineNotConfigured = New("decompiler engine not configured")
	// ErrClassNotFound indicates that a qualified name has no decompiled unit.
	ErrClassNotFound = New("class not found")
)

// Export-related sentinel errors
var (
	// ErrExportFailed indicates that an export aborted before completion.
	ErrExportFailed = New("export failed")
	// ErrNothingToExport indicates that the result store is empty.
	ErrNothingToExport = New("no decompiled classes to export")
)

// EngineError wraps a failure from the external decompiler engine with
// the archive it was processing.
type EngineError struct {
	Archive string
	Cause   error
}

// NewEngineError creates an EngineError for the given archive.
func NewEngineError(archive string, cause error) *EngineError {
	return &EngineError{Archive: archive, Cause: cause}
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("engine: %s: %s", e.Archive, ErrEngineFailed)
	}
	return fmt.Sprintf("engine: %s: %v", e.Archive, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *EngineError) Unwrap() error { return e.Cause }

// Is matches ErrEngineFailed in addition to the wrapped cause chain.
func (e *EngineError) Is(target error) bool {
	return target == ErrEngineFailed
}

// ExportError wraps a failure while writing one export entry. The entry
// name identifies how far the export got; entries written before it are
// left in place.
type ExportError struct {
	Entry string
	Cause error
}

// NewExportError creates an ExportError for the given entry.
func NewExportError(entry string, cause error) *ExportError {
	return &ExportError{Entry: entry, Cause: cause}
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("export: %v", e.Cause)
	}
	return fmt.Sprintf("export %s: %v", e.Entry, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ExportError) Unwrap() error { return e.Cause }

// Is matches ErrExportFailed in addition to the wrapped cause chain.
func (e *ExportError) Is(target error) bool {
	return target == ErrExportFailed
}
