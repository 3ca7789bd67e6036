// Package engine defines the boundary to the external decompiler and an
// adapter that drives one as a subprocess. The engine is a black box:
// JarLens hands it an archive, receives (qualified name, source text)
// pairs, and never inspects bytecode itself.
package engine

import "context"

// Sink receives decompiled units as the engine produces them. The result
// store satisfies this directly, so population is streaming rather than
// bulk.
type Sink interface {
	Put(qualifiedName, text string)
}

// Engine is the contract JarLens needs from a decompiler.
//
// AddSource registers the archive to decompile. DecompileContext runs the
// engine to completion, streaming every recovered unit into sink; it
// returns only when the engine is done or has failed wholesale.
// ClassContent re-renders a single unit on demand, for entries whose text
// is not cached; the second return value is false when the engine cannot
// produce it.
//
// Engines also accept a map of named option toggles. JarLens passes these
// through without interpreting them.
type Engine interface {
	AddSource(path string) error
	DecompileContext(ctx context.Context, sink Sink) error
	ClassContent(qualifiedName string) (string, bool)
}

// DefaultOptions returns the option toggles passed to the engine unless
// the configuration overrides them. The keys are Fernflower's: decode
// synthetic/bridge members, generics, and hide empty/dead code, with a
// three-space indent.
func DefaultOptions() map[string]string {
	return map[string]string{
		"ind": "   ",
		"din": "1",
		"dgs": "1",
		"hes": "1",
		"hdc": "1",
	}
}
