// Package task runs one long viewer operation (decompile or export) on a
// worker goroutine and streams its progress back to the interactive loop.
// A task emits zero or more Progress events followed by exactly one
// terminal Outcome; consumers receive them over channels, so any frontend
// (TUI, CLI, test) can drain them without knowing how the work runs.
package task

import (
	"context"
	"fmt"
)

// Kind identifies the operation a task performs.
type Kind int

const (
	KindDecompile Kind = iota
	KindExportDir
	KindExportArchive
)

// String returns the kind's name for logs and status lines.
func (k Kind) String() string {
	switch k {
	case KindDecompile:
		return "decompile"
	case KindExportDir:
		return "export-dir"
	case KindExportArchive:
		return "export-archive"
	default:
		return "unknown"
	}
}

// Progress is one incremental status report. Completed never decreases
// within a task and stays within [0, Total] when Total is known.
// Total == 0 means the total is not known up front (indeterminate), which
// is the case for decompilation unless the engine reports one.
type Progress struct {
	Completed int
	Total     int
	Message   string
}

// Outcome is the terminal result of a task. Err is nil on success.
type Outcome struct {
	Err error
}

// Success reports whether the task completed without error.
func (o Outcome) Success() bool { return o.Err == nil }

// Reporter delivers progress from a task body to its consumers.
type Reporter interface {
	Report(p Progress)
}

// Body is the work a task performs. It reports progress through r and
// returns a terminal error, which becomes the task's Outcome. The context
// is the one passed to Run; bodies that loop over entries check it
// between entries.
type Body func(ctx context.Context, r Reporter) error

// Task is a running or finished background operation.
// Events yields progress in emission order; the events channel is closed
// before the outcome is delivered, so a consumer that drains Events and
// then reads Done observes every event strictly before the terminal
// outcome. Both channels close once the task is over.
type Task struct {
	kind   Kind
	events chan Progress
	done   chan Outcome
}

// Kind returns the operation this task performs.
func (t *Task) Kind() Kind { return t.kind }

// Events returns the progress stream. The channel closes when the body
// returns; consumers must drain it.
func (t *Task) Events() <-chan Progress { return t.events }

// Done returns the terminal outcome channel. It yields exactly one
// Outcome, after the events channel has closed, and then closes.
func (t *Task) Done() <-chan Outcome { return t.done }

// chanReporter feeds progress into the task's event channel.
type chanReporter struct {
	events chan<- Progress
}

func (r chanReporter) Report(p Progress) {
	r.events <- p
}

// Run starts body on its own goroutine and returns immediately.
// A panic in the body is recovered into a failure outcome; errors never
// cross the goroutine boundary except through Done. Invoking a second
// task while one is active is the caller's error to avoid — Run does not
// queue or serialize tasks.
func Run(ctx context.Context, kind Kind, body Body) *Task {
	t := &Task{
		kind:   kind,
		events: make(chan Progress, 64),
		done:   make(chan Outcome, 1),
	}

	go func() {
		var err error
		func() {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%s task panicked: %v", kind, r)
				}
			}()
			err = body(ctx, chanReporter{events: t.events})
		}()

		close(t.events)
		t.done <- Outcome{Err: err}
		close(t.done)
	}()

	return t
}

// Wait drains all remaining events, invoking observe for each if it is
// non-nil, and returns the terminal outcome. It is a convenience for
// headless consumers like the export command and tests.
func (t *Task) Wait(observe func(Progress)) Outcome {
	for p := range t.events {
		if observe != nil {
			observe(p)
		}
	}
	return <-t.done
}
