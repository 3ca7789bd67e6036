package tui

import (
	"jarlens/internal/task"
)

// taskProgressMsg carries one progress event from the active background
// task into the update loop.
type taskProgressMsg struct {
	progress task.Progress
}

// taskOutcomeMsg carries the terminal outcome of the active task.
type taskOutcomeMsg struct {
	kind    task.Kind
	outcome task.Outcome
}

// archiveChangedMsg signals that the loaded archive was replaced on disk.
type archiveChangedMsg struct{}
