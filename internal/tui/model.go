package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"jarlens/internal/config"
	"jarlens/internal/nstree"
	"jarlens/internal/task"
	"jarlens/internal/viewer"
)

// promptKind says what the destination prompt is collecting.
type promptKind int

const (
	promptNone promptKind = iota
	promptExportDir
	promptExportZip
)

// Model holds the TUI application state.
type Model struct {
	viewer *viewer.Viewer
	cfg    *config.Config
	styles Styles

	// archive to open when the program starts
	initialArchive string

	// sidebar state
	rows     []row
	cursor   int
	expanded map[*nstree.Package]bool
	selected string // qualified name shown in the source pane

	// widgets
	viewport    viewport.Model
	spinner     spinner.Model
	progressBar progress.Model
	destInput   textinput.Model
	prompt      promptKind

	// task state
	active       *task.Task
	busy         bool
	lastProgress task.Progress
	status       string
	statusIsErr  bool
	// set when the archive changed on disk while a task was running
	reloadPending bool

	width  int
	height int
	ready  bool
}

// NewModel creates the TUI model. The archive is decompiled as soon as
// the program starts.
func NewModel(v *viewer.Viewer, cfg *config.Config, archive string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 48

	return Model{
		viewer:         v,
		cfg:            cfg,
		styles:         DefaultStyles(),
		initialArchive: archive,
		expanded:       make(map[*nstree.Package]bool),
		spinner:        sp,
		progressBar:    progress.New(progress.WithDefaultGradient()),
		destInput:      ti,
		status:         "Ready",
	}
}

// Init starts the spinner and the initial decompile.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startDecompile(m.initialArchive))
}

// startDecompile launches a decompile task and begins draining it.
func (m *Model) startDecompile(archive string) tea.Cmd {
	t := m.viewer.OpenArchive(context.Background(), archive)
	m.active = t
	m.busy = true
	m.statusIsErr = false
	m.lastProgress = task.Progress{}
	return drainTask(t)
}

// startExport launches an export task for the given prompt kind.
func (m *Model) startExport(kind promptKind, dest string) tea.Cmd {
	var t *task.Task
	if kind == promptExportZip {
		t = m.viewer.ExportArchive(context.Background(), dest)
	} else {
		t = m.viewer.ExportDir(context.Background(), dest)
	}
	m.active = t
	m.busy = true
	m.statusIsErr = false
	m.lastProgress = task.Progress{}
	return drainTask(t)
}

// drainTask returns a command that yields the task's next event. Update
// re-issues it after every progress message, so the stream is consumed
// one event per message without blocking the interactive loop anywhere
// but inside the command goroutine.
func drainTask(t *task.Task) tea.Cmd {
	return func() tea.Msg {
		if p, ok := <-t.Events(); ok {
			return taskProgressMsg{progress: p}
		}
		return taskOutcomeMsg{kind: t.Kind(), outcome: <-t.Done()}
	}
}

// rebuildRows refreshes the sidebar from the viewer's current tree.
func (m *Model) rebuildRows() {
	tree := m.viewer.Tree()

	// A fresh tree invalidates the old pointer-keyed expansion state.
	m.expanded = make(map[*nstree.Package]bool)
	// Top-level packages start expanded, mirroring how small archives
	// are browsed; everything deeper starts collapsed.
	for _, child := range tree.Children {
		if pkg, ok := child.(*nstree.Package); ok {
			m.expanded[pkg] = true
		}
	}

	m.rows = visibleRows(tree, m.expanded)
	if m.cursor >= len(m.rows) {
		m.cursor = 0
	}
}

// currentRow returns the row under the cursor, if any.
func (m *Model) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// showSelected loads the cursor's member into the source pane.
func (m *Model) showSelected() {
	r, ok := m.currentRow()
	if !ok {
		return
	}
	member := r.member()
	if member == nil {
		return
	}

	m.selected = member.QualifiedName
	text, spans := m.viewer.HighlightedContent(member.QualifiedName)
	m.viewport.SetContent(m.styles.renderSource(text, spans))
	m.viewport.GotoTop()
}
