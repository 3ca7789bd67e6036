package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"jarlens/internal/task"
)

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		if m.selected != "" {
			m.showSelected()
		}
		return m, nil

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		return m.updateKeys(msg)

	case taskProgressMsg:
		if m.active == nil {
			return m, nil
		}
		m.lastProgress = msg.progress
		if msg.progress.Message != "" {
			m.status = msg.progress.Message
			m.statusIsErr = false
		}
		cmds := []tea.Cmd{drainTask(m.active)}
		if msg.progress.Total > 0 {
			pct := float64(msg.progress.Completed) / float64(msg.progress.Total)
			cmds = append(cmds, m.progressBar.SetPercent(pct))
		}
		return m, tea.Batch(cmds...)

	case taskOutcomeMsg:
		return m.finishTask(msg)

	case archiveChangedMsg:
		if m.busy {
			m.reloadPending = true
			return m, nil
		}
		m.status = "Archive changed on disk, reloading..."
		m.statusIsErr = false
		return m, m.startDecompile(m.initialArchive)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		bar, cmd := m.progressBar.Update(msg)
		m.progressBar = bar.(progress.Model)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// finishTask applies a terminal task outcome to the model.
func (m Model) finishTask(msg taskOutcomeMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.active = nil
	m.lastProgress = task.Progress{}

	switch {
	case !msg.outcome.Success():
		m.status = fmt.Sprintf("%s failed: %v", msg.kind, msg.outcome.Err)
		m.statusIsErr = true
	case msg.kind == task.KindDecompile:
		m.status = fmt.Sprintf("Loaded %s", filepath.Base(m.initialArchive))
		m.statusIsErr = false
	default:
		m.status = "Export complete"
		m.statusIsErr = false
	}

	if msg.kind == task.KindDecompile {
		m.rebuildRows()
		m.selected = ""
		m.viewport.SetContent("")
	}

	if m.reloadPending {
		m.reloadPending = false
		return m, m.startDecompile(m.initialArchive)
	}
	return m, nil
}

// updateKeys handles keys in browse mode.
func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case "enter", " ":
		r, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		if r.pkg != nil {
			m.expanded[r.pkg] = !m.expanded[r.pkg]
			m.rows = visibleRows(m.viewer.Tree(), m.expanded)
			if m.cursor >= len(m.rows) {
				m.cursor = len(m.rows) - 1
			}
			return m, nil
		}
		m.showSelected()
		return m, nil

	case "a":
		expandAll(m.viewer.Tree(), m.expanded)
		m.rows = visibleRows(m.viewer.Tree(), m.expanded)
		return m, nil

	case "e":
		if m.busy {
			return m, nil
		}
		return m.openPrompt(promptExportDir, "Export to directory: ")

	case "z":
		if m.busy {
			return m, nil
		}
		return m.openPrompt(promptExportZip, "Export to archive: ")

	case "r":
		if m.busy {
			return m, nil
		}
		m.status = "Reloading..."
		m.statusIsErr = false
		return m, m.startDecompile(m.initialArchive)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// openPrompt switches to the destination prompt with a sensible default.
func (m Model) openPrompt(kind promptKind, label string) (tea.Model, tea.Cmd) {
	m.prompt = kind
	m.destInput.Prompt = label
	m.destInput.SetValue(defaultDestination(kind, m.initialArchive))
	m.destInput.CursorEnd()
	return m, m.destInput.Focus()
}

// defaultDestination derives an export destination from the archive path.
func defaultDestination(kind promptKind, archive string) string {
	base := archive[:len(archive)-len(filepath.Ext(archive))]
	if kind == promptExportZip {
		return base + "-src.zip"
	}
	return base + "-src"
}

// updatePrompt handles keys while the destination prompt is open.
func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompt = promptNone
		m.destInput.Blur()
		return m, nil

	case "enter":
		dest := m.destInput.Value()
		kind := m.prompt
		m.prompt = promptNone
		m.destInput.Blur()
		if dest == "" {
			return m, nil
		}
		return m, m.startExport(kind, dest)
	}

	var cmd tea.Cmd
	m.destInput, cmd = m.destInput.Update(msg)
	return m, cmd
}

// layout sizes the panes to the terminal.
func (m *Model) layout() {
	sidebar := m.cfg.TUI.SidebarWidth
	if sidebar > m.width/2 {
		sidebar = m.width / 2
	}
	// header, status bar and help bar each take a line
	contentHeight := m.height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}
	m.viewport.Width = m.width - sidebar - 1
	m.viewport.Height = contentHeight
}
