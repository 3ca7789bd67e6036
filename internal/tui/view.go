package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jarlens/internal/nstree"
)

const helpText = "↑/↓ move · enter open/toggle · a expand all · e export dir · z export zip · r reload · q quit"

// View renders the full screen.
func (m Model) View() string {
	if !m.ready {
		return "Starting..."
	}

	header := m.styles.Header.Width(m.width).Render(
		fmt.Sprintf("JarLens — %s", filepath.Base(m.initialArchive)))

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), m.viewport.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		m.renderStatus(),
		m.renderHelp(),
	)
}

// renderSidebar draws the package tree with the cursor line highlighted.
func (m Model) renderSidebar() string {
	width := m.cfg.TUI.SidebarWidth
	if width > m.width/2 {
		width = m.width / 2
	}
	height := m.viewport.Height

	// keep the cursor on screen
	top := 0
	if m.cursor >= height {
		top = m.cursor - height + 1
	}

	var lines []string
	for i := top; i < len(m.rows) && i-top < height; i++ {
		r := m.rows[i]
		label := strings.Repeat("  ", r.depth)
		if r.pkg != nil {
			marker := "▸ "
			if m.expanded[r.pkg] {
				marker = "▾ "
			}
			label += marker + r.node.Label() + nstree.Delimiter
		} else {
			label += "  " + r.node.Label()
		}
		if runes := []rune(label); len(runes) > width-1 {
			label = string(runes[:width-1])
		}

		switch {
		case i == m.cursor:
			lines = append(lines, m.styles.SelectedRow.Width(width-1).Render(label))
		case r.pkg != nil:
			lines = append(lines, m.styles.PackageRow.Render(label))
		default:
			lines = append(lines, m.styles.MemberRow.Render(label))
		}
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	return m.styles.Sidebar.Width(width - 1).Height(height).Render(strings.Join(lines, "\n"))
}

// renderStatus draws the status line: prompt, running task, or last message.
func (m Model) renderStatus() string {
	if m.prompt != promptNone {
		return m.styles.PromptLabel.Render(m.destInput.View())
	}
	if m.busy {
		if m.lastProgress.Total > 0 {
			return fmt.Sprintf("%s %s %s",
				m.spinner.View(), m.progressBar.View(), m.styles.StatusBar.Render(m.status))
		}
		return fmt.Sprintf("%s %s", m.spinner.View(), m.styles.StatusBar.Render(m.status))
	}
	if m.statusIsErr {
		return m.styles.StatusError.Render(m.status)
	}
	return m.styles.StatusBar.Render(m.status)
}

func (m Model) renderHelp() string {
	return m.styles.HelpBar.Render(helpText)
}
