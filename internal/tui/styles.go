package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jarlens/internal/highlight"
)

// Styles collects every lipgloss style the viewer renders with. The
// source palette follows the Swing tool this replaces: keywords bold
// purple, strings blue, comments green italics.
type Styles struct {
	Keyword     lipgloss.Style
	String      lipgloss.Style
	Comment     lipgloss.Style
	Header      lipgloss.Style
	StatusBar   lipgloss.Style
	StatusError lipgloss.Style
	Sidebar     lipgloss.Style
	PackageRow  lipgloss.Style
	MemberRow   lipgloss.Style
	SelectedRow lipgloss.Style
	HelpBar     lipgloss.Style
	PromptLabel lipgloss.Style
}

// DefaultStyles returns the standard color scheme.
func DefaultStyles() Styles {
	return Styles{
		Keyword:     lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true),
		String:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Comment:     lipgloss.NewStyle().Foreground(lipgloss.Color("71")).Italic(true),
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1),
		StatusBar:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Sidebar:     lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderRight(true).BorderForeground(lipgloss.Color("240")),
		PackageRow:  lipgloss.NewStyle().Foreground(lipgloss.Color("110")),
		MemberRow:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		SelectedRow: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true),
		HelpBar:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		PromptLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
	}
}

// renderSource applies span styling to highlighted text. Spans partition
// the text, so concatenating the styled pieces reproduces it exactly.
func (s Styles) renderSource(text string, spans []highlight.Span) string {
	var b strings.Builder
	b.Grow(len(text) * 2)
	for _, sp := range spans {
		piece := sp.Text(text)
		switch sp.Kind {
		case highlight.KindKeyword:
			b.WriteString(s.Keyword.Render(piece))
		case highlight.KindString:
			b.WriteString(s.String.Render(piece))
		case highlight.KindLineComment, highlight.KindBlockComment:
			b.WriteString(s.Comment.Render(piece))
		default:
			b.WriteString(piece)
		}
	}
	return b.String()
}
