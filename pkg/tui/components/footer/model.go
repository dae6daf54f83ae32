// Package footer renders the status and help lines under the grid.
package footer

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/polines/pkg/tui/theme"
	"tableflip.dev/polines/pkg/tui/ui"
)

// Model is the two line footer: summary plus status, then key help.
type Model struct {
	theme theme.FooterTheme
	width int

	summary string
	filter  string
	status  string
	help    string
}

var _ ui.Component = (*Model)(nil)

// New returns a footer using th.
func New(th theme.FooterTheme) *Model {
	return &Model{theme: th}
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Component.
func (m *Model) Update(tea.Msg) (ui.Component, tea.Cmd) { return m, nil }

// SetSize implements ui.Component. Only the width matters.
func (m *Model) SetSize(width, _ int) { m.width = width }

// SetSummary sets the record count and total.
func (m *Model) SetSummary(s string) { m.summary = s }

// SetFilter shows the active search and department.
func (m *Model) SetFilter(s string) { m.filter = s }

// SetStatus sets the transient status message.
func (m *Model) SetStatus(s string) { m.status = s }

// Status returns the current status message.
func (m *Model) Status() string { return m.status }

// SetHelp sets the key help line.
func (m *Model) SetHelp(s string) { m.help = s }

// View implements ui.Component.
func (m *Model) View() string {
	var top []string
	if m.summary != "" {
		top = append(top, m.theme.Summary.Render(m.summary))
	}
	if m.filter != "" {
		top = append(top, m.theme.Filter.Render(m.filter))
	}
	if m.status != "" {
		top = append(top, m.theme.Status.Render(m.status))
	}
	lines := []string{strings.Join(top, "  ·  ")}
	if m.help != "" {
		lines = append(lines, m.theme.Help.Render(m.help))
	}
	if m.width > 0 {
		for i := range lines {
			lines[i] = truncate.StringWithTail(lines[i], uint(m.width), "…")
		}
	}
	return strings.Join(lines, "\n")
}
