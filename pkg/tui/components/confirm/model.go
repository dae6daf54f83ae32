// Package confirm renders the yes/no prompt guarding row deletion.
package confirm

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/polines/pkg/tui/theme"
	"tableflip.dev/polines/pkg/tui/ui"
)

// Model is the delete confirmation box.
type Model struct {
	theme  theme.ModalTheme
	width  int
	target string
}

var _ ui.Component = (*Model)(nil)

// New returns a confirmation box using th.
func New(th theme.ModalTheme) *Model {
	return &Model{theme: th}
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Component.
func (m *Model) Update(tea.Msg) (ui.Component, tea.Cmd) { return m, nil }

// SetSize implements ui.Component.
func (m *Model) SetSize(width, _ int) { m.width = width }

// Ask shows the prompt for label.
func (m *Model) Ask(label string) { m.target = label }

// Clear hides the prompt.
func (m *Model) Clear() { m.target = "" }

// Active reports whether the prompt is showing.
func (m *Model) Active() bool { return m.target != "" }

// View implements ui.Component.
func (m *Model) View() string {
	if m.target == "" {
		return ""
	}
	title := m.theme.Title.Render("Are you sure you want to delete this row?")
	body := m.theme.Body.Render(fmt.Sprintf("%s\n\ny delete · n keep", m.target))
	return m.theme.Frame.Render(title + "\n" + body)
}
