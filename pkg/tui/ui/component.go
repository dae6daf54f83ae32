// Package ui holds the contract shared by the editor's widgets.
package ui

import tea "github.com/charmbracelet/bubbletea/v2"

// Component is a widget drawn around the line item grid.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (Component, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Layout gives every component the full terminal width and the height it
// asked for, in order.
type Layout struct {
	Components []Component
	Heights    []int
}

// Resize applies a terminal size. Components beyond Heights get height 0.
func (l Layout) Resize(width int) {
	for i, c := range l.Components {
		h := 0
		if i < len(l.Heights) {
			h = l.Heights[i]
		}
		c.SetSize(width, h)
	}
}

// Views renders the components that have something to show.
func (l Layout) Views() []string {
	out := make([]string, 0, len(l.Components))
	for _, c := range l.Components {
		if v := c.View(); v != "" {
			out = append(out, v)
		}
	}
	return out
}
