package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
)

type stub struct {
	view          string
	width, height int
}

func (s *stub) Init() tea.Cmd                       { return nil }
func (s *stub) Update(tea.Msg) (Component, tea.Cmd) { return s, nil }
func (s *stub) View() string                        { return s.view }
func (s *stub) SetSize(w, h int)                    { s.width, s.height = w, h }

func TestLayoutResizeAndViews(t *testing.T) {
	modal := &stub{}
	footer := &stub{view: "3 items"}
	l := Layout{Components: []Component{modal, footer}, Heights: []int{0, 2}}

	l.Resize(120)
	if modal.width != 120 || modal.height != 0 {
		t.Fatalf("modal size = %dx%d", modal.width, modal.height)
	}
	if footer.width != 120 || footer.height != 2 {
		t.Fatalf("footer size = %dx%d", footer.width, footer.height)
	}

	views := l.Views()
	if len(views) != 1 || views[0] != "3 items" {
		t.Fatalf("views = %q", views)
	}
}
