package teaui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/polines/pkg/grid"
	"tableflip.dev/polines/pkg/lineitem"
)

const gutter = "  "

// View renders the grid, any prompt and the footer.
func (m *Model) View() string {
	var sections []string

	title := "Purchase order"
	if m.view.DocumentID != "" {
		title += " " + m.view.DocumentID
	}
	sections = append(sections, m.theme.Grid.Header.Render(fmt.Sprintf("%s · %s", title, m.view.Variant)))
	sections = append(sections, m.renderBody())

	if m.mode == modeSearch {
		sections = append(sections, "/"+m.input.View())
	}
	sections = append(sections, m.chrome.Views()...)

	return m.clip(strings.Join(sections, "\n\n"))
}

func (m *Model) renderBody() string {
	switch m.view.State {
	case grid.StateLoading:
		return m.theme.Grid.Empty.Render("Loading line items…")
	case grid.StateError:
		return m.theme.Grid.Error.Render(m.view.Message)
	case grid.StateEmpty:
		lines := []string{m.renderHeader(), m.theme.Grid.Empty.Render("No line items")}
		return strings.Join(lines, "\n")
	}

	lines := make([]string, 0, len(m.view.Rows)+1)
	lines = append(lines, m.renderHeader())
	for i, row := range m.view.Rows {
		lines = append(lines, m.renderRow(i, row))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderHeader() string {
	cells := []string{fit("#", 4)}
	for _, c := range m.dataColumns() {
		cells = append(cells, fit(c.Title, m.width(c)))
	}
	return m.theme.Grid.Header.Render(strings.Join(cells, gutter))
}

func (m *Model) renderRow(index int, row grid.Row) string {
	cursor := index == m.row
	marker := " "
	if cursor {
		marker = "›"
	}
	cells := []string{fit(marker+row.Order, 4)}
	base := m.theme.Grid.Cell
	if row.Received {
		base = m.theme.Grid.Received
	}
	for ci, c := range m.dataColumns() {
		w := m.width(c)
		style := base
		if c.Kind == grid.KindAmount && !row.Received {
			style = m.theme.Grid.Amount
		}
		text := m.cellText(row, c)
		if cursor && ci == m.col {
			if m.mode == modeEdit {
				cells = append(cells, m.theme.Grid.Editing.Render(fit(m.input.View(), w)))
				continue
			}
			style = m.theme.Grid.Cursor
		}
		cells = append(cells, style.Render(fit(text, w)))
	}
	return strings.Join(cells, gutter)
}

func (m *Model) cellText(row grid.Row, c grid.Column) string {
	switch c.Kind {
	case grid.KindStatus:
		parts := make([]string, 0, len(row.Statuses))
		for _, s := range row.Statuses {
			box := "[ ]"
			if s.Checked {
				box = "[x]"
			}
			parts = append(parts, box+s.Token)
		}
		return strings.Join(parts, " ")
	case grid.KindCheckbox:
		if row.Received {
			return "[x]"
		}
		return "[ ]"
	default:
		return row.Value(c.Field)
	}
}

// width is the display width of a column.
func (m *Model) width(c grid.Column) int {
	switch c.Kind {
	case grid.KindStatus:
		w := 0
		for _, s := range m.editor.Vocabulary() {
			w += lipgloss.Width(s) + 4
		}
		return max(w-1, lipgloss.Width(c.Title))
	case grid.KindCheckbox:
		return max(3, lipgloss.Width(c.Title))
	case grid.KindAmount:
		return 11
	case grid.KindSelect:
		return 16
	}
	if _, ok := lineitem.SizeFor(c.Field); ok {
		return 5
	}
	switch c.Field {
	case lineitem.FieldDescription:
		return 24
	case lineitem.FieldQuantity:
		return 5
	case lineitem.FieldUnitPer:
		return 8
	case lineitem.FieldCustomer:
		return 14
	case lineitem.FieldColor:
		return 10
	default:
		return max(10, lipgloss.Width(c.Title))
	}
}

// fit truncates or pads s to exactly w cells.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = truncate.StringWithTail(s, uint(w), "…")
	return padding.String(s, uint(w))
}

func (m *Model) clip(s string) string {
	if m.termWidth <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = truncate.StringWithTail(l, uint(m.termWidth), "…")
	}
	return strings.Join(lines, "\n")
}
