package teaui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/polines/pkg/edit"
	"tableflip.dev/polines/pkg/grid"
	"tableflip.dev/polines/pkg/lineitem"
	"tableflip.dev/polines/pkg/tui/events"
)

func (m *Model) handleKeyPress(msg tea.KeyPressMsg, cmds *[]tea.Cmd) tea.Cmd {
	switch m.mode {
	case modeEdit:
		return m.handleEditKey(msg, cmds)
	case modeSearch:
		return m.handleSearchKey(msg, cmds)
	case modeConfirm:
		return m.handleConfirmKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "q":
		return tea.Quit
	case "j", "down":
		m.row++
	case "k", "up":
		m.row--
	case "h", "left":
		m.col--
	case "l", "right":
		m.col++
	case "g":
		m.row = 0
	case "G":
		m.row = len(m.view.Rows) - 1
	case "enter":
		return m.activate()
	case "space", " ":
		return m.toggleReceived()
	case "[":
		return m.cycleDepartment(-1)
	case "]":
		return m.cycleDepartment(1)
	case "/":
		m.beginSearch()
	case "f":
		m.cycleFacet()
	case "n":
		return m.newRow()
	case "x":
		m.requestDelete()
	case "J":
		return m.move(1)
	case "K":
		return m.move(-1)
	case "esc":
		m.setStatus("")
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= 9 {
			return m.toggleStatus(n - 1)
		}
	}
	return nil
}

// activate acts on the cell under the cursor.
func (m *Model) activate() tea.Cmd {
	col, ok := m.currentColumn()
	if !ok {
		return nil
	}
	switch col.Kind {
	case grid.KindText:
		m.beginEdit(col.Field)
	case grid.KindCheckbox:
		return m.toggleReceived()
	case grid.KindSelect:
		return m.cycleDepartment(1)
	case grid.KindStatus:
		return m.toggleStatus(0)
	default:
		m.setStatus(col.Title + " is computed")
	}
	return nil
}

func (m *Model) beginEdit(field lineitem.Field) {
	row, ok := m.currentRow()
	if !ok {
		return
	}
	if err := m.editor.Focus(edit.Slot{ID: row.ID, Field: field}); err != nil {
		m.reportError(err)
		return
	}
	m.openSession()
}

// openSession mirrors the editor's session into the text input.
func (m *Model) openSession() bool {
	sess, ok := m.editor.Session()
	if !ok {
		m.mode = modeNormal
		m.input.Blur()
		return false
	}
	m.selectRow(sess.ID)
	m.selectColumn(string(sess.Field))
	m.mode = modeEdit
	m.input.SetValue(sess.Draft)
	m.input.CursorEnd()
	m.input.Focus()
	return true
}

func (m *Model) handleEditKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) tea.Cmd {
	switch msg.String() {
	case "enter", "tab":
		sess, _ := m.editor.Session()
		if err := m.editor.Input(m.input.Value()); err != nil {
			m.reportError(err)
			return nil
		}
		phase, err := m.editor.Advance()
		if err != nil {
			m.reportError(err)
		}
		m.openSession()
		if phase == edit.Committed {
			m.setStatus("Saved " + string(sess.Field))
			return changed(events.ChangeUpdate, sess.ID, string(sess.Field))
		}
		return nil
	case "esc":
		if _, err := m.editor.Cancel(); err != nil {
			m.reportError(err)
		}
		m.mode = modeNormal
		m.input.Blur()
		m.setStatus("Edit cancelled")
		return nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if cmd != nil {
			*cmds = append(*cmds, cmd)
		}
		return nil
	}
}

func (m *Model) beginSearch() {
	m.searchBefore = m.view.Criteria.Search
	m.mode = modeSearch
	m.input.SetValue(m.searchBefore)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) handleSearchKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.reportError(m.editor.SetSearch(m.input.Value()))
		m.mode = modeNormal
		m.input.Blur()
		m.row = 0
		return nil
	case "esc":
		m.reportError(m.editor.SetSearch(m.searchBefore))
		m.mode = modeNormal
		m.input.Blur()
		return nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if cmd != nil {
			*cmds = append(*cmds, cmd)
		}
		m.reportError(m.editor.SetSearch(m.input.Value()))
		return nil
	}
}

// cycleFacet steps the department filter through "all" and each department.
func (m *Model) cycleFacet() {
	depts := m.view.Departments
	next := ""
	current := m.view.Criteria.Department
	if current == "" && len(depts) > 0 {
		next = depts[0]
	}
	for i, d := range depts {
		if d == current && i+1 < len(depts) {
			next = depts[i+1]
		}
	}
	m.reportError(m.editor.SetDepartment(next))
	m.row = 0
}

func (m *Model) toggleReceived() tea.Cmd {
	row, ok := m.currentRow()
	if !ok {
		return nil
	}
	if err := m.editor.ToggleReceived(row.ID, !row.Received); err != nil {
		m.reportError(err)
		return nil
	}
	return changed(events.ChangeUpdate, row.ID, string(lineitem.FieldReceived))
}

func (m *Model) toggleStatus(index int) tea.Cmd {
	row, ok := m.currentRow()
	if !ok || index >= len(row.Statuses) {
		return nil
	}
	check := row.Statuses[index]
	if err := m.editor.ToggleStatus(row.ID, check.Token, !check.Checked); err != nil {
		m.reportError(err)
		return nil
	}
	return changed(events.ChangeUpdate, row.ID, string(lineitem.FieldStatus))
}

// cycleDepartment steps through "" and the department catalog.
func (m *Model) cycleDepartment(step int) tea.Cmd {
	row, ok := m.currentRow()
	if !ok {
		return nil
	}
	options := append([]string{""}, lineitem.Departments...)
	at := 0
	for i, d := range options {
		if d == row.Department {
			at = i
			break
		}
	}
	at = (at + step + len(options)) % len(options)
	if err := m.editor.SelectDepartment(row.ID, options[at]); err != nil {
		m.reportError(err)
		return nil
	}
	return changed(events.ChangeUpdate, row.ID, string(lineitem.FieldDepartment))
}

func (m *Model) newRow() tea.Cmd {
	id, err := m.editor.NewRow()
	if err != nil {
		m.reportError(err)
		return nil
	}
	m.selectRow(id)
	m.setStatus("Row added")
	return changed(events.ChangeCreate, id, "")
}

func (m *Model) requestDelete() {
	row, ok := m.currentRow()
	if !ok {
		return
	}
	if err := m.editor.RequestDelete(row.ID); err != nil {
		m.reportError(err)
		return
	}
	label := row.ItemNumber
	if label == "" {
		label = "row " + row.Order
	}
	m.confirm.Ask(label)
	m.mode = modeConfirm
}

func (m *Model) handleConfirmKey(msg tea.KeyPressMsg) tea.Cmd {
	var ok bool
	switch msg.String() {
	case "y", "Y":
		ok = true
	case "n", "N", "esc", "q":
	default:
		return nil
	}
	id, _ := m.editor.PendingDelete()
	m.confirm.Clear()
	m.mode = modeNormal
	removed, err := m.editor.ConfirmDelete(ok)
	if err != nil {
		m.reportError(err)
		return nil
	}
	if !removed {
		m.setStatus("Delete cancelled")
		return nil
	}
	m.setStatus("Row deleted")
	return changed(events.ChangeDelete, id, "")
}

func (m *Model) move(delta int) tea.Cmd {
	row, ok := m.currentRow()
	if !ok {
		return nil
	}
	updates, err := m.editor.Move(row.ID, delta)
	if err != nil {
		m.reportError(err)
		return nil
	}
	m.selectRow(row.ID)
	if len(updates) == 0 {
		return nil
	}
	return changed(events.ChangeReorder, row.ID, string(lineitem.FieldOrder))
}
