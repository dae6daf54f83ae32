package teaui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"tableflip.dev/polines/pkg/app"
	"tableflip.dev/polines/pkg/grid"
	"tableflip.dev/polines/pkg/tui/components/confirm"
	"tableflip.dev/polines/pkg/tui/components/footer"
	"tableflip.dev/polines/pkg/tui/events"
	"tableflip.dev/polines/pkg/tui/theme"
	"tableflip.dev/polines/pkg/tui/ui"
)

// Model states
type mode int

const (
	modeNormal mode = iota
	modeEdit
	modeSearch
	modeConfirm
)

const componentID = events.ComponentID("grid")

// Option configures a Model.
type Option func(*Model)

// WithLoads feeds documents into the editor while the UI runs.
func WithLoads(ch <-chan tea.Msg) Option {
	return func(m *Model) { m.loads = ch }
}

// WithLogger sets the logger. The UI owns the terminal, so it should not
// write to stdout or stderr.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Model) { m.log = l }
}

// Model contains UI state
type Model struct {
	editor *app.Editor
	log    logrus.FieldLogger
	loads  <-chan tea.Msg

	mode mode
	row  int
	col  int

	input        textinput.Model
	searchBefore string

	view grid.View

	termWidth  int
	termHeight int

	theme   theme.Theme
	footer  *footer.Model
	confirm *confirm.Model
	chrome  ui.Layout
}

// New creates a new UI model driving editor.
func New(editor *app.Editor, opts ...Option) *Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.VirtualCursor = true
	ti.Styles.Cursor.Color = lipgloss.Color("212")
	ti.Styles.Cursor.Shape = tea.CursorBlock
	ti.Styles.Cursor.Blink = true

	th := theme.Default()
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	m := &Model{
		editor:  editor,
		log:     discard,
		mode:    modeNormal,
		input:   ti,
		theme:   th,
		footer:  footer.New(th.Footer),
		confirm: confirm.New(th.Modal),
	}
	m.chrome = ui.Layout{
		Components: []ui.Component{m.confirm, m.footer},
		Heights:    []int{0, 2},
	}
	for _, o := range opts {
		o(m)
	}
	m.refresh()
	return m
}

// Run launches the interactive TUI program.
func Run(editor *app.Editor, opts ...Option) error {
	p := tea.NewProgram(New(editor, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init starts listening for documents.
func (m *Model) Init() tea.Cmd {
	return m.waitForLoad()
}

func (m *Model) waitForLoad() tea.Cmd {
	if m.loads == nil {
		return nil
	}
	ch := m.loads
	return func() tea.Msg {
		if msg, ok := <-ch; ok {
			return msg
		}
		return nil
	}
}

// Update handles Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.chrome.Resize(msg.Width)
	case events.LoadMsg:
		m.handleLoad(msg)
		cmds = append(cmds, m.waitForLoad())
	case events.LoadErrorMsg:
		m.setStatus(fmt.Sprintf("Skipped %s: %v", msg.Source, msg.Err))
		cmds = append(cmds, m.waitForLoad())
	case events.RowChangeMsg:
		m.log.WithField("component", msg.Component).Debug(msg.Describe())
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if cmd := m.handleKeyPress(msg, &cmds); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	m.refresh()
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleLoad(msg events.LoadMsg) {
	if m.mode == modeEdit || m.mode == modeSearch {
		m.input.Blur()
	}
	m.mode = modeNormal
	m.confirm.Clear()
	if err := m.editor.Load(msg.Payload, msg.Variant); err != nil {
		m.log.WithError(err).WithField("source", msg.Source).Warn("load failed")
		m.setStatus("Load failed: " + msg.Source)
		return
	}
	m.row, m.col = 0, 0
	m.setStatus("Loaded " + msg.Source)
}

// refresh re-projects the editor and keeps the cursor in range.
func (m *Model) refresh() {
	m.view = m.editor.View()
	if m.row >= len(m.view.Rows) {
		m.row = len(m.view.Rows) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	cols := m.dataColumns()
	if m.col >= len(cols) {
		m.col = len(cols) - 1
	}
	if m.col < 0 {
		m.col = 0
	}
	m.footer.SetSummary(fmt.Sprintf("%d items · Total %s", m.view.Summary.Count, m.view.Total))
	m.footer.SetFilter(filterLabel(m.view))
	m.footer.SetHelp(m.help())
}

func filterLabel(v grid.View) string {
	var parts []string
	if v.Criteria.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", v.Criteria.Search))
	}
	if v.Criteria.Department != "" {
		parts = append(parts, "dept "+v.Criteria.Department)
	}
	return strings.Join(parts, " · ")
}

func (m *Model) help() string {
	switch m.mode {
	case modeEdit:
		return "Edit · Enter/Tab next · Esc cancel"
	case modeSearch:
		return "Search · Enter apply · Esc restore"
	case modeConfirm:
		return "Delete · y confirm · n keep"
	default:
		return "j/k rows · h/l cells · Enter edit · Space rec'd · 1-9 status · [/] dept · / search · f facet · n new · x delete · J/K move · q quit"
	}
}

func (m *Model) setStatus(msg string) {
	m.footer.SetStatus(msg)
}

func (m *Model) reportError(err error) {
	switch {
	case err == nil:
	case errors.Is(err, app.ErrBusy):
		m.setStatus("Finish the current edit first")
	default:
		m.setStatus("ERR: " + err.Error())
	}
}

func (m *Model) dataColumns() []grid.Column {
	var cols []grid.Column
	for _, c := range m.view.Columns {
		if c.Data() {
			cols = append(cols, c)
		}
	}
	return cols
}

func (m *Model) currentRow() (grid.Row, bool) {
	if m.row < 0 || m.row >= len(m.view.Rows) {
		return grid.Row{}, false
	}
	return m.view.Rows[m.row], true
}

func (m *Model) currentColumn() (grid.Column, bool) {
	cols := m.dataColumns()
	if m.col < 0 || m.col >= len(cols) {
		return grid.Column{}, false
	}
	return cols[m.col], true
}

// selectRow puts the cursor on row id if it is visible.
func (m *Model) selectRow(id string) {
	m.view = m.editor.View()
	for i, r := range m.view.Rows {
		if r.ID == id {
			m.row = i
			return
		}
	}
}

func (m *Model) selectColumn(field string) {
	for i, c := range m.dataColumns() {
		if string(c.Field) == field {
			m.col = i
			return
		}
	}
}

func changed(kind events.ChangeType, id, field string) tea.Cmd {
	return func() tea.Msg {
		return events.RowChangeMsg{Component: componentID, Change: kind, ID: id, Field: field}
	}
}
