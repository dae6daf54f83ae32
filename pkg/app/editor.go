// Package app ties the record store, edit and reorder controllers and the
// change dispatcher together behind one Editor that UIs and CLIs share.
package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"tableflip.dev/polines/pkg/dispatch"
	"tableflip.dev/polines/pkg/edit"
	"tableflip.dev/polines/pkg/filter"
	"tableflip.dev/polines/pkg/grid"
	"tableflip.dev/polines/pkg/lineitem"
	"tableflip.dev/polines/pkg/reorder"
	"tableflip.dev/polines/pkg/store"
)

// ErrBusy is returned when an interaction starts while another holds the
// editor: a cell edit, a drag or a delete awaiting confirmation.
var ErrBusy = errors.New("app: another interaction is in progress")

// LoadErrorPrefix starts every load failure message.
const LoadErrorPrefix = "Failed to load line items: "

// Option configures an Editor.
type Option func(*options)

type options struct {
	bridge dispatch.Bridge
	script string
	log    logrus.FieldLogger
	vocab  lineitem.StatusVocabulary
	ids    func() string
}

// WithBridge sets the host bridge. Without one changes are only logged.
func WithBridge(b dispatch.Bridge) Option {
	return func(o *options) { o.bridge = b }
}

// WithScript sets the host script name.
func WithScript(name string) Option {
	return func(o *options) { o.script = name }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.log = l }
}

// WithVocabulary sets the status tokens.
func WithVocabulary(v lineitem.StatusVocabulary) Option {
	return func(o *options) {
		if len(v) > 0 {
			o.vocab = v
		}
	}
}

// WithIDGenerator replaces the id source for new rows.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.ids = fn }
}

// Editor is the purchase order line editor. It is not safe for concurrent
// use; callers serialise events.
type Editor struct {
	store      *store.Store
	dispatcher *dispatch.Dispatcher
	edits      *edit.Controller
	drag       *reorder.Controller
	vocab      lineitem.StatusVocabulary
	log        logrus.FieldLogger

	state   grid.State
	message string
}

// New returns an editor in the loading state.
func New(opts ...Option) *Editor {
	o := options{vocab: lineitem.DefaultStatusVocabulary}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.log = l
	}

	s := store.New()
	d := dispatch.New(o.bridge, o.script, o.log)
	editOpts := []edit.Option{edit.WithVocabulary(o.vocab), edit.WithLogger(o.log)}
	if o.ids != nil {
		editOpts = append(editOpts, edit.WithIDs(o.ids))
	}
	return &Editor{
		store:      s,
		dispatcher: d,
		edits:      edit.NewController(s, d, editOpts...),
		drag:       reorder.NewController(s, d),
		vocab:      o.vocab,
		log:        o.log,
		state:      grid.StateLoading,
	}
}

// Load replaces the document. payload may be raw JSON ([]byte, string,
// json.RawMessage, io.Reader), a decoded JSON object or a *lineitem.Document.
// An empty variant means apparel. On failure the editor shows the error and
// keeps the previous document.
func (e *Editor) Load(payload any, variant string) error {
	doc, err := decode(payload, variant)
	if err != nil {
		e.state = grid.StateError
		e.message = LoadErrorPrefix + err.Error()
		e.log.WithError(err).Warn("load rejected")
		return fmt.Errorf("app: load: %w", err)
	}
	e.reset()
	e.store.Load(doc)
	e.state = grid.StateContent
	e.message = ""
	e.log.WithFields(logrus.Fields{"id": doc.ID, "variant": doc.Variant, "items": len(doc.LineItems)}).Info("document loaded")
	return nil
}

func decode(payload any, variant string) (*lineitem.Document, error) {
	v, err := lineitem.ParseVariant(variant)
	if err != nil {
		return nil, err
	}
	var data []byte
	switch p := payload.(type) {
	case nil:
		return nil, errors.New("no payload")
	case *lineitem.Document:
		if p == nil {
			return nil, errors.New("no payload")
		}
		if p.LineItems == nil {
			return nil, lineitem.ErrMissingLineItems
		}
		doc := lineitem.Document{ID: p.ID, Variant: v, LineItems: make([]*lineitem.LineItem, 0, len(p.LineItems))}
		for _, it := range p.LineItems {
			if it != nil {
				doc.LineItems = append(doc.LineItems, it)
			}
		}
		return &doc, nil
	case []byte:
		data = p
	case json.RawMessage:
		data = p
	case string:
		data = []byte(p)
	case io.Reader:
		if data, err = io.ReadAll(p); err != nil {
			return nil, err
		}
	default:
		if data, err = json.Marshal(p); err != nil {
			return nil, err
		}
	}
	return lineitem.Decode(data, v)
}

// reset drops every in-flight interaction.
func (e *Editor) reset() {
	if e.edits.Phase() == edit.Editing {
		_, _ = e.edits.Cancel()
	}
	_, _ = e.edits.ConfirmDelete(false)
	e.drag.End()
}

// Loaded reports whether a document is loaded.
func (e *Editor) Loaded() bool { return e.store.Loaded() }

// Variant of the loaded document.
func (e *Editor) Variant() lineitem.Variant { return e.store.Variant() }

// Vocabulary returns the status tokens.
func (e *Editor) Vocabulary() lineitem.StatusVocabulary { return e.vocab }

// Document returns the loaded document.
func (e *Editor) Document() *lineitem.Document { return e.store.Document() }

// Criteria returns the active filter.
func (e *Editor) Criteria() filter.Criteria { return e.store.Criteria() }

// SetSearch filters by free text. Any open cell edit is committed first.
func (e *Editor) SetSearch(text string) error {
	c := e.store.Criteria()
	c.Search = text
	return e.setCriteria(c)
}

// SetDepartment filters by department; empty means all.
func (e *Editor) SetDepartment(department string) error {
	c := e.store.Criteria()
	c.Department = department
	return e.setCriteria(c)
}

func (e *Editor) setCriteria(c filter.Criteria) error {
	if err := e.commitOpen(); err != nil {
		return err
	}
	e.drag.End()
	e.store.SetCriteria(c)
	return nil
}

// View projects the editor state for rendering.
func (e *Editor) View() grid.View {
	v := e.store.Variant()
	items := e.store.View()
	rows := grid.Render(items, v, e.vocab)
	summary := grid.Summarize(items, v)

	view := grid.View{
		State:       e.state,
		Message:     e.message,
		Variant:     v.String(),
		Columns:     grid.Columns(v),
		Rows:        rows,
		Summary:     summary,
		Total:       summary.TotalString(),
		Departments: e.store.Departments(),
		Criteria:    e.store.Criteria(),
	}
	if doc := e.store.Document(); doc != nil {
		view.DocumentID = doc.ID
	}
	if e.state == grid.StateContent {
		view.State = grid.StateFor(rows)
	}
	return view
}

// Busy reports whether an interaction holds the editor.
func (e *Editor) Busy() bool {
	_, dragging := e.drag.Dragging()
	_, deleting := e.edits.PendingDelete()
	return dragging || deleting || e.edits.Phase() == edit.Editing
}

// Session returns the open cell edit.
func (e *Editor) Session() (edit.Session, bool) { return e.edits.Session() }

// Focus opens a cell edit on slot.
func (e *Editor) Focus(slot edit.Slot) error {
	if _, dragging := e.drag.Dragging(); dragging {
		return ErrBusy
	}
	if _, deleting := e.edits.PendingDelete(); deleting {
		return ErrBusy
	}
	return e.edits.Focus(slot)
}

// Input sets the draft value of the open cell.
func (e *Editor) Input(value string) error { return e.edits.Input(value) }

// Blur commits the open cell.
func (e *Editor) Blur() (edit.Phase, error) { return e.edits.Blur() }

// Cancel abandons the open cell.
func (e *Editor) Cancel() (edit.Phase, error) { return e.edits.Cancel() }

// Advance commits the open cell and moves to the next one.
func (e *Editor) Advance() (edit.Phase, error) { return e.edits.Advance() }

// ToggleReceived sets the received flag of row id.
func (e *Editor) ToggleReceived(id string, checked bool) error {
	if err := e.immediate(); err != nil {
		return err
	}
	return e.edits.ToggleReceived(id, checked)
}

// ToggleStatus checks or unchecks a status token on row id.
func (e *Editor) ToggleStatus(id, token string, checked bool) error {
	if err := e.immediate(); err != nil {
		return err
	}
	return e.edits.ToggleStatus(id, token, checked)
}

// SelectDepartment sets the department of row id.
func (e *Editor) SelectDepartment(id, department string) error {
	if err := e.immediate(); err != nil {
		return err
	}
	return e.edits.SelectDepartment(id, department)
}

// RequestDelete asks for confirmation before deleting row id.
func (e *Editor) RequestDelete(id string) error {
	if err := e.immediate(); err != nil {
		return err
	}
	return e.edits.RequestDelete(id)
}

// PendingDelete returns the row awaiting confirmation.
func (e *Editor) PendingDelete() (string, bool) { return e.edits.PendingDelete() }

// ConfirmDelete answers the pending delete.
func (e *Editor) ConfirmDelete(ok bool) (bool, error) { return e.edits.ConfirmDelete(ok) }

// Delete removes row id when confirm agrees.
func (e *Editor) Delete(id string, confirm func() bool) (bool, error) {
	if err := e.immediate(); err != nil {
		return false, err
	}
	return e.edits.Delete(id, confirm)
}

// NewRow appends a blank row and returns its id.
func (e *Editor) NewRow() (string, error) {
	if err := e.immediate(); err != nil {
		return "", err
	}
	return e.edits.NewRow()
}

// StartDrag begins dragging row id.
func (e *Editor) StartDrag(id string) error {
	if e.Busy() || !e.edits.Draggable(id) {
		return ErrBusy
	}
	return e.drag.Start(id)
}

// DragOver hovers the dragged row over target.
func (e *Editor) DragOver(target string) reorder.Indicator { return e.drag.Over(target) }

// Indicator returns the drop hint on row id.
func (e *Editor) Indicator(id string) reorder.Indicator { return e.drag.Indicator(id) }

// Drop places the dragged row at target.
func (e *Editor) Drop(target string) ([]dispatch.Update, error) { return e.drag.Drop(target) }

// EndDrag abandons the drag.
func (e *Editor) EndDrag() { e.drag.End() }

// Move shifts row id by delta visible positions, as if dragged onto the row
// at the destination. Moves past either end are clamped.
func (e *Editor) Move(id string, delta int) ([]dispatch.Update, error) {
	rows := e.store.Visual()
	from := -1
	for i, it := range rows {
		if it.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, fmt.Errorf("app: move: %w: %q", store.ErrNotFound, id)
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to >= len(rows) {
		to = len(rows) - 1
	}
	if to == from {
		return nil, nil
	}
	if err := e.StartDrag(id); err != nil {
		return nil, err
	}
	target := rows[to].ID
	e.drag.Over(target)
	return e.drag.Drop(target)
}

// immediate gets the editor ready for a one-shot commit: an open cell is
// committed, a drag blocks.
func (e *Editor) immediate() error {
	if _, dragging := e.drag.Dragging(); dragging {
		return ErrBusy
	}
	if _, deleting := e.edits.PendingDelete(); deleting {
		return ErrBusy
	}
	return e.commitOpen()
}

func (e *Editor) commitOpen() error {
	if e.edits.Phase() != edit.Editing {
		return nil
	}
	_, err := e.edits.Blur()
	return err
}
