package edit

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tableflip.dev/polines/pkg/dispatch"
	"tableflip.dev/polines/pkg/lineitem"
	"tableflip.dev/polines/pkg/store"
)

// Notifier receives committed changes.
type Notifier interface {
	Notify(dispatch.Change)
}

// Option configures a Controller.
type Option func(*Controller)

// WithVocabulary sets the status tokens.
func WithVocabulary(v lineitem.StatusVocabulary) Option {
	return func(c *Controller) { c.vocab = v }
}

// WithIDs replaces the id generator used for new rows.
func WithIDs(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) { c.log = l }
}

// Controller applies user edits to the store and reports each one.
type Controller struct {
	store  *store.Store
	notify Notifier
	vocab  lineitem.StatusVocabulary
	newID  func() string
	log    logrus.FieldLogger

	session *Session
	pending string
}

// NewController returns a controller editing s and reporting to n.
func NewController(s *store.Store, n Notifier, opts ...Option) *Controller {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	c := &Controller{
		store:  s,
		notify: n,
		vocab:  lineitem.DefaultStatusVocabulary,
		newID:  uuid.NewString,
		log:    discard,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Phase is Editing while a session is open, otherwise Idle.
func (c *Controller) Phase() Phase {
	if c.session != nil {
		return Editing
	}
	return Idle
}

// Session returns the open session, if any.
func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Draggable reports whether row id may start a drag.
func (c *Controller) Draggable(id string) bool {
	return c.session == nil || c.session.ID != id
}

// Focus opens a session on slot. Focusing another slot while editing
// commits the current one first.
func (c *Controller) Focus(slot Slot) error {
	v := c.store.Variant()
	if !v.Editable(slot.Field) {
		return fmt.Errorf("%w: %s (%s)", ErrNotEditable, slot.Field, v)
	}
	it, err := c.store.Find(slot.ID)
	if err != nil {
		return err
	}
	if c.session != nil {
		if c.session.Slot == slot {
			return nil
		}
		if _, err := c.Blur(); err != nil {
			return err
		}
	}
	value := it.Get(slot.Field)
	c.session = &Session{Slot: slot, Snapshot: value, Draft: value}
	return nil
}

// Input replaces the draft value of the open session.
func (c *Controller) Input(value string) error {
	if c.session == nil {
		return ErrNoSession
	}
	c.session.Draft = value
	return nil
}

// Blur closes the session. A changed value is written to the record and
// reported; the outcome is Committed. Otherwise nothing happens and the
// outcome is Idle.
func (c *Controller) Blur() (Phase, error) {
	s := c.session
	if s == nil {
		return Idle, ErrNoSession
	}
	c.session = nil
	if !s.Changed() {
		return Idle, nil
	}
	old, err := c.store.Update(s.ID, s.Field, s.Value())
	if err != nil {
		return Idle, fmt.Errorf("edit: commit %s.%s: %w", s.ID, s.Field, err)
	}
	c.emit(dispatch.FieldChange{ID: s.ID, Field: string(s.Field), OldValue: old, NewValue: s.Value()})
	return Committed, nil
}

// Cancel discards the open session. The record keeps its snapshot value.
func (c *Controller) Cancel() (Phase, error) {
	if c.session == nil {
		return Idle, ErrNoSession
	}
	c.session = nil
	return Cancelled, nil
}

// Advance commits the open session and focuses the next editable slot: the
// next field of the row, else the first field of the next visible row. At
// the last slot it only commits.
func (c *Controller) Advance() (Phase, error) {
	if c.session == nil {
		return Idle, ErrNoSession
	}
	slot := c.session.Slot
	phase, err := c.Blur()
	if err != nil {
		return phase, err
	}
	next, ok := c.Next(slot)
	if !ok {
		return phase, nil
	}
	return phase, c.Focus(next)
}

// Next returns the editable slot after slot in visual order.
func (c *Controller) Next(slot Slot) (Slot, bool) {
	fields := c.store.Variant().EditableFields()
	for i, f := range fields {
		if f == slot.Field && i+1 < len(fields) {
			return Slot{ID: slot.ID, Field: fields[i+1]}, true
		}
	}
	rows := c.store.Visual()
	for i, it := range rows {
		if it.ID == slot.ID && i+1 < len(rows) {
			return Slot{ID: rows[i+1].ID, Field: fields[0]}, true
		}
	}
	return Slot{}, false
}

// ToggleReceived sets the received checkbox of row id.
func (c *Controller) ToggleReceived(id string, checked bool) error {
	value := ""
	if checked {
		value = lineitem.ReceivedOn
	}
	changed, old, err := c.set(id, lineitem.FieldReceived, value)
	if err != nil || !changed {
		return err
	}
	c.emit(dispatch.FieldChange{ID: id, Field: string(lineitem.FieldReceived), OldValue: old, NewValue: value, Checked: &checked})
	return nil
}

// ToggleStatus checks or unchecks token in the status of row id.
func (c *Controller) ToggleStatus(id, token string, checked bool) error {
	if !c.vocab.Contains(token) {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, token)
	}
	it, err := c.store.Find(id)
	if err != nil {
		return err
	}
	items := c.vocab.Toggle(it.Status, token, checked)
	value := lineitem.EncodeStatus(items)
	changed, old, err := c.set(id, lineitem.FieldStatus, value)
	if err != nil || !changed {
		return err
	}
	c.emit(dispatch.FieldChange{ID: id, Field: string(lineitem.FieldStatus), OldValue: old, NewValue: value, CheckedItems: items})
	return nil
}

// SelectDepartment sets the department of row id. An empty name clears it.
func (c *Controller) SelectDepartment(id, department string) error {
	if department != "" && !lineitem.IsDepartment(department) {
		return fmt.Errorf("%w: %q", ErrUnknownDepartment, department)
	}
	changed, old, err := c.set(id, lineitem.FieldDepartment, department)
	if err != nil || !changed {
		return err
	}
	c.emit(dispatch.FieldChange{ID: id, Field: string(lineitem.FieldDepartment), OldValue: old, NewValue: department})
	return nil
}

func (c *Controller) set(id string, f lineitem.Field, value string) (bool, string, error) {
	it, err := c.store.Find(id)
	if err != nil {
		return false, "", err
	}
	if it.Get(f) == value {
		return false, "", nil
	}
	old, err := c.store.Update(id, f, value)
	if err != nil {
		return false, "", err
	}
	return true, old, nil
}

// RequestDelete arms deletion of row id until ConfirmDelete answers.
func (c *Controller) RequestDelete(id string) error {
	if _, err := c.store.Find(id); err != nil {
		return err
	}
	c.pending = id
	return nil
}

// PendingDelete returns the row awaiting confirmation.
func (c *Controller) PendingDelete() (string, bool) {
	return c.pending, c.pending != ""
}

// ConfirmDelete applies or discards the pending delete. It reports whether a
// row was removed.
func (c *Controller) ConfirmDelete(ok bool) (bool, error) {
	id := c.pending
	c.pending = ""
	if id == "" || !ok {
		return false, nil
	}
	if c.session != nil && c.session.ID == id {
		c.session = nil
	}
	if _, err := c.store.Remove(id); err != nil {
		return false, err
	}
	c.emit(dispatch.DeleteRow{ID: id})
	return true, nil
}

// Delete removes row id when confirm agrees.
func (c *Controller) Delete(id string, confirm func() bool) (bool, error) {
	if err := c.RequestDelete(id); err != nil {
		return false, err
	}
	return c.ConfirmDelete(confirm != nil && confirm())
}

// NewRow appends a blank row after every other and returns its id.
func (c *Controller) NewRow() (string, error) {
	doc := c.store.Document()
	if doc == nil {
		return "", store.ErrNotLoaded
	}
	id := c.newID()
	if err := c.store.Append(lineitem.CreateBlank(doc.Variant, id, doc.NextOrder())); err != nil {
		return "", err
	}
	c.emit(dispatch.NewRow{ID: id})
	return id, nil
}

func (c *Controller) emit(ch dispatch.Change) {
	c.log.WithField("mode", ch.Mode()).Debug(ch.Describe())
	if c.notify != nil {
		c.notify.Notify(ch)
	}
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
