// Package reorder moves rows within the visible sequence and renumbers their
// order field.
package reorder

import (
	"fmt"
	"strconv"

	"tableflip.dev/polines/pkg/dispatch"
	"tableflip.dev/polines/pkg/lineitem"
	"tableflip.dev/polines/pkg/store"
)

// Indicator is the insertion hint shown on a drag target.
type Indicator int

const (
	None Indicator = iota
	Before
	After
)

func (i Indicator) String() string {
	switch i {
	case Before:
		return "before"
	case After:
		return "after"
	}
	return "none"
}

// Notifier receives the batch produced by a drop.
type Notifier interface {
	Notify(dispatch.Change)
}

// Controller tracks one drag at a time. Rows are identified by id only.
type Controller struct {
	store  *store.Store
	notify Notifier

	dragged string
	target  string
	hint    Indicator
}

// NewController returns a controller over s reporting to n.
func NewController(s *store.Store, n Notifier) *Controller {
	return &Controller{store: s, notify: n}
}

// Dragging returns the dragged row id.
func (c *Controller) Dragging() (string, bool) {
	return c.dragged, c.dragged != ""
}

// Start marks id as the dragged row. It must be visible.
func (c *Controller) Start(id string) error {
	if _, err := c.store.Find(id); err != nil {
		return err
	}
	if index(c.store.Visual(), id) < 0 {
		return fmt.Errorf("reorder: row %q is not visible", id)
	}
	c.dragged = id
	c.target, c.hint = "", None
	return nil
}

// Over computes the indicator for hovering target. Self and unknown rows
// yield None.
func (c *Controller) Over(target string) Indicator {
	c.target, c.hint = "", None
	if c.dragged == "" || target == c.dragged {
		return None
	}
	rows := c.store.Visual()
	from, to := index(rows, c.dragged), index(rows, target)
	if from < 0 || to < 0 {
		return None
	}
	c.target = target
	if to > from {
		c.hint = After
	} else {
		c.hint = Before
	}
	return c.hint
}

// Indicator returns the hint currently shown on row id.
func (c *Controller) Indicator(id string) Indicator {
	if id != "" && id == c.target {
		return c.hint
	}
	return None
}

// Drop moves the dragged row next to target, renumbers the visible rows and
// reports every changed order in one batch. Dropping on itself, or outside a
// drag, changes nothing. The drag ends either way.
func (c *Controller) Drop(target string) ([]dispatch.Update, error) {
	dragged := c.dragged
	defer c.End()
	if dragged == "" || target == dragged {
		return nil, nil
	}

	rows := c.store.Visual()
	from, to := index(rows, dragged), index(rows, target)
	if from < 0 || to < 0 {
		return nil, nil
	}
	moved := rows[from]
	rest := append(append([]*lineitem.LineItem{}, rows[:from]...), rows[from+1:]...)
	at := index(rest, target)
	if to > from {
		at++
	}
	seq := make([]*lineitem.LineItem, 0, len(rows))
	seq = append(seq, rest[:at]...)
	seq = append(seq, moved)
	seq = append(seq, rest[at:]...)

	var updates []dispatch.Update
	for i, it := range seq {
		order := strconv.Itoa(i + 1)
		if it.Order == order {
			continue
		}
		old, err := c.store.Update(it.ID, lineitem.FieldOrder, order)
		if err != nil {
			return nil, fmt.Errorf("reorder: renumber %q: %w", it.ID, err)
		}
		updates = append(updates, dispatch.Update{ID: it.ID, Field: string(lineitem.FieldOrder), Value: order, OldValue: old})
	}
	if len(updates) > 0 && c.notify != nil {
		c.notify.Notify(dispatch.Batch{PoID: c.store.Document().ID, Updates: updates})
	}
	return updates, nil
}

// End clears the drag and every indicator.
func (c *Controller) End() {
	c.dragged, c.target, c.hint = "", "", None
}

func index(rows []*lineitem.LineItem, id string) int {
	for i, it := range rows {
		if it.ID == id {
			return i
		}
	}
	return -1
}
