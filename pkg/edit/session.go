// Package edit holds the per-cell edit session state machine and the
// immediate-commit row operations (toggles, department, delete, new row).
package edit

import (
	"errors"

	"tableflip.dev/polines/pkg/lineitem"
)

var (
	// ErrNotEditable is returned when focusing a field outside the
	// variant's editable set.
	ErrNotEditable = errors.New("edit: field is not editable")
	// ErrNoSession is returned by session operations while idle.
	ErrNoSession = errors.New("edit: no active edit session")
	// ErrUnknownStatus is returned when toggling a token outside the
	// vocabulary.
	ErrUnknownStatus = errors.New("edit: unknown status token")
	// ErrUnknownDepartment is returned when selecting a department outside
	// the catalog.
	ErrUnknownDepartment = errors.New("edit: unknown department")
)

// Phase of the edit session. Committed and Cancelled are outcomes; the
// session is back to Idle once they are reported.
type Phase int

const (
	Idle Phase = iota
	Editing
	Committed
	Cancelled
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Committed:
		return "committed"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Slot addresses one editable cell.
type Slot struct {
	ID    string
	Field lineitem.Field
}

// Session is the state of the single in-flight cell edit.
type Session struct {
	Slot
	// Snapshot is the record value when focus was acquired.
	Snapshot string
	// Draft is the value currently shown in the cell.
	Draft string
}

// Changed reports whether the trimmed draft differs from the snapshot.
func (s Session) Changed() bool {
	return s.Value() != s.Snapshot
}

// Value is what a commit writes.
func (s Session) Value() string {
	return trim(s.Draft)
}
