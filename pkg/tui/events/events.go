package events

import (
	"fmt"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// LoadMsg delivers a document to the editor, typically from the inbox
// watcher.
type LoadMsg struct {
	Source  string
	Payload []byte
	Variant string
}

// Describe renders the load in a human-friendly format for logs.
func (m LoadMsg) Describe() string {
	return fmt.Sprintf(`source:%q variant:%q bytes:%d`, m.Source, m.Variant, len(m.Payload))
}

// LoadErrorMsg reports a document the watcher could not read.
type LoadErrorMsg struct {
	Source string
	Err    error
}

// Describe renders the failure in a human-friendly format for logs.
func (m LoadErrorMsg) Describe() string {
	return fmt.Sprintf(`source:%q err:%q`, m.Source, m.Err)
}

// ChangeType enumerates supported change actions across components.
type ChangeType string

const (
	// ChangeCreate indicates a new row was created.
	ChangeCreate ChangeType = "create"
	// ChangeUpdate indicates a row field changed.
	ChangeUpdate ChangeType = "update"
	// ChangeDelete indicates a row was removed.
	ChangeDelete ChangeType = "delete"
	// ChangeReorder indicates rows were renumbered.
	ChangeReorder ChangeType = "reorder"
)

// RowChangeMsg announces an edit the user made through the grid.
type RowChangeMsg struct {
	Component ComponentID
	Change    ChangeType
	ID        string
	Field     string
}

// Describe renders the change in a human-friendly format for logs.
func (m RowChangeMsg) Describe() string {
	if m.Field == "" {
		return fmt.Sprintf(`change:%q id:%q`, m.Change, m.ID)
	}
	return fmt.Sprintf(`change:%q id:%q field:%q`, m.Change, m.ID, m.Field)
}
