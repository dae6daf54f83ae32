// Package dispatch turns committed edits into host notifications and hands
// them to the host bridge.
package dispatch

import (
	"encoding/json"
	"fmt"
)

// Mode tags the outbound payload.
type Mode string

const (
	ModeNewRow      Mode = "newRow"
	ModeDeleteRow   Mode = "deleteRow"
	ModeUpdateLines Mode = "updateLines"
)

// Change is the closed set of notifications: NewRow, DeleteRow, FieldChange
// and Batch.
type Change interface {
	Mode() Mode
	// Describe renders the change for logs.
	Describe() string
	payload() any
}

// NewRow announces a row created by the user.
type NewRow struct {
	ID string
}

// DeleteRow announces a row removed by the user.
type DeleteRow struct {
	ID string
}

// FieldChange is a single committed field edit.
type FieldChange struct {
	ID       string
	Field    string
	OldValue string
	NewValue string

	// Checked is set for checkbox fields.
	Checked *bool
	// CheckedItems is set for the status field and lists every checked token.
	CheckedItems []string
}

// Update is one entry of a Batch.
type Update struct {
	ID       string `json:"id" yaml:"id"`
	Field    string `json:"field" yaml:"field"`
	Value    string `json:"value" yaml:"value"`
	OldValue string `json:"oldValue" yaml:"oldValue"`
}

// Batch carries several field changes in one notification.
type Batch struct {
	PoID    string
	Updates []Update
}

func (NewRow) Mode() Mode      { return ModeNewRow }
func (DeleteRow) Mode() Mode   { return ModeDeleteRow }
func (FieldChange) Mode() Mode { return ModeUpdateLines }
func (Batch) Mode() Mode       { return ModeUpdateLines }

func (c NewRow) Describe() string    { return fmt.Sprintf("mode:%q id:%q", ModeNewRow, c.ID) }
func (c DeleteRow) Describe() string { return fmt.Sprintf("mode:%q id:%q", ModeDeleteRow, c.ID) }

func (c FieldChange) Describe() string {
	return fmt.Sprintf("mode:%q id:%q field:%q old:%q new:%q", ModeUpdateLines, c.ID, c.Field, c.OldValue, c.NewValue)
}

func (c Batch) Describe() string {
	return fmt.Sprintf("mode:%q poId:%q updates:%d", ModeUpdateLines, c.PoID, len(c.Updates))
}

type rowPayload struct {
	Mode Mode   `json:"mode"`
	ID   string `json:"id"`
}

type fieldPayload struct {
	Mode         Mode      `json:"mode"`
	Type         string    `json:"type"`
	ID           string    `json:"id"`
	Field        string    `json:"field"`
	Value        string    `json:"value"`
	NewValue     string    `json:"newValue"`
	OldValue     string    `json:"oldValue"`
	Checked      *bool     `json:"checked,omitempty"`
	CheckedItems *[]string `json:"checkedItems,omitempty"`
}

type batchPayload struct {
	Mode    Mode     `json:"mode"`
	Type    string   `json:"type"`
	Updates []Update `json:"updates"`
	PoID    string   `json:"poId"`
}

func (c NewRow) payload() any    { return rowPayload{Mode: ModeNewRow, ID: c.ID} }
func (c DeleteRow) payload() any { return rowPayload{Mode: ModeDeleteRow, ID: c.ID} }

func (c FieldChange) payload() any {
	p := fieldPayload{
		Mode:     ModeUpdateLines,
		Type:     "object",
		ID:       c.ID,
		Field:    c.Field,
		Value:    c.NewValue,
		NewValue: c.NewValue,
		OldValue: c.OldValue,
		Checked:  c.Checked,
	}
	if c.CheckedItems != nil {
		items := append([]string{}, c.CheckedItems...)
		p.CheckedItems = &items
	}
	return p
}

func (c Batch) payload() any {
	updates := c.Updates
	if updates == nil {
		updates = []Update{}
	}
	return batchPayload{Mode: ModeUpdateLines, Type: "array", Updates: updates, PoID: c.PoID}
}

// Encode serialises the change into the host's parameter string.
func Encode(c Change) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("dispatch: nil change")
	}
	return json.Marshal(c.payload())
}
