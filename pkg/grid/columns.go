// Package grid projects line items onto table rows. It holds no state: the
// same inputs always render the same rows.
package grid

import "tableflip.dev/polines/pkg/lineitem"

// CellKind tells a view how a column is presented and edited.
type CellKind int

const (
	KindHandle CellKind = iota
	KindStatus
	KindCheckbox
	KindText
	KindSelect
	KindAmount
	KindDelete
)

func (k CellKind) String() string {
	switch k {
	case KindHandle:
		return "handle"
	case KindStatus:
		return "status"
	case KindCheckbox:
		return "checkbox"
	case KindText:
		return "text"
	case KindSelect:
		return "select"
	case KindAmount:
		return "amount"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Column describes one header cell.
type Column struct {
	Field lineitem.Field `json:"field,omitempty" yaml:"field,omitempty"`
	Title string         `json:"title" yaml:"title"`
	Class string         `json:"class" yaml:"class"`
	Kind  CellKind       `json:"kind" yaml:"kind"`
}

// Editable reports whether the column is a free-text cell.
func (c Column) Editable() bool {
	return c.Kind == KindText
}

// Data reports whether the column carries a record value (as opposed to the
// drag handle and delete controls).
func (c Column) Data() bool {
	return c.Kind != KindHandle && c.Kind != KindDelete
}

func text(f lineitem.Field, title, class string) Column {
	return Column{Field: f, Title: title, Class: class, Kind: KindText}
}

// Columns returns the header for a variant.
func Columns(v lineitem.Variant) []Column {
	head := []Column{
		{Class: "col-drag", Kind: KindHandle},
		{Field: lineitem.FieldStatus, Title: "Status", Class: "col-status", Kind: KindStatus},
		{Field: lineitem.FieldReceived, Title: "Rec'd", Class: "col-received", Kind: KindCheckbox},
	}
	department := Column{Field: lineitem.FieldDepartment, Title: "Department", Class: "col-department", Kind: KindSelect}
	amount := Column{Field: lineitem.FieldAmount, Title: "Amount", Class: "col-amount", Kind: KindAmount}
	tail := Column{Class: "col-delete", Kind: KindDelete}

	switch v {
	case lineitem.Standard:
		return append(head,
			text(lineitem.FieldQuantity, "Qty", "col-qty-standard"),
			text(lineitem.FieldItemNumber, "Item Number", "col-item"),
			text(lineitem.FieldDescription, "Description", "col-description"),
			text(lineitem.FieldJobNumber, "Job Number", "col-job"),
			text(lineitem.FieldCustomer, "Customer", "col-customer"),
			department,
			text(lineitem.FieldUnitPrice, "Unit Price", "col-price"),
			text(lineitem.FieldUnitPer, "Unit Per", "col-unit-per"),
			amount,
			tail,
		)
	case lineitem.Apparel:
		cols := append(head,
			text(lineitem.FieldBarCode, "Bar Code", "col-barcode"),
			text(lineitem.FieldItemNumber, "Item Number", "col-item"),
			text(lineitem.FieldDescription, "Description", "col-description"),
			text(lineitem.FieldColor, "Color", "col-color"),
		)
		for s := lineitem.SizeXS; s <= lineitem.SizeOther; s++ {
			cols = append(cols, text(s.Field(), s.Label(), "col-qty"))
		}
		return append(cols,
			text(lineitem.FieldJobNumber, "Job Number", "col-job"),
			text(lineitem.FieldCustomer, "Customer", "col-customer"),
			department,
			text(lineitem.FieldUnitPrice, "Price Ea", "col-price"),
			amount,
			tail,
		)
	default:
		return nil
	}
}
