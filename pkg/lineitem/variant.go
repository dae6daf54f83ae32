// Package lineitem defines the purchase order line item model shared by the
// grid, the controllers and the host bridge.
package lineitem

import (
	"errors"
	"fmt"
	"strings"
)

// Variant identifies which line item schema a document uses.
type Variant int

const (
	// Apparel line items carry nine size quantities. It is the default.
	Apparel Variant = iota
	// Standard line items carry a single quantity and a unit divisor.
	Standard
)

// ErrUnknownVariant is returned when a variant tag is not recognised.
var ErrUnknownVariant = errors.New("lineitem: unknown variant")

// AllVariants returns the supported variants.
func AllVariants() []Variant {
	return []Variant{Apparel, Standard}
}

// ParseVariant converts a host tag into a Variant. Empty means Apparel.
func ParseVariant(raw string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "apparel":
		return Apparel, nil
	case "standard":
		return Standard, nil
	default:
		return Apparel, fmt.Errorf("%w %q", ErrUnknownVariant, raw)
	}
}

func (v Variant) String() string {
	switch v {
	case Apparel:
		return "Apparel"
	case Standard:
		return "Standard"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// QuantityFields lists the fields summed into the total quantity.
func (v Variant) QuantityFields() []Field {
	switch v {
	case Standard:
		return []Field{FieldQuantity}
	case Apparel:
		return append([]Field(nil), sizeFields...)
	default:
		return nil
	}
}

// Fields lists every field stored for the variant, common fields first.
func (v Variant) Fields() []Field {
	out := append([]Field(nil), commonFields...)
	switch v {
	case Standard:
		out = append(out, FieldQuantity, FieldUnitPer)
	case Apparel:
		out = append(out, sizeFields...)
	}
	return out
}

// EditableFields lists the free-text fields in the order their cells appear
// in a row. Forward navigation walks this list.
func (v Variant) EditableFields() []Field {
	switch v {
	case Standard:
		return []Field{
			FieldQuantity,
			FieldItemNumber,
			FieldDescription,
			FieldJobNumber,
			FieldCustomer,
			FieldUnitPrice,
			FieldUnitPer,
		}
	case Apparel:
		out := []Field{FieldBarCode, FieldItemNumber, FieldDescription, FieldColor}
		out = append(out, sizeFields...)
		return append(out, FieldJobNumber, FieldCustomer, FieldUnitPrice)
	default:
		return nil
	}
}

// Has reports whether the field belongs to the variant's schema.
func (v Variant) Has(f Field) bool {
	for _, candidate := range v.Fields() {
		if candidate == f {
			return true
		}
	}
	return false
}

// Editable reports whether the field is a free-text cell for the variant.
func (v Variant) Editable(f Field) bool {
	for _, candidate := range v.EditableFields() {
		if candidate == f {
			return true
		}
	}
	return false
}
