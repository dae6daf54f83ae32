package lineitem

import "strings"

// Field names a line item attribute using the host's wire key.
type Field string

const (
	FieldID          Field = "id"
	FieldOrder       Field = "order"
	FieldStatus      Field = "status"
	FieldReceived    Field = "received"
	FieldBarCode     Field = "barCode"
	FieldItemNumber  Field = "itemNumber"
	FieldDescription Field = "description"
	FieldColor       Field = "color"
	FieldJobNumber   Field = "jobNumber"
	FieldCustomer    Field = "customer"
	FieldDepartment  Field = "department"
	FieldUnitPrice   Field = "unitPrice"
	FieldAmount      Field = "amount"

	// Standard only.
	FieldQuantity Field = "quantity"
	FieldUnitPer  Field = "unitPer"

	// Apparel only.
	FieldQuantityXS    Field = "quantityXS"
	FieldQuantityS     Field = "quantityS"
	FieldQuantityM     Field = "quantityM"
	FieldQuantityL     Field = "quantityL"
	FieldQuantityXL    Field = "quantityXL"
	FieldQuantityXXL   Field = "quantityXXL"
	FieldQuantityXXXL  Field = "quantityXXXL"
	FieldQuantityXXXXL Field = "quantityXXXXL"
	FieldQuantityOther Field = "quantityOther"
)

var commonFields = []Field{
	FieldID,
	FieldOrder,
	FieldStatus,
	FieldReceived,
	FieldBarCode,
	FieldItemNumber,
	FieldDescription,
	FieldColor,
	FieldJobNumber,
	FieldCustomer,
	FieldDepartment,
	FieldUnitPrice,
	FieldAmount,
}

// Size is an index into the apparel size quantities.
type Size int

const (
	SizeXS Size = iota
	SizeS
	SizeM
	SizeL
	SizeXL
	SizeXXL
	SizeXXXL
	SizeXXXXL
	SizeOther

	sizeCount
)

var sizeFields = []Field{
	FieldQuantityXS,
	FieldQuantityS,
	FieldQuantityM,
	FieldQuantityL,
	FieldQuantityXL,
	FieldQuantityXXL,
	FieldQuantityXXXL,
	FieldQuantityXXXXL,
	FieldQuantityOther,
}

var sizeLabels = [sizeCount]string{"XS", "S", "M", "L", "XL", "2XL", "3XL", "4XL", "Other"}

// Field returns the wire field holding the size quantity.
func (s Size) Field() Field {
	if s < 0 || s >= sizeCount {
		return ""
	}
	return sizeFields[s]
}

// Label is the column title used for the size.
func (s Size) Label() string {
	if s < 0 || s >= sizeCount {
		return ""
	}
	return sizeLabels[s]
}

// SizeFor maps a quantity field back to its size.
func SizeFor(f Field) (Size, bool) {
	for i, candidate := range sizeFields {
		if candidate == f {
			return Size(i), true
		}
	}
	return 0, false
}

// AffectsAmount reports whether editing the field changes the derived amount.
func AffectsAmount(f Field) bool {
	return strings.HasPrefix(string(f), "quantity") || f == FieldUnitPrice || f == FieldUnitPer
}
