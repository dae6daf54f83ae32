package lineitem

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned when a field name is not part of the model.
var ErrUnknownField = errors.New("lineitem: unknown field")

// LineItem is a single purchase order line. Values keep the host's string
// encoding so a round trip never changes what the host sent.
type LineItem struct {
	ID          string
	Order       string
	Status      string
	Received    string
	BarCode     string
	ItemNumber  string
	Description string
	Color       string
	JobNumber   string
	Customer    string
	Department  string
	UnitPrice   string
	Amount      string

	Quantity string
	UnitPer  string

	Sizes [sizeCount]string
}

func (it *LineItem) ref(f Field) *string {
	switch f {
	case FieldID:
		return &it.ID
	case FieldOrder:
		return &it.Order
	case FieldStatus:
		return &it.Status
	case FieldReceived:
		return &it.Received
	case FieldBarCode:
		return &it.BarCode
	case FieldItemNumber:
		return &it.ItemNumber
	case FieldDescription:
		return &it.Description
	case FieldColor:
		return &it.Color
	case FieldJobNumber:
		return &it.JobNumber
	case FieldCustomer:
		return &it.Customer
	case FieldDepartment:
		return &it.Department
	case FieldUnitPrice:
		return &it.UnitPrice
	case FieldAmount:
		return &it.Amount
	case FieldQuantity:
		return &it.Quantity
	case FieldUnitPer:
		return &it.UnitPer
	}
	if size, ok := SizeFor(f); ok {
		return &it.Sizes[size]
	}
	return nil
}

// Get returns the value of a field. Unknown fields read as empty.
func (it *LineItem) Get(f Field) string {
	if p := it.ref(f); p != nil {
		return *p
	}
	return ""
}

// Set assigns a field value.
func (it *LineItem) Set(f Field, value string) error {
	p := it.ref(f)
	if p == nil {
		return fmt.Errorf("%w %q", ErrUnknownField, f)
	}
	*p = value
	return nil
}

// Size returns the raw quantity for an apparel size.
func (it *LineItem) Size(s Size) string {
	if s < 0 || s >= sizeCount {
		return ""
	}
	return it.Sizes[s]
}

// IsReceived reports whether the received flag is set.
func (it *LineItem) IsReceived() bool {
	return it.Received != ""
}

// Clone returns an independent copy.
func (it *LineItem) Clone() *LineItem {
	if it == nil {
		return nil
	}
	cp := *it
	return &cp
}

// Values renders the fields of the variant as a wire object.
func (it *LineItem) Values(v Variant) map[string]string {
	fields := v.Fields()
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[string(f)] = it.Get(f)
	}
	return out
}

// UnmarshalJSON accepts the host's object encoding. Numbers and booleans are
// kept as strings and unknown keys are ignored.
func (it *LineItem) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		p := it.ref(Field(key))
		if p == nil {
			continue
		}
		s, err := scalarString(value)
		if err != nil {
			return fmt.Errorf("lineitem: field %q: %w", key, err)
		}
		if Field(key) == FieldReceived && !bytes.HasPrefix(bytes.TrimSpace(value), []byte(`"`)) {
			s = receivedLiteral(s)
		}
		*p = s
	}
	return nil
}

func scalarString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", errors.New("expected a scalar value")
	default:
		// numbers and booleans keep their literal text
		return string(raw), nil
	}
}

// receivedLiteral maps non-string JSON literals onto the checkbox encoding.
// Strings are kept verbatim: any non-empty string counts as received.
func receivedLiteral(s string) string {
	switch strings.TrimSpace(s) {
	case "", "0", "false":
		return ""
	default:
		return ReceivedOn
	}
}

// ReceivedOn is the encoded value of a checked received flag.
const ReceivedOn = "1"
