package lineitem

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// ErrMissingLineItems is returned when a payload has no line item list.
var ErrMissingLineItems = errors.New("lineitem: payload has no lineitems")

// Document is a purchase order as pushed by the host. Slice order is not
// meaningful; Order on each item decides the display sequence.
type Document struct {
	ID        string
	Variant   Variant
	LineItems []*LineItem
}

type wireDocument struct {
	ID        json.RawMessage `json:"id,omitempty"`
	LineItems *[]*LineItem    `json:"lineitems"`
}

// Decode parses a host payload into a Document of the given variant.
func Decode(data []byte, v Variant) (*Document, error) {
	var wire wireDocument
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	if wire.LineItems == nil {
		return nil, ErrMissingLineItems
	}
	id, err := scalarString(wire.ID)
	if err != nil {
		return nil, fmt.Errorf("lineitem: document id: %w", err)
	}
	doc := &Document{ID: id, Variant: v}
	for _, it := range *wire.LineItems {
		if it == nil {
			continue
		}
		doc.LineItems = append(doc.LineItems, it)
	}
	return doc, nil
}

// MarshalJSON writes the document back in the host's shape, emitting only
// the fields that belong to the document variant.
func (d *Document) MarshalJSON() ([]byte, error) {
	items := make([]map[string]string, 0, len(d.LineItems))
	for _, it := range d.LineItems {
		items = append(items, it.Values(d.Variant))
	}
	return json.Marshal(struct {
		ID        string              `json:"id"`
		LineItems []map[string]string `json:"lineitems"`
	}{ID: d.ID, LineItems: items})
}

// Find returns the item with the given id.
func (d *Document) Find(id string) (*LineItem, int) {
	for i, it := range d.LineItems {
		if it.ID == id {
			return it, i
		}
	}
	return nil, -1
}

// NextOrder returns the order value placing a new item after every other.
func (d *Document) NextOrder() string {
	highest := 0
	for _, it := range d.LineItems {
		if o := ParseOrder(it.Order); o > highest {
			highest = o
		}
	}
	return strconv.Itoa(highest + 1)
}

// CreateBlank builds an empty line item. Every field of the variant starts
// empty except the price, which starts at $0.00.
func CreateBlank(v Variant, id, order string) *LineItem {
	it := &LineItem{
		ID:        id,
		Order:     order,
		UnitPrice: FormatMoney(decimal.Zero),
	}
	it.Amount = FormatMoney(ComputeAmount(it, v))
	return it
}

// ParseOrder reads an order value, defaulting to 0.
func ParseOrder(s string) int {
	return int(parseLeadingInt(s))
}

// SortByOrder returns a copy of items stably sorted by ascending order.
func SortByOrder(items []*LineItem) []*LineItem {
	out := append([]*LineItem(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return ParseOrder(out[i].Order) < ParseOrder(out[j].Order)
	})
	return out
}
