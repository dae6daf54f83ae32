package grid

import (
	"regexp"
	"strconv"
	"strings"

	"tableflip.dev/polines/pkg/lineitem"
)

// StatusCheck is one checkbox of the status cell.
type StatusCheck struct {
	Token   string `json:"token" yaml:"token"`
	Checked bool   `json:"checked" yaml:"checked"`
}

// Cell is a rendered value under a column.
type Cell struct {
	Field lineitem.Field `json:"field,omitempty" yaml:"field,omitempty"`
	Kind  CellKind       `json:"kind" yaml:"kind"`
	Value string         `json:"value" yaml:"value"`
}

// Row is the descriptor of one rendered line item. ID, ItemNumber and
// JobNumber identify the record; only ID is used for joins.
type Row struct {
	ID          string        `json:"id" yaml:"id"`
	ItemNumber  string        `json:"itemNumber" yaml:"itemNumber"`
	JobNumber   string        `json:"jobNumber" yaml:"jobNumber"`
	Order       string        `json:"order" yaml:"order"`
	Position    int           `json:"position" yaml:"position"`
	Received    bool          `json:"received" yaml:"received"`
	StatusClass string        `json:"statusClass,omitempty" yaml:"statusClass,omitempty"`
	Statuses    []StatusCheck `json:"statuses" yaml:"statuses"`
	Department  string        `json:"department" yaml:"department"`
	Amount      string        `json:"amount" yaml:"amount"`
	Cells       []Cell        `json:"cells" yaml:"cells"`
}

// Value returns the rendered value of a field.
func (r Row) Value(f lineitem.Field) string {
	for _, c := range r.Cells {
		if c.Field == f {
			return c.Value
		}
	}
	return ""
}

// Classes returns the row CSS classes: row-received and the status class.
func (r Row) Classes() []string {
	var out []string
	if r.Received {
		out = append(out, "row-received")
	}
	if r.StatusClass != "" {
		out = append(out, r.StatusClass)
	}
	return out
}

var whitespace = regexp.MustCompile(`\s+`)

// StatusClass converts an encoded status into a class name.
func StatusClass(status string) string {
	if status == "" {
		return ""
	}
	return whitespace.ReplaceAllString(strings.ToLower(status), "-")
}

// Render sorts items by order and describes one row per item. The amount is
// computed from the current field values, never taken from the record.
func Render(items []*lineitem.LineItem, v lineitem.Variant, vocab lineitem.StatusVocabulary) []Row {
	cols := Columns(v)
	sorted := lineitem.SortByOrder(items)
	rows := make([]Row, 0, len(sorted))
	for i, it := range sorted {
		rows = append(rows, renderRow(it, i, v, cols, vocab))
	}
	return rows
}

func renderRow(it *lineitem.LineItem, position int, v lineitem.Variant, cols []Column, vocab lineitem.StatusVocabulary) Row {
	amount := lineitem.FormatMoney(lineitem.ComputeAmount(it, v))
	checked := vocab.Checked(it.Status)
	row := Row{
		ID:          it.ID,
		ItemNumber:  it.ItemNumber,
		JobNumber:   it.JobNumber,
		Order:       it.Order,
		Position:    position,
		Received:    it.IsReceived(),
		StatusClass: StatusClass(it.Status),
		Department:  it.Department,
		Amount:      amount,
		Statuses:    make([]StatusCheck, 0, len(vocab)),
		Cells:       make([]Cell, 0, len(cols)),
	}
	for _, token := range vocab {
		row.Statuses = append(row.Statuses, StatusCheck{Token: token, Checked: contains(checked, token)})
	}
	for _, col := range cols {
		if !col.Data() {
			continue
		}
		cell := Cell{Field: col.Field, Kind: col.Kind}
		switch col.Kind {
		case KindAmount:
			cell.Value = amount
		case KindStatus:
			cell.Value = strings.Join(checked, " ")
		case KindCheckbox:
			if row.Received {
				cell.Value = "x"
			}
		default:
			cell.Value = displayValue(it, col.Field)
		}
		row.Cells = append(row.Cells, cell)
	}
	return row
}

// displayValue hides zero quantities the way the editor shows them: an empty
// cell rather than 0.
func displayValue(it *lineitem.LineItem, f lineitem.Field) string {
	raw := it.Get(f)
	if _, ok := lineitem.SizeFor(f); ok {
		if q := lineitem.ParseQuantity(raw); q != 0 {
			return strconv.FormatInt(q, 10)
		}
		return ""
	}
	return raw
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
