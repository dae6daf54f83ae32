package grid

import (
	"github.com/shopspring/decimal"

	"tableflip.dev/polines/pkg/filter"
	"tableflip.dev/polines/pkg/lineitem"
)

// State is the display state of the grid. Exactly one applies at a time.
type State int

const (
	StateLoading State = iota
	StateError
	StateEmpty
	StateContent
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateEmpty:
		return "empty"
	case StateContent:
		return "content"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MarshalText encodes the kind by name.
func (k CellKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Summary totals the currently filtered items.
type Summary struct {
	Count int             `json:"count" yaml:"count"`
	Total decimal.Decimal `json:"-" yaml:"-"`
}

// TotalString renders the total amount.
func (s Summary) TotalString() string {
	return lineitem.FormatMoney(s.Total)
}

// Summarize counts items and sums their computed amounts.
func Summarize(items []*lineitem.LineItem, v lineitem.Variant) Summary {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(lineitem.ComputeAmount(it, v))
	}
	return Summary{Count: len(items), Total: total}
}

// View is everything a presentation layer needs to draw the editor.
type View struct {
	State       State           `json:"state" yaml:"state"`
	Message     string          `json:"message,omitempty" yaml:"message,omitempty"`
	DocumentID  string          `json:"documentId,omitempty" yaml:"documentId,omitempty"`
	Variant     string          `json:"variant" yaml:"variant"`
	Columns     []Column        `json:"columns" yaml:"columns"`
	Rows        []Row           `json:"rows" yaml:"rows"`
	Summary     Summary         `json:"summary" yaml:"summary"`
	Total       string          `json:"total" yaml:"total"`
	Departments []string        `json:"departments" yaml:"departments"`
	Criteria    filter.Criteria `json:"criteria" yaml:"criteria"`
}

// StateFor picks Empty or Content from the rendered rows.
func StateFor(rows []Row) State {
	if len(rows) == 0 {
		return StateEmpty
	}
	return StateContent
}
