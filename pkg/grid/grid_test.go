package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/polines/pkg/lineitem"
)

func TestColumnsMatchVariantSchema(t *testing.T) {
	for _, v := range lineitem.AllVariants() {
		var editable []lineitem.Field
		for _, c := range Columns(v) {
			if c.Field != "" {
				assert.True(t, v.Has(c.Field), "%s column %s", v, c.Field)
			}
			if c.Editable() {
				editable = append(editable, c.Field)
			}
		}
		assert.Equal(t, v.EditableFields(), editable, v.String())
	}
	assert.Len(t, Columns(lineitem.Standard), 13)
	assert.Len(t, Columns(lineitem.Apparel), 22)
}

func TestRenderSortsByOrderStable(t *testing.T) {
	items := []*lineitem.LineItem{
		{ID: "a", Order: "2", UnitPrice: "$1"},
		{ID: "b", Order: "1", UnitPrice: "$1"},
		{ID: "c", Order: "", UnitPrice: "$1"},
		{ID: "d", Order: "2", UnitPrice: "$1"},
	}
	rows := Render(items, lineitem.Apparel, lineitem.DefaultStatusVocabulary)
	require.Len(t, rows, 4)
	got := make([]string, 0, len(rows))
	for i, r := range rows {
		got = append(got, r.ID)
		assert.Equal(t, i, r.Position)
	}
	assert.Equal(t, []string{"c", "b", "a", "d"}, got)
}

func TestRenderRowDescriptor(t *testing.T) {
	it := &lineitem.LineItem{
		ID:         "x1",
		Order:      "1",
		Status:     "APPR\nB/O",
		Received:   "1",
		ItemNumber: "G500",
		JobNumber:  "J-9",
		Department: "Embroidery",
		Quantity:   "4",
		UnitPrice:  "$8.00",
		UnitPer:    "4",
		Amount:     "$999.00",
	}
	rows := Render([]*lineitem.LineItem{it}, lineitem.Standard, lineitem.DefaultStatusVocabulary)
	require.Len(t, rows, 1)
	r := rows[0]
	assert.Equal(t, "x1", r.ID)
	assert.Equal(t, "G500", r.ItemNumber)
	assert.Equal(t, "J-9", r.JobNumber)
	assert.True(t, r.Received)
	assert.Equal(t, "appr-b/o", r.StatusClass)
	assert.Equal(t, []string{"row-received", "appr-b/o"}, r.Classes())
	assert.Equal(t, []StatusCheck{{"APPR", true}, {"B/O", true}}, r.Statuses)
	assert.Equal(t, "$8.00", r.Amount, "amount is derived, not read from the record")
	assert.Equal(t, "$8.00", r.Value(lineitem.FieldAmount))
	assert.Equal(t, "4", r.Value(lineitem.FieldUnitPer))
	assert.Equal(t, "Embroidery", r.Value(lineitem.FieldDepartment))
}

func TestRenderHidesZeroSizes(t *testing.T) {
	it := &lineitem.LineItem{ID: "a", UnitPrice: "$1"}
	it.Sizes[lineitem.SizeM] = "0"
	it.Sizes[lineitem.SizeL] = "3"
	r := Render([]*lineitem.LineItem{it}, lineitem.Apparel, nil)[0]
	assert.Equal(t, "", r.Value(lineitem.FieldQuantityM))
	assert.Equal(t, "3", r.Value(lineitem.FieldQuantityL))
	assert.Empty(t, r.Statuses)
}

func TestSummarize(t *testing.T) {
	items := []*lineitem.LineItem{
		{Quantity: "2", UnitPrice: "$1.25"},
		{Quantity: "1", UnitPrice: "$10", UnitPer: "4"},
	}
	s := Summarize(items, lineitem.Standard)
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, "$5.00", s.TotalString())
	assert.Equal(t, StateEmpty, StateFor(nil))
	assert.Equal(t, StateContent, StateFor(make([]Row, 1)))
}
