package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/polines/pkg/filter"
	"tableflip.dev/polines/pkg/lineitem"
)

func ids(items []*lineitem.LineItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func standardDoc() *lineitem.Document {
	return &lineitem.Document{
		ID:      "po-1",
		Variant: lineitem.Standard,
		LineItems: []*lineitem.LineItem{
			{ID: "a", Order: "2", Description: "Red shirt", Department: "Screen Print", Quantity: "2", UnitPrice: "$1.25"},
			{ID: "b", Order: "1", Description: "Blue cap", Department: "Embroidery", Quantity: "10", UnitPrice: "$10.00", UnitPer: "4"},
			{ID: "c", Order: "3", Description: "Red cap", Department: "Screen Print"},
		},
	}
}

func TestLoadRecomputesAmounts(t *testing.T) {
	s := New()
	require.False(t, s.Loaded())
	s.Load(standardDoc())

	require.True(t, s.Loaded())
	a, err := s.Find("a")
	require.NoError(t, err)
	assert.Equal(t, "$2.50", a.Amount)
	b, _ := s.Find("b")
	assert.Equal(t, "$2.50", b.Amount)
	assert.Equal(t, []string{"Screen Print", "Embroidery"}, s.Departments())
	assert.Equal(t, []string{"b", "a", "c"}, ids(s.Visual()))
}

func TestCriteriaDoNotTouchFacet(t *testing.T) {
	s := New()
	s.Load(standardDoc())

	s.SetCriteria(filter.Criteria{Search: "red", Department: "Screen Print"})
	assert.Equal(t, []string{"a", "c"}, ids(s.View()))
	assert.Equal(t, []string{"Screen Print", "Embroidery"}, s.Departments())
	assert.False(t, s.Visible("b"))

	s.SetCriteria(filter.Criteria{})
	assert.Equal(t, []string{"a", "b", "c"}, ids(s.View()))
}

func TestUpdate(t *testing.T) {
	s := New()
	s.Load(standardDoc())

	old, err := s.Update("a", lineitem.FieldQuantity, "4")
	require.NoError(t, err)
	assert.Equal(t, "2", old)
	a, _ := s.Find("a")
	assert.Equal(t, "$5.00", a.Amount)

	old, err = s.Update("a", lineitem.FieldDescription, "Green shirt")
	require.NoError(t, err)
	assert.Equal(t, "Red shirt", old)

	_, err = s.Update("zzz", lineitem.FieldDescription, "x")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.Update("a", lineitem.Field("nope"), "x")
	assert.True(t, errors.Is(err, lineitem.ErrUnknownField))
}

func TestUpdateKeepsRowVisible(t *testing.T) {
	s := New()
	s.Load(standardDoc())
	s.SetCriteria(filter.Criteria{Search: "shirt"})
	require.Equal(t, []string{"a"}, ids(s.View()))

	_, err := s.Update("a", lineitem.FieldDescription, "hat")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(s.View()))

	s.SetCriteria(s.Criteria())
	assert.Empty(t, s.View())
}

func TestAppendAndRemove(t *testing.T) {
	s := New()
	s.Load(standardDoc())
	s.SetCriteria(filter.Criteria{Search: "cap"})

	blank := lineitem.CreateBlank(lineitem.Standard, "d", s.Document().NextOrder())
	require.NoError(t, s.Append(blank))
	assert.Equal(t, "4", blank.Order)
	assert.Len(t, s.Items(), 4)
	// The blank row does not match "cap".
	assert.Equal(t, []string{"b", "c"}, ids(s.View()))

	assert.Error(t, s.Append(lineitem.CreateBlank(lineitem.Standard, "d", "5")))

	removed, err := s.Remove("b")
	require.NoError(t, err)
	assert.Equal(t, "b", removed.ID)
	assert.Equal(t, []string{"c"}, ids(s.View()))
	assert.Equal(t, []string{"Screen Print"}, s.Departments())

	_, err = s.Remove("b")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestNotLoaded(t *testing.T) {
	s := New()
	_, err := s.Find("a")
	assert.Equal(t, ErrNotLoaded, err)
	assert.Equal(t, ErrNotLoaded, s.Append(&lineitem.LineItem{ID: "a"}))
	_, err = s.Remove("a")
	assert.Equal(t, ErrNotLoaded, err)
	assert.Equal(t, lineitem.Apparel, s.Variant())
	assert.Empty(t, s.Departments())
}
