package filter

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"tableflip.dev/polines/pkg/lineitem"
)

func sample() []*lineitem.LineItem {
	return []*lineitem.LineItem{
		{ID: "1", ItemNumber: "G500", Description: "Heavy Cotton Tee", Color: "Navy", Customer: "Acme", JobNumber: "J-100", Department: "Screen Printing"},
		{ID: "2", ItemNumber: "PC61", Description: "Essential Tee", Color: "Red", Customer: "Globex", JobNumber: "J-200", Department: "Embroidery"},
		{ID: "3", ItemNumber: "K420", Description: "Pique Polo", Color: "Black", Customer: "acme corp", JobNumber: "J-300", Department: ""},
		{ID: "4", ItemNumber: "CP80", Description: "Beanie", Color: "Navy", Customer: "Initech", JobNumber: "J-400", Department: "Embroidery"},
	}
}

func ids(items []*lineitem.LineItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestApplyIdentity(t *testing.T) {
	for n := 0; n < 6; n++ {
		items := make([]*lineitem.LineItem, 0, n)
		for i := n; i > 0; i-- {
			items = append(items, &lineitem.LineItem{ID: fmt.Sprint(i), Order: fmt.Sprint(i)})
		}
		assert.Equal(t, ids(items), ids(Apply(items, Criteria{})))
	}
}

func TestApplySearch(t *testing.T) {
	items := sample()
	assert.Equal(t, []string{"1", "3"}, ids(Apply(items, Criteria{Search: "ACME"})))
	assert.Equal(t, []string{"1", "4"}, ids(Apply(items, Criteria{Search: "navy"})))
	assert.Equal(t, []string{"2"}, ids(Apply(items, Criteria{Search: "j-2"})))
	assert.Equal(t, []string{"3"}, ids(Apply(items, Criteria{Search: "k42"})))
	assert.Empty(t, Apply(items, Criteria{Search: "nothing"}))
}

func TestApplyDepartmentAndSearch(t *testing.T) {
	items := sample()
	assert.Equal(t, []string{"2", "4"}, ids(Apply(items, Criteria{Department: "Embroidery"})))
	assert.Equal(t, []string{"4"}, ids(Apply(items, Criteria{Department: "Embroidery", Search: "navy"})))
	assert.Empty(t, Apply(items, Criteria{Department: "Signs"}))
}

func TestDepartmentsFirstSeen(t *testing.T) {
	assert.Equal(t, []string{"Screen Printing", "Embroidery"}, Departments(sample()))
	assert.Equal(t, []string{}, Departments(nil))
}
