// Package filter narrows a line item set by free-text search and department.
package filter

import (
	"strings"

	"tableflip.dev/polines/pkg/lineitem"
)

// Criteria is the search text and department facet selected by the user.
// Zero values match everything.
type Criteria struct {
	Search     string `json:"search,omitempty" yaml:"search,omitempty"`
	Department string `json:"department,omitempty" yaml:"department,omitempty"`
}

// IsZero reports whether the criteria match every item.
func (c Criteria) IsZero() bool {
	return c.Search == "" && c.Department == ""
}

// searchFields are the fields the search text is matched against.
var searchFields = []lineitem.Field{
	lineitem.FieldItemNumber,
	lineitem.FieldDescription,
	lineitem.FieldCustomer,
	lineitem.FieldJobNumber,
	lineitem.FieldColor,
}

// Apply returns the items matching both predicates, in source order.
func Apply(items []*lineitem.LineItem, c Criteria) []*lineitem.LineItem {
	needle := strings.ToLower(c.Search)
	out := make([]*lineitem.LineItem, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if Matches(it, needle, c.Department) {
			out = append(out, it)
		}
	}
	return out
}

// Matches evaluates the predicates for a single item. needle must already be
// lower case.
func Matches(it *lineitem.LineItem, needle, department string) bool {
	if department != "" && it.Department != department {
		return false
	}
	if needle == "" {
		return true
	}
	for _, f := range searchFields {
		if strings.Contains(strings.ToLower(it.Get(f)), needle) {
			return true
		}
	}
	return false
}

// Departments lists the distinct non-empty departments in first-seen order.
func Departments(items []*lineitem.LineItem) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, it := range items {
		if it == nil || it.Department == "" {
			continue
		}
		if _, ok := seen[it.Department]; ok {
			continue
		}
		seen[it.Department] = struct{}{}
		out = append(out, it.Department)
	}
	return out
}
