package store

import (
	"errors"
	"fmt"

	"tableflip.dev/polines/pkg/filter"
	"tableflip.dev/polines/pkg/lineitem"
)

var (
	// ErrNotFound is returned when no record carries the requested id.
	ErrNotFound = errors.New("store: line item not found")
	// ErrNotLoaded is returned by mutations before the first Load.
	ErrNotLoaded = errors.New("store: no document loaded")
)

// Store owns the full record set of one document, the filtered view over it
// and the department facet. Records are addressed by id only.
//
// Field edits change records in place; they do not re-run the filter, so a
// row being edited never drops out of the view under the cursor. The view is
// rebuilt on load, on criteria changes and when membership changes.
type Store struct {
	doc         *lineitem.Document
	criteria    filter.Criteria
	view        []*lineitem.LineItem
	departments []string
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Load replaces the document. Amounts are recomputed for every record. The
// search criteria survive a reload.
func (s *Store) Load(doc *lineitem.Document) {
	if doc == nil {
		doc = &lineitem.Document{}
	}
	for _, it := range doc.LineItems {
		lineitem.Recompute(it, doc.Variant)
	}
	s.doc = doc
	s.departments = filter.Departments(doc.LineItems)
	s.refilter()
}

// Loaded reports whether a document has been loaded.
func (s *Store) Loaded() bool { return s.doc != nil }

// Document returns the loaded document or nil.
func (s *Store) Document() *lineitem.Document { return s.doc }

// Variant of the loaded document. Apparel before the first load.
func (s *Store) Variant() lineitem.Variant {
	if s.doc == nil {
		return lineitem.Apparel
	}
	return s.doc.Variant
}

// Items is the full record set in host order.
func (s *Store) Items() []*lineitem.LineItem {
	if s.doc == nil {
		return nil
	}
	return s.doc.LineItems
}

// View is the filtered view in full-set order.
func (s *Store) View() []*lineitem.LineItem { return s.view }

// Visual is the filtered view in display order.
func (s *Store) Visual() []*lineitem.LineItem {
	return lineitem.SortByOrder(s.view)
}

// Departments is the facet: distinct departments of the full set.
func (s *Store) Departments() []string {
	if s.departments == nil {
		return []string{}
	}
	return s.departments
}

// Criteria currently applied.
func (s *Store) Criteria() filter.Criteria { return s.criteria }

// SetCriteria re-runs the filter. The facet is not touched.
func (s *Store) SetCriteria(c filter.Criteria) {
	s.criteria = c
	s.refilter()
}

// Find looks up a record by id.
func (s *Store) Find(id string) (*lineitem.LineItem, error) {
	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	it, _ := s.doc.Find(id)
	if it == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return it, nil
}

// Visible reports whether id is part of the filtered view.
func (s *Store) Visible(id string) bool {
	for _, it := range s.view {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Update writes value into field of record id and returns the previous
// value. Amount follows quantity and price edits.
func (s *Store) Update(id string, field lineitem.Field, value string) (string, error) {
	it, err := s.Find(id)
	if err != nil {
		return "", err
	}
	old := it.Get(field)
	if err := it.Set(field, value); err != nil {
		return "", fmt.Errorf("store: update %q: %w", id, err)
	}
	if lineitem.AffectsAmount(field) {
		lineitem.Recompute(it, s.doc.Variant)
	}
	return old, nil
}

// Append adds a record to the end of the full set.
func (s *Store) Append(it *lineitem.LineItem) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	if it == nil {
		return fmt.Errorf("store: append nil line item")
	}
	if existing, _ := s.doc.Find(it.ID); existing != nil {
		return fmt.Errorf("store: duplicate id %q", it.ID)
	}
	lineitem.Recompute(it, s.doc.Variant)
	s.doc.LineItems = append(s.doc.LineItems, it)
	s.departments = filter.Departments(s.doc.LineItems)
	s.refilter()
	return nil
}

// Remove deletes record id from the full set and returns it.
func (s *Store) Remove(id string) (*lineitem.LineItem, error) {
	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	it, i := s.doc.Find(id)
	if it == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	s.doc.LineItems = append(s.doc.LineItems[:i:i], s.doc.LineItems[i+1:]...)
	s.departments = filter.Departments(s.doc.LineItems)
	s.refilter()
	return it, nil
}

func (s *Store) refilter() {
	s.view = filter.Apply(s.Items(), s.criteria)
}
