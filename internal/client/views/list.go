// Package views holds the state behind one entity list screen: the loaded
// collection and the user's query over it.
package views

import (
	"slices"

	"festdraft/pkg/listquery"
)

// ListView is not safe for concurrent use; it belongs to one screen.
type ListView[T any] struct {
	fields listquery.Fields[T]
	items  []T
	spec   listquery.Spec
}

// NewList returns an empty view starting from spec.
func NewList[T any](fields listquery.Fields[T], spec listquery.Spec) *ListView[T] {
	return &ListView[T]{fields: fields, spec: spec.Normalize()}
}

// SetItems replaces the collection, e.g. after a fetch.
func (v *ListView[T]) SetItems(items []T) {
	v.items = slices.Clone(items)
	v.clamp()
}

// Add appends a newly created entity.
func (v *ListView[T]) Add(item T) {
	v.items = append(v.items, item)
}

func (v *ListView[T]) Items() []T { return slices.Clone(v.items) }

func (v *ListView[T]) Len() int { return len(v.items) }

// Spec returns a copy of the current query.
func (v *ListView[T]) Spec() listquery.Spec { return v.spec.Normalize() }

// SetSpec replaces the whole query and clamps the page.
func (v *ListView[T]) SetSpec(spec listquery.Spec) {
	v.spec = spec.Normalize()
	v.clamp()
}

func (v *ListView[T]) SetSearch(term string) {
	v.spec.Search = term
	v.spec.Page = 1
}

// SetFilter constrains field to value; listquery.All clears it.
func (v *ListView[T]) SetFilter(field, value string) {
	v.spec = v.spec.WithFilter(field, value)
	v.spec.Page = 1
}

// SetSort orders by field. Unknown fields sort by the primary field.
func (v *ListView[T]) SetSort(field string) {
	v.spec.SortField = field
}

func (v *ListView[T]) SetSortOrder(dir listquery.Direction) {
	v.spec.SortDirection = listquery.ParseDirection(string(dir))
}

// ToggleSort sorts by field, flipping the direction when it already is the
// sort field.
func (v *ListView[T]) ToggleSort(field string) {
	if v.spec.SortField == field {
		v.spec.SortDirection = v.spec.SortDirection.Flip()
		return
	}
	v.spec.SortField = field
	v.spec.SortDirection = listquery.Asc
}

func (v *ListView[T]) SetPageSize(size int) {
	if size < 1 || size > listquery.MaxPageSize {
		size = listquery.DefaultPageSize
	}
	v.spec.PageSize = size
	v.spec.Page = 1
}

// SetPage moves to page, or back to 1 when it is out of range.
func (v *ListView[T]) SetPage(page int) {
	v.spec.Page = page
	v.clamp()
}

func (v *ListView[T]) Next() { v.SetPage(v.spec.Page + 1) }

func (v *ListView[T]) Prev() {
	if v.spec.Page > 1 {
		v.SetPage(v.spec.Page - 1)
	}
}

// Page runs the query. A page left out of range by a narrowing filter is
// reset to 1 first.
func (v *ListView[T]) Page() listquery.Page[T] {
	v.clamp()
	return listquery.Run(v.items, v.spec, v.fields)
}

// Options lists All plus the distinct values of field in the current
// collection. It is nil for a field the view cannot filter on.
func (v *ListView[T]) Options(field string) []string {
	get, ok := v.fields.Filterable[field]
	if !ok {
		return nil
	}
	return append([]string{listquery.All}, listquery.Distinct(v.items, get)...)
}

func (v *ListView[T]) clamp() {
	v.spec = v.spec.Normalize()
	filtered := listquery.Filter(v.items, v.spec, v.fields)
	total := listquery.TotalPages(len(filtered), v.spec.PageSize)
	if total == 0 {
		v.spec.Page = 1
		return
	}
	v.spec.Page = listquery.ClampPage(v.spec.Page, total)
}
