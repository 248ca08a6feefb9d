package listquery

import (
	"cmp"
	"strings"
)

// SortKey compares two entities on one field.
type SortKey[T any] struct {
	compare func(a, b T) int
}

// Text compares string fields case-insensitively.
func Text[T any](get func(T) string) SortKey[T] {
	return SortKey[T]{compare: func(a, b T) int {
		return strings.Compare(strings.ToLower(get(a)), strings.ToLower(get(b)))
	}}
}

// Number compares numeric fields.
func Number[T any, N cmp.Ordered](get func(T) N) SortKey[T] {
	return SortKey[T]{compare: func(a, b T) int {
		return cmp.Compare(get(a), get(b))
	}}
}

// Fields is the per-entity-kind accessor map the engine runs on.
type Fields[T any] struct {
	// Primary is the sortable field used when a spec names an unknown one.
	Primary string
	// Searchable fields are matched by case-insensitive substring.
	Searchable []func(T) string
	// Filterable fields are matched exactly, keyed by field name.
	Filterable map[string]func(T) string
	// Sortable fields, keyed by field name.
	Sortable map[string]SortKey[T]
}

// CanSort reports whether field is a declared sortable field.
func (f Fields[T]) CanSort(field string) bool {
	_, ok := f.Sortable[field]
	return ok
}

// sortKey resolves field, falling back to Primary.
func (f Fields[T]) sortKey(field string) (SortKey[T], bool) {
	if key, ok := f.Sortable[field]; ok {
		return key, true
	}
	key, ok := f.Sortable[f.Primary]
	return key, ok
}
