package listquery

import (
	"slices"
	"strings"
)

// Filter keeps entities matching the search term on at least one searchable
// field (or any entity when the term is empty) and every active field filter.
func Filter[T any](items []T, spec Spec, fields Fields[T]) []T {
	term := strings.ToLower(spec.Search)
	active := spec.ActiveFilters()

	out := make([]T, 0, len(items))
	for _, item := range items {
		if !matchesSearch(item, term, fields.Searchable) {
			continue
		}
		if !matchesFilters(item, active, fields.Filterable) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch[T any](item T, term string, searchable []func(T) string) bool {
	if term == "" {
		return true
	}
	for _, get := range searchable {
		if strings.Contains(strings.ToLower(get(item)), term) {
			return true
		}
	}
	return false
}

// matchesFilters compares exactly: filter values come from the entities themselves.
// Filters on undeclared fields are ignored.
func matchesFilters[T any](item T, active map[string]string, filterable map[string]func(T) string) bool {
	for field, want := range active {
		get, ok := filterable[field]
		if !ok {
			continue
		}
		if get(item) != want {
			return false
		}
	}
	return true
}

// Sort returns a stably sorted copy. Descending negates the comparator, so
// equal entities keep their input order in both directions.
func Sort[T any](items []T, field string, dir Direction, fields Fields[T]) []T {
	out := slices.Clone(items)
	if out == nil {
		out = []T{}
	}
	key, ok := fields.sortKey(field)
	if !ok {
		return out
	}
	compare := key.compare
	if dir == Desc {
		compare = func(a, b T) int { return -key.compare(a, b) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

// Paginate returns items[(page-1)*size : page*size], clipped to bounds.
// Pages past the end are empty; the caller owns clamping.
func Paginate[T any](items []T, page, pageSize int) []T {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := min(start+pageSize, len(items))
	return slices.Clone(items[start:end])
}

// TotalPages is ceil(count / pageSize).
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if count <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// ClampPage resets page to 1 when it falls outside [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 || page > totalPages {
		return 1
	}
	return page
}

// Page is the view model for one rendered list page.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Of         int `json:"of"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// Run composes filter, sort and paginate. Total is the filtered count and Of
// the raw count, for "Showing Total of Of" summaries.
func Run[T any](items []T, spec Spec, fields Fields[T]) Page[T] {
	spec = spec.Normalize()
	filtered := Filter(items, spec, fields)
	sorted := Sort(filtered, spec.SortField, spec.SortDirection, fields)
	return Page[T]{
		Items:      Paginate(sorted, spec.Page, spec.PageSize),
		Total:      len(filtered),
		Of:         len(items),
		Page:       spec.Page,
		PageSize:   spec.PageSize,
		TotalPages: TotalPages(len(filtered), spec.PageSize),
	}
}

// Distinct returns the non-empty values of get across items in first-seen order.
func Distinct[T any](items []T, get func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0)
	for _, item := range items {
		v := get(item)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Options lists the choices for every filterable field: All, then the
// distinct values present in the current collection.
func Options[T any](items []T, fields Fields[T]) map[string][]string {
	out := make(map[string][]string, len(fields.Filterable))
	for field, get := range fields.Filterable {
		out[field] = append([]string{All}, Distinct(items, get)...)
	}
	return out
}
