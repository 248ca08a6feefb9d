// Package listquery turns an entity collection plus a user query (search
// text, field filters, sort, page) into the slice a list view renders.
//
// The pipeline is always filter, then sort, then paginate, so counts shown
// to the user reflect the filtered collection. Inputs are never mutated.
package listquery

import (
	"maps"
	"net/url"
	"strconv"
	"strings"

	dErrors "festdraft/pkg/domain-errors"
)

// All is the filter value meaning "do not filter on this field".
const All = "All"

const (
	DefaultPageSize = 15
	MaxPageSize     = 100
)

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection maps anything other than "desc" (case-insensitive) to Asc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// Spec is the user-controlled query for one list view.
type Spec struct {
	Search        string            `json:"search,omitempty" yaml:"search,omitempty"`
	Filters       map[string]string `json:"filters,omitempty" yaml:"filters,omitempty"`
	SortField     string            `json:"sort_field,omitempty" yaml:"sort_field,omitempty"`
	SortDirection Direction         `json:"sort_direction,omitempty" yaml:"sort_direction,omitempty"`
	Page          int               `json:"page,omitempty" yaml:"page,omitempty"`
	PageSize      int               `json:"page_size,omitempty" yaml:"page_size,omitempty"`
}

// Normalize fills defaults: page 1, page size 15, ascending order.
// The filter map is copied so callers can keep mutating their own.
func (s Spec) Normalize() Spec {
	if s.Page < 1 {
		s.Page = 1
	}
	if s.PageSize < 1 {
		s.PageSize = DefaultPageSize
	}
	if s.SortDirection != Desc {
		s.SortDirection = Asc
	}
	filters := make(map[string]string, len(s.Filters))
	maps.Copy(filters, s.Filters)
	s.Filters = filters
	return s
}

// WithFilter returns a copy of s with field set to value.
func (s Spec) WithFilter(field, value string) Spec {
	s = s.Normalize()
	s.Filters[field] = value
	return s
}

// ActiveFilters returns the filters that actually constrain results.
func (s Spec) ActiveFilters() map[string]string {
	active := make(map[string]string, len(s.Filters))
	for field, value := range s.Filters {
		if isActive(value) {
			active[field] = value
		}
	}
	return active
}

func isActive(value string) bool {
	return value != "" && value != All
}

// ParseSpec reads a Spec from URL query parameters: search, sort, order,
// page, page_size, and one parameter per filterable field of fields.
// Unknown parameters are ignored; malformed numbers are rejected.
func ParseSpec[T any](q url.Values, fields Fields[T]) (Spec, error) {
	spec := Spec{
		Search:        q.Get("search"),
		SortField:     q.Get("sort"),
		SortDirection: ParseDirection(q.Get("order")),
		Filters:       make(map[string]string),
	}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return Spec{}, dErrors.New(dErrors.CodeBadRequest, "page must be a positive integer")
		}
		spec.Page = page
	}
	if raw := q.Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > MaxPageSize {
			return Spec{}, dErrors.New(dErrors.CodeBadRequest, "page_size must be between 1 and 100")
		}
		spec.PageSize = size
	}

	for field := range fields.Filterable {
		if q.Has(field) {
			spec.Filters[field] = q.Get(field)
		}
	}
	return spec.Normalize(), nil
}

// Values is the inverse of ParseSpec, used by HTTP clients.
func (s Spec) Values() url.Values {
	q := url.Values{}
	if s.Search != "" {
		q.Set("search", s.Search)
	}
	if s.SortField != "" {
		q.Set("sort", s.SortField)
	}
	if s.SortDirection != "" {
		q.Set("order", string(s.SortDirection))
	}
	if s.Page > 0 {
		q.Set("page", strconv.Itoa(s.Page))
	}
	if s.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(s.PageSize))
	}
	for field, value := range s.ActiveFilters() {
		q.Set(field, value)
	}
	return q
}
