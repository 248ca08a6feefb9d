// Package prefs persists the filter, sort and page-size choices of each list
// view so they survive restarts.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"festdraft/internal/client/storage"
	"festdraft/pkg/listquery"
)

// Prefs are the remembered choices of one view.
type Prefs struct {
	Filters   map[string]string
	SortBy    string
	SortOrder listquery.Direction
	PageSize  int
}

// Apply copies p onto spec. The page goes back to 1 since the remembered
// choices may shrink the result.
func (p Prefs) Apply(spec listquery.Spec) listquery.Spec {
	spec = spec.Normalize()
	maps.Copy(spec.Filters, p.Filters)
	spec.SortField = p.SortBy
	spec.SortDirection = p.SortOrder
	spec.PageSize = p.PageSize
	spec.Page = 1
	return spec
}

// Defaults describe a view: which filters it remembers and what to use
// when nothing usable is stored.
type Defaults struct {
	Filters   []string
	SortBy    string
	SortOrder listquery.Direction
	PageSize  int

	// CanSort rejects stored sort fields the view no longer offers.
	CanSort func(field string) bool
}

func (d Defaults) prefs() Prefs {
	p := Prefs{
		Filters:   make(map[string]string, len(d.Filters)),
		SortBy:    d.SortBy,
		SortOrder: d.SortOrder,
		PageSize:  d.PageSize,
	}
	for _, f := range d.Filters {
		p.Filters[f] = listquery.All
	}
	if p.SortOrder != listquery.Desc {
		p.SortOrder = listquery.Asc
	}
	if p.PageSize < 1 {
		p.PageSize = listquery.DefaultPageSize
	}
	return p
}

// Storage key names for a view.
func FilterKey(view, field string) string { return view + "-" + field + "-filter" }
func SortByKey(view string) string { return view + "-sort-by" }
func SortOrderKey(view string) string { return view + "-sort-order" }
func PageSizeKey(view string) string { return view + "-items-per-page" }

// Manager reads and writes one view's preferences.
type Manager struct {
	store    storage.Store
	view     string
	defaults Defaults
	logger   *slog.Logger
}

type Option func(*Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func New(store storage.Store, view string, defaults Defaults, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		view:     view,
		defaults: defaults,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Defaults() Prefs { return m.defaults.prefs() }

// Load reads every key, falling back to the default for each key that is
// absent, corrupt or out of range. Only storage failures are returned.
func (m *Manager) Load(ctx context.Context) (Prefs, error) {
	p := m.defaults.prefs()

	for _, field := range m.defaults.Filters {
		v, err := loadKey(ctx, m, FilterKey(m.view, field), p.Filters[field])
		if err != nil {
			return m.defaults.prefs(), err
		}
		if v == "" {
			v = listquery.All
		}
		p.Filters[field] = v
	}

	sortBy, err := loadKey(ctx, m, SortByKey(m.view), p.SortBy)
	if err != nil {
		return m.defaults.prefs(), err
	}
	if m.defaults.CanSort == nil || m.defaults.CanSort(sortBy) {
		p.SortBy = sortBy
	}

	order, err := loadKey(ctx, m, SortOrderKey(m.view), string(p.SortOrder))
	if err != nil {
		return m.defaults.prefs(), err
	}
	p.SortOrder = listquery.ParseDirection(order)

	size, err := loadKey(ctx, m, PageSizeKey(m.view), p.PageSize)
	if err != nil {
		return m.defaults.prefs(), err
	}
	if size >= 1 && size <= listquery.MaxPageSize {
		p.PageSize = size
	}
	return p, nil
}

func loadKey[T any](ctx context.Context, m *Manager, key string, def T) (T, error) {
	v, err := storage.GetJSON(ctx, m.store, key, def)
	if errors.Is(err, storage.ErrDiscarded) {
		m.logger.Warn("discarded unreadable preference", "key", key)
		return def, nil
	}
	return v, err
}

// Save writes p. Filters the view does not remember are ignored.
func (m *Manager) Save(ctx context.Context, p Prefs) error {
	for _, field := range m.defaults.Filters {
		value, ok := p.Filters[field]
		if !ok || value == "" {
			value = listquery.All
		}
		if err := storage.SetJSON(ctx, m.store, FilterKey(m.view, field), value); err != nil {
			return fmt.Errorf("save %s filter: %w", field, err)
		}
	}
	if err := storage.SetJSON(ctx, m.store, SortByKey(m.view), p.SortBy); err != nil {
		return fmt.Errorf("save sort field: %w", err)
	}
	if err := storage.SetJSON(ctx, m.store, SortOrderKey(m.view), listquery.ParseDirection(string(p.SortOrder))); err != nil {
		return fmt.Errorf("save sort order: %w", err)
	}
	if err := storage.SetJSON(ctx, m.store, PageSizeKey(m.view), p.PageSize); err != nil {
		return fmt.Errorf("save page size: %w", err)
	}
	return nil
}

// Reset removes every stored key of the view.
func (m *Manager) Reset(ctx context.Context) error {
	keys := []string{SortByKey(m.view), SortOrderKey(m.view), PageSizeKey(m.view)}
	for _, field := range m.defaults.Filters {
		keys = append(keys, FilterKey(m.view, field))
	}
	for _, key := range keys {
		if err := m.store.Remove(ctx, key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}
	return nil
}

// FromSpec extracts the remembered parts of spec.
func (m *Manager) FromSpec(spec listquery.Spec) Prefs {
	spec = spec.Normalize()
	p := Prefs{
		Filters:   make(map[string]string, len(m.defaults.Filters)),
		SortBy:    spec.SortField,
		SortOrder: spec.SortDirection,
		PageSize:  spec.PageSize,
	}
	for field, value := range spec.Filters {
		if slices.Contains(m.defaults.Filters, field) {
			p.Filters[field] = value
		}
	}
	return p
}
