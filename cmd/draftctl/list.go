package main

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"festdraft/internal/client/prefs"
	"festdraft/internal/client/views"
	"festdraft/internal/roster/models"
	"festdraft/pkg/listquery"
)

// fetchParallelism bounds concurrent page requests in fetchAll.
const fetchParallelism = 4

// listFlags are the query flags every list command accepts.
type listFlags struct {
	search   string
	filters  []string
	sort     string
	order    string
	page     int
	pageSize int
	reset    bool
	options  bool
}

func (f *listFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.search, "search", "s", "", "case-insensitive search text")
	fs.StringArrayVarP(&f.filters, "filter", "f", nil, "field=value filter, repeatable; value All clears the field")
	fs.StringVar(&f.sort, "sort", "", "sort field")
	fs.StringVar(&f.order, "order", "", "sort order: asc or desc")
	fs.IntVar(&f.page, "page", 1, "page to show")
	fs.IntVar(&f.pageSize, "page-size", 0, "items per page (1-100)")
	fs.BoolVar(&f.reset, "reset", false, "forget the remembered filters, sort and page size first")
	fs.BoolVar(&f.options, "options", false, "print the filter choices instead of the list")
}

// remembered reports whether a flag that is stored as a preference was set.
func (f *listFlags) remembered(cmd *cobra.Command) bool {
	fs := cmd.Flags()
	return fs.Changed("filter") || fs.Changed("sort") || fs.Changed("order") || fs.Changed("page-size")
}

// listing describes one list command.
type listing[T any] struct {
	view        string
	title       string
	fields      listquery.Fields[T]
	remember    []string
	defaultSort string
	fetch       func(ctx context.Context, q url.Values) (*models.ListResponse[T], error)
	headers     []string
	row         func(T) []string
}

// fetchAll loads every item of a list endpoint. The first page tells how
// many remain; those are fetched concurrently.
func fetchAll[T any](ctx context.Context, fetch func(context.Context, url.Values) (*models.ListResponse[T], error)) ([]T, error) {
	query := func(page int) url.Values {
		return listquery.Spec{Page: page, PageSize: listquery.MaxPageSize, SortField: "id"}.Values()
	}

	first, err := fetch(ctx, query(1))
	if err != nil {
		return nil, err
	}
	if first.TotalPages <= 1 {
		return first.Items, nil
	}

	pages := make([][]T, first.TotalPages)
	pages[0] = first.Items

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchParallelism)
	for p := 2; p <= first.TotalPages; p++ {
		g.Go(func() error {
			resp, err := fetch(gctx, query(p))
			if err != nil {
				return err
			}
			pages[p-1] = resp.Items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slices.Concat(pages...), nil
}

// runList fetches the collection, applies the remembered preferences and
// the command line on top, and prints one page.
func runList[T any](cmd *cobra.Command, a *app, flags *listFlags, l listing[T]) error {
	ctx := cmd.Context()

	pm := prefs.New(a.store, l.view, prefs.Defaults{
		Filters:   l.remember,
		SortBy:    l.defaultSort,
		SortOrder: listquery.Asc,
		PageSize:  a.cfg.PageSize,
		CanSort:   l.fields.CanSort,
	}, prefs.WithLogger(a.logger))

	if flags.reset {
		if err := pm.Reset(ctx); err != nil {
			return err
		}
	}
	p, err := pm.Load(ctx)
	if err != nil {
		return err
	}

	items, err := fetchAll(ctx, l.fetch)
	if err := a.check(ctx, err); err != nil {
		return err
	}

	v := views.NewList(l.fields, p.Apply(listquery.Spec{}))
	v.SetItems(items)
	if err := applyFlags(cmd, flags, l.fields, v); err != nil {
		return err
	}

	if flags.remembered(cmd) {
		if err := pm.Save(ctx, pm.FromSpec(v.Spec())); err != nil {
			return err
		}
	}

	if flags.options {
		return printOptions(a, l.fields, v)
	}

	page := v.Page()
	if a.jsonOutput() {
		return a.printJSON(page)
	}
	t := newTable(l.title, l.headers...)
	for _, item := range page.Items {
		t.add(l.row(item)...)
	}
	t.render(a.out)
	footer(a.out, page)
	return nil
}

func applyFlags[T any](cmd *cobra.Command, flags *listFlags, fields listquery.Fields[T], v *views.ListView[T]) error {
	fs := cmd.Flags()
	if fs.Changed("search") {
		v.SetSearch(flags.search)
	}
	for _, raw := range flags.filters {
		field, value, ok := strings.Cut(raw, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return fmt.Errorf("filter %q is not field=value", raw)
		}
		if _, known := fields.Filterable[field]; !known {
			return fmt.Errorf("cannot filter on %q; choose one of %s", field, strings.Join(filterNames(fields), ", "))
		}
		v.SetFilter(field, strings.TrimSpace(value))
	}
	if fs.Changed("sort") {
		if !fields.CanSort(flags.sort) {
			return fmt.Errorf("cannot sort by %q", flags.sort)
		}
		v.SetSort(flags.sort)
	}
	if fs.Changed("order") {
		v.SetSortOrder(listquery.ParseDirection(flags.order))
	}
	if fs.Changed("page-size") {
		v.SetPageSize(flags.pageSize)
	}
	if fs.Changed("page") {
		v.SetPage(flags.page)
	}
	return nil
}

func printOptions[T any](a *app, fields listquery.Fields[T], v *views.ListView[T]) error {
	names := filterNames(fields)
	if a.jsonOutput() {
		out := make(map[string][]string, len(names))
		for _, name := range names {
			out[name] = v.Options(name)
		}
		return a.printJSON(out)
	}
	spec := v.Spec()
	t := newTable("Filters", "FIELD", "CURRENT", "CHOICES")
	for _, name := range names {
		current := spec.Filters[name]
		if current == "" {
			current = listquery.All
		}
		t.add(name, current, strings.Join(v.Options(name), ", "))
	}
	t.render(a.out)
	return nil
}

func filterNames[T any](fields listquery.Fields[T]) []string {
	names := make([]string, 0, len(fields.Filterable))
	for name := range fields.Filterable {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func itoa(n int) string { return strconv.Itoa(n) }
