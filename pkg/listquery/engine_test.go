package listquery

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"

	dErrors "festdraft/pkg/domain-errors"
)

type candidate struct {
	ID         int
	Name       string
	Skill      string
	Experience string
	Status     string
}

var candidateFields = Fields[candidate]{
	Primary: "name",
	Searchable: []func(candidate) string{
		func(c candidate) string { return c.Name },
		func(c candidate) string { return c.Skill },
		func(c candidate) string { return c.Experience },
	},
	Filterable: map[string]func(candidate) string{
		"status": func(c candidate) string { return c.Status },
		"skill":  func(c candidate) string { return c.Skill },
	},
	Sortable: map[string]SortKey[candidate]{
		"name":   Text(func(c candidate) string { return c.Name }),
		"skill":  Text(func(c candidate) string { return c.Skill }),
		"status": Text(func(c candidate) string { return c.Status }),
		"id":     Number(func(c candidate) int { return c.ID }),
	},
}

func ids(items []candidate) []int {
	out := make([]int, len(items))
	for i, c := range items {
		out[i] = c.ID
	}
	return out
}

type EngineSuite struct {
	suite.Suite
	roster []candidate
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.roster = []candidate{
		{ID: 1, Name: "Muhammed O", Skill: "JavaScript", Experience: "5 years", Status: "Available"},
		{ID: 2, Name: "Jane Smith", Skill: "Python", Experience: "3 years", Status: "Available"},
		{ID: 3, Name: "Mike Johnson", Skill: "Java", Experience: "4 years", Status: "Selected"},
		{ID: 4, Name: "alice", Skill: "Go", Experience: "2 years", Status: "Available"},
		{ID: 5, Name: "Bob", Skill: "Go", Experience: "6 years", Status: "Selected"},
	}
}

func (s *EngineSuite) TestSearchIsCaseInsensitiveSubstring() {
	for _, term := range []string{"smi", "SMI", "Smi"} {
		got := Filter(s.roster, Spec{Search: term}, candidateFields)
		s.Equal([]int{2}, ids(got), term)
	}

	s.Run("matches kind-specific fields", func() {
		s.Equal([]int{1, 3}, ids(Filter(s.roster, Spec{Search: "java"}, candidateFields)))
		s.Equal([]int{5}, ids(Filter(s.roster, Spec{Search: "6 YEARS"}, candidateFields)))
	})

	s.Run("empty term matches everything", func() {
		s.Len(Filter(s.roster, Spec{}, candidateFields), len(s.roster))
	})
}

func (s *EngineSuite) TestFiltersAreExactAndConjunctive() {
	spec := Spec{Filters: map[string]string{"status": "Available", "skill": "Go"}}
	s.Equal([]int{4}, ids(Filter(s.roster, spec, candidateFields)))

	s.Run("comparison is case-sensitive", func() {
		spec := Spec{Filters: map[string]string{"status": "available"}}
		s.Empty(Filter(s.roster, spec, candidateFields))
	})

	s.Run("All and empty values do not constrain", func() {
		spec := Spec{Filters: map[string]string{"status": All, "skill": ""}}
		s.Len(Filter(s.roster, spec, candidateFields), len(s.roster))
	})

	s.Run("filters on undeclared fields are ignored", func() {
		spec := Spec{Filters: map[string]string{"gender": "FEMALE"}}
		s.Len(Filter(s.roster, spec, candidateFields), len(s.roster))
	})

	s.Run("search and filters combine", func() {
		spec := Spec{Search: "m", Filters: map[string]string{"status": "Selected"}}
		s.Equal([]int{3}, ids(Filter(s.roster, spec, candidateFields)))
	})
}

func (s *EngineSuite) TestFilterDoesNotMutateInput() {
	before := append([]candidate(nil), s.roster...)
	_ = Filter(s.roster, Spec{Search: "a"}, candidateFields)
	_ = Sort(s.roster, "name", Desc, candidateFields)
	if diff := cmp.Diff(before, s.roster); diff != "" {
		s.Failf("input mutated", "diff (-before +after):\n%s", diff)
	}
}

func (s *EngineSuite) TestSortCaseInsensitive() {
	got := Sort(s.roster, "name", Asc, candidateFields)
	s.Equal([]int{4, 5, 2, 3, 1}, ids(got))

	got = Sort(s.roster, "id", Desc, candidateFields)
	s.Equal([]int{5, 4, 3, 2, 1}, ids(got))
}

func (s *EngineSuite) TestSortIsStableInBothDirections() {
	// Skill ties: Go (4, 5).
	asc := Sort(s.roster, "skill", Asc, candidateFields)
	s.Equal([]int{4, 5, 3, 1, 2}, ids(asc))

	desc := Sort(s.roster, "skill", Desc, candidateFields)
	s.Equal([]int{2, 1, 3, 4, 5}, ids(desc), "ties keep input order under descending")

	// Status ties: Available (1, 2, 4), Selected (3, 5).
	s.Equal([]int{3, 5, 1, 2, 4}, ids(Sort(s.roster, "status", Desc, candidateFields)))
}

func (s *EngineSuite) TestSortUnknownFieldFallsBackToPrimary() {
	s.Equal(
		ids(Sort(s.roster, "name", Asc, candidateFields)),
		ids(Sort(s.roster, "salary", Asc, candidateFields)),
	)
}

func (s *EngineSuite) TestPaginate() {
	s.Equal([]int{1, 2}, ids(Paginate(s.roster, 1, 2)))
	s.Equal([]int{5}, ids(Paginate(s.roster, 3, 2)))
	s.Empty(Paginate(s.roster, 4, 2))
	s.Empty(Paginate([]candidate{}, 1, 10))
}

func (s *EngineSuite) TestTotalPagesAndClamp() {
	s.Equal(0, TotalPages(0, 5))
	s.Equal(1, TotalPages(4, 5))
	s.Equal(3, TotalPages(12, 5))
	s.Equal(1, ClampPage(3, 1))
	s.Equal(2, ClampPage(2, 3))
	s.Equal(1, ClampPage(0, 3))
}

func (s *EngineSuite) TestPageClampAfterFilterShrinks() {
	twelve := make([]candidate, 0, 12)
	for i := 1; i <= 12; i++ {
		status := "Selected"
		if i%3 == 0 {
			status = "Available"
		}
		twelve = append(twelve, candidate{ID: i, Name: "c", Status: status})
	}

	spec := Spec{Page: 3, PageSize: 5}
	page := Run(twelve, spec, candidateFields)
	s.Equal(3, page.TotalPages)
	s.Len(page.Items, 2)

	spec = spec.WithFilter("status", "Available")
	page = Run(twelve, spec, candidateFields)
	s.Equal(4, page.Total)
	s.Equal(1, page.TotalPages)
	s.Empty(page.Items, "engine does not own page state")

	spec.Page = ClampPage(spec.Page, page.TotalPages)
	page = Run(twelve, spec, candidateFields)
	s.Equal(1, page.Page)
	s.Equal([]int{3, 6, 9, 12}, ids(page.Items))
}

func (s *EngineSuite) TestRunScenario() {
	entities := []candidate{
		{ID: 1, Name: "Alice", Skill: "Go", Status: "Available"},
		{ID: 2, Name: "Bob", Skill: "Go", Status: "Hired"},
	}
	spec := Spec{
		Filters:       map[string]string{"status": "Available"},
		SortField:     "name",
		SortDirection: Asc,
		Page:          1,
		PageSize:      10,
	}

	got := Run(entities, spec, candidateFields)

	want := Page[candidate]{
		Items:      []candidate{entities[0]},
		Total:      1,
		Of:         2,
		Page:       1,
		PageSize:   10,
		TotalPages: 1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		s.Failf("unexpected page", "diff (-want +got):\n%s", diff)
	}
}

func (s *EngineSuite) TestRunNeverExceedsFilteredCount() {
	specs := []Spec{
		{},
		{Search: "a", PageSize: 2},
		{Filters: map[string]string{"skill": "Go"}, Page: 2, PageSize: 1},
		{Search: "zzz"},
	}
	for _, spec := range specs {
		page := Run(s.roster, spec, candidateFields)
		filtered := Filter(s.roster, spec, candidateFields)
		s.LessOrEqual(len(page.Items), len(filtered))
		s.Equal(TotalPages(len(filtered), spec.Normalize().PageSize), page.TotalPages)
	}
}

func (s *EngineSuite) TestEmptyInput() {
	page := Run([]candidate(nil), Spec{Search: "x"}, candidateFields)
	s.NotNil(page.Items)
	s.Empty(page.Items)
	s.Zero(page.Total)
	s.Zero(page.TotalPages)
}

func (s *EngineSuite) TestOptionsFollowCurrentCollection() {
	opts := Options(s.roster, candidateFields)
	s.Equal([]string{All, "Available", "Selected"}, opts["status"])

	s.roster = append(s.roster, candidate{ID: 6, Name: "Eve", Skill: "Rust", Status: "Reserved"})
	opts = Options(s.roster, candidateFields)
	s.Equal([]string{All, "Available", "Selected", "Reserved"}, opts["status"])
	s.Contains(opts["skill"], "Rust")
}

func (s *EngineSuite) TestParseSpec() {
	s.Run("reads known parameters", func() {
		q := url.Values{
			"search":    {"jav"},
			"sort":      {"skill"},
			"order":     {"DESC"},
			"page":      {"2"},
			"page_size": {"5"},
			"status":    {"Available"},
			"gender":    {"MALE"},
		}
		spec, err := ParseSpec(q, candidateFields)
		s.Require().NoError(err)
		s.Equal("jav", spec.Search)
		s.Equal("skill", spec.SortField)
		s.Equal(Desc, spec.SortDirection)
		s.Equal(2, spec.Page)
		s.Equal(5, spec.PageSize)
		s.Equal(map[string]string{"status": "Available"}, spec.Filters)
	})

	s.Run("defaults", func() {
		spec, err := ParseSpec(url.Values{}, candidateFields)
		s.Require().NoError(err)
		s.Equal(1, spec.Page)
		s.Equal(DefaultPageSize, spec.PageSize)
		s.Equal(Asc, spec.SortDirection)
	})

	s.Run("rejects malformed paging", func() {
		for _, q := range []url.Values{{"page": {"zero"}}, {"page": {"0"}}, {"page_size": {"500"}}} {
			_, err := ParseSpec(q, candidateFields)
			s.True(dErrors.HasCode(err, dErrors.CodeBadRequest), q.Encode())
		}
	})

	s.Run("Values round-trips", func() {
		in := Spec{Search: "go", SortField: "id", SortDirection: Desc, Page: 3, PageSize: 7,
			Filters: map[string]string{"skill": "Go", "status": All}}
		out, err := ParseSpec(in.Values(), candidateFields)
		s.Require().NoError(err)
		s.Equal(map[string]string{"skill": "Go"}, out.Filters)
		s.Equal(in.Search, out.Search)
		s.Equal(in.Page, out.Page)
		s.Equal(Desc, out.SortDirection)
	})
}
