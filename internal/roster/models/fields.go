package models

import (
	"strconv"

	"festdraft/pkg/listquery"
)

// Filter keys shared by the HTTP API, client views and preferences.
const (
	FilterStatus  = "status"
	FilterSection = "section"
	FilterGender  = "gender"
	FilterTeam    = "team"
	FilterSkill   = "skill"
)

// TeamFields drives list queries over teams.
var TeamFields = listquery.Fields[*Team]{
	Primary: "name",
	Searchable: []func(*Team) string{
		func(t *Team) string { return t.Name },
		func(t *Team) string { return t.Manager },
		func(t *Team) string { return t.Colour },
	},
	Filterable: map[string]func(*Team) string{
		"colour": func(t *Team) string { return t.Colour },
	},
	Sortable: map[string]listquery.SortKey[*Team]{
		"id":      listquery.Number(func(t *Team) int64 { return int64(t.ID) }),
		"name":    listquery.Text(func(t *Team) string { return t.Name }),
		"manager": listquery.Text(func(t *Team) string { return t.Manager }),
		"colour":  listquery.Text(func(t *Team) string { return t.Colour }),
	},
}

// SectionFields drives list queries over sections.
var SectionFields = listquery.Fields[*Section]{
	Primary:    "name",
	Searchable: []func(*Section) string{func(s *Section) string { return s.Name }},
	Sortable: map[string]listquery.SortKey[*Section]{
		"id":   listquery.Number(func(s *Section) int64 { return int64(s.ID) }),
		"name": listquery.Text(func(s *Section) string { return s.Name }),
	},
}

// GroupFields drives list queries over groups.
var GroupFields = listquery.Fields[*Group]{
	Primary: "name",
	Searchable: []func(*Group) string{
		func(g *Group) string { return g.Name },
		func(g *Group) string { return g.SectionName },
	},
	Filterable: map[string]func(*Group) string{
		FilterSection: func(g *Group) string { return g.SectionName },
	},
	Sortable: map[string]listquery.SortKey[*Group]{
		"id":      listquery.Number(func(g *Group) int64 { return int64(g.ID) }),
		"name":    listquery.Text(func(g *Group) string { return g.Name }),
		"section": listquery.Text(func(g *Group) string { return g.SectionName }),
		"created": listquery.Number(func(g *Group) int64 { return g.CreatedAt.UnixNano() }),
	},
}

// ParticipantFields drives the participant and candidate lists.
var ParticipantFields = listquery.Fields[*Participant]{
	Primary: "name",
	Searchable: []func(*Participant) string{
		func(p *Participant) string { return p.Name },
		func(p *Participant) string { return p.Skill },
		func(p *Participant) string { return p.Experience },
		func(p *Participant) string { return p.Email },
		func(p *Participant) string { return p.AdmNo },
		func(p *Participant) string { return p.ChestNo },
	},
	Filterable: map[string]func(*Participant) string{
		FilterStatus:  func(p *Participant) string { return p.Status },
		FilterSection: func(p *Participant) string { return p.SectionName },
		FilterGender:  func(p *Participant) string { return p.Gender },
		FilterTeam:    func(p *Participant) string { return p.TeamName },
		FilterSkill:   func(p *Participant) string { return p.Skill },
	},
	Sortable: map[string]listquery.SortKey[*Participant]{
		"id":         listquery.Number(func(p *Participant) int64 { return int64(p.ID) }),
		"name":       listquery.Text(func(p *Participant) string { return p.Name }),
		"skill":      listquery.Text(func(p *Participant) string { return p.Skill }),
		"experience": listquery.Number(experienceYears),
		"status":     listquery.Text(func(p *Participant) string { return p.Status }),
		"section":    listquery.Text(func(p *Participant) string { return p.SectionName }),
		"team":       listquery.Text(func(p *Participant) string { return p.TeamName }),
		"chest_no":   listquery.Text(func(p *Participant) string { return p.ChestNo }),
	},
}

// AuctionFields drives the auction list.
var AuctionFields = listquery.Fields[*Auction]{
	Primary: "name",
	Searchable: []func(*Auction) string{
		func(a *Auction) string { return a.Name },
		func(a *Auction) string { return a.Description },
	},
	Filterable: map[string]func(*Auction) string{
		FilterStatus:  func(a *Auction) string { return a.Status.String() },
		FilterSection: func(a *Auction) string { return a.SectionName },
	},
	Sortable: map[string]listquery.SortKey[*Auction]{
		"id":      listquery.Number(func(a *Auction) int64 { return int64(a.ID) }),
		"name":    listquery.Text(func(a *Auction) string { return a.Name }),
		"status":  listquery.Text(func(a *Auction) string { return a.Status.String() }),
		"created": listquery.Number(func(a *Auction) int64 { return a.CreatedAt.UnixNano() }),
	},
}

// experienceYears reads the leading integer of values like "5 years".
// Anything unparsable sorts first.
func experienceYears(p *Participant) int {
	digits := 0
	for digits < len(p.Experience) && p.Experience[digits] >= '0' && p.Experience[digits] <= '9' {
		digits++
	}
	n, err := strconv.Atoi(p.Experience[:digits])
	if err != nil {
		return -1
	}
	return n
}
