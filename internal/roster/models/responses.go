package models

import "festdraft/pkg/listquery"

// ListResponse is the body of every list endpoint: the requested page plus
// the filter choices present in the unfiltered collection.
type ListResponse[T any] struct {
	listquery.Page[T]
	FilterOptions map[string][]string `json:"filter_options,omitempty"`
}

// NewListResponse runs spec over items. A page past the end is clamped
// back to the first page.
func NewListResponse[T any](items []T, spec listquery.Spec, fields listquery.Fields[T]) ListResponse[T] {
	page := listquery.Run(items, spec, fields)
	if page.Page != listquery.ClampPage(page.Page, page.TotalPages) {
		spec.Page = 1
		page = listquery.Run(items, spec, fields)
	}
	return ListResponse[T]{
		Page:          page,
		FilterOptions: listquery.Options(items, fields),
	}
}

// BulkResult reports the outcome of POST /participants/bulk.
type BulkResult struct {
	Success int            `json:"success"`
	Created []*Participant `json:"created"`
	Errors  []BulkError    `json:"errors"`
}

// AccessResult answers POST /auctions/{id}/verify-access.
type AccessResult struct {
	Valid   bool     `json:"valid"`
	Auction *Auction `json:"auction,omitempty"`
}

// Overview is the roster summary on the admin dashboard.
type Overview struct {
	Teams                 int `json:"teams"`
	Sections              int `json:"sections"`
	Groups                int `json:"groups"`
	Participants          int `json:"participants"`
	AvailableParticipants int `json:"availableParticipants"`
	Auctions              int `json:"auctions"`
	LiveAuctions          int `json:"liveAuctions"`
}
