package api

import (
	"context"
	"net/http"
	"net/url"

	"festdraft/internal/admin"
	authmodels "festdraft/internal/auth/models"
	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
)

// Login exchanges credentials for a token and profile.
func (c *Client) Login(ctx context.Context, email, password string) (*authmodels.LoginResult, error) {
	var res authmodels.LoginResult
	req := authmodels.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Profile re-validates the current token.
func (c *Client) Profile(ctx context.Context) (*authmodels.UserProfile, error) {
	var res authmodels.UserProfile
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Logout(ctx context.Context) (*authmodels.LogoutResult, error) {
	var res authmodels.LogoutResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Permissions(ctx context.Context) (*authmodels.Permissions, error) {
	var res authmodels.Permissions
	if err := c.do(ctx, http.MethodGet, "/api/auth/permissions", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Dashboard(ctx context.Context) (*admin.Dashboard, error) {
	var res admin.Dashboard
	if err := c.do(ctx, http.MethodGet, "/admin", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) TeamHome(ctx context.Context) (*admin.TeamHome, error) {
	var res admin.TeamHome
	if err := c.do(ctx, http.MethodGet, "/team", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// get and send keep the typed wrappers below to one line each.
func get[T any](ctx context.Context, c *Client, path string, query url.Values) (*T, error) {
	var res T
	if err := c.do(ctx, http.MethodGet, path, query, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func send[T any](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	var res T
	if err := c.do(ctx, method, path, nil, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Teams(ctx context.Context, query url.Values) (*models.ListResponse[*models.Team], error) {
	return get[models.ListResponse[*models.Team]](ctx, c, "/api/teams", query)
}

func (c *Client) CreateTeam(ctx context.Context, req *models.CreateTeamRequest) (*models.Team, error) {
	return send[models.Team](ctx, c, http.MethodPost, "/api/teams", req)
}

func (c *Client) DeleteTeam(ctx context.Context, teamID id.TeamID) error {
	return c.do(ctx, http.MethodDelete, "/api/teams/"+teamID.String(), nil, nil, nil)
}

func (c *Client) Sections(ctx context.Context, query url.Values) (*models.ListResponse[*models.Section], error) {
	return get[models.ListResponse[*models.Section]](ctx, c, "/api/sections", query)
}

func (c *Client) CreateSection(ctx context.Context, req *models.SectionRequest) (*models.Section, error) {
	return send[models.Section](ctx, c, http.MethodPost, "/api/sections", req)
}

func (c *Client) DeleteSection(ctx context.Context, sectionID id.SectionID) error {
	return c.do(ctx, http.MethodDelete, "/api/sections/"+sectionID.String(), nil, nil, nil)
}

// Groups lists every group, or one section's when sectionID is set.
func (c *Client) Groups(ctx context.Context, sectionID id.SectionID, query url.Values) (*models.ListResponse[*models.Group], error) {
	return get[models.ListResponse[*models.Group]](ctx, c, "/api/groups", withSection(query, sectionID))
}

func (c *Client) CreateGroup(ctx context.Context, req *models.CreateGroupRequest) (*models.Group, error) {
	return send[models.Group](ctx, c, http.MethodPost, "/api/groups", req)
}

func (c *Client) UpdateGroup(ctx context.Context, groupID id.GroupID, req *models.UpdateGroupRequest) (*models.Group, error) {
	return send[models.Group](ctx, c, http.MethodPatch, "/api/groups/"+groupID.String(), req)
}

func (c *Client) DeleteGroup(ctx context.Context, groupID id.GroupID) error {
	return c.do(ctx, http.MethodDelete, "/api/groups/"+groupID.String(), nil, nil, nil)
}

// Participants lists every participant, or one section's when sectionID is set.
func (c *Client) Participants(ctx context.Context, sectionID id.SectionID, query url.Values) (*models.ListResponse[*models.Participant], error) {
	return get[models.ListResponse[*models.Participant]](ctx, c, "/api/participants", withSection(query, sectionID))
}

// AvailableParticipants lists participants without a team.
func (c *Client) AvailableParticipants(ctx context.Context, sectionID id.SectionID, query url.Values) (*models.ListResponse[*models.Participant], error) {
	return get[models.ListResponse[*models.Participant]](ctx, c, "/api/participants/available", withSection(query, sectionID))
}

func (c *Client) CreateParticipant(ctx context.Context, req *models.CreateParticipantRequest) (*models.Participant, error) {
	return send[models.Participant](ctx, c, http.MethodPost, "/api/participants", req)
}

func (c *Client) BulkCreateParticipants(ctx context.Context, req *models.BulkCreateParticipantsRequest) (*models.BulkResult, error) {
	return send[models.BulkResult](ctx, c, http.MethodPost, "/api/participants/bulk", req)
}

func (c *Client) UpdateParticipant(ctx context.Context, participantID id.ParticipantID, req *models.UpdateParticipantRequest) (*models.Participant, error) {
	return send[models.Participant](ctx, c, http.MethodPatch, "/api/participants/"+participantID.String(), req)
}

func (c *Client) DeleteParticipant(ctx context.Context, participantID id.ParticipantID) error {
	return c.do(ctx, http.MethodDelete, "/api/participants/"+participantID.String(), nil, nil, nil)
}

func (c *Client) Auctions(ctx context.Context, query url.Values) (*models.ListResponse[*models.Auction], error) {
	return get[models.ListResponse[*models.Auction]](ctx, c, "/api/auctions", query)
}

func (c *Client) CreateAuction(ctx context.Context, req *models.CreateAuctionRequest) (*models.Auction, error) {
	return send[models.Auction](ctx, c, http.MethodPost, "/api/auctions", req)
}

func (c *Client) UpdateAuction(ctx context.Context, auctionID id.AuctionID, req *models.UpdateAuctionRequest) (*models.Auction, error) {
	return send[models.Auction](ctx, c, http.MethodPatch, "/api/auctions/"+auctionID.String(), req)
}

func (c *Client) DeleteAuction(ctx context.Context, auctionID id.AuctionID) error {
	return c.do(ctx, http.MethodDelete, "/api/auctions/"+auctionID.String(), nil, nil, nil)
}

func (c *Client) StartAuction(ctx context.Context, auctionID id.AuctionID, code string) (*models.Auction, error) {
	return send[models.Auction](ctx, c, http.MethodPost, "/api/auctions/"+auctionID.String()+"/start", models.AccessCodeRequest{AccessCode: code})
}

func (c *Client) EndAuction(ctx context.Context, auctionID id.AuctionID, code string) (*models.Auction, error) {
	return send[models.Auction](ctx, c, http.MethodPost, "/api/auctions/"+auctionID.String()+"/end", models.AccessCodeRequest{AccessCode: code})
}

func (c *Client) VerifyAccess(ctx context.Context, auctionID id.AuctionID, code string) (*models.AccessResult, error) {
	return send[models.AccessResult](ctx, c, http.MethodPost, "/api/auctions/"+auctionID.String()+"/verify-access", models.AccessCodeRequest{AccessCode: code})
}

// sectionParam mirrors the server's participant and group scope parameter.
const sectionParam = "sectionId"

func withSection(query url.Values, sectionID id.SectionID) url.Values {
	if sectionID.IsNil() {
		return query
	}
	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	q.Set(sectionParam, sectionID.String())
	return q
}
