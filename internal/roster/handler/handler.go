package handler

//go:generate mockgen -source=handler.go -destination=mocks/roster-mocks.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
	dErrors "festdraft/pkg/domain-errors"
	"festdraft/pkg/listquery"
	"festdraft/pkg/platform/httputil"
	"festdraft/pkg/requestcontext"
)

// Service defines the roster operations exposed over HTTP.
type Service interface {
	ListTeams(ctx context.Context, spec listquery.Spec) (*models.ListResponse[*models.Team], error)
	GetTeam(ctx context.Context, teamID id.TeamID) (*models.Team, error)
	CreateTeam(ctx context.Context, req *models.CreateTeamRequest) (*models.Team, error)
	UpdateTeam(ctx context.Context, teamID id.TeamID, req *models.UpdateTeamRequest) (*models.Team, error)
	DeleteTeam(ctx context.Context, teamID id.TeamID) error

	ListSections(ctx context.Context, spec listquery.Spec) (*models.ListResponse[*models.Section], error)
	CreateSection(ctx context.Context, req *models.SectionRequest) (*models.Section, error)
	UpdateSection(ctx context.Context, sectionID id.SectionID, req *models.SectionRequest) (*models.Section, error)
	DeleteSection(ctx context.Context, sectionID id.SectionID) error

	ListGroups(ctx context.Context, sectionID id.SectionID, spec listquery.Spec) (*models.ListResponse[*models.Group], error)
	CreateGroup(ctx context.Context, req *models.CreateGroupRequest) (*models.Group, error)
	UpdateGroup(ctx context.Context, groupID id.GroupID, req *models.UpdateGroupRequest) (*models.Group, error)
	DeleteGroup(ctx context.Context, groupID id.GroupID) error

	ListParticipants(ctx context.Context, sectionID id.SectionID, spec listquery.Spec) (*models.ListResponse[*models.Participant], error)
	ListAvailableParticipants(ctx context.Context, sectionID id.SectionID, spec listquery.Spec) (*models.ListResponse[*models.Participant], error)
	GetParticipant(ctx context.Context, participantID id.ParticipantID) (*models.Participant, error)
	CreateParticipant(ctx context.Context, req *models.CreateParticipantRequest) (*models.Participant, error)
	BulkCreateParticipants(ctx context.Context, req *models.BulkCreateParticipantsRequest) (*models.BulkResult, error)
	UpdateParticipant(ctx context.Context, participantID id.ParticipantID, req *models.UpdateParticipantRequest) (*models.Participant, error)
	DeleteParticipant(ctx context.Context, participantID id.ParticipantID) error

	ListAuctions(ctx context.Context, spec listquery.Spec) (*models.ListResponse[*models.Auction], error)
	GetAuction(ctx context.Context, auctionID id.AuctionID) (*models.Auction, error)
	CreateAuction(ctx context.Context, req *models.CreateAuctionRequest) (*models.Auction, error)
	UpdateAuction(ctx context.Context, auctionID id.AuctionID, req *models.UpdateAuctionRequest) (*models.Auction, error)
	DeleteAuction(ctx context.Context, auctionID id.AuctionID) error
	StartAuction(ctx context.Context, auctionID id.AuctionID, code string) (*models.Auction, error)
	EndAuction(ctx context.Context, auctionID id.AuctionID, code string) (*models.Auction, error)
	VerifyAccessCode(ctx context.Context, auctionID id.AuctionID, code string) (*models.AccessResult, error)
}

// sectionScopeParam narrows participant and group lists to one section. It is
// separate from the "section" filter, which matches section names.
const sectionScopeParam = "sectionId"

// Handler serves the roster endpoints.
type Handler struct {
	roster Service
	logger *slog.Logger
}

func New(roster Service, logger *slog.Logger) *Handler {
	return &Handler{roster: roster, logger: logger}
}

// Register mounts the read routes. The parent router applies RequireAuth.
func (h *Handler) Register(r chi.Router) {
	r.Get("/teams", h.HandleListTeams)
	r.Get("/teams/{team_id}", h.HandleGetTeam)
	r.Get("/sections", h.HandleListSections)
	r.Get("/groups", h.HandleListGroups)
	r.Get("/participants", h.HandleListParticipants)
	r.Get("/participants/available", h.HandleListAvailable)
	r.Get("/participants/{participant_id}", h.HandleGetParticipant)
	r.Get("/auctions", h.HandleListAuctions)
	r.Get("/auctions/{auction_id}", h.HandleGetAuction)
	r.Post("/auctions/{auction_id}/verify-access", h.HandleVerifyAccess)
}

// RegisterAdmin mounts roster mutations; callers wrap it in RequireAdmin.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/teams", h.HandleCreateTeam)
	r.Patch("/teams/{team_id}", h.HandleUpdateTeam)
	r.Delete("/teams/{team_id}", h.HandleDeleteTeam)
	r.Post("/sections", h.HandleCreateSection)
	r.Patch("/sections/{section_id}", h.HandleUpdateSection)
	r.Delete("/sections/{section_id}", h.HandleDeleteSection)
	r.Post("/groups", h.HandleCreateGroup)
	r.Patch("/groups/{group_id}", h.HandleUpdateGroup)
	r.Delete("/groups/{group_id}", h.HandleDeleteGroup)
	r.Post("/participants", h.HandleCreateParticipant)
	r.Post("/participants/bulk", h.HandleBulkCreate)
	r.Patch("/participants/{participant_id}", h.HandleUpdateParticipant)
	r.Delete("/participants/{participant_id}", h.HandleDeleteParticipant)
	r.Post("/auctions", h.HandleCreateAuction)
	r.Patch("/auctions/{auction_id}", h.HandleUpdateAuction)
	r.Delete("/auctions/{auction_id}", h.HandleDeleteAuction)
	r.Post("/auctions/{auction_id}/start", h.HandleStartAuction)
	r.Post("/auctions/{auction_id}/end", h.HandleEndAuction)
}

// respond writes res, or the error when the call failed.
func (h *Handler) respond(ctx context.Context, w http.ResponseWriter, status int, res any, err error, msg string) {
	if err != nil {
		h.logFailure(ctx, msg, err)
		httputil.WriteError(w, err)
		return
	}
	if res == nil {
		w.WriteHeader(status)
		return
	}
	httputil.WriteJSON(w, status, res)
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
}

func parseSpec[T any](w http.ResponseWriter, r *http.Request, fields listquery.Fields[T]) (listquery.Spec, bool) {
	spec, err := listquery.ParseSpec(r.URL.Query(), fields)
	if err != nil {
		httputil.WriteError(w, err)
		return listquery.Spec{}, false
	}
	return spec, true
}

// pathID parses a typed ID from a chi URL parameter.
func pathID[T any](w http.ResponseWriter, r *http.Request, param string, parse func(string) (T, error)) (T, bool) {
	v, err := parse(chi.URLParam(r, param))
	if err != nil {
		httputil.WriteError(w, err)
		var zero T
		return zero, false
	}
	return v, true
}

func (h *Handler) HandleListTeams(w http.ResponseWriter, r *http.Request) {
	spec, ok := parseSpec(w, r, models.TeamFields)
	if !ok {
		return
	}
	res, err := h.roster.ListTeams(r.Context(), spec)
	h.respond(r.Context(), w, http.StatusOK, res, err, "list teams failed")
}

func (h *Handler) HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "team_id", id.ParseTeamID)
	if !ok {
		return
	}
	res, err := h.roster.GetTeam(r.Context(), teamID)
	h.respond(r.Context(), w, http.StatusOK, res, err, "get team failed")
}

func (h *Handler) HandleCreateTeam(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[models.CreateTeamRequest](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.roster.CreateTeam(r.Context(), req)
	h.respond(r.Context(), w, http.StatusCreated, res, err, "create team failed")
}

func (h *Handler) HandleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "team_id", id.ParseTeamID)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.UpdateTeamRequest](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.roster.UpdateTeam(r.Context(), teamID, req)
	h.respond(r.Context(), w, http.StatusOK, res, err, "update team failed")
}

func (h *Handler) HandleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "team_id", id.ParseTeamID)
	if !ok {
		return
	}
	err := h.roster.DeleteTeam(r.Context(), teamID)
	h.respond(r.Context(), w, http.StatusNoContent, nil, err, "delete team failed")
}

func (h *Handler) HandleListSections(w http.ResponseWriter, r *http.Request) {
	spec, ok := parseSpec(w, r, models.SectionFields)
	if !ok {
		return
	}
	res, err := h.roster.ListSections(r.Context(), spec)
	h.respond(r.Context(), w, http.StatusOK, res, err, "list sections failed")
}

func (h *Handler) HandleCreateSection(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[models.SectionRequest](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.roster.CreateSection(r.Context(), req)
	h.respond(r.Context(), w, http.StatusCreated, res, err, "create section failed")
}

func (h *Handler) HandleUpdateSection(w http.ResponseWriter, r *http.Request) {
	sectionID, ok := pathID(w, r, "section_id", id.ParseSectionID)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.SectionRequest](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.roster.UpdateSection(r.Context(), sectionID, req)
	h.respond(r.Context(), w, http.StatusOK, res, err, "update section failed")
}

func (h *Handler) HandleDeleteSection(w http.ResponseWriter, r *http.Request) {
	sectionID, ok := pathID(w, r, "section_id", id.ParseSectionID)
	if !ok {
		return
	}
	err := h.roster.DeleteSection(r.Context(), sectionID)
	h.respond(r.Context(), w, http.StatusNoContent, nil, err, "delete section failed")
}

// HandleListGroups implements GET /groups. Query: sectionId plus the usual
// list parameters.
func (h *Handler) HandleListGroups(w http.ResponseWriter, r *http.Request) {
	sectionID, ok := sectionScope(w, r)
	if !ok {
		return
	}
	spec, ok := parseSpec(w, r, models.GroupFields)
	if !ok {
		return
	}
	res, err := h.roster.ListGroups(r.Context(), sectionID, spec)
	h.respond(r.Context(), w, http.StatusOK, res, err, "list groups failed")
}

func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[models.CreateGroupRequest](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.roster.CreateGroup(r.Context(), req)
	h.respond(r.Context(), w, http.StatusCreated, res, err, "create group failed")
}

func (h *Handler) HandleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "group_id", id.ParseGroupID)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.UpdateGroupRequest](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.roster.UpdateGroup(r.Context(), groupID, req)
	h.respond(r.Context(), w, http.StatusOK, res, err, "update group failed")
}

func (h *Handler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "group_id", id.ParseGroupID)
	if !ok {
		return
	}
	err := h.roster.DeleteGroup(r.Context(), groupID)
	h.respond(r.Context(), w, http.StatusNoContent, nil, err, "delete group failed")
}

// sectionScope reads the optional sectionId query parameter.
func sectionScope(w http.ResponseWriter, r *http.Request) (id.SectionID, bool) {
	raw := r.URL.Query().Get(sectionScopeParam)
	if raw == "" {
		return 0, true
	}
	sectionID, err := id.ParseSectionID(raw)
	if err != nil {
		httputil.WriteError(w, err)
		return 0, false
	}
	return sectionID, true
}

// HandleListParticipants implements GET /participants.
//
// Query: sectionId, search, sort, order, page, page_size and one parameter
// per filter (status, section, gender, team, skill).
func (h *Handler) HandleListParticipants(w http.ResponseWriter, r *http.Request) {
	sectionID, ok := sectionScope(w, r)
	if !ok {
		return
	}
	spec, ok := parseSpec(w, r, models.ParticipantFields)
	if !ok {
		return
	}
	res, err := h.roster.ListParticipants(r.Context(), sectionID, spec)
	h.respond(r.Context(), w, http.StatusOK, res, err, "list participants failed")
}

// HandleListAvailable implements GET /participants/available, the team
// manager candidate list.
func (h *Handler) HandleListAvailable(w http.ResponseWriter, r *http.Request) {
	sectionID, ok := sectionScope(w, r)
	if !ok {
		return
	}
	spec, ok := parseSpec(w, r, models.ParticipantFields)
	if !ok {
		return
	}
	res, err := h.roster.ListAvailableParticipants(r.Context(), sectionID, spec)
	h.respond(r.Context(), w, http.StatusOK, res, err, "list available participants failed")
}

func (h *Handler) HandleGetParticipant(w http.ResponseWriter, r *http.Request) {
	participantID, ok := pathID(w, r, "participant_id", id.ParseParticipantID)
	if !ok {
		return
	}
	res, err := h.roster.GetParticipant(r.Context(), participantID)
	h.respond(r.Context(), w, http.StatusOK, res, err, "get participant failed")
}

func (h *Handler) HandleCreateParticipant(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[models.CreateParticipantRequest](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.roster.CreateParticipant(r.Context(), req)
	h.respond(r.Context(), w, http.StatusCreated, res, err, "create participant failed")
}

// HandleBulkCreate implements POST /participants/bulk. Rows that fail
// validation are reported in the body; the call still succeeds.
func (h *Handler) HandleBulkCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[models.BulkCreateParticipantsRequest](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.roster.BulkCreateParticipants(r.Context(), req)
	h.respond(r.Context(), w, http.StatusCreated, res, err, "bulk create participants failed")
}

func (h *Handler) HandleUpdateParticipant(w http.ResponseWriter, r *http.Request) {
	participantID, ok := pathID(w, r, "participant_id", id.ParseParticipantID)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.UpdateParticipantRequest](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.roster.UpdateParticipant(r.Context(), participantID, req)
	h.respond(r.Context(), w, http.StatusOK, res, err, "update participant failed")
}

func (h *Handler) HandleDeleteParticipant(w http.ResponseWriter, r *http.Request) {
	participantID, ok := pathID(w, r, "participant_id", id.ParseParticipantID)
	if !ok {
		return
	}
	err := h.roster.DeleteParticipant(r.Context(), participantID)
	h.respond(r.Context(), w, http.StatusNoContent, nil, err, "delete participant failed")
}

func (h *Handler) HandleListAuctions(w http.ResponseWriter, r *http.Request) {
	spec, ok := parseSpec(w, r, models.AuctionFields)
	if !ok {
		return
	}
	res, err := h.roster.ListAuctions(r.Context(), spec)
	h.respond(r.Context(), w, http.StatusOK, res, err, "list auctions failed")
}

func (h *Handler) HandleGetAuction(w http.ResponseWriter, r *http.Request) {
	auctionID, ok := pathID(w, r, "auction_id", id.ParseAuctionID)
	if !ok {
		return
	}
	res, err := h.roster.GetAuction(r.Context(), auctionID)
	h.respond(r.Context(), w, http.StatusOK, res, err, "get auction failed")
}

func (h *Handler) HandleCreateAuction(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[models.CreateAuctionRequest](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.roster.CreateAuction(r.Context(), req)
	h.respond(r.Context(), w, http.StatusCreated, res, err, "create auction failed")
}

// HandleUpdateAuction patches a draft auction.
func (h *Handler) HandleUpdateAuction(w http.ResponseWriter, r *http.Request) {
	auctionID, ok := pathID(w, r, "auction_id", id.ParseAuctionID)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.UpdateAuctionRequest](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.roster.UpdateAuction(r.Context(), auctionID, req)
	h.respond(r.Context(), w, http.StatusOK, res, err, "update auction failed")
}

func (h *Handler) HandleDeleteAuction(w http.ResponseWriter, r *http.Request) {
	auctionID, ok := pathID(w, r, "auction_id", id.ParseAuctionID)
	if !ok {
		return
	}
	err := h.roster.DeleteAuction(r.Context(), auctionID)
	h.respond(r.Context(), w, http.StatusNoContent, nil, err, "delete auction failed")
}

// accessCodeCall decodes { "accessCode": "..." } and runs fn with it.
func accessCodeCall[T any](h *Handler, w http.ResponseWriter, r *http.Request, msg string,
	fn func(ctx context.Context, auctionID id.AuctionID, code string) (T, error),
) {
	auctionID, ok := pathID(w, r, "auction_id", id.ParseAuctionID)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.AccessCodeRequest](w, r, h.logger)
	if !ok {
		return
	}
	res, err := fn(r.Context(), auctionID, req.AccessCode)
	h.respond(r.Context(), w, http.StatusOK, res, err, msg)
}

func (h *Handler) HandleStartAuction(w http.ResponseWriter, r *http.Request) {
	accessCodeCall(h, w, r, "start auction failed", h.roster.StartAuction)
}

func (h *Handler) HandleEndAuction(w http.ResponseWriter, r *http.Request) {
	accessCodeCall(h, w, r, "end auction failed", h.roster.EndAuction)
}

// HandleVerifyAccess answers { "valid": bool, "auction": {...} }.
func (h *Handler) HandleVerifyAccess(w http.ResponseWriter, r *http.Request) {
	accessCodeCall(h, w, r, "verify access failed", h.roster.VerifyAccessCode)
}
