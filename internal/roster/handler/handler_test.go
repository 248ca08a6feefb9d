package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"festdraft/internal/roster/handler/mocks"
	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
	dErrors "festdraft/pkg/domain-errors"
	"festdraft/pkg/listquery"
	"festdraft/pkg/platform/httputil"
)

type RosterHandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  *chi.Mux
}

func TestRosterHandlerSuite(t *testing.T) {
	suite.Run(t, new(RosterHandlerSuite))
}

func (s *RosterHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)

	h := New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.router = chi.NewRouter()
	h.Register(s.router)
	h.RegisterAdmin(s.router)
}

func (s *RosterHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RosterHandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, httptest.NewRequest(method, path, reader))
	return rr
}

func (s *RosterHandlerSuite) decodeError(rr *httptest.ResponseRecorder) httputil.ErrorResponse {
	var body httputil.ErrorResponse
	s.Require().NoError(json.NewDecoder(rr.Body).Decode(&body))
	return body
}

func (s *RosterHandlerSuite) TestListParticipants() {
	s.Run("query parameters become the list query", func() {
		s.service.EXPECT().ListParticipants(gomock.Any(), id.SectionID(4), gomock.Any()).DoAndReturn(
			func(_ any, _ id.SectionID, spec listquery.Spec) (*models.ListResponse[*models.Participant], error) {
				s.Equal("jav", spec.Search)
				s.Equal("experience", spec.SortField)
				s.Equal(listquery.Desc, spec.SortDirection)
				s.Equal(2, spec.Page)
				s.Equal(5, spec.PageSize)
				s.Equal("Axis", spec.Filters[models.FilterTeam])
				return &models.ListResponse[*models.Participant]{
					Page: listquery.Page[*models.Participant]{
						Items:      []*models.Participant{{ID: 9, Name: "Mike Johnson", Status: models.StatusSelected}},
						Total:      6,
						Of:         40,
						Page:       2,
						PageSize:   5,
						TotalPages: 2,
					},
					FilterOptions: map[string][]string{models.FilterTeam: {listquery.All, "Axis"}},
				}, nil
			})

		rr := s.do(http.MethodGet, "/participants?sectionId=4&search=jav&sort=experience&order=desc&page=2&page_size=5&team=Axis", "")
		s.Require().Equal(http.StatusOK, rr.Code)

		var body struct {
			Items         []map[string]any    `json:"items"`
			Total         int                 `json:"total"`
			Of            int                 `json:"of"`
			TotalPages    int                 `json:"total_pages"`
			FilterOptions map[string][]string `json:"filter_options"`
		}
		s.Require().NoError(json.NewDecoder(rr.Body).Decode(&body))
		s.Equal(6, body.Total)
		s.Equal(40, body.Of)
		s.Equal("9", body.Items[0]["id"])
		s.Equal([]string{"All", "Axis"}, body.FilterOptions["team"])
	})

	s.Run("malformed page", func() {
		rr := s.do(http.MethodGet, "/participants?page=zero", "")
		s.Equal(http.StatusBadRequest, rr.Code)
	})

	s.Run("malformed section scope", func() {
		rr := s.do(http.MethodGet, "/participants?sectionId=abc", "")
		s.Equal(http.StatusBadRequest, rr.Code)
	})

	s.Run("available is not shadowed by the id route", func() {
		s.service.EXPECT().ListAvailableParticipants(gomock.Any(), id.SectionID(0), gomock.Any()).
			Return(&models.ListResponse[*models.Participant]{}, nil)
		rr := s.do(http.MethodGet, "/participants/available", "")
		s.Equal(http.StatusOK, rr.Code)
	})
}

func (s *RosterHandlerSuite) TestCreateTeam() {
	s.Run("created", func() {
		s.service.EXPECT().CreateTeam(gomock.Any(), &models.CreateTeamRequest{Name: "Axis", Colour: "Green"}).
			Return(&models.Team{ID: 101, Name: "Axis", Colour: "Green"}, nil)
		rr := s.do(http.MethodPost, "/teams", `{"name":"  Axis ","colour":"Green"}`)
		s.Equal(http.StatusCreated, rr.Code)
		s.Contains(rr.Body.String(), `"id":"101"`)
	})

	s.Run("blank name never reaches the service", func() {
		rr := s.do(http.MethodPost, "/teams", `{"name":"  "}`)
		s.Equal(http.StatusBadRequest, rr.Code)
		s.Equal("validation_error", s.decodeError(rr).Error)
	})

	s.Run("duplicate", func() {
		s.service.EXPECT().CreateTeam(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeConflict, "team name must be unique"))
		rr := s.do(http.MethodPost, "/teams", `{"name":"Axis"}`)
		s.Equal(http.StatusConflict, rr.Code)
	})
}

func (s *RosterHandlerSuite) TestDeleteTeam() {
	s.service.EXPECT().DeleteTeam(gomock.Any(), id.TeamID(101)).Return(nil)
	rr := s.do(http.MethodDelete, "/teams/101", "")
	s.Equal(http.StatusNoContent, rr.Code)
	s.Empty(rr.Body.String())

	rr = s.do(http.MethodDelete, "/teams/not-a-number", "")
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *RosterHandlerSuite) TestBulkCreate() {
	s.service.EXPECT().BulkCreateParticipants(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, req *models.BulkCreateParticipantsRequest) (*models.BulkResult, error) {
			s.Len(req.Participants, 2)
			return &models.BulkResult{
				Success: 1,
				Created: []*models.Participant{{ID: 5, Name: "Ada"}},
				Errors:  []models.BulkError{{Index: 1, Error: "name is required"}},
			}, nil
		})
	rr := s.do(http.MethodPost, "/participants/bulk", `{"participants":[{"name":"Ada"},{"name":""}]}`)
	s.Equal(http.StatusCreated, rr.Code)
	s.Contains(rr.Body.String(), `"success":1`)

	rr = s.do(http.MethodPost, "/participants/bulk", `{"participants":[]}`)
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *RosterHandlerSuite) TestAuctionTransitions() {
	s.Run("access code is normalized", func() {
		s.service.EXPECT().StartAuction(gomock.Any(), id.AuctionID(77), "K3Y9QZ2M").
			Return(&models.Auction{ID: 77, Status: models.AuctionLive}, nil)
		rr := s.do(http.MethodPost, "/auctions/77/start", `{"accessCode":" k3y9qz2m "}`)
		s.Equal(http.StatusOK, rr.Code)
		s.Contains(rr.Body.String(), `"status":"live"`)
	})

	s.Run("missing code", func() {
		rr := s.do(http.MethodPost, "/auctions/77/end", `{}`)
		s.Equal(http.StatusBadRequest, rr.Code)
	})

	s.Run("invalid transition", func() {
		s.service.EXPECT().EndAuction(gomock.Any(), id.AuctionID(77), "K3Y9QZ2M").
			Return(nil, dErrors.New(dErrors.CodeInvariantViolation, "only live auctions can be ended"))
		rr := s.do(http.MethodPost, "/auctions/77/end", `{"accessCode":"K3Y9QZ2M"}`)
		s.Equal(http.StatusConflict, rr.Code)
		s.Equal("invalid_state", s.decodeError(rr).Error)
	})

	s.Run("verify access", func() {
		s.service.EXPECT().VerifyAccessCode(gomock.Any(), id.AuctionID(77), "WRONG").
			Return(&models.AccessResult{Valid: false}, nil)
		rr := s.do(http.MethodPost, "/auctions/77/verify-access", `{"accessCode":"wrong"}`)
		s.Equal(http.StatusOK, rr.Code)
		s.JSONEq(`{"valid":false}`, rr.Body.String())
	})
}

func (s *RosterHandlerSuite) TestGroups() {
	s.Run("list scoped to a section", func() {
		s.service.EXPECT().ListGroups(gomock.Any(), id.SectionID(4), gomock.Any()).DoAndReturn(
			func(_ any, _ id.SectionID, spec listquery.Spec) (*models.ListResponse[*models.Group], error) {
				s.Equal("name", spec.SortField)
				return &models.ListResponse[*models.Group]{
					Page: listquery.Page[*models.Group]{
						Items: []*models.Group{{ID: 12, Name: "Red House", SectionID: 4, SectionName: "Junior"}},
						Total: 1,
					},
				}, nil
			})
		rr := s.do(http.MethodGet, "/groups?sectionId=4&sort=name", "")
		s.Require().Equal(http.StatusOK, rr.Code)
		s.Contains(rr.Body.String(), `"sectionId":"4"`)
		s.Contains(rr.Body.String(), `"section":"Junior"`)
	})

	s.Run("create parses the section", func() {
		s.service.EXPECT().CreateGroup(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, req *models.CreateGroupRequest) (*models.Group, error) {
				s.Equal("Red House", req.Name)
				s.Equal(id.SectionID(4), req.ParsedSectionID())
				return &models.Group{ID: 12, Name: req.Name, SectionID: 4}, nil
			})
		rr := s.do(http.MethodPost, "/groups", `{"name":" Red House ","sectionId":"4"}`)
		s.Equal(http.StatusCreated, rr.Code)
		s.Contains(rr.Body.String(), `"id":"12"`)
	})

	s.Run("create without a section never reaches the service", func() {
		rr := s.do(http.MethodPost, "/groups", `{"name":"Red House"}`)
		s.Equal(http.StatusBadRequest, rr.Code)
		s.Equal("sectionId is required", s.decodeError(rr).ErrorDescription)
	})

	s.Run("rename", func() {
		s.service.EXPECT().UpdateGroup(gomock.Any(), id.GroupID(12), &models.UpdateGroupRequest{Name: "Crimson"}).
			Return(&models.Group{ID: 12, Name: "Crimson", SectionID: 4}, nil)
		rr := s.do(http.MethodPatch, "/groups/12", `{"name":"Crimson"}`)
		s.Equal(http.StatusOK, rr.Code)
	})

	s.Run("rename conflict", func() {
		s.service.EXPECT().UpdateGroup(gomock.Any(), id.GroupID(12), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeConflict, "group name must be unique"))
		rr := s.do(http.MethodPatch, "/groups/12", `{"name":"Blue"}`)
		s.Equal(http.StatusConflict, rr.Code)
	})

	s.Run("delete", func() {
		s.service.EXPECT().DeleteGroup(gomock.Any(), id.GroupID(12)).Return(nil)
		rr := s.do(http.MethodDelete, "/groups/12", "")
		s.Equal(http.StatusNoContent, rr.Code)
	})
}

func (s *RosterHandlerSuite) TestAuctionDrafts() {
	s.Run("patch", func() {
		s.service.EXPECT().UpdateAuction(gomock.Any(), id.AuctionID(77), gomock.Any()).DoAndReturn(
			func(_ any, _ id.AuctionID, req *models.UpdateAuctionRequest) (*models.Auction, error) {
				s.Require().NotNil(req.Timer)
				s.Equal(45, *req.Timer)
				s.Nil(req.Name)
				return &models.Auction{ID: 77, TimerSeconds: 45, Status: models.AuctionDraft}, nil
			})
		rr := s.do(http.MethodPatch, "/auctions/77", `{"timer":45}`)
		s.Equal(http.StatusOK, rr.Code)
		s.Contains(rr.Body.String(), `"timer":45`)
	})

	s.Run("patch rejects a repeated team", func() {
		rr := s.do(http.MethodPatch, "/auctions/77", `{"firstTeamsOrder":["10","10"]}`)
		s.Equal(http.StatusBadRequest, rr.Code)
	})

	s.Run("live auction cannot be deleted", func() {
		s.service.EXPECT().DeleteAuction(gomock.Any(), id.AuctionID(77)).
			Return(dErrors.New(dErrors.CodeInvariantViolation, "only draft auctions can be deleted"))
		rr := s.do(http.MethodDelete, "/auctions/77", "")
		s.Equal(http.StatusConflict, rr.Code)
	})

	s.Run("delete draft", func() {
		s.service.EXPECT().DeleteAuction(gomock.Any(), id.AuctionID(78)).Return(nil)
		rr := s.do(http.MethodDelete, "/auctions/78", "")
		s.Equal(http.StatusNoContent, rr.Code)
	})
}

func (s *RosterHandlerSuite) TestInternalErrorsAreGeneric() {
	s.service.EXPECT().ListAuctions(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.Wrap(errors.New("pq: connection refused"), dErrors.CodeInternal, "failed to list auctions"))
	rr := s.do(http.MethodGet, "/auctions", "")
	s.Equal(http.StatusInternalServerError, rr.Code)
	s.NotContains(rr.Body.String(), "connection refused")
}
