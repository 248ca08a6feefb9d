package admin

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmodels "festdraft/internal/auth/models"
	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
	dErrors "festdraft/pkg/domain-errors"
	"festdraft/pkg/listquery"
	"festdraft/pkg/requestcontext"
)

type fakeRoster struct {
	teams map[id.TeamID]*models.Team
}

func (f *fakeRoster) Overview(context.Context) (*models.Overview, error) {
	return &models.Overview{Teams: len(f.teams), Participants: 3, AvailableParticipants: 2}, nil
}

func (f *fakeRoster) GetTeam(_ context.Context, teamID id.TeamID) (*models.Team, error) {
	if t, ok := f.teams[teamID]; ok {
		return t, nil
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "team not found")
}

func (f *fakeRoster) ListAvailableParticipants(context.Context, id.SectionID, listquery.Spec) (*models.ListResponse[*models.Participant], error) {
	return &models.ListResponse[*models.Participant]{Page: listquery.Page[*models.Participant]{Total: 2, Of: 3}}, nil
}

type fakeProfiles map[id.UserID]*authmodels.UserProfile

func (f fakeProfiles) Profile(_ context.Context, userID id.UserID) (*authmodels.UserProfile, error) {
	if p, ok := f[userID]; ok {
		return p, nil
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
}

func newRouter(t *testing.T) (http.Handler, id.UserID, id.UserID) {
	t.Helper()
	adminID := id.UserID(uuid.New())
	managerID := id.UserID(uuid.New())
	roster := &fakeRoster{teams: map[id.TeamID]*models.Team{11: {ID: 11, Name: "Axis"}}}
	profiles := fakeProfiles{
		adminID:   {ID: adminID.String(), DisplayName: "Admin User", Role: "admin"},
		managerID: {ID: managerID.String(), DisplayName: "Team One", Role: "team-manager", TeamID: "11", Team: "Axis"},
	}
	r := chi.NewRouter()
	NewHandler(NewService(roster, profiles), slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r, adminID, managerID
}

func get(h http.Handler, path string, userID id.UserID, role id.Role) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	ctx := requestcontext.WithUserID(req.Context(), userID)
	ctx = requestcontext.WithRole(ctx, role)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req.WithContext(ctx))
	return rr
}

func TestDashboard(t *testing.T) {
	h, adminID, managerID := newRouter(t)

	rr := get(h, "/admin", adminID, id.RoleAdmin)
	require.Equal(t, http.StatusOK, rr.Code)
	var body Dashboard
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "Admin User", body.Welcome)
	assert.Equal(t, 1, body.Overview.Teams)

	rr = get(h, "/admin", managerID, id.RoleTeamManager)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestTeamHome(t *testing.T) {
	h, adminID, managerID := newRouter(t)

	rr := get(h, "/team", managerID, id.RoleTeamManager)
	require.Equal(t, http.StatusOK, rr.Code)
	var body TeamHome
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.NotNil(t, body.Team)
	assert.Equal(t, "Axis", body.Team.Name)
	assert.Equal(t, 2, body.Candidates)
	assert.Equal(t, 3, body.Pool)

	rr = get(h, "/team", adminID, id.RoleAdmin)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), `"team":{`)
}
