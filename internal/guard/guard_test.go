package guard

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "festdraft/pkg/domain"
	"festdraft/pkg/requestcontext"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name  string
		state GateState
		req   Requirement
		want  Outcome
	}{
		{
			name:  "loading renders a placeholder even when anonymous",
			state: GateState{Loading: true},
			req:   RequireAdmin,
			want:  Outcome{Kind: Placeholder},
		},
		{
			name:  "loading with a cached admin still waits",
			state: GateState{Loading: true, Authenticated: true, Role: id.RoleAdmin},
			req:   RequireSession,
			want:  Outcome{Kind: Placeholder},
		},
		{
			name:  "anonymous is redirected to login replacing history",
			state: GateState{},
			req:   RequireSession,
			want:  Outcome{Kind: Redirect, Location: PathLogin, Replace: true},
		},
		{
			name:  "team manager on an admin route is denied",
			state: GateState{Authenticated: true, Role: id.RoleTeamManager},
			req:   RequireAdmin,
			want:  Outcome{Kind: Denied, Location: PathTeam},
		},
		{
			name:  "unknown role is never admin",
			state: GateState{Authenticated: true, Role: "superuser"},
			req:   RequireAdmin,
			want:  Outcome{Kind: Denied, Location: PathTeam},
		},
		{
			name:  "admin on an admin route renders",
			state: GateState{Authenticated: true, Role: id.RoleAdmin},
			req:   RequireAdmin,
			want:  Outcome{Kind: Render},
		},
		{
			name:  "team manager on a session route renders",
			state: GateState{Authenticated: true, Role: id.RoleTeamManager},
			req:   RequireSession,
			want:  Outcome{Kind: Render},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.state, tt.req))
		})
	}
}

func TestLanding(t *testing.T) {
	assert.Equal(t, PathAdmin, Landing(id.RoleAdmin))
	assert.Equal(t, PathTeam, Landing(id.RoleTeamManager))
	assert.Equal(t, PathTeam, Landing(""))
}

func withCaller(r *http.Request, role id.Role) *http.Request {
	ctx := requestcontext.WithUserID(r.Context(), id.UserID(uuid.New()))
	ctx = requestcontext.WithRole(ctx, role)
	return r.WithContext(ctx)
}

func TestMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	admin := Middleware(RequireAdmin, logger)(ok)

	t.Run("anonymous is sent to login", func(t *testing.T) {
		rr := httptest.NewRecorder()
		admin.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, PathLogin, rr.Header().Get("Location"))
	})

	t.Run("team manager is denied with a landing hint", func(t *testing.T) {
		rr := httptest.NewRecorder()
		admin.ServeHTTP(rr, withCaller(httptest.NewRequest(http.MethodGet, "/admin", nil), id.RoleTeamManager))
		require.Equal(t, http.StatusForbidden, rr.Code)
		var body DeniedResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, PathTeam, body.Redirect)
	})

	t.Run("admin passes", func(t *testing.T) {
		rr := httptest.NewRecorder()
		admin.ServeHTTP(rr, withCaller(httptest.NewRequest(http.MethodGet, "/admin", nil), id.RoleAdmin))
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestRootRedirect(t *testing.T) {
	cases := map[string]struct {
		role     id.Role
		signedIn bool
		want     string
	}{
		"anonymous":    {want: PathLogin},
		"admin":        {role: id.RoleAdmin, signedIn: true, want: PathAdmin},
		"team manager": {role: id.RoleTeamManager, signedIn: true, want: PathTeam},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.signedIn {
				req = withCaller(req, tc.role)
			}
			rr := httptest.NewRecorder()
			RootRedirect(rr, req)
			assert.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, tc.want, rr.Header().Get("Location"))
		})
	}
}

func TestLoginPageAndNotFound(t *testing.T) {
	rr := httptest.NewRecorder()
	LoginPage("/api/auth/login")(rr, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"login":"/api/auth/login"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	LoginPage("/api/auth/login")(rr, withCaller(httptest.NewRequest(http.MethodGet, "/login", nil), id.RoleAdmin))
	assert.Equal(t, PathAdmin, rr.Header().Get("Location"))

	rr = httptest.NewRecorder()
	NotFound(rr, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
