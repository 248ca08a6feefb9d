package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	auth "festdraft/internal/auth/handler"
	"festdraft/internal/auth/models"
	"festdraft/internal/auth/service"
	sessionStore "festdraft/internal/auth/store/session"
	userStore "festdraft/internal/auth/store/user"
	jwttoken "festdraft/internal/jwt_token"
	id "festdraft/pkg/domain"
	adminmw "festdraft/pkg/platform/middleware/admin"
	authmw "festdraft/pkg/platform/middleware/auth"
	request "festdraft/pkg/platform/middleware/request"
	"festdraft/pkg/platform/sentinel"
)

type fixedTeams map[int64]string

func (t fixedTeams) TeamName(_ context.Context, teamID id.TeamID) (string, error) {
	if name, ok := t[int64(teamID)]; ok {
		return name, nil
	}
	return "", sentinel.ErrNotFound
}

func SetupSuite(t *testing.T) (*chi.Mux, *service.Service, *sessionStore.InMemorySessionStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := userStore.New()
	sessions := sessionStore.New()
	jwtService := jwttoken.NewJWTService("test-secret-key", "festdraft", "festdraft-clients", 15*time.Minute)
	authService, err := service.New(users, sessions, jwtService,
		service.WithLogger(logger),
		service.WithBcryptCost(bcrypt.MinCost),
		service.WithTeamDirectory(fixedTeams{1: "Axis", 2: "Equinox"}),
	)
	require.NoError(t, err)

	seed := func(email, password, role, teamID string) {
		req := &models.CreateUserRequest{Email: email, DisplayName: email, Password: password, Role: role, TeamID: teamID}
		require.NoError(t, req.Validate())
		_, err := authService.CreateUser(context.Background(), req)
		require.NoError(t, err)
	}
	seed("admin@example.com", "admin123", "admin", "")
	seed("team1@example.com", "user123", "team-manager", "1")

	router := chi.NewRouter()
	router.Use(request.ClientMetadata)
	h := auth.New(authService, logger)
	h.Register(router)
	router.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(jwttoken.NewJWTServiceAdapter(jwtService), authService, logger))
		h.RegisterAuthenticated(r)
		r.Group(func(r chi.Router) {
			r.Use(adminmw.RequireAdmin(logger))
			h.RegisterAdmin(r)
		})
	})
	return router, authService, sessions
}

func call(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, r http.Handler, email, password string) models.LoginResult {
	t.Helper()
	rec := call(t, r, http.MethodPost, "/auth/login", "", models.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res models.LoginResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	return res
}

func TestLoginProfileLogoutFlow(t *testing.T) {
	r, _, _ := SetupSuite(t)

	res := login(t, r, "Team1@Example.com", "user123")
	assert.Equal(t, "team-manager", res.User.Role)
	assert.Equal(t, "Axis", res.User.Team)

	rec := call(t, r, http.MethodGet, "/auth/profile", res.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, r, http.MethodGet, "/auth/users", res.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "team managers cannot list users")

	rec = call(t, r, http.MethodPost, "/auth/logout", res.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"revoked":true}`, rec.Body.String())

	rec = call(t, r, http.MethodGet, "/auth/profile", res.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "token for an ended session is rejected")
}

// TestConcurrentLogout checks that exactly one of many racing logouts for
// the same session reports the revocation.
func TestConcurrentLogout(t *testing.T) {
	r, authService, _ := SetupSuite(t)
	res := login(t, r, "admin@example.com", "admin123")

	claims, err := jwttoken.NewJWTService("test-secret-key", "festdraft", "festdraft-clients", time.Minute).ValidateToken(res.Token)
	require.NoError(t, err)
	sessionID, err := id.ParseSessionID(claims.SessionID)
	require.NoError(t, err)

	const n = 10
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		revoked int
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := authService.Logout(context.Background(), sessionID)
			if err != nil {
				t.Errorf("logout: %v", err)
				return
			}
			if out.Revoked {
				mu.Lock()
				revoked++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, revoked)
}

// TestRoleChangeEndsExistingSessions verifies a demoted user's old token
// stops working immediately.
func TestRoleChangeEndsExistingSessions(t *testing.T) {
	r, _, sessions := SetupSuite(t)
	admin := login(t, r, "admin@example.com", "admin123")

	rec := call(t, r, http.MethodPost, "/auth/users", admin.Token, models.CreateUserRequest{
		Email: "ops@example.com", DisplayName: "Ops", Password: "ops12345", Role: "admin",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created models.UserProfile
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	ops := login(t, r, "ops@example.com", "ops12345")
	require.Equal(t, http.StatusOK, call(t, r, http.MethodGet, "/auth/users", ops.Token, nil).Code)

	rec = call(t, r, http.MethodPatch, fmt.Sprintf("/auth/users/%s/role", created.ID), admin.Token,
		models.UpdateRoleRequest{Role: "team-manager", TeamID: "2"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, call(t, r, http.MethodGet, "/auth/profile", ops.Token, nil).Code)

	uid, err := id.ParseUserID(created.ID)
	require.NoError(t, err)
	list, err := sessions.ListByUser(context.Background(), uid)
	require.NoError(t, err)
	for _, s := range list {
		assert.True(t, s.IsRevoked())
	}

	again := login(t, r, "ops@example.com", "ops12345")
	assert.Equal(t, "team-manager", again.User.Role)
	assert.Equal(t, "Equinox", again.User.Team)
}
