package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "festdraft/pkg/domain"
	dErrors "festdraft/pkg/domain-errors"
)

func TestSessionLifecycle(t *testing.T) {
	now := time.Now()
	s := &Session{ID: id.SessionID(uuid.New()), CreatedAt: now, ExpiresAt: now.Add(time.Hour)}

	assert.True(t, s.IsActive(now))
	assert.False(t, s.IsActive(now.Add(2*time.Hour)), "expired")

	assert.True(t, s.Revoke(now))
	assert.False(t, s.Revoke(now.Add(time.Minute)), "second revoke is a no-op")
	assert.Equal(t, now, *s.RevokedAt)
	assert.False(t, s.IsActive(now))
}

func TestPermissionsFor(t *testing.T) {
	admin := PermissionsFor(id.RoleAdmin)
	assert.True(t, admin.CanCreateAuction && admin.CanStartAuction && admin.CanEndAuction)
	assert.True(t, admin.CanManageUsers && admin.CanAssignRoles)

	assert.Equal(t, Permissions{}, PermissionsFor(id.RoleTeamManager))
	assert.Equal(t, Permissions{}, PermissionsFor(id.Role("guest")))
}

func TestLoginRequest(t *testing.T) {
	req := &LoginRequest{Email: "  Admin@Example.com ", Password: "admin123"}
	req.Normalize()
	assert.Equal(t, "admin@example.com", req.Email)
	assert.NoError(t, req.Validate())

	assert.True(t, dErrors.HasCode((&LoginRequest{Email: "a@b.c"}).Validate(), dErrors.CodeValidation))
}

func TestCreateUserRequest(t *testing.T) {
	valid := func() *CreateUserRequest {
		return &CreateUserRequest{
			Email:       "team5@example.com",
			DisplayName: "Team Five",
			Password:    "user123",
			Role:        "team-manager",
			TeamID:      "42",
		}
	}

	t.Run("valid team manager", func(t *testing.T) {
		req := valid()
		require.NoError(t, req.Validate())
		assert.Equal(t, id.RoleTeamManager, req.ParsedRole())
		assert.Equal(t, id.TeamID(42), req.ParsedTeamID())
	})

	t.Run("legacy access level accepted", func(t *testing.T) {
		req := valid()
		req.Role = "Full"
		req.TeamID = ""
		require.NoError(t, req.Validate())
		assert.Equal(t, id.RoleAdmin, req.ParsedRole())
	})

	cases := map[string]func(*CreateUserRequest){
		"bad email":            func(r *CreateUserRequest) { r.Email = "nope" },
		"missing name":         func(r *CreateUserRequest) { r.DisplayName = "" },
		"short password":       func(r *CreateUserRequest) { r.Password = "abc" },
		"unknown role":         func(r *CreateUserRequest) { r.Role = "owner" },
		"manager without team": func(r *CreateUserRequest) { r.TeamID = "" },
		"bad team id":          func(r *CreateUserRequest) { r.TeamID = "x1" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := valid()
			mutate(req)
			assert.True(t, dErrors.HasCode(req.Validate(), dErrors.CodeValidation))
		})
	}
}

func TestRequestMessagesUseJSONNames(t *testing.T) {
	cases := []struct {
		name string
		req  interface{ Validate() error }
		want string
	}{
		{"login without password", &LoginRequest{Email: "a@b.c"}, "password is required"},
		{"bad email", &CreateUserRequest{Email: "nope", DisplayName: "X", Password: "secret1", Role: "admin"}, "email must be a valid email"},
		{"blank display name", &CreateUserRequest{Email: "a@b.c", DisplayName: "   ", Password: "secret1", Role: "admin"}, "displayName must not be blank"},
		{"short password", &CreateUserRequest{Email: "a@b.c", DisplayName: "X", Password: "abc", Role: "admin"}, "password must be at least 6 characters"},
		{"blank role", &UpdateRoleRequest{Role: " "}, "role must not be blank"},
		{"unknown role", &UpdateRoleRequest{Role: "owner"}, "role must be admin or team-manager"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestProfileOf(t *testing.T) {
	u := &User{
		ID:          id.UserID(uuid.New()),
		Email:       "team1@example.com",
		DisplayName: "Team Axis Manager",
		Role:        id.RoleTeamManager,
		TeamID:      7,
		TeamName:    "Axis",
	}
	p := ProfileOf(u)
	assert.Equal(t, "team-manager", p.Role)
	assert.Equal(t, "7", p.TeamID)
	assert.Equal(t, "Axis", p.Team)

	u.TeamID = 0
	assert.Empty(t, ProfileOf(u).TeamID)
}
