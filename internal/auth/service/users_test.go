package service

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"festdraft/internal/auth/models"
	id "festdraft/pkg/domain"
	dErrors "festdraft/pkg/domain-errors"
	"festdraft/pkg/platform/sentinel"
	"festdraft/pkg/requestcontext"
)

func (s *ServiceSuite) validCreate(role, teamID string) *models.CreateUserRequest {
	req := &models.CreateUserRequest{
		Email:       "team3@example.com",
		DisplayName: "Team Three",
		Password:    "user123",
		Role:        role,
		TeamID:      teamID,
	}
	s.Require().NoError(req.Validate())
	return req
}

func (s *ServiceSuite) TestCreateUser() {
	s.Run("team manager gets the team name and a bcrypt hash", func() {
		req := s.validCreate("team-manager", "3")
		s.mockTeams.EXPECT().TeamName(gomock.Any(), id.TeamID(3)).Return("Nexus", nil)
		s.mockUserStore.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, u *models.User) error {
				s.Equal("Nexus", u.TeamName)
				s.Equal(s.now, u.CreatedAt)
				s.NoError(bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("user123")))
				return nil
			})

		p, err := s.service.CreateUser(s.ctx(), req)
		s.Require().NoError(err)
		s.Equal("team-manager", p.Role)
		s.Equal("Nexus", p.Team)
		s.Equal("3", p.TeamID)
	})

	s.Run("legacy Full role creates an admin", func() {
		req := s.validCreate("Full", "")
		s.mockUserStore.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		p, err := s.service.CreateUser(s.ctx(), req)
		s.Require().NoError(err)
		s.Equal("admin", p.Role)
		s.Empty(p.TeamID)
	})

	s.Run("unknown team is a validation error", func() {
		req := s.validCreate("team-manager", "99")
		s.mockTeams.EXPECT().TeamName(gomock.Any(), id.TeamID(99)).Return("", sentinel.ErrNotFound)

		_, err := s.service.CreateUser(s.ctx(), req)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("duplicate email conflicts", func() {
		req := s.validCreate("admin", "")
		s.mockUserStore.EXPECT().Save(gomock.Any(), gomock.Any()).Return(sentinel.ErrAlreadyUsed)

		_, err := s.service.CreateUser(s.ctx(), req)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *ServiceSuite) TestListUsers() {
	a := s.newUser("admin@example.com", "admin123", id.RoleAdmin)
	b := s.newUser("team1@example.com", "user123", id.RoleTeamManager)

	s.Run("projects profiles", func() {
		s.mockUserStore.EXPECT().List(gomock.Any()).Return([]*models.User{a, b}, nil)
		res, err := s.service.ListUsers(s.ctx())
		s.Require().NoError(err)
		s.Require().Len(res.Users, 2)
		s.Equal("admin@example.com", res.Users[0].Email)
		s.Equal("Axis", res.Users[1].Team)
	})

	s.Run("store error is internal", func() {
		s.mockUserStore.EXPECT().List(gomock.Any()).Return(nil, errors.New("boom"))
		_, err := s.service.ListUsers(s.ctx())
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestUpdateRole() {
	adminID := id.UserID(uuid.New())

	s.Run("promotion clears the team and revokes sessions", func() {
		target := s.newUser("team1@example.com", "user123", id.RoleTeamManager)
		req := &models.UpdateRoleRequest{Role: "admin", TeamID: "1"}
		s.Require().NoError(req.Validate())

		s.mockUserStore.EXPECT().UpdateRole(gomock.Any(), target.ID, id.RoleAdmin, id.TeamID(0), "").
			DoAndReturn(func(_ any, _ id.UserID, role id.Role, teamID id.TeamID, teamName string) (*models.User, error) {
				target.Role, target.TeamID, target.TeamName = role, teamID, teamName
				return target, nil
			})
		s.mockSessionStore.EXPECT().RevokeAllForUser(gomock.Any(), target.ID, s.now).Return(2, nil)

		ctx := requestcontext.WithUserID(s.ctx(), adminID)
		p, err := s.service.UpdateRole(ctx, target.ID, req)
		s.Require().NoError(err)
		s.Equal("admin", p.Role)
		s.Empty(p.TeamID)
	})

	s.Run("administrators cannot demote themselves", func() {
		req := &models.UpdateRoleRequest{Role: "team-manager", TeamID: "2"}
		s.Require().NoError(req.Validate())

		ctx := requestcontext.WithUserID(s.ctx(), adminID)
		_, err := s.service.UpdateRole(ctx, adminID, req)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("demotion without a team is rejected", func() {
		target := id.UserID(uuid.New())
		req := &models.UpdateRoleRequest{Role: "Limited"}
		s.Require().NoError(req.Validate())

		ctx := requestcontext.WithUserID(s.ctx(), adminID)
		_, err := s.service.UpdateRole(ctx, target, req)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown user is not found", func() {
		target := id.UserID(uuid.New())
		req := &models.UpdateRoleRequest{Role: "team-manager", TeamID: "4"}
		s.Require().NoError(req.Validate())

		s.mockTeams.EXPECT().TeamName(gomock.Any(), id.TeamID(4)).Return("Vertex", nil)
		s.mockUserStore.EXPECT().UpdateRole(gomock.Any(), target, id.RoleTeamManager, id.TeamID(4), "Vertex").
			Return(nil, sentinel.ErrNotFound)

		ctx := requestcontext.WithUserID(s.ctx(), adminID)
		_, err := s.service.UpdateRole(ctx, target, req)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestDeleteExpiredSessions() {
	s.mockSessionStore.EXPECT().DeleteExpiredSessions(gomock.Any(), s.now).Return(3, nil)
	n, err := s.service.DeleteExpiredSessions(s.ctx(), s.now)
	s.Require().NoError(err)
	s.Equal(3, n)
}
