package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"festdraft/internal/auth/models"
	jwttoken "festdraft/internal/jwt_token"
	id "festdraft/pkg/domain"
	dErrors "festdraft/pkg/domain-errors"
	"festdraft/pkg/platform/sentinel"
)

func (s *ServiceSuite) TestLogin() {
	s.Run("issues a token bound to a new session", func() {
		user := s.newUser("team1@example.com", "user123", id.RoleTeamManager)
		var created *models.Session

		s.mockUserStore.EXPECT().FindByEmail(gomock.Any(), "team1@example.com").Return(user, nil)
		s.mockSessionStore.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, sess *models.Session) error {
				created = sess
				return nil
			})
		s.mockTokens.EXPECT().GenerateAccessToken(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, sub jwttoken.Subject) (string, error) {
				s.Equal(user.ID, sub.UserID)
				s.Equal(created.ID, sub.SessionID)
				s.Equal(id.RoleTeamManager, sub.Role)
				s.Equal("Axis", sub.TeamName)
				return "signed-token", nil
			})
		s.mockTokens.EXPECT().TokenTTL().Return(15 * time.Minute)

		res, err := s.service.Login(s.ctx(), &models.LoginRequest{Email: "team1@example.com", Password: "user123"})
		s.Require().NoError(err)
		s.Equal("signed-token", res.Token)
		s.Equal(s.now.Add(15*time.Minute), res.ExpiresAt)
		s.Equal("team-manager", res.User.Role)
		s.Equal("Axis", res.User.Team)
		s.Equal("1", res.User.TeamID)
		s.Require().NotNil(created)
		s.Equal(s.now.Add(2*time.Hour), created.ExpiresAt)
		s.Equal("draftctl on linux", created.DeviceDisplayName)
	})

	s.Run("expiry is capped by the session lifetime", func() {
		user := s.newUser("admin@example.com", "admin123", id.RoleAdmin)
		s.mockUserStore.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(user, nil)
		s.mockSessionStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.mockTokens.EXPECT().GenerateAccessToken(gomock.Any(), gomock.Any()).Return("t", nil)
		s.mockTokens.EXPECT().TokenTTL().Return(24 * time.Hour)

		res, err := s.service.Login(s.ctx(), &models.LoginRequest{Email: "admin@example.com", Password: "admin123"})
		s.Require().NoError(err)
		s.Equal(s.now.Add(2*time.Hour), res.ExpiresAt)
	})

	s.Run("unknown email is unauthorized", func() {
		s.mockUserStore.EXPECT().FindByEmail(gomock.Any(), "ghost@example.com").
			Return(nil, fmt.Errorf("user: %w", sentinel.ErrNotFound))

		_, err := s.service.Login(s.ctx(), &models.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.Equal(msgInvalidCredentials, err.Error())
	})

	s.Run("wrong password is indistinguishable from unknown email", func() {
		user := s.newUser("admin@example.com", "admin123", id.RoleAdmin)
		s.mockUserStore.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(user, nil)

		_, err := s.service.Login(s.ctx(), &models.LoginRequest{Email: "admin@example.com", Password: "nope"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.Equal(msgInvalidCredentials, err.Error())
	})

	s.Run("store failure is internal", func() {
		s.mockUserStore.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

		_, err := s.service.Login(s.ctx(), &models.LoginRequest{Email: "admin@example.com", Password: "admin123"})
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("session create failure is internal", func() {
		user := s.newUser("admin@example.com", "admin123", id.RoleAdmin)
		s.mockUserStore.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(user, nil)
		s.mockSessionStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		_, err := s.service.Login(s.ctx(), &models.LoginRequest{Email: "admin@example.com", Password: "admin123"})
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestProfile() {
	s.Run("returns the stored profile", func() {
		user := s.newUser("team2@example.com", "user123", id.RoleTeamManager)
		s.mockUserStore.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)

		p, err := s.service.Profile(s.ctx(), user.ID)
		s.Require().NoError(err)
		s.Equal(user.ID.String(), p.ID)
		s.Equal("team2@example.com", p.Email)
	})

	s.Run("deleted user is unauthorized", func() {
		uid := id.UserID(uuid.New())
		s.mockUserStore.EXPECT().FindByID(gomock.Any(), uid).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.Profile(s.ctx(), uid)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func (s *ServiceSuite) TestLogout() {
	sid := id.SessionID(uuid.New())

	s.Run("revokes an active session", func() {
		s.mockSessionStore.EXPECT().RevokeSessionIfActive(gomock.Any(), sid, s.now).Return(nil)

		res, err := s.service.Logout(s.ctx(), sid)
		s.Require().NoError(err)
		s.True(res.Revoked)
	})

	s.Run("second logout succeeds without revoking", func() {
		s.mockSessionStore.EXPECT().RevokeSessionIfActive(gomock.Any(), sid, s.now).
			Return(fmt.Errorf("revoke: %w", sentinel.ErrInvalidState))

		res, err := s.service.Logout(s.ctx(), sid)
		s.Require().NoError(err)
		s.False(res.Revoked)
	})

	s.Run("unknown session succeeds without revoking", func() {
		s.mockSessionStore.EXPECT().RevokeSessionIfActive(gomock.Any(), sid, s.now).Return(sentinel.ErrNotFound)

		res, err := s.service.Logout(s.ctx(), sid)
		s.Require().NoError(err)
		s.False(res.Revoked)
	})

	s.Run("store failure is internal", func() {
		s.mockSessionStore.EXPECT().RevokeSessionIfActive(gomock.Any(), sid, s.now).Return(errors.New("timeout"))

		_, err := s.service.Logout(s.ctx(), sid)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestIsSessionActive() {
	sid := id.SessionID(uuid.New())

	s.Run("active session", func() {
		s.mockSessionStore.EXPECT().FindByID(gomock.Any(), sid).Return(&models.Session{
			ID: sid, ExpiresAt: s.now.Add(time.Hour),
		}, nil)
		active, err := s.service.IsSessionActive(s.ctx(), sid)
		s.Require().NoError(err)
		s.True(active)
	})

	s.Run("revoked session", func() {
		revokedAt := s.now.Add(-time.Minute)
		s.mockSessionStore.EXPECT().FindByID(gomock.Any(), sid).Return(&models.Session{
			ID: sid, ExpiresAt: s.now.Add(time.Hour), RevokedAt: &revokedAt,
		}, nil)
		active, err := s.service.IsSessionActive(s.ctx(), sid)
		s.Require().NoError(err)
		s.False(active)
	})

	s.Run("expired session", func() {
		s.mockSessionStore.EXPECT().FindByID(gomock.Any(), sid).Return(&models.Session{
			ID: sid, ExpiresAt: s.now.Add(-time.Second),
		}, nil)
		active, err := s.service.IsSessionActive(s.ctx(), sid)
		s.Require().NoError(err)
		s.False(active)
	})

	s.Run("missing session", func() {
		s.mockSessionStore.EXPECT().FindByID(gomock.Any(), sid).Return(nil, sentinel.ErrNotFound)
		active, err := s.service.IsSessionActive(s.ctx(), sid)
		s.Require().NoError(err)
		s.False(active)
	})

	s.Run("store error surfaces", func() {
		s.mockSessionStore.EXPECT().FindByID(gomock.Any(), sid).Return(nil, errors.New("redis down"))
		_, err := s.service.IsSessionActive(s.ctx(), sid)
		s.Error(err)
	})
}

func (s *ServiceSuite) TestPermissions() {
	s.True(s.service.Permissions(id.RoleAdmin).CanCreateAuction)
	s.Equal(models.Permissions{}, s.service.Permissions(id.RoleTeamManager))
}
