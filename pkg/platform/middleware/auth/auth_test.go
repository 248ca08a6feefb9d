package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	id "festdraft/pkg/domain"
	"festdraft/pkg/requestcontext"
)

const (
	testUserID    = "550e8400-e29b-41d4-a716-446655440001"
	testSessionID = "550e8400-e29b-41d4-a716-446655440002"
)

type MockJWTValidator struct {
	mock.Mock
}

func (m *MockJWTValidator) ValidateToken(tokenString string) (*JWTClaims, error) {
	args := m.Called(tokenString)
	if claims := args.Get(0); claims != nil {
		return claims.(*JWTClaims), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockSessionChecker struct {
	mock.Mock
}

func (m *MockSessionChecker) IsSessionActive(ctx context.Context, sessionID id.SessionID) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

type recordingHandler struct {
	called bool
	ctx    context.Context
}

func (h *recordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

type AuthMiddlewareSuite struct {
	suite.Suite
	validator *MockJWTValidator
	sessions  *MockSessionChecker
	logger    *slog.Logger
	next      *recordingHandler
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

func (s *AuthMiddlewareSuite) SetupTest() {
	s.validator = new(MockJWTValidator)
	s.sessions = new(MockSessionChecker)
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.next = &recordingHandler{}
}

func (s *AuthMiddlewareSuite) serve(mw func(http.Handler) http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	mw(s.next).ServeHTTP(rec, req)
	return rec
}

func validClaims() *JWTClaims {
	return &JWTClaims{UserID: testUserID, SessionID: testSessionID, Role: "team-manager", TeamName: "Axis"}
}

func (s *AuthMiddlewareSuite) TestRequireAuth() {
	s.Run("valid token for live session populates context", func() {
		s.SetupTest()
		s.validator.On("ValidateToken", "good").Return(validClaims(), nil)
		s.sessions.On("IsSessionActive", mock.Anything, mock.Anything).Return(true, nil)

		rec := s.serve(RequireAuth(s.validator, s.sessions, s.logger), "Bearer good")

		s.Equal(http.StatusOK, rec.Code)
		s.Require().True(s.next.called)
		s.Equal(testUserID, requestcontext.UserID(s.next.ctx).String())
		s.Equal(testSessionID, requestcontext.SessionID(s.next.ctx).String())
		s.Equal(id.RoleTeamManager, requestcontext.Role(s.next.ctx))
		s.Equal("Axis", requestcontext.TeamName(s.next.ctx))
	})

	s.Run("missing header is 401", func() {
		s.SetupTest()
		rec := s.serve(RequireAuth(s.validator, s.sessions, s.logger), "")
		s.Equal(http.StatusUnauthorized, rec.Code)
		s.False(s.next.called)
		s.validator.AssertNotCalled(s.T(), "ValidateToken", mock.Anything)
	})

	s.Run("invalid token is 401", func() {
		s.SetupTest()
		s.validator.On("ValidateToken", "bad").Return(nil, errors.New("expired"))
		rec := s.serve(RequireAuth(s.validator, s.sessions, s.logger), "Bearer bad")
		s.Equal(http.StatusUnauthorized, rec.Code)
		s.Contains(rec.Body.String(), "Invalid or expired token")
	})

	s.Run("unknown role in claims is 401", func() {
		s.SetupTest()
		claims := validClaims()
		claims.Role = "root"
		s.validator.On("ValidateToken", "odd").Return(claims, nil)
		rec := s.serve(RequireAuth(s.validator, s.sessions, s.logger), "Bearer odd")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("revoked session is 401", func() {
		s.SetupTest()
		s.validator.On("ValidateToken", "good").Return(validClaims(), nil)
		s.sessions.On("IsSessionActive", mock.Anything, mock.Anything).Return(false, nil)
		rec := s.serve(RequireAuth(s.validator, s.sessions, s.logger), "Bearer good")
		s.Equal(http.StatusUnauthorized, rec.Code)
		s.Contains(rec.Body.String(), "Session has ended")
	})

	s.Run("session lookup failure is 500", func() {
		s.SetupTest()
		s.validator.On("ValidateToken", "good").Return(validClaims(), nil)
		s.sessions.On("IsSessionActive", mock.Anything, mock.Anything).Return(false, errors.New("redis down"))
		rec := s.serve(RequireAuth(s.validator, s.sessions, s.logger), "Bearer good")
		s.Equal(http.StatusInternalServerError, rec.Code)
	})

	s.Run("nil session checker skips the session lookup", func() {
		s.SetupTest()
		s.validator.On("ValidateToken", "good").Return(validClaims(), nil)
		rec := s.serve(RequireAuth(s.validator, nil, s.logger), "Bearer good")
		s.Equal(http.StatusOK, rec.Code)
	})
}

func (s *AuthMiddlewareSuite) TestAuthenticate() {
	s.Run("anonymous requests pass through without identity", func() {
		s.SetupTest()
		rec := s.serve(Authenticate(s.validator, s.sessions, s.logger), "")
		s.Equal(http.StatusOK, rec.Code)
		s.Require().True(s.next.called)
		s.Equal(id.Role(""), requestcontext.Role(s.next.ctx))
	})

	s.Run("invalid tokens are treated as anonymous", func() {
		s.SetupTest()
		s.validator.On("ValidateToken", "bad").Return(nil, errors.New("bad signature"))
		rec := s.serve(Authenticate(s.validator, s.sessions, s.logger), "Bearer bad")
		s.Equal(http.StatusOK, rec.Code)
		s.True(requestcontext.UserID(s.next.ctx).IsNil())
	})

	s.Run("valid tokens populate identity", func() {
		s.SetupTest()
		claims := validClaims()
		claims.Role = "admin"
		s.validator.On("ValidateToken", "good").Return(claims, nil)
		s.sessions.On("IsSessionActive", mock.Anything, mock.Anything).Return(true, nil)
		s.serve(Authenticate(s.validator, s.sessions, s.logger), "Bearer good")
		s.Equal(id.RoleAdmin, requestcontext.Role(s.next.ctx))
	})
}
