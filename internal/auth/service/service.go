package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"festdraft/internal/auth/device"
	"festdraft/internal/auth/metrics"
	"festdraft/internal/auth/models"
	jwttoken "festdraft/internal/jwt_token"
	id "festdraft/pkg/domain"
	dErrors "festdraft/pkg/domain-errors"
	"festdraft/pkg/platform/privacy"
	"festdraft/pkg/platform/sentinel"
	"festdraft/pkg/requestcontext"
)

const defaultSessionTTL = 7 * 24 * time.Hour

// msgInvalidCredentials is shared by every credential failure so callers
// cannot tell unknown emails from wrong passwords.
const msgInvalidCredentials = "invalid email or password"

// dummyHash is compared against when the email is unknown, keeping the
// response time close to a real bcrypt check.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("festdraft-timing-equaliser"), bcrypt.DefaultCost) //nolint:errcheck // constant input

type Service struct {
	users      UserStore
	sessions   SessionStore
	tokens     TokenGenerator
	teams      TeamDirectory
	sessionTTL time.Duration
	bcryptCost int
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithSessionTTL overrides the session lifetime when greater than zero.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

func WithTeamDirectory(teams TeamDirectory) Option {
	return func(s *Service) {
		s.teams = teams
	}
}

// WithBcryptCost lowers hashing cost in tests.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

func New(users UserStore, sessions SessionStore, tokens TokenGenerator, opts ...Option) (*Service, error) {
	if users == nil || sessions == nil || tokens == nil {
		return nil, fmt.Errorf("users, sessions and tokens are required")
	}
	svc := &Service{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: defaultSessionTTL,
		bcryptCost: bcrypt.DefaultCost,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Login verifies credentials, opens a session and issues a token for it.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveLoginDuration(float64(time.Since(start).Milliseconds()))
	}()

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password)) //nolint:errcheck // timing only
			s.loginFailed(ctx, req.Email, "unknown email")
			return nil, dErrors.New(dErrors.CodeUnauthorized, msgInvalidCredentials)
		}
		s.metrics.IncrementLogin("error")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.loginFailed(ctx, req.Email, "password mismatch")
		return nil, dErrors.New(dErrors.CodeUnauthorized, msgInvalidCredentials)
	}

	now := requestcontext.Now(ctx)
	session := &models.Session{
		ID:                id.SessionID(uuid.New()),
		UserID:            user.ID,
		Role:              user.Role,
		DeviceDisplayName: device.ParseUserAgent(requestcontext.UserAgent(ctx)),
		CreatedAt:         now,
		ExpiresAt:         now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		s.metrics.IncrementLogin("error")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}

	token, err := s.tokens.GenerateAccessToken(ctx, jwttoken.Subject{
		UserID:    user.ID,
		SessionID: session.ID,
		Role:      user.Role,
		TeamName:  user.TeamName,
	})
	if err != nil {
		s.metrics.IncrementLogin("error")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	expiresAt := now.Add(s.tokens.TokenTTL())
	if session.ExpiresAt.Before(expiresAt) {
		expiresAt = session.ExpiresAt
	}

	s.metrics.IncrementLogin("success")
	s.logger.InfoContext(ctx, "user logged in",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", user.ID.String(),
		"session_id", session.ID.String(),
		"role", user.Role.String(),
		"device", session.DeviceDisplayName,
	)

	return &models.LoginResult{
		User:      models.ProfileOf(user),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *Service) loginFailed(ctx context.Context, email, reason string) {
	s.metrics.IncrementLogin("invalid_credentials")
	s.logger.WarnContext(ctx, "login rejected",
		"request_id", requestcontext.RequestID(ctx),
		"email", privacy.MaskEmail(email),
		"client_ip", privacy.AnonymizeIP(requestcontext.ClientIP(ctx)),
		"reason", reason,
	)
}

// Profile returns the current profile of an authenticated user.
func (s *Service) Profile(ctx context.Context, userID id.UserID) (*models.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// A token for a deleted user is as good as expired.
			return nil, dErrors.New(dErrors.CodeUnauthorized, "user no longer exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile")
	}
	profile := models.ProfileOf(user)
	return &profile, nil
}

// Logout revokes the session. Calling it again, or for an unknown
// session, succeeds with Revoked=false.
func (s *Service) Logout(ctx context.Context, sessionID id.SessionID) (*models.LogoutResult, error) {
	err := s.sessions.RevokeSessionIfActive(ctx, sessionID, requestcontext.Now(ctx))
	switch {
	case err == nil:
		s.metrics.IncrementLogout()
		s.logger.InfoContext(ctx, "session ended",
			"request_id", requestcontext.RequestID(ctx),
			"session_id", sessionID.String(),
		)
		return &models.LogoutResult{Revoked: true}, nil
	case errors.Is(err, sentinel.ErrNotFound), errors.Is(err, sentinel.ErrInvalidState):
		return &models.LogoutResult{Revoked: false}, nil
	default:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to end session")
	}
}

// IsSessionActive backs the auth middleware's revocation check.
func (s *Service) IsSessionActive(ctx context.Context, sessionID id.SessionID) (bool, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("find session: %w", err)
	}
	return session.IsActive(requestcontext.Now(ctx)), nil
}

// Permissions reports what the caller's role may do.
func (s *Service) Permissions(role id.Role) models.Permissions {
	return models.PermissionsFor(role)
}

// DeleteExpiredSessions removes sessions past their expiry.
func (s *Service) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	return s.sessions.DeleteExpiredSessions(ctx, now)
}
