package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"festdraft/internal/auth/models"
	jwttoken "festdraft/internal/jwt_token"
	id "festdraft/pkg/domain"
)

// UserStore defines the persistence interface for operator accounts.
// Error Contract: Find methods return sentinel.ErrNotFound when absent;
// Save returns sentinel.ErrAlreadyUsed on a duplicate email.
type UserStore interface {
	Save(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	UpdateRole(ctx context.Context, userID id.UserID, role id.Role, teamID id.TeamID, teamName string) (*models.User, error)
}

// SessionStore defines the persistence interface for server sessions.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error)
	RevokeSessionIfActive(ctx context.Context, sessionID id.SessionID, now time.Time) error
	RevokeAllForUser(ctx context.Context, userID id.UserID, now time.Time) (int, error)
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}

// TokenGenerator issues access tokens for a session.
type TokenGenerator interface {
	GenerateAccessToken(ctx context.Context, sub jwttoken.Subject) (string, error)
	TokenTTL() time.Duration
}

// TeamDirectory resolves team names for manager accounts. It is owned by the
// roster module.
type TeamDirectory interface {
	TeamName(ctx context.Context, teamID id.TeamID) (string, error)
}
