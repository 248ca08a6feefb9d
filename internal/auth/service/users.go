package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"festdraft/internal/auth/models"
	id "festdraft/pkg/domain"
	dErrors "festdraft/pkg/domain-errors"
	"festdraft/pkg/platform/privacy"
	"festdraft/pkg/platform/sentinel"
	"festdraft/pkg/requestcontext"
)

// CreateUser registers an operator account. The request must have been
// validated.
func (s *Service) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.UserProfile, error) {
	role := req.ParsedRole()
	teamID := req.ParsedTeamID()
	teamName, err := s.resolveTeam(ctx, role, teamID)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	user := &models.User{
		ID:           id.UserID(uuid.New()),
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		Role:         role,
		TeamID:       teamID,
		TeamName:     teamName,
		PasswordHash: string(hash),
		CreatedAt:    requestcontext.Now(ctx),
	}
	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "email is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save user")
	}

	s.metrics.IncrementUsersCreated()
	s.logger.InfoContext(ctx, "user created",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", user.ID.String(),
		"email", privacy.MaskEmail(user.Email),
		"role", role.String(),
	)
	profile := models.ProfileOf(user)
	return &profile, nil
}

// ListUsers returns every account ordered by email.
func (s *Service) ListUsers(ctx context.Context) (*models.UsersResult, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	out := &models.UsersResult{Users: make([]models.UserProfile, 0, len(users))}
	for _, u := range users {
		out.Users = append(out.Users, models.ProfileOf(u))
	}
	return out, nil
}

// UpdateRole reassigns a user's role and revokes their sessions so the old
// role cannot outlive the change in any issued token.
func (s *Service) UpdateRole(ctx context.Context, userID id.UserID, req *models.UpdateRoleRequest) (*models.UserProfile, error) {
	role := req.ParsedRole()
	teamID := req.ParsedTeamID()
	if role.IsAdmin() {
		teamID = 0
	}
	if userID == requestcontext.UserID(ctx) && !role.IsAdmin() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "administrators cannot demote themselves")
	}
	teamName, err := s.resolveTeam(ctx, role, teamID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.UpdateRole(ctx, userID, role, teamID, teamName)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update role")
	}

	revoked, err := s.sessions.RevokeAllForUser(ctx, userID, requestcontext.Now(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke sessions")
	}

	s.metrics.RecordRoleChange(revoked)
	s.logger.InfoContext(ctx, "user role updated",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", userID.String(),
		"role", role.String(),
		"revoked_sessions", revoked,
	)
	profile := models.ProfileOf(user)
	return &profile, nil
}

// resolveTeam looks up the team name for team managers.
func (s *Service) resolveTeam(ctx context.Context, role id.Role, teamID id.TeamID) (string, error) {
	if !role.IsTeamManager() {
		return "", nil
	}
	if teamID.IsNil() {
		return "", dErrors.New(dErrors.CodeValidation, "team managers need a teamId")
	}
	if s.teams == nil {
		return "", nil
	}
	name, err := s.teams.TeamName(ctx, teamID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) || dErrors.HasCode(err, dErrors.CodeNotFound) {
			return "", dErrors.New(dErrors.CodeValidation, "team does not exist")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve team")
	}
	return name, nil
}
