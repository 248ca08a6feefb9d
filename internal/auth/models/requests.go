package models

import (
	"strings"

	id "festdraft/pkg/domain"
	dErrors "festdraft/pkg/domain-errors"
	"festdraft/pkg/validation"
)

// LoginRequest carries the credentials posted to /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) Validate() error {
	return validation.Validate(r)
}

// CreateUserRequest is the admin payload for creating an operator account.
type CreateUserRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	DisplayName string `json:"displayName" validate:"notblank,max=100"`
	Password    string `json:"password" validate:"min=6,max=72"`
	Role        string `json:"role" validate:"required"`
	TeamID      string `json:"teamId,omitempty"`

	role   id.Role
	teamID id.TeamID
}

func (r *CreateUserRequest) Sanitize() {
	r.DisplayName = strings.TrimSpace(r.DisplayName)
	r.Role = strings.TrimSpace(r.Role)
	r.TeamID = strings.TrimSpace(r.TeamID)
}

func (r *CreateUserRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Validate checks the tagged fields, then parses role and team and requires
// a team for managers.
func (r *CreateUserRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	role, teamID, err := parseRoleAndTeam(r.Role, r.TeamID)
	if err != nil {
		return err
	}
	r.role, r.teamID = role, teamID
	if role.IsTeamManager() && r.teamID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "team managers need a teamId")
	}
	return nil
}

// ParsedRole is only meaningful after a successful Validate.
func (r *CreateUserRequest) ParsedRole() id.Role { return r.role }

// ParsedTeamID is only meaningful after a successful Validate.
func (r *CreateUserRequest) ParsedTeamID() id.TeamID { return r.teamID }

// UpdateRoleRequest is the admin payload for PATCH /api/auth/users/{id}/role.
type UpdateRoleRequest struct {
	Role   string `json:"role" validate:"notblank"`
	TeamID string `json:"teamId,omitempty"`

	role   id.Role
	teamID id.TeamID
}

func (r *UpdateRoleRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	role, teamID, err := parseRoleAndTeam(strings.TrimSpace(r.Role), strings.TrimSpace(r.TeamID))
	if err != nil {
		return err
	}
	r.role, r.teamID = role, teamID
	return nil
}

func (r *UpdateRoleRequest) ParsedRole() id.Role     { return r.role }
func (r *UpdateRoleRequest) ParsedTeamID() id.TeamID { return r.teamID }

func parseRoleAndTeam(rawRole, rawTeam string) (id.Role, id.TeamID, error) {
	role, err := id.ParseRole(rawRole)
	if err != nil {
		return "", 0, dErrors.New(dErrors.CodeValidation, "role must be admin or team-manager")
	}
	if rawTeam == "" {
		return role, 0, nil
	}
	teamID, err := id.ParseTeamID(rawTeam)
	if err != nil {
		return "", 0, dErrors.New(dErrors.CodeValidation, "teamId is invalid")
	}
	return role, teamID, nil
}
