package domain

import (
	dErrors "festdraft/pkg/domain-errors"
)

// Role is the access level carried by an authenticated user.
// Admins see the whole roster; team managers see their own team.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleTeamManager Role = "team-manager"
)

// Alternative vocabulary some deployments used for the same two levels.
const (
	accessLevelFull    = "Full"
	accessLevelLimited = "Limited"
)

func (r Role) String() string { return string(r) }

// IsValid reports whether r is one of the two known roles.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleTeamManager
}

// IsAdmin is true only for RoleAdmin; unknown roles are never admin.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// IsTeamManager is true only for RoleTeamManager.
func (r Role) IsTeamManager() bool { return r == RoleTeamManager }

// ParseRole accepts the canonical role names and the legacy access-level
// names, mapping Full to admin and Limited to team-manager.
func ParseRole(s string) (Role, error) {
	switch s {
	case string(RoleAdmin), accessLevelFull:
		return RoleAdmin, nil
	case string(RoleTeamManager), accessLevelLimited:
		return RoleTeamManager, nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown role")
	}
}
