package models

import (
	"time"

	id "festdraft/pkg/domain"
)

// User is an operator account: an administrator or a team manager.
type User struct {
	ID           id.UserID
	Email        string
	DisplayName  string
	Role         id.Role
	TeamID       id.TeamID // zero for administrators
	TeamName     string
	Avatar       string
	PasswordHash string
	CreatedAt    time.Time
}

// Session backs every issued access token. Revoking it invalidates them all.
type Session struct {
	ID                id.SessionID
	UserID            id.UserID
	Role              id.Role
	DeviceDisplayName string
	CreatedAt         time.Time
	ExpiresAt         time.Time
	RevokedAt         *time.Time
}

func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsActive reports whether the session can still authorize requests at now.
func (s *Session) IsActive(now time.Time) bool {
	return !s.IsRevoked() && now.Before(s.ExpiresAt)
}

// Revoke marks the session revoked. It reports false when it already was.
func (s *Session) Revoke(at time.Time) bool {
	if s.IsRevoked() {
		return false
	}
	s.RevokedAt = &at
	return true
}

// Permissions are the capabilities a role grants in the auction workflow.
type Permissions struct {
	CanCreateAuction bool `json:"canCreateAuction"`
	CanStartAuction  bool `json:"canStartAuction"`
	CanEndAuction    bool `json:"canEndAuction"`
	CanManageUsers   bool `json:"canManageUsers"`
	CanAssignRoles   bool `json:"canAssignRoles"`
}

// PermissionsFor maps a role to its capabilities. Unknown roles get none.
func PermissionsFor(role id.Role) Permissions {
	if role.IsAdmin() {
		return Permissions{
			CanCreateAuction: true,
			CanStartAuction:  true,
			CanEndAuction:    true,
			CanManageUsers:   true,
			CanAssignRoles:   true,
		}
	}
	return Permissions{}
}
