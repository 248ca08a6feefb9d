package models

import "time"

// UserProfile is the public view of a user. It is what clients persist as
// their session record.
type UserProfile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	TeamID      string `json:"teamId,omitempty"`
	Team        string `json:"team,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

// ProfileOf projects a user onto its public profile.
func ProfileOf(u *User) UserProfile {
	p := UserProfile{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role.String(),
		Team:        u.TeamName,
		Avatar:      u.Avatar,
	}
	if !u.TeamID.IsNil() {
		p.TeamID = u.TeamID.String()
	}
	return p
}

// LoginResult is the response payload for /api/auth/login.
type LoginResult struct {
	User      UserProfile `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// UsersResult lists operator accounts for administrators.
type UsersResult struct {
	Users []UserProfile `json:"users"`
}

// LogoutResult reports whether a live session was ended by this call.
type LogoutResult struct {
	Revoked bool `json:"revoked"`
}
