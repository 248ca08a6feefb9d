// Package admin assembles the landing views: the administrator dashboard
// and the team manager's home.
package admin

import (
	"context"

	authmodels "festdraft/internal/auth/models"
	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
	dErrors "festdraft/pkg/domain-errors"
	"festdraft/pkg/listquery"
)

// Roster is the slice of the roster service the landing views read.
type Roster interface {
	Overview(ctx context.Context) (*models.Overview, error)
	GetTeam(ctx context.Context, teamID id.TeamID) (*models.Team, error)
	ListAvailableParticipants(ctx context.Context, sectionID id.SectionID, spec listquery.Spec) (*models.ListResponse[*models.Participant], error)
}

// Profiles resolves the caller's account.
type Profiles interface {
	Profile(ctx context.Context, userID id.UserID) (*authmodels.UserProfile, error)
}

// Dashboard is the body of GET /admin.
type Dashboard struct {
	Welcome  string           `json:"welcome"`
	Overview *models.Overview `json:"overview"`
}

// TeamHome is the body of GET /team.
type TeamHome struct {
	Manager    authmodels.UserProfile `json:"manager"`
	Team       *models.Team           `json:"team,omitempty"`
	Candidates int                    `json:"candidates"`
	Pool       int                    `json:"pool"`
}

type Service struct {
	roster   Roster
	profiles Profiles
}

func NewService(roster Roster, profiles Profiles) *Service {
	return &Service{roster: roster, profiles: profiles}
}

func (s *Service) Dashboard(ctx context.Context, userID id.UserID) (*Dashboard, error) {
	profile, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	overview, err := s.roster.Overview(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Welcome: profile.DisplayName, Overview: overview}, nil
}

// TeamHome shows a manager their team and how many candidates remain.
// Managers without a team still see the candidate counts.
func (s *Service) TeamHome(ctx context.Context, userID id.UserID) (*TeamHome, error) {
	profile, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	home := &TeamHome{Manager: *profile}
	if profile.TeamID != "" {
		teamID, err := id.ParseTeamID(profile.TeamID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "stored team id is invalid")
		}
		team, err := s.roster.GetTeam(ctx, teamID)
		if err != nil && !dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, err
		}
		home.Team = team
	}
	candidates, err := s.roster.ListAvailableParticipants(ctx, 0, listquery.Spec{PageSize: 1})
	if err != nil {
		return nil, err
	}
	home.Candidates = candidates.Total
	home.Pool = candidates.Of
	return home, nil
}
