package service

import (
	"context"

	"festdraft/internal/platform/tracer"
	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
	dErrors "festdraft/pkg/domain-errors"
	"festdraft/pkg/listquery"
	"festdraft/pkg/requestcontext"
)

// ListTeams runs spec over every team.
func (s *Service) ListTeams(ctx context.Context, spec listquery.Spec) (*models.ListResponse[*models.Team], error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list teams")
	}
	res := models.NewListResponse(teams, spec, models.TeamFields)
	return &res, nil
}

func (s *Service) GetTeam(ctx context.Context, teamID id.TeamID) (*models.Team, error) {
	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return nil, wrapStoreErr(err, "team", "failed to load team")
	}
	return team, nil
}

// TeamName resolves a team's display name for account management.
func (s *Service) TeamName(ctx context.Context, teamID id.TeamID) (string, error) {
	team, err := s.GetTeam(ctx, teamID)
	if err != nil {
		return "", err
	}
	return team.Name, nil
}

func (s *Service) CreateTeam(ctx context.Context, req *models.CreateTeamRequest) (_ *models.Team, err error) {
	ctx, span := s.tracer.Start(ctx, "roster.create_team", tracer.String("team", req.Name))
	defer func() { span.End(err) }()

	team := &models.Team{
		ID:        id.TeamID(s.ids.Next()),
		Name:      req.Name,
		Manager:   req.Manager,
		Colour:    req.Colour,
		LogoURL:   req.LogoURL,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, wrapStoreErr(err, "team", "failed to create team")
	}
	s.metrics.IncrementMutation("team", "create")
	s.audit(ctx, "team created", "team_id", team.ID.String(), "name", team.Name)
	return team, nil
}

func (s *Service) UpdateTeam(ctx context.Context, teamID id.TeamID, req *models.UpdateTeamRequest) (_ *models.Team, err error) {
	ctx, span := s.tracer.Start(ctx, "roster.update_team", tracer.String("team_id", teamID.String()))
	defer func() { span.End(err) }()

	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return nil, wrapStoreErr(err, "team", "failed to load team")
	}
	req.Apply(team)
	if err := s.teams.Update(ctx, team); err != nil {
		return nil, wrapStoreErr(err, "team", "failed to update team")
	}
	s.metrics.IncrementMutation("team", "update")
	s.audit(ctx, "team updated", "team_id", team.ID.String())
	return team, nil
}

// DeleteTeam removes a team and returns its participants to the pool.
func (s *Service) DeleteTeam(ctx context.Context, teamID id.TeamID) (err error) {
	ctx, span := s.tracer.Start(ctx, "roster.delete_team", tracer.String("team_id", teamID.String()))
	defer func() { span.End(err) }()

	if _, err := s.teams.FindByID(ctx, teamID); err != nil {
		return wrapStoreErr(err, "team", "failed to load team")
	}
	released, err := s.participants.UnassignTeam(ctx, teamID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to release team participants")
	}
	span.SetAttributes(tracer.Int("released", released))
	if err := s.teams.Delete(ctx, teamID); err != nil {
		return wrapStoreErr(err, "team", "failed to delete team")
	}
	s.metrics.IncrementMutation("team", "delete")
	s.audit(ctx, "team deleted", "team_id", teamID.String(), "released_participants", released)
	return nil
}
