// Package service implements roster management: teams, sections, groups,
// participants and auction lifecycle.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"festdraft/internal/platform/ids"
	"festdraft/internal/platform/tracer"
	"festdraft/internal/roster/metrics"
	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
	dErrors "festdraft/pkg/domain-errors"
	"festdraft/pkg/platform/sentinel"
	"festdraft/pkg/requestcontext"
)

type Service struct {
	teams        TeamStore
	sections     SectionStore
	groups       GroupStore
	participants ParticipantStore
	auctions     AuctionStore
	ids          IDGenerator
	accessCode   func() string
	tracer       tracer.Tracer
	logger       *slog.Logger
	metrics      *metrics.Metrics
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

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithIDGenerator replaces the default snowflake node.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Service) {
		s.ids = g
	}
}

// WithAccessCodes replaces the auction access code source.
func WithAccessCodes(next func() string) Option {
	return func(s *Service) {
		s.accessCode = next
	}
}

func New(
	teams TeamStore,
	sections SectionStore,
	groups GroupStore,
	participants ParticipantStore,
	auctions AuctionStore,
	opts ...Option,
) (*Service, error) {
	if teams == nil || sections == nil || groups == nil || participants == nil || auctions == nil {
		return nil, fmt.Errorf("team, section, group, participant and auction stores are required")
	}
	svc := &Service{
		teams:        teams,
		sections:     sections,
		groups:       groups,
		participants: participants,
		auctions:     auctions,
		ids:          ids.NewGenerator(1),
		accessCode:   ids.NewAccessCode,
		tracer:       tracer.NewNoop(),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// audit logs a roster mutation with the acting user.
func (s *Service) audit(ctx context.Context, msg string, args ...any) {
	args = append(args,
		"request_id", requestcontext.RequestID(ctx),
		"actor_id", requestcontext.UserID(ctx).String(),
	)
	s.logger.InfoContext(ctx, msg, args...)
}

// wrapStoreErr maps store sentinels for entity to domain errors.
func wrapStoreErr(err error, entity, action string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, entity+" not found")
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.New(dErrors.CodeConflict, entity+" name must be unique")
	case errors.Is(err, sentinel.ErrInvalidInput):
		return dErrors.New(dErrors.CodeValidation, "referenced section or team does not exist")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, action)
	}
}

// directory holds name lookups used to decorate participants and auctions.
type directory struct {
	teams    map[id.TeamID]string
	sections map[id.SectionID]string
}

func (s *Service) loadDirectory(ctx context.Context) (*directory, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list teams")
	}
	sections, err := s.sections.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list sections")
	}
	d := &directory{
		teams:    make(map[id.TeamID]string, len(teams)),
		sections: make(map[id.SectionID]string, len(sections)),
	}
	for _, t := range teams {
		d.teams[t.ID] = t.Name
	}
	for _, sec := range sections {
		d.sections[sec.ID] = sec.Name
	}
	return d, nil
}

func (d *directory) participant(p *models.Participant) *models.Participant {
	p.SectionName = d.sections[p.SectionID]
	p.TeamName = d.teams[p.TeamID]
	return p
}

func (d *directory) auction(a *models.Auction) *models.Auction {
	a.SectionName = d.sections[a.SectionID]
	return a
}

func (d *directory) group(g *models.Group) *models.Group {
	g.SectionName = d.sections[g.SectionID]
	return g
}

// Overview returns the counts shown on the admin dashboard.
func (s *Service) Overview(ctx context.Context) (_ *models.Overview, err error) {
	ctx, span := s.tracer.Start(ctx, "roster.overview")
	defer func() { span.End(err) }()

	out := &models.Overview{}
	if out.Teams, err = s.teams.Count(ctx); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count teams")
	}
	if out.Sections, err = s.sections.Count(ctx); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count sections")
	}
	if out.Groups, err = s.groups.Count(ctx); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count groups")
	}
	participants, err := s.participants.List(ctx, 0)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list participants")
	}
	out.Participants = len(participants)
	for _, p := range participants {
		if p.Available() {
			out.AvailableParticipants++
		}
	}
	auctions, err := s.auctions.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list auctions")
	}
	out.Auctions = len(auctions)
	for _, a := range auctions {
		if a.Status == models.AuctionLive {
			out.LiveAuctions++
		}
	}
	return out, nil
}
