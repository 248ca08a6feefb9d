package service

import (
	"context"
	"errors"

	"festdraft/internal/platform/tracer"
	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
	dErrors "festdraft/pkg/domain-errors"
	"festdraft/pkg/listquery"
	"festdraft/pkg/platform/sentinel"
	"festdraft/pkg/requestcontext"
)

// ListGroups runs spec over the groups of sectionID, or over every group
// when sectionID is zero.
func (s *Service) ListGroups(ctx context.Context, sectionID id.SectionID, spec listquery.Spec) (*models.ListResponse[*models.Group], error) {
	groups, err := s.groups.List(ctx, sectionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list groups")
	}
	dir, err := s.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		dir.group(g)
	}
	res := models.NewListResponse(groups, spec, models.GroupFields)
	return &res, nil
}

func (s *Service) GetGroup(ctx context.Context, groupID id.GroupID) (*models.Group, error) {
	g, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, wrapStoreErr(err, "group", "failed to load group")
	}
	return s.withSectionName(ctx, g)
}

func (s *Service) CreateGroup(ctx context.Context, req *models.CreateGroupRequest) (_ *models.Group, err error) {
	ctx, span := s.tracer.Start(ctx, "roster.create_group", tracer.String("group", req.Name))
	defer func() { span.End(err) }()

	section, err := s.sections.FindByID(ctx, req.ParsedSectionID())
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeValidation, "section does not exist")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load section")
	}
	now := requestcontext.Now(ctx)
	g := &models.Group{
		ID:        id.GroupID(s.ids.Next()),
		Name:      req.Name,
		SectionID: section.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.groups.Create(ctx, g); err != nil {
		return nil, wrapStoreErr(err, "group", "failed to create group")
	}
	s.metrics.IncrementMutation("group", "create")
	s.audit(ctx, "group created", "group_id", g.ID.String(), "section_id", section.ID.String())
	g.SectionName = section.Name
	return g, nil
}

// UpdateGroup renames a group within its section.
func (s *Service) UpdateGroup(ctx context.Context, groupID id.GroupID, req *models.UpdateGroupRequest) (_ *models.Group, err error) {
	ctx, span := s.tracer.Start(ctx, "roster.update_group", tracer.String("group_id", groupID.String()))
	defer func() { span.End(err) }()

	g, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, wrapStoreErr(err, "group", "failed to load group")
	}
	g.Name = req.Name
	g.UpdatedAt = requestcontext.Now(ctx)
	if err := s.groups.Update(ctx, g); err != nil {
		return nil, wrapStoreErr(err, "group", "failed to update group")
	}
	s.metrics.IncrementMutation("group", "update")
	return s.withSectionName(ctx, g)
}

func (s *Service) DeleteGroup(ctx context.Context, groupID id.GroupID) (err error) {
	ctx, span := s.tracer.Start(ctx, "roster.delete_group", tracer.String("group_id", groupID.String()))
	defer func() { span.End(err) }()

	if err := s.groups.Delete(ctx, groupID); err != nil {
		return wrapStoreErr(err, "group", "failed to delete group")
	}
	s.metrics.IncrementMutation("group", "delete")
	s.audit(ctx, "group deleted", "group_id", groupID.String())
	return nil
}

func (s *Service) withSectionName(ctx context.Context, g *models.Group) (*models.Group, error) {
	section, err := s.sections.FindByID(ctx, g.SectionID)
	switch {
	case err == nil:
		g.SectionName = section.Name
	case !errors.Is(err, sentinel.ErrNotFound):
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load section")
	}
	return g, nil
}
