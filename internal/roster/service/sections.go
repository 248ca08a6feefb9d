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

func (s *Service) ListSections(ctx context.Context, spec listquery.Spec) (*models.ListResponse[*models.Section], error) {
	sections, err := s.sections.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list sections")
	}
	res := models.NewListResponse(sections, spec, models.SectionFields)
	return &res, nil
}

func (s *Service) CreateSection(ctx context.Context, req *models.SectionRequest) (_ *models.Section, err error) {
	ctx, span := s.tracer.Start(ctx, "roster.create_section", tracer.String("section", req.Name))
	defer func() { span.End(err) }()

	section := &models.Section{
		ID:        id.SectionID(s.ids.Next()),
		Name:      req.Name,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.sections.Create(ctx, section); err != nil {
		return nil, wrapStoreErr(err, "section", "failed to create section")
	}
	s.metrics.IncrementMutation("section", "create")
	s.audit(ctx, "section created", "section_id", section.ID.String(), "name", section.Name)
	return section, nil
}

func (s *Service) UpdateSection(ctx context.Context, sectionID id.SectionID, req *models.SectionRequest) (_ *models.Section, err error) {
	ctx, span := s.tracer.Start(ctx, "roster.update_section", tracer.String("section_id", sectionID.String()))
	defer func() { span.End(err) }()

	section, err := s.sections.FindByID(ctx, sectionID)
	if err != nil {
		return nil, wrapStoreErr(err, "section", "failed to load section")
	}
	section.Name = req.Name
	if err := s.sections.Update(ctx, section); err != nil {
		return nil, wrapStoreErr(err, "section", "failed to update section")
	}
	s.metrics.IncrementMutation("section", "update")
	return section, nil
}

// DeleteSection refuses to remove a section that still has participants or
// groups.
func (s *Service) DeleteSection(ctx context.Context, sectionID id.SectionID) (err error) {
	ctx, span := s.tracer.Start(ctx, "roster.delete_section", tracer.String("section_id", sectionID.String()))
	defer func() { span.End(err) }()

	if _, err := s.sections.FindByID(ctx, sectionID); err != nil {
		return wrapStoreErr(err, "section", "failed to load section")
	}
	n, err := s.participants.CountBySection(ctx, sectionID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count participants")
	}
	if n > 0 {
		return dErrors.New(dErrors.CodeConflict, "section still has participants")
	}
	groups, err := s.groups.CountBySection(ctx, sectionID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count groups")
	}
	if groups > 0 {
		return dErrors.New(dErrors.CodeConflict, "section still has groups")
	}
	if err := s.sections.Delete(ctx, sectionID); err != nil {
		return wrapStoreErr(err, "section", "failed to delete section")
	}
	s.metrics.IncrementMutation("section", "delete")
	s.audit(ctx, "section deleted", "section_id", sectionID.String())
	return nil
}
