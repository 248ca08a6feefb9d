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

// ListParticipants runs spec over the participants of sectionID, or over
// every participant when sectionID is zero.
func (s *Service) ListParticipants(ctx context.Context, sectionID id.SectionID, spec listquery.Spec) (*models.ListResponse[*models.Participant], error) {
	participants, err := s.decoratedParticipants(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	res := models.NewListResponse(participants, spec, models.ParticipantFields)
	return &res, nil
}

// ListAvailableParticipants is ListParticipants restricted to active
// participants without a team. Total counts the available pool; Of counts
// every participant in scope.
func (s *Service) ListAvailableParticipants(ctx context.Context, sectionID id.SectionID, spec listquery.Spec) (*models.ListResponse[*models.Participant], error) {
	participants, err := s.decoratedParticipants(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	available := make([]*models.Participant, 0, len(participants))
	for _, p := range participants {
		if p.Available() {
			available = append(available, p)
		}
	}
	res := models.NewListResponse(available, spec, models.ParticipantFields)
	res.Of = len(participants)
	return &res, nil
}

func (s *Service) decoratedParticipants(ctx context.Context, sectionID id.SectionID) ([]*models.Participant, error) {
	participants, err := s.participants.List(ctx, sectionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list participants")
	}
	dir, err := s.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range participants {
		dir.participant(p)
	}
	return participants, nil
}

func (s *Service) GetParticipant(ctx context.Context, participantID id.ParticipantID) (*models.Participant, error) {
	p, err := s.participants.FindByID(ctx, participantID)
	if err != nil {
		return nil, wrapStoreErr(err, "participant", "failed to load participant")
	}
	dir, err := s.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}
	return dir.participant(p), nil
}

func (s *Service) CreateParticipant(ctx context.Context, req *models.CreateParticipantRequest) (_ *models.Participant, err error) {
	ctx, span := s.tracer.Start(ctx, "roster.create_participant")
	defer func() { span.End(err) }()

	dir, err := s.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.newParticipant(ctx, req, dir)
	if err != nil {
		return nil, err
	}
	if err := s.participants.Create(ctx, p); err != nil {
		return nil, wrapStoreErr(err, "participant", "failed to create participant")
	}
	s.metrics.IncrementMutation("participant", "create")
	s.audit(ctx, "participant created", "participant_id", p.ID.String())
	return dir.participant(p), nil
}

func (s *Service) newParticipant(ctx context.Context, req *models.CreateParticipantRequest, dir *directory) (*models.Participant, error) {
	sectionID := req.ParsedSectionID()
	if !sectionID.IsNil() {
		if _, ok := dir.sections[sectionID]; !ok {
			return nil, dErrors.New(dErrors.CodeValidation, "section does not exist")
		}
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &models.Participant{
		ID:           id.ParticipantID(s.ids.Next()),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		DOB:          req.DOB,
		Gender:       req.Gender,
		SectionID:    sectionID,
		Skill:        req.Skill,
		Experience:   req.Experience,
		Status:       req.Status,
		AdmNo:        req.AdmNo,
		ChestNo:      req.ChestNo,
		Avatar:       req.Avatar,
		Achievements: req.Achievements,
		Active:       active,
		CreatedAt:    requestcontext.Now(ctx),
	}, nil
}

// BulkCreateParticipants validates each entry on its own and stores every
// valid entry in one write. Invalid entries are reported, not fatal.
func (s *Service) BulkCreateParticipants(ctx context.Context, req *models.BulkCreateParticipantsRequest) (_ *models.BulkResult, err error) {
	ctx, span := s.tracer.Start(ctx, "roster.bulk_create_participants", tracer.Int("requested", len(req.Participants)))
	defer func() { span.End(err) }()

	dir, err := s.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}
	result := &models.BulkResult{
		Created: make([]*models.Participant, 0, len(req.Participants)),
		Errors:  make([]models.BulkError, 0),
	}
	for i, entry := range req.Participants {
		if entry == nil {
			result.Errors = append(result.Errors, models.BulkError{Index: i, Error: "entry is empty"})
			continue
		}
		entry.Sanitize()
		entry.Normalize()
		p, err := s.prepareBulkEntry(ctx, entry, dir)
		if err != nil {
			result.Errors = append(result.Errors, models.BulkError{Index: i, Name: entry.Name, Error: clientMessage(err)})
			continue
		}
		result.Created = append(result.Created, p)
	}

	if len(result.Created) > 0 {
		if err := s.participants.CreateMany(ctx, result.Created); err != nil {
			return nil, wrapStoreErr(err, "participant", "failed to create participants")
		}
	}
	for _, p := range result.Created {
		dir.participant(p)
	}
	result.Success = len(result.Created)
	span.SetAttributes(tracer.Int("created", result.Success), tracer.Int("rejected", len(result.Errors)))
	s.metrics.AddBulk(result.Success, len(result.Errors))
	s.audit(ctx, "participants imported", "created", result.Success, "rejected", len(result.Errors))
	return result, nil
}

func (s *Service) prepareBulkEntry(ctx context.Context, entry *models.CreateParticipantRequest, dir *directory) (*models.Participant, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return s.newParticipant(ctx, entry, dir)
}

// clientMessage returns the message of a domain error, or a generic one.
func clientMessage(err error) string {
	var de *dErrors.Error
	if errors.As(err, &de) && de.Code != dErrors.CodeInternal {
		return de.Message
	}
	return "invalid participant"
}

// UpdateParticipant patches a participant. Assigning a team marks the
// participant Selected and clearing it marks them Available, unless the
// request sets a status explicitly.
func (s *Service) UpdateParticipant(ctx context.Context, participantID id.ParticipantID, req *models.UpdateParticipantRequest) (_ *models.Participant, err error) {
	ctx, span := s.tracer.Start(ctx, "roster.update_participant", tracer.String("participant_id", participantID.String()))
	defer func() { span.End(err) }()

	p, err := s.participants.FindByID(ctx, participantID)
	if err != nil {
		return nil, wrapStoreErr(err, "participant", "failed to load participant")
	}
	dir, err := s.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}
	req.Apply(p)
	if sectionID, set := req.ParsedSectionID(); set {
		if !sectionID.IsNil() {
			if _, ok := dir.sections[sectionID]; !ok {
				return nil, dErrors.New(dErrors.CodeValidation, "section does not exist")
			}
		}
		p.SectionID = sectionID
	}
	if teamID, set := req.ParsedTeamID(); set {
		if !teamID.IsNil() {
			if _, ok := dir.teams[teamID]; !ok {
				return nil, dErrors.New(dErrors.CodeValidation, "team does not exist")
			}
		}
		p.TeamID = teamID
		if req.Status == nil {
			p.Status = models.StatusAvailable
			if p.HasTeam() {
				p.Status = models.StatusSelected
			}
		}
	}
	if err := s.participants.Update(ctx, p); err != nil {
		return nil, wrapStoreErr(err, "participant", "failed to update participant")
	}
	s.metrics.IncrementMutation("participant", "update")
	s.audit(ctx, "participant updated", "participant_id", p.ID.String())
	return dir.participant(p), nil
}

func (s *Service) DeleteParticipant(ctx context.Context, participantID id.ParticipantID) (err error) {
	ctx, span := s.tracer.Start(ctx, "roster.delete_participant", tracer.String("participant_id", participantID.String()))
	defer func() { span.End(err) }()

	if err := s.participants.Delete(ctx, participantID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "participant not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete participant")
	}
	s.metrics.IncrementMutation("participant", "delete")
	s.audit(ctx, "participant deleted", "participant_id", participantID.String())
	return nil
}
