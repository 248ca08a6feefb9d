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

// ListAuctions runs spec over every auction. Access codes are only
// returned to administrators.
func (s *Service) ListAuctions(ctx context.Context, spec listquery.Spec) (*models.ListResponse[*models.Auction], error) {
	auctions, err := s.auctions.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list auctions")
	}
	dir, err := s.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}
	for i, a := range auctions {
		auctions[i] = s.visible(ctx, dir.auction(a))
	}
	res := models.NewListResponse(auctions, spec, models.AuctionFields)
	return &res, nil
}

func (s *Service) GetAuction(ctx context.Context, auctionID id.AuctionID) (*models.Auction, error) {
	a, err := s.auctions.FindByID(ctx, auctionID)
	if err != nil {
		return nil, wrapStoreErr(err, "auction", "failed to load auction")
	}
	dir, err := s.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}
	return s.visible(ctx, dir.auction(a)), nil
}

func (s *Service) visible(ctx context.Context, a *models.Auction) *models.Auction {
	if requestcontext.Role(ctx).IsAdmin() {
		return a
	}
	return a.Redacted()
}

// CreateAuction opens a draft auction with a fresh access code. Every team
// in the order and the section must exist.
func (s *Service) CreateAuction(ctx context.Context, req *models.CreateAuctionRequest) (_ *models.Auction, err error) {
	ctx, span := s.tracer.Start(ctx, "roster.create_auction", tracer.String("auction", req.Name))
	defer func() { span.End(err) }()

	dir, err := s.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}
	sectionID := req.ParsedSectionID()
	if _, ok := dir.sections[sectionID]; !ok {
		return nil, dErrors.New(dErrors.CodeValidation, "section does not exist")
	}
	for _, teamID := range req.ParsedTeamsOrder() {
		if _, ok := dir.teams[teamID]; !ok {
			return nil, dErrors.New(dErrors.CodeValidation, "firstTeamsOrder references an unknown team")
		}
	}

	a := &models.Auction{
		ID:                 id.AuctionID(s.ids.Next()),
		Name:               req.Name,
		Description:        req.Description,
		SectionID:          sectionID,
		TimerSeconds:       req.Timer,
		ExtraTimeSeconds:   req.ExtraTime,
		FirstTeamsOrder:    req.ParsedTeamsOrder(),
		AuthorizedManagers: req.ParsedManagers(),
		Status:             models.AuctionDraft,
		AccessCode:         s.accessCode(),
		CreatedAt:          requestcontext.Now(ctx),
	}
	if err := s.auctions.Create(ctx, a); err != nil {
		return nil, wrapStoreErr(err, "auction", "failed to create auction")
	}
	s.metrics.IncrementMutation("auction", "create")
	s.audit(ctx, "auction created", "auction_id", a.ID.String(), "section_id", sectionID.String())
	return dir.auction(a), nil
}

// UpdateAuction changes the settings of a draft auction. Status and access
// code cannot be patched.
func (s *Service) UpdateAuction(ctx context.Context, auctionID id.AuctionID, req *models.UpdateAuctionRequest) (_ *models.Auction, err error) {
	ctx, span := s.tracer.Start(ctx, "roster.update_auction", tracer.String("auction_id", auctionID.String()))
	defer func() { span.End(err) }()

	a, err := s.auctions.FindByID(ctx, auctionID)
	if err != nil {
		return nil, wrapStoreErr(err, "auction", "failed to load auction")
	}
	if err := a.Editable(); err != nil {
		return nil, err
	}
	dir, err := s.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}
	req.Apply(a)
	if _, ok := dir.sections[a.SectionID]; !ok {
		return nil, dErrors.New(dErrors.CodeValidation, "section does not exist")
	}
	for _, teamID := range a.FirstTeamsOrder {
		if _, ok := dir.teams[teamID]; !ok {
			return nil, dErrors.New(dErrors.CodeValidation, "firstTeamsOrder references an unknown team")
		}
	}
	if err := s.auctions.UpdateDraft(ctx, a); err != nil {
		if errors.Is(err, sentinel.ErrInvalidState) {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "only draft auctions can be changed")
		}
		return nil, wrapStoreErr(err, "auction", "failed to update auction")
	}
	s.metrics.IncrementMutation("auction", "update")
	s.audit(ctx, "auction updated", "auction_id", auctionID.String())
	return dir.auction(a), nil
}

// DeleteAuction removes an auction that has not started.
func (s *Service) DeleteAuction(ctx context.Context, auctionID id.AuctionID) (err error) {
	ctx, span := s.tracer.Start(ctx, "roster.delete_auction", tracer.String("auction_id", auctionID.String()))
	defer func() { span.End(err) }()

	if err := s.auctions.DeleteDraft(ctx, auctionID); err != nil {
		if errors.Is(err, sentinel.ErrInvalidState) {
			return dErrors.New(dErrors.CodeInvariantViolation, "only draft auctions can be deleted")
		}
		return wrapStoreErr(err, "auction", "failed to delete auction")
	}
	s.metrics.IncrementMutation("auction", "delete")
	s.audit(ctx, "auction deleted", "auction_id", auctionID.String())
	return nil
}

// StartAuction moves a draft auction to live.
func (s *Service) StartAuction(ctx context.Context, auctionID id.AuctionID, code string) (*models.Auction, error) {
	return s.transition(ctx, "roster.start_auction", auctionID, code, (*models.Auction).Start, models.AuctionDraft)
}

// EndAuction moves a live auction to completed.
func (s *Service) EndAuction(ctx context.Context, auctionID id.AuctionID, code string) (*models.Auction, error) {
	return s.transition(ctx, "roster.end_auction", auctionID, code, (*models.Auction).End, models.AuctionLive)
}

func (s *Service) transition(
	ctx context.Context,
	spanName string,
	auctionID id.AuctionID,
	code string,
	apply func(*models.Auction, string) error,
	from models.AuctionStatus,
) (_ *models.Auction, err error) {
	ctx, span := s.tracer.Start(ctx, spanName, tracer.String("auction_id", auctionID.String()))
	defer func() { span.End(err) }()

	a, err := s.auctions.FindByID(ctx, auctionID)
	if err != nil {
		return nil, wrapStoreErr(err, "auction", "failed to load auction")
	}
	if err := apply(a, code); err != nil {
		return nil, err
	}
	if err := s.auctions.UpdateStatus(ctx, auctionID, from, a.Status); err != nil {
		if errors.Is(err, sentinel.ErrInvalidState) {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "auction status changed concurrently")
		}
		return nil, wrapStoreErr(err, "auction", "failed to update auction")
	}
	s.metrics.IncrementTransition(a.Status.String())
	s.audit(ctx, "auction status changed", "auction_id", auctionID.String(), "status", a.Status.String())
	return s.decorateAuction(ctx, a), nil
}

// decorateAuction fills in the section name. The write has already happened,
// so a failed lookup is logged and the bare auction returned.
func (s *Service) decorateAuction(ctx context.Context, a *models.Auction) *models.Auction {
	dir, err := s.loadDirectory(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to resolve auction section",
			"request_id", requestcontext.RequestID(ctx),
			"auction_id", a.ID.String(),
			"error", err,
		)
		return a
	}
	return dir.auction(a)
}

// VerifyAccessCode reports whether code opens the auction. A wrong code is
// a negative result, not an error. Team managers must also be on the
// authorized list.
func (s *Service) VerifyAccessCode(ctx context.Context, auctionID id.AuctionID, code string) (_ *models.AccessResult, err error) {
	ctx, span := s.tracer.Start(ctx, "roster.verify_access", tracer.String("auction_id", auctionID.String()))
	defer func() { span.End(err) }()

	a, err := s.auctions.FindByID(ctx, auctionID)
	if err != nil {
		return nil, wrapStoreErr(err, "auction", "failed to load auction")
	}
	valid := a.CheckAccessCode(code) == nil
	if valid && !requestcontext.Role(ctx).IsAdmin() {
		valid = a.IsAuthorized(requestcontext.UserID(ctx))
	}
	s.metrics.IncrementAccessCheck(valid)
	span.SetAttributes(tracer.Bool("valid", valid))
	if !valid {
		s.logger.WarnContext(ctx, "auction access denied",
			"request_id", requestcontext.RequestID(ctx),
			"auction_id", auctionID.String(),
		)
		return &models.AccessResult{Valid: false}, nil
	}
	return &models.AccessResult{Valid: true, Auction: s.visible(ctx, a)}, nil
}
