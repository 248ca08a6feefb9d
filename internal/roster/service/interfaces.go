package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
)

// TeamStore persists teams.
// Error Contract: sentinel.ErrNotFound when absent; sentinel.ErrAlreadyUsed
// on a duplicate name.
type TeamStore interface {
	Create(ctx context.Context, team *models.Team) error
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, teamID id.TeamID) error
	FindByID(ctx context.Context, teamID id.TeamID) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	Count(ctx context.Context) (int, error)
}

// SectionStore persists sections. Same error contract as TeamStore.
type SectionStore interface {
	Create(ctx context.Context, section *models.Section) error
	Update(ctx context.Context, section *models.Section) error
	Delete(ctx context.Context, sectionID id.SectionID) error
	FindByID(ctx context.Context, sectionID id.SectionID) (*models.Section, error)
	List(ctx context.Context) ([]*models.Section, error)
	Count(ctx context.Context) (int, error)
}

// GroupStore persists groups. Names are unique per section; a group whose
// section does not exist yields sentinel.ErrInvalidInput. List with a zero
// section returns every group.
type GroupStore interface {
	Create(ctx context.Context, group *models.Group) error
	Update(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, groupID id.GroupID) error
	FindByID(ctx context.Context, groupID id.GroupID) (*models.Group, error)
	List(ctx context.Context, sectionID id.SectionID) ([]*models.Group, error)
	CountBySection(ctx context.Context, sectionID id.SectionID) (int, error)
	Count(ctx context.Context) (int, error)
}

// ParticipantStore persists participants. CreateMany is atomic; List with a
// zero section returns every participant.
type ParticipantStore interface {
	Create(ctx context.Context, participant *models.Participant) error
	CreateMany(ctx context.Context, participants []*models.Participant) error
	Update(ctx context.Context, participant *models.Participant) error
	Delete(ctx context.Context, participantID id.ParticipantID) error
	FindByID(ctx context.Context, participantID id.ParticipantID) (*models.Participant, error)
	List(ctx context.Context, sectionID id.SectionID) ([]*models.Participant, error)
	UnassignTeam(ctx context.Context, teamID id.TeamID) (int, error)
	CountBySection(ctx context.Context, sectionID id.SectionID) (int, error)
	Count(ctx context.Context) (int, error)
}

// AuctionStore persists auctions. UpdateStatus returns
// sentinel.ErrInvalidState when the stored status is not from; UpdateDraft
// and DeleteDraft return it when the auction is no longer a draft.
type AuctionStore interface {
	Create(ctx context.Context, auction *models.Auction) error
	UpdateStatus(ctx context.Context, auctionID id.AuctionID, from, to models.AuctionStatus) error
	UpdateDraft(ctx context.Context, auction *models.Auction) error
	DeleteDraft(ctx context.Context, auctionID id.AuctionID) error
	FindByID(ctx context.Context, auctionID id.AuctionID) (*models.Auction, error)
	List(ctx context.Context) ([]*models.Auction, error)
	Count(ctx context.Context) (int, error)
}

// IDGenerator mints roster identifiers.
type IDGenerator interface {
	Next() int64
}
