package models

import (
	"crypto/subtle"
	"slices"
	"time"

	id "festdraft/pkg/domain"
	dErrors "festdraft/pkg/domain-errors"
)

// Team is a drafting side. Managers are linked through their user account.
type Team struct {
	ID        id.TeamID `json:"id"`
	Name      string    `json:"name"`
	Manager   string    `json:"manager,omitempty"`
	Colour    string    `json:"colour,omitempty"`
	LogoURL   string    `json:"logoUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Section groups participants, typically by class or department.
type Section struct {
	ID        id.SectionID `json:"id"`
	Name      string       `json:"name"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Group is a named subset of a section, such as a house or a squad.
// Names are unique within their section ignoring case.
type Group struct {
	ID          id.GroupID   `json:"id"`
	Name        string       `json:"name"`
	SectionID   id.SectionID `json:"sectionId"`
	SectionName string       `json:"section,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Participant statuses offered by the admin screens.
const (
	StatusAvailable   = "Available"
	StatusSelected    = "Selected"
	StatusNotSelected = "Not Selected"
)

// Participant is a person who can be drafted onto a team.
type Participant struct {
	ID           id.ParticipantID `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	DOB          string           `json:"dob,omitempty"`
	Gender       string           `json:"gender,omitempty"`
	SectionID    id.SectionID     `json:"sectionId,omitempty"`
	SectionName  string           `json:"section,omitempty"`
	TeamID       id.TeamID        `json:"teamId,omitempty"`
	TeamName     string           `json:"team,omitempty"`
	Skill        string           `json:"skill,omitempty"`
	Experience   string           `json:"experience,omitempty"`
	Status       string           `json:"status"`
	AdmNo        string           `json:"admNo,omitempty"`
	ChestNo      string           `json:"chestNo,omitempty"`
	Avatar       string           `json:"avatar,omitempty"`
	Achievements []string         `json:"achievements,omitempty"`
	Active       bool             `json:"isActive"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// HasTeam reports whether the participant is already assigned.
func (p *Participant) HasTeam() bool {
	return !p.TeamID.IsNil()
}

// Available participants can still be wishlisted and drafted.
func (p *Participant) Available() bool {
	return p.Active && !p.HasTeam()
}

// AuctionStatus is the lifecycle state of an auction.
type AuctionStatus string

const (
	AuctionDraft     AuctionStatus = "draft"
	AuctionLive      AuctionStatus = "live"
	AuctionCompleted AuctionStatus = "completed"
)

func (s AuctionStatus) String() string { return string(s) }

// Auction is the lifecycle record of one draft auction. Bidding itself is
// not modelled.
type Auction struct {
	ID                 id.AuctionID  `json:"id"`
	Name               string        `json:"name"`
	Description        string        `json:"description,omitempty"`
	SectionID          id.SectionID  `json:"sectionId,omitempty"`
	SectionName        string        `json:"section,omitempty"`
	TimerSeconds       int           `json:"timer"`
	ExtraTimeSeconds   int           `json:"extraTime"`
	FirstTeamsOrder    []id.TeamID   `json:"firstTeamsOrder"`
	AuthorizedManagers []id.UserID   `json:"authorizedManagers"`
	Status             AuctionStatus `json:"status"`
	AccessCode         string        `json:"accessCode,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
}

// CheckAccessCode compares code with the auction's access code in
// constant time.
func (a *Auction) CheckAccessCode(code string) error {
	if code == "" || subtle.ConstantTimeCompare([]byte(code), []byte(a.AccessCode)) != 1 {
		return dErrors.New(dErrors.CodeForbidden, "invalid access code")
	}
	return nil
}

// Start moves a draft auction to live.
func (a *Auction) Start(code string) error {
	if err := a.CheckAccessCode(code); err != nil {
		return err
	}
	if a.Status != AuctionDraft {
		return dErrors.New(dErrors.CodeInvariantViolation, "only draft auctions can be started")
	}
	a.Status = AuctionLive
	return nil
}

// End moves a live auction to completed.
func (a *Auction) End(code string) error {
	if err := a.CheckAccessCode(code); err != nil {
		return err
	}
	if a.Status != AuctionLive {
		return dErrors.New(dErrors.CodeInvariantViolation, "only live auctions can be ended")
	}
	a.Status = AuctionCompleted
	return nil
}

// Editable reports whether the auction settings can still change.
func (a *Auction) Editable() error {
	if a.Status != AuctionDraft {
		return dErrors.New(dErrors.CodeInvariantViolation, "only draft auctions can be changed")
	}
	return nil
}

// IsAuthorized reports whether userID may enter the auction room.
func (a *Auction) IsAuthorized(userID id.UserID) bool {
	return slices.Contains(a.AuthorizedManagers, userID)
}

// Redacted returns a copy without the access code, for non-admin callers.
func (a *Auction) Redacted() *Auction {
	out := *a
	out.AccessCode = ""
	return &out
}
