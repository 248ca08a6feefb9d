package models

import (
	"strings"

	id "festdraft/pkg/domain"
	dErrors "festdraft/pkg/domain-errors"
	"festdraft/pkg/validation"
)

const (
	defaultAuctionTimer = 30
	defaultAuctionExtra = 10
	genderTag           = "omitempty,oneof=MALE FEMALE"
	emailTag            = "omitempty,email,max=255"
)

// CreateTeamRequest is the admin payload for POST /teams.
type CreateTeamRequest struct {
	Name    string `json:"name" validate:"required,notblank,max=100"`
	Manager string `json:"manager,omitempty" validate:"max=100"`
	Colour  string `json:"colour,omitempty" validate:"max=50"`
	LogoURL string `json:"logoUrl,omitempty" validate:"max=500"`
}

func (r *CreateTeamRequest) Sanitize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Manager = strings.TrimSpace(r.Manager)
	r.Colour = strings.TrimSpace(r.Colour)
	r.LogoURL = strings.TrimSpace(r.LogoURL)
}

func (r *CreateTeamRequest) Validate() error {
	return validation.Validate(r)
}

// UpdateTeamRequest patches a team; nil fields are left unchanged.
type UpdateTeamRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,notblank,max=100"`
	Manager *string `json:"manager,omitempty" validate:"omitempty,max=100"`
	Colour  *string `json:"colour,omitempty" validate:"omitempty,max=50"`
	LogoURL *string `json:"logoUrl,omitempty" validate:"omitempty,max=500"`
}

func (r *UpdateTeamRequest) Sanitize() {
	trimPtr(r.Name)
	trimPtr(r.Manager)
	trimPtr(r.Colour)
	trimPtr(r.LogoURL)
}

func (r *UpdateTeamRequest) Validate() error {
	return validation.Validate(r)
}

// Apply copies the set fields onto t.
func (r *UpdateTeamRequest) Apply(t *Team) {
	setIf(&t.Name, r.Name)
	setIf(&t.Manager, r.Manager)
	setIf(&t.Colour, r.Colour)
	setIf(&t.LogoURL, r.LogoURL)
}

// SectionRequest creates or renames a section.
type SectionRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

func (r *SectionRequest) Sanitize() { r.Name = strings.TrimSpace(r.Name) }

func (r *SectionRequest) Validate() error { return validation.Validate(r) }

// CreateGroupRequest is the admin payload for POST /groups.
type CreateGroupRequest struct {
	Name      string `json:"name" validate:"required,notblank,max=100"`
	SectionID string `json:"sectionId" validate:"required"`

	sectionID id.SectionID
}

func (r *CreateGroupRequest) Sanitize() {
	r.Name = strings.TrimSpace(r.Name)
	r.SectionID = strings.TrimSpace(r.SectionID)
}

func (r *CreateGroupRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	sectionID, err := id.ParseSectionID(r.SectionID)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "sectionId is invalid")
	}
	r.sectionID = sectionID
	return nil
}

func (r *CreateGroupRequest) ParsedSectionID() id.SectionID { return r.sectionID }

// UpdateGroupRequest renames a group. A group never moves between sections.
type UpdateGroupRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

func (r *UpdateGroupRequest) Sanitize() { r.Name = strings.TrimSpace(r.Name) }

func (r *UpdateGroupRequest) Validate() error { return validation.Validate(r) }

// CreateParticipantRequest is the admin payload for POST /participants.
type CreateParticipantRequest struct {
	Name         string   `json:"name" validate:"required,notblank,max=100"`
	Email        string   `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone        string   `json:"phone,omitempty" validate:"max=30"`
	DOB          string   `json:"dob,omitempty"`
	Gender       string   `json:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE"`
	SectionID    string   `json:"sectionId,omitempty"`
	Skill        string   `json:"skill,omitempty" validate:"max=500"`
	Experience   string   `json:"experience,omitempty" validate:"max=500"`
	Status       string   `json:"status,omitempty" validate:"omitempty,notblank,max=50"`
	AdmNo        string   `json:"admNo,omitempty" validate:"max=50"`
	ChestNo      string   `json:"chestNo,omitempty" validate:"max=50"`
	Avatar       string   `json:"avatar,omitempty" validate:"max=500"`
	Achievements []string `json:"achievements,omitempty" validate:"dive,max=200"`
	IsActive     *bool    `json:"isActive,omitempty"`

	sectionID id.SectionID
}

func (r *CreateParticipantRequest) Sanitize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.DOB = strings.TrimSpace(r.DOB)
	r.SectionID = strings.TrimSpace(r.SectionID)
	r.Skill = strings.TrimSpace(r.Skill)
	r.Experience = strings.TrimSpace(r.Experience)
	r.Status = strings.TrimSpace(r.Status)
	r.AdmNo = strings.TrimSpace(r.AdmNo)
	r.ChestNo = strings.TrimSpace(r.ChestNo)
	r.Avatar = strings.TrimSpace(r.Avatar)
	r.Achievements = compact(r.Achievements)
}

func (r *CreateParticipantRequest) Normalize() {
	r.Email = strings.ToLower(r.Email)
	r.Gender = strings.ToUpper(strings.TrimSpace(r.Gender))
	if r.Status == "" {
		r.Status = StatusAvailable
	}
}

// Validate checks the tagged fields and parses the section id.
func (r *CreateParticipantRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	if r.SectionID != "" {
		sectionID, err := id.ParseSectionID(r.SectionID)
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, "sectionId is invalid")
		}
		r.sectionID = sectionID
	}
	return nil
}

// ParsedSectionID is only meaningful after a successful Validate.
func (r *CreateParticipantRequest) ParsedSectionID() id.SectionID { return r.sectionID }

// BulkCreateParticipantsRequest is the payload for POST /participants/bulk.
type BulkCreateParticipantsRequest struct {
	Participants []*CreateParticipantRequest `json:"participants" validate:"required,min=1,max=500"`
}

// Validate checks the batch size only; entries are validated one by one so
// a bad entry does not reject the batch.
func (r *BulkCreateParticipantsRequest) Validate() error {
	return validation.Validate(r)
}

// BulkError reports why one entry of a bulk request was skipped.
type BulkError struct {
	Index int    `json:"index"`
	Name  string `json:"name,omitempty"`
	Error string `json:"error"`
}

// UpdateParticipantRequest patches a participant; nil fields are left
// unchanged. An empty TeamID unassigns the participant.
type UpdateParticipantRequest struct {
	Name         *string   `json:"name,omitempty" validate:"omitempty,notblank,max=100"`
	Email        *string   `json:"email,omitempty"`
	Phone        *string   `json:"phone,omitempty" validate:"omitempty,max=30"`
	DOB          *string   `json:"dob,omitempty"`
	Gender       *string   `json:"gender,omitempty"`
	SectionID    *string   `json:"sectionId,omitempty"`
	TeamID       *string   `json:"teamId,omitempty"`
	Skill        *string   `json:"skill,omitempty" validate:"omitempty,max=500"`
	Experience   *string   `json:"experience,omitempty" validate:"omitempty,max=500"`
	Status       *string   `json:"status,omitempty" validate:"omitempty,notblank,max=50"`
	AdmNo        *string   `json:"admNo,omitempty" validate:"omitempty,max=50"`
	ChestNo      *string   `json:"chestNo,omitempty" validate:"omitempty,max=50"`
	Avatar       *string   `json:"avatar,omitempty" validate:"omitempty,max=500"`
	Achievements *[]string `json:"achievements,omitempty" validate:"omitempty,dive,max=200"`
	IsActive     *bool     `json:"isActive,omitempty"`

	sectionID id.SectionID
	teamID    id.TeamID
}

func (r *UpdateParticipantRequest) Sanitize() {
	for _, p := range []*string{r.Name, r.Email, r.Phone, r.DOB, r.SectionID, r.TeamID,
		r.Skill, r.Experience, r.Status, r.AdmNo, r.ChestNo, r.Avatar} {
		trimPtr(p)
	}
	if r.Achievements != nil {
		cleaned := compact(*r.Achievements)
		r.Achievements = &cleaned
	}
}

func (r *UpdateParticipantRequest) Normalize() {
	if r.Email != nil {
		*r.Email = strings.ToLower(*r.Email)
	}
	if r.Gender != nil {
		*r.Gender = strings.ToUpper(strings.TrimSpace(*r.Gender))
	}
}

// Validate checks the tagged fields, then email and gender, which may be
// cleared with an empty string, then parses section and team ids.
func (r *UpdateParticipantRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	if r.Email != nil {
		if err := validation.Var("email", *r.Email, emailTag); err != nil {
			return err
		}
	}
	if r.Gender != nil {
		if err := validation.Var("gender", *r.Gender, genderTag); err != nil {
			return err
		}
	}
	if r.SectionID != nil && *r.SectionID != "" {
		sectionID, err := id.ParseSectionID(*r.SectionID)
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, "sectionId is invalid")
		}
		r.sectionID = sectionID
	}
	if r.TeamID != nil && *r.TeamID != "" {
		teamID, err := id.ParseTeamID(*r.TeamID)
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, "teamId is invalid")
		}
		r.teamID = teamID
	}
	return nil
}

// Apply copies every set field except section and team, which the service
// resolves against the stores.
func (r *UpdateParticipantRequest) Apply(p *Participant) {
	setIf(&p.Name, r.Name)
	setIf(&p.Email, r.Email)
	setIf(&p.Phone, r.Phone)
	setIf(&p.DOB, r.DOB)
	setIf(&p.Gender, r.Gender)
	setIf(&p.Skill, r.Skill)
	setIf(&p.Experience, r.Experience)
	setIf(&p.Status, r.Status)
	setIf(&p.AdmNo, r.AdmNo)
	setIf(&p.ChestNo, r.ChestNo)
	setIf(&p.Avatar, r.Avatar)
	if r.Achievements != nil {
		p.Achievements = *r.Achievements
	}
	if r.IsActive != nil {
		p.Active = *r.IsActive
	}
}

func (r *UpdateParticipantRequest) ParsedSectionID() (id.SectionID, bool) {
	return r.sectionID, r.SectionID != nil
}

func (r *UpdateParticipantRequest) ParsedTeamID() (id.TeamID, bool) {
	return r.teamID, r.TeamID != nil
}

// CreateAuctionRequest is the admin payload for POST /auctions.
type CreateAuctionRequest struct {
	Name               string   `json:"name" validate:"required,notblank,max=100"`
	Description        string   `json:"description,omitempty" validate:"max=500"`
	SectionID          string   `json:"sectionId" validate:"required"`
	Timer              int      `json:"timer,omitempty" validate:"min=0,max=3600"`
	ExtraTime          int      `json:"extraTime,omitempty" validate:"min=0,max=3600"`
	FirstTeamsOrder    []string `json:"firstTeamsOrder" validate:"required,min=1,dive,notblank"`
	AuthorizedManagers []string `json:"authorizedManagers,omitempty" validate:"dive,notblank"`

	sectionID id.SectionID
	order     []id.TeamID
	managers  []id.UserID
}

func (r *CreateAuctionRequest) Sanitize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.SectionID = strings.TrimSpace(r.SectionID)
	r.FirstTeamsOrder = compact(r.FirstTeamsOrder)
	r.AuthorizedManagers = compact(r.AuthorizedManagers)
}

func (r *CreateAuctionRequest) Normalize() {
	if r.Timer == 0 {
		r.Timer = defaultAuctionTimer
	}
	if r.ExtraTime == 0 {
		r.ExtraTime = defaultAuctionExtra
	}
}

// Validate checks the tagged fields, then parses the ids and rejects a team
// listed twice in the draft order.
func (r *CreateAuctionRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	sectionID, err := id.ParseSectionID(r.SectionID)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "sectionId is invalid")
	}
	r.sectionID = sectionID
	order, err := parseTeamsOrder(r.FirstTeamsOrder)
	if err != nil {
		return err
	}
	r.order = order
	managers, err := parseManagers(r.AuthorizedManagers)
	if err != nil {
		return err
	}
	r.managers = managers
	return nil
}

func (r *CreateAuctionRequest) ParsedSectionID() id.SectionID { return r.sectionID }
func (r *CreateAuctionRequest) ParsedTeamsOrder() []id.TeamID { return r.order }
func (r *CreateAuctionRequest) ParsedManagers() []id.UserID   { return r.managers }

// UpdateAuctionRequest patches a draft auction; nil fields are left
// unchanged.
type UpdateAuctionRequest struct {
	Name               *string   `json:"name,omitempty" validate:"omitempty,notblank,max=100"`
	Description        *string   `json:"description,omitempty" validate:"omitempty,max=500"`
	SectionID          *string   `json:"sectionId,omitempty" validate:"omitempty,notblank"`
	Timer              *int      `json:"timer,omitempty" validate:"omitempty,min=1,max=3600"`
	ExtraTime          *int      `json:"extraTime,omitempty" validate:"omitempty,min=1,max=3600"`
	FirstTeamsOrder    *[]string `json:"firstTeamsOrder,omitempty" validate:"omitempty,min=1,dive,notblank"`
	AuthorizedManagers *[]string `json:"authorizedManagers,omitempty" validate:"omitempty,dive,notblank"`

	sectionID id.SectionID
	order     []id.TeamID
	managers  []id.UserID
}

func (r *UpdateAuctionRequest) Sanitize() {
	trimPtr(r.Name)
	trimPtr(r.Description)
	trimPtr(r.SectionID)
	if r.FirstTeamsOrder != nil {
		cleaned := compact(*r.FirstTeamsOrder)
		r.FirstTeamsOrder = &cleaned
	}
	if r.AuthorizedManagers != nil {
		cleaned := compact(*r.AuthorizedManagers)
		r.AuthorizedManagers = &cleaned
	}
}

// Validate checks the tagged fields and parses whichever ids were sent.
func (r *UpdateAuctionRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	if r.SectionID != nil {
		sectionID, err := id.ParseSectionID(*r.SectionID)
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, "sectionId is invalid")
		}
		r.sectionID = sectionID
	}
	if r.FirstTeamsOrder != nil {
		order, err := parseTeamsOrder(*r.FirstTeamsOrder)
		if err != nil {
			return err
		}
		r.order = order
	}
	if r.AuthorizedManagers != nil {
		managers, err := parseManagers(*r.AuthorizedManagers)
		if err != nil {
			return err
		}
		r.managers = managers
	}
	return nil
}

// Apply copies the set fields onto a. Ids come from the last Validate.
func (r *UpdateAuctionRequest) Apply(a *Auction) {
	setIf(&a.Name, r.Name)
	setIf(&a.Description, r.Description)
	if r.SectionID != nil {
		a.SectionID = r.sectionID
	}
	if r.Timer != nil {
		a.TimerSeconds = *r.Timer
	}
	if r.ExtraTime != nil {
		a.ExtraTimeSeconds = *r.ExtraTime
	}
	if r.FirstTeamsOrder != nil {
		a.FirstTeamsOrder = r.order
	}
	if r.AuthorizedManagers != nil {
		a.AuthorizedManagers = r.managers
	}
}

// AccessCodeRequest carries the code for start, end and verify-access.
type AccessCodeRequest struct {
	AccessCode string `json:"accessCode" validate:"required,notblank"`
}

func (r *AccessCodeRequest) Normalize() {
	r.AccessCode = strings.ToUpper(strings.TrimSpace(r.AccessCode))
}

func (r *AccessCodeRequest) Validate() error {
	return validation.Validate(r)
}

func parseTeamsOrder(raw []string) ([]id.TeamID, error) {
	order := make([]id.TeamID, 0, len(raw))
	seen := make(map[id.TeamID]struct{}, len(raw))
	for _, s := range raw {
		teamID, err := id.ParseTeamID(s)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "firstTeamsOrder contains an invalid team id")
		}
		if _, dup := seen[teamID]; dup {
			return nil, dErrors.New(dErrors.CodeValidation, "firstTeamsOrder lists a team twice")
		}
		seen[teamID] = struct{}{}
		order = append(order, teamID)
	}
	return order, nil
}

func parseManagers(raw []string) ([]id.UserID, error) {
	managers := make([]id.UserID, 0, len(raw))
	for _, s := range raw {
		userID, err := id.ParseUserID(s)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "authorizedManagers contains an invalid user id")
		}
		managers = append(managers, userID)
	}
	return managers, nil
}

func trimPtr(p *string) {
	if p != nil {
		*p = strings.TrimSpace(*p)
	}
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// compact trims entries and drops empty ones.
func compact(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
