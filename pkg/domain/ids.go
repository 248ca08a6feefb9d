// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"strconv"

	"github.com/google/uuid"

	dErrors "festdraft/pkg/domain-errors"
)

// Account identifiers are UUIDs.
type (
	UserID    uuid.UUID
	SessionID uuid.UUID
)

// Roster identifiers are snowflake-generated integers. They travel as
// decimal strings on the wire so JavaScript clients keep full precision.
type (
	TeamID        int64
	SectionID     int64
	ParticipantID int64
	AuctionID     int64
	GroupID       int64
)

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseUserID(s string) (UserID, error) {
	id, err := parseUUID(s, "user ID")
	return UserID(id), err
}

func ParseSessionID(s string) (SessionID, error) {
	id, err := parseUUID(s, "session ID")
	return SessionID(id), err
}

func ParseTeamID(s string) (TeamID, error) {
	id, err := parseInt(s, "team ID")
	return TeamID(id), err
}

func ParseSectionID(s string) (SectionID, error) {
	id, err := parseInt(s, "section ID")
	return SectionID(id), err
}

func ParseParticipantID(s string) (ParticipantID, error) {
	id, err := parseInt(s, "participant ID")
	return ParticipantID(id), err
}

func ParseAuctionID(s string) (AuctionID, error) {
	id, err := parseInt(s, "auction ID")
	return AuctionID(id), err
}

func ParseGroupID(s string) (GroupID, error) {
	id, err := parseInt(s, "group ID")
	return GroupID(id), err
}

func (id UserID) String() string        { return uuid.UUID(id).String() }
func (id SessionID) String() string     { return uuid.UUID(id).String() }
func (id TeamID) String() string        { return strconv.FormatInt(int64(id), 10) }
func (id SectionID) String() string     { return strconv.FormatInt(int64(id), 10) }
func (id ParticipantID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id AuctionID) String() string     { return strconv.FormatInt(int64(id), 10) }
func (id GroupID) String() string       { return strconv.FormatInt(int64(id), 10) }

func (id UserID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id TeamID) IsNil() bool        { return id == 0 }
func (id SectionID) IsNil() bool     { return id == 0 }
func (id ParticipantID) IsNil() bool { return id == 0 }
func (id AuctionID) IsNil() bool     { return id == 0 }
func (id GroupID) IsNil() bool       { return id == 0 }

// Text encoding keeps JSON bodies and map keys readable.

func (id UserID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id SessionID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(b []byte) error {
	parsed, err := ParseUserID(string(b))
	*id = parsed
	return err
}

func (id *SessionID) UnmarshalText(b []byte) error {
	parsed, err := ParseSessionID(string(b))
	*id = parsed
	return err
}

func (id TeamID) MarshalText() ([]byte, error)        { return []byte(id.String()), nil }
func (id SectionID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id ParticipantID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id AuctionID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id GroupID) MarshalText() ([]byte, error)       { return []byte(id.String()), nil }

func (id *TeamID) UnmarshalText(b []byte) error {
	parsed, err := ParseTeamID(string(b))
	*id = parsed
	return err
}

func (id *SectionID) UnmarshalText(b []byte) error {
	parsed, err := ParseSectionID(string(b))
	*id = parsed
	return err
}

func (id *ParticipantID) UnmarshalText(b []byte) error {
	parsed, err := ParseParticipantID(string(b))
	*id = parsed
	return err
}

func (id *AuctionID) UnmarshalText(b []byte) error {
	parsed, err := ParseAuctionID(string(b))
	*id = parsed
	return err
}

func (id *GroupID) UnmarshalText(b []byte) error {
	parsed, err := ParseGroupID(string(b))
	*id = parsed
	return err
}

// parseUUID is the shared validation logic for account identifiers.
// Nil UUIDs are allowed here; services check IsNil so stores can report
// "not found" consistently.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	return id, nil
}

func parseInt(s, label string) (int64, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	return id, nil
}
