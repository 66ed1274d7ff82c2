// Package domain holds typed identifiers for meet entities.
//
// Each entity gets its own UUID-backed type so a participant id can never be
// passed where a competition id is expected. Parse* functions are the trust
// boundary for ids coming from URLs and request bodies.
package domain

import (
	"github.com/google/uuid"

	dErrors "clubswim/pkg/domain-errors"
)

type (
	ParticipantID  uuid.UUID
	CompetitionID  uuid.UUID
	RegistrationID uuid.UUID
	GroupID        uuid.UUID
)

func NewParticipantID() ParticipantID   { return ParticipantID(uuid.New()) }
func NewCompetitionID() CompetitionID   { return CompetitionID(uuid.New()) }
func NewRegistrationID() RegistrationID { return RegistrationID(uuid.New()) }
func NewGroupID() GroupID               { return GroupID(uuid.New()) }

func (id ParticipantID) String() string  { return uuid.UUID(id).String() }
func (id CompetitionID) String() string  { return uuid.UUID(id).String() }
func (id RegistrationID) String() string { return uuid.UUID(id).String() }
func (id GroupID) String() string        { return uuid.UUID(id).String() }

func (id ParticipantID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id CompetitionID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id RegistrationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id GroupID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }

func (id ParticipantID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id CompetitionID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id RegistrationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id GroupID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }

func (id *ParticipantID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *CompetitionID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *RegistrationID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *GroupID) UnmarshalText(b []byte) error        { return (*uuid.UUID)(id).UnmarshalText(b) }

// ParseParticipantID parses a non-nil participant id.
func ParseParticipantID(s string) (ParticipantID, error) {
	u, err := parseUUID(s, "participant")
	return ParticipantID(u), err
}

// ParseCompetitionID parses a non-nil competition id.
func ParseCompetitionID(s string) (CompetitionID, error) {
	u, err := parseUUID(s, "competition")
	return CompetitionID(u), err
}

// ParseRegistrationID parses a non-nil registration id.
func ParseRegistrationID(s string) (RegistrationID, error) {
	u, err := parseUUID(s, "registration")
	return RegistrationID(u), err
}

// ParseGroupID parses a non-nil group id.
func ParseGroupID(s string) (GroupID, error) {
	u, err := parseUUID(s, "group")
	return GroupID(u), err
}

func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, kind+" id is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid "+kind+" id")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, kind+" id must not be nil")
	}
	return u, nil
}
