package models

import (
	"fmt"
	"time"

	id "clubswim/pkg/domain"
)

// Group is an age or category cohort. Its scoreboard is always derived from
// the current members and never stored.
type Group struct {
	ID   id.GroupID `json:"id"`
	Name string     `json:"name"`
}

// Participant is a swimmer. Age and ShortCode are derived on read with Derive.
type Participant struct {
	ID        id.ParticipantID `json:"id"`
	ShortID   int              `json:"-"`
	ShortCode string           `json:"short_code"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Gender    Gender           `json:"gender"`
	Birthday  Date             `json:"birthday"`
	Age       uint32           `json:"age"`
	GroupID   id.GroupID       `json:"group_id"`
}

// Derive fills the fields computed from stored data: the zero-padded short
// code and the age relative to now.
func (p Participant) Derive(now time.Time) Participant {
	p.ShortCode = fmt.Sprintf("%04d", p.ShortID)
	p.Age = p.Birthday.YearsUntil(now)
	return p
}

// Competition is one race format. (Gender, Stroke, Distance) is unique.
type Competition struct {
	ID         id.CompetitionID `json:"id"`
	Gender     Gender           `json:"gender"`
	Stroke     Stroke           `json:"stroke"`
	Distance   uint32           `json:"distance"`
	TargetTime uint32           `json:"target_time"`
}

// SameFormat reports whether c is held for the same gender, stroke and distance.
func (c Competition) SameFormat(gender Gender, stroke Stroke, distance uint32) bool {
	return c.Gender == gender && c.Stroke == stroke && c.Distance == distance
}

// Registration pairs a participant with a competition. At most one per pair.
type Registration struct {
	ID            id.RegistrationID `json:"id"`
	ParticipantID id.ParticipantID  `json:"participant_id"`
	CompetitionID id.CompetitionID  `json:"competition_id"`
}

// RegistrationResult is the raced outcome of a registration. FinaPoints arrive
// precomputed.
type RegistrationResult struct {
	Disqualified bool   `json:"disqualified"`
	TimeMillis   uint32 `json:"time_millis"`
	FinaPoints   uint32 `json:"fina_points"`
}
