package models

import (
	id "clubswim/pkg/domain"
)

// ParticipantRegistration is a registration seen from its participant.
type ParticipantRegistration struct {
	ID          id.RegistrationID   `json:"id"`
	Competition Competition         `json:"competition"`
	Result      *RegistrationResult `json:"result"`
}

func (r ParticipantRegistration) RegistrationResult() *RegistrationResult { return r.Result }

// CompetitionRegistration is a registration seen from its competition.
type CompetitionRegistration struct {
	ID          id.RegistrationID   `json:"id"`
	Participant Participant         `json:"participant"`
	Result      *RegistrationResult `json:"result"`
}

func (r CompetitionRegistration) RegistrationResult() *RegistrationResult { return r.Result }

// RegistrationDetails is a fully resolved registration.
type RegistrationDetails struct {
	ID          id.RegistrationID   `json:"id"`
	Participant Participant         `json:"participant"`
	Competition Competition         `json:"competition"`
	Result      *RegistrationResult `json:"result"`
}

type ParticipantDetails struct {
	Participant
	Group         Group                     `json:"group"`
	Registrations []ParticipantRegistration `json:"registrations"`
}

// ResultsMissing reports whether any registration still waits for a result.
func (d ParticipantDetails) ResultsMissing() bool {
	for _, r := range d.Registrations {
		if r.Result == nil {
			return true
		}
	}
	return false
}

type CompetitionDetails struct {
	Competition
	ResultsPending bool                      `json:"results_pending"`
	Registrations  []CompetitionRegistration `json:"registrations"`
}

// CompetitionScore is a qualified result with its rank.
type CompetitionScore struct {
	Participant Participant        `json:"participant"`
	Result      RegistrationResult `json:"result"`
	Rank        uint32             `json:"rank"`
}

type CompetitionScoreboard struct {
	Competition       Competition               `json:"competition"`
	Scores            []CompetitionScore        `json:"scores"`
	Disqualifications []CompetitionRegistration `json:"disqualifications"`
	MissingResults    []CompetitionRegistration `json:"missing_results"`
}

// GroupScore is a member's FINA total and rank inside the group.
type GroupScore struct {
	Participant Participant `json:"participant"`
	FinaPoints  uint32      `json:"fina_points"`
	Rank        uint32      `json:"rank"`
}

type GroupScoreboard struct {
	Group          Group                 `json:"group"`
	Scores         []GroupScore          `json:"scores"`
	MissingResults []RegistrationDetails `json:"missing_results"`
}

// GroupDetails is the group overview: the same standings as the scoreboard,
// derived from the meet-wide FINA point totals.
type GroupDetails struct {
	Group          Group                 `json:"group"`
	Scores         []GroupScore          `json:"scores"`
	MissingResults []RegistrationDetails `json:"missing_results"`
}

// ParticipantCompetitionScore is the participant's own line of a competition
// scoreboard.
type ParticipantCompetitionScore struct {
	Competition Competition `json:"competition"`
	TimeMillis  uint32      `json:"time_millis"`
	FinaPoints  uint32      `json:"fina_points"`
	Rank        uint32      `json:"rank"`
}

type ParticipantGroupScore struct {
	Group      Group  `json:"group"`
	FinaPoints uint32 `json:"fina_points"`
	Rank       uint32 `json:"rank"`
}

type ParticipantScoreboard struct {
	Participant       Participant                   `json:"participant"`
	CompetitionScores []ParticipantCompetitionScore `json:"competition_scores"`
	GroupScore        ParticipantGroupScore         `json:"group_score"`
	Disqualifications []ParticipantRegistration     `json:"disqualifications"`
	MissingResults    []ParticipantRegistration     `json:"missing_results"`
}

// ParticipantFinaPoints is one participant's meet-wide point total.
type ParticipantFinaPoints struct {
	ParticipantID  id.ParticipantID `json:"participant_id"`
	ResultsMissing bool             `json:"results_missing"`
	FinaPoints     uint32           `json:"fina_points"`
}
