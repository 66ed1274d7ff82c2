package scoring

import (
	"time"

	"clubswim/internal/meet/models"
	id "clubswim/pkg/domain"
)

func newParticipant(gender models.Gender, group id.GroupID) models.Participant {
	return models.Participant{
		ID:        id.NewParticipantID(),
		FirstName: "Mia",
		LastName:  "Lind",
		Gender:    gender,
		Birthday:  models.NewDate(2012, time.May, 4),
		GroupID:   group,
	}
}

func newCompetition(gender models.Gender, stroke models.Stroke, distance uint32) models.Competition {
	return models.Competition{
		ID:         id.NewCompetitionID(),
		Gender:     gender,
		Stroke:     stroke,
		Distance:   distance,
		TargetTime: 40000,
	}
}

func result(timeMillis, points uint32) *models.RegistrationResult {
	return &models.RegistrationResult{TimeMillis: timeMillis, FinaPoints: points}
}

func disqualified(timeMillis, points uint32) *models.RegistrationResult {
	return &models.RegistrationResult{Disqualified: true, TimeMillis: timeMillis, FinaPoints: points}
}

func competitionEntry(p models.Participant, r *models.RegistrationResult) models.CompetitionRegistration {
	return models.CompetitionRegistration{ID: id.NewRegistrationID(), Participant: p, Result: r}
}

func participantEntry(c models.Competition, r *models.RegistrationResult) models.ParticipantRegistration {
	return models.ParticipantRegistration{ID: id.NewRegistrationID(), Competition: c, Result: r}
}
