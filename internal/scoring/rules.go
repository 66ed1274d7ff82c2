package scoring

import "clubswim/internal/meet/models"

// distanceUnit is the pool length every distance must be a multiple of.
const distanceUnit = 25

// CanRegister decides whether participant may register for competition given
// the participant's existing registrations. Only gender and duplicates gate
// registration; age and group do not.
func CanRegister(participant models.Participant, competition models.Competition, existing []models.Registration) error {
	if participant.Gender != competition.Gender {
		return ErrNotEligible
	}
	for _, r := range existing {
		if r.CompetitionID == competition.ID {
			return ErrAlreadyRegistered
		}
	}
	return nil
}

// ValidateNewCompetition checks a competition before it is created. The id is
// allocated by the store, not here.
func ValidateNewCompetition(distance uint32, gender models.Gender, stroke models.Stroke, existing []models.Competition) error {
	if distance == 0 || distance%distanceUnit != 0 {
		return ErrInvalidDistance
	}
	for _, c := range existing {
		if c.SameFormat(gender, stroke, distance) {
			return ErrSameCompetitionExists
		}
	}
	return nil
}
