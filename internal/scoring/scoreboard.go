package scoring

import "clubswim/internal/meet/models"

// BuildCompetitionScoreboard ranks the qualified results of a competition by
// time. Disqualified and missing results are passed through in input order
// without a rank.
func BuildCompetitionScoreboard(competition models.Competition, registrations []models.CompetitionRegistration) models.CompetitionScoreboard {
	parts := PartitionByResult(registrations)

	ranks := Rank(parts.Qualified, func(a, b models.CompetitionRegistration) bool {
		return Faster(*a.Result, *b.Result)
	})

	scores := make([]models.CompetitionScore, len(parts.Qualified))
	for i, r := range parts.Qualified {
		scores[i] = models.CompetitionScore{
			Participant: r.Participant,
			Result:      *r.Result,
			Rank:        ranks[i],
		}
	}

	return models.CompetitionScoreboard{
		Competition:       competition,
		Scores:            scores,
		Disqualifications: parts.Disqualified,
		MissingResults:    parts.MissingResults,
	}
}

// ScoreOf returns the participant's line of the scoreboard.
func ScoreOf(board models.CompetitionScoreboard, participant models.Participant) (models.CompetitionScore, bool) {
	for _, s := range board.Scores {
		if s.Participant.ID == participant.ID {
			return s, true
		}
	}
	return models.CompetitionScore{}, false
}
