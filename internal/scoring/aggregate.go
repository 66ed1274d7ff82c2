package scoring

import (
	"fmt"
	"math"

	"clubswim/internal/meet/models"
	id "clubswim/pkg/domain"
)

// ParticipantFinaPoints sums the FINA points of every result that is not
// disqualified. Missing and disqualified results add nothing. A total that
// does not fit in uint32 is ErrPointsOverflow.
func ParticipantFinaPoints(details models.ParticipantDetails) (uint32, error) {
	var total uint64
	for _, r := range details.Registrations {
		if r.Result != nil && !r.Result.Disqualified {
			total += uint64(r.Result.FinaPoints)
		}
	}
	if total > math.MaxUint32 {
		return 0, fmt.Errorf("participant %s totals %d points: %w", details.ID, total, ErrPointsOverflow)
	}
	return uint32(total), nil
}

// BuildGroupScoreboard ranks every member of a group by FINA points (higher
// is better) and collects all registrations still waiting for a result.
// Every member gets exactly one score, zero points included.
func BuildGroupScoreboard(group models.Group, members []models.ParticipantDetails) (models.GroupScoreboard, error) {
	points := make([]uint32, len(members))
	missing := make([]models.RegistrationDetails, 0)
	for i, m := range members {
		if m.GroupID != group.ID {
			return models.GroupScoreboard{}, Inconsistent(fmt.Sprintf(
				"participant %s belongs to group %s, not %s", m.ID, m.GroupID, group.ID))
		}
		total, err := ParticipantFinaPoints(m)
		if err != nil {
			return models.GroupScoreboard{}, err
		}
		points[i] = total
		missing = append(missing, missingResultsOf(m)...)
	}

	ranks := Rank(points, MorePoints)
	scores := make([]models.GroupScore, len(members))
	for i, m := range members {
		scores[i] = models.GroupScore{
			Participant: m.Participant,
			FinaPoints:  points[i],
			Rank:        ranks[i],
		}
	}

	return models.GroupScoreboard{
		Group:          group,
		Scores:         scores,
		MissingResults: missing,
	}, nil
}

// BuildGroupDetails ranks the members of a group from meet-wide point totals.
// totals may cover other groups; every member must have exactly one entry.
func BuildGroupDetails(group models.Group, members []models.ParticipantDetails, totals []models.ParticipantFinaPoints) (models.GroupDetails, error) {
	isMember := make(map[id.ParticipantID]bool, len(members))
	for _, m := range members {
		isMember[m.ID] = true
	}
	byID := make(map[id.ParticipantID]models.ParticipantFinaPoints, len(members))
	for _, t := range totals {
		if isMember[t.ParticipantID] {
			byID[t.ParticipantID] = t
		}
	}
	if len(byID) != len(members) {
		return models.GroupDetails{}, Inconsistent(fmt.Sprintf(
			"group %s has %d members but %d point totals", group.ID, len(members), len(byID)))
	}

	points := make([]uint32, len(members))
	missing := make([]models.RegistrationDetails, 0)
	for i, m := range members {
		points[i] = byID[m.ID].FinaPoints
		missing = append(missing, missingResultsOf(m)...)
	}

	ranks := Rank(points, MorePoints)
	scores := make([]models.GroupScore, len(members))
	for i, m := range members {
		scores[i] = models.GroupScore{Participant: m.Participant, FinaPoints: points[i], Rank: ranks[i]}
	}
	return models.GroupDetails{Group: group, Scores: scores, MissingResults: missing}, nil
}

func missingResultsOf(m models.ParticipantDetails) []models.RegistrationDetails {
	var out []models.RegistrationDetails
	for _, r := range m.Registrations {
		if r.Result == nil {
			out = append(out, models.RegistrationDetails{
				ID:          r.ID,
				Participant: m.Participant,
				Competition: r.Competition,
			})
		}
	}
	return out
}

// CompetitionScoreboardLookup resolves the scoreboard of a competition.
type CompetitionScoreboardLookup func(competitionID id.CompetitionID) (models.CompetitionScoreboard, error)

// BuildParticipantScoreboard combines a participant's own lines from every
// competition scoreboard they qualified in with their group standing. A
// qualified result missing from its competition scoreboard, or a participant
// missing from the group scoreboard, is an inconsistency and aborts the build.
func BuildParticipantScoreboard(
	details models.ParticipantDetails,
	group models.GroupScoreboard,
	lookup CompetitionScoreboardLookup,
) (models.ParticipantScoreboard, error) {
	parts := PartitionByResult(details.Registrations)

	competitionScores := make([]models.ParticipantCompetitionScore, 0, len(parts.Qualified))
	for _, r := range parts.Qualified {
		board, err := lookup(r.Competition.ID)
		if err != nil {
			return models.ParticipantScoreboard{}, err
		}
		score, ok := ScoreOf(board, details.Participant)
		if !ok {
			return models.ParticipantScoreboard{}, Inconsistent(fmt.Sprintf(
				"scoreboard of competition %s has no score for participant %s despite a result",
				r.Competition.ID, details.ID))
		}
		competitionScores = append(competitionScores, models.ParticipantCompetitionScore{
			Competition: r.Competition,
			TimeMillis:  score.Result.TimeMillis,
			FinaPoints:  score.Result.FinaPoints,
			Rank:        score.Rank,
		})
	}

	groupScore, ok := groupScoreOf(group, details.ID)
	if !ok {
		return models.ParticipantScoreboard{}, Inconsistent(fmt.Sprintf(
			"scoreboard of group %s has no score for participant %s", group.Group.ID, details.ID))
	}

	return models.ParticipantScoreboard{
		Participant:       details.Participant,
		CompetitionScores: competitionScores,
		GroupScore: models.ParticipantGroupScore{
			Group:      group.Group,
			FinaPoints: groupScore.FinaPoints,
			Rank:       groupScore.Rank,
		},
		Disqualifications: parts.Disqualified,
		MissingResults:    parts.MissingResults,
	}, nil
}

func groupScoreOf(board models.GroupScoreboard, participantID id.ParticipantID) (models.GroupScore, bool) {
	for _, s := range board.Scores {
		if s.Participant.ID == participantID {
			return s, true
		}
	}
	return models.GroupScore{}, false
}
