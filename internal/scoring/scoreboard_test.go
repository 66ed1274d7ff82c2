package scoring

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"clubswim/internal/meet/models"
	id "clubswim/pkg/domain"
)

type ScoreboardSuite struct {
	suite.Suite
	group       id.GroupID
	competition models.Competition
}

func TestScoreboardSuite(t *testing.T) {
	suite.Run(t, new(ScoreboardSuite))
}

func (s *ScoreboardSuite) SetupTest() {
	s.group = id.NewGroupID()
	s.competition = newCompetition(models.GenderFemale, models.StrokeFreestyle, 50)
}

func (s *ScoreboardSuite) swimmer() models.Participant {
	return newParticipant(models.GenderFemale, s.group)
}

func (s *ScoreboardSuite) TestRanking() {
	s.Run("ties share a rank and the next time skips the tie", func() {
		regs := []models.CompetitionRegistration{
			competitionEntry(s.swimmer(), result(61000, 400)),
			competitionEntry(s.swimmer(), result(61000, 400)),
			competitionEntry(s.swimmer(), result(62000, 380)),
		}
		board := BuildCompetitionScoreboard(s.competition, regs)

		s.Require().Len(board.Scores, 3)
		s.Equal([]uint32{1, 1, 3}, []uint32{board.Scores[0].Rank, board.Scores[1].Rank, board.Scores[2].Rank})
	})

	s.Run("rank does not depend on input order", func() {
		slow := competitionEntry(s.swimmer(), result(35000, 300))
		fast := competitionEntry(s.swimmer(), result(30000, 600))
		board := BuildCompetitionScoreboard(s.competition, []models.CompetitionRegistration{slow, fast})

		s.Equal(slow.Participant.ID, board.Scores[0].Participant.ID)
		s.Equal(uint32(2), board.Scores[0].Rank)
		s.Equal(uint32(1), board.Scores[1].Rank)
	})
}

func (s *ScoreboardSuite) TestPartitioning() {
	s.Run("every registration lands in exactly one list", func() {
		regs := []models.CompetitionRegistration{
			competitionEntry(s.swimmer(), result(30000, 600)),
			competitionEntry(s.swimmer(), nil),
			competitionEntry(s.swimmer(), disqualified(29000, 650)),
			competitionEntry(s.swimmer(), nil),
			competitionEntry(s.swimmer(), result(31000, 550)),
		}
		board := BuildCompetitionScoreboard(s.competition, regs)

		s.Len(board.Scores, 2)
		s.Len(board.Disqualifications, 1)
		s.Len(board.MissingResults, 2)
		s.Equal(len(regs), len(board.Scores)+len(board.Disqualifications)+len(board.MissingResults))
		s.Equal(regs[1].ID, board.MissingResults[0].ID)
		s.Equal(regs[3].ID, board.MissingResults[1].ID)
	})

	s.Run("disqualified times never affect ranks", func() {
		regs := []models.CompetitionRegistration{
			competitionEntry(s.swimmer(), disqualified(1000, 900)),
			competitionEntry(s.swimmer(), result(30000, 600)),
		}
		board := BuildCompetitionScoreboard(s.competition, regs)
		s.Require().Len(board.Scores, 1)
		s.Equal(uint32(1), board.Scores[0].Rank)
	})

	s.Run("no registrations gives empty lists", func() {
		board := BuildCompetitionScoreboard(s.competition, nil)
		s.Equal(s.competition, board.Competition)
		s.NotNil(board.Scores)
		s.Empty(board.Scores)
		s.NotNil(board.Disqualifications)
		s.Empty(board.Disqualifications)
		s.NotNil(board.MissingResults)
		s.Empty(board.MissingResults)
	})

	s.Run("all disqualified leaves scores empty", func() {
		regs := []models.CompetitionRegistration{
			competitionEntry(s.swimmer(), disqualified(30000, 600)),
			competitionEntry(s.swimmer(), disqualified(31000, 500)),
		}
		board := BuildCompetitionScoreboard(s.competition, regs)
		s.Empty(board.Scores)
		s.Len(board.Disqualifications, 2)
	})
}

func (s *ScoreboardSuite) TestHelpers() {
	s.Run("split keeps order", func() {
		even, odd := Split([]int{1, 2, 3, 4, 5}, func(n int) bool { return n%2 == 0 })
		s.Equal([]int{2, 4}, even)
		s.Equal([]int{1, 3, 5}, odd)
	})

	s.Run("rank mirrors on points", func() {
		s.Equal([]uint32{1, 1, 3}, Rank([]uint32{40, 40, 30}, MorePoints))
		s.Equal([]uint32{3, 1, 1}, Rank([]uint32{30, 40, 40}, MorePoints))
	})

	s.Run("rank of nothing is empty", func() {
		s.Empty(Rank([]uint32{}, MorePoints))
	})
}
