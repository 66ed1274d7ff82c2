package registration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"clubswim/internal/meet/models"
	id "clubswim/pkg/domain"
	"clubswim/pkg/platform/sentinel"
)

type InMemorySuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *InMemorySuite) TestCreateIsIdempotentPerPair() {
	pid, cid := id.NewParticipantID(), id.NewCompetitionID()

	first, err := s.store.Create(s.ctx, pid, cid)
	s.Require().NoError(err)
	again, err := s.store.Create(s.ctx, pid, cid)
	s.Require().NoError(err)
	s.Equal(first, again)

	regs, err := s.store.ListByParticipant(s.ctx, pid)
	s.Require().NoError(err)
	s.Len(regs, 1)

	other, err := s.store.Create(s.ctx, pid, id.NewCompetitionID())
	s.Require().NoError(err)
	s.NotEqual(first, other)
}

func (s *InMemorySuite) TestListings() {
	alice, bob := id.NewParticipantID(), id.NewParticipantID()
	free, back := id.NewCompetitionID(), id.NewCompetitionID()

	r1, _ := s.store.Create(s.ctx, alice, free)
	r2, _ := s.store.Create(s.ctx, bob, free)
	r3, _ := s.store.Create(s.ctx, alice, back)

	byAlice, err := s.store.ListByParticipant(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal([]id.RegistrationID{r1, r3}, registrationIDs(byAlice))

	byFree, err := s.store.ListByCompetition(s.ctx, free)
	s.Require().NoError(err)
	s.Equal([]id.RegistrationID{r1, r2}, registrationIDs(byFree))

	found, err := s.store.FindByID(s.ctx, r2)
	s.Require().NoError(err)
	s.Equal(bob, found.ParticipantID)
	s.Equal(free, found.CompetitionID)
}

func (s *InMemorySuite) TestResults() {
	rid, err := s.store.Create(s.ctx, id.NewParticipantID(), id.NewCompetitionID())
	s.Require().NoError(err)
	result := models.RegistrationResult{TimeMillis: 31250, FinaPoints: 412}

	s.Run("no result yet", func() {
		_, err := s.store.FindResult(s.ctx, rid)
		s.ErrorIs(err, sentinel.ErrNotFound)
		s.ErrorIs(s.store.DeleteResult(s.ctx, rid), sentinel.ErrNotFound)
	})

	s.Run("record once", func() {
		s.Require().NoError(s.store.CreateResult(s.ctx, rid, result))
		s.ErrorIs(s.store.CreateResult(s.ctx, rid, result), sentinel.ErrConflict)

		found, err := s.store.FindResult(s.ctx, rid)
		s.Require().NoError(err)
		s.Equal(result, *found)
	})

	s.Run("registration with result cannot be deleted", func() {
		s.ErrorIs(s.store.Delete(s.ctx, rid), sentinel.ErrConflict)
	})

	s.Run("batch lookup skips ids without results", func() {
		bare, err := s.store.Create(s.ctx, id.NewParticipantID(), id.NewCompetitionID())
		s.Require().NoError(err)

		results, err := s.store.FindResults(s.ctx, []id.RegistrationID{rid, bare})
		s.Require().NoError(err)
		s.Equal(map[id.RegistrationID]models.RegistrationResult{rid: result}, results)
	})

	s.Run("remove result then registration", func() {
		s.Require().NoError(s.store.DeleteResult(s.ctx, rid))
		s.Require().NoError(s.store.Delete(s.ctx, rid))
		_, err := s.store.FindByID(s.ctx, rid)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("result for unknown registration", func() {
		s.ErrorIs(s.store.CreateResult(s.ctx, id.NewRegistrationID(), result), sentinel.ErrNotFound)
	})
}

func (s *InMemorySuite) TestDeleteFreesThePair() {
	pid, cid := id.NewParticipantID(), id.NewCompetitionID()
	first, err := s.store.Create(s.ctx, pid, cid)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Delete(s.ctx, first))
	s.ErrorIs(s.store.Delete(s.ctx, first), sentinel.ErrNotFound)

	second, err := s.store.Create(s.ctx, pid, cid)
	s.Require().NoError(err)
	s.NotEqual(first, second)
}

func registrationIDs(regs []models.Registration) []id.RegistrationID {
	out := make([]id.RegistrationID, len(regs))
	for i, r := range regs {
		out[i] = r.ID
	}
	return out
}
