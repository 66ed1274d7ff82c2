package participant

import (
	"context"
	"testing"
	"time"

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

func newTestParticipant(group id.GroupID, first string) *models.Participant {
	return &models.Participant{
		ID:        id.NewParticipantID(),
		FirstName: first,
		LastName:  "Berg",
		Gender:    models.GenderFemale,
		Birthday:  models.NewDate(2011, time.March, 9),
		GroupID:   group,
	}
}

func (s *InMemorySuite) TestCreateAssignsSequentialShortIDs() {
	group := id.NewGroupID()
	first := newTestParticipant(group, "Ada")
	second := newTestParticipant(group, "Bea")

	s.Require().NoError(s.store.Create(s.ctx, first))
	s.Require().NoError(s.store.Create(s.ctx, second))

	s.Equal(1, first.ShortID)
	s.Equal(2, second.ShortID)

	found, err := s.store.FindByID(s.ctx, second.ID)
	s.Require().NoError(err)
	s.Equal(*second, *found)
}

func (s *InMemorySuite) TestCreateRejectsDuplicateID() {
	p := newTestParticipant(id.NewGroupID(), "Ada")
	s.Require().NoError(s.store.Create(s.ctx, p))

	err := s.store.Create(s.ctx, p)
	s.ErrorIs(err, sentinel.ErrConflict)
}

func (s *InMemorySuite) TestListKeepsCreationOrder() {
	groupA, groupB := id.NewGroupID(), id.NewGroupID()
	a := newTestParticipant(groupA, "Ada")
	b := newTestParticipant(groupB, "Bea")
	c := newTestParticipant(groupA, "Cid")
	for _, p := range []*models.Participant{a, b, c} {
		s.Require().NoError(s.store.Create(s.ctx, p))
	}

	all, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal([]string{"Ada", "Bea", "Cid"}, []string{all[0].FirstName, all[1].FirstName, all[2].FirstName})

	inA, err := s.store.ListByGroup(s.ctx, groupA)
	s.Require().NoError(err)
	s.Require().Len(inA, 2)
	s.Equal(a.ID, inA[0].ID)
	s.Equal(c.ID, inA[1].ID)

	none, err := s.store.ListByGroup(s.ctx, id.NewGroupID())
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *InMemorySuite) TestDelete() {
	p := newTestParticipant(id.NewGroupID(), "Ada")
	s.Require().NoError(s.store.Create(s.ctx, p))

	s.Run("removes the participant", func() {
		s.Require().NoError(s.store.Delete(s.ctx, p.ID))
		_, err := s.store.FindByID(s.ctx, p.ID)
		s.ErrorIs(err, sentinel.ErrNotFound)

		all, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Empty(all)
	})

	s.Run("second delete reports not found", func() {
		s.ErrorIs(s.store.Delete(s.ctx, p.ID), sentinel.ErrNotFound)
	})
}
