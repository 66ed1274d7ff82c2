package group

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
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.store = NewInMemory()
}

func (s *InMemorySuite) TestCreateFindList() {
	ctx := context.Background()
	seniors := &models.Group{ID: id.NewGroupID(), Name: "Seniors"}
	juniors := &models.Group{ID: id.NewGroupID(), Name: "Juniors"}
	s.Require().NoError(s.store.Create(ctx, seniors))
	s.Require().NoError(s.store.Create(ctx, juniors))

	found, err := s.store.FindByID(ctx, juniors.ID)
	s.Require().NoError(err)
	s.Equal(*juniors, *found)

	all, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Equal([]models.Group{*juniors, *seniors}, all)

	s.Run("duplicate id conflicts", func() {
		s.ErrorIs(s.store.Create(ctx, juniors), sentinel.ErrConflict)
	})

	s.Run("unknown id is not found", func() {
		_, err := s.store.FindByID(ctx, id.NewGroupID())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}
