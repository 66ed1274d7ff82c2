//go:build integration

package participant_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"clubswim/internal/meet/models"
	"clubswim/internal/meet/store/group"
	"clubswim/internal/meet/store/participant"
	id "clubswim/pkg/domain"
	"clubswim/pkg/platform/sentinel"
	"clubswim/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *participant.PostgresStore
	groups   *group.PostgresStore
	group    models.Group
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = participant.NewPostgres(s.postgres.DB)
	s.groups = group.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	// Truncate in dependency order
	err := s.postgres.TruncateTables(ctx, "registration_results", "registrations", "participants", "competitions", "groups")
	s.Require().NoError(err)

	s.group = models.Group{ID: id.NewGroupID(), Name: "Juniors"}
	s.Require().NoError(s.groups.Create(ctx, &s.group))
}

func (s *PostgresStoreSuite) newParticipant(first string) *models.Participant {
	return &models.Participant{
		ID:        id.NewParticipantID(),
		FirstName: first,
		LastName:  "Berg",
		Gender:    models.GenderMale,
		Birthday:  models.NewDate(2010, time.July, 21),
		GroupID:   s.group.ID,
	}
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	p := s.newParticipant("Ole")

	s.Require().NoError(s.store.Create(ctx, p))
	s.Positive(p.ShortID)

	found, err := s.store.FindByID(ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(p.ShortID, found.ShortID)
	s.Equal("Ole", found.FirstName)
	s.Equal(models.GenderMale, found.Gender)
	s.Equal(p.Birthday.String(), found.Birthday.String())
	s.Equal(s.group.ID, found.GroupID)
}

func (s *PostgresStoreSuite) TestCreateWithUnknownGroup() {
	p := s.newParticipant("Ole")
	p.GroupID = id.NewGroupID()

	err := s.store.Create(context.Background(), p)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListOrdersByShortID() {
	ctx := context.Background()
	first := s.newParticipant("Ada")
	second := s.newParticipant("Bea")
	s.Require().NoError(s.store.Create(ctx, first))
	s.Require().NoError(s.store.Create(ctx, second))

	all, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(first.ID, all[0].ID)
	s.Equal(second.ID, all[1].ID)

	members, err := s.store.ListByGroup(ctx, s.group.ID)
	s.Require().NoError(err)
	s.Len(members, 2)
}

func (s *PostgresStoreSuite) TestDelete() {
	ctx := context.Background()
	p := s.newParticipant("Ada")
	s.Require().NoError(s.store.Create(ctx, p))

	s.Require().NoError(s.store.Delete(ctx, p.ID))
	_, err := s.store.FindByID(ctx, p.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.Delete(ctx, p.ID), sentinel.ErrNotFound)
}
