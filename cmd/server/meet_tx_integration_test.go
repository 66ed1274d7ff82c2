//go:build integration

package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"clubswim/internal/meet/models"
	"clubswim/internal/meet/store/group"
	id "clubswim/pkg/domain"
	dErrors "clubswim/pkg/domain-errors"
	"clubswim/pkg/platform/sentinel"
	"clubswim/pkg/testutil/containers"
)

type MeetTxSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	groups   *group.PostgresStore
	tx       *meetPostgresTx
}

func TestMeetTxSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(MeetTxSuite))
}

func (s *MeetTxSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.groups = group.NewPostgres(s.postgres.DB)
	s.tx = newMeetPostgresTx(s.postgres.DB)
}

func (s *MeetTxSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(),
		"registration_results", "registrations", "participants", "competitions", "groups")
	s.Require().NoError(err)
}

func (s *MeetTxSuite) TestCommit() {
	ctx := context.Background()
	g := models.Group{ID: id.NewGroupID(), Name: "Masters"}

	s.Require().NoError(s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.groups.Create(ctx, &g)
	}))

	found, err := s.groups.FindByID(ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(g, *found)
}

func (s *MeetTxSuite) TestRuleErrorRollsBackAndKeepsItsCode() {
	ctx := context.Background()
	g := models.Group{ID: id.NewGroupID(), Name: "Masters"}
	rejected := dErrors.New(dErrors.CodeConflict, "rejected")

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.groups.Create(ctx, &g); err != nil {
			return err
		}
		return rejected
	})
	s.True(errors.Is(err, rejected))
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	_, err = s.groups.FindByID(ctx, g.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MeetTxSuite) TestCancelledContextNeverBegins() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.tx.RunInTx(ctx, func(context.Context) error {
		s.Fail("fn must not run")
		return nil
	})
	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
}
