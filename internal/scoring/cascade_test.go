package scoring

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"clubswim/internal/meet/models"
	id "clubswim/pkg/domain"
)

type CascadeSuite struct {
	suite.Suite
}

func TestCascadeSuite(t *testing.T) {
	suite.Run(t, new(CascadeSuite))
}

func (s *CascadeSuite) TestPlanDeletion() {
	regs := []models.Registration{
		{ID: id.NewRegistrationID()},
		{ID: id.NewRegistrationID()},
	}

	s.Run("refuses without force while dependents exist", func() {
		_, err := PlanDeletion(regs, false)
		s.ErrorIs(err, ErrHasDependents)
	})

	s.Run("owner-only plan without dependents", func() {
		for _, force := range []bool{false, true} {
			plan, err := PlanDeletion(nil, force)
			s.Require().NoError(err)
			s.Equal([]DeletionStep{{Kind: StepDeleteOwner}}, plan.Steps)
		}
	})

	s.Run("forced plan deletes results, then registrations, then owner", func() {
		plan, err := PlanDeletion(regs, true)
		s.Require().NoError(err)
		s.Equal([]DeletionStep{
			{Kind: StepDeleteResult, RegistrationID: regs[0].ID},
			{Kind: StepDeleteResult, RegistrationID: regs[1].ID},
			{Kind: StepDeleteRegistration, RegistrationID: regs[0].ID},
			{Kind: StepDeleteRegistration, RegistrationID: regs[1].ID},
			{Kind: StepDeleteOwner},
		}, plan.Steps)
	})

	s.Run("owner-specific errors still match the generic one", func() {
		s.ErrorIs(ErrParticipantHasRegistrations, ErrHasDependents)
		s.ErrorIs(ErrCompetitionHasRegistrations, ErrHasDependents)
	})
}

func (s *CascadeSuite) TestResultLifecycle() {
	s.Run("records once", func() {
		state, err := NoResult.Record()
		s.Require().NoError(err)
		s.Equal(Recorded, state)

		_, err = state.Record()
		s.ErrorIs(err, ErrResultAlreadyExists)
	})

	s.Run("removes only recorded results", func() {
		state, err := Recorded.Remove()
		s.Require().NoError(err)
		s.Equal(NoResult, state)

		_, err = state.Remove()
		s.ErrorIs(err, ErrRegistrationHasNoResult)
	})

	s.Run("state derives from stored result", func() {
		s.Equal(NoResult, StateOf(nil))
		s.Equal(Recorded, StateOf(&models.RegistrationResult{}))
		s.Equal("recorded", Recorded.String())
	})
}
