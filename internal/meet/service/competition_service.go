package service

import (
	"context"
	"errors"
	"strconv"

	"clubswim/internal/meet/events"
	"clubswim/internal/meet/models"
	"clubswim/internal/scoring"
	id "clubswim/pkg/domain"
	dErrors "clubswim/pkg/domain-errors"
	"clubswim/pkg/platform/sentinel"
)

// NewCompetition is the input of CompetitionService.Add.
type NewCompetition struct {
	Distance   uint32
	Gender     models.Gender
	Stroke     models.Stroke
	TargetTime uint32
}

// CompetitionService manages the race formats of the meet.
type CompetitionService struct {
	*base
}

func (s *CompetitionService) List(ctx context.Context) ([]models.Competition, error) {
	competitions, err := s.competitions.List(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list_competitions", dErrors.Wrap(err, dErrors.CodeInternal, "failed to list competitions"))
	}
	return competitions, nil
}

// Add validates the format against the existing competitions and stores it.
func (s *CompetitionService) Add(ctx context.Context, in NewCompetition) (id.CompetitionID, error) {
	c := models.Competition{
		ID:         id.NewCompetitionID(),
		Gender:     in.Gender,
		Stroke:     in.Stroke,
		Distance:   in.Distance,
		TargetTime: in.TargetTime,
	}
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.competitions.List(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list competitions")
		}
		if err := scoring.ValidateNewCompetition(c.Distance, c.Gender, c.Stroke, existing); err != nil {
			return err
		}
		if err := s.competitions.Create(ctx, &c); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return scoring.ErrSameCompetitionExists
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create competition")
		}
		return nil
	})
	if err != nil {
		return id.CompetitionID{}, s.fail(ctx, "add_competition", coded(err, "failed to add competition"))
	}

	s.changed(ctx, events.CompetitionCreated, c.ID.String(), map[string]string{
		"gender":   string(c.Gender),
		"stroke":   string(c.Stroke),
		"distance": strconv.FormatUint(uint64(c.Distance), 10),
	})
	return c.ID, nil
}

// Details returns the competition with every registration resolved.
func (s *CompetitionService) Details(ctx context.Context, competitionID id.CompetitionID) (models.CompetitionDetails, error) {
	c, err := s.loadCompetition(ctx, competitionID)
	if err != nil {
		return models.CompetitionDetails{}, s.fail(ctx, "competition_details", err, "competition_id", competitionID)
	}
	regs, err := s.competitionRegistrations(ctx, c)
	if err != nil {
		return models.CompetitionDetails{}, s.fail(ctx, "competition_details", err, "competition_id", competitionID)
	}
	pending := false
	for _, r := range regs {
		if r.Result == nil {
			pending = true
			break
		}
	}
	return models.CompetitionDetails{Competition: c, ResultsPending: pending, Registrations: regs}, nil
}

// Remove deletes a competition. Registrations block the delete unless force
// is set, in which case their results and the registrations go first.
func (s *CompetitionService) Remove(ctx context.Context, competitionID id.CompetitionID, force bool) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.loadCompetition(ctx, competitionID); err != nil {
			return err
		}
		dependents, err := s.registrations.ListByCompetition(ctx, competitionID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registrations")
		}
		plan, err := scoring.PlanDeletion(dependents, force)
		if err != nil {
			if errors.Is(err, scoring.ErrHasDependents) {
				return scoring.ErrCompetitionHasRegistrations
			}
			return err
		}
		return s.cascade.Execute(ctx, plan, func(ctx context.Context) error {
			return s.competitions.Delete(ctx, competitionID)
		})
	})
	if err != nil {
		return s.fail(ctx, "remove_competition", coded(err, "failed to remove competition"), "competition_id", competitionID)
	}

	s.changed(ctx, events.CompetitionDeleted, competitionID.String(), map[string]string{
		"force": strconv.FormatBool(force),
	})
	return nil
}
