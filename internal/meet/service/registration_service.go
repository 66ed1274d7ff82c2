package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"clubswim/internal/meet/events"
	"clubswim/internal/meet/models"
	"clubswim/internal/scoring"
	id "clubswim/pkg/domain"
	dErrors "clubswim/pkg/domain-errors"
	"clubswim/pkg/platform/sentinel"
	"clubswim/pkg/requestcontext"
)

// RegistrationService records and removes race results.
type RegistrationService struct {
	*base
}

// Details resolves a registration with its participant, competition and
// result.
func (s *RegistrationService) Details(ctx context.Context, registrationID id.RegistrationID) (models.RegistrationDetails, error) {
	details, err := s.details(ctx, registrationID)
	if err != nil {
		return models.RegistrationDetails{}, s.fail(ctx, "registration_details", err, "registration_id", registrationID)
	}
	return details, nil
}

func (s *RegistrationService) details(ctx context.Context, registrationID id.RegistrationID) (models.RegistrationDetails, error) {
	r, err := s.loadRegistration(ctx, registrationID)
	if err != nil {
		return models.RegistrationDetails{}, err
	}
	p, err := s.participants.FindByID(ctx, r.ParticipantID)
	if err != nil {
		return models.RegistrationDetails{}, storeErr(err,
			scoring.Inconsistent(fmt.Sprintf("registration %s references missing participant %s", r.ID, r.ParticipantID)),
			"failed to load participant")
	}
	c, err := s.competitions.FindByID(ctx, r.CompetitionID)
	if err != nil {
		return models.RegistrationDetails{}, storeErr(err,
			scoring.Inconsistent(fmt.Sprintf("registration %s references missing competition %s", r.ID, r.CompetitionID)),
			"failed to load competition")
	}
	result, err := s.registrations.FindResult(ctx, r.ID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return models.RegistrationDetails{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load result")
	}
	return models.RegistrationDetails{
		ID:          r.ID,
		Participant: p.Derive(requestcontext.Now(ctx)),
		Competition: *c,
		Result:      result,
	}, nil
}

// state reads the result lifecycle state of a registration that must exist.
func (s *RegistrationService) state(ctx context.Context, registrationID id.RegistrationID) (scoring.ResultState, error) {
	if _, err := s.loadRegistration(ctx, registrationID); err != nil {
		return scoring.NoResult, err
	}
	result, err := s.registrations.FindResult(ctx, registrationID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return scoring.NoResult, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load result")
	}
	return scoring.StateOf(result), nil
}

// AddResult records the result of a registration. A recorded result is never
// overwritten; remove it first.
func (s *RegistrationService) AddResult(ctx context.Context, registrationID id.RegistrationID, result models.RegistrationResult) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		state, err := s.state(ctx, registrationID)
		if err != nil {
			return err
		}
		if _, err := state.Record(); err != nil {
			return err
		}
		if err := s.registrations.CreateResult(ctx, registrationID, result); err != nil {
			switch {
			case errors.Is(err, sentinel.ErrConflict):
				return scoring.ErrResultAlreadyExists
			case errors.Is(err, sentinel.ErrNotFound):
				return scoring.ErrRegistrationDoesNotExist
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create result")
		}
		return nil
	})
	if err != nil {
		return s.fail(ctx, "add_result", coded(err, "failed to add result"), "registration_id", registrationID)
	}

	s.metrics.IncrementResultsRecorded()
	s.changed(ctx, events.ResultRecorded, registrationID.String(), map[string]string{
		"disqualified": strconv.FormatBool(result.Disqualified),
		"time_millis":  strconv.FormatUint(uint64(result.TimeMillis), 10),
		"fina_points":  strconv.FormatUint(uint64(result.FinaPoints), 10),
	})
	return nil
}

func (s *RegistrationService) RemoveResult(ctx context.Context, registrationID id.RegistrationID) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		state, err := s.state(ctx, registrationID)
		if err != nil {
			return err
		}
		if _, err := state.Remove(); err != nil {
			return err
		}
		if err := s.registrations.DeleteResult(ctx, registrationID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return scoring.ErrRegistrationHasNoResult
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete result")
		}
		return nil
	})
	if err != nil {
		return s.fail(ctx, "remove_result", coded(err, "failed to remove result"), "registration_id", registrationID)
	}

	s.changed(ctx, events.ResultRemoved, registrationID.String(), nil)
	return nil
}
