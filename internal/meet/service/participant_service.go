package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"clubswim/internal/meet/events"
	"clubswim/internal/meet/models"
	"clubswim/internal/scoring"
	id "clubswim/pkg/domain"
	dErrors "clubswim/pkg/domain-errors"
	"clubswim/pkg/platform/sentinel"
	"clubswim/pkg/requestcontext"
)

// NewParticipant is the input of ParticipantService.Add.
type NewParticipant struct {
	FirstName string
	LastName  string
	Gender    models.Gender
	Birthday  models.Date
	GroupID   id.GroupID
}

// ParticipantService manages swimmers and their registrations.
type ParticipantService struct {
	*base
}

func (s *ParticipantService) List(ctx context.Context) ([]models.Participant, error) {
	participants, err := s.participants.List(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list_participants", dErrors.Wrap(err, dErrors.CodeInternal, "failed to list participants"))
	}
	now := requestcontext.Now(ctx)
	for i := range participants {
		participants[i] = participants[i].Derive(now)
	}
	return participants, nil
}

// Add stores a participant in an existing group. The store allocates the
// short id.
func (s *ParticipantService) Add(ctx context.Context, in NewParticipant) (id.ParticipantID, error) {
	p := models.Participant{
		ID:        id.NewParticipantID(),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Gender:    in.Gender,
		Birthday:  in.Birthday,
		GroupID:   in.GroupID,
	}
	if p.FirstName == "" || p.LastName == "" {
		return id.ParticipantID{}, dErrors.New(dErrors.CodeValidation, "first and last name are required")
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.loadGroup(ctx, p.GroupID); err != nil {
			return err
		}
		if err := s.participants.Create(ctx, &p); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create participant")
		}
		return nil
	})
	if err != nil {
		return id.ParticipantID{}, s.fail(ctx, "add_participant", coded(err, "failed to add participant"), "group_id", p.GroupID)
	}

	s.changed(ctx, events.ParticipantCreated, p.ID.String(), map[string]string{
		"group_id": p.GroupID.String(),
		"short_id": strconv.Itoa(p.ShortID),
	})
	return p.ID, nil
}

func (s *ParticipantService) Details(ctx context.Context, participantID id.ParticipantID) (models.ParticipantDetails, error) {
	p, err := s.loadParticipant(ctx, participantID)
	if err != nil {
		return models.ParticipantDetails{}, s.fail(ctx, "participant_details", err, "participant_id", participantID)
	}
	details, err := s.participantDetails(ctx, p)
	if err != nil {
		return models.ParticipantDetails{}, s.fail(ctx, "participant_details", err, "participant_id", participantID)
	}
	return details, nil
}

// Remove deletes a participant, cascading into registrations and results
// only when force is set.
func (s *ParticipantService) Remove(ctx context.Context, participantID id.ParticipantID, force bool) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.loadParticipant(ctx, participantID); err != nil {
			return err
		}
		dependents, err := s.registrations.ListByParticipant(ctx, participantID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registrations")
		}
		plan, err := scoring.PlanDeletion(dependents, force)
		if err != nil {
			if errors.Is(err, scoring.ErrHasDependents) {
				return scoring.ErrParticipantHasRegistrations
			}
			return err
		}
		return s.cascade.Execute(ctx, plan, func(ctx context.Context) error {
			return s.participants.Delete(ctx, participantID)
		})
	})
	if err != nil {
		return s.fail(ctx, "remove_participant", coded(err, "failed to remove participant"), "participant_id", participantID)
	}

	s.changed(ctx, events.ParticipantDeleted, participantID.String(), map[string]string{
		"force": strconv.FormatBool(force),
	})
	return nil
}

// AvailableCompetitions lists the competitions of the participant's gender
// they are not registered for yet.
func (s *ParticipantService) AvailableCompetitions(ctx context.Context, participantID id.ParticipantID) ([]models.Competition, error) {
	p, err := s.loadParticipant(ctx, participantID)
	if err != nil {
		return nil, s.fail(ctx, "available_competitions", err, "participant_id", participantID)
	}
	candidates, err := s.competitions.ListByGender(ctx, p.Gender)
	if err != nil {
		return nil, s.fail(ctx, "available_competitions",
			dErrors.Wrap(err, dErrors.CodeInternal, "failed to list competitions"), "participant_id", participantID)
	}
	regs, err := s.registrations.ListByParticipant(ctx, participantID)
	if err != nil {
		return nil, s.fail(ctx, "available_competitions",
			dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registrations"), "participant_id", participantID)
	}

	available := make([]models.Competition, 0, len(candidates))
	for _, c := range candidates {
		if scoring.CanRegister(p, c, regs) == nil {
			available = append(available, c)
		}
	}
	return available, nil
}

// Register enters a participant into a competition after the eligibility
// rule passed.
func (s *ParticipantService) Register(ctx context.Context, participantID id.ParticipantID, competitionID id.CompetitionID) (id.RegistrationID, error) {
	var registrationID id.RegistrationID
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := s.loadParticipant(ctx, participantID)
		if err != nil {
			return err
		}
		c, err := s.loadCompetition(ctx, competitionID)
		if err != nil {
			return err
		}
		existing, err := s.registrations.ListByParticipant(ctx, participantID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registrations")
		}
		if err := scoring.CanRegister(p, c, existing); err != nil {
			return err
		}
		registrationID, err = s.registrations.Create(ctx, participantID, competitionID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create registration")
		}
		return nil
	})
	if err != nil {
		return id.RegistrationID{}, s.fail(ctx, "register", coded(err, "failed to register"),
			"participant_id", participantID, "competition_id", competitionID)
	}

	s.metrics.IncrementRegistrationsCreated()
	s.changed(ctx, events.RegistrationCreated, registrationID.String(), map[string]string{
		"participant_id": participantID.String(),
		"competition_id": competitionID.String(),
	})
	return registrationID, nil
}

// Unregister removes one of the participant's registrations, its result
// first.
func (s *ParticipantService) Unregister(ctx context.Context, participantID id.ParticipantID, registrationID id.RegistrationID) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		r, err := s.loadRegistration(ctx, registrationID)
		if err != nil {
			return err
		}
		if r.ParticipantID != participantID {
			return scoring.ErrRegistrationDoesNotExist
		}
		if err := s.registrations.DeleteResult(ctx, registrationID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete result")
		}
		if err := s.registrations.Delete(ctx, registrationID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete registration")
		}
		return nil
	})
	if err != nil {
		return s.fail(ctx, "unregister", coded(err, "failed to unregister"),
			"participant_id", participantID, "registration_id", registrationID)
	}

	s.changed(ctx, events.RegistrationDeleted, registrationID.String(), map[string]string{
		"participant_id": participantID.String(),
	})
	return nil
}
