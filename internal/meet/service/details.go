package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"clubswim/internal/meet/models"
	"clubswim/internal/scoring"
	id "clubswim/pkg/domain"
	"clubswim/pkg/requestcontext"
)

func (b *base) loadParticipant(ctx context.Context, participantID id.ParticipantID) (models.Participant, error) {
	p, err := b.participants.FindByID(ctx, participantID)
	if err != nil {
		return models.Participant{}, storeErr(err, scoring.ErrParticipantDoesNotExist, "failed to load participant")
	}
	return p.Derive(requestcontext.Now(ctx)), nil
}

func (b *base) loadCompetition(ctx context.Context, competitionID id.CompetitionID) (models.Competition, error) {
	c, err := b.competitions.FindByID(ctx, competitionID)
	if err != nil {
		return models.Competition{}, storeErr(err, scoring.ErrCompetitionDoesNotExist, "failed to load competition")
	}
	return *c, nil
}

func (b *base) loadGroup(ctx context.Context, groupID id.GroupID) (models.Group, error) {
	g, err := b.groups.FindByID(ctx, groupID)
	if err != nil {
		return models.Group{}, storeErr(err, scoring.ErrGroupDoesNotExist, "failed to load group")
	}
	return *g, nil
}

func (b *base) loadRegistration(ctx context.Context, registrationID id.RegistrationID) (models.Registration, error) {
	r, err := b.registrations.FindByID(ctx, registrationID)
	if err != nil {
		return models.Registration{}, storeErr(err, scoring.ErrRegistrationDoesNotExist, "failed to load registration")
	}
	return *r, nil
}

// resultsOf loads the recorded results of regs in one batch.
func (b *base) resultsOf(ctx context.Context, regs []models.Registration) (map[id.RegistrationID]models.RegistrationResult, error) {
	ids := make([]id.RegistrationID, len(regs))
	for i, r := range regs {
		ids[i] = r.ID
	}
	results, err := b.registrations.FindResults(ctx, ids)
	if err != nil {
		return nil, storeErr(err, nil, "failed to load results")
	}
	return results, nil
}

func resultPtr(results map[id.RegistrationID]models.RegistrationResult, registrationID id.RegistrationID) *models.RegistrationResult {
	r, ok := results[registrationID]
	if !ok {
		return nil
	}
	return &r
}

// participantDetails resolves p's group, registrations, competitions and
// results. Competitions load concurrently; a registration pointing at a
// missing competition or a participant in a missing group is inconsistent.
func (b *base) participantDetails(ctx context.Context, p models.Participant) (models.ParticipantDetails, error) {
	group, err := b.groups.FindByID(ctx, p.GroupID)
	if err != nil {
		return models.ParticipantDetails{}, storeErr(err,
			scoring.Inconsistent(fmt.Sprintf("participant %s references missing group %s", p.ID, p.GroupID)),
			"failed to load group")
	}
	regs, err := b.registrations.ListByParticipant(ctx, p.ID)
	if err != nil {
		return models.ParticipantDetails{}, storeErr(err, nil, "failed to list registrations")
	}
	results, err := b.resultsOf(ctx, regs)
	if err != nil {
		return models.ParticipantDetails{}, err
	}

	entries := make([]models.ParticipantRegistration, len(regs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.fanOut)
	for i, r := range regs {
		g.Go(func() error {
			c, err := b.competitions.FindByID(gctx, r.CompetitionID)
			if err != nil {
				return storeErr(err,
					scoring.Inconsistent(fmt.Sprintf("registration %s references missing competition %s", r.ID, r.CompetitionID)),
					"failed to load competition")
			}
			entries[i] = models.ParticipantRegistration{ID: r.ID, Competition: *c, Result: resultPtr(results, r.ID)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.ParticipantDetails{}, err
	}

	return models.ParticipantDetails{Participant: p, Group: *group, Registrations: entries}, nil
}

// competitionRegistrations resolves the participants and results of every
// registration for c, in registration order.
func (b *base) competitionRegistrations(ctx context.Context, c models.Competition) ([]models.CompetitionRegistration, error) {
	regs, err := b.registrations.ListByCompetition(ctx, c.ID)
	if err != nil {
		return nil, storeErr(err, nil, "failed to list registrations")
	}
	results, err := b.resultsOf(ctx, regs)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	entries := make([]models.CompetitionRegistration, len(regs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.fanOut)
	for i, r := range regs {
		g.Go(func() error {
			p, err := b.participants.FindByID(gctx, r.ParticipantID)
			if err != nil {
				return storeErr(err,
					scoring.Inconsistent(fmt.Sprintf("registration %s references missing participant %s", r.ID, r.ParticipantID)),
					"failed to load participant")
			}
			entries[i] = models.CompetitionRegistration{ID: r.ID, Participant: p.Derive(now), Result: resultPtr(results, r.ID)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// memberDetails loads the details of every member of a group concurrently.
func (b *base) memberDetails(ctx context.Context, groupID id.GroupID) ([]models.ParticipantDetails, error) {
	members, err := b.participants.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, storeErr(err, nil, "failed to list group members")
	}
	return b.detailsOf(ctx, members)
}

func (b *base) detailsOf(ctx context.Context, participants []models.Participant) ([]models.ParticipantDetails, error) {
	now := requestcontext.Now(ctx)
	details := make([]models.ParticipantDetails, len(participants))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.fanOut)
	for i, p := range participants {
		g.Go(func() error {
			d, err := b.participantDetails(gctx, p.Derive(now))
			if err != nil {
				return err
			}
			details[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}
