package service

import (
	"context"
	"errors"
	"strings"

	"clubswim/internal/meet/events"
	"clubswim/internal/meet/models"
	"clubswim/internal/scoring"
	id "clubswim/pkg/domain"
	dErrors "clubswim/pkg/domain-errors"
	"clubswim/pkg/platform/sentinel"
)

type GroupService struct {
	*base
}

func (s *GroupService) List(ctx context.Context) ([]models.Group, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list_groups", dErrors.Wrap(err, dErrors.CodeInternal, "failed to list groups"))
	}
	return groups, nil
}

func (s *GroupService) Add(ctx context.Context, name string) (id.GroupID, error) {
	g := models.Group{ID: id.NewGroupID(), Name: strings.TrimSpace(name)}
	if g.Name == "" {
		return id.GroupID{}, dErrors.New(dErrors.CodeValidation, "group name is required")
	}
	if err := s.groups.Create(ctx, &g); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return id.GroupID{}, dErrors.New(dErrors.CodeConflict, "group already exists")
		}
		return id.GroupID{}, s.fail(ctx, "add_group", dErrors.Wrap(err, dErrors.CodeInternal, "failed to create group"))
	}

	s.changed(ctx, events.GroupCreated, g.ID.String(), map[string]string{"name": g.Name})
	return g.ID, nil
}

// Details ranks the group's members by their meet-wide point totals and lists
// the results still missing.
func (s *GroupService) Details(ctx context.Context, groupID id.GroupID) (models.GroupDetails, error) {
	g, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return models.GroupDetails{}, s.fail(ctx, "group_details", err, "group_id", groupID)
	}
	members, err := s.memberDetails(ctx, groupID)
	if err != nil {
		return models.GroupDetails{}, s.fail(ctx, "group_details", err, "group_id", groupID)
	}
	totals, err := s.finaPointTotals(ctx)
	if err != nil {
		return models.GroupDetails{}, s.fail(ctx, "group_details", err, "group_id", groupID)
	}
	details, err := scoring.BuildGroupDetails(g, members, totals)
	if err != nil {
		return models.GroupDetails{}, s.fail(ctx, "group_details", err, "group_id", groupID)
	}
	return details, nil
}

// finaPointTotals computes the point total of every participant in the meet.
func (b *base) finaPointTotals(ctx context.Context) ([]models.ParticipantFinaPoints, error) {
	participants, err := b.participants.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list participants")
	}
	details, err := b.detailsOf(ctx, participants)
	if err != nil {
		return nil, err
	}
	totals := make([]models.ParticipantFinaPoints, len(details))
	for i, d := range details {
		points, err := scoring.ParticipantFinaPoints(d)
		if err != nil {
			return nil, err
		}
		totals[i] = models.ParticipantFinaPoints{
			ParticipantID:  d.ID,
			ResultsMissing: d.ResultsMissing(),
			FinaPoints:     points,
		}
	}
	return totals, nil
}
