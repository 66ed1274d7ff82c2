package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"clubswim/internal/meet/models"
	"clubswim/internal/scoring"
	id "clubswim/pkg/domain"
	dErrors "clubswim/pkg/domain-errors"
	"clubswim/pkg/requestcontext"
)

// scoreboardBuildTimeout bounds a shared build, which outlives the reader
// that started it.
const scoreboardBuildTimeout = 10 * time.Second

// maxParticipantRebuilds bounds how often a participant scoreboard is rebuilt
// after a consistency failure that overlapped a mutation.
const maxParticipantRebuilds = 2

const (
	kindCompetition = "competition"
	kindGroup       = "group"
	kindParticipant = "participant"
)

// ScoreService builds scoreboards. Built boards are cached per generation
// when a cache is configured, and concurrent builds of one board collapse into
// a single build.
type ScoreService struct {
	*base
}

func (s *ScoreService) CompetitionScoreboard(ctx context.Context, competitionID id.CompetitionID) (models.CompetitionScoreboard, error) {
	ctx, span := s.tracer.Start(ctx, "ScoreService.CompetitionScoreboard",
		trace.WithAttributes(attribute.String("competition_id", competitionID.String())))
	defer span.End()

	board, err := s.competitionScoreboard(ctx, competitionID)
	if err != nil {
		endWithError(span, err)
		return models.CompetitionScoreboard{}, s.fail(ctx, "competition_scoreboard", err, "competition_id", competitionID)
	}
	return board, nil
}

func (s *ScoreService) GroupScoreboard(ctx context.Context, groupID id.GroupID) (models.GroupScoreboard, error) {
	ctx, span := s.tracer.Start(ctx, "ScoreService.GroupScoreboard",
		trace.WithAttributes(attribute.String("group_id", groupID.String())))
	defer span.End()

	board, err := s.groupScoreboard(ctx, groupID)
	if err != nil {
		endWithError(span, err)
		return models.GroupScoreboard{}, s.fail(ctx, "group_scoreboard", err, "group_id", groupID)
	}
	return board, nil
}

// ParticipantScoreboard combines the participant's lines from every
// competition scoreboard with their group standing.
func (s *ScoreService) ParticipantScoreboard(ctx context.Context, participantID id.ParticipantID) (models.ParticipantScoreboard, error) {
	ctx, span := s.tracer.Start(ctx, "ScoreService.ParticipantScoreboard",
		trace.WithAttributes(attribute.String("participant_id", participantID.String())))
	defer span.End()

	board, err := s.participantScoreboard(ctx, participantID)
	if err != nil {
		endWithError(span, err)
		return models.ParticipantScoreboard{}, s.fail(ctx, "participant_scoreboard", err, "participant_id", participantID)
	}
	return board, nil
}

// participantScoreboard reads the participant's details and the competition
// and group boards in separate steps. A mutation committing between them can
// make the parts disagree, so a consistency failure is rebuilt when the
// generation moved during the build.
func (s *ScoreService) participantScoreboard(ctx context.Context, participantID id.ParticipantID) (models.ParticipantScoreboard, error) {
	for attempt := 0; ; attempt++ {
		local := s.generation.Load()
		board, err := cached(ctx, s.base, kindParticipant, kindParticipant+":"+participantID.String(),
			func(ctx context.Context) (models.ParticipantScoreboard, error) {
				return s.buildParticipantScoreboard(ctx, participantID)
			})
		if err == nil || !errors.Is(err, scoring.ErrInconsistent) ||
			attempt == maxParticipantRebuilds || s.generation.Load() == local {
			return board, err
		}
		s.logger.InfoContext(ctx, "rebuilding participant scoreboard after concurrent mutation",
			"participant_id", participantID, "attempt", attempt+1, "request_id", requestcontext.RequestID(ctx))
	}
}

func (s *ScoreService) buildParticipantScoreboard(ctx context.Context, participantID id.ParticipantID) (models.ParticipantScoreboard, error) {
	p, err := s.loadParticipant(ctx, participantID)
	if err != nil {
		return models.ParticipantScoreboard{}, err
	}
	details, err := s.participantDetails(ctx, p)
	if err != nil {
		return models.ParticipantScoreboard{}, err
	}
	group, err := s.groupScoreboard(ctx, p.GroupID)
	if err != nil {
		return models.ParticipantScoreboard{}, err
	}
	return scoring.BuildParticipantScoreboard(details, group,
		func(competitionID id.CompetitionID) (models.CompetitionScoreboard, error) {
			return s.competitionScoreboard(ctx, competitionID)
		})
}

// ParticipantsFinaPoints lists the point total of every participant.
func (s *ScoreService) ParticipantsFinaPoints(ctx context.Context) ([]models.ParticipantFinaPoints, error) {
	ctx, span := s.tracer.Start(ctx, "ScoreService.ParticipantsFinaPoints")
	defer span.End()

	totals, err := s.finaPointTotals(ctx)
	if err != nil {
		endWithError(span, err)
		return nil, s.fail(ctx, "participants_fina_points", err)
	}
	span.SetAttributes(attribute.Int("participants", len(totals)))
	return totals, nil
}

func (b *base) competitionScoreboard(ctx context.Context, competitionID id.CompetitionID) (models.CompetitionScoreboard, error) {
	return cached(ctx, b, kindCompetition, kindCompetition+":"+competitionID.String(),
		func(ctx context.Context) (models.CompetitionScoreboard, error) {
			c, err := b.loadCompetition(ctx, competitionID)
			if err != nil {
				return models.CompetitionScoreboard{}, err
			}
			regs, err := b.competitionRegistrations(ctx, c)
			if err != nil {
				return models.CompetitionScoreboard{}, err
			}
			return scoring.BuildCompetitionScoreboard(c, regs), nil
		})
}

func (b *base) groupScoreboard(ctx context.Context, groupID id.GroupID) (models.GroupScoreboard, error) {
	return cached(ctx, b, kindGroup, kindGroup+":"+groupID.String(),
		func(ctx context.Context) (models.GroupScoreboard, error) {
			g, err := b.loadGroup(ctx, groupID)
			if err != nil {
				return models.GroupScoreboard{}, err
			}
			members, err := b.memberDetails(ctx, groupID)
			if err != nil {
				return models.GroupScoreboard{}, err
			}
			return scoring.BuildGroupScoreboard(g, members)
		})
}

// cached serves key from the scoreboard cache or builds it. Concurrent readers
// of one key share a build only when no mutation committed between their
// arrivals, and a build that overlapped a mutation is not written back. Cache
// failures degrade to building; they never fail the read.
func cached[T any](ctx context.Context, b *base, kind, key string, build func(ctx context.Context) (T, error)) (T, error) {
	var (
		zero       T
		local      = b.generation.Load()
		generation int64
		useCache   = b.cache != nil
	)
	if useCache {
		gen, err := b.cache.Generation(ctx)
		if err != nil {
			b.cacheFailed(ctx, kind, key, err)
			useCache = false
		}
		generation = gen
	}
	if useCache {
		var hit T
		found, err := b.cache.Get(ctx, generation, key, &hit)
		switch {
		case err != nil:
			b.cacheFailed(ctx, kind, key, err)
		case found:
			b.metrics.IncrementCacheLookup(kind, "hit")
			return hit, nil
		default:
			b.metrics.IncrementCacheLookup(kind, "miss")
		}
	}

	flight := strconv.FormatInt(local, 10) + ":" + strconv.FormatInt(generation, 10) + ":" + key
	results := b.flights.DoChan(flight, func() (any, error) {
		// Shared by every joined reader, so one caller going away must not
		// cancel it.
		buildCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), scoreboardBuildTimeout)
		defer cancel()

		start := time.Now()
		built, err := build(buildCtx)
		if err != nil {
			return nil, err
		}
		b.metrics.ObserveScoreboardBuild(kind, start)
		if useCache && b.generation.Load() == local {
			if err := b.cache.Set(buildCtx, generation, key, built); err != nil {
				b.cacheFailed(buildCtx, kind, key, err)
			}
		}
		return built, nil
	})

	select {
	case res := <-results:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		return zero, dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "scoreboard read abandoned")
	}
}

func (b *base) cacheFailed(ctx context.Context, kind, key string, err error) {
	b.metrics.IncrementCacheLookup(kind, "error")
	b.logger.WarnContext(ctx, "scoreboard cache unavailable",
		"key", key, "error", err, "request_id", requestcontext.RequestID(ctx))
}

func endWithError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
