// Package service orchestrates the scoring engine against the meet stores.
// Services load what a rule or scoreboard needs, run the pure engine in
// internal/scoring and translate store sentinels into coded domain errors.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"clubswim/internal/meet/events"
	"clubswim/internal/meet/metrics"
	dErrors "clubswim/pkg/domain-errors"
	"clubswim/pkg/platform/sentinel"
	"clubswim/pkg/requestcontext"
)

const defaultFanOutLimit = 8

// Stores bundles the repository ports every service reads from.
type Stores struct {
	Participants  ParticipantStore
	Competitions  CompetitionStore
	Registrations RegistrationStore
	Groups        GroupStore
}

// base carries the dependencies shared by all meet services.
type base struct {
	participants  ParticipantStore
	competitions  CompetitionStore
	registrations RegistrationStore
	groups        GroupStore

	logger    *slog.Logger
	metrics   *metrics.Metrics
	cache     ScoreboardCache
	publisher EventPublisher
	tx        TxRunner
	fanOut    int
	tracer    trace.Tracer
	flights   singleflight.Group
	cascade   *CascadeExecutor

	// generation counts committed mutations in this process. Scoreboard
	// builds are shared only between readers that saw the same value.
	generation atomic.Int64
}

type Option func(b *base)

func WithLogger(logger *slog.Logger) Option {
	return func(b *base) {
		b.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(b *base) {
		b.metrics = m
	}
}

func WithCache(cache ScoreboardCache) Option {
	return func(b *base) {
		b.cache = cache
	}
}

func WithPublisher(publisher EventPublisher) Option {
	return func(b *base) {
		b.publisher = publisher
	}
}

// WithTxRunner replaces the in-memory lock with a real transaction boundary.
func WithTxRunner(tx TxRunner) Option {
	return func(b *base) {
		b.tx = tx
	}
}

// WithFanOutLimit bounds concurrent store reads per aggregate.
func WithFanOutLimit(limit int) Option {
	return func(b *base) {
		if limit > 0 {
			b.fanOut = limit
		}
	}
}

// Services is the meet facade.
type Services struct {
	Competitions  *CompetitionService
	Participants  *ParticipantService
	Registrations *RegistrationService
	Groups        *GroupService
	Scores        *ScoreService
}

// New wires all meet services over one set of stores and options.
func New(stores Stores, opts ...Option) *Services {
	b := &base{
		participants:  stores.Participants,
		competitions:  stores.Competitions,
		registrations: stores.Registrations,
		groups:        stores.Groups,
		fanOut:        defaultFanOutLimit,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.New(slog.DiscardHandler)
	}
	if b.tx == nil {
		b.tx = NewMemoryTx()
	}
	b.tracer = otel.Tracer("clubswim/internal/meet/service")
	b.cascade = NewCascadeExecutor(b.registrations, b.metrics)

	return &Services{
		Competitions:  &CompetitionService{base: b},
		Participants:  &ParticipantService{base: b},
		Registrations: &RegistrationService{base: b},
		Groups:        &GroupService{base: b},
		Scores:        &ScoreService{base: b},
	}
}

// storeErr maps a store failure: ErrNotFound becomes notFound when one is
// given, anything else an internal error.
func storeErr(err error, notFound error, msg string) error {
	if notFound != nil && errors.Is(err, sentinel.ErrNotFound) {
		return notFound
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

// coded keeps domain errors as they are and wraps anything else as internal.
func coded(err error, msg string) error {
	if _, ok := dErrors.CodeOf(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

// fail logs internal and consistency failures before returning err. Rule
// violations are the caller's problem and are not logged.
func (b *base) fail(ctx context.Context, op string, err error, attributes ...any) error {
	if err == nil {
		return nil
	}
	code, _ := dErrors.CodeOf(err)
	if code != dErrors.CodeInternal && code != dErrors.CodeInvariantViolation {
		return err
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	attributes = append(attributes, "op", op, "error", err)
	b.logger.ErrorContext(ctx, "meet operation failed", attributes...)
	return err
}

// changed runs after every committed mutation: in-flight and cached
// scoreboards are stale and listeners get told. Neither step fails the request.
func (b *base) changed(ctx context.Context, eventType events.Type, entityID string, attributes map[string]string) {
	b.generation.Add(1)
	if b.cache != nil {
		if err := b.cache.Invalidate(ctx); err != nil {
			b.logger.ErrorContext(ctx, "scoreboard cache invalidation failed",
				"event", string(eventType), "error", err, "request_id", requestcontext.RequestID(ctx))
		}
	}
	if b.publisher == nil {
		return
	}
	e := events.Event{
		Type:       eventType,
		EntityID:   entityID,
		RequestID:  requestcontext.RequestID(ctx),
		OccurredAt: requestcontext.Now(ctx),
		Attributes: attributes,
	}
	if err := b.publisher.Publish(ctx, e); err != nil {
		b.metrics.IncrementEventsPublishFailed()
		b.logger.WarnContext(ctx, "meet event not published",
			"event", string(eventType), "entity_id", entityID, "error", err,
			"request_id", e.RequestID)
	}
}
