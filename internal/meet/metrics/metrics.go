package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the meet module: scoreboard build
// latency, scoreboard cache effectiveness, cascade deletes and entries.
type Metrics struct {
	ScoreboardBuildDuration *prometheus.HistogramVec
	ScoreboardCache         *prometheus.CounterVec
	CascadeSteps            *prometheus.CounterVec
	RegistrationsCreated    prometheus.Counter
	ResultsRecorded         prometheus.Counter
	EventsPublishFailed     prometheus.Counter
}

// New registers the meet metrics with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the meet metrics with reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ScoreboardBuildDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clubswim_scoreboard_build_duration_seconds",
			Help:    "Duration of scoreboard builds by kind (competition, group, participant)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"kind"}),
		ScoreboardCache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clubswim_scoreboard_cache_lookups_total",
			Help: "Scoreboard cache lookups by kind and outcome (hit, miss, error)",
		}, []string{"kind", "outcome"}),
		CascadeSteps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clubswim_cascade_steps_total",
			Help: "Cascade deletion steps executed by step kind",
		}, []string{"step"}),
		RegistrationsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "clubswim_registrations_created_total",
			Help: "Total number of registrations created",
		}),
		ResultsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "clubswim_results_recorded_total",
			Help: "Total number of registration results recorded",
		}),
		EventsPublishFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "clubswim_events_publish_failed_total",
			Help: "Meet events that could not be published",
		}),
	}
}

// ObserveScoreboardBuild records a build of the given kind.
// Call with time.Now() at the start of the build.
func (m *Metrics) ObserveScoreboardBuild(kind string, start time.Time) {
	if m == nil {
		return
	}
	m.ScoreboardBuildDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementCacheLookup(kind, outcome string) {
	if m == nil {
		return
	}
	m.ScoreboardCache.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) IncrementCascadeStep(step string) {
	if m == nil {
		return
	}
	m.CascadeSteps.WithLabelValues(step).Inc()
}

func (m *Metrics) IncrementRegistrationsCreated() {
	if m == nil {
		return
	}
	m.RegistrationsCreated.Inc()
}

func (m *Metrics) IncrementResultsRecorded() {
	if m == nil {
		return
	}
	m.ResultsRecorded.Inc()
}

func (m *Metrics) IncrementEventsPublishFailed() {
	if m == nil {
		return
	}
	m.EventsPublishFailed.Inc()
}
