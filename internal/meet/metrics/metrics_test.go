package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersAdvance(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.IncrementCacheLookup("competition", "hit")
	m.IncrementCacheLookup("competition", "hit")
	m.IncrementCacheLookup("group", "miss")
	m.IncrementCascadeStep("delete_result")
	m.IncrementRegistrationsCreated()
	m.IncrementResultsRecorded()
	m.ObserveScoreboardBuild("group", time.Now())

	assert.InDelta(t, 2, testutil.ToFloat64(m.ScoreboardCache.WithLabelValues("competition", "hit")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ScoreboardCache.WithLabelValues("group", "miss")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CascadeSteps.WithLabelValues("delete_result")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RegistrationsCreated), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ResultsRecorded), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.ScoreboardBuildDuration))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementCacheLookup("competition", "hit")
		m.IncrementCascadeStep("delete_owner")
		m.IncrementRegistrationsCreated()
		m.IncrementResultsRecorded()
		m.IncrementEventsPublishFailed()
		m.ObserveScoreboardBuild("participant", time.Now())
	})
}
