package main

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubswim/internal/meet/events"
	meetmetrics "clubswim/internal/meet/metrics"
	"clubswim/internal/platform/config"
	platformmetrics "clubswim/internal/platform/metrics"
	"clubswim/pkg/platform/middleware/requestid"
	"clubswim/pkg/testutil"
)

func TestInMemoryServer(t *testing.T) {
	log := slog.New(slog.DiscardHandler)
	reg := prometheus.NewRegistry()
	deps := &infra{publisher: events.NewLogPublisher(log)}
	cfg := config.Config{FanOutLimit: 4}

	services := buildServices(cfg, deps, meetmetrics.NewWithRegistry(reg), log)
	router := newRouter(services, healthChecks(deps), platformmetrics.NewWithRegistry(reg), log)

	testutil.Given(t, "a server without postgres, redis or kafka", func(t *testing.T) {
		assert.Empty(t, healthChecks(deps))

		testutil.When(t, "calling GET /health", func(t *testing.T) {
			rr := testutil.Do(t, router, http.MethodGet, "/health", nil)

			testutil.Then(t, "it is healthy and echoes a request id", func(t *testing.T) {
				assert.Equal(t, http.StatusOK, rr.Code)
				assert.NotEmpty(t, rr.Header().Get(requestid.Header))
			})
		})

		testutil.When(t, "creating a group", func(t *testing.T) {
			groupID := testutil.CreatedID(t, testutil.Do(t, router, http.MethodPost, "/groups", map[string]any{"name": "Masters"}))

			testutil.Then(t, "its scoreboard is served from the in-memory stores", func(t *testing.T) {
				rr := testutil.Do(t, router, http.MethodGet, "/groups/"+groupID+"/scoreboard", nil)
				require.Equal(t, http.StatusOK, rr.Code)
				testutil.AssertStatus(t, testutil.Do(t, router, http.MethodGet, "/groups/"+groupID, nil), http.StatusOK)
			})
		})

		testutil.When(t, "calling GET /metrics", func(t *testing.T) {
			rr := testutil.Do(t, router, http.MethodGet, "/metrics", nil)

			testutil.Then(t, "prometheus answers", func(t *testing.T) {
				assert.Equal(t, http.StatusOK, rr.Code)
			})
		})
	})
}
