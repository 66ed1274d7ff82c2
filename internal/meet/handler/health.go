package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"clubswim/pkg/platform/httputil"
	"clubswim/pkg/requestcontext"
)

// Check pings one backing dependency.
type Check func(ctx context.Context) error

const healthCheckTimeout = 2 * time.Second

// Health reports liveness plus the state of every configured dependency.
type Health struct {
	checks map[string]Check
	logger *slog.Logger
}

func NewHealth(checks map[string]Check, logger *slog.Logger) *Health {
	return &Health{checks: checks, logger: logger}
}

func (h *Health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
	status := http.StatusOK
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.logger.ErrorContext(ctx, "health check failed",
				"request_id", requestcontext.RequestID(ctx),
				"check", name,
				"error", err,
			)
			resp.Checks[name] = "down"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "up"
	}
	httputil.WriteJSON(w, status, resp)
}
