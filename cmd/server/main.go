package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twmb/franz-go/pkg/kgo"

	"clubswim/internal/meet/cache"
	"clubswim/internal/meet/events"
	meethandler "clubswim/internal/meet/handler"
	meetmetrics "clubswim/internal/meet/metrics"
	"clubswim/internal/meet/service"
	"clubswim/internal/meet/store/competition"
	"clubswim/internal/meet/store/group"
	"clubswim/internal/meet/store/participant"
	"clubswim/internal/meet/store/registration"
	"clubswim/internal/platform/config"
	"clubswim/internal/platform/httpserver"
	"clubswim/internal/platform/logger"
	platformmetrics "clubswim/internal/platform/metrics"
	"clubswim/internal/platform/middleware"
	"clubswim/internal/platform/postgres"
	redisclient "clubswim/internal/platform/redis"
	"clubswim/pkg/platform/middleware/requestid"
	"clubswim/pkg/platform/middleware/requesttime"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal/meet.
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

type infra struct {
	db        *sql.DB
	redis     *redisclient.Client
	kafka     *kgo.Client
	publisher service.EventPublisher
}

func (i *infra) close() {
	if i.kafka != nil {
		i.kafka.Close()
	}
	if i.redis != nil {
		_ = i.redis.Close()
	}
	if i.db != nil {
		_ = i.db.Close()
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	deps, err := buildInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.close()

	services := buildServices(cfg, deps, meetmetrics.New(), log)
	router := newRouter(services, healthChecks(deps), platformmetrics.New(), log)

	srv := httpserver.New(cfg.Server, router)
	return httpserver.Run(ctx, srv, cfg.Server, log)
}

func newRouter(services *service.Services, checks map[string]meethandler.Check, httpMetrics *platformmetrics.HTTP, log *slog.Logger) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recover(log))
	router.Use(requestid.Middleware)
	router.Use(requesttime.Middleware)
	router.Use(middleware.Observe(log, httpMetrics))

	router.Method(http.MethodGet, "/health", meethandler.NewHealth(checks, log))
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	meethandler.New(meethandler.FromFacade(services), log).Register(router)
	return router
}

func buildInfra(ctx context.Context, cfg config.Config, log *slog.Logger) (*infra, error) {
	deps := &infra{}

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if db != nil {
		deps.db = db
		if err := postgres.ApplySchema(ctx, db); err != nil {
			deps.close()
			return nil, err
		}
		log.Info("using postgres stores")
	} else {
		log.Info("using in-memory stores")
	}

	rc, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		deps.close()
		return nil, err
	}
	deps.redis = rc

	if len(cfg.Events.Brokers) == 0 {
		deps.publisher = events.NewLogPublisher(log)
		return deps, nil
	}
	client, err := events.NewClient(cfg.Events.Brokers, cfg.Events.ClientID)
	if err != nil {
		deps.close()
		return nil, err
	}
	deps.kafka = client
	if err := events.EnsureTopic(ctx, client, cfg.Events.Topic, 3, 1); err != nil {
		log.Warn("could not ensure events topic", "topic", cfg.Events.Topic, "error", err)
	}
	deps.publisher = events.NewKafkaPublisher(client, cfg.Events.Topic)
	return deps, nil
}

func buildServices(cfg config.Config, deps *infra, m *meetmetrics.Metrics, log *slog.Logger) *service.Services {
	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithPublisher(deps.publisher),
		service.WithFanOutLimit(cfg.FanOutLimit),
	}
	if deps.redis != nil {
		opts = append(opts, service.WithCache(cache.NewRedis(deps.redis.Client, cache.WithTTL(cfg.Redis.CacheTTL))))
	}

	if deps.db == nil {
		return service.New(service.Stores{
			Participants:  participant.NewInMemory(),
			Competitions:  competition.NewInMemory(),
			Registrations: registration.NewInMemory(),
			Groups:        group.NewInMemory(),
		}, opts...)
	}

	opts = append(opts, service.WithTxRunner(newMeetPostgresTx(deps.db)))
	return service.New(service.Stores{
		Participants:  participant.NewPostgres(deps.db),
		Competitions:  competition.NewPostgres(deps.db),
		Registrations: registration.NewPostgres(deps.db),
		Groups:        group.NewPostgres(deps.db),
	}, opts...)
}

func healthChecks(deps *infra) map[string]meethandler.Check {
	checks := map[string]meethandler.Check{}
	if deps.db != nil {
		checks["postgres"] = deps.db.PingContext
	}
	if deps.redis != nil {
		checks["redis"] = deps.redis.Health
	}
	if deps.kafka != nil {
		checks["kafka"] = deps.kafka.Ping
	}
	return checks
}
