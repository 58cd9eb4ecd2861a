package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"certledger/internal/auth"
	"certledger/internal/platform/config"
	"certledger/internal/platform/httpserver"
	"certledger/internal/platform/logger"
	platformmetrics "certledger/internal/platform/metrics"
	"certledger/internal/platform/middleware"
	platformpg "certledger/internal/platform/postgres"
	platformredis "certledger/internal/platform/redis"
	"certledger/internal/registry/cache"
	registryhandler "certledger/internal/registry/handler"
	registrymetrics "certledger/internal/registry/metrics"
	"certledger/internal/registry/service"
	registrymemory "certledger/internal/registry/store/memory"
	registrypg "certledger/internal/registry/store/postgres"
	"certledger/pkg/platform/events"
	"certledger/pkg/platform/events/kafka"
	"certledger/pkg/platform/events/publisher"
	eventmemory "certledger/pkg/platform/events/store/memory"
	eventpg "certledger/pkg/platform/events/store/postgres"
	"certledger/pkg/platform/events/worker"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New(slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	// Registry store: pgx-backed when a Postgres URL is configured,
	// in-memory otherwise.
	var store service.Store = registrymemory.New()
	if cfg.PostgresURL != "" {
		pool, err := platformpg.Connect(ctx, cfg.PostgresURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		pgStore := registrypg.New(pool)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			return err
		}
		store = pgStore
		log.Info("registry store: postgres")
	} else {
		log.Info("registry store: memory")
	}

	// Event log: a Postgres outbox when available, memory otherwise.
	var eventStore events.Store = eventmemory.New()
	if cfg.PostgresURL != "" {
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			return err
		}
		defer db.Close()

		outbox := eventpg.New(db)
		if err := outbox.EnsureSchema(ctx); err != nil {
			return err
		}
		eventStore = outbox
	}

	pub := publisher.New(eventStore, publisher.WithBuffer(cfg.EventBuffer))

	var sinks []worker.Sink
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := kafka.New(cfg.KafkaBrokers, cfg.EventTopic)
		if err != nil {
			return err
		}
		defer kafkaSink.Close()
		if err := kafkaSink.EnsureTopic(ctx); err != nil {
			return err
		}
		sinks = append(sinks, kafkaSink)
		log.Info("event sink: kafka", "topic", cfg.EventTopic)
	}

	regMetrics := registrymetrics.New()
	svcOpts := []service.Option{
		service.WithLogger(log),
		service.WithEventPublisher(pub),
		service.WithMetrics(regMetrics),
	}

	// Read cache is optional: the registry degrades to store reads when
	// Redis is absent or misbehaving.
	if cfg.RedisURL != "" {
		redisClient, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		certCache, err := cache.New(redisClient, cfg.CacheTTL)
		if err != nil {
			return err
		}
		svcOpts = append(svcOpts, service.WithCache(certCache))
		log.Info("certificate cache: redis", "ttl", cfg.CacheTTL)
	}

	registry, err := service.New(ctx, store, cfg.AdminAddress, svcOpts...)
	if err != nil {
		return err
	}

	authService := auth.New(cfg.JWTSigningKey, cfg.TokenIssuer, cfg.TokenTTL, cfg.Operators)
	httpMetrics := platformmetrics.New()

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RequestTime,
		middleware.ClientMetadata,
		middleware.Logger(log),
		middleware.Latency(httpMetrics),
		middleware.Recovery(log),
	)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	auth.NewHandler(authService, log).Register(router)

	router.Group(func(r chi.Router) {
		r.Use(
			middleware.ContentTypeJSON,
			middleware.RequireAuth(authService, log),
		)
		registryhandler.New(registry, log).Register(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return worker.New(pub.Events(), log, sinks...).Run(gctx)
	})

	g.Go(func() error {
		log.Info("starting certledger", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("shutdown complete")
	return nil
}
