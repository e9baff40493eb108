package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"roomgate/internal/access"
	accessmetrics "roomgate/internal/access/metrics"
	"roomgate/internal/access/service"
	membershipstore "roomgate/internal/access/store/membership"
	roomstore "roomgate/internal/access/store/room"
	userstore "roomgate/internal/access/store/user"
	"roomgate/internal/health"
	"roomgate/internal/platform/config"
	"roomgate/internal/platform/httpserver"
	"roomgate/internal/platform/logger"
	"roomgate/internal/platform/postgres"
	platformredis "roomgate/internal/platform/redis"
	"roomgate/internal/ratelimit"
	"roomgate/internal/ratelimit/bucket"
	"roomgate/internal/token"
	"roomgate/pkg/platform/audit"
	auditkafka "roomgate/pkg/platform/audit/kafka"
	"roomgate/pkg/platform/middleware/metadata"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.Database.DSN)
	if err != nil {
		log.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var auditor audit.Publisher
	var kafkaPublisher *auditkafka.Publisher
	if len(cfg.Kafka.Seeds) > 0 {
		kafkaPublisher, err = auditkafka.New(ctx, cfg.Kafka.Seeds, cfg.Kafka.AuditTopic,
			auditkafka.WithLogger(log))
		if err != nil {
			log.Error("connect kafka", "error", err)
			os.Exit(1)
		}
		auditor = kafkaPublisher
	} else {
		log.Info("kafka seeds not configured, audit events stay in memory")
		auditor = audit.NewMemoryPublisher(0)
	}

	issuer, err := token.New(cfg.Signing)
	if err != nil {
		log.Error("configure credential issuer", "error", err)
		os.Exit(1)
	}

	svc, err := access.NewService(
		userstore.NewPostgres(db),
		roomstore.NewPostgres(db),
		membershipstore.NewPostgres(db),
		issuer,
		cfg.SessionURL,
		service.WithLogger(log),
		service.WithAuditPublisher(auditor),
		service.WithMetrics(accessmetrics.New()),
	)
	if err != nil {
		log.Error("construct access service", "error", err)
		os.Exit(1)
	}

	var limiter ratelimit.Store
	if redisClient != nil {
		limiter = bucket.NewRedis(redisClient.Client)
	} else {
		limiter = bucket.NewInMemory()
	}

	router := chi.NewRouter()
	router.Use(metadata.RequestMetadata)
	router.Group(func(r chi.Router) {
		r.Use(ratelimit.Middleware(limiter, cfg.RateLimitPerMinute, time.Minute, log))
		access.NewHandler(svc, log).Register(r)
	})
	health.New(db, pinger(redisClient)).Register(router)
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting roomgate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if kafkaPublisher != nil {
			return kafkaPublisher.Close(shutdownCtx)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("shutdown", "error", err)
		os.Exit(1)
	}
}

// pinger avoids handing the health handler a typed nil when Redis is not
// configured.
func pinger(c *platformredis.Client) health.Pinger {
	if c == nil {
		return nil
	}
	return c
}
