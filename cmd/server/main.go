package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"countries/internal/country/handler"
	"countries/internal/country/service"
	"countries/internal/events"
	"countries/internal/platform/config"
	"countries/internal/platform/httpserver"
	"countries/internal/platform/logger"
	"countries/internal/platform/metrics"
	"countries/internal/platform/middleware"
	"countries/internal/platform/redis"
	"countries/internal/providers"
	"countries/internal/ratelimit/quota"
	"countries/internal/storage"
	httptransport "countries/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Log)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, err := storage.Open(ctx, cfg.Store, log)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer func() {
		if err := records.Close(context.Background()); err != nil {
			log.Error("failed to close record store", "error", err)
		}
	}()

	checks := map[string]httptransport.Pinger{"store": records.Store}

	limiter, closeLimiter, err := newQuotaLimiter(ctx, cfg, checks)
	if err != nil {
		return err
	}
	defer closeLimiter()

	publisher, closePublisher := newPublisher(ctx, cfg.Kafka, log)
	defer closePublisher()

	deps := buildProviders(cfg.Providers, records.Store, limiter, providers.NewMetrics(), log)

	svcOpts := []service.Option{
		service.WithPhotoSources(deps.handler.Unsplash, deps.handler.Pixabay, deps.handler.Pexels),
		service.WithPublisher(publisher),
		service.WithLogger(log),
	}
	if deps.geocoder != nil {
		svcOpts = append(svcOpts, service.WithGeocoder(deps.geocoder))
	}
	if deps.encyclopedia != nil {
		svcOpts = append(svcOpts, service.WithEncyclopedia(deps.encyclopedia))
	}
	svc, err := service.New(records.Store, svcOpts...)
	if err != nil {
		return err
	}

	var validator middleware.JWTValidator
	if cfg.Server.JWTSigningKey != "" {
		v, err := middleware.NewHMACValidator([]byte(cfg.Server.JWTSigningKey))
		if err != nil {
			return err
		}
		validator = v
	} else {
		log.Warn("JWT_SIGNING_KEY not set, update routes are open")
	}

	h := handler.New(svc, deps.handler, log, metrics.New(), validator, cfg.Server.RequestTimeout)
	router := httptransport.NewRouter(h, checks, promhttp.Handler(), log)

	srv := httpserver.New(cfg.Server, router)
	return httpserver.Run(ctx, srv, cfg.Server.ShutdownTimeout, log)
}

// newQuotaLimiter shares the social quota through Redis when configured and
// keeps it in process otherwise.
func newQuotaLimiter(ctx context.Context, cfg config.Config, checks map[string]httptransport.Pinger) (quota.Limiter, func(), error) {
	limit := cfg.Providers.XMaxRequestsPerDay
	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	if client == nil {
		return quota.NewInMemory(limit, quota.Day), func() {}, nil
	}
	checks["redis"] = httptransport.PingFunc(client.Health)
	return quota.NewRedis(client, limit, quota.Day), func() { _ = client.Close() }, nil
}

// newPublisher returns a Kafka publisher when brokers are configured. Broker
// trouble at startup is logged and events are dropped rather than failing boot.
func newPublisher(ctx context.Context, cfg config.Kafka, log *slog.Logger) (events.Publisher, func()) {
	if len(cfg.Brokers) == 0 {
		return events.Nop{}, func() {}
	}
	pub, err := events.NewKafka(cfg.Brokers, cfg.Topic, log)
	if err != nil {
		log.Error("event publisher disabled", "error", err)
		return events.Nop{}, func() {}
	}
	if err := pub.EnsureTopic(ctx); err != nil {
		log.Warn("could not ensure event topic", "topic", cfg.Topic, "error", err)
	}
	return pub, pub.Close
}
