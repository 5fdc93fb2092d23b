package main

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/window-quote/cmd/mainconfig"
	"github.com/wolfman30/window-quote/internal/api/router"
	"github.com/wolfman30/window-quote/internal/app/bootstrap"
	appconfig "github.com/wolfman30/window-quote/internal/config"
	httpmiddleware "github.com/wolfman30/window-quote/internal/http/middleware"
	"github.com/wolfman30/window-quote/internal/leads"
	"github.com/wolfman30/window-quote/internal/observability/metrics"
	"github.com/wolfman30/window-quote/internal/webform"
	"github.com/wolfman30/window-quote/pkg/logging"
)

// application owns everything main needs to serve and later release.
type application struct {
	Handler http.Handler

	redis   *redis.Client
	pool    *pgxpool.Pool
	limiter *httpmiddleware.RateLimiter
}

func (a *application) Close() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

func setupMetrics() (http.Handler, *metrics.QuoteMetrics) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), metrics.NewQuoteMetrics(registry)
}

func setup(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*application, error) {
	app := &application{}

	def, err := bootstrap.BuildDefinition(cfg)
	if err != nil {
		return nil, err
	}

	verifyRedis := cfg.SessionStore == appconfig.SessionStoreRedis
	app.redis = bootstrap.BuildRedisClient(ctx, cfg, logger, verifyRedis)
	store, err := bootstrap.BuildSessionStore(ctx, cfg, def, app.redis, logger)
	if err != nil {
		app.Close()
		return nil, err
	}

	metricsHandler, quoteMetrics := setupMetrics()
	awsCfg := mainconfig.OptionalAWSConfig(ctx, cfg, logger)

	app.pool = bootstrap.BuildPostgresPool(ctx, cfg.DatabaseURL, logger)
	repo := bootstrap.BuildLeadRepository(app.pool, logger)
	intake := bootstrap.BuildIntake(cfg,
		repo,
		bootstrap.BuildLeadPublisher(cfg, awsCfg),
		bootstrap.BuildEmailSender(cfg, awsCfg, logger),
		quoteMetrics,
		logger,
	)

	renderer, err := webform.NewRenderer()
	if err != nil {
		app.Close()
		return nil, err
	}
	quoteHandler := webform.NewHandler(store, renderer, logger,
		webform.WithIntake(intake),
		webform.WithMetrics(quoteMetrics),
	)

	health := router.NewHealthHandler()
	if app.redis != nil {
		client := app.redis
		health.WithCheck("redis", func(ctx context.Context) error { return client.Ping(ctx).Err() })
	}
	if app.pool != nil {
		pool := app.pool
		health.WithCheck("postgres", pool.Ping)
	}

	if cfg.RateLimitRPS > 0 {
		app.limiter = httpmiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.AdminJWTSecret == "" {
		logger.Warn("ADMIN_JWT_SECRET not set; admin lead routes disabled")
	}

	app.Handler = router.New(&router.Config{
		Logger:             logger,
		QuoteHandler:       quoteHandler,
		LeadsHandler:       leads.NewHandler(repo, logger),
		Health:             health,
		AdminAuthSecret:    cfg.AdminJWTSecret,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:        app.limiter,
	})
	return app, nil
}
