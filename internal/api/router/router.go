package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/wolfman30/window-quote/internal/http/middleware"
	"github.com/wolfman30/window-quote/internal/leads"
	"github.com/wolfman30/window-quote/internal/webform"
	"github.com/wolfman30/window-quote/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	QuoteHandler       *webform.Handler
	LeadsHandler       *leads.Handler
	Health             *HealthHandler
	AdminAuthSecret    string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// RateLimiter throttles POST requests to the quote form when set.
	RateLimiter *httpmiddleware.RateLimiter
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	health := cfg.Health
	if health == nil {
		health = NewHealthHandler()
	}
	r.Get("/health", health.Live)
	r.Get("/ready", health.Ready)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.QuoteHandler != nil {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, webform.DefaultBasePath, http.StatusFound)
		})
		r.Route(webform.DefaultBasePath, func(quote chi.Router) {
			if cfg.RateLimiter != nil {
				quote.Use(httpmiddleware.RateLimit(cfg.RateLimiter, http.MethodPost))
			}
			quote.Mount("/", cfg.QuoteHandler.Routes())
		})
	}

	if cfg.LeadsHandler != nil && cfg.AdminAuthSecret != "" {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret, httpmiddleware.ScopeLeadsRead))
			admin.Mount("/leads", cfg.LeadsHandler.Routes())
		})
	}

	return r
}
