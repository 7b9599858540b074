// Package main is the entrypoint for the Bistro Boss API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/bistroboss/bistroboss/internal/auth"
	"github.com/bistroboss/bistroboss/internal/cache"
	"github.com/bistroboss/bistroboss/internal/config"
	"github.com/bistroboss/bistroboss/internal/handler"
	"github.com/bistroboss/bistroboss/internal/metrics"
	"github.com/bistroboss/bistroboss/internal/middleware"
	"github.com/bistroboss/bistroboss/internal/payments"
	"github.com/bistroboss/bistroboss/internal/repository"
	"github.com/bistroboss/bistroboss/internal/server"
	"github.com/bistroboss/bistroboss/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Error(
			"failed to connect to document store",
			slog.String("error", sanitizeError(err, cfg.MongoURI)),
			slog.String("mongo_uri", redactURL(cfg.MongoURI)),
		)
		os.Exit(1)
	}
	logger.Info("connected to document store", slog.String("database", cfg.MongoDatabase))

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	issuer, err := auth.NewIssuer(cfg.JWTSecret)
	if err != nil {
		logger.Error("failed to initialize token issuer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	gateway, err := payments.NewStripeGateway(cfg.StripeSecretKey)
	if err != nil {
		logger.Error("failed to initialize payment gateway", slog.String("error", err.Error()))
		os.Exit(1)
	}

	recorder := metrics.NewInMemory()
	settlement := service.NewSettlement(repo, repo, gateway, logger, recorder)
	reporting := service.NewReporting(repo, repo, repo, repo)

	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	tokenHandler := handler.NewTokenHandler(issuer, logger)
	userHandler := handler.NewUserHandler(repo, reporting, cacheClient, logger)
	menuHandler := handler.NewMenuHandler(repo, logger, recorder)
	reviewHandler := handler.NewReviewHandler(repo, logger)
	cartHandler := handler.NewCartHandler(repo, logger)
	paymentHandler := handler.NewPaymentHandler(settlement, logger)
	statsHandler := handler.NewStatsHandler(reporting, logger)
	metricsHandler := handler.NewMetricsHandler(recorder)

	r := setupRouter(routerDeps{
		base:     h,
		health:   healthHandler,
		token:    tokenHandler,
		users:    userHandler,
		menu:     menuHandler,
		reviews:  reviewHandler,
		carts:    cartHandler,
		payments: paymentHandler,
		stats:    statsHandler,
		metrics:  metricsHandler,
		issuer:   issuer,
		repo:     repo,
		cache:    cacheClient,
		cfg:      cfg,
		logger:   logger,
	})

	srv := server.New(r, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	srv.OnShutdown("store", repo.Close)
	srv.OnShutdown("cache", func(ctx context.Context) error { return cacheClient.Close() })

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	base     *handler.Handler
	health   *handler.HealthHandler
	token    *handler.TokenHandler
	users    *handler.UserHandler
	menu     *handler.MenuHandler
	reviews  *handler.ReviewHandler
	carts    *handler.CartHandler
	payments *handler.PaymentHandler
	stats    *handler.StatsHandler
	metrics  *handler.MetricsHandler
	issuer   *auth.Issuer
	repo     *repository.Repository
	cache    *cache.Cache
	cfg      *config.Config
	logger   *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment: d.cfg.IsDevelopment(),
	}))
	r.Use(middleware.MaxBodySize(d.cfg.MaxRequestBodySize))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: d.cfg.GetCORSAllowedOrigins(),
	}))

	authenticate := middleware.Authenticate(middleware.AuthConfig{
		Logger: d.logger,
		Issuer: d.issuer,
	})
	requireAdmin := middleware.RequireAdmin(middleware.AdminConfig{
		Logger: d.logger,
		Users:  d.repo,
		Cache:  d.cache,
	})
	rateLimited := middleware.RateLimitIP(middleware.RateLimitConfig{
		Logger:  d.logger,
		Limiter: d.cache,
		Enabled: d.cfg.RateLimitEnabled,
		RPS:     d.cfg.RateLimitRPS,
		Burst:   d.cfg.RateLimitBurst,
	})

	// Health endpoints and service banner (no auth)
	r.Get("/healthz", d.health.Healthz)
	r.Get("/readyz", d.health.Readyz)
	r.Get("/", d.base.Root)

	// Token issuance (no auth: the upstream IdP already vouched)
	r.Post("/jwt", d.token.Issue)

	// Public catalog surface, rate limited per client IP
	r.Group(func(r chi.Router) {
		r.Use(rateLimited)
		r.Get("/menu", d.menu.List)
		r.Get("/category", d.menu.ByCategory)
	})
	r.Get("/total", d.menu.Total)
	r.Get("/menu/{id}", d.menu.Get)
	r.Get("/reviews", d.reviews.List)

	// Sign-in upsert (no auth: called on first sign-in, before a token exists)
	r.Post("/users", d.users.Create)

	// Authenticated surface
	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Post("/reviews", d.reviews.Create)

		r.With(middleware.RequireSelf("email")).Get("/carts", d.carts.List)
		r.Post("/carts", d.carts.Add)
		r.Delete("/carts/{id}", d.carts.Remove)

		r.With(middleware.RequireSelf("email")).Get("/users/admin/{email}", d.users.IsAdmin)

		r.Post("/create-payment-intent", d.payments.CreateIntent)
		r.Post("/payments", d.payments.Record)
		r.With(middleware.RequireSelf("email")).Get("/payments/{email}", d.payments.History)

		// Admin-only surface
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)

			r.Get("/users", d.users.List)
			r.Patch("/users/admin/{id}", d.users.Promote)
			r.Delete("/users/{id}", d.users.Delete)

			r.Post("/menu", d.menu.Create)
			r.Patch("/menu/{id}", d.menu.Update)
			r.Delete("/menu/{id}", d.menu.Delete)

			r.Get("/admin-stats", d.stats.AdminStats)
			r.Get("/order-stats", d.stats.OrderStats)
			r.Get("/metrics", d.metrics.Metrics)
		})
	})

	// 404 and 405 handlers
	r.NotFound(d.base.NotFound)
	r.MethodNotAllowed(d.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

// redactURL strips credentials from a connection string before logging.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

// sanitizeError removes known secrets from an error message.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
