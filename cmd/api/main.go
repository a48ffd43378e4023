// Package main is the entry point for the tripboard API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/familytrip/tripboard/internal/auth"
	"github.com/familytrip/tripboard/internal/config"
	"github.com/familytrip/tripboard/internal/exchange"
	"github.com/familytrip/tripboard/internal/handler"
	"github.com/familytrip/tripboard/internal/middleware"
	"github.com/familytrip/tripboard/internal/repo"
	"github.com/familytrip/tripboard/internal/service"
	"github.com/familytrip/tripboard/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		db := stdlib.OpenDBFromPool(pool)
		n, err := migrations.Up(context.Background(), db)
		_ = db.Close()
		if err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied", "count", n)
	}

	// --- Services ---------------------------------------------------------
	metrics := middleware.NewMetrics("tripboard")

	tripRepo := repo.NewTripRepo(pool)
	scheduleRepo := repo.NewScheduleRepo(pool)
	expenseRepo := repo.NewExpenseRepo(pool)

	// Left nil when no page is configured: the route is not registered and
	// expense summaries carry no converted total.
	var (
		rateSvc    handler.RateServicer
		rateSource service.RateSource
	)
	if cfg.ExchangeRate.URL != "" {
		rates := exchange.NewService(exchange.Config{
			URL:        cfg.ExchangeRate.URL,
			ClassToken: cfg.ExchangeRate.Class,
			Source:     cfg.ExchangeRate.Source,
			TTL:        cfg.ExchangeRate.TTL,
		}, exchange.WithObserver(metrics), exchange.WithLogger(logger))
		rateSvc, rateSource = rates, rates
	} else {
		slog.Warn("EXCHANGE_RATE_URL not set; /exchange-rate is disabled")
	}

	srv := handler.NewServer(handler.Services{
		Trips:      service.NewTripService(tripRepo),
		Schedules:  service.NewScheduleService(tripRepo, scheduleRepo),
		Places:     service.NewPlaceService(tripRepo, repo.NewPlaceRepo(pool)),
		Checklists: service.NewChecklistService(tripRepo, repo.NewChecklistRepo(pool)),
		Expenses:   service.NewExpenseService(tripRepo, scheduleRepo, expenseRepo, rateSource),
		Memos:      service.NewMemoService(tripRepo, repo.NewMemoRepo(pool)),
		Exports:    service.NewExportService(tripRepo, scheduleRepo, expenseRepo),
		Rates:      rateSvc,
	}, logger)

	var verifier middleware.TokenVerifier
	if cfg.Supabase.Enabled() {
		v, err := auth.NewSupabaseVerifier(cfg.Supabase.URL, cfg.Supabase.Key)
		if err != nil {
			slog.Error("failed to create supabase client", "error", err)
			os.Exit(1)
		}
		verifier = v
		slog.Info("bearer-token authentication enabled")
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer →
	// Metrics → CORS → MaxBodySize → Auth.
	// Logger and Recoverer wrap everything else, so rejected and panicking
	// requests are logged. CORS runs before auth so preflights never need a token.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Use(middleware.NewAuthHandler(verifier, logger, "/healthz", "/metrics"))

	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	srv.Routes(r)

	// --- HTTP Server ------------------------------------------------------
	// The write timeout leaves room for an exchange-rate scrape on a cold cache.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
