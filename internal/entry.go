// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/starford/gestorplan/internal/api"
	"github.com/starford/gestorplan/internal/assistant"
	"github.com/starford/gestorplan/internal/cache"
	"github.com/starford/gestorplan/internal/importwatch"
	"github.com/starford/gestorplan/internal/mcpserver"
	"github.com/starford/gestorplan/internal/notify"
	"github.com/starford/gestorplan/internal/reminder"
	"github.com/starford/gestorplan/internal/scheduling"
	"github.com/starford/gestorplan/internal/sse"
	"github.com/starford/gestorplan/internal/store"
)

// Run starts the HTTP application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("cache_path", cfg.Cache.Path),
		slog.String("store_url", cfg.Store.URL),
		slog.Bool("reminders", cfg.Reminders.Enabled),
		slog.Bool("assistant", cfg.Assistant.Enabled()),
		slog.String("log_level", cfg.App.LogLevel.String()))

	svc, db, broker, err := buildService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints.
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", api.NewRouter(svc, cfg.Calendar.Weekday(), broker))

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Daily reminder rescan.
	if cfg.Reminders.Enabled {
		c := cron.New()
		if _, err := c.AddFunc(cfg.Reminders.CronSpec(), func() {
			svc.Scan()
		}); err != nil {
			return fmt.Errorf("schedule reminder scan: %w", err)
		}
		c.Start()
		g.Go(func() error {
			<-gCtx.Done()
			<-c.Stop().Done()
			return nil
		})
		logger.Info("Reminder scan scheduled", slog.String("daily_at", cfg.Reminders.DailyAt))
	}

	// Import inbox watcher.
	if cfg.Import.Inbox != "" {
		g.Go(func() error {
			return importwatch.Watch(gCtx, svc, cfg.Import.Inbox, logger)
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		broker.Close()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP starts the scheduling MCP server on stdin/stdout. Logs go to
// stderr so stdout stays clean for the protocol.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	svc, db, _, err := buildService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(svc).ServeStdio()
}

// buildService wires the cache, record store, reminder engine, SSE broker,
// and assistant into a scheduling service and loads the initial collection.
func buildService(ctx context.Context, cfg *Config, logger *slog.Logger) (*scheduling.Service, *cache.DB, *sse.Broker, error) {
	db, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init cache: %w", err)
	}

	var st store.Provider
	if cfg.Store.URL != "" {
		st = store.NewHTTP(cfg.Store.URL, cfg.Store.Timeout.Std())
	} else {
		// Standalone mode: the in-memory store starts from the cached
		// collection so restarts keep the data.
		mem := store.NewMemory()
		if cached, cerr := db.Requests(); cerr == nil {
			mem.Seed(cached)
		} else {
			logger.Warn("cache read failed, starting empty", slog.String("error", cerr.Error()))
		}
		st = mem
	}

	broker := sse.NewBroker()

	notifier := notify.Multi(
		notify.LogNotifier{},
		notify.SSENotifier{Broker: broker},
	)
	engine := reminder.New(&cache.SentLogStore{DB: db}, notifier, cfg.Reminders.RetentionDays, nil)

	var ai scheduling.Asker
	if cfg.Assistant.Enabled() {
		ai = assistant.New(cfg.Assistant.APIKey, cfg.Assistant.URL, cfg.Assistant.Model, cfg.Assistant.Timeout.Std())
	}

	svc := scheduling.NewService(st, db, engine, broker, ai, cfg.Reminders.Enabled)
	if err := svc.Load(ctx); err != nil {
		logger.Warn("initial load failed", slog.String("error", err.Error()))
	}

	return svc, db, broker, nil
}
