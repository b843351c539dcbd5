package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tmorgan/bloodmoney/internal/api"
	"github.com/tmorgan/bloodmoney/internal/config"
	"github.com/tmorgan/bloodmoney/internal/database"
	"github.com/tmorgan/bloodmoney/internal/poller"
	"github.com/tmorgan/bloodmoney/internal/ratelimit"
	"github.com/tmorgan/bloodmoney/internal/realms"
	"github.com/tmorgan/bloodmoney/internal/version"
	"github.com/tmorgan/bloodmoney/internal/writer"
)

func main() {
	configPath := flag.String("config", "configs/gatherer.local.yaml", "path to config file")
	healthPort := flag.Int("health-port", 8080, "health endpoint port")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting gatherer",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"api_url", cfg.API.BaseURL,
		"rate_limit", fmt.Sprintf("%d per %s", cfg.RateLimit.Requests, cfg.RateLimit.Window),
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to database
	logger.Info("connecting to database",
		"host", cfg.Database.Postgres.Host,
		"port", cfg.Database.Postgres.Port,
		"database", cfg.Database.Postgres.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database.Postgres)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	logger.Info("database connected")

	// One limiter per credential, shared by every request path.
	limiter := ratelimit.New(cfg.RateLimit.Requests, cfg.RateLimit.Window)

	apiClient := api.NewClient(
		cfg.API.BaseURL,
		cfg.API.APIKey,
		api.WithLocale(cfg.API.Locale),
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, cfg.API.RetryBackoff),
		api.WithLimiter(limiter),
	)

	// Realm registry (initial sync is blocking)
	registry := realms.New(realms.Config{
		ReconcileInterval: cfg.Realms.ReconcileInterval,
		SyncTimeout:       cfg.Realms.SyncTimeout,
	}, apiClient, logger)

	logger.Info("starting realm registry (initial sync)...")
	if err := registry.Start(ctx); err != nil {
		logger.Error("failed to start realm registry", "error", err)
		os.Exit(1)
	}
	defer registry.Stop()

	groups := registry.Groups()
	logger.Info("realm registry started", "groups", len(groups))

	// Auction writer
	auctionWriter := writer.NewAuctionWriter(writer.WriterConfig{
		BatchSize:     cfg.Writers.BatchSize,
		FlushInterval: cfg.Writers.FlushInterval,
	}, pool, logger)

	if err := auctionWriter.Start(ctx); err != nil {
		logger.Error("failed to start auction writer", "error", err)
		os.Exit(1)
	}

	// Auction poller
	auctionPoller := poller.New(poller.Config{
		Interval:    cfg.Poller.Interval,
		Concurrency: cfg.Poller.Concurrency,
		Timeout:     cfg.Poller.Timeout,
	}, apiClient, registry, auctionWriter, logger)

	if err := auctionPoller.Start(ctx); err != nil {
		logger.Error("failed to start auction poller", "error", err)
		os.Exit(1)
	}

	// Health server
	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *healthPort),
		Handler: createHealthHandler(pool, registry, auctionWriter),
	}

	go func() {
		logger.Info("starting health server", "port", *healthPort)
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("health server error", "error", err)
		}
	}()

	logger.Info("gatherer running",
		"instance_id", cfg.Instance.ID,
		"health_url", fmt.Sprintf("http://localhost:%d/health", *healthPort),
	)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := auctionPoller.Stop(shutdownCtx); err != nil {
		logger.Warn("auction poller stop", "error", err)
	}
	if err := auctionWriter.Stop(shutdownCtx); err != nil {
		logger.Warn("auction writer stop", "error", err)
	}
	healthServer.Shutdown(shutdownCtx)

	logger.Info("gatherer stopped")
}

// createHealthHandler creates the HTTP handler for health checks.
func createHealthHandler(pool *pgxpool.Pool, registry *realms.Registry, w *writer.AuctionWriter) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string         `json:"status"`
			Components map[string]any `json:"components"`
		}{
			Status:     "healthy",
			Components: make(map[string]any),
		}

		if err := pool.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Components["postgres"] = map[string]string{
				"status": "disconnected",
				"error":  err.Error(),
			}
		} else {
			health.Components["postgres"] = "connected"
		}

		groups := registry.Groups()
		health.Components["realm_registry"] = map[string]any{
			"groups":       len(groups),
			"last_sync_at": registry.LastSyncAt(),
		}
		if len(groups) == 0 {
			health.Status = "degraded"
		}

		stats := w.Stats()
		health.Components["auction_writer"] = map[string]any{
			"inserts": stats.Inserts,
			"flushes": stats.Flushes,
			"errors":  stats.Errors,
		}

		rw.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			rw.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(rw).Encode(health)
	})

	return mux
}
