// Package main is the entry point for the devforum API server.
// It loads configuration, connects to optional services, sets up routing, and
// starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"devforum/internal/cache"
	"devforum/internal/config"
	"devforum/internal/forum"
	"devforum/internal/handlers"
	"devforum/internal/logging"
	"devforum/internal/middleware"
	"devforum/internal/moderation"
	"devforum/internal/router"
	"devforum/internal/storage"
	"devforum/internal/store"
)

func main() {
	// Optional .env next to the binary; OS environment wins.
	if err := config.LoadEnvFile(".env"); err != nil {
		slog.Error("failed to read env file", "error", err)
		os.Exit(1)
	}

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: colored text in development, JSON elsewhere.
	logging.Setup(os.Stdout, cfg.Env, cfg.LogLevel)

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"classifier", cfg.Classifier,
	)

	// Moderation gate over the configured classifier.
	classifier, err := moderation.NewClassifier(moderation.ClassifierConfig{
		Name:            cfg.Classifier,
		SentimentCutoff: cfg.SentimentCutoff,
		OpenAIKey:       cfg.OpenAIAPIKey,
		OpenAIBaseURL:   cfg.OpenAIBaseURL,
		Fallback:        cfg.ClassifierFallback,
	})
	if err != nil {
		slog.Error("failed to initialize classifier", "error", err)
		os.Exit(1)
	}
	gate, err := moderation.NewGate(classifier, moderation.Thresholds{
		Warn:  cfg.WarnThreshold,
		Block: cfg.BlockThreshold,
	})
	if err != nil {
		slog.Error("invalid moderation thresholds", "error", err)
		os.Exit(1)
	}

	contentStore := store.NewContentStore()
	if cfg.Seed {
		store.Seed(contentStore)
		slog.Info("sample content seeded", "posts", contentStore.CountPosts())
	}

	// Connect to Valkey for the insights cache (optional).
	var insights forum.InsightsCache
	if addr := cfg.ValkeyAddr(); addr != "" {
		client, err := cache.Connect(addr, cfg.ValkeyPassword, cfg.ValkeyDB)
		if err != nil {
			slog.Warn("valkey unavailable, insights computed per request", "error", err)
		} else {
			defer client.Close()
			// Store revisions restart at zero on every boot; a fresh
			// namespace keeps earlier runs' entries out of reach, and the
			// purge drops them instead of waiting for their TTL.
			ic := cache.NewInsightsCache(client, uuid.NewString(), cache.DefaultInsightsTTL)
			ic.InvalidateAll(context.Background())
			insights = ic
		}
	} else {
		slog.Info("valkey not configured, insights cache disabled")
	}

	svc := forum.NewService(contentStore, gate, insights)

	// Connect to S3-compatible object storage for export delivery (optional).
	var deliverer handlers.Deliverer
	storageClient, err := storage.New(storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		deliverer = storageClient
		slog.Info("s3 export delivery enabled",
			"endpoint", cfg.S3Endpoint,
			"bucket", storageClient.Bucket(),
		)
	} else {
		slog.Info("s3 storage not configured, exports are download-only")
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer limiter.Stop()

	r := router.New(handlers.NewAPI(svc, deliverer), limiter)

	// WriteTimeout must cover a remote classifier call (15s client timeout).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
