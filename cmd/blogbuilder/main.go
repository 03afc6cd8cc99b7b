// Package main is the entry point for the blog builder server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
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

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"blogbuilder/internal/blog"
	"blogbuilder/internal/cache"
	"blogbuilder/internal/config"
	"blogbuilder/internal/database"
	"blogbuilder/internal/draft"
	"blogbuilder/internal/handlers"
	"blogbuilder/internal/metrics"
	"blogbuilder/internal/middleware"
	"blogbuilder/internal/quickview"
	"blogbuilder/internal/render"
	"blogbuilder/internal/router"
	"blogbuilder/internal/shopify"
	"blogbuilder/internal/storage"
	"blogbuilder/internal/store"
	"blogbuilder/internal/telemetry"
)

func main() {
	// Load configuration from environment variables (and .env, if present).
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON otherwise.
	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"shop", cfg.ShopifyShop,
	)
	if cfg.ShopifyShop == "" || cfg.ShopifyToken == "" {
		slog.Warn("shopify credentials not configured, Admin API calls will fail")
	}

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:     cfg.OTelEnabled,
		ServiceName: cfg.OTelServiceName,
		Endpoint:    cfg.OTelEndpoint,
	})
	if err != nil {
		slog.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}

	// Prometheus collectors, served on /metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(reg)
	if err != nil {
		slog.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	// Shopify Admin API client.
	shop := shopify.NewClient(shopify.Config{
		Shop:        cfg.ShopifyShop,
		AccessToken: cfg.ShopifyToken,
		APIVersion:  cfg.ShopifyAPIVersion,
		Calls:       m.ShopifyCalls,
	}, shopify.WithLogger(logger), shopify.WithTracing())

	// PostgreSQL is optional; without it there is no revision history.
	opts := blog.Options{
		KeepRevisions: cfg.RevisionKeep,
		Sanitize:      cfg.SanitizeText,
		Saves:         m.ArticleSaves,
	}
	if cfg.HistoryEnabled() {
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		opts.Revisions = store.NewRevisionStore(db)
	} else {
		slog.Warn("postgres not configured, revision history disabled")
	}
	blogService := blog.NewService(shopify.NewArticleRepository(shop, cfg.ShopifyBlogID), opts)

	deps := handlers.Deps{
		Blog:      blogService,
		Media:     shopify.NewMediaLibrary(shop),
		Quickview: quickview.NewService(shopify.NewMetafields(shop)),
	}

	// Valkey is optional; it holds drafts and cached responses.
	var valkeyClient *redis.Client
	if cfg.ValkeyEnabled() {
		valkeyClient, err = cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()

		deps.Drafts = draft.NewStore(valkeyClient, cfg.DraftTTL)
		deps.QVCache = cache.NewResponseCache(valkeyClient, cache.QuickviewPrefix, cache.DefaultTTL)
		deps.MediaCache = cache.NewResponseCache(valkeyClient, cache.MediaPrefix, cache.MediaTTL)
	} else {
		slog.Warn("valkey not configured, drafts and response caching disabled")
	}

	// S3-compatible object storage is optional; uploads fall back to data: URLs.
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
		deps.Uploader = storageClient
		slog.Info("s3 storage configured", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, uploads become data: URLs")
	}

	// Initialize the HTML template renderer for admin pages.
	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	limiter := middleware.NewRateLimiter(cfg.PublicRateLimit, time.Minute)
	defer limiter.Stop()

	r := router.New(router.Config{
		API:      handlers.NewAPI(deps),
		Admin:    handlers.NewAdmin(renderer, blogService, cfg.ShopifyShop),
		Shop:     cfg.ShopifyShop,
		Gatherer: reg,
		Requests: m.HTTPRequests,
		Limiter:  limiter,
	})

	// Create the HTTP server with sensible timeouts. Saves wait on several
	// sequential Admin API calls.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      otelhttp.NewHandler(r, "blogbuilder"),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("tracer shutdown failed", "error", err)
	}

	slog.Info("server stopped gracefully")
}
