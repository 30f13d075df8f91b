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

	"github.com/dom/hero-archive/internal/api"
	"github.com/dom/hero-archive/internal/authz"
	"github.com/dom/hero-archive/internal/cache"
	"github.com/dom/hero-archive/internal/config"
	"github.com/dom/hero-archive/internal/logging"
	"github.com/dom/hero-archive/internal/repository/postgres"
	"github.com/dom/hero-archive/internal/service"
	"github.com/dom/hero-archive/internal/websocket"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL, logging.GormLevel(cfg.LogLevel))
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	repos := postgres.NewRepositories(db)

	opts := service.Options{Logger: logger}

	// Optional catalog cache
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewRedisClient(ctx, cache.DefaultConfig(cfg.RedisURL))
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		opts.Cache = cache.NewHeroCache(redisClient, cfg.HeroCacheTTL)
		logger.Info("hero cache enabled", "ttl", cfg.HeroCacheTTL)
	}

	// Tokens from an external issuer
	if cfg.JWKSURL != "" {
		verifier, err := authz.NewJWKSVerifier(ctx, cfg.JWKSURL, cfg.Verification(), logger)
		if err != nil {
			logger.Error("failed to load JWKS", "url", cfg.JWKSURL, "error", err)
			os.Exit(1)
		}
		opts.Verifier = verifier
		logger.Info("verifying tokens against JWKS; local sign-in disabled", "url", cfg.JWKSURL)
	}

	hub := websocket.NewHub(logger)
	go hub.Run()
	opts.Events = hub

	services, err := service.NewServices(repos, cfg, opts)
	if err != nil {
		logger.Error("failed to initialize services", "error", err)
		os.Exit(1)
	}

	router := api.NewRouter(services, hub, cfg, logger)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	hub.Stop()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn("failed to close redis", "error", err)
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("server stopped")
}
