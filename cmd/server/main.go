package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mdillard/todoapi/internal/api"
	"github.com/mdillard/todoapi/internal/factory"
	"github.com/mdillard/todoapi/internal/services/auth"
	redisstorage "github.com/mdillard/todoapi/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// The signing key is loaded once here and read-only for the process
	// lifetime; rotating it requires a restart and invalidates all
	// outstanding tokens
	secret := os.Getenv("TODOAPI_TOKEN_SECRET")
	if secret == "" {
		logger.Error("TODOAPI_TOKEN_SECRET required")
		os.Exit(1)
	}

	authCfg := auth.DefaultConfig()
	authCfg.TokenSecret = []byte(secret)
	if ttl := os.Getenv("TODOAPI_TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			logger.Error("invalid TODOAPI_TOKEN_TTL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		authCfg.TokenTTL = d
	}
	if leeway := os.Getenv("TODOAPI_TOKEN_LEEWAY"); leeway != "" {
		d, err := time.ParseDuration(leeway)
		if err != nil {
			logger.Error("invalid TODOAPI_TOKEN_LEEWAY", slog.String("error", err.Error()))
			os.Exit(1)
		}
		authCfg.TokenLeeway = d
	}

	// Build factory config from environment
	cfg := factory.Config{
		AuthConfig:  authCfg,
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		TodoController: app.TodoController,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("error", err.Error()))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
