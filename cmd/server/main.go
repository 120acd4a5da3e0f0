package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/caarlos0/env/v11"

	"github.com/mfreeman/gridledger/internal/api"
	"github.com/mfreeman/gridledger/internal/factory"
	redisstorage "github.com/mfreeman/gridledger/internal/storage/redis"
)

// serverEnv is the environment-driven server configuration
type serverEnv struct {
	Host        string `env:"GRIDLEDGER_HOST" envDefault:""`
	Port        int    `env:"GRIDLEDGER_PORT" envDefault:"8080"`
	StorageType string `env:"GRIDLEDGER_STORAGE" envDefault:"memory"`
	RedisURL    string `env:"GRIDLEDGER_REDIS_URL"`
}

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var envCfg serverEnv
	if err := env.Parse(&envCfg); err != nil {
		logger.Error("failed to parse environment", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: envCfg.StorageType,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		if envCfg.RedisURL == "" {
			logger.Error("GRIDLEDGER_REDIS_URL required when GRIDLEDGER_STORAGE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = envCfg.RedisURL
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
		Logger:        logger,
		Verifier:      app.Verifier,
		BoardService:  app.BoardService,
		PlayerService: app.PlayerService,
		Coordinator:   app.Coordinator,
	})

	// Create server
	addr := net.JoinHostPort(envCfg.Host, strconv.Itoa(envCfg.Port))
	server := api.NewServer(router, addr, logger)

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

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.StorageType),
	)

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
