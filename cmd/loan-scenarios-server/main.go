package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/loan-scenarios/internal/logging"
	"github.com/iwvelando/loan-scenarios/internal/server"
	"github.com/iwvelando/loan-scenarios/internal/template"
	"github.com/iwvelando/loan-scenarios/pkg/constants"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	store, closeStore := newStore(logger, cfg.Redis)
	defer closeStore()

	srv := &http.Server{
		Addr: cfg.Address,
		Handler: server.NewHandler(logger, store, server.Options{
			MaxUploadSize: cfg.UploadSizeBytes(),
			RateLimit:     cfg.RateLimit,
			Version:       version,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("listening on %s", cfg.Address),
			zap.String("op", "main"),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Fatal("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	case sig := <-quit:
		logger.Info(fmt.Sprintf("received %s, shutting down", sig),
			zap.String("op", "main"),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

// newStore selects the Redis template store when one is configured and
// answers a ping, falling back to process memory otherwise.
func newStore(logger *zap.Logger, cfg server.RedisConfig) (template.Store, func()) {
	if !cfg.Enabled() {
		logger.Info("no redis configured, keeping templates in memory",
			zap.String("op", "main.newStore"),
		)
		return template.NewMemoryStore(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, keeping templates in memory",
			zap.String("op", "main.newStore"),
			zap.String("address", cfg.Address),
			zap.Error(err),
		)
		_ = client.Close()
		return template.NewMemoryStore(), func() {}
	}

	logger.Info("storing templates in redis",
		zap.String("op", "main.newStore"),
		zap.String("address", cfg.Address),
		zap.Int("db", cfg.DB),
	)
	return template.NewRedisStore(client, cfg.KeyPrefix), func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close redis client",
				zap.String("op", "main.newStore"),
				zap.Error(err),
			)
		}
	}
}
