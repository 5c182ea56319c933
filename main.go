package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lotus-engine/config"
	httpLayer "lotus-engine/http"
	"lotus-engine/logging"
	"lotus-engine/metrics"
	"lotus-engine/presets"
	"lotus-engine/repository"
	"lotus-engine/service"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.Setup(logging.Options{
		Service:   "lotus-engine",
		Env:       cfg.Env,
		Level:     logging.ParseLevel(cfg.LogLevel),
		File:      cfg.LogFile,
		MaxSizeMB: cfg.LogMaxSizeMB,
	})

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server exited")
}

func run(cfg config.Config, logger *slog.Logger) error {
	catalog, err := presets.Load(cfg.PresetsFile)
	if err != nil {
		return err
	}

	cache := openCache(cfg, logger)
	if closer, ok := cache.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	snapshots, err := openSnapshots(cfg)
	if err != nil {
		return err
	}
	if closer, ok := snapshots.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	reg := metrics.Default()
	opts := []service.Option{
		service.WithLogger(logger),
		service.WithMetrics(reg),
		service.WithCacheTTL(cfg.CacheTTL),
		service.WithInsights(service.NewInsightService(cfg.OpenAIKey, cfg.OpenAIModel, logger).
			WithTimeout(insightTimeout(cfg.WriteTimeout))),
	}

	trancheService := service.NewTrancheService(snapshots, cache, opts...)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst, reg)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.RouterConfig{
		Tranches:    trancheService,
		Simulations: service.NewSimulationService(trancheService),
		Scenarios:   service.NewScenarioService(opts...),
		Presets:     service.NewPresetService(catalog),
		Snapshots:   service.NewSnapshotService(snapshots),
		RateLimiter: rateLimiter,
		Metrics:     reg,
		Logger:      logger,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("lotus engine listening", slog.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(ctx)
}

// insightTimeout leaves half of the write timeout for the rest of the
// request.
func insightTimeout(writeTimeout time.Duration) time.Duration {
	if writeTimeout <= 0 || writeTimeout/2 > service.DefaultInsightTimeout {
		return service.DefaultInsightTimeout
	}
	return writeTimeout / 2
}

// openCache prefers Redis and falls back to the in-process cache when Redis
// is not configured or unreachable.
func openCache(cfg config.Config, logger *slog.Logger) repository.CacheRepository {
	if cfg.RedisAddr == "" {
		return repository.NewMemoryCache()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cache, err := repository.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Warn("redis unavailable, using in-memory cache",
			slog.String("addr", cfg.RedisAddr), slog.Any("error", err))
		return repository.NewMemoryCache()
	}
	return cache
}

func openSnapshots(cfg config.Config) (repository.SnapshotRepository, error) {
	if cfg.SQLitePath == "" {
		return repository.NewSnapshotRepositoryMemory(), nil
	}
	return repository.OpenSQLiteSnapshotRepository(cfg.SQLitePath)
}
