package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnknownOlympus/plaza/internal/columns"
	"github.com/UnknownOlympus/plaza/internal/config"
	"github.com/UnknownOlympus/plaza/internal/dataset"
	"github.com/UnknownOlympus/plaza/internal/geocoding"
	"github.com/UnknownOlympus/plaza/internal/metrics"
	"github.com/UnknownOlympus/plaza/internal/repository"
	"github.com/UnknownOlympus/plaza/internal/server"
	"github.com/UnknownOlympus/plaza/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const bytesPerMB = 1 << 20

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	resolver, err := columns.NewResolver(cfg.Columns)
	if err != nil {
		log.Fatalf("Invalid column rules: %v", err)
	}

	stat, err := dataset.ParseStatistic(cfg.UnitPriceStat)
	if err != nil {
		log.Fatalf("Invalid unit price statistic: %v", err)
	}

	// The study history is optional; without a database host uploads are not recorded.
	var (
		repo repository.Interface = repository.Discard{}
		db   server.Pinger
	)
	if cfg.Database.Enabled() {
		pool, dbErr := repository.NewDatabase(ctx, cfg.Database.DSN())
		if dbErr != nil {
			log.Fatalf("Failed to connect to DB: %v", dbErr)
		}
		defer pool.Close()

		pgRepo := repository.NewRepository(pool, logger)
		if dbErr = pgRepo.EnsureSchema(ctx); dbErr != nil {
			log.Fatalf("Failed to prepare DB schema: %v", dbErr)
		}
		repo, db = pgRepo, pool
		logger.InfoContext(ctx, "Study history enabled", "host", cfg.Database.Host, "db", cfg.Database.Name)
	}

	// Create the place search provider using the factory based on configuration.
	places, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.Places.Provider),
		APIKey:    cfg.Places.APIKey,
		RateLimit: cfg.Places.RateLimit,
		Language:  cfg.Places.Language,
		Logger:    logger,
	})
	switch {
	case errors.Is(err, geocoding.ErrPlacesDisabled):
		logger.InfoContext(ctx, "Place search disabled")
	case err != nil:
		log.Fatalf("Failed to create place search provider: %v", err)
	default:
		logger.InfoContext(ctx, "Place search provider initialized", "type", cfg.Places.Provider)
	}

	studies, err := service.NewStudyService(
		logger,
		repo,
		resolver,
		appMetrics,
		cfg.CacheSize,
		cfg.Sheet,
		stat,
	)
	if err != nil {
		log.Fatalf("Failed to create study service: %v", err)
	}

	srv, err := server.New(server.Options{
		Logger:         logger,
		Studies:        studies,
		Places:         places,
		PlacesProvider: cfg.Places.Provider,
		Metrics:        appMetrics,
		Gatherer:       reg,
		DB:             db,
		MaxUploadBytes: int64(cfg.MaxUploadMB) * bytesPerMB,
	})
	if err != nil {
		log.Fatalf("Failed to create HTTP server: %v", err)
	}

	httpServer := server.NewHTTPServer(cfg.Port, srv.Handler())
	go func() {
		logger.InfoContext(ctx, "Starting HTTP server", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "HTTP server failed", "error", err)
			stop()
		}
	}()

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err = httpServer.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "Failed to shut down HTTP server", "error", err)
		return
	}

	// Log graceful shutdown completion.
	logger.InfoContext(shutdownCtx, "Application stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
