package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/blog-store-api/internal/api"
	"github.com/blog-store-api/internal/config"
	"github.com/blog-store-api/internal/kv"
	"github.com/blog-store-api/internal/metrics"
	"github.com/blog-store-api/internal/repository"
	"github.com/blog-store-api/internal/service"
	"github.com/blog-store-api/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log := logger.New("info", "json")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("driver", cfg.Storage.Driver).Msg("Starting Blog Store API server...")

	// Metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	// Open key-value medium (runs migrations for SQL backends)
	ctx := context.Background()
	backend, err := kv.Open(ctx, cfg.Storage.Driver, &cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open key-value storage")
	}
	if closer, ok := backend.(io.Closer); ok {
		defer closer.Close()
	}

	store := kv.New(backend, log,
		kv.WithNamespace(cfg.Storage.Namespace),
		kv.WithFailureRecorder(collector),
	)

	// Initialize repositories
	repos := repository.New(ctx, store, repository.Options{
		Latency: cfg.Store.Latency,
		Metrics: collector,
	}, log)
	migrateLegacyIDs(ctx, repos, log)

	// Initialize services
	services := service.NewServices(repos, cfg, log)

	// Initialize router
	router := api.NewRouter(services, cfg, collector, reg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	log.Info().Msg("Server exited gracefully")
}

// migrateLegacyIDs renumbers collections still keyed by timestamp ids
func migrateLegacyIDs(ctx context.Context, repos *repository.Repositories, log zerolog.Logger) {
	stores := []struct {
		name    string
		migrate func(context.Context) (bool, error)
	}{
		{"articles", repos.Article.MigrateLegacyIDs},
		{"categories", repos.Category.MigrateLegacyIDs},
		{"tags", repos.Tag.MigrateLegacyIDs},
		{"comments", repos.Comment.MigrateLegacyIDs},
	}
	for _, s := range stores {
		changed, err := s.migrate(ctx)
		if err != nil {
			log.Error().Err(err).Str("collection", s.name).Msg("Legacy id migration failed")
			continue
		}
		if changed {
			log.Info().Str("collection", s.name).Msg("Legacy ids migrated")
		}
	}
}
