package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/cache"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/client"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/config"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/janitor"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/metrics"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/server"
	"github.com/bhanu0606/Youtube-Video-Audio-Thumbnail-Downloader/internal/services"
	"github.com/rs/zerolog"
)

// cacheLogger adapts zerolog to the cache package's Logger interface.
type cacheLogger struct {
	logger zerolog.Logger
}

func (l cacheLogger) Error(msg string, err error) {
	l.logger.Error().Err(err).Msg(msg)
}

func main() {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	logger.Info().
		Int("server_port", cfg.Server.Port).
		Str("server_address", cfg.Server.Address).
		Str("scratch_dir", cfg.Scratch.Dir).
		Str("cache_provider", cfg.Cache.Provider).
		Msg("Application started with configuration")

	if err := os.MkdirAll(cfg.Scratch.Dir, 0o755); err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.Scratch.Dir).Msg("Failed to create scratch directory")
	}

	// Two outbound clients: metadata and thumbnail calls get a hard
	// timeout, the media stream path is bounded per-request instead.
	clientTimeout := config.ParseDurationOr(cfg.ClientTimeout, 30*time.Second)
	streamHTTP := client.NewHTTPClient(cfg, 0)
	thumbHTTP := client.NewHTTPClient(cfg, clientTimeout)

	resolver := client.New(streamHTTP)

	imageCache, err := cache.New(cache.Options{
		Provider:      cfg.Cache.Provider,
		Size:          cfg.Cache.Size,
		TTL:           config.ParseDurationOr(cfg.Cache.TTL, 12*time.Hour),
		Logger:        cacheLogger{logger: logger},
		RedisAddress:  cfg.Cache.RedisAddress,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create thumbnail cache")
	}
	defer func() {
		if err := imageCache.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close thumbnail cache")
		}
	}()

	thumbnails := services.NewThumbnailResolver(thumbHTTP, imageCache, config.GetUserAgent())

	ceiling := config.ParseDurationOr(cfg.RequestCeiling, 10*time.Minute)
	srv := server.New(resolver, thumbnails, ceiling)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Scratch directory sweeper runs for the lifetime of the process.
	sweeper := janitor.New(cfg.Scratch.Dir, config.ParseDurationOr(cfg.Scratch.Interval, time.Hour))
	go sweeper.Run(ctx)

	// Start Prometheus metrics HTTP server
	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatal().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	httpServer := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port),
		Handler:     srv.Router(),
		ReadTimeout: 30 * time.Second,
		// No write timeout: downloads legitimately stream for minutes and
		// are bounded by the per-request ceiling instead.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().Str("address", httpServer.Addr).Msg("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to serve HTTP")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Failed to shutdown HTTP server")
	}

	logger.Info().Msg("Server stopped gracefully")
}
