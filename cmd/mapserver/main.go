package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/geoatlas/activity-map/internal/adapter/web"
	"github.com/geoatlas/activity-map/internal/config"
	"github.com/geoatlas/activity-map/internal/loader"
	"github.com/geoatlas/activity-map/internal/observability"
	"github.com/geoatlas/activity-map/internal/render"
)

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	l := loader.New(nil, cfg.CacheSize, logger, metrics)

	srv := web.NewServer(cfg.HTTPAddr, l, web.Options{
		DataFile:     cfg.DataFile,
		DefaultSize:  cfg.PointSize,
		DefaultColor: cfg.PointColor,
		View: render.ViewState{
			Latitude:  cfg.ViewLat,
			Longitude: cfg.ViewLon,
			Zoom:      cfg.ViewZoom,
			Pitch:     0,
		},
	}, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warm the cache so the first page view does not pay the read. A
	// failure here is logged and surfaced by the dashboard, not fatal.
	if _, err := l.Load(cfg.DataFile); err != nil {
		logger.Warn("initial load failed", "path", cfg.DataFile, "error", err)
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
