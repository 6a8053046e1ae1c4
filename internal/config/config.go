package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DataFile        string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Dataset cache configuration.
	CacheSize int

	// Map presentation defaults; both are user-adjustable per request.
	PointSize  int
	PointColor string

	// Initial viewport.
	ViewLat  float64
	ViewLon  float64
	ViewZoom float64
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cacheSize, err := parsePositiveInt("CACHE_SIZE", 16)
	if err != nil {
		return nil, err
	}

	pointSize, err := parsePositiveInt("POINT_SIZE", 15)
	if err != nil {
		return nil, err
	}

	viewLat, err := parseFloat("VIEW_LAT", 9.145)
	if err != nil {
		return nil, err
	}
	viewLon, err := parseFloat("VIEW_LON", 40.4897)
	if err != nil {
		return nil, err
	}
	viewZoom, err := parseFloat("VIEW_ZOOM", 5.5)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataFile:        envOrDefault("DATA_FILE", "map.xlsx"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		CacheSize:       cacheSize,
		PointSize:       pointSize,
		PointColor:      envOrDefault("POINT_COLOR", "#FFA500"),
		ViewLat:         viewLat,
		ViewLon:         viewLon,
		ViewZoom:        viewZoom,
	}

	if cfg.DataFile == "" {
		return nil, errors.New("DATA_FILE is required")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	s := envOrDefault(key, fallback)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func parseFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return v, nil
}
