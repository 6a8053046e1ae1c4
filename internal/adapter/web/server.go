// Package web serves the dashboard page and its JSON API, plus the usual
// health, readiness, and metrics endpoints.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/geoatlas/activity-map/internal/domain"
	"github.com/geoatlas/activity-map/internal/observability"
	"github.com/geoatlas/activity-map/internal/render"
)

//go:embed dashboard.html
var pageFS embed.FS

// DatasetLoader supplies the normalized dataset for a render pass.
type DatasetLoader interface {
	Load(path string) (domain.Dataset, error)
	CheckReadiness(ctx context.Context) error
}

// Options fixes the data source and presentation defaults for a server.
type Options struct {
	DataFile     string
	DefaultSize  int
	DefaultColor string
	View         render.ViewState
}

// Server exposes the dashboard and its API.
type Server struct {
	httpServer *http.Server
	loader     DatasetLoader
	opts       Options
	page       *template.Template
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with the dashboard at /, the JSON API
// under /api/, and /healthz, /readyz, /metrics routes.
func NewServer(addr string, loader DatasetLoader, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		loader:  loader,
		opts:    opts,
		page:    template.Must(template.ParseFS(pageFS, "dashboard.html")),
		logger:  logger,
		metrics: metrics,
	}

	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /api/records", s.handleRecords)
	mux.HandleFunc("GET /api/quality", s.handleQuality)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := s.page.Execute(w, map[string]any{
		"DefaultSize":  s.opts.DefaultSize,
		"DefaultColor": s.opts.DefaultColor,
	})
	if err != nil {
		s.logger.Error("dashboard template failed", "error", err)
	}
}

// recordsResponse is the /api/records payload. Exactly one of Deck and
// Fallback is set on a non-warning response; Warning alone means the
// dataset was empty or unloadable and the client should halt rendering.
type recordsResponse struct {
	Deck     *render.Deck         `json:"deck,omitempty"`
	Quality  render.QualityReport `json:"quality"`
	Warning  string               `json:"warning,omitempty"`
	Error    string               `json:"error,omitempty"`
	Fallback *fallbackTable       `json:"fallback,omitempty"`
}

// fallbackTable is the tabular preview served when the view model cannot
// be built.
type fallbackTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	ds, err := s.loader.Load(s.opts.DataFile)
	if err != nil {
		writeJSON(w, http.StatusOK, recordsResponse{
			Warning: loadWarning(err),
			Error:   err.Error(),
		})
		return
	}

	resp := recordsResponse{Quality: render.BuildQualityReport(ds)}

	if ds.Empty() {
		resp.Warning = noValidDataWarning()
		writeJSON(w, http.StatusOK, resp)
		return
	}

	s.metrics.DatasetRecords.Set(float64(len(ds.Records)))

	opts := s.renderOptions(r)
	deck, err := render.BuildDeck(ds, s.opts.View, opts)
	if err != nil {
		s.metrics.RenderErrors.Inc()
		s.logger.Warn("deck build failed, serving table fallback", "error", err)

		resp.Error = err.Error()
		resp.Fallback = buildFallback(ds, err)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp.Deck = &deck
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleQuality(w http.ResponseWriter, _ *http.Request) {
	ds, err := s.loader.Load(s.opts.DataFile)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{
			"warning": loadWarning(err),
			"error":   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, render.BuildQualityReport(ds))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.loader.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// renderOptions reads size and color from the query string, falling back
// to the configured defaults. Malformed values pass through to BuildDeck,
// which converts them into the table-fallback path rather than a 4xx.
func (s *Server) renderOptions(r *http.Request) render.Options {
	opts := render.Options{Size: s.opts.DefaultSize, Color: s.opts.DefaultColor}

	if v := r.URL.Query().Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Size = n
		} else {
			opts.Size = 0 // force the RenderError path with a clear reason
		}
	}
	if v := r.URL.Query().Get("color"); v != "" {
		opts.Color = v
	}
	return opts
}

func buildFallback(ds domain.Dataset, err error) *fallbackTable {
	var renderErr *domain.RenderError
	if !errors.As(err, &renderErr) {
		return nil
	}

	rows := make([][]string, len(ds.Records))
	for i, rec := range ds.Records {
		rows[i] = []string{
			rec.Location,
			strconv.FormatFloat(rec.Lat, 'f', -1, 64),
			strconv.FormatFloat(rec.Lon, 'f', -1, 64),
			strconv.FormatFloat(rec.EventCount, 'f', -1, 64),
			strconv.FormatFloat(rec.TotalUsers, 'f', -1, 64),
		}
	}
	return &fallbackTable{Columns: renderErr.Fallback, Rows: rows}
}

// loadWarning maps a load failure to the user-facing guidance message.
func loadWarning(err error) string {
	var schemaErr *domain.SchemaError
	if errors.As(err, &schemaErr) {
		return schemaErr.Message()
	}
	return noValidDataWarning()
}

func noValidDataWarning() string {
	cols := domain.RequiredColumns()
	return fmt.Sprintf(
		"No valid data found! Check your spreadsheet. Required columns: %q, %q, %q, %q",
		cols[0], cols[1], cols[2], cols[3],
	)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
