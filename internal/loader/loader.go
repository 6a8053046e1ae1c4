// Package loader wires a source reader, the normalizer, and a
// read-through dataset cache into the single load operation the dashboard
// calls on every render.
package loader

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/geoatlas/activity-map/internal/domain"
	"github.com/geoatlas/activity-map/internal/observability"
	"github.com/geoatlas/activity-map/internal/source"
)

// ReaderFor selects a table reader for a path. Defaults to
// source.ForPath; tests substitute fakes.
type ReaderFor func(path string) source.Reader

// Loader turns a spreadsheet path into a normalized Dataset. Load never
// panics: every failure comes back as a tagged *domain.LoadError or
// *domain.SchemaError. Results are cached by file identity (path, mtime,
// size) so repeated renders against an unchanged file skip the re-read.
type Loader struct {
	readerFor ReaderFor
	cache     *datasetCache
	logger    *slog.Logger
	metrics   *observability.Metrics
	attempted atomic.Bool
}

// New creates a Loader with a cache of cacheSize datasets.
func New(readerFor ReaderFor, cacheSize int, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	if readerFor == nil {
		readerFor = source.ForPath
	}
	return &Loader{
		readerFor: readerFor,
		cache:     newDatasetCache(cacheSize),
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once at least one load has been attempted,
// successful or not. A failed load still means the service is up and able
// to answer with its degraded view.
func (l *Loader) CheckReadiness(_ context.Context) error {
	if !l.attempted.Load() {
		return errors.New("no load attempted yet")
	}
	return nil
}

// Load reads and normalizes the file at path, consulting the cache first.
// An empty-but-valid file yields an empty Dataset and a nil error; the
// caller decides how to present that.
func (l *Loader) Load(path string) (domain.Dataset, error) {
	defer l.attempted.Store(true)

	if key, ok := l.statKey(path); ok {
		if ds, hit := l.cache.get(key); hit {
			l.metrics.CacheLookups.WithLabelValues("hit").Inc()
			return ds, nil
		}
		l.metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	rows, err := l.readerFor(path).Read(path)
	if err != nil {
		l.observeFailure(path, err)
		return domain.Dataset{}, err
	}

	ds := domain.NormalizeAll(path, rows)

	l.metrics.Loads.WithLabelValues("success").Inc()
	l.metrics.RowsKept.Add(float64(len(ds.Records)))
	l.metrics.RowsDropped.Add(float64(ds.DroppedRows))
	l.metrics.LoadDuration.Observe(time.Since(start).Seconds())

	l.logger.Info("dataset loaded",
		"path", path,
		"total_rows", ds.TotalRows,
		"kept", len(ds.Records),
		"dropped", ds.DroppedRows,
		"defaulted", ds.DefaultedRows,
	)

	// Key again after the read so a file replaced mid-load is not cached
	// under the identity it had before we started.
	if key, ok := l.statKey(path); ok {
		l.cache.put(key, ds)
	}
	return ds, nil
}

func (l *Loader) observeFailure(path string, err error) {
	var schemaErr *domain.SchemaError
	if errors.As(err, &schemaErr) {
		l.metrics.Loads.WithLabelValues("schema_error").Inc()
		l.logger.Warn("source schema invalid", "path", path, "missing", schemaErr.Missing)
		return
	}
	l.metrics.Loads.WithLabelValues("load_error").Inc()
	l.logger.Warn("source load failed", "path", path, "error", err)
}

func (l *Loader) statKey(path string) (cacheKey, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return cacheKey{}, false
	}
	return cacheKey{path: path, modTime: info.ModTime(), size: info.Size()}, true
}
