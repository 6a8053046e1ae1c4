// Command validate performs an offline data-quality check on an activity
// spreadsheet: it runs the same reader and normalizer the server uses and
// reports row counts, coordinate ranges, and a sample of dropped rows.
// Exits non-zero when the file yields no mappable records.
//
// Usage:
//
//	go run ./cmd/validate -file map.xlsx [-sample 5]
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/geoatlas/activity-map/internal/domain"
	"github.com/geoatlas/activity-map/internal/loader"
	"github.com/geoatlas/activity-map/internal/observability"
	"github.com/geoatlas/activity-map/internal/render"
	"github.com/geoatlas/activity-map/internal/source"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "validate:", err)
		os.Exit(1)
	}
}

func run() error {
	file := flag.String("file", "map.xlsx", "spreadsheet to validate (.xlsx or .csv)")
	sample := flag.Int("sample", 5, "dropped rows to print as examples")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	l := loader.New(nil, 1, logger, observability.NewMetrics())

	ds, err := l.Load(*file)
	if err != nil {
		var schemaErr *domain.SchemaError
		if errors.As(err, &schemaErr) {
			return fmt.Errorf("%s\n%s", schemaErr.Error(), schemaErr.Message())
		}
		return err
	}

	report := render.BuildQualityReport(ds)

	fmt.Printf("file:              %s\n", *file)
	fmt.Printf("rows read:         %d\n", ds.TotalRows)
	fmt.Printf("valid locations:   %d\n", report.ValidLocations)
	fmt.Printf("dropped rows:      %d\n", report.DroppedRows)
	fmt.Printf("default-filled:    %d\n", report.DefaultedRows)
	fmt.Printf("avg events:        %d\n", report.AvgEvents)
	fmt.Printf("latitude range:    %s\n", report.LatitudeRange)
	fmt.Printf("longitude range:   %s\n", report.LongitudeRange)

	if ds.DroppedRows > 0 && *sample > 0 {
		printDroppedSample(*file, *sample)
	}

	if ds.Empty() {
		return errors.New("no mappable records in file")
	}
	return nil
}

// printDroppedSample re-reads the raw rows and prints the first few whose
// coordinate extraction failed, so bad "Custom parameter" values can be
// fixed at the source.
func printDroppedSample(file string, limit int) {
	rows, err := source.ForPath(file).Read(file)
	if err != nil {
		return
	}

	fmt.Println("\nsample dropped rows:")
	shown := 0
	for i, raw := range rows {
		if _, ok := domain.NormalizeRecord(raw); ok {
			continue
		}
		fmt.Printf("  row %d: %s=%q %s=%q\n",
			i+2, // +1 header, +1 one-based
			domain.ColLocation, raw[domain.ColLocation],
			domain.ColCustomParameter, raw[domain.ColCustomParameter],
		)
		if shown++; shown >= limit {
			break
		}
	}
}
