package render

import (
	"fmt"

	"github.com/geoatlas/activity-map/internal/domain"
)

// QualityReport summarizes a dataset for the collapsible data-quality
// panel. Coordinate ranges are formatted to 4 decimal places.
type QualityReport struct {
	ValidLocations int    `json:"valid_locations"`
	DroppedRows    int    `json:"dropped_rows"`
	DefaultedRows  int    `json:"defaulted_rows"`
	AvgEvents      int    `json:"avg_events"`
	LatitudeRange  string `json:"latitude_range"`
	LongitudeRange string `json:"longitude_range"`
}

// BuildQualityReport derives the panel contents from a dataset. Ranges
// read "n/a" when there are no records.
func BuildQualityReport(ds domain.Dataset) QualityReport {
	r := QualityReport{
		ValidLocations: len(ds.Records),
		DroppedRows:    ds.DroppedRows,
		DefaultedRows:  ds.DefaultedRows,
		AvgEvents:      int(ds.AvgEvents()),
		LatitudeRange:  "n/a",
		LongitudeRange: "n/a",
	}
	if !ds.Empty() {
		r.LatitudeRange = fmt.Sprintf("%.4f to %.4f", ds.Bounds.MinLat, ds.Bounds.MaxLat)
		r.LongitudeRange = fmt.Sprintf("%.4f to %.4f", ds.Bounds.MinLon, ds.Bounds.MaxLon)
	}
	return r
}
