package domain

import "time"

// Column names the loader requires in the source spreadsheet's header row.
const (
	ColCustomParameter = "Custom parameter"
	ColEventCount      = "Event count"
	ColTotalUsers      = "Total users"
	ColLocation        = "Location"
)

// RequiredColumns lists the headers a source table must carry, in the
// order they are reported to users when validation fails.
func RequiredColumns() []string {
	return []string{ColCustomParameter, ColEventCount, ColTotalUsers, ColLocation}
}

// RawRecord is one unparsed row from the source table: column name → cell
// text, exactly as read. Missing cells are absent keys.
type RawRecord map[string]string

// ActivityRecord is a row after normalization. Lat and Lon are always
// present and finite; EventCount and TotalUsers default to 1 when the
// source cell is blank or unparseable. Fields carries every original
// column through for display.
type ActivityRecord struct {
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	EventCount float64           `json:"event_count"`
	TotalUsers float64           `json:"total_users"`
	Location   string            `json:"location"`
	Fields     map[string]string `json:"fields,omitempty"`

	// defaulted marks records where both counts fell back to 1; it only
	// feeds Dataset.DefaultedRows and is not serialized.
	defaulted bool
}

// Bounds is the coordinate envelope of a record set.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// Dataset is the full normalized record set produced by one load, plus
// provenance for the data-quality panel. It is recomputed from scratch on
// every (uncached) load and never mutated afterwards.
type Dataset struct {
	Records []ActivityRecord `json:"records"`
	Source  string           `json:"source"`

	TotalRows   int `json:"total_rows"`
	DroppedRows int `json:"dropped_rows"`
	// DefaultedRows counts records where both EventCount and TotalUsers
	// fell back to 1. Surfaced so default-filled points can be audited.
	DefaultedRows int `json:"defaulted_rows"`

	Bounds   Bounds    `json:"bounds"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Empty reports whether the dataset holds no usable records.
func (d Dataset) Empty() bool { return len(d.Records) == 0 }

// AvgEvents returns the mean EventCount across records, 0 when empty.
func (d Dataset) AvgEvents() float64 {
	if len(d.Records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range d.Records {
		sum += r.EventCount
	}
	return sum / float64(len(d.Records))
}
