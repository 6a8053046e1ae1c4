// Package source reads row-oriented tables from spreadsheet files and
// validates that the headers the normalizer depends on are present.
package source

import (
	"path/filepath"
	"strings"

	"github.com/geoatlas/activity-map/internal/domain"
)

// Reader turns a file on disk into raw records. Implementations return
// *domain.LoadError when the file cannot be opened or parsed and
// *domain.SchemaError when required columns are absent from the header row.
type Reader interface {
	Read(path string) ([]domain.RawRecord, error)
}

// ForPath selects a reader by file extension. Unknown extensions fall back
// to the XLSX reader, matching the original export format.
func ForPath(path string) Reader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSVReader{}
	default:
		return XLSXReader{}
	}
}

// validateHeader checks the header row for the required columns and builds
// a column-name → index map. Fails fast with a SchemaError instead of
// letting absent columns silently produce all-empty derived fields.
func validateHeader(path string, header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range domain.RequiredColumns() {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.SchemaError{Path: path, Missing: missing}
	}
	return index, nil
}

// rowToRecord maps one data row through the header index. Cells beyond the
// row's length (trailing blanks are often trimmed by exporters) are left
// absent so count defaulting applies.
func rowToRecord(index map[string]int, row []string) domain.RawRecord {
	rec := make(domain.RawRecord, len(index))
	for name, i := range index {
		if i < len(row) {
			rec[name] = row[i]
		}
	}
	return rec
}
