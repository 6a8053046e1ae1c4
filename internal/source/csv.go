package source

import (
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/geoatlas/activity-map/internal/domain"
)

// CSVReader reads a comma-separated export with a header row. Quoting is
// lenient because analytics exports are not always RFC 4180 clean.
type CSVReader struct{}

// Read implements Reader.
func (CSVReader) Read(path string) ([]domain.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.LoadError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1 // exports pad or trim trailing cells freely

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("file has no header row")
		}
		return nil, &domain.LoadError{Path: path, Err: err}
	}

	index, err := validateHeader(path, header)
	if err != nil {
		return nil, err
	}

	var records []domain.RawRecord
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.LoadError{Path: path, Err: err}
		}
		records = append(records, rowToRecord(index, row))
	}
	return records, nil
}
