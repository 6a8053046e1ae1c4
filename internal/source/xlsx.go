package source

import (
	"errors"

	"github.com/xuri/excelize/v2"

	"github.com/geoatlas/activity-map/internal/domain"
)

// XLSXReader reads the first sheet of an Excel workbook. The first row is
// the header; remaining rows are data.
type XLSXReader struct{}

// Read implements Reader.
func (XLSXReader) Read(path string) ([]domain.RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &domain.LoadError{Path: path, Err: err}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &domain.LoadError{Path: path, Err: errors.New("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &domain.LoadError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return nil, &domain.LoadError{Path: path, Err: errors.New("sheet has no header row")}
	}

	index, err := validateHeader(path, rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]domain.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, rowToRecord(index, row))
	}
	return records, nil
}
