// Command gendata writes a sample activity spreadsheet for local
// development and demos. It uses the same column layout the loader
// expects, including a few rows with broken coordinates and blank counts
// so the drop/default paths are visible on the dashboard.
//
// Usage:
//
//	go run ./cmd/gendata -out map.xlsx
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/geoatlas/activity-map/internal/domain"
)

type sampleRow struct {
	location string
	coords   string
	events   string
	users    string
}

var samples = []sampleRow{
	{"Addis Ababa", "9.0300, 38.7400", "240", "98"},
	{"Dire Dawa", "9.6000 41.8600", "85", "40"},
	{"Mekelle", "13.4967,39.4753", "57", "21"},
	{"Bahir Dar", "11.59 37.39", "", "33"},
	{"Hawassa", "7.0620, 38.4760", "44", ""},
	{"Gondar", "12.6030, 37.4521", "19", "12"},
	{"Jimma", "7.6667, 36.8333", "", ""},
	{"Unknown office", "head office", "12", "4"},
	{"Missing pin", "", "7", "2"},
}

func main() {
	out := flag.String("out", "map.xlsx", "output spreadsheet (.xlsx or .csv)")
	flag.Parse()

	var err error
	if strings.EqualFold(filepath.Ext(*out), ".csv") {
		err = writeCSV(*out)
	} else {
		err = writeXLSX(*out)
	}
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %d sample rows to %s\n", len(samples), *out)
}

func header() []string {
	return domain.RequiredColumns()
}

func writeXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	cells := make([]any, len(header()))
	for i, h := range header() {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		return err
	}

	for i, r := range samples {
		row := []any{r.coords, r.events, r.users, r.location}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header()); err != nil {
		return err
	}
	for _, r := range samples {
		if err := w.Write([]string{r.coords, r.events, r.users, r.location}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
