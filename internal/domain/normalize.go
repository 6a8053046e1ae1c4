package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// coordsRe extracts a coordinate pair from the "Custom parameter" column:
// two unsigned decimals separated by commas and/or whitespace, e.g.
// "9.03, 38.74" → lat=9.03, lon=38.74. No sign, no exponent.
var coordsRe = regexp.MustCompile(`(\d+(?:\.\d+)?)[,\s]+(\d+(?:\.\d+)?)`)

// ExtractCoordinates pulls (lat, lon) out of a free-text field. The first
// captured number is latitude, the second longitude. Returns ok=false when
// the pattern does not match or either capture fails to parse.
func ExtractCoordinates(s string) (lat, lon float64, ok bool) {
	m := coordsRe.FindStringSubmatch(s)
	if len(m) != 3 {
		return 0, 0, false
	}

	lat, errLat := strconv.ParseFloat(m[1], 64)
	lon, errLon := strconv.ParseFloat(m[2], 64)
	if errLat != nil || errLon != nil || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return 0, 0, false
	}
	return lat, lon, true
}

// parseCountOrDefault parses a count cell as float64, substituting 1 for
// blank, missing, or unparseable values. NaN and infinities also fall back
// so downstream arithmetic stays finite.
func parseCountOrDefault(s string) (value float64, defaulted bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 1, true
	}
	return v, false
}

// NormalizeRecord converts one raw row into an ActivityRecord. Returns
// ok=false when the coordinate pair cannot be extracted; such rows are
// excluded entirely rather than defaulted. Count columns are default-filled
// unconditionally, so the second return of a kept record never carries NaN.
func NormalizeRecord(raw RawRecord) (ActivityRecord, bool) {
	lat, lon, ok := ExtractCoordinates(raw[ColCustomParameter])
	if !ok {
		return ActivityRecord{}, false
	}

	events, eventsDefaulted := parseCountOrDefault(raw[ColEventCount])
	users, usersDefaulted := parseCountOrDefault(raw[ColTotalUsers])

	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		fields[k] = v
	}

	rec := ActivityRecord{
		Lat:        lat,
		Lon:        lon,
		EventCount: events,
		TotalUsers: users,
		Location:   raw[ColLocation],
		Fields:     fields,
	}
	rec.defaulted = eventsDefaulted && usersDefaulted
	return rec, true
}

// NormalizeAll recomputes the full dataset from raw rows, preserving
// source order. Rows without extractable coordinates are counted as
// dropped and omitted.
func NormalizeAll(source string, rows []RawRecord) Dataset {
	ds := Dataset{
		Source:    source,
		TotalRows: len(rows),
		Records:   make([]ActivityRecord, 0, len(rows)),
		LoadedAt:  clock.Now(),
	}

	for _, raw := range rows {
		rec, ok := NormalizeRecord(raw)
		if !ok {
			ds.DroppedRows++
			continue
		}
		if rec.defaulted {
			ds.DefaultedRows++
		}
		ds.Records = append(ds.Records, rec)
	}

	ds.Bounds = computeBounds(ds.Records)
	return ds
}

func computeBounds(records []ActivityRecord) Bounds {
	if len(records) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinLat: records[0].Lat, MaxLat: records[0].Lat,
		MinLon: records[0].Lon, MaxLon: records[0].Lon,
	}
	for _, r := range records[1:] {
		b.MinLat = math.Min(b.MinLat, r.Lat)
		b.MaxLat = math.Max(b.MaxLat, r.Lat)
		b.MinLon = math.Min(b.MinLon, r.Lon)
		b.MaxLon = math.Max(b.MaxLon, r.Lon)
	}
	return b
}
