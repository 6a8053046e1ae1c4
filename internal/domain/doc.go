// Package domain models geotagged user-activity records exported from an
// analytics spreadsheet.
//
// # Data Source
//
// Each row of the source sheet describes aggregate activity at one
// location. Coordinates are not stored in dedicated columns; they are
// embedded in the free-text "Custom parameter" column as two unsigned
// decimals separated by a comma and/or whitespace:
//
//	"9.03, 38.74"   →  lat=9.03, lon=38.74
//	"9.03 38.74"    →  same
//	"9,38"          →  lat=9, lon=38
//
// Signs and exponents never appear in exports, so the extraction pattern
// deliberately accepts unsigned decimals only. Rows whose "Custom
// parameter" does not yield a coordinate pair are unusable for mapping and
// are dropped entirely — never defaulted. See [ExtractCoordinates].
//
// # Count Columns
//
// "Event count" and "Total users" arrive as numbers, numeric-looking
// strings, or blanks depending on the export. Both are coerced to float64;
// anything blank or unparseable becomes exactly 1 so a point still renders
// with minimum weight. Records where both counts were defaulted are
// tallied in [Dataset.DefaultedRows] so such points can be audited against
// genuine low-activity locations.
//
// # Presentation
//
// Point radius is eventCount × size / 5, where size is the user-chosen
// control value (default 15). Point color is a 6-hex-digit RGB string
// (default #FFA500) rendered with a fixed alpha of 200. See [Radius] and
// [ParseHexColor].
package domain
