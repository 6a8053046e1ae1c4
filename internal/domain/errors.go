package domain

import (
	"fmt"
	"strings"
)

// LoadError reports a source file that could not be opened or parsed:
// missing file, unreadable, or not a valid spreadsheet. It always wraps
// the underlying cause.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SchemaError reports a readable table that is missing required columns.
// Message produces the user-facing "required columns" hint, so callers
// show guidance instead of a stack trace.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %s: missing columns: %s", e.Path, strings.Join(e.Missing, ", "))
}

// Message is the hint shown to users when validation fails.
func (e *SchemaError) Message() string {
	return fmt.Sprintf("no valid data: required columns are %s", strings.Join(RequiredColumns(), ", "))
}

// RenderError reports a view-model build failure (bad color string,
// non-positive point size). Fallback holds the column names of the
// tabular preview shown in place of the map.
type RenderError struct {
	Reason   string
	Fallback []string
}

func (e *RenderError) Error() string {
	return "render: " + e.Reason
}
