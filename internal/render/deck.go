// Package render builds the JSON view model the dashboard page feeds to
// its map layer. The browser-side renderer is a collaborator, not part of
// this service; everything here is plain arithmetic and templating.
package render

import (
	"fmt"

	"github.com/geoatlas/activity-map/internal/domain"
)

// Options are the user-adjustable presentation parameters.
type Options struct {
	// Size scales point radii; slider range 1–50, default 15.
	Size int
	// Color is a 6-hex-digit RGB string, default #FFA500.
	Color string
}

// ViewState is the initial map camera.
type ViewState struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      float64 `json:"zoom"`
	Pitch     float64 `json:"pitch"`
}

// Point is one scatter-layer entry. Position is [lon, lat] per GeoJSON
// axis order.
type Point struct {
	Position   [2]float64 `json:"position"`
	Radius     float64    `json:"radius"`
	Location   string     `json:"location"`
	EventCount float64    `json:"event_count"`
	TotalUsers float64    `json:"total_users"`
}

// Layer is the scatter layer handed to the browser renderer.
type Layer struct {
	Data      []Point  `json:"data"`
	FillColor [4]uint8 `json:"fill_color"`
	LineColor [3]uint8 `json:"line_color"`
	LineWidth int      `json:"line_width_min_pixels"`
	Stroked   bool     `json:"stroked"`
	Pickable  bool     `json:"pickable"`
}

// Deck is the complete view model for one render pass.
type Deck struct {
	ViewState ViewState `json:"view_state"`
	Layer     Layer     `json:"layer"`
	Tooltip   string    `json:"tooltip_html"`
	Color     string    `json:"color"`
	Size      int       `json:"size"`
}

// fallbackColumns is the tabular preview shown when the map cannot be built.
var fallbackColumns = []string{
	domain.ColLocation, "lat", "lon", domain.ColEventCount, domain.ColTotalUsers,
}

// BuildDeck constructs the view model for a dataset. Invalid options
// produce a *domain.RenderError carrying the fallback table columns so the
// caller can degrade to a data preview instead of a broken map.
func BuildDeck(ds domain.Dataset, view ViewState, opts Options) (Deck, error) {
	if opts.Size <= 0 {
		return Deck{}, &domain.RenderError{
			Reason:   fmt.Sprintf("point size must be positive, got %d", opts.Size),
			Fallback: fallbackColumns,
		}
	}

	rgb, err := domain.ParseHexColor(opts.Color)
	if err != nil {
		return Deck{}, &domain.RenderError{
			Reason:   err.Error(),
			Fallback: fallbackColumns,
		}
	}

	points := make([]Point, len(ds.Records))
	for i, r := range ds.Records {
		points[i] = Point{
			Position:   [2]float64{r.Lon, r.Lat},
			Radius:     domain.Radius(r.EventCount, opts.Size),
			Location:   r.Location,
			EventCount: r.EventCount,
			TotalUsers: r.TotalUsers,
		}
	}

	return Deck{
		ViewState: view,
		Layer: Layer{
			Data:      points,
			FillColor: rgb.Fill(),
			LineColor: [3]uint8{0, 0, 0},
			LineWidth: 1,
			Stroked:   true,
			Pickable:  true,
		},
		Tooltip: tooltipHTML(rgb.Hex()),
		Color:   rgb.Hex(),
		Size:    opts.Size,
	}, nil
}

// tooltipHTML interpolates the marker glyph color into the per-point
// tooltip template. {placeholders} are substituted by the browser layer.
func tooltipHTML(hexColor string) string {
	return fmt.Sprintf(
		"<b>{location}</b><br><span style='color:%s'>&#x2b24;</span> Users: {total_users}<br>Events: {event_count}",
		hexColor,
	)
}
