package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoatlas/activity-map/internal/domain"
	"github.com/geoatlas/activity-map/internal/render"
)

var testView = render.ViewState{Latitude: 9.145, Longitude: 40.4897, Zoom: 5.5, Pitch: 0}

func testDataset() domain.Dataset {
	return domain.NormalizeAll("map.xlsx", []domain.RawRecord{
		{domain.ColCustomParameter: "9.03, 38.74", domain.ColEventCount: "240", domain.ColTotalUsers: "98", domain.ColLocation: "Addis"},
		{domain.ColCustomParameter: "13.4967,39.4753", domain.ColEventCount: "57", domain.ColTotalUsers: "21", domain.ColLocation: "Mekelle"},
	})
}

func TestBuildDeck(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		deck, err := render.BuildDeck(testDataset(), testView, render.Options{Size: 15, Color: "#FFA500"})
		require.NoError(t, err)

		assert.Equal(t, testView, deck.ViewState)
		require.Len(t, deck.Layer.Data, 2)

		// Position is [lon, lat]; radius is eventCount × size / 5.
		assert.Equal(t, [2]float64{38.74, 9.03}, deck.Layer.Data[0].Position)
		assert.Equal(t, 720.0, deck.Layer.Data[0].Radius)
		assert.Equal(t, "Addis", deck.Layer.Data[0].Location)

		assert.Equal(t, [4]uint8{255, 165, 0, 200}, deck.Layer.FillColor)
		assert.Equal(t, [3]uint8{0, 0, 0}, deck.Layer.LineColor)
		assert.Equal(t, 1, deck.Layer.LineWidth)
		assert.True(t, deck.Layer.Stroked)
		assert.True(t, deck.Layer.Pickable)

		assert.Contains(t, deck.Tooltip, "#FFA500")
		assert.Contains(t, deck.Tooltip, "{location}")
		assert.Contains(t, deck.Tooltip, "{total_users}")
		assert.Contains(t, deck.Tooltip, "{event_count}")
	})

	t.Run("color without hash", func(t *testing.T) {
		deck, err := render.BuildDeck(testDataset(), testView, render.Options{Size: 15, Color: "00ff00"})
		require.NoError(t, err)
		assert.Equal(t, [4]uint8{0, 255, 0, 200}, deck.Layer.FillColor)
	})

	t.Run("bad color degrades to fallback", func(t *testing.T) {
		_, err := render.BuildDeck(testDataset(), testView, render.Options{Size: 15, Color: "#nothex"})

		var renderErr *domain.RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t,
			[]string{domain.ColLocation, "lat", "lon", domain.ColEventCount, domain.ColTotalUsers},
			renderErr.Fallback)
	})

	t.Run("non-positive size degrades to fallback", func(t *testing.T) {
		_, err := render.BuildDeck(testDataset(), testView, render.Options{Size: 0, Color: "#FFA500"})

		var renderErr *domain.RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Contains(t, renderErr.Error(), "size")
	})

	t.Run("empty dataset builds an empty layer", func(t *testing.T) {
		deck, err := render.BuildDeck(domain.Dataset{}, testView, render.Options{Size: 15, Color: "#FFA500"})
		require.NoError(t, err)
		assert.Empty(t, deck.Layer.Data)
	})
}

func TestBuildQualityReport(t *testing.T) {
	t.Run("populated dataset", func(t *testing.T) {
		report := render.BuildQualityReport(testDataset())

		assert.Equal(t, 2, report.ValidLocations)
		assert.Equal(t, 0, report.DroppedRows)
		assert.Equal(t, 148, report.AvgEvents) // (240+57)/2 truncated
		assert.Equal(t, "9.0300 to 13.4967", report.LatitudeRange)
		assert.Equal(t, "38.7400 to 39.4753", report.LongitudeRange)
	})

	t.Run("empty dataset", func(t *testing.T) {
		report := render.BuildQualityReport(domain.Dataset{})

		assert.Equal(t, 0, report.ValidLocations)
		assert.Equal(t, "n/a", report.LatitudeRange)
		assert.Equal(t, "n/a", report.LongitudeRange)
	})
}
