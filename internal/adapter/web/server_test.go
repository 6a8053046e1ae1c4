package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoatlas/activity-map/internal/adapter/web"
	"github.com/geoatlas/activity-map/internal/domain"
	"github.com/geoatlas/activity-map/internal/observability"
	"github.com/geoatlas/activity-map/internal/render"
)

type stubLoader struct {
	ds       domain.Dataset
	err      error
	readyErr error
}

func (s *stubLoader) Load(string) (domain.Dataset, error)  { return s.ds, s.err }
func (s *stubLoader) CheckReadiness(context.Context) error { return s.readyErr }

func populatedDataset() domain.Dataset {
	return domain.NormalizeAll("map.xlsx", []domain.RawRecord{
		{domain.ColCustomParameter: "9.03, 38.74", domain.ColEventCount: "240", domain.ColTotalUsers: "98", domain.ColLocation: "Addis"},
	})
}

func newTestServer(l *stubLoader) *web.Server {
	return web.NewServer(":0", l, web.Options{
		DataFile:     "map.xlsx",
		DefaultSize:  15,
		DefaultColor: "#FFA500",
		View:         render.ViewState{Latitude: 9.145, Longitude: 40.4897, Zoom: 5.5},
	}, slog.Default(), observability.NewMetricsForTesting())
}

func doGET(t *testing.T, srv *web.Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	srv.ServeHTTP(rec, req)
	return rec
}

func TestDashboardPage(t *testing.T) {
	rec := doGET(t, newTestServer(&stubLoader{ds: populatedDataset()}), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "#FFA500")
	assert.Contains(t, rec.Body.String(), `value="15"`)
}

func TestRecordsEndpoint(t *testing.T) {
	t.Run("happy path returns deck", func(t *testing.T) {
		rec := doGET(t, newTestServer(&stubLoader{ds: populatedDataset()}), "/api/records")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Deck    *render.Deck         `json:"deck"`
			Quality render.QualityReport `json:"quality"`
			Warning string               `json:"warning"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		require.NotNil(t, resp.Deck)
		assert.Empty(t, resp.Warning)
		assert.Equal(t, [4]uint8{255, 165, 0, 200}, resp.Deck.Layer.FillColor)
		require.Len(t, resp.Deck.Layer.Data, 1)
		assert.Equal(t, 720.0, resp.Deck.Layer.Data[0].Radius)
		assert.Equal(t, 1, resp.Quality.ValidLocations)
	})

	t.Run("size and color from query", func(t *testing.T) {
		rec := doGET(t, newTestServer(&stubLoader{ds: populatedDataset()}), "/api/records?size=5&color=%2300FF00")

		var resp struct {
			Deck *render.Deck `json:"deck"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Deck)
		assert.Equal(t, [4]uint8{0, 255, 0, 200}, resp.Deck.Layer.FillColor)
		assert.Equal(t, 240.0, resp.Deck.Layer.Data[0].Radius)
	})

	t.Run("bad color degrades to table fallback", func(t *testing.T) {
		rec := doGET(t, newTestServer(&stubLoader{ds: populatedDataset()}), "/api/records?color=oops")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Deck     *render.Deck `json:"deck"`
			Error    string       `json:"error"`
			Fallback *struct {
				Columns []string   `json:"columns"`
				Rows    [][]string `json:"rows"`
			} `json:"fallback"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.Nil(t, resp.Deck)
		assert.NotEmpty(t, resp.Error)
		require.NotNil(t, resp.Fallback)
		assert.Equal(t, []string{"Location", "lat", "lon", "Event count", "Total users"}, resp.Fallback.Columns)
		require.Len(t, resp.Fallback.Rows, 1)
		assert.Equal(t, "Addis", resp.Fallback.Rows[0][0])
	})

	t.Run("empty dataset warns and halts", func(t *testing.T) {
		rec := doGET(t, newTestServer(&stubLoader{}), "/api/records")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Deck    *render.Deck `json:"deck"`
			Warning string       `json:"warning"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Nil(t, resp.Deck)
		assert.Contains(t, resp.Warning, "No valid data")
		assert.Contains(t, resp.Warning, "Custom parameter")
	})

	t.Run("load failure reports schema hint", func(t *testing.T) {
		l := &stubLoader{err: &domain.SchemaError{Path: "map.xlsx", Missing: []string{domain.ColEventCount}}}
		rec := doGET(t, newTestServer(l), "/api/records")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Warning string `json:"warning"`
			Error   string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Warning, "required columns")
		assert.Contains(t, resp.Error, "Event count")
	})
}

func TestQualityEndpoint(t *testing.T) {
	rec := doGET(t, newTestServer(&stubLoader{ds: populatedDataset()}), "/api/quality")

	require.Equal(t, http.StatusOK, rec.Code)
	var report render.QualityReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 1, report.ValidLocations)
	assert.Equal(t, "9.0300 to 9.0300", report.LatitudeRange)
}

func TestHealthzReturns200(t *testing.T) {
	rec := doGET(t, newTestServer(&stubLoader{}), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReflectsLoader(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		rec := doGET(t, newTestServer(&stubLoader{}), "/readyz")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not ready", func(t *testing.T) {
		rec := doGET(t, newTestServer(&stubLoader{readyErr: errors.New("no load attempted yet")}), "/readyz")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not ready", body["status"])
		assert.Equal(t, "no load attempted yet", body["error"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	rec := doGET(t, newTestServer(&stubLoader{}), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}
