package integration_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/psws-spot-service/internal/domain"
)

// runFeedChecks exercises every feed route against a seeded store.
func runFeedChecks(t *testing.T, srv *httptest.Server) {
	t.Run("detail feed window and order", func(t *testing.T) {
		spots := getJSON[[]domain.DetailSpot](t, srv, "/spots?lastInterval=60")

		times := make([]string, len(spots))
		for i, s := range spots {
			times[i] = s.Time
		}
		assert.Equal(t, []string{"260107 1345", "260107 1430", "260107 1431", "260107 1440"}, times)

		byTime := make(map[string]domain.DetailSpot, len(spots))
		for _, s := range spots {
			byTime[s.Time] = s
		}
		fn21 := byTime["260107 1430"]
		assert.Equal(t, "20m", fn21.Band)
		assert.InDelta(t, 41.354167, fn21.TxLat, 1e-5)
		assert.InDelta(t, -74.875, fn21.TxLon, 1e-5)
		assert.InDelta(t, 41.354167, fn21.RxLat, 1e-5)
		assert.Equal(t, "K1ABC", fn21.TxSign)
		assert.Equal(t, "KD3ALD", fn21.RxSign)

		bad := byTime["260107 1440"]
		assert.Zero(t, bad.TxLat)
		assert.Zero(t, bad.TxLon)
		assert.Equal(t, "15m", bad.Band)
	})

	t.Run("summary feed zones", func(t *testing.T) {
		spots := getJSON[[]domain.SummarySpot](t, srv, "/tbspots?lastInterval=60")
		require.Len(t, spots, 4)

		zones := make(map[string]string, len(spots))
		for _, s := range spots {
			zones[s.ID] = s.CQZone
		}
		assert.Equal(t, map[string]string{
			"2": "1",
			"3": domain.Unknown,
			"4": "4",
			"5": domain.Unknown,
		}, zones)
		assert.Equal(t, "40m", spots[0].Band)
		assert.Equal(t, "North America", spots[0].Region)
	})

	t.Run("unparseable interval returns everything", func(t *testing.T) {
		spots := getJSON[[]domain.DetailSpot](t, srv, "/spots?lastInterval=abc")
		assert.Len(t, spots, len(seedSpots))
		assert.Equal(t, "260106 2359", spots[0].Time)
	})

	t.Run("legacy exact hour with limit", func(t *testing.T) {
		spots := getJSON[[]domain.DetailSpot](t, srv, "/legacy/spots?numSpots=2&date=260107&time=14")
		require.Len(t, spots, 2)
		assert.Equal(t, "260107 1431", spots[0].Time)
		assert.Equal(t, "260107 1440", spots[1].Time)
	})

	t.Run("legacy null filters", func(t *testing.T) {
		spots := getJSON[[]domain.DetailSpot](t, srv, "/legacy/spots?numSpots=3&date=null&time=null")
		require.Len(t, spots, 3)
		assert.Equal(t, "260107 1430", spots[0].Time)
	})

	t.Run("readiness", func(t *testing.T) {
		body := getJSON[map[string]string](t, srv, "/readyz")
		assert.Equal(t, "ready", body["status"])
	})
}
