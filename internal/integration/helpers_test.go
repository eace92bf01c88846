package integration_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/psws-spot-service/internal/adapter/http"
	"github.com/couchcryptid/psws-spot-service/internal/domain"
	"github.com/couchcryptid/psws-spot-service/internal/feed"
	"github.com/couchcryptid/psws-spot-service/internal/observability"
	"github.com/couchcryptid/psws-spot-service/internal/zone"
)

// testNow is the fixed instant every end-to-end test runs at.
var testNow = time.Date(2026, time.January, 7, 14, 45, 0, 0, time.UTC)

// seedSpots cover the window edges for lastInterval=60 at testNow
// (threshold 260107 1345). IDs match their position plus one.
var seedSpots = []domain.RawSpot{
	{ID: "1", Date: "260107", Time: "1344", Grid: "JJ20", Frequency: 14.0971, Mode: "wspr", Callsign: "TX1", RxCallsign: "KD3ALD", SNR: -25, Drift: 0},
	{ID: "2", Date: "260107", Time: "1345", Grid: "JJ20", Frequency: 7.0386, Mode: "wspr", Callsign: "TX2", RxCallsign: "KD3ALD", SNR: -12, Drift: 1},
	{ID: "3", Date: "260107", Time: "1430", Grid: "FN21ni", Frequency: 14.097, Mode: "wspr", Callsign: "K1ABC", RxCallsign: "KD3ALD", SNR: -18, Drift: 0},
	{ID: "4", Date: "260107", Time: "1431", Grid: "IL25", Frequency: 10.1387, Mode: "ft8", Callsign: "EA8XYZ", RxCallsign: "KD3ALD", SNR: -3, Drift: 0},
	{ID: "5", Date: "260107", Time: "1440", Grid: "ZZ99zz", Frequency: 21.0946, Mode: "ft4", Callsign: "BAD1", RxCallsign: "KD3ALD", SNR: -9, Drift: -1},
	{ID: "6", Date: "260106", Time: "2359", Grid: "JJ20", Frequency: 28.1246, Mode: "wspr", Callsign: "OLD1", RxCallsign: "KD3ALD", SNR: -20, Drift: 0},
}

const createSpotsTable = `CREATE TABLE spots (
	id BIGINT PRIMARY KEY,
	date TEXT NOT NULL,
	time TEXT NOT NULL,
	grid TEXT,
	frequency DOUBLE PRECISION NOT NULL,
	mode TEXT,
	callsign TEXT,
	rx_callsign TEXT,
	snr INTEGER,
	drift INTEGER,
	band TEXT
)`

// seedSQL writes seedSpots through database/sql; placeholder is "?" or "$".
func seedSQL(t *testing.T, db *sql.DB, dollar bool) {
	t.Helper()
	_, err := db.Exec(createSpotsTable)
	require.NoError(t, err)

	insert := `INSERT INTO spots (id, date, time, grid, frequency, mode, callsign, rx_callsign, snr, drift)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if dollar {
		insert = `INSERT INTO spots (id, date, time, grid, frequency, mode, callsign, rx_callsign, snr, drift)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	}
	for i, s := range seedSpots {
		_, err := db.Exec(insert, i+1, s.Date, s.Time, s.Grid, s.Frequency, s.Mode, s.Callsign, s.RxCallsign, s.SNR, s.Drift)
		require.NoError(t, err)
	}
}

// startService wires the real zone index, enricher, feed, and HTTP adapter
// over store and serves them from an httptest server.
func startService(t *testing.T, store domain.SpotStore) *httptest.Server {
	t.Helper()

	domain.SetClock(clockwork.NewFakeClockAt(testNow))
	t.Cleanup(func() { domain.SetClock(nil) })

	ix, err := zone.LoadFile("../zone/testdata/zones.geojson", "cq_zone_number")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetricsForTesting()
	cq := zone.NewCachedResolver(ix, 64, metrics.ZoneCacheObserver("cq"))

	enricher, err := domain.NewEnricher("FN21ni", domain.Zones{CQ: cq}, metrics, logger)
	require.NoError(t, err)

	app := feed.New(store, enricher, metrics, logger, 5*time.Second)
	srv := httptest.NewServer(httpadapter.NewServer(":0", app, 50, logger))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON[T any](t *testing.T, srv *httptest.Server, path string) T {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, path)

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}
