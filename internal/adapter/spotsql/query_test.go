package spotsql

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/psws-spot-service/internal/domain"
)

func TestBuild_Since(t *testing.T) {
	q := domain.SpotQuery{
		Window: domain.TimeWindow{Kind: domain.WindowSince, SinceDate: "260107", SinceTime: "1430"},
	}

	sql, args := Build("spots", q, Question)
	assert.Contains(t, sql, "FROM spots WHERE (date > ? OR (date = ? AND time >= ?))")
	assert.Contains(t, sql, "ORDER BY date DESC, time DESC, id ASC")
	assert.NotContains(t, sql, "LIMIT")
	assert.Equal(t, []any{"260107", "260107", "1430"}, args)
}

func TestBuild_DollarPlaceholders(t *testing.T) {
	q := domain.SpotQuery{
		Window: domain.TimeWindow{Kind: domain.WindowSince, SinceDate: "260107", SinceTime: "1430"},
		Limit:  50,
	}

	sql, args := Build("wspr_spots", q, Dollar)
	assert.Contains(t, sql, "FROM wspr_spots WHERE (date > $1 OR (date = $2 AND time >= $3))")
	assert.Contains(t, sql, "LIMIT $4")
	assert.Equal(t, []any{"260107", "260107", "1430", 50}, args)
}

func TestBuild_Exact(t *testing.T) {
	tests := []struct {
		name      string
		window    domain.TimeWindow
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "date and hour",
			window:    domain.TimeWindow{Kind: domain.WindowExact, Date: "260107", TimeFrom: "1400", TimeTo: "1459"},
			wantWhere: "WHERE date = $1 AND time >= $2 AND time <= $3 ORDER BY",
			wantArgs:  []any{"260107", "1400", "1459", 10},
		},
		{
			name:      "date only",
			window:    domain.TimeWindow{Kind: domain.WindowExact, Date: "260107"},
			wantWhere: "WHERE date = $1 ORDER BY",
			wantArgs:  []any{"260107", 10},
		},
		{
			name:      "hour only",
			window:    domain.TimeWindow{Kind: domain.WindowExact, TimeFrom: "0900", TimeTo: "0959"},
			wantWhere: "WHERE time >= $1 AND time <= $2 ORDER BY",
			wantArgs:  []any{"0900", "0959", 10},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := Build("spots", domain.SpotQuery{Window: tt.window, Limit: 10}, Dollar)
			assert.Contains(t, sql, tt.wantWhere)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuild_All(t *testing.T) {
	sql, args := Build("spots", domain.SpotQuery{}, Question)
	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *float64:
			*p = r.values[i].(float64)
		case *int:
			*p = r.values[i].(int)
		}
	}
	return nil
}

func TestScanSpot(t *testing.T) {
	row := fakeRow{values: []any{"1", "260107", "1430", "FN21ni", 14.097, "wspr", "K1ABC", "N2XYZ", -18, 0, ""}}

	spot, err := ScanSpot(row)
	require.NoError(t, err)
	assert.Equal(t, domain.RawSpot{
		ID: "1", Date: "260107", Time: "1430", Grid: "FN21ni", Frequency: 14.097,
		Mode: "wspr", Callsign: "K1ABC", RxCallsign: "N2XYZ", SNR: -18,
	}, spot)

	_, err = ScanSpot(fakeRow{err: errors.New("boom")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan spot")
}
