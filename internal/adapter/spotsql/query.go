// Package spotsql builds the spot SELECT shared by the SQL store adapters.
//
// Stores keep date (YYMMDD) and time (HHMM) as fixed-width text, so window
// predicates are plain string comparisons and the (date DESC, time DESC)
// ordering can use a compound index.
package spotsql

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/psws-spot-service/internal/domain"
)

// Placeholder selects the bind parameter syntax of a driver.
type Placeholder int

const (
	// Question renders ?, as used by sqlite.
	Question Placeholder = iota
	// Dollar renders $1, $2, ... as used by postgres.
	Dollar
)

// selectColumns are read in ScanSpot order. Nullable text columns are
// coalesced so both drivers can scan into plain Go values.
const selectColumns = `CAST(id AS TEXT), date, time, COALESCE(grid, ''), frequency, COALESCE(mode, ''),
	COALESCE(callsign, ''), COALESCE(rx_callsign, ''), COALESCE(snr, 0), COALESCE(drift, 0), COALESCE(band, '')`

type builder struct {
	ph   Placeholder
	args []any
}

func (b *builder) bind(v any) string {
	b.args = append(b.args, v)
	if b.ph == Dollar {
		return fmt.Sprintf("$%d", len(b.args))
	}
	return "?"
}

// Build renders the query for q against table. The table name must already be
// validated as an identifier; it is not quoted or escaped here.
func Build(table string, q domain.SpotQuery, ph Placeholder) (string, []any) {
	b := &builder{ph: ph}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(selectColumns)
	sb.WriteString(" FROM ")
	sb.WriteString(table)

	if where := b.where(q.Window); where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}

	// id breaks ties so equal (date, time) pairs come back in a fixed order.
	sb.WriteString(" ORDER BY date DESC, time DESC, id ASC")

	if q.Limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(b.bind(q.Limit))
	}
	return sb.String(), b.args
}

func (b *builder) where(w domain.TimeWindow) string {
	switch w.Kind {
	case domain.WindowSince:
		d1 := b.bind(w.SinceDate)
		d2 := b.bind(w.SinceDate)
		t := b.bind(w.SinceTime)
		return fmt.Sprintf("(date > %s OR (date = %s AND time >= %s))", d1, d2, t)
	case domain.WindowExact:
		var clauses []string
		if w.Date != "" {
			clauses = append(clauses, "date = "+b.bind(w.Date))
		}
		if w.TimeFrom != "" {
			from := b.bind(w.TimeFrom)
			to := b.bind(w.TimeTo)
			clauses = append(clauses, fmt.Sprintf("time >= %s AND time <= %s", from, to))
		}
		return strings.Join(clauses, " AND ")
	default:
		return ""
	}
}

// Scanner is satisfied by *sql.Rows, *sql.Row and pgx.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanSpot reads one row produced by Build.
func ScanSpot(s Scanner) (domain.RawSpot, error) {
	var r domain.RawSpot
	err := s.Scan(
		&r.ID,
		&r.Date,
		&r.Time,
		&r.Grid,
		&r.Frequency,
		&r.Mode,
		&r.Callsign,
		&r.RxCallsign,
		&r.SNR,
		&r.Drift,
		&r.Band,
	)
	if err != nil {
		return domain.RawSpot{}, fmt.Errorf("scan spot: %w", err)
	}
	return r, nil
}
