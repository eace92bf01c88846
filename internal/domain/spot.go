package domain

import "context"

// Unknown is returned when a band or zone cannot be resolved.
const Unknown = "Unknown"

// RawSpot is a stored reception report exactly as the decoder wrote it.
type RawSpot struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"` // YYMMDD
	Time       string  `json:"time"` // HHMM, UTC
	Grid       string  `json:"grid"` // transmitter locator
	Frequency  float64 `json:"frequency"`
	Mode       string  `json:"mode"`
	Callsign   string  `json:"callsign"`
	RxCallsign string  `json:"rx_callsign"`
	SNR        int     `json:"snr"`
	Drift      int     `json:"drift"`
	Band       string  `json:"band,omitempty"`
}

// Timestamp joins the stored date and time verbatim, e.g. "260107 1430".
func (s RawSpot) Timestamp() string {
	return s.Date + " " + s.Time
}

// Coordinate is a WGS-84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DetailSpot is the map feed projection: both path endpoints plus signal metrics.
type DetailSpot struct {
	Drift       int     `json:"drift"`
	Frequency   float64 `json:"frequency"`
	Band        string  `json:"band"`
	Mode        string  `json:"mode"`
	RxLat       float64 `json:"rx_lat"`
	RxLon       float64 `json:"rx_lon"`
	RxSign      string  `json:"rx_sign"`
	SNR         int     `json:"snr"`
	Time        string  `json:"time"`
	TxLat       float64 `json:"tx_lat"`
	TxLon       float64 `json:"tx_lon"`
	TxSign      string  `json:"tx_sign"`
	TxCountry   string  `json:"tx_country,omitempty"`
	TxContinent string  `json:"tx_continent,omitempty"`
}

// SummarySpot is the table feed projection.
type SummarySpot struct {
	ID      string `json:"id"`
	Band    string `json:"band"`
	Grid    string `json:"grid"`
	Time    string `json:"time"`
	CQZone  string `json:"cq_zone"`
	ITUZone string `json:"itu_zone,omitempty"`
	Region  string `json:"region"`
	Mode    string `json:"mode"`
}

// Projection selects the shape a raw spot is enriched into.
type Projection string

const (
	ProjectionDetail  Projection = "detail"
	ProjectionSummary Projection = "summary"
)

// SpotQuery is what the store collaborator is asked for. Results are sorted
// by (date, time) descending; Limit <= 0 means no limit.
type SpotQuery struct {
	Window TimeWindow
	Limit  int
}

// SpotStore reads raw spots. Implementations own their own timeout and retry policy.
type SpotStore interface {
	FindSpots(ctx context.Context, q SpotQuery) ([]RawSpot, error)
	Ping(ctx context.Context) error
}
