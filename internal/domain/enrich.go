package domain

import (
	"fmt"
	"log/slog"
)

// ZoneResolver maps a coordinate to a zone id, or Unknown when the point is
// outside every zone. Implementations must be safe for concurrent use.
type ZoneResolver interface {
	Resolve(lat, lon float64) string
}

// Degradation kinds reported to a DegradationRecorder.
const (
	DegradedGeocode  = "geocode"
	DegradedZoneMiss = "zone_miss"
	DegradedBandMiss = "band_miss"
	DegradedParse    = "parse"
)

// DegradationRecorder observes records that were served with fallback values.
type DegradationRecorder interface {
	RecordDegraded(kind string)
}

// Zones bundles the resolvers used during enrichment. Only CQ is required by
// the summary feed; ITU, Country and Continent are optional.
type Zones struct {
	CQ        ZoneResolver
	ITU       ZoneResolver
	Country   ZoneResolver
	Continent ZoneResolver
}

// Enricher turns raw spots into feed projections. It holds no mutable state
// and may be shared across requests.
type Enricher struct {
	receiver Coordinate
	zones    Zones
	recorder DegradationRecorder
	logger   *slog.Logger
}

// NewEnricher resolves the receiver grid once; every spot in every batch uses
// the same receiver coordinate.
func NewEnricher(receiverGrid string, zones Zones, recorder DegradationRecorder, logger *slog.Logger) (*Enricher, error) {
	rx, err := LocateGrid(receiverGrid)
	if err != nil {
		return nil, fmt.Errorf("receiver grid: %w", err)
	}
	return &Enricher{
		receiver: rx,
		zones:    zones,
		recorder: recorder,
		logger:   logger,
	}, nil
}

// Receiver returns the fixed receiver coordinate.
func (e *Enricher) Receiver() Coordinate {
	return e.receiver
}

// Detail builds the map feed projection. A stored band is passed through;
// otherwise it is classified from the frequency.
func (e *Enricher) Detail(raw RawSpot) DetailSpot {
	tx, located := e.locate(raw)

	band := raw.Band
	if band == "" {
		band = e.classify(raw)
	}

	spot := DetailSpot{
		Drift:     raw.Drift,
		Frequency: raw.Frequency,
		Band:      band,
		Mode:      raw.Mode,
		RxLat:     e.receiver.Lat,
		RxLon:     e.receiver.Lon,
		RxSign:    raw.RxCallsign,
		SNR:       raw.SNR,
		Time:      raw.Timestamp(),
		TxLat:     tx.Lat,
		TxLon:     tx.Lon,
		TxSign:    raw.Callsign,
	}
	if e.zones.Country != nil {
		spot.TxCountry = e.resolve(e.zones.Country, "country", raw, tx, located)
	}
	if e.zones.Continent != nil {
		spot.TxContinent = e.resolve(e.zones.Continent, "continent", raw, tx, located)
	}
	return spot
}

// Summary builds the table feed projection. The band is always classified
// from the frequency.
//
// Zones are only resolved for spots whose grid geocoded. A spot with a bad
// grid still carries the (0, 0) fallback coordinate, but its zones are
// Unknown rather than whatever zone contains (0, 0), which would misattribute
// it to the Gulf of Guinea.
func (e *Enricher) Summary(raw RawSpot) SummarySpot {
	tx, located := e.locate(raw)

	cq := Unknown
	if e.zones.CQ != nil {
		cq = e.resolve(e.zones.CQ, "cq", raw, tx, located)
	}

	spot := SummarySpot{
		ID:     raw.ID,
		Band:   e.classify(raw),
		Grid:   raw.Grid,
		Time:   raw.Timestamp(),
		CQZone: cq,
		Region: RegionForCQZone(cq),
		Mode:   raw.Mode,
	}
	if e.zones.ITU != nil {
		spot.ITUZone = e.resolve(e.zones.ITU, "itu", raw, tx, located)
	}
	return spot
}

// locate geocodes the transmitter grid, falling back to (0, 0).
func (e *Enricher) locate(raw RawSpot) (Coordinate, bool) {
	c, err := LocateGrid(raw.Grid)
	if err != nil {
		e.logger.Debug("grid geocoding failed, using 0,0",
			"spot_id", raw.ID,
			"grid", raw.Grid,
			"error", err,
		)
		e.record(DegradedGeocode)
		return Coordinate{}, false
	}
	return c, true
}

func (e *Enricher) classify(raw RawSpot) string {
	band := ClassifyBand(raw.Frequency)
	if band == Unknown {
		e.logger.Debug("frequency outside known bands",
			"spot_id", raw.ID,
			"frequency", raw.Frequency,
		)
		e.record(DegradedBandMiss)
	}
	return band
}

func (e *Enricher) resolve(r ZoneResolver, set string, raw RawSpot, tx Coordinate, located bool) string {
	if !located {
		return Unknown
	}
	id := r.Resolve(tx.Lat, tx.Lon)
	if id == Unknown {
		e.logger.Debug("point outside all zones",
			"spot_id", raw.ID,
			"zone_set", set,
			"lat", tx.Lat,
			"lon", tx.Lon,
		)
		e.record(DegradedZoneMiss)
	}
	return id
}

func (e *Enricher) record(kind string) {
	if e.recorder != nil {
		e.recorder.RecordDegraded(kind)
	}
}
