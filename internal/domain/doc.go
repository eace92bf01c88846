// Package domain models amateur-radio propagation spots (WSPR, FT8, FT4) and
// the pure enrichment applied to them before they are served.
//
// # Data Source
//
// Spots are decoded by an external receiver stack (WSPRDaemon on a PSWS
// station) and written to a single "spots" collection. This service only
// reads them.
//
// # Stored Conventions
//
// Date and time are separate zero-padded strings:
//
//	date: YYMMDD, e.g. "260107" = 2026-01-07
//	time: HHMM in UTC, e.g. "1430" = 14:30
//
// Because both are fixed width, comparing them as strings gives calendar
// order. Range queries rely on this; see [TimeWindow].
//
// Grid: a Maidenhead locator of 4, 6 or 8 characters ("FN21", "FN21ni",
// "FN21ni42"). Frequency is in MHz. Band is optional and may be missing on
// older records.
//
// # Enrichment
//
// Each spot is projected into one of two shapes:
//
//	Detail:  both path endpoints, signal metrics (snr, drift), band, mode.
//	Summary: band, grid, CQ zone and region for the band/region table.
//
// Enrichment never fails a batch. A bad grid maps to (0, 0), a point outside
// every zone maps to "Unknown", and an out-of-band frequency maps to
// "Unknown". Each of these is reported through [DegradationRecorder].
//
// # Zones
//
// CQ zones (1-40), ITU zones (1-90) and countries are boundary polygons
// loaded once at startup. Resolution is done by a [ZoneResolver]; the
// implementation lives in the zone package.
package domain
