package domain

import (
	"fmt"
	"math"
	"strings"
)

// Maidenhead cell sizes in degrees. Each character pair subdivides the
// previous cell: 18x18 fields, 10x10 squares, 24x24 subsquares, 10x10
// extended squares.
const (
	fieldLonSize  = 20.0
	fieldLatSize  = 10.0
	squareLonSize = 2.0
	squareLatSize = 1.0
	subLonSize    = squareLonSize / 24.0
	subLatSize    = squareLatSize / 24.0
	extLonSize    = subLonSize / 10.0
	extLatSize    = subLatSize / 10.0
)

// GeocodeError reports a locator that cannot be converted to a coordinate.
type GeocodeError struct {
	Grid   string
	Reason string
}

func (e *GeocodeError) Error() string {
	return fmt.Sprintf("geocode grid %q: %s", e.Grid, e.Reason)
}

// LocateGrid returns the center of the cell named by a 4, 6 or 8 character
// Maidenhead locator. Letters are case-insensitive.
func LocateGrid(grid string) (Coordinate, error) {
	g := strings.ToUpper(strings.TrimSpace(grid))
	switch len(g) {
	case 4, 6, 8:
	default:
		return Coordinate{}, &GeocodeError{Grid: grid, Reason: "length must be 4, 6 or 8"}
	}

	if !between(g[0], 'A', 'R') || !between(g[1], 'A', 'R') {
		return Coordinate{}, &GeocodeError{Grid: grid, Reason: "field must be A-R"}
	}
	lon := -180.0 + float64(g[0]-'A')*fieldLonSize
	lat := -90.0 + float64(g[1]-'A')*fieldLatSize

	if !between(g[2], '0', '9') || !between(g[3], '0', '9') {
		return Coordinate{}, &GeocodeError{Grid: grid, Reason: "square must be 0-9"}
	}
	lon += float64(g[2]-'0') * squareLonSize
	lat += float64(g[3]-'0') * squareLatSize
	cellLon, cellLat := squareLonSize, squareLatSize

	if len(g) >= 6 {
		if !between(g[4], 'A', 'X') || !between(g[5], 'A', 'X') {
			return Coordinate{}, &GeocodeError{Grid: grid, Reason: "subsquare must be A-X"}
		}
		lon += float64(g[4]-'A') * subLonSize
		lat += float64(g[5]-'A') * subLatSize
		cellLon, cellLat = subLonSize, subLatSize
	}

	if len(g) == 8 {
		if !between(g[6], '0', '9') || !between(g[7], '0', '9') {
			return Coordinate{}, &GeocodeError{Grid: grid, Reason: "extended square must be 0-9"}
		}
		lon += float64(g[6]-'0') * extLonSize
		lat += float64(g[7]-'0') * extLatSize
		cellLon, cellLat = extLonSize, extLatSize
	}

	return Coordinate{Lat: lat + cellLat/2, Lon: lon + cellLon/2}, nil
}

// EncodeGrid returns the locator of the cell containing c at the given
// precision (4, 6 or 8 characters). Subsquare letters are lowercase, e.g. "FN21ni".
func EncodeGrid(c Coordinate, precision int) (string, error) {
	switch precision {
	case 4, 6, 8:
	default:
		return "", fmt.Errorf("encode grid: precision must be 4, 6 or 8, got %d", precision)
	}
	if !(c.Lat >= -90 && c.Lat <= 90) || !(c.Lon >= -180 && c.Lon <= 180) {
		return "", fmt.Errorf("encode grid: coordinate out of range: %.6f,%.6f", c.Lat, c.Lon)
	}

	lon := c.Lon + 180
	lat := c.Lat + 90
	out := make([]byte, 0, precision)

	fLon := clampIndex(lon/fieldLonSize, 18)
	fLat := clampIndex(lat/fieldLatSize, 18)
	out = append(out, byte('A'+fLon), byte('A'+fLat))
	lon -= float64(fLon) * fieldLonSize
	lat -= float64(fLat) * fieldLatSize

	sLon := clampIndex(lon/squareLonSize, 10)
	sLat := clampIndex(lat/squareLatSize, 10)
	out = append(out, byte('0'+sLon), byte('0'+sLat))
	lon -= float64(sLon) * squareLonSize
	lat -= float64(sLat) * squareLatSize

	if precision >= 6 {
		uLon := clampIndex(lon/subLonSize, 24)
		uLat := clampIndex(lat/subLatSize, 24)
		out = append(out, byte('a'+uLon), byte('a'+uLat))
		lon -= float64(uLon) * subLonSize
		lat -= float64(uLat) * subLatSize
	}

	if precision == 8 {
		eLon := clampIndex(lon/extLonSize, 10)
		eLat := clampIndex(lat/extLatSize, 10)
		out = append(out, byte('0'+eLon), byte('0'+eLat))
	}

	return string(out), nil
}

func between(c, lo, hi byte) bool {
	return c >= lo && c <= hi
}

// clampIndex floors v into [0, n). The east and north edges (lon 180, lat 90)
// belong to the last cell.
func clampIndex(v float64, n int) int {
	i := int(math.Floor(v))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
