package zone

import (
	"math"

	"github.com/paulmach/orb"
)

// edgeEpsilon absorbs float error when deciding that a point lies on an edge.
const edgeEpsilon = 1e-9

// polygonContains applies the boundary rule: edges and vertices count as inside,
// including the edges of holes.
func polygonContains(p orb.Polygon, pt orb.Point) bool {
	if len(p) == 0 {
		return false
	}
	if onRing(p[0], pt) {
		return true
	}
	if !ringContains(p[0], pt) {
		return false
	}
	for _, hole := range p[1:] {
		if onRing(hole, pt) {
			return true
		}
		if ringContains(hole, pt) {
			return false
		}
	}
	return true
}

// ringContains is the even-odd rule over a ring of [lon, lat] points. The
// closing segment is implied, so rings may or may not repeat the first point.
func ringContains(r orb.Ring, pt orb.Point) bool {
	n := len(r)
	if n < 3 {
		return false
	}
	x, y := pt[0], pt[1]
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := r[i][0], r[i][1]
		xj, yj := r[j][0], r[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

func onRing(r orb.Ring, pt orb.Point) bool {
	n := len(r)
	if n == 0 {
		return false
	}
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if onSegment(r[j], r[i], pt) {
			return true
		}
	}
	return false
}

func onSegment(a, b, p orb.Point) bool {
	if p[0] < math.Min(a[0], b[0])-edgeEpsilon || p[0] > math.Max(a[0], b[0])+edgeEpsilon ||
		p[1] < math.Min(a[1], b[1])-edgeEpsilon || p[1] > math.Max(a[1], b[1])+edgeEpsilon {
		return false
	}
	cross := (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
	return math.Abs(cross) <= edgeEpsilon*math.Max(1, math.Hypot(b[0]-a[0], b[1]-a[1]))
}
