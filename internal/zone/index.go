package zone

import (
	"errors"
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"

	"github.com/couchcryptid/psws-spot-service/internal/domain"
)

// Zone is one boundary with its identifier. A single polygon is stored as a
// one-element MultiPolygon. Coordinates are [lon, lat].
type Zone struct {
	ID       string
	Polygons orb.MultiPolygon
}

// member is one polygon of one zone. Members are stored in dataset order, so
// sorting candidates by position restores that order.
type member struct {
	zone    int
	polygon orb.Polygon
}

// Index resolves points to zone ids. It is immutable after New and safe for
// concurrent use.
type Index struct {
	zones    []Zone
	members  []member
	tree     rtree.RTreeG[int]
	vertices int
}

// New builds an index over zones, keeping their order for overlap resolution.
func New(zones []Zone) (*Index, error) {
	if len(zones) == 0 {
		return nil, errors.New("zone index: no zones")
	}
	ix := &Index{zones: zones}
	for zi, z := range zones {
		if z.ID == "" {
			return nil, fmt.Errorf("zone index: zone %d has no id", zi)
		}
		for _, p := range z.Polygons {
			if len(p) == 0 || len(p[0]) < 3 {
				continue
			}
			b := p.Bound()
			ix.tree.Insert([2]float64{b.Min[0], b.Min[1]}, [2]float64{b.Max[0], b.Max[1]}, len(ix.members))
			ix.members = append(ix.members, member{zone: zi, polygon: p})
			for _, r := range p {
				ix.vertices += len(r)
			}
		}
	}
	if len(ix.members) == 0 {
		return nil, errors.New("zone index: no usable polygons")
	}
	return ix, nil
}

// Resolve returns the id of the first zone containing (lat, lon), or
// domain.Unknown. Note the argument order: geometry is tested as [lon, lat].
func (ix *Index) Resolve(lat, lon float64) string {
	hits := ix.containing(lat, lon, true)
	if len(hits) == 0 {
		return domain.Unknown
	}
	return ix.zones[hits[0]].ID
}

// ResolveAll returns the ids of every zone containing (lat, lon) in dataset
// order. More than one id means the dataset overlaps at that point.
func (ix *Index) ResolveAll(lat, lon float64) []string {
	hits := ix.containing(lat, lon, false)
	ids := make([]string, 0, len(hits))
	for _, zi := range hits {
		ids = append(ids, ix.zones[zi].ID)
	}
	return ids
}

// Len reports the number of zones.
func (ix *Index) Len() int { return len(ix.zones) }

// Vertices reports the total ring vertex count across all polygons.
func (ix *Index) Vertices() int { return ix.vertices }

// IDs lists zone ids in dataset order.
func (ix *Index) IDs() []string {
	ids := make([]string, len(ix.zones))
	for i, z := range ix.zones {
		ids[i] = z.ID
	}
	return ids
}

func (ix *Index) containing(lat, lon float64, firstOnly bool) []int {
	pt := orb.Point{lon, lat}

	var candidates []int
	ix.tree.Search(pt, pt, func(_, _ [2]float64, m int) bool {
		candidates = append(candidates, m)
		return true
	})
	if len(candidates) == 0 {
		return nil
	}
	sort.Ints(candidates)

	var zones []int
	for _, m := range candidates {
		mem := ix.members[m]
		if len(zones) > 0 && zones[len(zones)-1] == mem.zone {
			continue
		}
		if polygonContains(mem.polygon, pt) {
			zones = append(zones, mem.zone)
			if firstOnly {
				break
			}
		}
	}
	return zones
}
