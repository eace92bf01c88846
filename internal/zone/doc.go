// Package zone resolves coordinates to boundary zones (CQ zones, ITU zones,
// countries) loaded from GeoJSON.
//
// An [Index] is built once at startup and never mutated, so a single value is
// shared by every request without locking. Polygon envelopes live in an R-tree;
// candidates are confirmed with an even-odd ray cast in dataset order.
//
// Boundary rule: a point on any ring edge or vertex of a polygon, outer ring
// or hole, is contained by that polygon. When zones overlap (including shared
// edges) the zone listed first in the dataset wins. Datasets are expected to be
// disjoint; cmd/checkzones reports where they are not.
package zone
