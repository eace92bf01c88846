package domain

import (
	"slices"
	"sort"
)

// SelectRecent keeps the n most recent spots by (date, time) and returns them
// oldest first. n <= 0 keeps everything.
//
// The selection is a stable descending sort followed by a reverse of the
// kept slice, so spots sharing a (date, time) come out in the reverse of
// their store retrieval order. The input is not modified.
func SelectRecent(spots []RawSpot, n int) []RawSpot {
	out := slices.Clone(spots)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Time > out[j].Time
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	slices.Reverse(out)
	return out
}
