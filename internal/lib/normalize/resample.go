// Package normalize rebuilds a route's waypoints so they are evenly
// spaced along the road network, leaving every stop untouched.
package normalize

import (
	"github.com/davaotransit/routekit/internal/lib/geo"
)

// Resample walks a dense polyline and emits points at a fixed
// arc-length interval. The first and last input points are always
// emitted; interior points land at the exact fractional position where
// the cumulative distance reaches the next multiple of spacingM, so a
// long leg can yield several points. Input with fewer than 2 points is
// returned unchanged.
//
// Resample is a pure function: identical geometry and spacing always
// produce identical output, which keeps normalized route files
// diffable.
func Resample(geometry []geo.Point, spacingM float64) []geo.Point {
	if len(geometry) < 2 {
		return append([]geo.Point(nil), geometry...)
	}

	out := []geo.Point{geometry[0]}
	accumulated := 0.0

	for i := 1; i < len(geometry); i++ {
		prev := geometry[i-1]
		curr := geometry[i]
		legLen := geo.DistanceBetween(prev, curr)

		remaining := legLen
		legStart := 0.0

		for accumulated+remaining >= spacingM {
			toNext := spacingM - accumulated
			fraction := legStart + toNext/legLen
			if fraction > 1 {
				break
			}
			out = append(out, geo.InterpolateBetween(prev, curr, fraction))
			remaining -= toNext
			legStart = fraction
			accumulated = 0
		}

		// Carry the tail of this leg into the next one.
		accumulated += remaining
	}

	// The route tail is never truncated.
	if out[len(out)-1] != geometry[len(geometry)-1] {
		out = append(out, geometry[len(geometry)-1])
	}
	return out
}
