package normalize

import (
	"go.uber.org/zap"

	"github.com/davaotransit/routekit/internal/lib/geo"
	"github.com/davaotransit/routekit/internal/lib/routes"
)

// Report summarizes the quality of a normalized route. None of its
// findings abort processing; out-of-bounds points and wide gaps are
// surfaced to the operator and the document is written regardless.
type Report struct {
	Points          int
	Stops           int
	OutOfBounds     []routes.Point
	MaxWaypointGapM float64
}

// Inspect checks every point against the serviceable-region bounds and
// computes the maximum great-circle gap between consecutive
// waypoint-kind points.
func Inspect(route routes.Route, bounds geo.Bounds) Report {
	r := Report{Points: len(route.Points)}

	for _, p := range route.Points {
		if p.Kind == routes.KindStop {
			r.Stops++
		}
		if !bounds.Contains(p.Coordinate()) {
			r.OutOfBounds = append(r.OutOfBounds, p)
		}
	}

	for i := 1; i < len(route.Points); i++ {
		prev, curr := route.Points[i-1], route.Points[i]
		if prev.Kind != routes.KindWaypoint || curr.Kind != routes.KindWaypoint {
			continue
		}
		if gap := geo.DistanceBetween(prev.Coordinate(), curr.Coordinate()); gap > r.MaxWaypointGapM {
			r.MaxWaypointGapM = gap
		}
	}
	return r
}

// LogWarnings emits one warning per out-of-bounds point.
func (r Report) LogWarnings(log *zap.Logger, bounds geo.Bounds) {
	for _, p := range r.OutOfBounds {
		log.Warn("point outside serviceable bounds",
			zap.String("id", p.ID),
			zap.Float64("latitude", p.Latitude),
			zap.Float64("longitude", p.Longitude),
			zap.Stringer("bounds", bounds))
	}
}
