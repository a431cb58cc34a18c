package normalize

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/davaotransit/routekit/internal/lib/geo"
	"github.com/davaotransit/routekit/internal/lib/routes"
)

var (
	// ErrTooFewStops is returned for routes that cannot be segmented.
	ErrTooFewStops = errors.New("route has fewer than 2 stops")

	// ErrStopCountChanged means reassembly lost or duplicated a stop.
	// The result must be discarded and the original left untouched.
	ErrStopCountChanged = errors.New("stop count changed during normalization")
)

// Matcher snaps a coordinate trace onto the road network. Any error is
// a soft failure: the normalizer falls back to straight-line
// interpolation for that segment.
type Matcher interface {
	Match(ctx context.Context, coords []geo.Point) ([]geo.Point, error)
}

// Normalizer rebuilds route waypoints at a fixed spacing, one
// stop-to-stop segment at a time.
type Normalizer struct {
	matcher  Matcher
	spacingM float64
	log      *zap.Logger
}

// New creates a Normalizer that targets spacingM meters between
// waypoints.
func New(matcher Matcher, spacingM float64, log *zap.Logger) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Normalizer{matcher: matcher, spacingM: spacingM, log: log}
}

// Normalize returns a new route whose waypoints are evenly spaced along
// the road network. Stops keep their identity, order, and coordinates;
// every waypoint is re-minted. The input route is never mutated.
func (n *Normalizer) Normalize(ctx context.Context, route routes.Route) (routes.Route, error) {
	if len(route.Points) < 2 {
		return routes.Route{}, routes.ErrTooFewPoints
	}

	stopIdx := stopIndices(route.Points)
	if len(stopIdx) < 2 {
		return routes.Route{}, fmt.Errorf("%w: route %s has %d", ErrTooFewStops, route.ID, len(stopIdx))
	}

	coords := route.Coordinates()
	var newPoints []routes.Point

	// Lead-in: geometry before the first stop. The segment runs through
	// the stop so matching has a proper endpoint, but the stop itself is
	// emitted by the loop below.
	if first := stopIdx[0]; first > 0 {
		seg := n.normalizeSegment(ctx, coords[:first+1])
		for _, p := range seg[:len(seg)-1] {
			newPoints = append(newPoints, routes.NewWaypoint(p.Lat, p.Lon))
		}
	}

	for i, idx := range stopIdx {
		newPoints = append(newPoints, route.Points[idx])
		if i == len(stopIdx)-1 {
			break
		}

		next := stopIdx[i+1]
		seg := n.normalizeSegment(ctx, coords[idx:next+1])
		// Interior points only; both endpoints are the stops.
		if len(seg) > 2 {
			for _, p := range seg[1 : len(seg)-1] {
				newPoints = append(newPoints, routes.NewWaypoint(p.Lat, p.Lon))
			}
		}
	}

	// Trail-out: geometry after the last stop, mirror of the lead-in.
	if last := stopIdx[len(stopIdx)-1]; last < len(route.Points)-1 {
		seg := n.normalizeSegment(ctx, coords[last:])
		for _, p := range seg[1:] {
			newPoints = append(newPoints, routes.NewWaypoint(p.Lat, p.Lon))
		}
	}

	out := route
	out.Points = newPoints

	if got := len(out.Stops()); got != len(stopIdx) {
		return routes.Route{}, fmt.Errorf("%w: route %s: %d -> %d", ErrStopCountChanged, route.ID, len(stopIdx), got)
	}
	return out, nil
}

// normalizeSegment produces evenly spaced coordinates covering one
// segment, endpoints included. Road-snapped geometry is preferred; if
// the matcher cannot serve, the segment degrades to a straight line
// between its endpoints.
func (n *Normalizer) normalizeSegment(ctx context.Context, seg []geo.Point) []geo.Point {
	if len(seg) < 2 {
		return append([]geo.Point(nil), seg...)
	}

	geom, err := n.matcher.Match(ctx, seg)
	if err != nil || len(geom) == 0 {
		n.log.Debug("falling back to linear interpolation",
			zap.Int("segment_points", len(seg)), zap.Error(err))
		return n.linearFallback(seg[0], seg[len(seg)-1])
	}
	return Resample(geom, n.spacingM)
}

// linearFallback divides the straight line between two points into
// equal sub-intervals no longer than the target spacing. The endpoints
// are returned exactly.
func (n *Normalizer) linearFallback(start, end geo.Point) []geo.Point {
	dist := geo.DistanceBetween(start, end)
	if dist <= n.spacingM {
		return []geo.Point{start, end}
	}

	intervals := int(math.Ceil(dist / n.spacingM))
	out := make([]geo.Point, 0, intervals+1)
	out = append(out, start)
	for i := 1; i < intervals; i++ {
		out = append(out, geo.InterpolateBetween(start, end, float64(i)/float64(intervals)))
	}
	return append(out, end)
}

func stopIndices(points []routes.Point) []int {
	var idx []int
	for i, p := range points {
		if p.Kind == routes.KindStop {
			idx = append(idx, i)
		}
	}
	return idx
}
