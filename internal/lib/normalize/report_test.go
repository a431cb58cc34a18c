package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davaotransit/routekit/internal/lib/geo"
	"github.com/davaotransit/routekit/internal/lib/routes"
)

func TestInspect_CountsAndBounds(t *testing.T) {
	r := routes.Route{
		ID:          "route-r5",
		RouteNumber: "R5",
		Points: []routes.Point{
			stop("s1", "Matina", 7.05, 125.58),
			waypoint("w1", 7.055, 125.587),
			stop("s2", "Agdao", 7.0828, 125.6242),
			waypoint("w2", 14.5995, 120.9842), // Manila, far outside Davao
		},
	}

	report := Inspect(r, geo.DavaoBounds)
	assert.Equal(t, 4, report.Points)
	assert.Equal(t, 2, report.Stops)
	require.Len(t, report.OutOfBounds, 1)
	assert.Equal(t, "w2", report.OutOfBounds[0].ID)
}

func TestInspect_MaxGapOnlyBetweenConsecutiveWaypoints(t *testing.T) {
	near := waypoint("w1", 7.05, 125.58)
	far := waypoint("w2", 7.05, 125.581) // ~110m from w1
	r := routes.Route{
		ID:          "route-r5",
		RouteNumber: "R5",
		Points: []routes.Point{
			stop("s1", "A", 7.00, 125.50),
			near,
			far,
			stop("s2", "B", 7.06, 125.60), // huge stop-to-waypoint gap must not count
		},
	}

	report := Inspect(r, geo.DavaoBounds)
	want := geo.DistanceBetween(near.Coordinate(), far.Coordinate())
	assert.InDelta(t, want, report.MaxWaypointGapM, 0.01)
}

func TestInspect_EmptyRoute(t *testing.T) {
	report := Inspect(routes.Route{}, geo.DavaoBounds)
	assert.Zero(t, report.Points)
	assert.Zero(t, report.Stops)
	assert.Zero(t, report.MaxWaypointGapM)
	assert.Empty(t, report.OutOfBounds)
}
