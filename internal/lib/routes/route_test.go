package routes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoute() Route {
	return Route{
		ID:          "route-r102-am",
		RouteNumber: "R102",
		Name:        "Toril - Downtown",
		Area:        "toril",
		TimePeriod:  "am",
		Color:       "#d73027",
		Points: []Point{
			{ID: "stop-1", Name: "Toril Terminal", Latitude: 7.0194, Longitude: 125.4954, Kind: KindStop},
			{ID: "wp-1", Latitude: 7.03, Longitude: 125.51, Kind: KindWaypoint},
			{ID: "stop-2", Name: "Bankerohan", Latitude: 7.0626, Longitude: 125.5987, Kind: KindStop},
		},
	}
}

func TestPointKindDefaultsToStop(t *testing.T) {
	// Documents written before waypoints existed carry no kind field.
	var p Point
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","name":"Matina","latitude":7.05,"longitude":125.58}`), &p))
	assert.Equal(t, KindStop, p.Kind)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"y","latitude":7.05,"longitude":125.58,"kind":"waypoint"}`), &p))
	assert.Equal(t, KindWaypoint, p.Kind)
}

func TestRouteValidate(t *testing.T) {
	r := testRoute()
	require.NoError(t, r.Validate())

	short := r
	short.Points = r.Points[:1]
	assert.ErrorIs(t, short.Validate(), ErrTooFewPoints)

	badLat := testRoute()
	badLat.Points[1].Latitude = 95
	assert.Error(t, badLat.Validate())

	noID := testRoute()
	noID.ID = ""
	assert.Error(t, noID.Validate())

	badKind := testRoute()
	badKind.Points[0].Kind = "terminal"
	assert.Error(t, badKind.Validate())
}

func TestRouteStops(t *testing.T) {
	stops := testRoute().Stops()
	require.Len(t, stops, 2)
	assert.Equal(t, "Toril Terminal", stops[0].Name)
	assert.Equal(t, "Bankerohan", stops[1].Name)
}

func TestRouteCoordinates(t *testing.T) {
	coords := testRoute().Coordinates()
	require.Len(t, coords, 3)
	assert.Equal(t, 7.0194, coords[0].Lat)
	assert.Equal(t, 125.5987, coords[2].Lon)
}

func TestNewWaypoint(t *testing.T) {
	a := NewWaypoint(7.05, 125.58)
	b := NewWaypoint(7.05, 125.58)

	assert.Equal(t, KindWaypoint, a.Kind)
	assert.Empty(t, a.Name)
	assert.Equal(t, 7.05, a.Latitude)
	assert.Equal(t, 125.58, a.Longitude)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID, "every waypoint gets a fresh identity")
}
