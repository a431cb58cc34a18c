package kml

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davaotransit/routekit/internal/lib/routes"
)

func TestWrite(t *testing.T) {
	route := routes.Route{
		ID:          "route-r102-am",
		RouteNumber: "R102",
		Name:        "Toril - Downtown",
		Color:       "#d73027",
		Points: []routes.Point{
			{ID: "s1", Name: "Toril Terminal", Latitude: 7.0194, Longitude: 125.4954, Kind: routes.KindStop},
			{ID: "w1", Latitude: 7.04, Longitude: 125.54, Kind: routes.KindWaypoint},
			{ID: "s2", Name: "Bankerohan", Latitude: 7.0626, Longitude: 125.5987, Kind: routes.KindStop},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, route))
	out := buf.String()

	assert.Contains(t, out, "<name>R102 Toril - Downtown</name>")
	assert.Contains(t, out, "<name>Toril Terminal</name>")
	assert.Contains(t, out, "<name>Bankerohan</name>")
	assert.Contains(t, out, "<LineString>")

	// Stops become placemarks, waypoints only feed the line.
	assert.Equal(t, 3, strings.Count(out, "<Placemark>"), "two stops plus the route line")
	assert.NotContains(t, out, "w1")
}

func TestParseHexColor(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0xd7, G: 0x30, B: 0x27, A: 0xff}, parseHexColor("#d73027"))
	assert.Equal(t, color.Black, parseHexColor(""))
	assert.Equal(t, color.Black, parseHexColor("red"))
}
