// Package kml renders route documents as KML for eyeballing a route in
// Google Earth before and after normalization.
package kml

import (
	"fmt"
	"image/color"
	"io"

	kml "github.com/twpayne/go-kml/v2"

	"github.com/davaotransit/routekit/internal/lib/routes"
)

// Write renders the route as a KML document: one placemark per stop
// and a single line following every point in travel order.
func Write(w io.Writer, route routes.Route) error {
	children := []kml.Element{
		kml.Name(fmt.Sprintf("%s %s", route.RouteNumber, route.Name)),
		kml.SharedStyle("route-line",
			kml.LineStyle(
				kml.Color(parseHexColor(route.Color)),
				kml.Width(3),
			),
		),
	}

	line := make([]kml.Coordinate, 0, len(route.Points))
	for _, p := range route.Points {
		line = append(line, kml.Coordinate{Lon: p.Longitude, Lat: p.Latitude})
		if p.Kind != routes.KindStop {
			continue
		}
		children = append(children, kml.Placemark(
			kml.Name(p.Name),
			kml.Point(
				kml.Coordinates(kml.Coordinate{Lon: p.Longitude, Lat: p.Latitude}),
			),
		))
	}

	children = append(children, kml.Placemark(
		kml.Name("Route geometry"),
		kml.StyleURL("#route-line"),
		kml.LineString(
			kml.Coordinates(line...),
			kml.Tessellate(true),
		),
	))

	return kml.KML(kml.Document(children...)).WriteIndent(w, "", "  ")
}

// parseHexColor reads a #rrggbb route color. Unparseable colors fall
// back to opaque black.
func parseHexColor(s string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.Black
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
