// Package geojson converts route documents to and from GeoJSON
// FeatureCollections for visual editing in tools like geojson.io.
package geojson

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twpayne/go-geom"
	geomjson "github.com/twpayne/go-geom/encoding/geojson"

	"github.com/davaotransit/routekit/internal/lib/geo"
	"github.com/davaotransit/routekit/internal/lib/routes"
)

// Marker colors understood by geojson.io.
const (
	stopColor     = "#ff0000"
	waypointColor = "#0000ff"
)

// ErrNoRouteID means the FeatureCollection carries no route identity
// and cannot be converted back into a route document.
var ErrNoRouteID = errors.New("missing route id in FeatureCollection properties")

// featureCollection mirrors the GeoJSON structure with the
// collection-level properties block that carries route metadata.
// go-geom's FeatureCollection drops unknown members, so the envelope is
// declared here.
type featureCollection struct {
	Type       string              `json:"type"`
	Properties map[string]any      `json:"properties"`
	Features   []*geomjson.Feature `json:"features"`
}

// Encode renders a route as a FeatureCollection: one Point feature per
// route point (red stops, blue waypoints) plus a LineString for
// visualizing the travel path.
func Encode(route routes.Route) ([]byte, error) {
	color := route.Color
	if color == "" {
		color = "#000000"
	}

	features := make([]*geomjson.Feature, 0, len(route.Points)+1)
	line := make([]float64, 0, 2*len(route.Points))

	for _, p := range route.Points {
		marker := waypointColor
		if p.Kind == routes.KindStop {
			marker = stopColor
		}
		features = append(features, &geomjson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{p.Longitude, p.Latitude}),
			Properties: map[string]any{
				"id":           p.ID,
				"name":         p.Name,
				"kind":         string(p.Kind),
				"marker-color": marker,
			},
		})
		line = append(line, p.Longitude, p.Latitude)
	}

	features = append(features, &geomjson.Feature{
		Geometry: geom.NewLineStringFlat(geom.XY, line),
		Properties: map[string]any{
			"stroke":         color,
			"stroke-width":   3,
			"stroke-opacity": 0.8,
		},
	})

	fc := featureCollection{
		Type: "FeatureCollection",
		Properties: map[string]any{
			"id":           route.ID,
			"route_number": route.RouteNumber,
			"name":         route.Name,
			"area":         route.Area,
			"time_period":  route.TimePeriod,
			"color":        color,
		},
		Features: features,
	}
	return json.MarshalIndent(fc, "", "  ")
}

// Decode converts an edited FeatureCollection back into a route
// document. LineString features are visualization only and skipped;
// points added in the editor arrive without an id and get a fresh one.
// Coordinates outside bounds are hard errors here.
func Decode(data []byte, bounds geo.Bounds) (routes.Route, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return routes.Route{}, fmt.Errorf("parse GeoJSON: %w", err)
	}

	id := stringProp(fc.Properties, "id")
	if id == "" {
		return routes.Route{}, ErrNoRouteID
	}

	route := routes.Route{
		ID:          id,
		RouteNumber: stringProp(fc.Properties, "route_number"),
		Name:        stringProp(fc.Properties, "name"),
		Area:        stringProp(fc.Properties, "area"),
		TimePeriod:  stringProp(fc.Properties, "time_period"),
		Color:       stringProp(fc.Properties, "color"),
	}
	if route.Color == "" {
		route.Color = "#000000"
	}

	for _, f := range fc.Features {
		pt, ok := f.Geometry.(*geom.Point)
		if !ok {
			continue
		}
		coords := pt.Coords()
		if len(coords) < 2 {
			return routes.Route{}, fmt.Errorf("point feature with %d coordinates", len(coords))
		}
		lon, lat := coords[0], coords[1]

		name := stringProp(f.Properties, "name")
		p := geo.Point{Lat: lat, Lon: lon}
		if !bounds.Contains(p) {
			return routes.Route{}, fmt.Errorf("point %q at %s is outside %s", name, p, bounds)
		}

		kind := routes.Kind(stringProp(f.Properties, "kind"))
		if kind == "" {
			kind = routes.KindStop
		}
		pointID := stringProp(f.Properties, "id")
		if pointID == "" {
			wp := routes.NewWaypoint(lat, lon)
			pointID = wp.ID
		}

		route.Points = append(route.Points, routes.Point{
			ID:        pointID,
			Name:      name,
			Latitude:  lat,
			Longitude: lon,
			Kind:      kind,
		})
	}

	if len(route.Points) < 2 {
		return routes.Route{}, routes.ErrTooFewPoints
	}
	return route, nil
}

func stringProp(props map[string]any, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}
