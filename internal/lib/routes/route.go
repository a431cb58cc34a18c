// Package routes defines the persisted transit-route document and its
// file store.
package routes

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/davaotransit/routekit/internal/lib/geo"
)

// Kind distinguishes named transit stops from the fungible geometry
// points between them.
type Kind string

const (
	// KindStop is a named, identity-stable transit stop. Stops are
	// never regenerated or reordered.
	KindStop Kind = "stop"
	// KindWaypoint describes road-following geometry between stops.
	// Waypoints may be discarded and re-minted freely.
	KindWaypoint Kind = "waypoint"
)

// ErrTooFewPoints is returned for documents that cannot describe a
// route geometry.
var ErrTooFewPoints = errors.New("route has fewer than 2 points")

// Point is one entry in a route's ordered point sequence.
type Point struct {
	ID        string  `json:"id" validate:"required"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Kind      Kind    `json:"kind" validate:"oneof=stop waypoint"`
}

// UnmarshalJSON defaults a missing kind to stop, for compatibility with
// documents written before waypoints existed.
func (p *Point) UnmarshalJSON(data []byte) error {
	type alias Point
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Kind == "" {
		a.Kind = KindStop
	}
	*p = Point(a)
	return nil
}

// Coordinate returns the point's location as a geo.Point.
func (p Point) Coordinate() geo.Point {
	return geo.Point{Lat: p.Latitude, Lon: p.Longitude}
}

// NewWaypoint mints a waypoint with a fresh time-ordered identity at
// the given location.
func NewWaypoint(lat, lon float64) Point {
	return Point{
		ID:        newID(),
		Latitude:  lat,
		Longitude: lon,
		Kind:      KindWaypoint,
	}
}

// newID generates a time-ordered unique identifier. Only uniqueness is
// load-bearing, so a random UUID stands in if V7 generation fails.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Route is a transit route: ordered points whose order defines the
// direction of travel.
type Route struct {
	ID          string  `json:"id" validate:"required"`
	RouteNumber string  `json:"route_number" validate:"required"`
	Name        string  `json:"name"`
	Area        string  `json:"area"`
	TimePeriod  string  `json:"time_period"`
	Color       string  `json:"color"`
	Points      []Point `json:"points" validate:"dive"`
}

// Stops returns the route's stops in travel order.
func (r Route) Stops() []Point {
	var stops []Point
	for _, p := range r.Points {
		if p.Kind == KindStop {
			stops = append(stops, p)
		}
	}
	return stops
}

// Coordinates returns every point's location in travel order.
func (r Route) Coordinates() []geo.Point {
	coords := make([]geo.Point, len(r.Points))
	for i, p := range r.Points {
		coords[i] = p.Coordinate()
	}
	return coords
}

var validate = validator.New()

// Validate checks the document's structural integrity.
func (r Route) Validate() error {
	if len(r.Points) < 2 {
		return ErrTooFewPoints
	}
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("route %s: %w", r.ID, err)
	}
	return nil
}
