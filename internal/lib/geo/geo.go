// Package geo provides the geometry primitives used by the waypoint
// normalization pipeline: great-circle distance, linear interpolation,
// and the serviceable-region bounding box.
package geo

import (
	"fmt"
	"math"
)

// EarthRadiusM is the fixed Earth radius used for haversine calculations.
const EarthRadiusM = 6371000.0

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", p.Lat, p.Lon)
}

// Valid reports whether the point holds plausible geographic coordinates.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Distance returns the great-circle distance in meters between two
// coordinates using the haversine formula. It is symmetric and returns
// exactly zero for identical coordinates.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}

	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusM * c
}

// DistanceBetween is Distance over Point values.
func DistanceBetween(a, b Point) float64 {
	return Distance(a.Lat, a.Lon, b.Lat, b.Lon)
}

// Interpolate returns the point at the given fraction along the straight
// line between two coordinates in lat/lon space. fraction=0 returns the
// first point exactly and fraction=1 the second.
//
// Linear interpolation is only an approximation of the geodesic, adequate
// for city-scale spans where the curvature error is far below GPS noise.
func Interpolate(lat1, lon1, lat2, lon2, fraction float64) (float64, float64) {
	lat := lat1 + (lat2-lat1)*fraction
	lon := lon1 + (lon2-lon1)*fraction
	return lat, lon
}

// InterpolateBetween is Interpolate over Point values.
func InterpolateBetween(a, b Point, fraction float64) Point {
	lat, lon := Interpolate(a.Lat, a.Lon, b.Lat, b.Lon, fraction)
	return Point{Lat: lat, Lon: lon}
}

// Bounds is an axis-aligned geographic bounding box.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// DavaoBounds covers the Davao City serviceable region. Points produced
// by normalization are expected, but not required, to stay inside it.
var DavaoBounds = Bounds{
	MinLat: 6.9,
	MaxLat: 7.2,
	MinLon: 125.4,
	MaxLon: 125.7,
}

// Contains reports whether the point lies inside the bounds, edges
// included.
func (b Bounds) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

func (b Bounds) String() string {
	return fmt.Sprintf("lat [%g, %g], lon [%g, %g]", b.MinLat, b.MaxLat, b.MinLon, b.MaxLon)
}

// PathLength returns the cumulative leg-by-leg length of a polyline in
// meters. Fewer than two points is a zero-length path.
func PathLength(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += DistanceBetween(points[i-1], points[i])
	}
	return total
}
