package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davaotransit/routekit/internal/lib/geo"
)

// eastLine builds a polyline heading east from downtown Davao with n
// points stepped 0.001 degrees of longitude apart (~110m at 7N).
func eastLine(n int) []geo.Point {
	pts := make([]geo.Point, n)
	for i := range pts {
		pts[i] = geo.Point{Lat: 7.07, Lon: 125.61 + float64(i)*0.001}
	}
	return pts
}

func TestResample_EvenSpacing(t *testing.T) {
	in := eastLine(10)
	out := Resample(in, 20)

	require.GreaterOrEqual(t, len(out), 2)
	assert.Equal(t, in[0], out[0], "first input point is emitted first")
	assert.Equal(t, in[len(in)-1], out[len(out)-1], "last input point is emitted last")

	// Every interval except the final one should be the target spacing.
	for i := 1; i < len(out)-1; i++ {
		d := geo.DistanceBetween(out[i-1], out[i])
		assert.InDeltaf(t, 20, d, 0.5, "interval %d", i)
	}
	last := geo.DistanceBetween(out[len(out)-2], out[len(out)-1])
	assert.LessOrEqual(t, last, 20.5, "tail interval may be shorter, never longer")
}

func TestResample_MultiplePointsPerLeg(t *testing.T) {
	// A single ~990m leg must still be cut every 100m.
	in := []geo.Point{
		{Lat: 7.07, Lon: 125.61},
		{Lat: 7.07, Lon: 125.619},
	}
	out := Resample(in, 100)

	total := geo.PathLength(in)
	wantInterior := int(total / 100)
	assert.Len(t, out, wantInterior+2, "interior cuts plus both endpoints")

	for i := 1; i < len(out)-1; i++ {
		assert.InDelta(t, 100, geo.DistanceBetween(out[i-1], out[i]), 1)
	}
}

func TestResample_SpacingWiderThanPath(t *testing.T) {
	in := []geo.Point{
		{Lat: 7.07, Lon: 125.61},
		{Lat: 7.0701, Lon: 125.6101},
	}
	out := Resample(in, 500)
	assert.Equal(t, in, out, "nothing to cut, endpoints survive")
}

func TestResample_Degenerate(t *testing.T) {
	assert.Empty(t, Resample(nil, 20))

	single := []geo.Point{{Lat: 7.07, Lon: 125.61}}
	assert.Equal(t, single, Resample(single, 20))
}

func TestResample_ZeroLengthLegs(t *testing.T) {
	// Duplicate input points must not divide by zero or stall the walk.
	in := []geo.Point{
		{Lat: 7.07, Lon: 125.61},
		{Lat: 7.07, Lon: 125.61},
		{Lat: 7.07, Lon: 125.612},
		{Lat: 7.07, Lon: 125.612},
		{Lat: 7.07, Lon: 125.614},
	}
	out := Resample(in, 50)
	require.GreaterOrEqual(t, len(out), 2)
	assert.Equal(t, in[0], out[0])
	assert.Equal(t, in[len(in)-1], out[len(out)-1])
}

func TestResample_Deterministic(t *testing.T) {
	in := eastLine(25)
	first := Resample(in, 20)
	second := Resample(in, 20)
	assert.Equal(t, first, second, "identical input must give identical output")
}
