package referenceline

import (
	"math"
	"testing"

	"github.com/lintang-b-s/lattice-planner/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"
)

func straightPoints() []datastructure.Point {
	return []datastructure.Point{
		datastructure.NewPoint(0, 0),
		datastructure.NewPoint(50, 0),
		datastructure.NewPoint(100, 0),
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New([]datastructure.Point{datastructure.NewPoint(0, 0)}, 3.5, 3.5)
	assert.Error(t, err)

	_, err = New(straightPoints(), 0.0, 3.5)
	assert.Error(t, err)

	_, err = New([]datastructure.Point{
		datastructure.NewPoint(0, 0),
		datastructure.NewPoint(0, 0),
		datastructure.NewPoint(50, 0),
	}, 3.5, 3.5)
	assert.Error(t, err, "duplicate vertices must be rejected")
}

func TestStraightLineGeometry(t *testing.T) {
	rl, err := New(straightPoints(), 3.5, 3.0)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, rl.Length(), 1e-9)

	left, right := rl.GetLaneWidth(10.0)
	assert.InDelta(t, 3.5, left, 1e-9)
	assert.InDelta(t, 3.0, right, 1e-9)

	rp := rl.GetReferencePoint(10.0)
	assert.InDelta(t, 0.0, rp.Heading, 1e-9)
	assert.InDelta(t, 0.0, rp.Kappa, 1e-9)

	// memoized lookup returns the same geometry
	rp2 := rl.GetReferencePoint(10.0)
	assert.Equal(t, rp, rp2)

	p := rl.SLToXY(datastructure.NewSLPoint(10.0, 2.0))
	assert.InDelta(t, 10.0, p.GetX(), 1e-9)
	assert.InDelta(t, 2.0, p.GetY(), 1e-9)

	// negative lateral offsets go right of the line
	p = rl.SLToXY(datastructure.NewSLPoint(75.0, -1.5))
	assert.InDelta(t, 75.0, p.GetX(), 1e-9)
	assert.InDelta(t, -1.5, p.GetY(), 1e-9)
}

func TestStationClamping(t *testing.T) {
	rl, err := New(straightPoints(), 3.5, 3.5)
	require.NoError(t, err)

	rp := rl.GetReferencePoint(-5.0)
	assert.InDelta(t, 0.0, rp.Heading, 1e-9)

	// past the end, extrapolates along the last segment
	p := rl.SLToXY(datastructure.NewSLPoint(150.0, 0.0))
	assert.InDelta(t, 150.0, p.GetX(), 1e-9)
	assert.InDelta(t, 0.0, p.GetY(), 1e-9)
}

func TestCurvatureOnArc(t *testing.T) {
	// quarter circle of radius 50, sampled every 2 degrees
	const radius = 50.0
	var points []datastructure.Point
	for deg := 0; deg <= 90; deg += 2 {
		theta := float64(deg) * math.Pi / 180.0
		points = append(points, datastructure.NewPoint(
			radius*math.Sin(theta), radius*(1.0-math.Cos(theta))))
	}
	rl, err := New(points, 3.5, 3.5)
	require.NoError(t, err)

	assert.InDelta(t, radius*math.Pi/2.0, rl.Length(), 0.1)

	rp := rl.GetReferencePoint(rl.Length() / 2.0)
	assert.InDelta(t, 1.0/radius, rp.Kappa, 1e-3)
	assert.InDelta(t, math.Pi/4.0, rp.Heading, 0.05)
}

func TestReferencePointInterpolation(t *testing.T) {
	// same quarter circle: the interpolated heading must track the arc
	// tangent s/R continuously instead of stepping at each vertex
	const radius = 50.0
	var points []datastructure.Point
	for deg := 0; deg <= 90; deg += 2 {
		theta := float64(deg) * math.Pi / 180.0
		points = append(points, datastructure.NewPoint(
			radius*math.Sin(theta), radius*(1.0-math.Cos(theta))))
	}
	rl, err := New(points, 3.5, 3.5)
	require.NoError(t, err)

	prev := rl.GetReferencePoint(10.0).Heading
	for s := 10.5; s <= 60.0; s += 0.5 {
		rp := rl.GetReferencePoint(s)
		assert.InDelta(t, s/radius, rp.Heading, 0.04,
			"heading off the arc tangent at s=%f", s)
		// monotone and without vertex jumps at this sampling
		assert.Greater(t, rp.Heading, prev)
		assert.Less(t, rp.Heading-prev, 0.02)
		prev = rp.Heading
	}
}

func TestNewFromEncodedPolyline(t *testing.T) {
	encoded := string(polyline.EncodeCoords([][]float64{
		{0, 0}, {50, 0}, {100, 0},
	}))

	rl, err := NewFromEncodedPolyline(encoded, 3.5, 3.5)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, rl.Length(), 0.01)

	p := rl.SLToXY(datastructure.NewSLPoint(25.0, 1.0))
	assert.InDelta(t, 25.0, p.GetX(), 0.01)
	assert.InDelta(t, 1.0, p.GetY(), 0.01)

	_, err = NewFromEncodedPolyline("not a polyline \xff", 3.5, 3.5)
	assert.Error(t, err)
}
