package obstacle

import (
	"math"
	"testing"

	"github.com/lintang-b-s/lattice-planner/pkg"
	"github.com/lintang-b-s/lattice-planner/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTrajectory() []TrajectoryPoint {
	return []TrajectoryPoint{
		{Position: datastructure.NewPoint(0, 0), Heading: 0.0, T: 0.0},
		{Position: datastructure.NewPoint(10, 0), Heading: 0.0, T: 1.0},
		{Position: datastructure.NewPoint(10, 10), Heading: math.Pi / 2, T: 2.0},
	}
}

func TestNewDynamicObstacleValidation(t *testing.T) {
	boundary := datastructure.NewSLBoundary(0, 10, 0.5, 2.5)

	_, err := NewDynamicObstacle("d1", pkg.VEHICLE, boundary, 4, 2, nil)
	assert.Error(t, err)

	_, err = NewDynamicObstacle("d1", pkg.VEHICLE, boundary, 4, 2, []TrajectoryPoint{
		{T: 0.0}, {T: 0.0},
	})
	assert.Error(t, err)

	obs, err := NewDynamicObstacle("d1", pkg.VEHICLE, boundary, 4, 2, testTrajectory())
	require.NoError(t, err)
	assert.False(t, obs.IsStatic())
	assert.False(t, obs.IsVirtual())
	assert.Equal(t, "d1", obs.Id())
}

func TestGetPointAtTime(t *testing.T) {
	obs, err := NewDynamicObstacle("d1", pkg.VEHICLE,
		datastructure.NewSLBoundary(0, 10, 0.5, 2.5), 4, 2, testTrajectory())
	require.NoError(t, err)

	testCases := []struct {
		name       string
		time       float64
		wantX      float64
		wantY      float64
	}{
		{name: "clamped before start", time: -1.0, wantX: 0, wantY: 0},
		{name: "exact sample", time: 1.0, wantX: 10, wantY: 0},
		{name: "interpolated first segment", time: 0.5, wantX: 5, wantY: 0},
		{name: "interpolated second segment", time: 1.5, wantX: 10, wantY: 5},
		{name: "clamped past end", time: 3.0, wantX: 10, wantY: 10},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			tp := obs.GetPointAtTime(tt.time)
			assert.InDelta(t, tt.wantX, tp.Position.GetX(), 1e-9)
			assert.InDelta(t, tt.wantY, tp.Position.GetY(), 1e-9)
		})
	}
}

func TestGetPointAtTimeHeadingWrap(t *testing.T) {
	trajectory := []TrajectoryPoint{
		{Position: datastructure.NewPoint(0, 0), Heading: 3.0, T: 0.0},
		{Position: datastructure.NewPoint(1, 0), Heading: -3.0, T: 1.0},
	}
	obs, err := NewDynamicObstacle("d1", pkg.VEHICLE,
		datastructure.NewSLBoundary(0, 10, 0.5, 2.5), 4, 2, trajectory)
	require.NoError(t, err)

	// the short way from 3.0 to -3.0 crosses pi, not zero
	tp := obs.GetPointAtTime(0.5)
	assert.InDelta(t, math.Pi, tp.Heading, 1e-3)
}

func TestGetBoundingBox(t *testing.T) {
	obs, err := NewDynamicObstacle("d1", pkg.VEHICLE,
		datastructure.NewSLBoundary(0, 10, 0.5, 2.5), 4.5, 2.0, testTrajectory())
	require.NoError(t, err)

	box := obs.GetBoundingBox(TrajectoryPoint{
		Position: datastructure.NewPoint(3, 4), Heading: 0.0,
	})
	assert.InDelta(t, 4.5, box.Length(), 1e-9)
	assert.InDelta(t, 2.0, box.Width(), 1e-9)
	assert.InDelta(t, 3.0, box.Center().GetX(), 1e-9)
	assert.InDelta(t, 4.0, box.Center().GetY(), 1e-9)
}

func TestDecisionPredicates(t *testing.T) {
	obs := NewStaticObstacle("s1", pkg.VEHICLE,
		datastructure.NewSLBoundary(0, 10, 0.5, 2.5), 4, 2)
	assert.True(t, obs.IsStatic())
	assert.False(t, obs.IsIgnorable())
	assert.False(t, obs.HasStopDecision())

	obs.SetLongitudinalDecision(pkg.DECISION_IGNORE)
	assert.True(t, obs.IsIgnorable())

	obs.SetLongitudinalDecision(pkg.DECISION_STOP)
	assert.True(t, obs.HasStopDecision())
	assert.False(t, obs.IsIgnorable())

	fence := NewVirtualObstacle("fence", datastructure.NewSLBoundary(0, 1, 0, 1))
	assert.True(t, fence.IsVirtual())
	assert.True(t, fence.IsStatic())
}
