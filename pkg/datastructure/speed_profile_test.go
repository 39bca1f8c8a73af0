package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpeedProfileValidation(t *testing.T) {
	testCases := []struct {
		name    string
		points  []SpeedPoint
		wantErr bool
	}{
		{
			name:    "too few points",
			points:  []SpeedPoint{{T: 0, S: 0, V: 1}},
			wantErr: true,
		},
		{
			name: "time not strictly increasing",
			points: []SpeedPoint{
				{T: 0, S: 0, V: 1},
				{T: 0, S: 1, V: 1},
			},
			wantErr: true,
		},
		{
			name: "station decreasing",
			points: []SpeedPoint{
				{T: 0, S: 5, V: 1},
				{T: 1, S: 4, V: 1},
			},
			wantErr: true,
		},
		{
			name: "valid",
			points: []SpeedPoint{
				{T: 0, S: 0, V: 2},
				{T: 1, S: 2, V: 2},
				{T: 2, S: 4, V: 2},
			},
			wantErr: false,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSpeedProfile(tt.points)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConstantSpeedProfileEvaluate(t *testing.T) {
	sp, err := NewConstantSpeedProfile(10.0, 8.0)
	require.NoError(t, err)

	assert.InDelta(t, 8.0, sp.TotalTime(), 1e-9)

	point, ok := sp.EvaluateAtTime(3.3)
	require.True(t, ok)
	assert.InDelta(t, 33.0, point.S, 1e-9)
	assert.InDelta(t, 10.0, point.V, 1e-9)

	// clamped at the profile ends
	point, ok = sp.EvaluateAtTime(0.0)
	require.True(t, ok)
	assert.InDelta(t, 0.0, point.S, 1e-9)

	point, ok = sp.EvaluateAtTime(8.0)
	require.True(t, ok)
	assert.InDelta(t, 80.0, point.S, 1e-9)

	// outside the span
	_, ok = sp.EvaluateAtTime(9.0)
	assert.False(t, ok)
	_, ok = sp.EvaluateAtTime(-1.0)
	assert.False(t, ok)
}

func TestSpeedProfilePiecewiseInterpolation(t *testing.T) {
	sp, err := NewSpeedProfile([]SpeedPoint{
		{T: 0, S: 0, V: 0},
		{T: 2, S: 4, V: 4},
		{T: 4, S: 16, V: 8},
	})
	require.NoError(t, err)

	point, ok := sp.EvaluateAtTime(3.0)
	require.True(t, ok)
	assert.InDelta(t, 10.0, point.S, 1e-9)
	assert.InDelta(t, 6.0, point.V, 1e-9)
}
