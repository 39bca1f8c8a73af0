package datastructure

import (
	"math"
	"testing"
)

func TestNormalizeAngle(t *testing.T) {
	testCases := []struct {
		name     string
		angle    float64
		expected float64
	}{
		{name: "zero", angle: 0.0, expected: 0.0},
		{name: "half pi", angle: math.Pi / 2, expected: math.Pi / 2},
		{name: "pi wraps to -pi", angle: math.Pi, expected: -math.Pi},
		{name: "two pi wraps to zero", angle: 2 * math.Pi, expected: 0.0},
		{name: "three half pi wraps negative", angle: 3 * math.Pi / 2, expected: -math.Pi / 2},
		{name: "negative wrap", angle: -3 * math.Pi / 2, expected: math.Pi / 2},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAngle(tt.angle)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("NormalizeAngle(%f) = %f, want %f", tt.angle, got, tt.expected)
			}
		})
	}
}

func TestBox2dOverlap(t *testing.T) {
	testCases := []struct {
		name    string
		a, b    Box2d
		overlap bool
	}{
		{
			name:    "touching along x",
			a:       NewBox2d(NewPoint(0, 0), 0.0, 4.0, 2.0),
			b:       NewBox2d(NewPoint(3, 0), 0.0, 4.0, 2.0),
			overlap: true,
		},
		{
			name:    "separated along x",
			a:       NewBox2d(NewPoint(0, 0), 0.0, 4.0, 2.0),
			b:       NewBox2d(NewPoint(10, 0), 0.0, 4.0, 2.0),
			overlap: false,
		},
		{
			name:    "separated along y",
			a:       NewBox2d(NewPoint(0, 0), 0.0, 4.0, 2.0),
			b:       NewBox2d(NewPoint(0, 5), 0.0, 4.0, 2.0),
			overlap: false,
		},
		{
			name:    "rotated overlapping",
			a:       NewBox2d(NewPoint(0, 0), 0.0, 4.0, 2.0),
			b:       NewBox2d(NewPoint(2, 0), math.Pi/2, 4.0, 2.0),
			overlap: true,
		},
		{
			name:    "rotated clear",
			a:       NewBox2d(NewPoint(0, 0), 0.0, 4.0, 2.0),
			b:       NewBox2d(NewPoint(5, 0), math.Pi/2, 4.0, 2.0),
			overlap: false,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.HasOverlapWith(tt.b); got != tt.overlap {
				t.Errorf("HasOverlapWith = %v, want %v", got, tt.overlap)
			}
			// symmetric
			if got := tt.b.HasOverlapWith(tt.a); got != tt.overlap {
				t.Errorf("reversed HasOverlapWith = %v, want %v", got, tt.overlap)
			}
		})
	}
}

func TestBox2dDistanceTo(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     Box2d
		expected float64
	}{
		{
			name:     "overlapping is zero",
			a:        NewBox2d(NewPoint(0, 0), 0.0, 4.0, 2.0),
			b:        NewBox2d(NewPoint(3, 0), 0.0, 4.0, 2.0),
			expected: 0.0,
		},
		{
			name:     "axis aligned gap",
			a:        NewBox2d(NewPoint(0, 0), 0.0, 4.0, 2.0),
			b:        NewBox2d(NewPoint(10, 0), 0.0, 4.0, 2.0),
			expected: 6.0,
		},
		{
			name:     "lateral gap",
			a:        NewBox2d(NewPoint(0, 0), 0.0, 4.0, 2.0),
			b:        NewBox2d(NewPoint(0, 5), 0.0, 4.0, 2.0),
			expected: 3.0,
		},
		{
			name:     "diagonal corner to corner",
			a:        NewBox2d(NewPoint(0, 0), 0.0, 2.0, 2.0),
			b:        NewBox2d(NewPoint(3, 3), 0.0, 2.0, 2.0),
			expected: math.Sqrt2,
		},
		{
			name:     "rotated ninety degrees",
			a:        NewBox2d(NewPoint(0, 0), 0.0, 4.0, 2.0),
			b:        NewBox2d(NewPoint(5, 0), math.Pi / 2, 4.0, 2.0),
			expected: 2.0,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.DistanceTo(tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("DistanceTo = %f, want %f", got, tt.expected)
			}
		})
	}
}

func TestBox2dPointQueries(t *testing.T) {
	box := NewBox2d(NewPoint(0, 0), 0.0, 4.0, 2.0)

	if !box.IsPointIn(NewPoint(1.9, 0.9)) {
		t.Error("interior point should be inside")
	}
	if box.IsPointIn(NewPoint(2.5, 0.0)) {
		t.Error("exterior point should be outside")
	}
	if d := box.DistanceToPoint(NewPoint(5.0, 0.0)); math.Abs(d-3.0) > 1e-9 {
		t.Errorf("DistanceToPoint = %f, want 3.0", d)
	}
	if d := box.DistanceToPoint(NewPoint(0.0, 0.5)); d != 0.0 {
		t.Errorf("interior DistanceToPoint = %f, want 0", d)
	}
}
