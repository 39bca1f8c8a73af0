package util

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	testCases := []struct {
		name        string
		x, lo, hi   float64
		expected    float64
	}{
		{name: "below", x: -1.0, lo: 0.0, hi: 10.0, expected: 0.0},
		{name: "inside", x: 5.0, lo: 0.0, hi: 10.0, expected: 5.0},
		{name: "above", x: 11.0, lo: 0.0, hi: 10.0, expected: 10.0},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.x, tt.lo, tt.hi); got != tt.expected {
				t.Errorf("Clamp(%f) = %f, want %f", tt.x, got, tt.expected)
			}
		})
	}

	if got := Clamp(7, 1, 5); got != 5 {
		t.Errorf("Clamp int = %d, want 5", got)
	}
}

func TestMinMaxVal(t *testing.T) {
	if got := MinVal(3, 5); got != 3 {
		t.Errorf("MinVal = %d, want 3", got)
	}
	if got := MaxVal(3.5, 5.5); got != 5.5 {
		t.Errorf("MaxVal = %f, want 5.5", got)
	}
}

func TestSigmoid(t *testing.T) {
	if got := Sigmoid(0.0); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Sigmoid(0) = %f, want 0.5", got)
	}
	if got := Sigmoid(50.0); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Sigmoid(50) = %f, want ~1", got)
	}
	if got := Sigmoid(-50.0); got > 1e-9 {
		t.Errorf("Sigmoid(-50) = %f, want ~0", got)
	}
	// symmetry about 0.5
	if math.Abs(Sigmoid(1.3)+Sigmoid(-1.3)-1.0) > 1e-12 {
		t.Error("Sigmoid not symmetric")
	}
}

func TestRoundFloat(t *testing.T) {
	if got := RoundFloat(3.14159, 2); got != 3.14 {
		t.Errorf("RoundFloat = %f, want 3.14", got)
	}
	if got := RoundFloat(2.675, 0); got != 3.0 {
		t.Errorf("RoundFloat = %f, want 3", got)
	}
}
