package costfunction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComparableCostCompare(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     ComparableCost
		expected int
	}{
		{
			name:     "collision dominates any scalar",
			a:        ComparableCost{HasCollision: true, SmoothnessCost: 0.1},
			b:        ComparableCost{SmoothnessCost: 1e12},
			expected: 1,
		},
		{
			name:     "boundary dominates scalar",
			a:        ComparableCost{OutOfBoundary: true},
			b:        ComparableCost{SmoothnessCost: 1e12},
			expected: 1,
		},
		{
			name:     "collision dominates boundary",
			a:        ComparableCost{HasCollision: true},
			b:        ComparableCost{OutOfBoundary: true, SmoothnessCost: 1e12},
			expected: 1,
		},
		{
			name:     "equal flags fall back to score",
			a:        ComparableCost{SmoothnessCost: 1.0, SafetyCost: 2.0},
			b:        ComparableCost{SmoothnessCost: 2.0, SafetyCost: 2.0},
			expected: -1,
		},
		{
			name:     "identical is a tie",
			a:        ComparableCost{HasCollision: true, SmoothnessCost: 3.0},
			b:        ComparableCost{HasCollision: true, SmoothnessCost: 3.0},
			expected: 0,
		},
		{
			name:     "score splits ties across cost kinds",
			a:        ComparableCost{SmoothnessCost: 1.0, SafetyCost: 2.0},
			b:        ComparableCost{SmoothnessCost: 2.0, SafetyCost: 1.0},
			expected: 0,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Compare(tt.b))
			// antisymmetric
			assert.Equal(t, -tt.expected, tt.b.Compare(tt.a))
		})
	}
}

func TestComparableCostCompareTotality(t *testing.T) {
	// every flag combination must be mutually comparable with a consistent sign
	costs := []ComparableCost{
		{},
		{OutOfBoundary: true},
		{HasCollision: true},
		{HasCollision: true, OutOfBoundary: true},
		{SmoothnessCost: 5.0},
		{HasCollision: true, SafetyCost: 1.0},
	}
	for i := range costs {
		for j := range costs {
			ab := costs[i].Compare(costs[j])
			ba := costs[j].Compare(costs[i])
			assert.Equal(t, -ba, ab, "compare(%d,%d) not antisymmetric", i, j)
			if i == j {
				assert.Equal(t, 0, ab)
			}
		}
	}
}

func TestComparableCostCombine(t *testing.T) {
	a := ComparableCost{HasCollision: true, SmoothnessCost: 1.5, SafetyCost: 0.5}
	b := ComparableCost{OutOfBoundary: true, SmoothnessCost: 2.0, SafetyCost: 1.0}
	c := ComparableCost{SmoothnessCost: 0.25, SafetyCost: 4.0}

	combined := a.Combine(b)
	assert.True(t, combined.HasCollision)
	assert.True(t, combined.OutOfBoundary)
	assert.InDelta(t, 3.5, combined.SmoothnessCost, 1e-12)
	assert.InDelta(t, 1.5, combined.SafetyCost, 1e-12)

	// commutative
	assert.Equal(t, a.Combine(b), b.Combine(a))
	// associative
	assert.Equal(t, a.Combine(b).Combine(c), a.Combine(b.Combine(c)))
	// operands untouched
	assert.InDelta(t, 1.5, a.SmoothnessCost, 1e-12)
	assert.False(t, b.HasCollision)
}

func TestComparableCostScore(t *testing.T) {
	c := ComparableCost{SmoothnessCost: 1.25, SafetyCost: 2.75}
	assert.InDelta(t, 4.0, c.Score(), 1e-12)
	assert.InDelta(t, 0.0, ComparableCost{}.Score(), 1e-12)
}
