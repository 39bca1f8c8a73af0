package costfunction

// ComparableCost is the composite cost of one candidate path segment. Hard
// infeasibility flags stay separate from the soft scalar penalties and
// dominate them under the lexicographic order: HasCollision first,
// OutOfBoundary second, then the scalar sum.
type ComparableCost struct {
	HasCollision  bool
	OutOfBoundary bool

	SmoothnessCost float64
	SafetyCost     float64
}

// Score is the soft scalar part of the cost, compared only between candidates
// with identical flags.
func (c ComparableCost) Score() float64 {
	return c.SmoothnessCost + c.SafetyCost
}

// Compare orders two costs lexicographically, returning -1 when c is the
// better (cheaper) candidate, +1 when worse and 0 on a tie.
func (c ComparableCost) Compare(o ComparableCost) int {
	if c.HasCollision != o.HasCollision {
		if c.HasCollision {
			return 1
		}
		return -1
	}
	if c.OutOfBoundary != o.OutOfBoundary {
		if c.OutOfBoundary {
			return 1
		}
		return -1
	}

	diff := c.Score() - o.Score()
	if diff > 0 {
		return 1
	}
	if diff < 0 {
		return -1
	}
	return 0
}

// Combine merges two costs: flags by logical OR, scalars by sum. The
// operation is associative and commutative, so sub-costs can be reduced in
// any grouping.
func (c ComparableCost) Combine(o ComparableCost) ComparableCost {
	return ComparableCost{
		HasCollision:   c.HasCollision || o.HasCollision,
		OutOfBoundary:  c.OutOfBoundary || o.OutOfBoundary,
		SmoothnessCost: c.SmoothnessCost + o.SmoothnessCost,
		SafetyCost:     c.SafetyCost + o.SafetyCost,
	}
}
