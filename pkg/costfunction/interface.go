package costfunction

import (
	"github.com/lintang-b-s/lattice-planner/pkg/datastructure"
)

// Curve is a 1d path segment in the road-relative frame: lateral offset and
// its derivatives as a function of station offset from the segment start.
// *datastructure.QuinticPolynomial is the canonical implementation.
type Curve interface {
	Evaluate(order int, s float64) float64
}

// ReferenceLine is the centerline geometry provider the scorer borrows:
// lane widths, local heading/curvature and the frenet-to-cartesian mapping.
type ReferenceLine interface {
	GetLaneWidth(s float64) (leftWidth, rightWidth float64)
	GetReferencePoint(s float64) datastructure.ReferencePoint
	SLToXY(sl datastructure.SLPoint) datastructure.Point
}
