package datastructure

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// QuinticPolynomial is a degree-5 polynomial path segment
// l(s) = c0 + c1*s + c2*s^2 + c3*s^3 + c4*s^4 + c5*s^5 over a station span.
type QuinticPolynomial struct {
	coef        [6]float64
	paramLength float64
}

func NewQuinticPolynomial(coef [6]float64, paramLength float64) *QuinticPolynomial {
	return &QuinticPolynomial{coef: coef, paramLength: paramLength}
}

// NewQuinticPolynomialFromBoundary fits the unique quintic matching value,
// first and second derivative at both ends of the span [0, paramLength].
func NewQuinticPolynomialFromBoundary(x0, dx0, ddx0, x1, dx1, ddx1,
	paramLength float64) (*QuinticPolynomial, error) {
	if paramLength <= 0.0 {
		return nil, fmt.Errorf("quintic polynomial param length must be positive, got %f", paramLength)
	}

	p := paramLength
	p2 := p * p
	p3 := p2 * p
	p4 := p3 * p
	p5 := p4 * p

	c0 := x0
	c1 := dx0
	c2 := ddx0 / 2.0

	// remaining coefficients from the end conditions
	a := mat.NewDense(3, 3, []float64{
		p3, p4, p5,
		3.0 * p2, 4.0 * p3, 5.0 * p4,
		6.0 * p, 12.0 * p2, 20.0 * p3,
	})
	b := mat.NewVecDense(3, []float64{
		x1 - c0 - c1*p - c2*p2,
		dx1 - c1 - 2.0*c2*p,
		ddx1 - 2.0*c2,
	})

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("solve quintic boundary conditions: %w", err)
	}

	return &QuinticPolynomial{
		coef:        [6]float64{c0, c1, c2, x.AtVec(0), x.AtVec(1), x.AtVec(2)},
		paramLength: paramLength,
	}, nil
}

func (q *QuinticPolynomial) ParamLength() float64 {
	return q.paramLength
}

// Evaluate returns the value (order 0) or the order-th derivative of the
// polynomial at station offset s. Orders above 3 evaluate to 0 by the callers'
// needs and are not implemented.
func (q *QuinticPolynomial) Evaluate(order int, s float64) float64 {
	c := q.coef
	switch order {
	case 0:
		return ((((c[5]*s+c[4])*s+c[3])*s+c[2])*s+c[1])*s + c[0]
	case 1:
		return (((5.0*c[5]*s+4.0*c[4])*s+3.0*c[3])*s+2.0*c[2])*s + c[1]
	case 2:
		return ((20.0*c[5]*s+12.0*c[4])*s+6.0*c[3])*s + 2.0*c[2]
	case 3:
		return (60.0*c[5]*s+24.0*c[4])*s + 6.0*c[3]
	default:
		return math.NaN()
	}
}
