package datastructure

import (
	"math"
)

const (
	EPS = 1e-6
)

type Point struct {
	x, y float64
}

func NewPoint(x, y float64) Point {
	return Point{x, y}
}

func (p Point) GetX() float64 {
	return p.x
}

func (p Point) GetY() float64 {
	return p.y
}

func (p Point) Add(v Vector) Point {
	return Point{p.x + v.x, p.y + v.y}
}

func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.x-q.x, p.y-q.y)
}

// equal operator
func eq(a, b float64) bool {
	return math.Abs(a-b) <= EPS
}

// less than operator
func Lt(a, b float64) bool {
	return a+EPS < b
}

func Gt(a, b float64) bool {
	return Lt(b, a)
}

// less than or equal operator
func Le(a, b float64) bool {
	return a <= b+EPS
}

// greater than or equal operator
func Ge(a, b float64) bool {
	return Le(b, a)
}

type Vector struct {
	x, y float64
}

func NewVector(x, y float64) Vector {
	return Vector{x, y}
}

func toVec(a, b Point) Vector {
	return Vector{b.x - a.x, b.y - a.y}
}

func (v Vector) GetX() float64 {
	return v.x
}

func (v Vector) GetY() float64 {
	return v.y
}

func (v Vector) Add(w Vector) Vector {
	return Vector{v.x + w.x, v.y + w.y}
}

func (v Vector) Sub(w Vector) Vector {
	return Vector{v.x - w.x, v.y - w.y}
}

func (v Vector) Scale(q float64) Vector {
	return Vector{v.x * q, v.y * q}
}

func (v Vector) Norm() float64 {
	return math.Hypot(v.x, v.y)
}

// rotate v counterclockwise by angle radians
func (v Vector) Rotate(angle float64) Vector {
	sin, cos := math.Sincos(angle)
	return Vector{
		v.x*cos - v.y*sin,
		v.x*sin + v.y*cos,
	}
}

// cross product of two vectors a and b
func cross(a, b Vector) float64 {
	return a.x*b.y - a.y*b.x
}

func dot(a, b Vector) float64 {
	return a.x*b.x + a.y*b.y
}

// NormalizeAngle wraps angle into [-pi, pi)
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle+math.Pi, 2.0*math.Pi)
	if a < 0.0 {
		a += 2.0 * math.Pi
	}
	return a - math.Pi
}

// distance from point p to segment [a,b]
func pointToSegmentDistance(p, a, b Point) float64 {
	ab := toVec(a, b)
	ap := toVec(a, p)
	lenSq := dot(ab, ab)
	if lenSq <= EPS*EPS {
		return p.DistanceTo(a)
	}
	t := dot(ap, ab) / lenSq
	if t < 0.0 {
		t = 0.0
	} else if t > 1.0 {
		t = 1.0
	}
	closest := a.Add(ab.Scale(t))
	return p.DistanceTo(closest)
}

func segmentsIntersect(a, b, c, d Point) bool {
	d1 := cross(toVec(c, d), toVec(c, a))
	d2 := cross(toVec(c, d), toVec(c, b))
	d3 := cross(toVec(a, b), toVec(a, c))
	d4 := cross(toVec(a, b), toVec(a, d))
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// distance between segments [a,b] and [c,d], 0 if they intersect
func segmentToSegmentDistance(a, b, c, d Point) float64 {
	if segmentsIntersect(a, b, c, d) {
		return 0.0
	}
	dist := pointToSegmentDistance(a, c, d)
	dist = math.Min(dist, pointToSegmentDistance(b, c, d))
	dist = math.Min(dist, pointToSegmentDistance(c, a, b))
	dist = math.Min(dist, pointToSegmentDistance(d, a, b))
	return dist
}
