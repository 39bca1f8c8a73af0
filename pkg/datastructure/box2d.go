package datastructure

import (
	"math"
)

// Box2d is an oriented rectangle in the cartesian plane: the swept footprint
// of the ego vehicle or an obstacle at one instant.
type Box2d struct {
	center           Point
	heading          float64
	length, width    float64
	halfLen, halfWid float64
	cosHeading       float64
	sinHeading       float64
}

func NewBox2d(center Point, heading, length, width float64) Box2d {
	sin, cos := math.Sincos(heading)
	return Box2d{
		center:     center,
		heading:    heading,
		length:     length,
		width:      width,
		halfLen:    length / 2.0,
		halfWid:    width / 2.0,
		cosHeading: cos,
		sinHeading: sin,
	}
}

func (b Box2d) Center() Point {
	return b.center
}

func (b Box2d) Heading() float64 {
	return b.heading
}

func (b Box2d) Length() float64 {
	return b.length
}

func (b Box2d) Width() float64 {
	return b.width
}

// Corners returns the four corners counterclockwise starting from
// front-left, in box frame order.
func (b Box2d) Corners() [4]Point {
	dxLen := Vector{b.cosHeading * b.halfLen, b.sinHeading * b.halfLen}
	dxWid := Vector{-b.sinHeading * b.halfWid, b.cosHeading * b.halfWid}

	return [4]Point{
		b.center.Add(dxLen.Add(dxWid)),
		b.center.Add(dxWid.Sub(dxLen)),
		b.center.Add(dxLen.Add(dxWid).Scale(-1.0)),
		b.center.Add(dxLen.Sub(dxWid)),
	}
}

// project p into the box frame: x along heading, y along the left normal
func (b Box2d) toBoxFrame(p Point) (float64, float64) {
	dx := p.GetX() - b.center.GetX()
	dy := p.GetY() - b.center.GetY()
	return dx*b.cosHeading + dy*b.sinHeading, -dx*b.sinHeading + dy*b.cosHeading
}

// IsPointIn reports whether p lies inside or on the box (EPS tolerant).
func (b Box2d) IsPointIn(p Point) bool {
	x, y := b.toBoxFrame(p)
	return math.Abs(x) <= b.halfLen+EPS && math.Abs(y) <= b.halfWid+EPS
}

// DistanceToPoint returns the euclidean distance from p to the box
// boundary, 0 if p is inside.
func (b Box2d) DistanceToPoint(p Point) float64 {
	x, y := b.toBoxFrame(p)
	dx := math.Abs(x) - b.halfLen
	dy := math.Abs(y) - b.halfWid
	if dx <= 0.0 {
		return math.Max(0.0, dy)
	}
	if dy <= 0.0 {
		return dx
	}
	return math.Hypot(dx, dy)
}

// HasOverlapWith reports whether the two boxes intersect, via the
// separating-axis test over both boxes' principal axes.
func (b Box2d) HasOverlapWith(o Box2d) bool {
	return !b.separatedFrom(o) && !o.separatedFrom(b)
}

func (b Box2d) separatedFrom(o Box2d) bool {
	shiftX := o.center.GetX() - b.center.GetX()
	shiftY := o.center.GetY() - b.center.GetY()

	// o's half extents projected on b's axes
	absCos := math.Abs(b.cosHeading*o.cosHeading + b.sinHeading*o.sinHeading)
	absSin := math.Abs(b.cosHeading*o.sinHeading - b.sinHeading*o.cosHeading)

	projLen := math.Abs(shiftX*b.cosHeading + shiftY*b.sinHeading)
	projWid := math.Abs(-shiftX*b.sinHeading + shiftY*b.cosHeading)

	if projLen > b.halfLen+o.halfLen*absCos+o.halfWid*absSin {
		return true
	}
	if projWid > b.halfWid+o.halfLen*absSin+o.halfWid*absCos {
		return true
	}
	return false
}

// DistanceTo returns the minimum euclidean distance between the two box
// boundaries, 0 if they overlap.
func (b Box2d) DistanceTo(o Box2d) float64 {
	if b.HasOverlapWith(o) {
		return 0.0
	}

	bc := b.Corners()
	oc := o.Corners()

	dist := math.MaxFloat64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			d := segmentToSegmentDistance(bc[i], bc[(i+1)%4], oc[j], oc[(j+1)%4])
			if d < dist {
				dist = d
			}
		}
	}
	return dist
}
