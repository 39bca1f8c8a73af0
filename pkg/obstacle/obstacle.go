package obstacle

import (
	"fmt"

	"github.com/lintang-b-s/lattice-planner/pkg"
	"github.com/lintang-b-s/lattice-planner/pkg/datastructure"
)

// TrajectoryPoint is one predicted pose of a dynamic obstacle.
type TrajectoryPoint struct {
	Position datastructure.Point
	Heading  float64
	T        float64
}

// Obstacle is a perceived object projected onto the reference line, together
// with the decisions upstream tasks already took for it and, for moving
// objects, its predicted trajectory.
type Obstacle struct {
	id             string
	perceptionType pkg.PerceptionType
	decision       pkg.LongitudinalDecision
	virtual        bool
	static         bool
	length, width  float64
	slBoundary     datastructure.SLBoundary
	trajectory     []TrajectoryPoint
}

func NewStaticObstacle(id string, perceptionType pkg.PerceptionType,
	slBoundary datastructure.SLBoundary, length, width float64) *Obstacle {
	return &Obstacle{
		id:             id,
		perceptionType: perceptionType,
		static:         true,
		length:         length,
		width:          width,
		slBoundary:     slBoundary,
	}
}

func NewDynamicObstacle(id string, perceptionType pkg.PerceptionType,
	slBoundary datastructure.SLBoundary, length, width float64,
	trajectory []TrajectoryPoint) (*Obstacle, error) {
	if len(trajectory) == 0 {
		return nil, fmt.Errorf("dynamic obstacle %s needs a predicted trajectory", id)
	}
	for i := 1; i < len(trajectory); i++ {
		if trajectory[i].T <= trajectory[i-1].T {
			return nil, fmt.Errorf("obstacle %s trajectory time must be strictly increasing at index %d", id, i)
		}
	}
	return &Obstacle{
		id:             id,
		perceptionType: perceptionType,
		length:         length,
		width:          width,
		slBoundary:     slBoundary,
		trajectory:     trajectory,
	}, nil
}

// NewVirtualObstacle builds a non-physical marker obstacle (stop fence,
// decision marker). Virtual obstacles never contribute path cost.
func NewVirtualObstacle(id string, slBoundary datastructure.SLBoundary) *Obstacle {
	return &Obstacle{
		id:         id,
		virtual:    true,
		static:     true,
		slBoundary: slBoundary,
	}
}

func (o *Obstacle) Id() string {
	return o.id
}

func (o *Obstacle) PerceptionType() pkg.PerceptionType {
	return o.perceptionType
}

func (o *Obstacle) SetLongitudinalDecision(d pkg.LongitudinalDecision) {
	o.decision = d
}

func (o *Obstacle) IsIgnorable() bool {
	return o.decision == pkg.DECISION_IGNORE
}

func (o *Obstacle) HasStopDecision() bool {
	return o.decision == pkg.DECISION_STOP
}

func (o *Obstacle) IsVirtual() bool {
	return o.virtual
}

func (o *Obstacle) IsStatic() bool {
	return o.static
}

func (o *Obstacle) Length() float64 {
	return o.length
}

func (o *Obstacle) Width() float64 {
	return o.width
}

func (o *Obstacle) PerceptionSLBoundary() datastructure.SLBoundary {
	return o.slBoundary
}

// GetPointAtTime returns the predicted pose at relativeTime, linearly
// interpolated between trajectory samples. Times before the first sample
// clamp to it, times past the last clamp to the last.
func (o *Obstacle) GetPointAtTime(relativeTime float64) TrajectoryPoint {
	if len(o.trajectory) == 0 {
		return TrajectoryPoint{T: relativeTime}
	}
	first := o.trajectory[0]
	last := o.trajectory[len(o.trajectory)-1]
	if relativeTime <= first.T {
		return first
	}
	if relativeTime >= last.T {
		return last
	}

	hi := 1
	for o.trajectory[hi].T < relativeTime {
		hi++
	}
	p0, p1 := o.trajectory[hi-1], o.trajectory[hi]
	w := (relativeTime - p0.T) / (p1.T - p0.T)

	return TrajectoryPoint{
		Position: datastructure.NewPoint(
			p0.Position.GetX()+w*(p1.Position.GetX()-p0.Position.GetX()),
			p0.Position.GetY()+w*(p1.Position.GetY()-p0.Position.GetY()),
		),
		Heading: p0.Heading + w*datastructure.NormalizeAngle(p1.Heading-p0.Heading),
		T:       relativeTime,
	}
}

// GetBoundingBox builds the oriented footprint of the obstacle at the
// given predicted pose.
func (o *Obstacle) GetBoundingBox(tp TrajectoryPoint) datastructure.Box2d {
	return datastructure.NewBox2d(tp.Position, tp.Heading, o.length, o.width)
}
