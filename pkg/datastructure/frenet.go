package datastructure

import "fmt"

// SLPoint is a pose in the road-relative frame: s is the arc length along
// the reference line, l the signed lateral offset (positive to the left).
type SLPoint struct {
	S float64
	L float64
}

func NewSLPoint(s, l float64) SLPoint {
	return SLPoint{S: s, L: l}
}

// SLBoundary is an axis-aligned extent in the road-relative frame,
// [StartS,EndS] x [StartL,EndL].
type SLBoundary struct {
	StartS float64
	EndS   float64
	StartL float64
	EndL   float64
}

func NewSLBoundary(startS, endS, startL, endL float64) SLBoundary {
	return SLBoundary{StartS: startS, EndS: endS, StartL: startL, EndL: endL}
}

func (b SLBoundary) Validate() error {
	if b.StartS > b.EndS {
		return fmt.Errorf("sl boundary has start_s %f > end_s %f", b.StartS, b.EndS)
	}
	if b.StartL > b.EndL {
		return fmt.Errorf("sl boundary has start_l %f > end_l %f", b.StartL, b.EndL)
	}
	return nil
}

// ReferencePoint is the local differential geometry of the reference line
// at one station.
type ReferencePoint struct {
	Heading float64
	Kappa   float64
}
