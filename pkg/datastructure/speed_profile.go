package datastructure

import (
	"fmt"
)

// SpeedPoint is one sample of the heuristic speed profile.
type SpeedPoint struct {
	T float64 // seconds since planning start
	S float64 // station traveled since planning start
	V float64 // speed, m/s
}

// SpeedProfile is the heuristic longitudinal plan the path scorer uses to
// map evaluation time steps onto stations. Samples are strictly increasing
// in t and non-decreasing in s, which makes station monotone in time and the
// scorer's early termination on end_s valid.
type SpeedProfile struct {
	points []SpeedPoint
}

func NewSpeedProfile(points []SpeedPoint) (*SpeedProfile, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("speed profile needs at least 2 points, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].T <= points[i-1].T {
			return nil, fmt.Errorf("speed profile time must be strictly increasing at index %d", i)
		}
		if points[i].S < points[i-1].S {
			return nil, fmt.Errorf("speed profile station must be non-decreasing at index %d", i)
		}
	}
	return &SpeedProfile{points: points}, nil
}

// NewConstantSpeedProfile builds a two-point profile of a vehicle cruising
// at speed for totalTime seconds.
func NewConstantSpeedProfile(speed, totalTime float64) (*SpeedProfile, error) {
	return NewSpeedProfile([]SpeedPoint{
		{T: 0.0, S: 0.0, V: speed},
		{T: totalTime, S: speed * totalTime, V: speed},
	})
}

func (sp *SpeedProfile) TotalTime() float64 {
	return sp.points[len(sp.points)-1].T
}

// EvaluateAtTime returns the linearly interpolated speed point at time t.
// The second return is false when t falls outside the profile span.
func (sp *SpeedProfile) EvaluateAtTime(t float64) (SpeedPoint, bool) {
	first := sp.points[0]
	last := sp.points[len(sp.points)-1]
	if t < first.T-EPS || t > last.T+EPS {
		return SpeedPoint{}, false
	}
	if t <= first.T {
		return first, true
	}
	if t >= last.T {
		return last, true
	}

	hi := 1
	for sp.points[hi].T < t {
		hi++
	}
	lo := hi - 1

	p0, p1 := sp.points[lo], sp.points[hi]
	w := (t - p0.T) / (p1.T - p0.T)
	return SpeedPoint{
		T: t,
		S: p0.S + w*(p1.S-p0.S),
		V: p0.V + w*(p1.V-p0.V),
	}, true
}
