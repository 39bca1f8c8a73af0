package referenceline

import (
	"fmt"
	"math"
	"sort"

	"github.com/golang/geo/r2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/lattice-planner/pkg/datastructure"
	"github.com/twpayne/go-polyline"
)

const (
	referencePointCacheSize = 1 << 12

	// station quantization of the memoized reference-point geometry, meters
	referencePointQuantum = 0.1
)

// ReferenceLine is an arc-length-parameterized polyline centerline in a
// local cartesian frame, with constant lane half-widths. It implements the
// costfunction.ReferenceLine contract. Read-only after construction, safe
// for concurrent lookups.
type ReferenceLine struct {
	points     []r2.Point
	cumS       []float64 // cumulative arc length at each point
	headings   []float64 // per segment
	kappas     []float64 // per segment, finite-difference heading change
	leftWidth  float64
	rightWidth float64

	// memoizes the interpolated per-station geometry keyed by quantized
	// station: the scorer revisits the same stations for every candidate
	// lateral of a search level
	refPointCache *lru.Cache[int, datastructure.ReferencePoint]
}

func New(points []datastructure.Point, leftWidth, rightWidth float64) (*ReferenceLine, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("reference line needs at least 2 points, got %d", len(points))
	}
	if leftWidth <= 0.0 || rightWidth <= 0.0 {
		return nil, fmt.Errorf("lane widths must be positive, got %f/%f", leftWidth, rightWidth)
	}

	rl := &ReferenceLine{
		points:     make([]r2.Point, 0, len(points)),
		leftWidth:  leftWidth,
		rightWidth: rightWidth,
	}
	for _, p := range points {
		rl.points = append(rl.points, r2.Point{X: p.GetX(), Y: p.GetY()})
	}

	n := len(rl.points)
	rl.cumS = make([]float64, n)
	rl.headings = make([]float64, n-1)
	segLengths := make([]float64, n-1)
	for i := 1; i < n; i++ {
		d := rl.points[i].Sub(rl.points[i-1])
		length := d.Norm()
		if length <= datastructure.EPS {
			return nil, fmt.Errorf("duplicate reference line point at index %d", i)
		}
		segLengths[i-1] = length
		rl.cumS[i] = rl.cumS[i-1] + length
		rl.headings[i-1] = angleOf(d)
	}

	// curvature per segment from the heading change across its start vertex
	rl.kappas = make([]float64, n-1)
	for i := 1; i < n-1; i++ {
		dTheta := datastructure.NormalizeAngle(rl.headings[i] - rl.headings[i-1])
		ds := (segLengths[i-1] + segLengths[i]) / 2.0
		rl.kappas[i] = dTheta / ds
	}

	cache, err := lru.New[int, datastructure.ReferencePoint](referencePointCacheSize)
	if err != nil {
		return nil, err
	}
	rl.refPointCache = cache

	return rl, nil
}

// NewFromEncodedPolyline decodes a google-encoded polyline whose coordinates
// are interpreted as local planar meters.
func NewFromEncodedPolyline(encoded string, leftWidth, rightWidth float64) (*ReferenceLine, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode reference line polyline: %w", err)
	}
	points := make([]datastructure.Point, 0, len(coords))
	for _, c := range coords {
		points = append(points, datastructure.NewPoint(c[0], c[1]))
	}
	return New(points, leftWidth, rightWidth)
}

func angleOf(d r2.Point) float64 {
	return math.Atan2(d.Y, d.X)
}

// Length returns the total arc length.
func (rl *ReferenceLine) Length() float64 {
	return rl.cumS[len(rl.cumS)-1]
}

// segmentIndexAt locates the segment containing station s, clamping out-of-
// range stations to the first/last segment.
func (rl *ReferenceLine) segmentIndexAt(s float64) int {
	if s <= 0.0 {
		return 0
	}
	idx := sort.SearchFloat64s(rl.cumS, s)
	if idx > 0 {
		idx--
	}
	if idx >= len(rl.headings) {
		idx = len(rl.headings) - 1
	}
	return idx
}

// GetLaneWidth returns the lane half-widths at station s.
func (rl *ReferenceLine) GetLaneWidth(s float64) (float64, float64) {
	return rl.leftWidth, rl.rightWidth
}

// GetReferencePoint returns heading and curvature at station s, interpolated
// across segment boundaries and memoized at referencePointQuantum resolution.
func (rl *ReferenceLine) GetReferencePoint(s float64) datastructure.ReferencePoint {
	key := int(math.Round(s / referencePointQuantum))
	if rp, ok := rl.refPointCache.Get(key); ok {
		return rp
	}
	rp := rl.interpolateReferencePoint(float64(key) * referencePointQuantum)
	rl.refPointCache.Add(key, rp)
	return rp
}

// interpolateReferencePoint blends the per-segment headings and curvatures
// along the containing segment so the geometry is continuous in s instead of
// stepping at each vertex.
func (rl *ReferenceLine) interpolateReferencePoint(s float64) datastructure.ReferencePoint {
	idx := rl.segmentIndexAt(s)
	if idx >= len(rl.headings)-1 {
		return datastructure.ReferencePoint{
			Heading: rl.headings[idx],
			Kappa:   rl.kappas[idx],
		}
	}

	segLength := rl.cumS[idx+1] - rl.cumS[idx]
	t := (s - rl.cumS[idx]) / segLength
	if t < 0.0 {
		t = 0.0
	} else if t > 1.0 {
		t = 1.0
	}

	dTheta := datastructure.NormalizeAngle(rl.headings[idx+1] - rl.headings[idx])
	return datastructure.ReferencePoint{
		Heading: datastructure.NormalizeAngle(rl.headings[idx] + t*dTheta),
		Kappa:   rl.kappas[idx] + t*(rl.kappas[idx+1]-rl.kappas[idx]),
	}
}

// SLToXY maps a station-lateral pose to the cartesian frame: the point at
// arc length s along the polyline, offset l along the left normal.
func (rl *ReferenceLine) SLToXY(sl datastructure.SLPoint) datastructure.Point {
	idx := rl.segmentIndexAt(sl.S)

	dir := rl.points[idx+1].Sub(rl.points[idx]).Normalize()
	base := rl.points[idx].Add(dir.Mul(sl.S - rl.cumS[idx]))
	leftNormal := dir.Ortho()
	p := base.Add(leftNormal.Mul(sl.L))

	return datastructure.NewPoint(p.X, p.Y)
}
