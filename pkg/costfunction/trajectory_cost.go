package costfunction

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/lattice-planner/pkg"
	"github.com/lintang-b-s/lattice-planner/pkg/datastructure"
	"github.com/lintang-b-s/lattice-planner/pkg/obstacle"
	"github.com/lintang-b-s/lattice-planner/pkg/util"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// TrajectoryCost scores one candidate path segment against smoothness, road
// boundary, static obstacles and time-synchronized dynamic obstacles. It is
// constructed once per lattice search and is read-only afterward, so one
// instance may score candidate curves from concurrent goroutines.
type TrajectoryCost struct {
	cfg              Config
	referenceLine    ReferenceLine
	isChangeLanePath bool
	vehicleParam     VehicleParam
	speedProfile     *datastructure.SpeedProfile
	initSLPoint      datastructure.SLPoint
	adcSLBoundary    datastructure.SLBoundary

	numTimeSteps int

	// static cache: perceived SL boundaries indexed by their (s,l) extent
	staticObstacleBoundaries *rtree.RTreeG[datastructure.SLBoundary]

	// dynamic cache: per obstacle, one expanded footprint per time step,
	// index i <-> time i*EvalTimeInterval for every trajectory
	dynamicObstacleBoxes [][]datastructure.Box2d
}

// NewTrajectoryCost classifies the obstacle set and builds the two read-only
// caches. Obstacles that are ignorable, stop-fenced or virtual are excluded;
// obstacles laterally unreachable from the ego start pose are skipped;
// pedestrians and bicycles are conservatively treated as static.
func NewTrajectoryCost(cfg Config, referenceLine ReferenceLine,
	isChangeLanePath bool, obstacles []*obstacle.Obstacle,
	vehicleParam VehicleParam, speedProfile *datastructure.SpeedProfile,
	initSLPoint datastructure.SLPoint, adcSLBoundary datastructure.SLBoundary,
	log *zap.Logger) (*TrajectoryCost, error) {

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("trajectory cost config: %w", err)
	}
	if err := vehicleParam.Validate(); err != nil {
		return nil, fmt.Errorf("trajectory cost vehicle param: %w", err)
	}
	if err := adcSLBoundary.Validate(); err != nil {
		return nil, fmt.Errorf("trajectory cost adc boundary: %w", err)
	}
	if speedProfile == nil {
		return nil, fmt.Errorf("trajectory cost needs a heuristic speed profile")
	}
	if log == nil {
		log = zap.NewNop()
	}

	totalTime := math.Min(speedProfile.TotalTime(), cfg.PredictionTotalTime)

	tc := &TrajectoryCost{
		cfg:                      cfg,
		referenceLine:            referenceLine,
		isChangeLanePath:         isChangeLanePath,
		vehicleParam:             vehicleParam,
		speedProfile:             speedProfile,
		initSLPoint:              initSLPoint,
		adcSLBoundary:            adcSLBoundary,
		numTimeSteps:             int(math.Floor(totalTime / cfg.EvalTimeInterval)),
		staticObstacleBoundaries: &rtree.RTreeG[datastructure.SLBoundary]{},
	}

	numStatic := 0
	for _, obs := range obstacles {
		if obs.IsIgnorable() {
			continue
		} else if obs.HasStopDecision() {
			// already handled by the speed decider
			continue
		}

		slBoundary := obs.PerceptionSLBoundary()
		if err := slBoundary.Validate(); err != nil {
			return nil, fmt.Errorf("obstacle %s: %w", obs.Id(), err)
		}

		adcLeftL := initSLPoint.L + vehicleParam.LeftEdgeToCenter
		adcRightL := initSLPoint.L - vehicleParam.RightEdgeToCenter

		// laterally unreachable, skip
		if adcLeftL+cfg.LateralIgnoreBuffer < slBoundary.StartL ||
			adcRightL-cfg.LateralIgnoreBuffer > slBoundary.EndL {
			continue
		}

		isBicycleOrPedestrian := obs.PerceptionType() == pkg.BICYCLE ||
			obs.PerceptionType() == pkg.PEDESTRIAN

		if obs.IsVirtual() {
			continue
		} else if obs.IsStatic() || isBicycleOrPedestrian {
			tc.staticObstacleBoundaries.Insert(
				[2]float64{slBoundary.StartS, slBoundary.StartL},
				[2]float64{slBoundary.EndS, slBoundary.EndL},
				slBoundary,
			)
			numStatic++
		} else {
			boxByTime := make([]datastructure.Box2d, 0, tc.numTimeSteps+1)
			for t := 0; t <= tc.numTimeSteps; t++ {
				trajectoryPoint := obs.GetPointAtTime(float64(t) * cfg.EvalTimeInterval)
				obstacleBox := obs.GetBoundingBox(trajectoryPoint)
				expanded := datastructure.NewBox2d(obstacleBox.Center(), obstacleBox.Heading(),
					obstacleBox.Length()+pkg.DYNAMIC_OBSTACLE_LW_BUFFER,
					obstacleBox.Width()+pkg.DYNAMIC_OBSTACLE_LW_BUFFER)
				boxByTime = append(boxByTime, expanded)
			}
			tc.dynamicObstacleBoxes = append(tc.dynamicObstacleBoxes, boxByTime)
		}
	}

	log.Debug("trajectory cost obstacle classification done",
		zap.Int("static", numStatic),
		zap.Int("dynamic", len(tc.dynamicObstacleBoxes)),
		zap.Int("numTimeSteps", tc.numTimeSteps))

	return tc, nil
}

// quasiSoftmax is the bounded saturating weight of the 0th-derivative
// smoothness term: near-center deviations stay cheap, far deviations
// approach a constant ceiling.
func quasiSoftmax(x, l0, b, k float64) float64 {
	return (b + math.Exp(-k*(x-l0))) / (1.0 + math.Exp(-k*(x-l0)))
}

// Calculate is the per-candidate entry point: the combined smoothness,
// static and dynamic cost of the curve over [startS, endS] at the given
// search level.
func (tc *TrajectoryCost) Calculate(curve Curve, startS, endS float64,
	currLevel, totalLevel int) (ComparableCost, error) {
	if endS < startS {
		return ComparableCost{}, fmt.Errorf("candidate segment has end_s %f < start_s %f", endS, startS)
	}

	totalCost := tc.CalculatePathCost(curve, startS, endS, currLevel, totalLevel)
	totalCost = totalCost.Combine(tc.CalculateStaticObstacleCost(curve, startS, endS))
	totalCost = totalCost.Combine(tc.CalculateDynamicObstacleCost(curve, startS, endS))
	return totalCost, nil
}

// CalculatePathCost integrates the smoothness penalty over the curve's value
// and first/second derivatives and flags samples whose swept footprint
// leaves the road.
func (tc *TrajectoryCost) CalculatePathCost(curve Curve, startS, endS float64,
	currLevel, totalLevel int) ComparableCost {
	var cost ComparableCost
	pathCost := 0.0

	for curveS := 0.0; curveS < endS-startS; curveS += tc.cfg.PathResolution {
		l := curve.Evaluate(0, curveS)
		pathCost += l * l * tc.cfg.PathLCost *
			quasiSoftmax(math.Abs(l), tc.cfg.PathLCostParamL0, tc.cfg.PathLCostParamB, tc.cfg.PathLCostParamK)

		dl := math.Abs(curve.Evaluate(1, curveS))
		if tc.isOffRoad(curveS+startS, l, dl) {
			cost.OutOfBoundary = true
		}
		pathCost += dl * dl * tc.cfg.PathDLCost

		ddl := math.Abs(curve.Evaluate(2, curveS))
		pathCost += ddl * ddl * tc.cfg.PathDDLCost
	}
	pathCost *= tc.cfg.PathResolution

	if currLevel == totalLevel {
		endL := curve.Evaluate(0, endS-startS)
		// the radicand is clamped at zero so a terminal offset left of
		// init_l/2 yields zero penalty instead of NaN
		pathCost += math.Sqrt(math.Max(endL-tc.initSLPoint.L/2.0, 0.0)) * tc.cfg.PathEndLCost
	}
	cost.SmoothnessCost = pathCost
	return cost
}

// isOffRoad sweeps an approximated footprint at (refS, l) against the lane
// bounds. The heading is approximated from the lateral slope as atan(dl),
// a small-angle linearization valid while dl and the road curvature stay
// small.
func (tc *TrajectoryCost) isOffRoad(refS, l, dl float64) bool {
	if refS-tc.initSLPoint.S < pkg.OFFROAD_IGNORE_DISTANCE {
		return false
	}

	param := tc.vehicleParam
	rearCenter := datastructure.NewVector(0.0, l)
	vecToCenter := datastructure.NewVector(
		(param.FrontEdgeToCenter-param.BackEdgeToCenter)/2.0,
		(param.LeftEdgeToCenter-param.RightEdgeToCenter)/2.0,
	)

	rearCenterToCenter := vecToCenter.Rotate(math.Atan(dl))
	center := rearCenter.Add(rearCenterToCenter)
	frontCenter := center.Add(rearCenterToCenter)

	rw := (param.LeftEdgeToCenter + param.RightEdgeToCenter) / 2.0
	rl := param.BackEdgeToCenter
	r := math.Sqrt(rw*rw + rl*rl)

	leftWidth, rightWidth := tc.referenceLine.GetLaneWidth(refS)

	leftBound := math.Max(tc.initSLPoint.L+r+pkg.OFFROAD_BOUND_BUFFER, leftWidth)
	rightBound := math.Min(tc.initSLPoint.L-r-pkg.OFFROAD_BOUND_BUFFER, -rightWidth)

	if rearCenter.GetY()+r+pkg.OFFROAD_BOUND_BUFFER/2.0 > leftBound ||
		rearCenter.GetY()-r-pkg.OFFROAD_BOUND_BUFFER/2.0 < rightBound {
		return true
	}
	if frontCenter.GetY()+r+pkg.OFFROAD_BOUND_BUFFER/2.0 > leftBound ||
		frontCenter.GetY()-r-pkg.OFFROAD_BOUND_BUFFER/2.0 < rightBound {
		return true
	}

	return false
}

// CalculateStaticObstacleCost walks the curve across [startS, endS] and
// accumulates the proximity penalty of every cached static boundary. The
// spatial index is queried with a rectangle chosen so every pruned boundary
// provably contributes zero: laterally beyond the ignore buffer or entirely
// behind the ego rear edge.
func (tc *TrajectoryCost) CalculateStaticObstacleCost(curve Curve,
	startS, endS float64) ComparableCost {
	var obstacleCost ComparableCost

	for currS := startS; currS <= endS; currS += tc.cfg.PathResolution {
		currL := curve.Evaluate(0, currS-startS)

		queryMin := [2]float64{
			currS - tc.vehicleParam.BackEdgeToCenter,
			currL - tc.vehicleParam.RightEdgeToCenter - tc.cfg.LateralIgnoreBuffer,
		}
		queryMax := [2]float64{
			math.MaxFloat64,
			currL + tc.vehicleParam.LeftEdgeToCenter + tc.cfg.LateralIgnoreBuffer,
		}

		tc.staticObstacleBoundaries.Search(queryMin, queryMax,
			func(_, _ [2]float64, obsSLBoundary datastructure.SLBoundary) bool {
				obstacleCost = obstacleCost.Combine(tc.getCostFromObsSL(currS, currL, obsSLBoundary))
				return true
			})
	}
	obstacleCost.SafetyCost *= tc.cfg.PathResolution
	return obstacleCost
}

// getCostFromObsSL scores one sample pose against one static SL boundary.
func (tc *TrajectoryCost) getCostFromObsSL(adcS, adcL float64,
	obsSLBoundary datastructure.SLBoundary) ComparableCost {
	var obstacleCost ComparableCost

	// a boundary straddling the reference centerline is not meaningfully
	// assessable laterally and contributes nothing
	if obsSLBoundary.StartL*obsSLBoundary.EndL <= 0.0 {
		return obstacleCost
	}

	param := tc.vehicleParam
	adcFrontS := adcS + param.FrontEdgeToCenter
	adcEndS := adcS - param.BackEdgeToCenter
	adcLeftL := adcL + param.LeftEdgeToCenter
	adcRightL := adcL - param.RightEdgeToCenter

	if adcLeftL+tc.cfg.LateralIgnoreBuffer < obsSLBoundary.StartL ||
		adcRightL-tc.cfg.LateralIgnoreBuffer > obsSLBoundary.EndL {
		return obstacleCost
	}

	noOverlap := (adcFrontS < obsSLBoundary.StartS ||
		adcEndS > obsSLBoundary.EndS) || // longitudinal
		(adcLeftL+pkg.STATIC_OVERLAP_TOLERANCE < obsSLBoundary.StartL ||
			adcRightL-pkg.STATIC_OVERLAP_TOLERANCE > obsSLBoundary.EndL) // lateral
	if !noOverlap {
		obstacleCost.HasCollision = true
	}

	// obstacle entirely behind the ego front edge, no penalty contribution
	if adcFrontS > obsSLBoundary.EndS {
		return obstacleCost
	}

	deltaL := math.Max(adcRightL-obsSLBoundary.EndL, obsSLBoundary.StartL-adcLeftL)
	if deltaL < pkg.STATIC_SAFE_DISTANCE {
		obstacleCost.SafetyCost += tc.cfg.ObstacleCollisionCost *
			util.Sigmoid(tc.cfg.ObstacleCollisionDistance-deltaL)
	}

	return obstacleCost
}

// CalculateDynamicObstacleCost walks the planning horizon in fixed time
// steps, maps each step to a station via the heuristic speed profile, builds
// the ego footprint there and scores it against every dynamic obstacle's
// footprint at the same time index. Pure function of cached data.
func (tc *TrajectoryCost) CalculateDynamicObstacleCost(curve Curve,
	startS, endS float64) ComparableCost {
	var obstacleCost ComparableCost
	if len(tc.dynamicObstacleBoxes) == 0 {
		return obstacleCost
	}

	timeStamp := 0.0
	for index := 0; index < tc.numTimeSteps; index, timeStamp = index+1, timeStamp+tc.cfg.EvalTimeInterval {
		speedPoint, ok := tc.speedProfile.EvaluateAtTime(timeStamp)
		if !ok {
			continue
		}

		refS := speedPoint.S + tc.initSLPoint.S
		if refS < startS {
			continue
		}
		if refS > endS {
			// station is monotone in time, nothing later can re-enter
			break
		}

		s := refS - startS
		l := curve.Evaluate(0, s)
		dl := curve.Evaluate(1, s)

		egoBox := tc.getBoxFromSLPoint(datastructure.NewSLPoint(refS, l), dl)
		for _, obstacleTrajectory := range tc.dynamicObstacleBoxes {
			obstacleCost = obstacleCost.Combine(
				tc.getCostBetweenObsBoxes(egoBox, obstacleTrajectory[index]))
		}
	}

	obstacleCost.SafetyCost *= tc.cfg.EvalTimeInterval * pkg.DYNAMIC_OBSTACLE_COST_WEIGHT
	return obstacleCost
}

// getCostBetweenObsBoxes scores the ego footprint against one obstacle
// footprint by clearance: a sharp sigmoid term near actual collision plus a
// softer, independently weighted term discouraging close passing.
func (tc *TrajectoryCost) getCostBetweenObsBoxes(egoBox,
	obstacleBox datastructure.Box2d) ComparableCost {
	var obstacleCost ComparableCost

	distance := obstacleBox.DistanceTo(egoBox)
	if distance > tc.cfg.ObstacleIgnoreDistance {
		return obstacleCost
	}

	obstacleCost.SafetyCost += tc.cfg.ObstacleCollisionCost *
		util.Sigmoid(tc.cfg.ObstacleCollisionDistance-distance)
	obstacleCost.SafetyCost += pkg.OBSTACLE_RISK_COST *
		util.Sigmoid(tc.cfg.ObstacleRiskDistance-distance)
	return obstacleCost
}

// getBoxFromSLPoint expands an (s,l) pose into the ego's oriented footprint,
// with the frenet-to-cartesian heading transform accounting for the
// reference-line curvature.
func (tc *TrajectoryCost) getBoxFromSLPoint(sl datastructure.SLPoint,
	dl float64) datastructure.Box2d {
	xyPoint := tc.referenceLine.SLToXY(sl)
	referencePoint := tc.referenceLine.GetReferencePoint(sl.S)

	oneMinusKappaRD := 1.0 - referencePoint.Kappa*sl.L
	deltaTheta := math.Atan2(dl, oneMinusKappaRD)
	theta := datastructure.NormalizeAngle(deltaTheta + referencePoint.Heading)

	return datastructure.NewBox2d(xyPoint, theta, tc.vehicleParam.Length,
		tc.vehicleParam.Width)
}

// NumTimeSteps is the number of discrete horizon steps of the dynamic cache.
func (tc *TrajectoryCost) NumTimeSteps() int {
	return tc.numTimeSteps
}
