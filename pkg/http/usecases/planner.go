package usecases

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/lattice-planner/pkg"
	"github.com/lintang-b-s/lattice-planner/pkg/costfunction"
	"github.com/lintang-b-s/lattice-planner/pkg/datastructure"
	"github.com/lintang-b-s/lattice-planner/pkg/engine"
	"github.com/lintang-b-s/lattice-planner/pkg/obstacle"
	"github.com/lintang-b-s/lattice-planner/pkg/referenceline"
	"go.uber.org/zap"
)

var (
	ErrInvalidScenario = errors.New("invalid scenario")
	ErrNoFeasiblePath  = errors.New("no feasible path")
)

// PlanCommand is the transport-agnostic planning scenario handed down from
// the API layer.
type PlanCommand struct {
	ReferencePolyline string
	ReferencePoints   [][2]float64
	LaneWidthLeft     float64
	LaneWidthRight    float64
	PlanningDistance  float64
	InitS             float64
	InitL             float64
	ADCBoundary       [4]float64 // startS, endS, startL, endL
	IsChangeLanePath  bool
	CruiseSpeed       float64
	SpeedHorizon      float64
	Obstacles         []ObstacleCommand
}

type ObstacleCommand struct {
	Id         string
	Class      string
	Virtual    bool
	Static     bool
	Decision   string
	Length     float64
	Width      float64
	Boundary   [4]float64 // startS, endS, startL, endL
	Trajectory []TrajectoryPointCommand
}

type TrajectoryPointCommand struct {
	T       float64
	X       float64
	Y       float64
	Heading float64
}

// PlanResult carries the chosen path in both frames plus its cost.
type PlanResult struct {
	PathSL []datastructure.SLPoint
	PathXY [][]float64
	Cost   costfunction.ComparableCost
}

type PlanningService struct {
	log     *zap.Logger
	planner *engine.Planner
}

func NewPlanningService(log *zap.Logger, planner *engine.Planner) *PlanningService {
	return &PlanningService{log: log, planner: planner}
}

// PlanPath materializes the scenario into domain objects and runs the
// lattice search.
func (s *PlanningService) PlanPath(cmd PlanCommand) (*PlanResult, error) {
	refLine, err := s.buildReferenceLine(cmd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	obstacles, err := buildObstacles(cmd.Obstacles)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	speedProfile, err := datastructure.NewConstantSpeedProfile(cmd.CruiseSpeed, cmd.SpeedHorizon)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	result, err := s.planner.Plan(engine.Request{
		ReferenceLine:    refLine,
		PlanningDistance: cmd.PlanningDistance,
		Obstacles:        obstacles,
		SpeedProfile:     speedProfile,
		InitSLPoint:      datastructure.NewSLPoint(cmd.InitS, cmd.InitL),
		ADCSLBoundary: datastructure.NewSLBoundary(cmd.ADCBoundary[0], cmd.ADCBoundary[1],
			cmd.ADCBoundary[2], cmd.ADCBoundary[3]),
		IsChangeLanePath: cmd.IsChangeLanePath,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoFeasiblePath, err)
	}

	pathXY := make([][]float64, 0, len(result.PathPoints))
	for _, sl := range result.PathPoints {
		p := refLine.SLToXY(sl)
		pathXY = append(pathXY, []float64{p.GetX(), p.GetY()})
	}

	s.log.Info("planned path",
		zap.Int("points", len(result.PathPoints)),
		zap.Bool("hasCollision", result.Cost.HasCollision),
		zap.Bool("outOfBoundary", result.Cost.OutOfBoundary),
		zap.Float64("score", result.Cost.Score()))

	return &PlanResult{
		PathSL: result.PathPoints,
		PathXY: pathXY,
		Cost:   result.Cost,
	}, nil
}

func (s *PlanningService) buildReferenceLine(cmd PlanCommand) (*referenceline.ReferenceLine, error) {
	if cmd.ReferencePolyline != "" {
		return referenceline.NewFromEncodedPolyline(cmd.ReferencePolyline,
			cmd.LaneWidthLeft, cmd.LaneWidthRight)
	}
	points := make([]datastructure.Point, 0, len(cmd.ReferencePoints))
	for _, p := range cmd.ReferencePoints {
		points = append(points, datastructure.NewPoint(p[0], p[1]))
	}
	return referenceline.New(points, cmd.LaneWidthLeft, cmd.LaneWidthRight)
}

func buildObstacles(cmds []ObstacleCommand) ([]*obstacle.Obstacle, error) {
	obstacles := make([]*obstacle.Obstacle, 0, len(cmds))
	for _, c := range cmds {
		boundary := datastructure.NewSLBoundary(c.Boundary[0], c.Boundary[1],
			c.Boundary[2], c.Boundary[3])

		var obs *obstacle.Obstacle
		switch {
		case c.Virtual:
			obs = obstacle.NewVirtualObstacle(c.Id, boundary)
		case c.Static:
			obs = obstacle.NewStaticObstacle(c.Id, perceptionTypeOf(c.Class), boundary,
				c.Length, c.Width)
		default:
			trajectory := make([]obstacle.TrajectoryPoint, 0, len(c.Trajectory))
			for _, tp := range c.Trajectory {
				trajectory = append(trajectory, obstacle.TrajectoryPoint{
					Position: datastructure.NewPoint(tp.X, tp.Y),
					Heading:  tp.Heading,
					T:        tp.T,
				})
			}
			var err error
			obs, err = obstacle.NewDynamicObstacle(c.Id, perceptionTypeOf(c.Class), boundary,
				c.Length, c.Width, trajectory)
			if err != nil {
				return nil, err
			}
		}

		obs.SetLongitudinalDecision(decisionOf(c.Decision))
		obstacles = append(obstacles, obs)
	}
	return obstacles, nil
}

func perceptionTypeOf(class string) pkg.PerceptionType {
	switch class {
	case "vehicle":
		return pkg.VEHICLE
	case "bicycle":
		return pkg.BICYCLE
	case "pedestrian":
		return pkg.PEDESTRIAN
	default:
		return pkg.UNKNOWN_OBJECT
	}
}

func decisionOf(decision string) pkg.LongitudinalDecision {
	switch decision {
	case "stop":
		return pkg.DECISION_STOP
	case "follow":
		return pkg.DECISION_FOLLOW
	case "yield":
		return pkg.DECISION_YIELD
	case "overtake":
		return pkg.DECISION_OVERTAKE
	case "ignore":
		return pkg.DECISION_IGNORE
	default:
		return pkg.DECISION_NONE
	}
}
