package controllers

import (
	"github.com/lintang-b-s/lattice-planner/pkg/http/usecases"
	"github.com/twpayne/go-polyline"
)

type envelope map[string]interface{}

type planPathRequest struct {
	ReferencePolyline string       `json:"reference_polyline"`
	ReferencePoints   [][2]float64 `json:"reference_points"`
	LaneWidthLeft     float64      `json:"lane_width_left" validate:"required,gt=0"`
	LaneWidthRight    float64      `json:"lane_width_right" validate:"required,gt=0"`
	PlanningDistance  float64      `json:"planning_distance" validate:"required,gt=0"`
	InitS             float64      `json:"init_s" validate:"gte=0"`
	InitL             float64      `json:"init_l"`
	ADCBoundary       [4]float64   `json:"adc_boundary"`
	IsChangeLanePath  bool         `json:"is_change_lane_path"`
	CruiseSpeed       float64      `json:"cruise_speed" validate:"required,gt=0"`
	SpeedHorizon      float64      `json:"speed_horizon" validate:"required,gt=0"`
	Obstacles         []obstacleRequest `json:"obstacles" validate:"dive"`
}

type obstacleRequest struct {
	Id         string                   `json:"id" validate:"required"`
	Class      string                   `json:"class" validate:"omitempty,oneof=vehicle bicycle pedestrian unknown"`
	Virtual    bool                     `json:"virtual"`
	Static     bool                     `json:"static"`
	Decision   string                   `json:"decision" validate:"omitempty,oneof=stop follow yield overtake ignore"`
	Length     float64                  `json:"length"`
	Width      float64                  `json:"width"`
	Boundary   [4]float64               `json:"boundary"`
	Trajectory []trajectoryPointRequest `json:"trajectory"`
}

type trajectoryPointRequest struct {
	T       float64 `json:"t"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
}

func (r planPathRequest) toCommand() usecases.PlanCommand {
	obstacles := make([]usecases.ObstacleCommand, 0, len(r.Obstacles))
	for _, o := range r.Obstacles {
		trajectory := make([]usecases.TrajectoryPointCommand, 0, len(o.Trajectory))
		for _, tp := range o.Trajectory {
			trajectory = append(trajectory, usecases.TrajectoryPointCommand{
				T: tp.T, X: tp.X, Y: tp.Y, Heading: tp.Heading,
			})
		}
		obstacles = append(obstacles, usecases.ObstacleCommand{
			Id:         o.Id,
			Class:      o.Class,
			Virtual:    o.Virtual,
			Static:     o.Static,
			Decision:   o.Decision,
			Length:     o.Length,
			Width:      o.Width,
			Boundary:   o.Boundary,
			Trajectory: trajectory,
		})
	}
	return usecases.PlanCommand{
		ReferencePolyline: r.ReferencePolyline,
		ReferencePoints:   r.ReferencePoints,
		LaneWidthLeft:     r.LaneWidthLeft,
		LaneWidthRight:    r.LaneWidthRight,
		PlanningDistance:  r.PlanningDistance,
		InitS:             r.InitS,
		InitL:             r.InitL,
		ADCBoundary:       r.ADCBoundary,
		IsChangeLanePath:  r.IsChangeLanePath,
		CruiseSpeed:       r.CruiseSpeed,
		SpeedHorizon:      r.SpeedHorizon,
		Obstacles:         obstacles,
	}
}

type slPointResponse struct {
	S float64 `json:"s"`
	L float64 `json:"l"`
}

type costResponse struct {
	HasCollision   bool    `json:"has_collision"`
	OutOfBoundary  bool    `json:"out_of_boundary"`
	SmoothnessCost float64 `json:"smoothness_cost"`
	SafetyCost     float64 `json:"safety_cost"`
}

type planPathResponse struct {
	PathSL       []slPointResponse `json:"path_sl"`
	PathPolyline string            `json:"path_polyline"`
	Cost         costResponse      `json:"cost"`
}

func newPlanPathResponse(res *usecases.PlanResult) planPathResponse {
	pathSL := make([]slPointResponse, 0, len(res.PathSL))
	for _, sl := range res.PathSL {
		pathSL = append(pathSL, slPointResponse{S: sl.S, L: sl.L})
	}
	return planPathResponse{
		PathSL:       pathSL,
		PathPolyline: string(polyline.EncodeCoords(res.PathXY)),
		Cost: costResponse{
			HasCollision:   res.Cost.HasCollision,
			OutOfBoundary:  res.Cost.OutOfBoundary,
			SmoothnessCost: res.Cost.SmoothnessCost,
			SafetyCost:     res.Cost.SafetyCost,
		},
	}
}
