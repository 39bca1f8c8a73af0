package costfunction

import "fmt"

// Config carries every tunable of the trajectory scorer. Values are loaded
// externally (viper) and read-only afterward.
type Config struct {
	// station sampling resolution along a candidate curve, meters
	PathResolution float64

	// per-derivative smoothness weights
	PathLCost   float64
	PathDLCost  float64
	PathDDLCost float64

	// one-time terminal-level penalty pulling the segment end back toward
	// the reference-line center
	PathEndLCost float64

	// quasi-softmax shaping parameters for the 0th-derivative term
	PathLCostParamL0 float64
	PathLCostParamB  float64
	PathLCostParamK  float64

	// obstacle proximity shaping
	ObstacleCollisionDistance float64
	ObstacleCollisionCost     float64
	ObstacleIgnoreDistance    float64
	ObstacleRiskDistance      float64

	// dynamic horizon discretization
	EvalTimeInterval    float64
	PredictionTotalTime float64

	// obstacles laterally farther than this from the ego extent are
	// unreachable and excluded from cost consideration
	LateralIgnoreBuffer float64
}

// DefaultConfig mirrors the planner's production defaults.
func DefaultConfig() Config {
	return Config{
		PathResolution:            1.0,
		PathLCost:                 6.5,
		PathDLCost:                8000.0,
		PathDDLCost:               5.0,
		PathEndLCost:              10000.0,
		PathLCostParamL0:          1.5,
		PathLCostParamB:           0.4,
		PathLCostParamK:           1.5,
		ObstacleCollisionDistance: 0.5,
		ObstacleCollisionCost:     1e8,
		ObstacleIgnoreDistance:    20.0,
		ObstacleRiskDistance:      2.0,
		EvalTimeInterval:          0.1,
		PredictionTotalTime:       5.0,
		LateralIgnoreBuffer:       3.0,
	}
}

func (c Config) Validate() error {
	if c.PathResolution <= 0.0 {
		return fmt.Errorf("path resolution must be positive, got %f", c.PathResolution)
	}
	if c.EvalTimeInterval <= 0.0 {
		return fmt.Errorf("eval time interval must be positive, got %f", c.EvalTimeInterval)
	}
	if c.PredictionTotalTime < 0.0 {
		return fmt.Errorf("prediction total time must be non-negative, got %f", c.PredictionTotalTime)
	}
	if c.LateralIgnoreBuffer < 0.0 {
		return fmt.Errorf("lateral ignore buffer must be non-negative, got %f", c.LateralIgnoreBuffer)
	}
	return nil
}

// VehicleParam is the ego footprint geometry: four edge-to-reference-center
// distances plus overall length and width.
type VehicleParam struct {
	FrontEdgeToCenter float64
	BackEdgeToCenter  float64
	LeftEdgeToCenter  float64
	RightEdgeToCenter float64
	Length            float64
	Width             float64
}

func (v VehicleParam) Validate() error {
	if v.Length <= 0.0 || v.Width <= 0.0 {
		return fmt.Errorf("vehicle length/width must be positive, got %f x %f", v.Length, v.Width)
	}
	return nil
}
