// Command scenariogen writes a randomized planning scenario as JSON in the
// planning API's request shape, for fixtures and load testing.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"golang.org/x/exp/rand"
)

var (
	numStatic  = flag.Int("static", 3, "number of static obstacles")
	numDynamic = flag.Int("dynamic", 2, "number of dynamic obstacles")
	roadLength = flag.Float64("road_length", 200.0, "reference line length in meters")
	seed       = flag.Uint64("seed", 42, "rng seed")
	out        = flag.String("out", "scenario.json", "output file")
)

type trajectoryPoint struct {
	T       float64 `json:"t"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
}

type obstacleSpec struct {
	Id         string            `json:"id"`
	Class      string            `json:"class"`
	Virtual    bool              `json:"virtual"`
	Static     bool              `json:"static"`
	Decision   string            `json:"decision"`
	Length     float64           `json:"length"`
	Width      float64           `json:"width"`
	Boundary   [4]float64        `json:"boundary"`
	Trajectory []trajectoryPoint `json:"trajectory"`
}

type scenario struct {
	ReferencePoints  [][2]float64   `json:"reference_points"`
	LaneWidthLeft    float64        `json:"lane_width_left"`
	LaneWidthRight   float64        `json:"lane_width_right"`
	PlanningDistance float64        `json:"planning_distance"`
	InitS            float64        `json:"init_s"`
	InitL            float64        `json:"init_l"`
	ADCBoundary      [4]float64     `json:"adc_boundary"`
	CruiseSpeed      float64        `json:"cruise_speed"`
	SpeedHorizon     float64        `json:"speed_horizon"`
	Obstacles        []obstacleSpec `json:"obstacles"`
}

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))

	sc := scenario{
		ReferencePoints:  [][2]float64{{0, 0}, {*roadLength / 2.0, 0}, {*roadLength, 0}},
		LaneWidthLeft:    3.5,
		LaneWidthRight:   3.5,
		PlanningDistance: *roadLength * 0.5,
		InitS:            0.0,
		InitL:            0.0,
		ADCBoundary:      [4]float64{0.0, 5.0, -1.1, 1.1},
		CruiseSpeed:      8.0,
		SpeedHorizon:     7.0,
	}

	for i := 0; i < *numStatic; i++ {
		startS := 20.0 + rng.Float64()*(*roadLength*0.6)
		startL := -2.5 + rng.Float64()*4.0
		sc.Obstacles = append(sc.Obstacles, obstacleSpec{
			Id:       fmt.Sprintf("static-%d", i),
			Class:    "vehicle",
			Static:   true,
			Length:   4.5,
			Width:    2.0,
			Boundary: [4]float64{startS, startS + 4.5, startL, startL + 2.0},
		})
	}

	for i := 0; i < *numDynamic; i++ {
		startS := 30.0 + rng.Float64()*(*roadLength*0.4)
		lateral := -1.5 + rng.Float64()*3.0
		speed := 3.0 + rng.Float64()*6.0

		var trajectory []trajectoryPoint
		for t := 0.0; t <= 8.0; t += 1.0 {
			trajectory = append(trajectory, trajectoryPoint{
				T: t, X: startS + speed*t, Y: lateral, Heading: 0.0,
			})
		}
		sc.Obstacles = append(sc.Obstacles, obstacleSpec{
			Id:         fmt.Sprintf("dynamic-%d", i),
			Class:      "vehicle",
			Length:     4.5,
			Width:      2.0,
			Boundary:   [4]float64{startS, startS + 4.5, lateral - 1.0, lateral + 1.0},
			Trajectory: trajectory,
		})
	}

	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		panic(err)
	}
	fmt.Printf("wrote %s (%d obstacles)\n", *out, len(sc.Obstacles))
}
