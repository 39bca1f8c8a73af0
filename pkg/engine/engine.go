package engine

import (
	"fmt"
	"math"
	"runtime"

	"github.com/lintang-b-s/lattice-planner/pkg/concurrent"
	"github.com/lintang-b-s/lattice-planner/pkg/costfunction"
	"github.com/lintang-b-s/lattice-planner/pkg/datastructure"
	"github.com/lintang-b-s/lattice-planner/pkg/obstacle"
	"go.uber.org/zap"
)

// Config tunes the lattice discretization of the DP search.
type Config struct {
	// station distance between consecutive DP levels, meters
	StepLength float64

	// lateral samples per side of the centerline at every level
	LateralSampleCount int

	// spacing between adjacent lateral samples, meters
	LateralSampleDistance float64

	// workers evaluating candidate edges of one level concurrently
	NumWorkers int
}

func DefaultConfig() Config {
	return Config{
		StepLength:            10.0,
		LateralSampleCount:    4,
		LateralSampleDistance: 0.5,
		NumWorkers:            runtime.NumCPU(),
	}
}

func (c Config) Validate() error {
	if c.StepLength <= 0.0 {
		return fmt.Errorf("step length must be positive, got %f", c.StepLength)
	}
	if c.LateralSampleCount < 0 {
		return fmt.Errorf("lateral sample count must be non-negative, got %d", c.LateralSampleCount)
	}
	if c.LateralSampleCount > 0 && c.LateralSampleDistance <= 0.0 {
		return fmt.Errorf("lateral sample distance must be positive, got %f", c.LateralSampleDistance)
	}
	return nil
}

// Request is one planning problem: the road, the pre-decided obstacle set,
// the ego start state and the heuristic longitudinal plan.
type Request struct {
	ReferenceLine    costfunction.ReferenceLine
	PlanningDistance float64
	Obstacles        []*obstacle.Obstacle
	SpeedProfile     *datastructure.SpeedProfile
	InitSLPoint      datastructure.SLPoint
	ADCSLBoundary    datastructure.SLBoundary
	IsChangeLanePath bool
}

// Result is the selected minimum-cost path through the lattice.
type Result struct {
	PathPoints []datastructure.SLPoint
	Cost       costfunction.ComparableCost
}

// Planner runs a dynamic program over a station-lateral waypoint lattice,
// scoring every candidate edge with the trajectory cost engine and keeping
// the minimum-cost predecessor per node.
type Planner struct {
	cfg     Config
	costCfg costfunction.Config
	vehicle costfunction.VehicleParam
	log     *zap.Logger
}

func NewPlanner(cfg Config, costCfg costfunction.Config,
	vehicle costfunction.VehicleParam, log *zap.Logger) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("planner config: %w", err)
	}
	if err := costCfg.Validate(); err != nil {
		return nil, fmt.Errorf("planner cost config: %w", err)
	}
	if err := vehicle.Validate(); err != nil {
		return nil, fmt.Errorf("planner vehicle param: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{cfg: cfg, costCfg: costCfg, vehicle: vehicle, log: log}, nil
}

type dpNode struct {
	sl    datastructure.SLPoint
	curve *datastructure.QuinticPolynomial
	prev  int
	cost  costfunction.ComparableCost
}

type edgeJob struct {
	lateral float64
	station float64
	level   int
}

type edgeResult struct {
	node dpNode
	ok   bool
	err  error
}

// Plan selects the minimum-cost waypoint path for one planning cycle.
func (p *Planner) Plan(req Request) (*Result, error) {
	if req.ReferenceLine == nil {
		return nil, fmt.Errorf("plan request needs a reference line")
	}
	if req.PlanningDistance < p.cfg.StepLength {
		return nil, fmt.Errorf("planning distance %f must be at least step length %f",
			req.PlanningDistance, p.cfg.StepLength)
	}

	trajectoryCost, err := costfunction.NewTrajectoryCost(p.costCfg, req.ReferenceLine,
		req.IsChangeLanePath, req.Obstacles, p.vehicle, req.SpeedProfile,
		req.InitSLPoint, req.ADCSLBoundary, p.log)
	if err != nil {
		return nil, fmt.Errorf("build trajectory cost: %w", err)
	}

	totalLevel := int(math.Floor(req.PlanningDistance / p.cfg.StepLength))
	laterals := p.sampleLaterals()

	p.log.Debug("lattice search",
		zap.Int("levels", totalLevel),
		zap.Int("lateralsPerLevel", len(laterals)))

	levels := make([][]dpNode, totalLevel+1)
	levels[0] = []dpNode{{sl: req.InitSLPoint, prev: 0}}

	for level := 1; level <= totalLevel; level++ {
		station := req.InitSLPoint.S + float64(level)*p.cfg.StepLength
		prevNodes := levels[level-1]

		pool := concurrent.NewWorkerPool[edgeJob, edgeResult](p.cfg.NumWorkers, len(laterals))
		pool.Start(func(job edgeJob) edgeResult {
			return p.bestEdgeTo(trajectoryCost, prevNodes, job, totalLevel)
		})
		for _, lateral := range laterals {
			pool.Submit(edgeJob{lateral: lateral, station: station, level: level})
		}
		pool.Close()
		pool.Wait()

		nodes := make([]dpNode, 0, len(laterals))
		var firstErr error
		for res := range pool.Results() {
			if res.err != nil && firstErr == nil {
				firstErr = res.err
			}
			if res.ok {
				nodes = append(nodes, res.node)
			}
		}
		if firstErr != nil {
			return nil, firstErr
		}
		if len(nodes) == 0 {
			return nil, fmt.Errorf("no feasible candidate at level %d", level)
		}
		levels[level] = nodes
	}

	return p.backtrack(levels), nil
}

// bestEdgeTo evaluates every predecessor edge into the (station, lateral)
// node and keeps the minimum accumulated cost.
func (p *Planner) bestEdgeTo(trajectoryCost *costfunction.TrajectoryCost,
	prevNodes []dpNode, job edgeJob, totalLevel int) edgeResult {
	var best dpNode
	found := false

	for i := range prevNodes {
		prev := &prevNodes[i]
		ds := job.station - prev.sl.S
		curve, err := datastructure.NewQuinticPolynomialFromBoundary(
			prev.sl.L, 0.0, 0.0, job.lateral, 0.0, 0.0, ds)
		if err != nil {
			return edgeResult{err: fmt.Errorf("candidate curve at level %d: %w", job.level, err)}
		}

		edgeCost, err := trajectoryCost.Calculate(curve, prev.sl.S, job.station,
			job.level, totalLevel)
		if err != nil {
			return edgeResult{err: err}
		}

		accumulated := prev.cost.Combine(edgeCost)
		if !found || accumulated.Compare(best.cost) < 0 {
			best = dpNode{
				sl:    datastructure.NewSLPoint(job.station, job.lateral),
				curve: curve,
				prev:  i,
				cost:  accumulated,
			}
			found = true
		}
	}

	return edgeResult{node: best, ok: found}
}

// sampleLaterals returns the symmetric lateral offsets sampled at each level.
func (p *Planner) sampleLaterals() []float64 {
	count := p.cfg.LateralSampleCount
	laterals := make([]float64, 0, 2*count+1)
	for i := -count; i <= count; i++ {
		laterals = append(laterals, float64(i)*p.cfg.LateralSampleDistance)
	}
	return laterals
}

// backtrack walks predecessor links from the cheapest terminal node and
// samples the chosen curves at the path resolution.
func (p *Planner) backtrack(levels [][]dpNode) *Result {
	last := levels[len(levels)-1]
	bestIdx := 0
	for i := 1; i < len(last); i++ {
		if last[i].cost.Compare(last[bestIdx].cost) < 0 {
			bestIdx = i
		}
	}

	chain := make([]dpNode, 0, len(levels))
	idx := bestIdx
	for level := len(levels) - 1; level >= 0; level-- {
		node := levels[level][idx]
		chain = append(chain, node)
		idx = node.prev
	}
	// reverse into driving order
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	var pathPoints []datastructure.SLPoint
	for i := 1; i < len(chain); i++ {
		startS := chain[i-1].sl.S
		ds := chain[i].sl.S - startS
		for s := 0.0; s < ds; s += p.costCfg.PathResolution {
			pathPoints = append(pathPoints,
				datastructure.NewSLPoint(startS+s, chain[i].curve.Evaluate(0, s)))
		}
	}
	final := chain[len(chain)-1]
	pathPoints = append(pathPoints, final.sl)

	return &Result{PathPoints: pathPoints, Cost: last[bestIdx].cost}
}
