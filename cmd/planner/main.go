package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/lattice-planner/pkg/costfunction"
	"github.com/lintang-b-s/lattice-planner/pkg/engine"
	"github.com/lintang-b-s/lattice-planner/pkg/http"
	"github.com/lintang-b-s/lattice-planner/pkg/http/usecases"
	"github.com/lintang-b-s/lattice-planner/pkg/logger"
	"github.com/lintang-b-s/lattice-planner/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	useRateLimit = flag.Bool("use_rate_limit", false, "rate limit the planning API per client")
)

func main() {
	flag.Parse()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		log.Warn("no config file found, using defaults", zap.Error(err))
	}
	setConfigDefaults()

	costCfg := costConfigFromViper()
	latticeCfg := latticeConfigFromViper()
	vehicle := vehicleParamFromViper()

	planner, err := engine.NewPlanner(latticeCfg, costCfg, vehicle, log)
	if err != nil {
		log.Fatal("build planner", zap.Error(err))
	}

	planningService := usecases.NewPlanningService(log, planner)

	api := http.NewServer(log)
	ctx, cancel := context.WithCancel(context.Background())
	if _, err := api.Use(ctx, log, *useRateLimit, planningService); err != nil {
		log.Fatal("start api", zap.Error(err))
	}

	sig := http.GracefulShutdown()
	log.Info("lattice planner stopped", zap.String("signal", sig.String()))
	cancel()
}

func setConfigDefaults() {
	defaults := costfunction.DefaultConfig()
	viper.SetDefault("PATH_RESOLUTION", defaults.PathResolution)
	viper.SetDefault("PATH_L_COST", defaults.PathLCost)
	viper.SetDefault("PATH_DL_COST", defaults.PathDLCost)
	viper.SetDefault("PATH_DDL_COST", defaults.PathDDLCost)
	viper.SetDefault("PATH_END_L_COST", defaults.PathEndLCost)
	viper.SetDefault("PATH_L_COST_PARAM_L0", defaults.PathLCostParamL0)
	viper.SetDefault("PATH_L_COST_PARAM_B", defaults.PathLCostParamB)
	viper.SetDefault("PATH_L_COST_PARAM_K", defaults.PathLCostParamK)
	viper.SetDefault("OBSTACLE_COLLISION_DISTANCE", defaults.ObstacleCollisionDistance)
	viper.SetDefault("OBSTACLE_COLLISION_COST", defaults.ObstacleCollisionCost)
	viper.SetDefault("OBSTACLE_IGNORE_DISTANCE", defaults.ObstacleIgnoreDistance)
	viper.SetDefault("OBSTACLE_RISK_DISTANCE", defaults.ObstacleRiskDistance)
	viper.SetDefault("EVAL_TIME_INTERVAL", defaults.EvalTimeInterval)
	viper.SetDefault("PREDICTION_TOTAL_TIME", defaults.PredictionTotalTime)
	viper.SetDefault("LATERAL_IGNORE_BUFFER", defaults.LateralIgnoreBuffer)

	latticeDefaults := engine.DefaultConfig()
	viper.SetDefault("LATTICE_STEP_LENGTH", latticeDefaults.StepLength)
	viper.SetDefault("LATTICE_LATERAL_SAMPLE_COUNT", latticeDefaults.LateralSampleCount)
	viper.SetDefault("LATTICE_LATERAL_SAMPLE_DISTANCE", latticeDefaults.LateralSampleDistance)
	viper.SetDefault("LATTICE_NUM_WORKERS", latticeDefaults.NumWorkers)

	viper.SetDefault("VEHICLE_FRONT_EDGE_TO_CENTER", 3.89)
	viper.SetDefault("VEHICLE_BACK_EDGE_TO_CENTER", 1.043)
	viper.SetDefault("VEHICLE_LEFT_EDGE_TO_CENTER", 1.055)
	viper.SetDefault("VEHICLE_RIGHT_EDGE_TO_CENTER", 1.055)
	viper.SetDefault("VEHICLE_LENGTH", 4.933)
	viper.SetDefault("VEHICLE_WIDTH", 2.11)
}

func costConfigFromViper() costfunction.Config {
	return costfunction.Config{
		PathResolution:            viper.GetFloat64("PATH_RESOLUTION"),
		PathLCost:                 viper.GetFloat64("PATH_L_COST"),
		PathDLCost:                viper.GetFloat64("PATH_DL_COST"),
		PathDDLCost:               viper.GetFloat64("PATH_DDL_COST"),
		PathEndLCost:              viper.GetFloat64("PATH_END_L_COST"),
		PathLCostParamL0:          viper.GetFloat64("PATH_L_COST_PARAM_L0"),
		PathLCostParamB:           viper.GetFloat64("PATH_L_COST_PARAM_B"),
		PathLCostParamK:           viper.GetFloat64("PATH_L_COST_PARAM_K"),
		ObstacleCollisionDistance: viper.GetFloat64("OBSTACLE_COLLISION_DISTANCE"),
		ObstacleCollisionCost:     viper.GetFloat64("OBSTACLE_COLLISION_COST"),
		ObstacleIgnoreDistance:    viper.GetFloat64("OBSTACLE_IGNORE_DISTANCE"),
		ObstacleRiskDistance:      viper.GetFloat64("OBSTACLE_RISK_DISTANCE"),
		EvalTimeInterval:          viper.GetFloat64("EVAL_TIME_INTERVAL"),
		PredictionTotalTime:       viper.GetFloat64("PREDICTION_TOTAL_TIME"),
		LateralIgnoreBuffer:       viper.GetFloat64("LATERAL_IGNORE_BUFFER"),
	}
}

func latticeConfigFromViper() engine.Config {
	return engine.Config{
		StepLength:            viper.GetFloat64("LATTICE_STEP_LENGTH"),
		LateralSampleCount:    viper.GetInt("LATTICE_LATERAL_SAMPLE_COUNT"),
		LateralSampleDistance: viper.GetFloat64("LATTICE_LATERAL_SAMPLE_DISTANCE"),
		NumWorkers:            viper.GetInt("LATTICE_NUM_WORKERS"),
	}
}

func vehicleParamFromViper() costfunction.VehicleParam {
	return costfunction.VehicleParam{
		FrontEdgeToCenter: viper.GetFloat64("VEHICLE_FRONT_EDGE_TO_CENTER"),
		BackEdgeToCenter:  viper.GetFloat64("VEHICLE_BACK_EDGE_TO_CENTER"),
		LeftEdgeToCenter:  viper.GetFloat64("VEHICLE_LEFT_EDGE_TO_CENTER"),
		RightEdgeToCenter: viper.GetFloat64("VEHICLE_RIGHT_EDGE_TO_CENTER"),
		Length:            viper.GetFloat64("VEHICLE_LENGTH"),
		Width:             viper.GetFloat64("VEHICLE_WIDTH"),
	}
}
