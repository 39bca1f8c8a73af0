package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	http_router "github.com/lintang-b-s/lattice-planner/pkg/http/router"
	"github.com/lintang-b-s/lattice-planner/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/lattice-planner/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,
	useRateLimit bool,
	planningService controllers.PlanningService,
) (*Server, error) {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "60s")

	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}

	api := http_router.NewAPI(log)

	g := errgroup.Group{}
	g.Go(func() error {
		return api.Run(ctx, config, useRateLimit, planningService)
	})

	return s, nil
}

// GracefulShutdown blocks until SIGINT/SIGTERM.
func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	return <-quit
}
