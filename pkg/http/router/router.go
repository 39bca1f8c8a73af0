package router

import (
	"context"
	"net/http"
	"sync"

	"github.com/lintang-b-s/lattice-planner/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/lattice-planner/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/lattice-planner/pkg/http/server"
	"github.com/spf13/viper"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	_ "net/http/pprof"
)

type API struct {
	log *zap.Logger

	limiterMu      sync.Mutex
	limiters       map[string]*rate.Limiter
	rateLimitRPS   float64
	rateLimitBurst int
}

func NewAPI(log *zap.Logger) *API {
	viper.SetDefault("API_RATE_LIMIT_RPS", 20.0)
	viper.SetDefault("API_RATE_LIMIT_BURST", 40)

	return &API{
		log:            log,
		limiters:       make(map[string]*rate.Limiter),
		rateLimitRPS:   viper.GetFloat64("API_RATE_LIMIT_RPS"),
		rateLimitBurst: viper.GetInt("API_RATE_LIMIT_BURST"),
	}
}

func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	useRateLimit bool,
	planningService controllers.PlanningService,
) error {
	api.log.Info("Run httprouter API")

	router := httprouter.New()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)

	group := router_helper.NewRouteGroup(router, "/api")
	plannerRoutes := controllers.New(planningService, api.log)
	plannerRoutes.Routes(group)

	mwChain := []alice.Constructor{
		corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log),
	}
	if useRateLimit {
		mwChain = append(mwChain, api.Limit)
	}
	mainMwChain := alice.New(mwChain...).Then(router)

	srv := http_server.New(ctx, mainMwChain, config)
	api.log.Info("API run", zap.Int("port", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		api.log.Info("HTTP server stopped", zap.Error(err))
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		_ = srv.Shutdown(context.Background())
		return ctx.Err()
	}
}
