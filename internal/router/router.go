package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	appointmentHandler "github.com/openvet/clinic-api/internal/handler/appointment"
	authHandler "github.com/openvet/clinic-api/internal/handler/auth"
	clientHandler "github.com/openvet/clinic-api/internal/handler/client"
	healthHandler "github.com/openvet/clinic-api/internal/handler/health"
	petHandler "github.com/openvet/clinic-api/internal/handler/pet"
	productHandler "github.com/openvet/clinic-api/internal/handler/product"
	staffHandler "github.com/openvet/clinic-api/internal/handler/staff"
	"github.com/openvet/clinic-api/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health      *healthHandler.Handler
	Auth        *authHandler.Handler
	Client      *clientHandler.Handler
	Pet         *petHandler.Handler
	Staff       *staffHandler.Handler
	Product     *productHandler.Handler
	Appointment *appointmentHandler.Handler
}

type Config struct {
	RateLimit rate.Limit
	RateBurst int
	Timeout   time.Duration
	CORS      middleware.CORSConfig
}

type Router struct {
	engine *gin.Engine
	auth   *middleware.AuthMiddleware
	h      Handlers
}

func NewRouter(auth *middleware.AuthMiddleware, h Handlers, cfg Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	if cfg.Timeout == 0 {
		cfg.Timeout = middleware.DefaultTimeoutConfig().Duration
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorLogger(),
		middleware.Metrics(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: cfg.Timeout}),
		middleware.CORS(cfg.CORS),
	)

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  cfg.RateLimit,
			Burst: cfg.RateBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	return &Router{engine: engine, auth: auth, h: h}
}

func (r *Router) Setup() {
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.h.Health.RegisterRoutes(r.engine)

	api := r.engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.h.Auth.RegisterPublicRoutes(api)

	protected := api.Group("", r.auth.Authenticate())
	r.h.Auth.RegisterRoutes(protected, r.auth)
	r.h.Client.RegisterRoutes(protected, r.auth)
	r.h.Pet.RegisterRoutes(protected, r.auth)
	r.h.Staff.RegisterRoutes(protected, r.auth)
	r.h.Product.RegisterRoutes(protected, r.auth)
	r.h.Appointment.RegisterRoutes(protected, r.auth)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
