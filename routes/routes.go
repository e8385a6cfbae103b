package routes

import (
	"delivery-management-api/auth"
	"delivery-management-api/handlers"
	"delivery-management-api/metrics"
	"delivery-management-api/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Deps struct {
	Handler  *handlers.Handler
	Tokens   *auth.TokenManager
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
}

// NewRouter builds the engine with the middleware chain and every endpoint
func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}))

	h := d.Handler

	// ── Public routes ──────────────────────────────────────────────
	r.GET("/health", h.Health)
	r.GET("/", h.Welcome)
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	public := r.Group("/api")
	{
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)
		public.GET("/route-lifecycle", h.RouteLifecycle)
	}

	// ── Authenticated routes, checked against Permissions ─────────
	api := r.Group("/api")
	api.Use(middleware.AuthRequired(d.Tokens), middleware.Authorize(Permissions))
	{
		api.POST("/drivers", h.CreateDriver)
		api.GET("/drivers", h.ListDrivers)
		api.GET("/drivers/:id", h.GetDriver)
		api.PUT("/drivers/:id", h.UpdateDriver)
		api.DELETE("/drivers/:id", h.DeleteDriver)
		api.GET("/drivers/:id/payment", h.DriverPayment)

		api.POST("/orders", h.CreateOrder)
		api.GET("/orders", h.ListOrders)
		api.GET("/orders/:id", h.GetOrder)
		api.PUT("/orders/:id", h.UpdateOrder)
		api.DELETE("/orders/:id", h.DeleteOrder)

		api.POST("/routes", h.CreateRoute)
		api.GET("/routes", h.ListRoutes)
		api.GET("/routes/:id", h.GetRoute)
		api.PUT("/routes/:id", h.UpdateRoute)
		api.DELETE("/routes/:id", h.DeleteRoute)
		api.POST("/routes/:id/steps", h.AddRouteStep)
	}

	return r
}
