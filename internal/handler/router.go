package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"learnhub-checkout/internal/handler/api"
	"learnhub-checkout/internal/handler/middleware"
	"learnhub-checkout/internal/pkg/config"
	"learnhub-checkout/internal/pkg/metrics"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

type Handlers struct {
	Cart        *api.CartHandler
	Checkout    *api.CheckoutHandler
	Orders      *api.OrderHandler
	Enrollments *api.EnrollmentHandler
}

type Observability struct {
	Logger      *slog.Logger
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, obs Observability, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, obs)
	setupRoutes(engine, h, obs, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, obs Observability) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.RequestLogger(obs.Logger))
	engine.Use(middleware.HTTPMetrics(obs.HTTPMetrics))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, obs Observability, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)
	if obs.Gatherer != nil {
		engine.GET("/metrics", gin.WrapH(metrics.Handler(obs.Gatherer)))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		cart := apiGroup.Group("/cart")
		addRoutes(cart, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Cart.Get},
			{Method: http.MethodPost, Path: "/items", Handler: h.Cart.Add},
			{Method: http.MethodDelete, Path: "/items/:id", Handler: h.Cart.Remove},
		})

		addRoutes(apiGroup.Group("/discounts"), []route{
			{Method: http.MethodPost, Path: "/preview", Handler: h.Cart.PreviewDiscount},
		})

		checkout := apiGroup.Group("/checkout")
		addRoutes(checkout, []route{
			{Method: http.MethodPost, Path: "/orders", Handler: h.Checkout.CreateOrder},
			{Method: http.MethodPost, Path: "/orders/:id/outcome", Handler: h.Checkout.DeliverOutcome},
		})

		addRoutes(apiGroup.Group("/payments"), []route{
			{Method: http.MethodPost, Path: "/verify", Handler: h.Checkout.Verify},
		})

		orders := apiGroup.Group("/orders")
		addRoutes(orders, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Orders.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Orders.Get},
			{Method: http.MethodPost, Path: "/:id/provision", Handler: h.Orders.RetryProvisioning},
		})

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/enrollments", Handler: h.Enrollments.List},
			{Method: http.MethodGet, Path: "/courses/:id/access", Handler: h.Enrollments.Access},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		g.Handle(r.Method, r.Path, r.Handler)
	}
}
