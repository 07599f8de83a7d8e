package components

import (
	"log/slog"

	"learnhub-checkout/internal/handler"
	"learnhub-checkout/internal/handler/api"
	"learnhub-checkout/internal/handler/middleware"
	"learnhub-checkout/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCartHandler,
		api.NewCheckoutHandler,
		api.NewOrderHandler,
		api.NewEnrollmentHandler,
		middleware.NewJWTValidator,
		middleware.NewAuthMiddleware,
		func(cart *api.CartHandler, checkout *api.CheckoutHandler, orders *api.OrderHandler, enrollments *api.EnrollmentHandler) handler.Handlers {
			return handler.Handlers{Cart: cart, Checkout: checkout, Orders: orders, Enrollments: enrollments}
		},
		func(logger *slog.Logger, hm *metrics.HTTPMetrics, g prometheus.Gatherer) handler.Observability {
			return handler.Observability{Logger: logger, HTTPMetrics: hm, Gatherer: g}
		},
	),
	fx.Invoke(handler.NewRouter),
)
