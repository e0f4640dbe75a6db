package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	addresshandler "github.com/zahrafashion/storefront/internal/address/handler/http"
	addresssvc "github.com/zahrafashion/storefront/internal/address/service"
	carthandler "github.com/zahrafashion/storefront/internal/cart/handler/http"
	cartsvc "github.com/zahrafashion/storefront/internal/cart/service"
	checkouthandler "github.com/zahrafashion/storefront/internal/checkout/handler/http"
	checkoutsvc "github.com/zahrafashion/storefront/internal/checkout/service"
	"github.com/zahrafashion/storefront/internal/config"
	orderdomain "github.com/zahrafashion/storefront/internal/order/domain"
	orderhandler "github.com/zahrafashion/storefront/internal/order/handler/http"
	ordersvc "github.com/zahrafashion/storefront/internal/order/service"
	paymenthandler "github.com/zahrafashion/storefront/internal/payment/handler/http"
	paymentsvc "github.com/zahrafashion/storefront/internal/payment/service"
	shippinghandler "github.com/zahrafashion/storefront/internal/shipping/handler/http"
	shippingsvc "github.com/zahrafashion/storefront/internal/shipping/service"
	"github.com/zahrafashion/storefront/pkg/health"
	"github.com/zahrafashion/storefront/pkg/middleware"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Config          *config.Config
	Logger          *slog.Logger
	Health          *health.Handler
	TokenValidator  middleware.TokenValidator
	CartService     *cartsvc.CartService
	AddressService  *addresssvc.AddressService
	PaymentService  *paymentsvc.PaymentMethodService
	ShippingService *shippingsvc.Resolver
	CheckoutService *checkoutsvc.CheckoutService
	OrderService    *ordersvc.OrderService
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = deps.Config.CORSAllowedOrigins
	corsCfg.Environment = deps.Config.Environment
	corsCfg.AllowCredentials = true
	r.Use(middleware.CORS(corsCfg))

	// Health check endpoints
	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	cartHandler := carthandler.NewCartHandler(deps.CartService, logger)
	addressHandler := addresshandler.NewAddressHandler(deps.AddressService, logger)
	paymentHandler := paymenthandler.NewPaymentMethodHandler(deps.PaymentService, logger)
	shippingHandler := shippinghandler.NewShippingHandler(deps.ShippingService, logger)
	checkoutHandler := checkouthandler.NewCheckoutHandler(deps.CheckoutService, logger)
	orderHandler := orderhandler.NewOrderHandler(deps.OrderService, logger)

	auth := middleware.Auth(deps.TokenValidator)

	r.Route("/api/v1", func(r chi.Router) {
		// Shipping rate lookup is usable pre-login for cost estimates.
		r.Route("/shipping", shippingHandler.Routes)

		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Route("/cart", cartHandler.Routes)
			r.Route("/addresses", addressHandler.Routes)
			r.Route("/payment-methods", paymentHandler.Routes)
			r.Route("/checkout", checkoutHandler.Routes)
			r.Route("/orders", orderHandler.Routes)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth)
			r.Use(middleware.RequireRole(orderdomain.RoleOwner, orderdomain.RoleAdmin))

			r.Route("/payment-methods", paymentHandler.AdminRoutes)
			r.Route("/orders", orderHandler.AdminRoutes)
		})
	})

	return r
}
