package http

import (
	"net/http"
	"time"

	"github.com/fjod/go_shop/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Shop is the part of the shop service the gateway serves.
type Shop interface {
	catalogProvider
	customerService
	cartService
	checkoutService
	ordersService
}

type RouterConfig struct {
	Shop               Shop
	Invoices           invoiceProvider
	Gatherer           prometheus.Gatherer
	Metrics            *metrics.ServerMetrics
	Logger             *zap.Logger
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
}

// NewRouter wires the gateway routes and middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	productHandler := NewProductHandler(cfg.Shop, cfg.Logger)
	customerHandler := NewCustomerHandler(cfg.Shop, cfg.Logger)
	cartHandler := NewCartHandler(cfg.Shop, cfg.RequestTimeout, cfg.Logger)
	checkoutHandler := NewCheckoutHandler(cfg.Shop, cfg.RequestTimeout, cfg.Logger)
	ordersHandler := NewOrdersHandler(cfg.Shop, cfg.Invoices, cfg.RequestTimeout, cfg.Logger)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(MetricsMiddleware(cfg.Metrics))
	}
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	if cfg.MaxRequestBodySize > 0 {
		r.Use(middleware.RequestSize(cfg.MaxRequestBodySize))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, cfg.Logger, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(cfg.Gatherer))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(CustomerAuthMiddleware(cfg.Shop, cfg.Logger))

		r.Route("/customer", func(r chi.Router) {
			r.Get("/", customerHandler.Get)
			r.Put("/address", customerHandler.UpdateAddress)
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{product_id}", productHandler.Get)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})
		r.Post("/checkout", checkoutHandler.Checkout)
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.ListOrders)
			r.Get("/{order_id}", ordersHandler.GetOrder)
			r.Get("/{order_id}/invoice", ordersHandler.GetInvoice)
		})
	})

	return otelhttp.NewHandler(r, "go_shop.gateway")
}
