package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/infra/httpx/middlewares"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/metrics"
)

// NewRouter wires the gateway routes. reg may be nil, in which case no
// metrics are recorded and /metrics is not served.
func NewRouter(handler *Handler, reg *metrics.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachTracingMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if reg != nil {
		r.Use(middlewares.Metrics(reg))
		r.Method(http.MethodGet, "/metrics", reg.Handler())
	}

	r.Post("/products", handler.CreateProduct)
	r.Get("/products/{product_id}", handler.GetProduct)
	r.Delete("/products/{product_id}", handler.DeleteProduct)

	r.Get("/orders", handler.ListOrders)
	r.Get("/orders/all", handler.ListOrders)
	r.Post("/orders", handler.CreateOrder)
	r.Get("/orders/{order_id:[0-9]+}", handler.GetOrder)

	return otelhttp.NewHandler(r, "api-gateway")
}
