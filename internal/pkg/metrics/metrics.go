package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns the gateway's collectors. A private prometheus.Registry keeps
// tests isolated from the global default registry.
type Registry struct {
	reg *prometheus.Registry

	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	CatalogBatches   prometheus.Counter
	CatalogBatchSize prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_http_requests_total",
		Help: "HTTP requests served, by route pattern, method and status code.",
	}, []string{"route", "method", "status"})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gateway_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	batches := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_catalog_batch_lookups_total",
		Help: "Batched product lookups issued to the catalog.",
	})
	batchSize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "gateway_catalog_batch_size",
		Help:    "Distinct product ids per batched lookup.",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
	})

	r.MustRegister(
		httpRequests, httpDuration, batches, batchSize,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Registry{
		reg:              r,
		HTTPRequests:     httpRequests,
		HTTPDuration:     httpDuration,
		CatalogBatches:   batches,
		CatalogBatchSize: batchSize,
	}
}

// ObserveBatch records one batched catalog lookup of size ids.
func (r *Registry) ObserveBatch(ids int) {
	if r == nil {
		return
	}
	r.CatalogBatches.Inc()
	r.CatalogBatchSize.Observe(float64(ids))
}

// ObserveHTTP records a finished request.
func (r *Registry) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
