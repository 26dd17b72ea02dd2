package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PageRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "systemet_page_requests_total",
			Help: "Product page requests by outcome.",
		},
		[]string{"outcome"},
	)
	PageDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "systemet_page_duration_seconds",
			Help:    "Time to read the catalog and render the product page.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
	)
	ProductsRendered = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "systemet_products_rendered",
			Help: "Rows in the most recently rendered product page.",
		},
	)
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "systemet_http_requests_total",
			Help: "HTTP requests by method, path and status class.",
		},
		[]string{"method", "path", "status"},
	)
)

// Outcomes for PageRequestsTotal.
const (
	OutcomeOK              = "ok"
	OutcomeDataUnavailable = "data_unavailable"
	OutcomeQueryError      = "query_error"
	OutcomeRenderError     = "render_error"
)

func init() {
	prometheus.MustRegister(PageRequestsTotal, PageDuration, ProductsRendered, HTTPRequestsTotal)
}

// RecordPage records one product page pass.
func RecordPage(outcome string, rows int, duration time.Duration) {
	PageRequestsTotal.WithLabelValues(outcome).Inc()
	PageDuration.Observe(duration.Seconds())
	if outcome == OutcomeOK {
		ProductsRendered.Set(float64(rows))
	}
}

func RecordRequest(method, path string, statusCode int) {
	HTTPRequestsTotal.WithLabelValues(method, path, classifyStatus(statusCode)).Inc()
}

func classifyStatus(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500 && statusCode < 600:
		return "5xx"
	}
	return "unknown"
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// NewServer returns the metrics listener for port. The caller starts and
// stops it alongside the page server.
func NewServer(port string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	return &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
