package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP-level Prometheus metrics for the application.
// Feature counters live in their own metrics packages.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers the HTTP metrics.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "memberlist_http_request_duration_seconds",
			Help:    "HTTP request latency by method, path and status code",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

// ObserveRequest records a single request observation.
func (m *Metrics) ObserveRequest(method, path, status string, seconds float64) {
	m.RequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}
