package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the HTTP-level instrumentation for the vault service
type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// sanitizeNamespace maps a service name onto the character set prometheus
// accepts for metric names ([a-zA-Z_:][a-zA-Z0-9_:]*).
func sanitizeNamespace(serviceName string) string {
	ns := []byte(serviceName)
	for i, c := range ns {
		valid := c == '_' || c == ':' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9' && i > 0)
		if !valid {
			ns[i] = '_'
		}
	}
	return string(ns)
}

// New creates and registers the metric set. The service name is sanitized
// so names like "cred-vault" do not trip MustRegister at startup.
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	namespace := sanitizeNamespace(serviceName)

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestTotal, requestDuration)

	return &Metrics{
		registry:        registry,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
	}
}

// ObserveRequest records one handled request
func (m *Metrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	m.requestTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler returns the scrape endpoint handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
