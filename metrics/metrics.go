package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	// RequestsTotal counts finished HTTP requests.
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fileaggregator",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, labeled by service, route and status.",
	}, []string{"service", "route", "status"})

	// RequestDurationSeconds includes the whole lifetime of streamed responses.
	RequestDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fileaggregator",
		Name:      "http_request_duration_seconds",
		Help:      "Time from request start until the response is complete.",
		Buckets:   []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"service", "route"})

	RelayFragmentsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fileaggregator",
		Subsystem: "relay",
		Name:      "fragments_total",
		Help:      "Total number of generated text fragments forwarded to clients.",
	})

	// RelayStreamsTotal counts finished streams by outcome: done, error or canceled.
	RelayStreamsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fileaggregator",
		Subsystem: "relay",
		Name:      "streams_total",
		Help:      "Total number of meta-prompt streams, labeled by outcome.",
	}, []string{"outcome"})

	AuthRejectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fileaggregator",
		Subsystem: "auth",
		Name:      "rejections_total",
		Help:      "Total number of requests rejected by the auth gate, labeled by reason.",
	}, []string{"reason"})

	FSOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fileaggregator",
		Subsystem: "fs",
		Name:      "operations_total",
		Help:      "Total number of filesystem queries, labeled by operation and result.",
	}, []string{"op", "result"})
)

// Register registers all collectors with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			RequestsTotal,
			RequestDurationSeconds,
			RelayFragmentsTotal,
			RelayStreamsTotal,
			AuthRejectionsTotal,
			FSOperationsTotal,
		)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}

func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
