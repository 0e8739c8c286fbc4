// Package metrics exposes Prometheus instrumentation for the HTTP surface and
// the model calls behind it.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "yodel"

// Generation outcomes recorded on yodel_generate_requests_total.
const (
	OutcomeOK          = "ok"
	OutcomeError       = "error"
	OutcomeDecodeError = "decode_error"
)

// Recorder owns a private registry so tests can build as many as they like.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	generateRequests *prometheus.CounterVec
	generateDuration *prometheus.HistogramVec
	audioBytes       *prometheus.HistogramVec
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	auto := promauto.With(reg)

	return &Recorder{
		registry: reg,
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		httpDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		generateRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generate_requests_total",
			Help:      "Model API calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		generateDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generate_duration_seconds",
			Help:      "Model API call latency.",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 30, 60, 120},
		}, []string{"operation"}),
		audioBytes: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "audio_bytes",
			Help:      "Size of decoded recordings sent to the model.",
			Buckets:   prometheus.ExponentialBuckets(64*1024, 2, 10),
		}, []string{"operation"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveGenerate(operation, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.generateRequests.WithLabelValues(operation, outcome).Inc()
	r.generateDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveAudio(operation string, size int) {
	if r == nil {
		return
	}
	r.audioBytes.WithLabelValues(operation).Observe(float64(size))
}
