// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login outcomes.
const (
	LoginSuccess = "success"
	LoginInvalid = "invalid"
	LoginError   = "error"
)

// Project mutation results.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

// Metrics holds the application's collectors. A nil *Metrics is valid and
// records nothing.
//
// Metrics:
//   - ayyavu_http_requests_total{method,route,status}
//   - ayyavu_http_request_duration_seconds{method,route}
//   - ayyavu_login_attempts_total{outcome}
//   - ayyavu_project_mutations_total{operation,result}
//   - ayyavu_upload_bytes_total
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	LoginAttemptsTotal    *prometheus.CounterVec
	ProjectMutationsTotal *prometheus.CounterVec
	UploadBytesTotal      prometheus.Counter
}

// New creates the collectors on a private registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ayyavu_http_requests_total",
				Help: "Total number of HTTP requests by route and status code",
			},
			[]string{"method", "route", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ayyavu_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		LoginAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ayyavu_login_attempts_total",
				Help: "Total number of admin login attempts by outcome",
			},
			[]string{"outcome"}, // success, invalid, error
		),

		ProjectMutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ayyavu_project_mutations_total",
				Help: "Total number of project create, update and delete calls by result",
			},
			[]string{"operation", "result"},
		),

		UploadBytesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ayyavu_upload_bytes_total",
				Help: "Total bytes of attachments written to the uploads directory",
			},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordLogin counts a login attempt.
func (m *Metrics) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.LoginAttemptsTotal.WithLabelValues(outcome).Inc()
}

// RecordMutation counts a project create, update or delete.
func (m *Metrics) RecordMutation(operation, result string) {
	if m == nil {
		return
	}
	m.ProjectMutationsTotal.WithLabelValues(operation, result).Inc()
}

// AddUploadBytes adds to the written-attachment byte counter.
func (m *Metrics) AddUploadBytes(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.UploadBytesTotal.Add(float64(n))
}
