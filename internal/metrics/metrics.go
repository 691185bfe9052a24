// Package metrics - Prometheus-метрики HTTP и фоновых задач
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

// Option настраивает Manager
type Option func(*Manager)

func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.buckets = buckets
		}
	}
}

// WithRegistry - свой реестр (в тестах новый на каждый Manager)
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

type Manager struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInFlight        prometheus.Gauge

	rateLimited    prometheus.Counter
	uploadedFiles  *prometheus.CounterVec
	workerAffected *prometheus.CounterVec
	workerErrors   *prometheus.CounterVec
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "fursa",
		buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"route", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   m.buckets,
	}, []string{"route", "method"})

	m.httpInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests being served",
	})

	m.rateLimited = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter",
	})

	m.uploadedFiles = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "upload",
		Name:      "files_total",
		Help:      "Uploaded media files by type",
	}, []string{"type"})

	m.workerAffected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "worker",
		Name:      "rows_affected_total",
		Help:      "Rows changed by background workers",
	}, []string{"worker"})

	m.workerErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "worker",
		Name:      "errors_total",
		Help:      "Background worker failures",
	}, []string{"worker"})

	return m
}

func (m *Manager) RequestStarted() {
	m.httpInFlight.Inc()
}

// RecordHTTPRequest; route - шаблон маршрута gin, а не фактический путь
func (m *Manager) RecordHTTPRequest(route, method string, status int, duration time.Duration) {
	m.httpInFlight.Dec()
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

func (m *Manager) RecordRateLimited() {
	m.rateLimited.Inc()
}

func (m *Manager) RecordUpload(kind string) {
	m.uploadedFiles.WithLabelValues(kind).Inc()
}

func (m *Manager) RecordWorkerRun(worker string, affected int64, err error) {
	if err != nil {
		m.workerErrors.WithLabelValues(worker).Inc()
		return
	}
	m.workerAffected.WithLabelValues(worker).Add(float64(affected))
}

func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler - /metrics
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
