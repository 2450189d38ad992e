package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments exposed on /metrics. Each Metrics
// value carries its own registry so that repeated construction (tests, REPL
// restarts) never trips duplicate registration.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	activeRequests prometheus.Gauge
	requestsTotal  *prometheus.CounterVec

	activeWorkers prometheus.Gauge
	runsTotal     *prometheus.CounterVec
	lostUpdates   *prometheus.GaugeVec
	runDuration   *prometheus.HistogramVec
}

// NewMetrics creates the metric set and its HTTP handler.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(reg)
	m := &Metrics{
		registry: reg,
		activeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Name: "racedemo_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "racedemo_requests_total",
			Help: "Total HTTP requests served, by path.",
		}, []string{"path"}),
		activeWorkers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "racedemo_active_workers",
			Help: "Number of increment workers currently running.",
		}),
		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "racedemo_runs_total",
			Help: "Completed demonstration runs, by counter strategy.",
		}, []string{"strategy"}),
		lostUpdates: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "racedemo_lost_updates",
			Help: "Increments lost in the most recent run, by counter strategy.",
		}, []string{"strategy"}),
		runDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "racedemo_run_duration_seconds",
			Help:    "Wall time of demonstration runs, by counter strategy.",
			Buckets: prometheus.DefBuckets,
		}, []string{"strategy"}),
	}
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests increments the in-flight HTTP request gauge.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests decrements the in-flight HTTP request gauge.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// CountRequest increments the per-path request counter.
func (m *Metrics) CountRequest(path string) {
	m.requestsTotal.WithLabelValues(path).Inc()
}

// SetActiveWorkers records the current worker count.
func (m *Metrics) SetActiveWorkers(n int) {
	m.activeWorkers.Set(float64(n))
}

// RecordRun records the outcome of one demonstration run.
func (m *Metrics) RecordRun(strategy string, durationSeconds float64, lost int64) {
	m.runsTotal.WithLabelValues(strategy).Inc()
	m.lostUpdates.WithLabelValues(strategy).Set(float64(lost))
	m.runDuration.WithLabelValues(strategy).Observe(durationSeconds)
}

// WritePrometheus serves the metrics in Prometheus text exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
