// Package monitoring exports analytics query metrics to Prometheus.
package monitoring

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tegorov/flipt/internal/pkg/analytics"
	"github.com/tegorov/flipt/internal/pkg/logger"
)

// Query outcomes used as the "outcome" label
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeCancelled = "cancelled"
)

// PrometheusExporter records orchestrator events and serves them on /metrics
type PrometheusExporter struct {
	enabled  atomic.Bool
	registry *prometheus.Registry
	port     int

	mu     sync.Mutex
	server *http.Server

	queriesTotal   *prometheus.CounterVec
	queryDuration  *prometheus.HistogramVec
	queriesActive  prometheus.Gauge
	staleDiscarded prometheus.Counter
}

var _ analytics.Observer = (*PrometheusExporter)(nil)

// NewPrometheusExporter creates an exporter with its metrics registered.
// Nothing is served until Enable is called.
func NewPrometheusExporter(port int) *PrometheusExporter {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	p := &PrometheusExporter{
		registry: registry,
		port:     port,
		queriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flipt_analytics_queries_total",
				Help: "Evaluation count queries by namespace, flag and outcome",
			},
			[]string{"namespace", "flag", "outcome"},
		),
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flipt_analytics_query_duration_seconds",
				Help:    "Evaluation count query latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		queriesActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "flipt_analytics_queries_in_flight",
			Help: "Evaluation count queries currently in flight",
		}),
		staleDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flipt_analytics_stale_results_total",
			Help: "Query results dropped because a newer query superseded them",
		}),
	}

	registry.MustRegister(p.queriesTotal, p.queryDuration, p.queriesActive, p.staleDiscarded)
	return p
}

// Registry exposes the exporter's registry
func (p *PrometheusExporter) Registry() *prometheus.Registry {
	return p.registry
}

// Enable starts the metrics server
func (p *PrometheusExporter) Enable() error {
	if p.enabled.Load() {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	mux.HandleFunc("/health", p.healthHandler)

	p.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", p.port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	server := p.server
	go func() {
		logger.Info("Starting Prometheus metrics server", "port", p.port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Prometheus server error", "error", err)
		}
	}()

	p.enabled.Store(true)
	return nil
}

// Disable stops the metrics server
func (p *PrometheusExporter) Disable() error {
	if !p.enabled.Load() {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := p.server.Shutdown(ctx); err != nil {
			logger.Error("Error shutting down Prometheus server", "error", err)
		}
		p.server = nil
	}

	p.enabled.Store(false)
	return nil
}

// IsEnabled returns whether the metrics server is running
func (p *PrometheusExporter) IsEnabled() bool {
	return p.enabled.Load()
}

func (p *PrometheusExporter) healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if p.enabled.Load() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte(`{"status":"disabled"}`))
}

// QueryStarted implements analytics.Observer
func (p *PrometheusExporter) QueryStarted(analytics.Query) {
	p.queriesActive.Inc()
}

// QueryFinished implements analytics.Observer
func (p *PrometheusExporter) QueryFinished(q analytics.Query, elapsed time.Duration, err error) {
	p.queriesActive.Dec()

	outcome := outcomeOf(err)
	p.queriesTotal.WithLabelValues(q.NamespaceKey, q.FlagKey, outcome).Inc()
	p.queryDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// StaleDiscarded implements analytics.Observer
func (p *PrometheusExporter) StaleDiscarded(analytics.Query) {
	p.staleDiscarded.Inc()
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, context.Canceled):
		return OutcomeCancelled
	default:
		return OutcomeError
	}
}
