// Package observability exposes Prometheus metrics for catalog operations.
package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/errors"
)

// Operation outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Entity kinds tracked by the entities gauge.
const (
	KindActivity = "activity"
	KindCategory = "category"
	KindProduct  = "product"
	KindRating   = "rating"
)

// Metrics holds the catalog collectors on a private registry, so several
// catalogs in one process (or test) never collide.
type Metrics struct {
	registry *prometheus.Registry

	operations *prometheus.CounterVec
	rejections *prometheus.CounterVec
	entities   *prometheus.GaugeVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates and registers the catalog collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "operations_total",
			Help:      "Number of catalog operations, labeled by operation and outcome.",
		}, []string{"operation", "outcome"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "rejections_total",
			Help:      "Number of rejected catalog writes, labeled by error code.",
		}, []string{"code"}),
		entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "catalog",
			Name:      "entities",
			Help:      "Number of entities currently held in the catalog, labeled by kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "catalog",
			Name:      "operation_duration_seconds",
			Help:      "Time spent in catalog operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"operation"}),
	}

	m.registry.MustRegister(m.operations, m.rejections, m.entities, m.duration)
	return m
}

// Registry returns the registry holding the catalog collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveOperation records the outcome and latency of one operation.
// Domain rule violations count as rejections under their error code.
func (m *Metrics) ObserveOperation(operation string, started time.Time, err error) {
	m.duration.WithLabelValues(operation).Observe(time.Since(started).Seconds())

	code := errors.CodeOf(err)
	switch {
	case err == nil:
		m.operations.WithLabelValues(operation, OutcomeOK).Inc()
	case code.IsRuleViolation():
		m.operations.WithLabelValues(operation, OutcomeRejected).Inc()
		m.rejections.WithLabelValues(string(code)).Inc()
	default:
		m.operations.WithLabelValues(operation, OutcomeError).Inc()
	}
}

// SetEntities records the current number of entities of kind.
func (m *Metrics) SetEntities(kind string, n int) {
	m.entities.WithLabelValues(kind).Set(float64(n))
}

// AddEntities adds delta to the entity count of kind.
func (m *Metrics) AddEntities(kind string, delta int) {
	m.entities.WithLabelValues(kind).Add(float64(delta))
}

// WriteTextfile writes every collector to path in the text exposition format
// read by the node exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
