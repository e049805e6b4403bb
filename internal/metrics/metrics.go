// Package metrics provides Prometheus metrics for huntstore
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for huntstore
type Metrics struct {
	// Validation metrics
	ValidationsTotal *prometheus.CounterVec
	ValidationErrors *prometheus.CounterVec
	HealthScore      *prometheus.GaugeVec

	// Migration metrics
	MigrationsTotal   *prometheus.CounterVec
	MigrationDuration *prometheus.HistogramVec

	// Backend store metrics
	BackendOpsTotal   *prometheus.CounterVec
	BackendOpDuration *prometheus.HistogramVec
	ConflictsTotal    prometheus.Counter

	// Registry metrics
	WriteBacksTotal  *prometheus.CounterVec
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	// Process metrics
	UptimeSeconds prometheus.Gauge
	StartTime     time.Time
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	m := &Metrics{
		StartTime: time.Now(),
	}

	m.ValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "huntstore_validations_total",
			Help: "Total number of document validations",
		},
		[]string{"kind", "status"},
	)

	m.ValidationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "huntstore_validation_errors_total",
			Help: "Total number of validation errors by code",
		},
		[]string{"kind", "code"},
	)

	m.HealthScore = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "huntstore_document_health_score",
			Help: "Health score of the most recently checked document per kind",
		},
		[]string{"kind"},
	)

	m.MigrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "huntstore_migrations_total",
			Help: "Total number of document migrations",
		},
		[]string{"kind", "status"},
	)

	m.MigrationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "huntstore_migration_duration_seconds",
			Help:    "Duration of document migrations in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"kind"},
	)

	m.BackendOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "huntstore_backend_operations_total",
			Help: "Total number of backend store operations",
		},
		[]string{"operation", "status"},
	)

	m.BackendOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "huntstore_backend_operation_duration_seconds",
			Help:    "Duration of backend store operations in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	m.ConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "huntstore_write_conflicts_total",
			Help: "Total number of optimistic concurrency conflicts",
		},
	)

	m.WriteBacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "huntstore_migration_writebacks_total",
			Help: "Total number of post-migration write-backs",
		},
		[]string{"status"},
	)

	m.CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "huntstore_cache_hits_total",
			Help: "Total number of validated-document cache hits",
		},
	)

	m.CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "huntstore_cache_misses_total",
			Help: "Total number of validated-document cache misses",
		},
	)

	m.UptimeSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "huntstore_uptime_seconds",
			Help: "Process uptime in seconds",
		},
	)

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime periodically updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.UptimeSeconds.Set(time.Since(m.StartTime).Seconds())
	}
}

// RecordValidation records a validation outcome. Safe on a nil receiver so
// library callers without metrics pay nothing.
func (m *Metrics) RecordValidation(kind, status string) {
	if m == nil {
		return
	}
	m.ValidationsTotal.WithLabelValues(kind, status).Inc()
}

// RecordValidationError records one validation error by code
func (m *Metrics) RecordValidationError(kind, code string) {
	if m == nil {
		return
	}
	m.ValidationErrors.WithLabelValues(kind, code).Inc()
}

// RecordHealthScore records the health score of a checked document
func (m *Metrics) RecordHealthScore(kind string, score int) {
	if m == nil {
		return
	}
	m.HealthScore.WithLabelValues(kind).Set(float64(score))
}

// RecordMigration records a migration outcome with its duration
func (m *Metrics) RecordMigration(kind, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.MigrationsTotal.WithLabelValues(kind, status).Inc()
	m.MigrationDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordBackendOp records a backend store operation
func (m *Metrics) RecordBackendOp(operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.BackendOpsTotal.WithLabelValues(operation, status).Inc()
	m.BackendOpDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordConflict records an optimistic concurrency conflict
func (m *Metrics) RecordConflict() {
	if m == nil {
		return
	}
	m.ConflictsTotal.Inc()
}

// RecordWriteBack records a post-migration write-back outcome
func (m *Metrics) RecordWriteBack(status string) {
	if m == nil {
		return
	}
	m.WriteBacksTotal.WithLabelValues(status).Inc()
}

// RecordCacheHit records a validated-document cache hit
func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

// RecordCacheMiss records a validated-document cache miss
func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMissesTotal.Inc()
}
