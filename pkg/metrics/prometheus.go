// Package metrics provides Prometheus metrics for the batting leaderboards.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values used by callers.
const (
	StatusOK    = "ok"
	StatusError = "error"

	KindYear   = "year"
	KindCareer = "career"
)

// Manager manages all Prometheus metrics for the leaderboard queries.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Query metrics
	queriesTotal  *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	rankedEntries *prometheus.GaugeVec

	// Table metrics
	rowsLoaded        *prometheus.CounterVec
	tableLoadDuration *prometheus.HistogramVec
	playersAggregated prometheus.Gauge

	// Error metrics
	errorsByKind *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "batting",
		subsystem:        "leaderboard",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.queriesTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "queries_total",
		Help:        "Total number of leaderboard queries by kind and outcome",
		ConstLabels: labels,
	}, []string{"kind", "status"})

	m.queryDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "query_duration_milliseconds",
		Help:        "Leaderboard query duration in milliseconds, table loading included",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"kind"})

	m.rankedEntries = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "ranked_entries",
		Help:        "Number of entries returned by the last query of each kind",
		ConstLabels: labels,
	}, []string{"kind"})

	m.rowsLoaded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "table_rows_loaded_total",
		Help:        "Total number of rows read from each table",
		ConstLabels: labels,
	}, []string{"table"})

	m.tableLoadDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "table_load_duration_milliseconds",
		Help:        "Time spent reading a table in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"table"})

	m.playersAggregated = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "players_aggregated",
		Help:        "Number of distinct players in the last career aggregation",
		ConstLabels: labels,
	})

	m.errorsByKind = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_total",
		Help:        "Total number of errors by component and kind",
		ConstLabels: labels,
	}, []string{"component", "kind"})
}

// RecordQuery counts a finished query of kind with status.
func (m *Manager) RecordQuery(kind, status string) {
	if m.enabled {
		m.queriesTotal.WithLabelValues(kind, status).Inc()
	}
}

// RecordQueryLatency records query latency in milliseconds.
func (m *Manager) RecordQueryLatency(kind string, latencyMs float64) {
	if m.enabled {
		m.queryDuration.WithLabelValues(kind).Observe(latencyMs)
	}
}

// UpdateRankedEntries sets the number of entries returned by a query.
func (m *Manager) UpdateRankedEntries(kind string, count int) {
	if m.enabled {
		m.rankedEntries.WithLabelValues(kind).Set(float64(count))
	}
}

// RecordRowsLoaded adds count rows read from table.
func (m *Manager) RecordRowsLoaded(table string, count int) {
	if m.enabled {
		m.rowsLoaded.WithLabelValues(table).Add(float64(count))
	}
}

// RecordTableLoadLatency records table load latency in milliseconds.
func (m *Manager) RecordTableLoadLatency(table string, latencyMs float64) {
	if m.enabled {
		m.tableLoadDuration.WithLabelValues(table).Observe(latencyMs)
	}
}

// UpdatePlayersAggregated sets the number of players in a career aggregation.
func (m *Manager) UpdatePlayersAggregated(count int) {
	if m.enabled {
		m.playersAggregated.Set(float64(count))
	}
}

// RecordErrorByKind counts an error of kind raised by component.
func (m *Manager) RecordErrorByKind(component, kind string) {
	if m.enabled {
		m.errorsByKind.WithLabelValues(component, kind).Inc()
	}
}

// RecordQuery increments the global query counter.
func RecordQuery(kind, status string) {
	globalManager.RecordQuery(kind, status)
}

// RecordQueryLatency records query latency in milliseconds.
func RecordQueryLatency(kind string, latencyMs float64) {
	globalManager.RecordQueryLatency(kind, latencyMs)
}

// UpdateRankedEntries sets the number of entries returned by a query.
func UpdateRankedEntries(kind string, count int) {
	globalManager.UpdateRankedEntries(kind, count)
}

// RecordRowsLoaded adds count rows read from table.
func RecordRowsLoaded(table string, count int) {
	globalManager.RecordRowsLoaded(table, count)
}

// RecordTableLoadLatency records table load latency in milliseconds.
func RecordTableLoadLatency(table string, latencyMs float64) {
	globalManager.RecordTableLoadLatency(table, latencyMs)
}

// UpdatePlayersAggregated sets the number of players in a career aggregation.
func UpdatePlayersAggregated(count int) {
	globalManager.UpdatePlayersAggregated(count)
}

// RecordErrorByKind counts an error of kind raised by component.
func RecordErrorByKind(component, kind string) {
	globalManager.RecordErrorByKind(component, kind)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the current metrics to path in the text exposition
// format, suitable for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
