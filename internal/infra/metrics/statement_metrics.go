// Package metrics provides the prometheus instrumentation of the statement engine.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ventureboard/backend/internal/application/adapter"
)

// StatementMetrics implements adapter.MetricsRecorder on prometheus collectors.
type StatementMetrics struct {
	recalculations      *prometheus.CounterVec
	recalculationTiming prometheus.Histogram
	consolidations      *prometheus.CounterVec
	orphans             prometheus.Gauge
	maintenanceRows     *prometheus.CounterVec
}

// NewStatementMetrics creates the collectors and registers them with registerer.
// A nil registerer uses the prometheus default registry.
func NewStatementMetrics(registerer prometheus.Registerer) *StatementMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &StatementMetrics{
		recalculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ventureboard_statement_recalculations_total",
			Help: "Statement recalculations by result.",
		}, []string{"result"}),
		recalculationTiming: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ventureboard_statement_recalculation_duration_seconds",
			Help:    "Time to fold a company ledger and replace its stored statements.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		consolidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ventureboard_consolidation_runs_total",
			Help: "Consolidation runs by validation outcome.",
		}, []string{"valid"}),
		orphans: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ventureboard_intercompany_orphans",
			Help: "Orphaned intercompany transfers in the latest consolidation.",
		}),
		maintenanceRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ventureboard_intercompany_maintenance_rows_total",
			Help: "Rows written by intercompany maintenance passes.",
		}, []string{"operation"}),
	}

	registerer.MustRegister(
		m.recalculations,
		m.recalculationTiming,
		m.consolidations,
		m.orphans,
		m.maintenanceRows,
	)
	return m
}

// ObserveRecalculation records one recalculation and its duration.
func (m *StatementMetrics) ObserveRecalculation(result string, duration time.Duration) {
	m.recalculations.WithLabelValues(result).Inc()
	m.recalculationTiming.Observe(duration.Seconds())
}

// ObserveConsolidation records one consolidation run.
func (m *StatementMetrics) ObserveConsolidation(valid bool, orphans int) {
	m.consolidations.WithLabelValues(strconv.FormatBool(valid)).Inc()
	m.orphans.Set(float64(orphans))
}

// ObserveMaintenance records the rows an applied maintenance pass wrote.
func (m *StatementMetrics) ObserveMaintenance(operation string, rows int) {
	m.maintenanceRows.WithLabelValues(operation).Add(float64(rows))
}

var _ adapter.MetricsRecorder = (*StatementMetrics)(nil)
