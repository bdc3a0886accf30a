// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// MetricsRecorder records statement engine activity.
type MetricsRecorder interface {
	ObserveRecalculation(result string, duration time.Duration)
	ObserveConsolidation(valid bool, orphans int)
	ObserveMaintenance(operation string, rows int)
}
